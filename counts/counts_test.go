// RibosomeProfiling: tools for analyzing ribosome profiling sequencing data.
// Copyright (c) 2021-2023 Institute of Microbiology of the Czech Academy of Sciences.

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package counts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
	"github.com/cas-bioinf/RibosomeProfiling/regions"
)

func TestReadCounts(t *testing.T) {
	input := "@HD\tVN:1.6\n" +
		"read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\n" +
		"read2\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\n" +
		"read3\t0\tENST1\t5\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\n" +
		"bad\tline\n" +
		"read4\t0\tENST2\t7\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\n"
	counts, err := ReadCounts(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	expected := []PositionCount{
		{Name: "ENST1", Pos: 5, Count: 1},
		{Name: "ENST1", Pos: 10, Count: 2},
		{Name: "ENST2", Pos: 7, Count: 1},
	}
	if len(counts) != len(expected) {
		t.Fatalf("expected %v rows, got %v", len(expected), len(counts))
	}
	for i, c := range counts {
		if c != expected[i] {
			t.Errorf("unexpected row %v: %v", i, c)
		}
	}
	var out bytes.Buffer
	if err := WriteCounts(&out, counts); err != nil {
		t.Fatal(err)
	}
	if out.String() != "ENST1\t5\t1\nENST1\t10\t2\nENST2\t7\t1\n" {
		t.Errorf("counts not written as expected:\n%v", out.String())
	}
}

func TestRegionCounts(t *testing.T) {
	table := regions.Table{
		"ENST1": {From: 1, To: 11},
		"ENST2": {From: 5, To: 8},
	}
	input := "ENST1\t1\t2.5\n" +
		"ENST1\t10\t1.5\n" +
		"ENST1\t11\t4\n" +
		"ENST2\t5\t1\n" +
		"ENSTX\t3\t9\n" +
		"ENST1\t2\tbad\n"
	rows, err := RegionCounts(table, strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", len(rows))
	}
	if rows[0].Name != "ENST1" || rows[0].Count != 4 {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1].Name != "ENST2" || rows[1].Count != 1 {
		t.Errorf("unexpected second row: %v", rows[1])
	}
	var out bytes.Buffer
	if err := WriteRegionCounts(&out, rows); err != nil {
		t.Fatal(err)
	}
	if out.String() != "ENST1\t4\nENST2\t1\n" {
		t.Errorf("region counts not written as expected:\n%v", out.String())
	}
}

func TestRegionCountsEmpty(t *testing.T) {
	table := regions.Table{"ENST1": {From: 1, To: 11}}
	_, err := RegionCounts(table, strings.NewReader("ENSTX\t3\t9\n"))
	if err == nil {
		t.Fatal("empty result not reported")
	}
	if internal.ExitStatus(err) != internal.StatusBadInput {
		t.Error("empty result reported with the wrong status")
	}
}

func TestGCContent(t *testing.T) {
	sequences := map[string][]byte{"1": []byte("ACGTACGTAC")}
	annotations := "#!genome-build test\n" +
		"1\ts\tgene\t1\t10\t.\t+\t.\tgene_id \"ENSG1\";\n" +
		"1\ts\tCDS\t1\t4\t.\t+\t.\tgene_id \"ENSG1\";\n" +
		"1\ts\texon\t1\t2\t.\t-\t.\tgene_id \"ENSG1\";\n" +
		"1\ts\tCDS\t2\t3\t.\t+\t.\tgene_id \"ENSG2\";\n"
	report, err := GCContent(sequences, strings.NewReader(annotations), "test.gtf")
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := report.Format(&out); err != nil {
		t.Fatal(err)
	}
	expected := "gene_id\tCDS\texon\n" +
		"ENSG1\t0.5\t0.5\n" +
		"ENSG2\t1\tNA\n"
	if out.String() != expected {
		t.Errorf("report not formatted as expected:\n%v", out.String())
	}
}

func TestGCContentFatalConditions(t *testing.T) {
	sequences := map[string][]byte{"1": []byte("ACGT")}
	for _, c := range []struct {
		annotations string
		status      int
	}{
		{"\n", internal.StatusEmptyLine},
		{"1\ts\tCDS\t1\t4\n", internal.StatusBadColumns},
		{"1\ts\tCDS\t1\t4\t.\t.\t.\tgene_id \"ENSG1\";\n", internal.StatusBadStrand},
		{"1\ts\tCDS\t1\t4\t.\t+\t.\tother_id \"X\";\n", internal.StatusMissingAttribute},
		{"1\ts\tCDS\t1\t4\t.\t+\t.\tgene_id \"ENSG1\n", internal.StatusUnenclosedAttribute},
		{"1\ts\tCDS\t1\t5\t.\t+\t.\tgene_id \"ENSG1\";\n", internal.StatusBadInput},
		{"2\ts\tCDS\t1\t4\t.\t+\t.\tgene_id \"ENSG1\";\n", internal.StatusBadInput},
	} {
		_, err := GCContent(sequences, strings.NewReader(c.annotations), "test.gtf")
		if err == nil {
			t.Errorf("fatal condition not reported for %q", c.annotations)
			continue
		}
		if internal.ExitStatus(err) != c.status {
			t.Errorf("condition %q reported with status %v instead of %v", c.annotations, internal.ExitStatus(err), c.status)
		}
	}
}
