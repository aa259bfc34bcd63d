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

package sam

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

func filterString(t *testing.T, input string, policy Policy) string {
	t.Helper()
	var out bytes.Buffer
	in := NewInputFile("test.sam", strings.NewReader(input))
	output := NewOutputFile("test-out.sam", &out)
	if err := FilterFile(in, output, policy); err != nil {
		t.Fatal(err)
	}
	if err := output.Close(); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestFilterFileIdentity(t *testing.T) {
	// Groups that lose nothing must come out byte for byte, odd
	// optional fields and stale MAPQ values included.
	input := "@HD\tVN:1.6\n" +
		"@SQ\tSN:ENST1\tLN:100\n" +
		"read1\t0\tENST1\t10\t200\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tXZ:Z:odd value\tHI:i:1\n" +
		"read1\t256\tENST2\t20\t200\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n" +
		"read2\t0\tENST1\t15\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\tHI:i:1\n"
	result := filterString(t, input, Policy{Record: KeepForward()})
	if result != input {
		t.Errorf("full groups not reproduced verbatim:\n%v", result)
	}
}

func TestFilterFileRewritesShrunkGroup(t *testing.T) {
	input := "read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:3\tHI:i:1\n" +
		"read1\t272\tENST2\t20\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:3\tHI:i:2\n" +
		"read1\t256\tENST3\t30\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:3\tHI:i:3\n"
	expected := "read1\t0\tENST1\t10\t3\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t256\tENST3\t30\t3\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	result := filterString(t, input, Policy{Record: KeepForward()})
	if result != expected {
		t.Errorf("shrunk group not rewritten as expected:\n%v", result)
	}
}

func TestFilterFilePromotesNewPrimary(t *testing.T) {
	// The primary alignment is reversed and dropped; the surviving
	// secondary becomes the new primary.
	input := "read1\t16\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t256\tENST2\t20\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	expected := "read1\t0\tENST2\t20\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\tHI:i:1\n"
	result := filterString(t, input, Policy{Record: KeepForward()})
	if result != expected {
		t.Errorf("new primary not promoted as expected:\n%v", result)
	}
}

func TestFilterFileDropsWholeGroup(t *testing.T) {
	input := "read1\t16\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t272\tENST2\t20\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	if result := filterString(t, input, Policy{Record: KeepForward()}); result != "" {
		t.Errorf("group without survivors not dropped:\n%v", result)
	}
}

func TestFilterFileSkipsIrregularLines(t *testing.T) {
	input := "\n" +
		"read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\n" +
		"read2\t0\tENST1\t15\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\n"
	expected := "read2\t0\tENST1\t15\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\n"
	result := filterString(t, input, Policy{Record: KeepForward()})
	if result != expected {
		t.Errorf("empty line or missing NH tag not skipped:\n%v", result)
	}
}

func TestFilterFileTruncatedGroup(t *testing.T) {
	input := "read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:3\tHI:i:1\n" +
		"read1\t256\tENST2\t20\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:3\tHI:i:2\n"
	in := NewInputFile("test.sam", strings.NewReader(input))
	output := NewOutputFile("test-out.sam", &bytes.Buffer{})
	err := FilterFile(in, output, Policy{Record: KeepForward()})
	if err == nil {
		t.Fatal("truncated group not reported")
	}
	if internal.ExitStatus(err) != internal.StatusTruncatedGroup {
		t.Error("truncated group reported with the wrong status")
	}
}

func TestKeepTranscripts(t *testing.T) {
	ids := map[string]bool{"ENST1": true, "ENST3": true}
	input := "@SQ\tSN:ENST1\tLN:100\n" +
		"@SQ\tSN:ENST2\tLN:100\n" +
		"@PG\tID:aligner\n" +
		"read1\t0\tENST2\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t256\tENST3\t30\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	expected := "@SQ\tSN:ENST1\tLN:100\n" +
		"@PG\tID:aligner\n" +
		"read1\t0\tENST3\t30\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\tHI:i:1\n"
	result := filterString(t, input, Policy{Record: KeepTranscripts(ids), Header: KeepSequenceHeaders(ids)})
	if result != expected {
		t.Errorf("transcript selection not applied as expected:\n%v", result)
	}
}

func TestKeepUnambiguousGenes(t *testing.T) {
	table := map[string]string{"ENST1": "ENSG1", "ENST2": "ENSG1", "ENST3": "ENSG2"}
	// The first group maps to one gene and must survive untouched,
	// stale MAPQ included. The second group is ambiguous and must
	// disappear as a whole.
	input := "read1\t0\tENST1\t10\t200\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t256\tENST2\t20\t200\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n" +
		"read2\t0\tENST1\t15\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read2\t256\tENST3\t30\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	expected := "read1\t0\tENST1\t10\t200\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t256\tENST2\t20\t200\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	result := filterString(t, input, Policy{Group: KeepUnambiguousGenes(table)})
	if result != expected {
		t.Errorf("gene ambiguity not resolved group-wise:\n%v", result)
	}
}

func TestKeepUnambiguousGenesSingletonBypass(t *testing.T) {
	table := map[string]string{"ENST1": "ENSG1"}
	// Unique alignments pass without a table lookup, so an unknown
	// transcript in a singleton is not an error.
	input := "read1\t0\tENSTX\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:1\tHI:i:1\n"
	result := filterString(t, input, Policy{Group: KeepUnambiguousGenes(table)})
	if result != input {
		t.Errorf("singleton group not passed through:\n%v", result)
	}
}

func TestKeepUnambiguousGenesUnknownTranscript(t *testing.T) {
	table := map[string]string{"ENST1": "ENSG1"}
	input := "read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1\n" +
		"read1\t256\tENSTX\t30\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:2\n"
	in := NewInputFile("test.sam", strings.NewReader(input))
	output := NewOutputFile("test-out.sam", &bytes.Buffer{})
	err := FilterFile(in, output, Policy{Group: KeepUnambiguousGenes(table)})
	if err == nil {
		t.Fatal("unknown transcript not reported")
	}
	if internal.ExitStatus(err) != internal.StatusUnknownIdentifier {
		t.Error("unknown transcript reported with the wrong status")
	}
}
