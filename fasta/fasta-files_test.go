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

package fasta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

func writeFasta(t *testing.T, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "sequences.fa")
	if err := os.WriteFile(filename, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestContigFromHeader(t *testing.T) {
	if contigFromHeader([]byte(">1 dna:chromosome chromosome:GRCh38:1")) != "1" {
		t.Error("contig name not taken from the header")
	}
	if contigFromHeader([]byte(">chr2")) != "chr2" {
		t.Error("contig name without description not taken from the header")
	}
	if contigFromHeader([]byte(">")) != "" {
		t.Error("bare header does not yield an empty contig name")
	}
}

func TestParseFasta(t *testing.T) {
	filename := writeFasta(t, ">chr1 description\nACGT\nACGT\n>chr2\nGGGG\n")
	fasta, err := ParseFasta(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(fasta) != 2 {
		t.Fatalf("expected 2 sequences, got %v", len(fasta))
	}
	if string(fasta["chr1"]) != "ACGTACGT" {
		t.Errorf("unexpected chr1 sequence: %v", string(fasta["chr1"]))
	}
	if string(fasta["chr2"]) != "GGGG" {
		t.Errorf("unexpected chr2 sequence: %v", string(fasta["chr2"]))
	}
}

func TestParseFastaEmptyLine(t *testing.T) {
	_, err := ParseFasta(writeFasta(t, ">chr1\nACGT\n\nACGT\n"))
	if err == nil {
		t.Fatal("empty line not reported")
	}
	if internal.ExitStatus(err) != internal.StatusBadInput {
		t.Error("empty line reported with the wrong status")
	}
}

func TestParseFastaDuplicateSequence(t *testing.T) {
	_, err := ParseFasta(writeFasta(t, ">chr1\nACGT\n>chr1\nGGGG\n"))
	if err == nil {
		t.Fatal("duplicate sequence id not reported")
	}
	if internal.ExitStatus(err) != internal.StatusDuplicateSequence {
		t.Error("duplicate sequence id reported with the wrong status")
	}
}
