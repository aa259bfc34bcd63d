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

package gtf

import (
	"bytes"
	"strings"
	"testing"
)

func mane2ensemblString(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	if err := Mane2Ensembl(strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestMane2Ensembl(t *testing.T) {
	ids := `gene_id "ENSG1.2"; transcript_id "ENST1.3";`
	input := "#provider: MANE\n" +
		"chr1\ts\tgene\t1\t300\t.\t+\t.\tgene_id \"ENSG1.2\"; gene_type \"protein_coding\";\n" +
		"chr1\ts\ttranscript\t1\t300\t.\t+\t.\tgene_id \"ENSG1.2\"; transcript_id \"ENST1.3\"; transcript_type \"protein_coding\";\n" +
		"chr1\ts\texon\t1\t300\t.\t+\t.\t" + ids + "\n" +
		"chr1\ts\tstart_codon\t100\t102\t.\t+\t.\t" + ids + "\n" +
		"chr1\ts\tstop_codon\t200\t202\t.\t+\t.\t" + ids + "\n" +
		"chr1\ts\tUTR\t1\t99\t.\t+\t.\t" + ids + "\n" +
		"chr1\ts\tUTR\t200\t300\t.\t+\t.\t" + ids + "\n"
	split := `gene_id "ENSG1"; gene_version "2"; transcript_id "ENST1"; transcript_version "3";`
	expected := "#provider: MANE\n" +
		"1\ts\tgene\t1\t300\t.\t+\t.\tgene_id \"ENSG1\"; gene_version \"2\"; gene_biotype \"protein_coding\";\n" +
		"1\ts\ttranscript\t1\t300\t.\t+\t.\tgene_id \"ENSG1\"; gene_version \"2\"; transcript_id \"ENST1\"; transcript_version \"3\"; transcript_biotype \"protein_coding\";\n" +
		"1\ts\texon\t1\t300\t.\t+\t.\t" + split + "\n" +
		"1\ts\tstart_codon\t100\t102\t.\t+\t.\t" + split + "\n" +
		"1\ts\tstop_codon\t200\t202\t.\t+\t.\t" + split + "\n" +
		"1\ts\tfive_prime_utr\t1\t99\t.\t+\t.\t" + split + "\n" +
		"1\ts\tthree_prime_utr\t203\t300\t.\t+\t.\t" + split + "\n"
	result := mane2ensemblString(t, input)
	if result != expected {
		t.Errorf("annotations not rewritten as expected:\n%v", result)
	}
}

func TestMane2EnsemblReverseStrand(t *testing.T) {
	ids := `gene_id "ENSG2.1"; transcript_id "ENST2.1";`
	// The UTR region on the reverse strand is completely covered by
	// the stop codon and must be omitted from the output.
	input := "chr2\ts\ttranscript\t100\t250\t.\t-\t.\t" + ids + "\n" +
		"chr2\ts\tstart_codon\t240\t242\t.\t-\t.\t" + ids + "\n" +
		"chr2\ts\tstop_codon\t110\t112\t.\t-\t.\t" + ids + "\n" +
		"chr2\ts\tUTR\t110\t112\t.\t-\t.\t" + ids + "\n" +
		"chr2\ts\tUTR\t245\t250\t.\t-\t.\t" + ids + "\n"
	split := `gene_id "ENSG2"; gene_version "1"; transcript_id "ENST2"; transcript_version "1";`
	expected := "2\ts\ttranscript\t100\t250\t.\t-\t.\t" + split + "\n" +
		"2\ts\tstart_codon\t240\t242\t.\t-\t.\t" + split + "\n" +
		"2\ts\tstop_codon\t110\t112\t.\t-\t.\t" + split + "\n" +
		"2\ts\tfive_prime_utr\t245\t250\t.\t-\t.\t" + split + "\n"
	result := mane2ensemblString(t, input)
	if result != expected {
		t.Errorf("reverse strand annotations not rewritten as expected:\n%v", result)
	}
}
