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
	"bufio"
	"os"
	"strings"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
	"github.com/exascience/pargo/pipeline"
)

type transcriptGene struct {
	transcript, gene string
}

// transcriptGeneFromLine extracts the transcript_id and gene_id
// attribute pair from a raw annotation line. Lines without a
// transcript_id attribute carry no pair; a present but unterminated
// attribute is a fatal condition.
func transcriptGeneFromLine(line string) (transcriptGene, bool, error) {
	const transcriptKey = ` transcript_id "`
	const geneKey = "\tgene_id \""
	i := strings.Index(line, transcriptKey)
	if i < 0 {
		return transcriptGene{}, false, nil
	}
	from := i + len(transcriptKey)
	j := strings.Index(line[from:], `";`)
	if j < 0 {
		return transcriptGene{}, false, internal.NewStatusError(internal.StatusBadInput,
			"Unexpected line format: incomplete 'transcript_id' tag: '%v'.", line)
	}
	transcript := line[from : from+j]
	g := strings.Index(line, geneKey)
	if g < 0 {
		return transcriptGene{}, false, internal.NewStatusError(internal.StatusBadInput,
			"Unexpected line format: missing 'gene_id' tag: '%v'.", line)
	}
	gfrom := g + len(geneKey)
	gj := strings.Index(line[gfrom:], `";`)
	if gj < 0 {
		return transcriptGene{}, false, internal.NewStatusError(internal.StatusBadInput,
			"Unexpected line format: incomplete 'gene_id' tag: '%v'.", line)
	}
	return transcriptGene{transcript: transcript, gene: line[gfrom : gfrom+gj]}, true, nil
}

// TranscriptGenes builds the transcript to gene lookup table from an
// annotations file in GTF format. Attribute extraction runs in
// parallel over the annotation lines; the table itself is filled
// sequentially and is read-only once built.
func TranscriptGenes(filename string) (table map[string]string, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || IsComment(line) {
			continue
		}
		lines = append(lines, line)
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	table = make(map[string]string)
	var p pipeline.Pipeline
	p.Source(lines)
	p.Add(
		pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
			lines := data.([]string)
			pairs := make([]transcriptGene, 0, len(lines))
			for _, line := range lines {
				pair, ok, err := transcriptGeneFromLine(line)
				if err != nil {
					p.SetErr(err)
					return pairs
				}
				if ok {
					pairs = append(pairs, pair)
				}
			}
			return pairs
		})),
		pipeline.Seq(pipeline.Receive(func(_ int, data interface{}) interface{} {
			for _, pair := range data.([]transcriptGene) {
				table[pair.transcript] = pair.gene
			}
			return data
		})),
	)
	p.Run()
	if err = p.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
