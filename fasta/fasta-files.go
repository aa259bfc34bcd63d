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

// Package fasta parses genome reference sequences in FASTA format.
package fasta

import (
	"bufio"
	"os"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

// contigFromHeader takes the first run of printable characters after
// '>' as the sequence name, which matches the Ensembl header format.
func contigFromHeader(b []byte) string {
	i := 1
	for ; i < len(b); i++ {
		if c := b[i]; c >= '!' && c <= '~' {
			break
		}
	}
	if i == len(b) {
		return ""
	}
	j := i + 1
	for ; j < len(b); j++ {
		if c := b[j]; c < '!' || c > '~' {
			break
		}
	}
	return string(b[i:j])
}

// ParseFasta sequentially parses a FASTA file into a map of named
// sequences. Empty lines and duplicate sequence names are fatal
// conditions, so that a truncated or concatenated genome file cannot
// silently skew downstream statistics.
func ParseFasta(filename string) (fasta map[string][]byte, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()

	fasta = make(map[string][]byte)
	contig := ""
	var seq []byte
	addSequence := func() error {
		if contig == "" && len(seq) == 0 {
			return nil
		}
		if _, duplicate := fasta[contig]; duplicate {
			return internal.NewStatusError(internal.StatusDuplicateSequence,
				"Multiple sequences with the same id '%v'.", contig)
		}
		fasta[contig] = seq
		seq = nil
		return nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		b := scanner.Bytes()
		if len(b) == 0 {
			return nil, internal.NewStatusError(internal.StatusBadInput,
				"Unexpected empty line within sequences file '%v'.", filename)
		}
		if b[0] == '>' {
			if err := addSequence(); err != nil {
				return nil, err
			}
			contig = contigFromHeader(b)
		} else {
			seq = append(seq, b...)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if err = addSequence(); err != nil {
		return nil, err
	}
	return fasta, nil
}
