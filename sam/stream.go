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
	"io"
	"log"

	"github.com/exascience/pargo/pipeline"
)

// FilterFile streams alignment lines from input to output, applying
// the given policy one multiplicity group at a time. Memory use is
// bounded by the largest group, not by the file. Non-fatal oddities
// (empty lines, missing multiplicity tags) are logged and skipped;
// fatal conditions abort the stream with an error.
func FilterFile(input *InputFile, output *OutputFile, policy Policy) error {
	for {
		line, err := input.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			log.Printf("Unexpected empty line in file '%v'.", input.Name())
			continue
		}
		if IsHeaderLine(line) {
			if policy.Header == nil || policy.Header(line) {
				if err := output.WriteLine(line); err != nil {
					return err
				}
			}
			continue
		}
		rec := ParseRecord(line)
		n, ok := rec.Multiplicity()
		if !ok {
			log.Printf("Unexpected file format: missing or invalid NH tag '%v'.", line)
			continue
		}
		if n <= 1 {
			// Singleton groups cannot shrink, so the policy decision
			// is all there is to it.
			if policy.Group != nil || policy.Record(rec) {
				if err := output.WriteLine(line); err != nil {
					return err
				}
			}
			continue
		}
		group, err := ReadGroup(input, rec, n)
		if err != nil {
			return err
		}
		if policy.Group != nil {
			keep, err := policy.Group(group)
			if err != nil {
				return err
			}
			if keep {
				if err := emit(output, group); err != nil {
					return err
				}
			}
			continue
		}
		var survivors []*Record
		primarySurvived := false
		for _, rec := range group {
			if policy.Record(rec) {
				if rec.FlagClear(Secondary) {
					primarySurvived = true
				}
				survivors = append(survivors, rec)
			}
		}
		switch len(survivors) {
		case len(group):
			// Nothing was dropped; reproduce the group verbatim.
			if err := emit(output, group); err != nil {
				return err
			}
		case 0:
		default:
			if err := RewriteGroup(survivors, primarySurvived); err != nil {
				return err
			}
			if err := emit(output, survivors); err != nil {
				return err
			}
		}
	}
}

func emit(output *OutputFile, records []*Record) error {
	for _, rec := range records {
		if err := output.WriteLine(rec.Format()); err != nil {
			return err
		}
	}
	return nil
}

// A Pair names one input file and the output file its filtered
// records are written to.
type Pair struct {
	In, Out string
}

// RunPairs applies the same policy to every input/output file pair.
// The pairs are independent of each other and are processed in
// parallel; the record order within each pair is preserved. The first
// error aborts the run.
func RunPairs(pairs []Pair, policy Policy) error {
	var p pipeline.Pipeline
	p.Source(pairs)
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		for _, pair := range data.([]Pair) {
			if err := runPair(pair, policy); err != nil {
				p.SetErr(err)
				break
			}
		}
		return data
	})))
	p.Run()
	return p.Err()
}

func runPair(pair Pair, policy Policy) (err error) {
	input, err := Open(pair.In)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := input.Close(); err == nil {
			err = nerr
		}
	}()
	output, err := Create(pair.Out)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); err == nil {
			err = nerr
		}
	}()
	return FilterFile(input, output, policy)
}
