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
	"log"
	"strings"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

type (
	// A RecordPolicy decides for each alignment record independently
	// whether it is kept. Policies classify records; they never
	// modify them.
	RecordPolicy func(rec *Record) bool

	// A GroupPolicy decides whether a complete multiplicity group is
	// kept or dropped as a whole. It never keeps a subset.
	GroupPolicy func(group []*Record) (bool, error)

	// A HeaderPolicy decides whether a header line is passed through
	// to the output.
	HeaderPolicy func(line string) bool

	// A Policy bundles the decisions a filter run makes. Exactly one
	// of Record and Group must be set. A nil Header passes all header
	// lines through.
	Policy struct {
		Record RecordPolicy
		Group  GroupPolicy
		Header HeaderPolicy
	}
)

// KeepForward keeps the records that are not reverse complemented.
func KeepForward() RecordPolicy {
	return func(rec *Record) bool {
		return rec.FlagClear(Reversed)
	}
}

// KeepTranscripts keeps the records aligned to one of the given
// reference sequences.
func KeepTranscripts(ids map[string]bool) RecordPolicy {
	return func(rec *Record) bool {
		name, err := rec.RName()
		if err != nil {
			log.Printf("Unexpected file format: %v.", err)
			return false
		}
		return ids[name]
	}
}

// KeepSequenceHeaders passes @SQ header lines through only when their
// SN field names one of the given reference sequences. All other
// header lines pass unchanged.
func KeepSequenceHeaders(ids map[string]bool) HeaderPolicy {
	return func(line string) bool {
		if !strings.HasPrefix(line, "@SQ\t") {
			return true
		}
		i := strings.Index(line, "\tSN:")
		if i < 0 {
			log.Printf("Unexpected line format: missing SN field within '@SQ' line: '%v'.", line)
			return false
		}
		name := line[i+len("\tSN:"):]
		if j := strings.IndexByte(name, '\t'); j >= 0 {
			name = name[:j]
		}
		return ids[name]
	}
}

// KeepUnambiguousGenes keeps a multiplicity group only when all of
// its records align to transcripts of one and the same gene,
// according to the given transcript to gene table. A transcript that
// is missing from the table is a fatal condition; silently dropping
// such a group would hide a mismatch between the alignments and the
// annotations they were made against.
func KeepUnambiguousGenes(transcriptGenes map[string]string) GroupPolicy {
	return func(group []*Record) (bool, error) {
		gene := ""
		ambiguous := false
		for i, rec := range group {
			name, err := rec.RName()
			if err != nil {
				log.Printf("Unexpected file format: %v.", err)
				name = ""
			}
			g, found := transcriptGenes[name]
			if !found {
				return false, internal.NewStatusError(internal.StatusUnknownIdentifier,
					"Unknown gene_id: transcript_id '%v' does not occur in the annotations file: '%v'.", name, rec.Format())
			}
			if i == 0 {
				gene = g
			} else if g != gene {
				ambiguous = true
			}
		}
		return !ambiguous, nil
	}
}
