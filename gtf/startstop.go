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
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// An exon is a genomic interval in strand-relative coordinates: for
// reverse strand transcripts both boundaries are negated, so that
// ascending order always means 5' to 3'.
type exon struct {
	start, end int64
}

// relative converts genomic boundaries to strand-relative ones.
func relative(forward bool, from, to uint64) (int64, int64) {
	if forward {
		return int64(from), int64(to)
	}
	return -int64(to), -int64(from)
}

// A Transcript accumulates the exon and codon annotations of one
// transcript.
type Transcript struct {
	id         string
	forward    bool
	exons      []exon
	startCodon int64
	stopCodon  int64
	hasStart   bool
	hasStop    bool
	invalid    bool
}

// NewTranscript creates an empty transcript on the given strand.
func NewTranscript(id string, forward bool) *Transcript {
	return &Transcript{id: id, forward: forward}
}

// ID returns the transcript identifier.
func (t *Transcript) ID() string {
	return t.id
}

// SameStrand tells whether an annotation line on the given strand is
// consistent with the transcript.
func (t *Transcript) SameStrand(forward bool) bool {
	return t.forward == forward
}

// AddExon adds a genomic interval to the list of exons. Exons may
// arrive in any order; overlaps are detected when the coordinates are
// computed.
func (t *Transcript) AddExon(from, to uint64) {
	if from > to {
		log.Printf("Transcript '%v' contains a line with unordered start-stop positions: %v, %v", t.id, from, to)
		t.invalid = true
		return
	}
	start, end := relative(t.forward, from, to)
	t.exons = append(t.exons, exon{start: start, end: end})
}

// UpdateStartCodon extends the start codon with one annotation line.
// A codon split over multiple lines keeps its 5'-most position.
func (t *Transcript) UpdateStartCodon(from, to uint64) {
	pos, _ := relative(t.forward, from, to)
	if !t.hasStart || pos < t.startCodon {
		t.startCodon = pos
		t.hasStart = true
	}
}

// UpdateStopCodon extends the stop codon with one annotation line.
func (t *Transcript) UpdateStopCodon(from, to uint64) {
	pos, _ := relative(t.forward, from, to)
	if !t.hasStop || pos < t.stopCodon {
		t.stopCodon = pos
		t.hasStop = true
	}
}

// Coordinates checks the collected annotations and locates the start
// and stop codons in 1-based transcript-relative coordinates. The
// second return value is false when the transcript is inconsistent;
// the reason has then been logged.
func (t *Transcript) Coordinates() (start, stop uint64, ok bool) {
	if t.invalid || t.id == "" {
		return 0, 0, false
	}
	if !t.hasStart {
		log.Printf("Transcript '%v' does not have a defined start_codon", t.id)
		return 0, 0, false
	}
	if !t.hasStop {
		log.Printf("Transcript '%v' does not have a defined stop_codon", t.id)
		return 0, 0, false
	}
	if t.startCodon > t.stopCodon {
		log.Printf("Start and stop codons have the wrong order in transcript '%v'", t.id)
		return 0, 0, false
	}
	if len(t.exons) == 0 {
		log.Printf("No exon defined for transcript '%v'", t.id)
		return 0, 0, false
	}
	sort.Slice(t.exons, func(i, j int) bool {
		return t.exons[i].start < t.exons[j].start
	})
	if !t.disjointExons() {
		log.Printf("Transcript '%v' contains overlapping exons", t.id)
		return 0, 0, false
	}
	offset := uint64(0)
	for i, e := range t.exons {
		if t.startCodon < e.start {
			break
		}
		if t.startCodon <= e.end {
			start = offset + uint64(t.startCodon-e.start) + 1
			stop = offset
			for _, e := range t.exons[i:] {
				if t.stopCodon < e.start {
					break
				}
				if t.stopCodon <= e.end {
					stop += uint64(t.stopCodon-e.start) + 1
					return start, stop, true
				}
				stop += uint64(e.end - e.start + 1)
			}
			log.Printf("Transcript '%v' has stop_codon outside exons", t.id)
			return 0, 0, false
		}
		offset += uint64(e.end - e.start + 1)
	}
	log.Printf("Transcript '%v' has start_codon outside exons", t.id)
	return 0, 0, false
}

// disjointExons verifies that no base is covered by more than one
// exon, over a bitset spanning the sorted exon list.
func (t *Transcript) disjointExons() bool {
	base := t.exons[0].start
	span := t.exons[len(t.exons)-1].end - base + 1
	covered := bitset.New(uint(span))
	for _, e := range t.exons {
		for pos := e.start; pos <= e.end; pos++ {
			i := uint(pos - base)
			if covered.Test(i) {
				return false
			}
			covered.Set(i)
		}
	}
	return true
}

// A CodonPositions row reports where the coding sequence of one
// transcript starts and stops, in transcript-relative coordinates.
type CodonPositions struct {
	Transcript  string
	Start, Stop uint64
}

// StartStopPositions parses an annotations file in GTF format and
// locates the start and stop codons of every transcript. Transcripts
// that turn out inconsistent are logged and left out. The rows are
// sorted by transcript identifier.
func StartStopPositions(filename string) (rows []CodonPositions, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	type codons struct {
		start, stop uint64
		ok          bool
	}
	coordinates := make(map[string]codons)
	transcript := NewTranscript("", false)
	finish := func() {
		if id := transcript.ID(); id != "" {
			start, stop, ok := transcript.Coordinates()
			coordinates[id] = codons{start: start, stop: stop, ok: ok}
		}
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || IsComment(line) {
			continue
		}
		fields := strings.SplitN(line, "\t", 9)
		if len(fields) < 9 {
			log.Printf("Unexpected line format - not enough columns: %v", line)
			continue
		}
		feature := fields[2]
		if feature != "exon" && feature != "start_codon" && feature != "stop_codon" {
			continue
		}
		start, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			log.Printf("Unexpected line format - invalid start position: %v", line)
			continue
		}
		end, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			log.Printf("Unexpected line format - invalid end position: %v", line)
			continue
		}
		forward := false
		switch fields[6] {
		case "+":
			forward = true
		case "-":
		default:
			log.Printf("Unexpected or unsupported strand identifier '%v' within line: %v", fields[6], line)
			continue
		}
		id, found := Attribute(fields[8], "transcript_id")
		if !found {
			log.Printf("Missing transcript_id attribute: %v", line)
			continue
		}
		if id == "" {
			log.Printf("Empty transcript_id attribute: %v", line)
			continue
		}
		if transcript.ID() != id {
			finish()
			transcript = NewTranscript(id, forward)
		} else if !transcript.SameStrand(forward) {
			log.Printf("Ambiguous strand for transcript '%v'", transcript.ID())
			continue
		}
		switch feature {
		case "exon":
			transcript.AddExon(start, end)
		case "start_codon":
			transcript.UpdateStartCodon(start, end)
		case "stop_codon":
			transcript.UpdateStopCodon(start, end)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	finish()
	ids := make([]string, 0, len(coordinates))
	for id := range coordinates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if c := coordinates[id]; c.ok {
			rows = append(rows, CodonPositions{Transcript: id, Start: c.start, Stop: c.stop})
		}
	}
	return rows, nil
}
