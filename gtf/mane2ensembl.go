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
	"errors"
	"io"
	"log"
	"strconv"
	"strings"
)

// A codon accumulates the genomic boundaries of a start or stop codon
// that may be split over multiple annotation lines.
type codon struct {
	lower, upper uint64
	length       uint64
	set          bool
}

// add extends the codon with one annotation line. It reports false
// when the line duplicates an already complete codon and must be
// skipped.
func (c *codon) add(start, end uint64, line, which string) bool {
	if c.length == 3 {
		log.Printf("Unexpected file format - multiple %v codons: %v", which, line)
		return false
	}
	if c.length == 0 {
		c.lower, c.upper, c.set = start, end, true
	} else {
		// Taking min and max avoids distinguishing forward and
		// reverse strands.
		if start < c.lower {
			c.lower = start
		}
		if end > c.upper {
			c.upper = end
		}
	}
	c.length += end - start + 1
	if c.length > 3 {
		log.Printf("Unexpected file format - strange %v_codon length: %v", which, line)
	}
	return true
}

// maneState tracks the transcript the rewriter is currently inside
// of.
type maneState struct {
	transcript string
	startCodon codon
	stopCodon  codon
	trimmed    uint64
}

// nextTranscript reports consistency warnings for the finished
// transcript and resets the codon state. Gene lines reset with value
// 3 so that the checks stay quiet until the next transcript line.
func (m *maneState) nextTranscript(value uint64) {
	if m.startCodon.length < 3 {
		log.Printf("%v does not contain a complete start_codon.", m.transcript)
	}
	if m.stopCodon.length < 3 {
		log.Printf("%v does not contain a complete stop_codon.", m.transcript)
	}
	if m.trimmed < 3 {
		log.Printf("%v does not have the whole stop_codon duplicated in its UTR region.", m.transcript)
	}
	m.startCodon = codon{length: value}
	m.stopCodon = codon{length: value}
	m.trimmed = value
}

// classifyUTR rewrites the UTR feature of parts as five_prime_utr or
// three_prime_utr by comparing the region against the codon
// boundaries of the current transcript.
func (m *maneState) classifyUTR(parts []string, from, to uint64) {
	var fivePrime, threePrime bool
	if parts[6] == "+" {
		fivePrime = to < m.startCodon.lower
		threePrime = m.stopCodon.lower <= from
	} else {
		fivePrime = m.startCodon.upper < from
		threePrime = to <= m.stopCodon.upper
	}
	if fivePrime {
		parts[2] = "five_prime_utr"
	} else if threePrime {
		parts[2] = "three_prime_utr"
	} else {
		log.Printf("Unexpected file format - UTR region occurs between start and stop codons for %v", m.transcript)
	}
}

// trimStopCodon removes the stop codon from a three_prime_utr region,
// shrinking its boundary in parts. It reports false when the region
// is completely covered by the stop codon and must be omitted from
// the output.
func (m *maneState) trimStopCodon(parts []string, from, to uint64) bool {
	forward := parts[6] == "+"
	var overlaps, covered bool
	if forward {
		overlaps = from <= m.stopCodon.upper
		covered = to <= m.stopCodon.upper
	} else {
		overlaps = m.stopCodon.lower <= to
		covered = m.stopCodon.lower <= from
	}
	if !overlaps {
		return true
	}
	if m.trimmed >= 3 {
		log.Printf("%v contains a stop_codon longer than 3 bases", m.transcript)
	}
	m.trimmed += to - from + 1
	if covered {
		return false
	}
	if forward {
		parts[3] = strconv.FormatUint(m.stopCodon.upper+1, 10)
	} else {
		parts[4] = strconv.FormatUint(m.stopCodon.lower-1, 10)
	}
	return true
}

// splitVersionAttributes rewrites every versioned identifier
// attribute, as in gene_id "ENSG00000186092.6", into separate id and
// version attributes, as in gene_id "ENSG00000186092"; gene_version
// "6".
func splitVersionAttributes(attributes, line string) string {
	const key = `_id "`
	for i := strings.Index(attributes, key); i >= 0; {
		begin := strings.LastIndexByte(attributes[:i], ' ') + 1
		name := attributes[begin:i]
		dot := strings.IndexByte(attributes[i+len(key):], '.')
		quote := strings.IndexByte(attributes[i+len(key):], '"')
		if quote < 0 {
			log.Printf("Uncompleted value of '%v_id': %v", name, line)
		} else if dot < 0 || quote < dot {
			log.Printf("Unexpected format of '%v_id': %v", name, line)
		} else {
			at := i + len(key) + dot
			attributes = attributes[:at] + `"; ` + name + `_version "` + attributes[at+1:]
		}
		j := strings.Index(attributes[i+len(key):], key)
		if j < 0 {
			break
		}
		i += len(key) + j
	}
	return attributes
}

// renameTypeAttributes rewrites every *_type attribute key into
// *_biotype.
func renameTypeAttributes(attributes string) string {
	const key = `_type "`
	for i := strings.Index(attributes, key); i >= 0; {
		attributes = attributes[:i+1] + "bio" + attributes[i+1:]
		j := strings.Index(attributes[i+10:], key)
		if j < 0 {
			break
		}
		i += 10 + j
	}
	return attributes
}

// Mane2Ensembl rewrites MANE annotations in GTF format to be
// consistent with the annotations Ensembl distributes: the chr prefix
// is dropped from sequence names, UTR features are classified as
// five_prime_utr or three_prime_utr, stop codons are excluded from
// three_prime_utr regions, versioned identifier attributes are split
// into separate id and version attributes, and *_type attribute keys
// are renamed *_biotype.
func Mane2Ensembl(input io.Reader, output io.Writer) error {
	in := bufio.NewReader(input)
	out := bufio.NewWriter(output)
	state := maneState{startCodon: codon{length: 3}, stopCodon: codon{length: 3}, trimmed: 3}
	for {
		line, err := in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			log.Println("Unexpected empty line.")
			continue
		}
		if IsComment(line) {
			if _, err := out.WriteString(line + "\n"); err != nil {
				return err
			}
			continue
		}
		fields := strings.SplitN(line, "\t", 9)
		if len(fields) < 9 {
			log.Printf("Unexpected line format - not enough columns: %v", line)
			continue
		}
		if strings.IndexByte(fields[8], '\t') >= 0 {
			log.Printf("Unexpected line format - too many columns: %v", line)
			continue
		}
		parts, attributes := fields[:8], fields[8]

		if strings.HasPrefix(parts[0], "chr") {
			parts[0] = parts[0][3:]
		} else {
			log.Printf("Unexpected line format - seqname does not start with 'chr': %v", line)
		}

		switch parts[2] {
		case "gene":
			state.nextTranscript(3)
			state.transcript = ""
		case "transcript":
			state.nextTranscript(0)
			transcript, ok := Attribute(attributes, "transcript_id")
			if !ok {
				log.Printf("Unexpected line format - transcript row does not contain a transcript_id attribute: %v", line)
			}
			state.transcript = transcript
		case "start_codon", "stop_codon":
			start, end, err := regionBoundaries(parts)
			if err != nil {
				log.Printf("Unexpected line format - %v: %v", err, line)
				continue
			}
			c, which := &state.startCodon, "start"
			if parts[2] == "stop_codon" {
				c, which = &state.stopCodon, "stop"
			}
			if !c.add(start, end, line, which) {
				continue
			}
		case "UTR":
			if !state.startCodon.set {
				log.Printf("Unexpected file format - start_codon line is missing or is not prior to an UTR line: %v", line)
				continue
			}
			if !state.stopCodon.set {
				log.Printf("Unexpected file format - stop_codon line is missing or is not prior to an UTR line: %v", line)
				continue
			}
			start, end, err := regionBoundaries(parts)
			if err != nil {
				log.Printf("Unexpected line format - %v: %v", err, line)
				continue
			}
			if parts[6] != "+" && parts[6] != "-" {
				log.Printf("Unexpected line format - unsupported strand identifier: %v", line)
			} else {
				state.classifyUTR(parts, start, end)
				if parts[2] == "three_prime_utr" && !state.trimStopCodon(parts, start, end) {
					continue
				}
			}
		}

		attributes = splitVersionAttributes(attributes, line)
		attributes = renameTypeAttributes(attributes)

		if _, err := out.WriteString(strings.Join(parts, "\t") + "\t" + attributes + "\n"); err != nil {
			return err
		}
	}
	return out.Flush()
}

func regionBoundaries(parts []string) (start, end uint64, err error) {
	if start, err = strconv.ParseUint(parts[3], 10, 64); err != nil {
		return 0, 0, errors.New("invalid start position")
	}
	if end, err = strconv.ParseUint(parts[4], 10, 64); err != nil {
		return 0, 0, errors.New("invalid end position")
	}
	return start, end, nil
}
