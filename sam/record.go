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
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

// Alignment flags.
const (
	// Multiple segments in template
	Multiple = 0x1
	// Each segment properly aligned according to the aligner
	Proper = 0x2
	// Segment unmapped
	Unmapped = 0x4
	// Next segment in template unmapped
	NextUnmapped = 0x8
	// SEQ being reverse complemented
	Reversed = 0x10
	// SEQ of next segment in template being reversed
	NextReversed = 0x20
	// First segment in template
	First = 0x40
	// Last segment in template
	Last = 0x80
	// Secondary alignment
	Secondary = 0x100
	// Not passing filters, such as platform/vendor quality controls
	QCFailed = 0x200
	// PCR or optical duplicate
	Duplicate = 0x400
	// Supplementary alignment
	Supplementary = 0x800
)

const (
	multiplicityTag = "NH:i:"
	groupIndexTag   = "HI:i:"
)

// A Record is a single alignment line, split into its tab-separated
// fields. The fields are kept as opaque strings; only the fields the
// group rewriter explicitly recomputes ever change value, so
// formatting an unchanged Record reproduces the input line byte for
// byte.
type Record struct {
	fields []string
}

// ParseRecord splits an alignment line into its fields.
func ParseRecord(line string) *Record {
	return &Record{fields: strings.Split(line, "\t")}
}

// Format reassembles the record into an alignment line.
func (rec *Record) Format() string {
	return strings.Join(rec.fields, "\t")
}

// IsHeaderLine tells whether a line belongs to the header section of
// a SAM file.
func IsHeaderLine(line string) bool {
	return line[0] == '@'
}

// Flag returns the FLAG field of the record.
func (rec *Record) Flag() (uint64, error) {
	if len(rec.fields) < 2 {
		return 0, fmt.Errorf("not enough columns '%v'", rec.Format())
	}
	flag, err := strconv.ParseUint(rec.fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid FLAG field '%v'", rec.Format())
	}
	return flag, nil
}

// FlagClear tells whether the given FLAG bit is clear. A record whose
// FLAG field cannot be read counts as having the bit set; the
// condition is logged.
func (rec *Record) FlagClear(flag uint64) bool {
	value, err := rec.Flag()
	if err != nil {
		log.Printf("Unexpected file format: %v.", err)
		return false
	}
	return value&flag == 0
}

// RName returns the reference sequence name the record is aligned to.
func (rec *Record) RName() (string, error) {
	if len(rec.fields) < 3 {
		return "", fmt.Errorf("not enough columns '%v'", rec.Format())
	}
	return rec.fields[2], nil
}

// Cigar returns the CIGAR string of the record. A record with too few
// columns to hold one is a fatal condition.
func (rec *Record) Cigar() (string, error) {
	if len(rec.fields) < 6 {
		return "", internal.NewStatusError(internal.StatusMissingColumns,
			"Unexpected file format: not enough columns '%v'.", rec.Format())
	}
	return rec.fields[5], nil
}

// Multiplicity returns the value of the NH tag of the record, the
// declared number of locations the read aligns to. When the record
// carries more than one NH tag, the last one counts. The second
// return value is false when the tag is missing or its value cannot
// be read.
func (rec *Record) Multiplicity() (uint64, bool) {
	for i := len(rec.fields) - 1; i > 0; i-- {
		if strings.HasPrefix(rec.fields[i], multiplicityTag) {
			n, err := strconv.ParseUint(rec.fields[i][len(multiplicityTag):], 10, 64)
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}
