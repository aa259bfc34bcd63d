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

// Package gtf parses gene annotations in GTF format and derives the
// lookup tables and per-transcript coordinates the other tools need.
package gtf

import (
	"fmt"
	"strconv"
	"strings"
)

// A Line is one tokenized annotation line: the eight fixed
// tab-separated columns plus the trailing attributes column.
type Line struct {
	Seqname    string
	Source     string
	Feature    string
	Start, End uint64
	Score      string
	Strand     string
	Frame      string
	Attributes string
}

// IsComment tells whether an annotation line is a comment.
func IsComment(line string) bool {
	return line[0] == '#'
}

// ParseLine tokenizes an annotation line into its nine columns.
func ParseLine(line string) (*Line, error) {
	fields := strings.SplitN(line, "\t", 9)
	if len(fields) < 9 {
		return nil, fmt.Errorf("not enough columns: %v", line)
	}
	start, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid start position: %v", line)
	}
	end, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid end position: %v", line)
	}
	return &Line{
		Seqname:    fields[0],
		Source:     fields[1],
		Feature:    fields[2],
		Start:      start,
		End:        end,
		Score:      fields[5],
		Strand:     fields[6],
		Frame:      fields[7],
		Attributes: fields[8],
	}, nil
}

// Format reassembles the annotation line.
func (l *Line) Format() string {
	return strings.Join([]string{
		l.Seqname,
		l.Source,
		l.Feature,
		strconv.FormatUint(l.Start, 10),
		strconv.FormatUint(l.End, 10),
		l.Score,
		l.Strand,
		l.Frame,
		l.Attributes,
	}, "\t")
}

// Attribute returns the value of the given key in an attributes
// column: the text between the opening quote after the key and the
// next quote. The second return value is false when the key does not
// occur or its value is not quoted.
func Attribute(attributes, key string) (string, bool) {
	search := key + ` "`
	for i := 0; ; {
		j := strings.Index(attributes[i:], search)
		if j < 0 {
			return "", false
		}
		j += i
		if j == 0 || attributes[j-1] == ' ' || attributes[j-1] == ';' || attributes[j-1] == '\t' {
			from := j + len(search)
			to := strings.IndexByte(attributes[from:], '"')
			if to < 0 {
				return "", false
			}
			return attributes[from : from+to], true
		}
		i = j + len(search)
	}
}
