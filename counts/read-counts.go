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

// Package counts computes read count statistics over alignment
// streams and genome annotations.
package counts

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	psort "github.com/exascience/pargo/sort"
)

// A PositionCount is the number of reads aligned to one position of
// one reference sequence.
type PositionCount struct {
	Name  string
	Pos   uint64
	Count uint64
}

type (
	// By is a predicate to sort position counts.
	By func(c1, c2 *PositionCount) bool

	countSorter struct {
		counts []PositionCount
		by     By
	}
)

func (s countSorter) SequentialSort(i, j int) {
	counts, by := s.counts[i:j], s.by
	sort.Slice(counts, func(i, j int) bool {
		return by(&counts[i], &counts[j])
	})
}

func (s countSorter) NewTemp() psort.StableSorter {
	return countSorter{make([]PositionCount, len(s.counts)), s.by}
}

func (s countSorter) Len() int {
	return len(s.counts)
}

func (s countSorter) Less(i, j int) bool {
	return s.by(&s.counts[i], &s.counts[j])
}

func (s countSorter) Assign(p psort.StableSorter) func(i, j, len int) {
	dst, src := s.counts, p.(countSorter).counts
	return func(i, j, len int) {
		for k := 0; k < len; k++ {
			dst[i+k] = src[j+k]
		}
	}
}

// ParallelStableSort sorts position counts by the given predicate
// using a parallel stable sort.
func (by By) ParallelStableSort(counts []PositionCount) {
	psort.StableSort(countSorter{counts, by})
}

// PositionLess orders position counts by reference sequence name,
// then by position.
func PositionLess(c1, c2 *PositionCount) bool {
	if c1.Name != c2.Name {
		return c1.Name < c2.Name
	}
	return c1.Pos < c2.Pos
}

// ReadCounts groups the alignment records of a SAM stream by RNAME
// and POS and counts the reads per position. Header lines are
// ignored; malformed alignment lines are logged and skipped. The
// returned counts are sorted by name and position.
func ReadCounts(input io.Reader) ([]PositionCount, error) {
	counts := make(map[string]map[uint64]uint64)
	reader := bufio.NewReader(input)
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line = strings.TrimSuffix(line, "\n")
		if line == "" || line[0] == '@' {
			continue
		}
		fields := strings.SplitN(line, "\t", 5)
		if len(fields) < 4 {
			log.Printf("Unexpected line format - not enough columns: %v", line)
			continue
		}
		pos, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			log.Printf("Unexpected line format - invalid position: %v", line)
			continue
		}
		name := fields[2]
		if counts[name] == nil {
			counts[name] = make(map[uint64]uint64)
		}
		counts[name][pos]++
	}
	var rows []PositionCount
	for name, positions := range counts {
		for pos, count := range positions {
			rows = append(rows, PositionCount{Name: name, Pos: pos, Count: count})
		}
	}
	By(PositionLess).ParallelStableSort(rows)
	return rows, nil
}

// WriteCounts writes position counts in tab-separated values file
// format.
func WriteCounts(output io.Writer, counts []PositionCount) error {
	buf := bufio.NewWriter(output)
	for _, c := range counts {
		if _, err := fmt.Fprintf(buf, "%v\t%v\t%v\n", c.Name, c.Pos, c.Count); err != nil {
			return err
		}
	}
	return buf.Flush()
}
