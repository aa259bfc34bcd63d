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

// Package regions implements tables of per-identifier regions loaded
// from tab-separated values files.
package regions

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
)

// An Interval is a half-open position range [From, To).
type Interval struct {
	From, To uint64
}

// A Table maps identifiers to their region of interest.
type Table map[string]Interval

// ParseRanges reads a region table from a tab-separated values file.
// A line in '[identifier]\t[from]\t[to]' format declares the region
// [from, to); a line in '[identifier]\t[length]' format declares the
// region [1, 1+length). Malformed lines are logged and skipped; a
// later line for the same identifier wins.
func ParseRanges(filename string) (table Table, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	table = make(Table)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 2:
			length, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				log.Printf("Unexpected line format - invalid length: %v", line)
				continue
			}
			table[fields[0]] = Interval{From: 1, To: 1 + length}
		case 3:
			from, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				log.Printf("Unexpected line format - invalid start position: %v", line)
				continue
			}
			to, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				log.Printf("Unexpected line format - invalid end position: %v", line)
				continue
			}
			table[fields[0]] = Interval{From: from, To: to}
		default:
			log.Printf("Unexpected line format, two or three columns expected, but %v occurred: %v", len(fields), line)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return table, nil
}
