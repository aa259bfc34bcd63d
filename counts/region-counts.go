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

package counts

import (
	"bufio"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
	"github.com/cas-bioinf/RibosomeProfiling/regions"
)

// A RegionCount is the total read count within the region of one
// identifier.
type RegionCount struct {
	Name  string
	Count float64
}

// RegionCounts sums the per-position read counts that fall inside
// each identifier's region. The counts input has lines in
// '[identifier]\t[position]\t[count]' format; positions outside the
// region do not contribute. Counts for identifiers without a region
// are skipped, with one log message per identifier. An empty result
// is a fatal condition, since there is nothing to normalize with. The
// returned rows are sorted by identifier.
func RegionCounts(table regions.Table, input io.Reader) ([]RegionCount, error) {
	sums := make(map[string]float64)
	missing := make(map[string]bool)
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			log.Printf("Unexpected line format, three columns expected, but %v occurred: %v", len(fields), line)
			continue
		}
		name := fields[0]
		region, found := table[name]
		if !found {
			if !missing[name] {
				log.Printf("Identifier '%v' is missing in the ranges file", name)
				missing[name] = true
			}
			continue
		}
		pos, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			log.Printf("Unexpected line format - invalid position: %v", line)
			continue
		}
		count, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			log.Printf("Unexpected line format - invalid count: %v", line)
			continue
		}
		if region.From <= pos && pos < region.To {
			sums[name] += count
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(sums) == 0 {
		return nil, internal.NewStatusError(internal.StatusBadInput,
			"No coefficient was loaded, it is not possible to normalize.")
	}
	rows := make([]RegionCount, 0, len(sums))
	for name, count := range sums {
		rows = append(rows, RegionCount{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

// WriteRegionCounts writes region counts in tab-separated values file
// format, with up to 10 significant digits per count.
func WriteRegionCounts(output io.Writer, rows []RegionCount) error {
	buf := bufio.NewWriter(output)
	for _, row := range rows {
		if _, err := buf.WriteString(row.Name + "\t" + strconv.FormatFloat(row.Count, 'g', 10, 64) + "\n"); err != nil {
			return err
		}
	}
	return buf.Flush()
}
