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
	"sort"
	"strconv"
	"strings"

	"github.com/cas-bioinf/RibosomeProfiling/gtf"
	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

// baseCounts counts how often each base code occurs within the
// regions of one gene and feature type.
type baseCounts map[byte]uint64

// gcFraction returns the GC content over the counted bases. N bases
// are ignored; U counts like T.
func (counts baseCounts) gcFraction() float64 {
	gc := counts['C'] + counts['G']
	all := gc + counts['A'] + counts['T'] + counts['U']
	return float64(gc) / float64(all)
}

// A GCReport holds the GC content of every gene, split by feature
// type.
type GCReport struct {
	features []string
	// chromosome -> gene -> feature -> base counts
	stats map[string]map[string]map[string]baseCounts
}

// complement maps a base to its reverse strand complement. A base
// without a defined complement is a fatal condition.
func complement(base byte) (byte, error) {
	switch base {
	case 'A':
		return 'T', nil
	case 'C':
		return 'G', nil
	case 'G':
		return 'C', nil
	case 'T', 'U':
		return 'A', nil
	case 'N':
		return 'N', nil
	}
	return 0, internal.NewStatusError(internal.StatusUnsupportedBase,
		"Unsupported base code: '%c'.", base)
}

// GCContent counts the base content of every annotated gene region,
// per feature type, over the given genome sequences. The annotations
// are read in GTF format; gene and transcript lines span the regions
// of their parts and are skipped. For regions on the reverse strand
// the complementary bases are counted.
func GCContent(sequences map[string][]byte, annotations io.Reader, filename string) (*GCReport, error) {
	report := &GCReport{stats: make(map[string]map[string]map[string]baseCounts)}
	features := make(map[string]bool)
	scanner := bufio.NewScanner(annotations)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil, internal.NewStatusError(internal.StatusEmptyLine,
				"Unexpected empty line within annotations file '%v'.", filename)
		}
		if gtf.IsComment(line) {
			continue
		}
		fields := strings.SplitN(line, "\t", 9)
		if len(fields) < 9 {
			return nil, internal.NewStatusError(internal.StatusBadColumns,
				"Not enough columns in a line within annotations file: '%v'.", line)
		}
		chromosome := fields[0]
		feature := fields[2]
		if feature == "gene" || feature == "transcript" {
			continue
		}
		from, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			return nil, internal.NewStatusError(internal.StatusBadColumns,
				"Invalid start position in a line within annotations file: '%v'.", line)
		}
		to, err := strconv.ParseUint(fields[4], 10, 64)
		if err != nil {
			return nil, internal.NewStatusError(internal.StatusBadColumns,
				"Invalid end position in a line within annotations file: '%v'.", line)
		}
		if fields[6] != "+" && fields[6] != "-" {
			return nil, internal.NewStatusError(internal.StatusBadStrand,
				"Unexpected strand format in a line within annotations file: '%v'.", line)
		}
		forward := fields[6] == "+"
		gene, found := gtf.Attribute(fields[8], "gene_id")
		if !found {
			if !strings.Contains(fields[8], `gene_id "`) {
				return nil, internal.NewStatusError(internal.StatusMissingAttribute,
					"Missing 'gene_id' field in a line within annotations file: '%v'.", line)
			}
			return nil, internal.NewStatusError(internal.StatusUnenclosedAttribute,
				"Unenclosed 'gene_id' field in a line within annotations file: '%v'.", line)
		}
		sequence, found := sequences[chromosome]
		if !found || from < 1 || to > uint64(len(sequence)) {
			return nil, internal.NewStatusError(internal.StatusBadInput,
				"Annotations refer outside the sequences within line: '%v'.", line)
		}
		features[feature] = true
		genes := report.stats[chromosome]
		if genes == nil {
			genes = make(map[string]map[string]baseCounts)
			report.stats[chromosome] = genes
		}
		stats := genes[gene]
		if stats == nil {
			stats = make(map[string]baseCounts)
			genes[gene] = stats
		}
		counts := stats[feature]
		if counts == nil {
			counts = make(baseCounts)
			stats[feature] = counts
		}
		for i := from - 1; i < to; i++ {
			base := sequence[i]
			if !forward {
				if base, err = complement(base); err != nil {
					return nil, err
				}
			}
			counts[base]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	report.features = make([]string, 0, len(features))
	for feature := range features {
		report.features = append(report.features, feature)
	}
	sort.Strings(report.features)
	return report, nil
}

// Format writes the report as a table with one row per gene and one
// column per feature type. Genes without a region of some feature
// type get NA in that column.
func (report *GCReport) Format(output io.Writer) error {
	buf := bufio.NewWriter(output)
	if _, err := buf.WriteString("gene_id"); err != nil {
		return err
	}
	for _, feature := range report.features {
		if _, err := buf.WriteString("\t" + feature); err != nil {
			return err
		}
	}
	chromosomes := make([]string, 0, len(report.stats))
	for chromosome := range report.stats {
		chromosomes = append(chromosomes, chromosome)
	}
	sort.Strings(chromosomes)
	for _, chromosome := range chromosomes {
		genes := report.stats[chromosome]
		names := make([]string, 0, len(genes))
		for gene := range genes {
			names = append(names, gene)
		}
		sort.Strings(names)
		for _, gene := range names {
			if _, err := buf.WriteString("\n" + gene); err != nil {
				return err
			}
			for _, feature := range report.features {
				counts, found := genes[gene][feature]
				if !found {
					if _, err := buf.WriteString("\tNA"); err != nil {
						return err
					}
					continue
				}
				if _, err := buf.WriteString("\t" + strconv.FormatFloat(counts.gcFraction(), 'g', 6, 64)); err != nil {
					return err
				}
			}
		}
	}
	if err := buf.WriteByte('\n'); err != nil {
		return err
	}
	return buf.Flush()
}
