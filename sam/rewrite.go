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
	"math"
	"strconv"
	"strings"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

// MapqForCount returns the mapping quality that encodes k equally
// likely alignment locations: 255 (unknown) for a unique alignment,
// otherwise the truncation of -10*log10(1-1/k).
func MapqForCount(k int) int {
	if k <= 1 {
		return 255
	}
	return int(-10 * math.Log10(1-1/float64(k)))
}

// RewriteGroup recomputes the derived fields of the k survivors of a
// multiplicity group that lost records to a per-record policy. The NH
// tag of every survivor becomes k, the HI tag its 1-based rank in the
// surviving order, and MAPQ is recomputed from k. When the primary
// alignment of the group did not survive, the first survivor is
// promoted to primary by flipping its secondary flag; survivor CIGAR
// strings are compared first, since choosing a new primary by
// alignment score is not implemented. Survivors are modified in
// place, in their original relative order.
func RewriteGroup(survivors []*Record, primarySurvived bool) error {
	k := len(survivors)
	newPrimary, promote := 0, false
	if !primarySurvived {
		cigar, err := survivors[0].Cigar()
		if err != nil {
			return err
		}
		for _, rec := range survivors[1:] {
			c, err := rec.Cigar()
			if err != nil {
				return err
			}
			if c != cigar {
				log.Printf("Not implemented yet: cannot choose a primary alignment among different CIGARs '%v'.", rec.Format())
			}
		}
		promote = true
	}
	mapq := strconv.Itoa(MapqForCount(k))
	multiplicity := multiplicityTag + strconv.Itoa(k)
	for i, rec := range survivors {
		for j, field := range rec.fields {
			switch {
			case j == 1:
				if promote && i == newPrimary {
					flag := internal.ParseUint(field, 10, 64)
					rec.fields[1] = strconv.FormatUint(flag^Secondary, 10)
				}
			case j == 4:
				rec.fields[4] = mapq
			case strings.HasPrefix(field, multiplicityTag):
				rec.fields[j] = multiplicity
			case strings.HasPrefix(field, groupIndexTag):
				rec.fields[j] = groupIndexTag + strconv.Itoa(i+1)
			}
		}
	}
	return nil
}
