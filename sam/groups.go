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
	"io"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

// ReadGroup completes a multiplicity group around its first record,
// which the caller has already read, by fetching the remaining n-1
// lines from the input. The group is returned in input order. An
// input that ends before the group is complete is a fatal condition:
// a declared multiplicity is a promise about the records that follow.
func ReadGroup(input *InputFile, first *Record, n uint64) ([]*Record, error) {
	group := make([]*Record, 1, n)
	group[0] = first
	for i := uint64(1); i < n; i++ {
		line, err := input.ReadLine()
		if err == io.EOF {
			return nil, internal.NewStatusError(internal.StatusTruncatedGroup,
				"Unexpected end of file '%v' in the middle of a read group.", input.Name())
		}
		if err != nil {
			return nil, err
		}
		group = append(group, ParseRecord(line))
	}
	return group, nil
}
