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
	"testing"
)

func TestFormatRoundTrip(t *testing.T) {
	line := "read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:2\tHI:i:1"
	if ParseRecord(line).Format() != line {
		t.Error("parsed record does not format back to the input line")
	}
}

func TestIsHeaderLine(t *testing.T) {
	if !IsHeaderLine("@SQ\tSN:ENST1\tLN:100") {
		t.Error("@SQ line not recognized as header")
	}
	if IsHeaderLine("read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII") {
		t.Error("alignment line recognized as header")
	}
}

func TestFlagClear(t *testing.T) {
	if ParseRecord("read1\t16\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII").FlagClear(Reversed) {
		t.Error("reversed flag reported clear")
	}
	if !ParseRecord("read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII").FlagClear(Reversed) {
		t.Error("clear reversed flag reported set")
	}
	if !ParseRecord("read1\t272\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII").FlagClear(Unmapped) {
		t.Error("clear unmapped flag reported set")
	}
	if ParseRecord("read1\tnotanumber\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII").FlagClear(Reversed) {
		t.Error("unreadable flag field counted as clear")
	}
}

func TestMultiplicity(t *testing.T) {
	n, ok := ParseRecord("read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:3\tHI:i:1").Multiplicity()
	if !ok || n != 3 {
		t.Error("NH tag not found")
	}
	// The last NH tag counts when several occur.
	n, ok = ParseRecord("read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:5\tNH:i:2").Multiplicity()
	if !ok || n != 2 {
		t.Error("last NH tag does not win")
	}
	if _, ok = ParseRecord("read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII").Multiplicity(); ok {
		t.Error("missing NH tag reported present")
	}
	if _, ok = ParseRecord("read1\t0\tENST1\t10\t255\t5M\t*\t0\t0\tACGTA\tIIIII\tNH:i:x").Multiplicity(); ok {
		t.Error("unreadable NH tag reported present")
	}
}
