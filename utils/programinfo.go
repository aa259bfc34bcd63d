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

// Package utils provides common auxiliary definitions.
package utils

const (
	// ProgramName is "RibosomeProfiling"
	ProgramName = "RibosomeProfiling"

	// ProgramVersion is the version of the RibosomeProfiling binary
	ProgramVersion = "1.2.0"

	// ProgramURL is the repository for the RibosomeProfiling source code
	ProgramURL = "http://github.com/cas-bioinf/RibosomeProfiling"
)
