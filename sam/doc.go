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

// Package sam implements a streaming consistency engine for SAM
// files whose reads map to multiple locations.
//
// Alignment records that belong to the same read form a multiplicity
// group, declared by the NH tag of the first record of the group and
// laid out consecutively in the file. Record content is filtered by
// policies: a RecordPolicy decides record by record, a GroupPolicy
// decides for a whole group at once. When a per-record policy shrinks
// a group, the derived fields of the surviving records (NH, HI, MAPQ
// and the primary alignment flag) are rewritten so the group stays
// internally consistent; records of groups that pass unchanged are
// reproduced byte for byte.
//
// FilterFile streams a single input file to a single output file in
// constant memory per group. RunPairs applies the same policy to a
// list of independent input/output file pairs in parallel, using the
// pargo library; see https://godoc.org/github.com/ExaScience/pargo
// for details of pargo pipelines if necessary.
package sam
