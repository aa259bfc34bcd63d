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

package cmd

import (
	"flag"
	"runtime"

	"github.com/cas-bioinf/RibosomeProfiling/sam"
)

// FilterReverseReadsHelp is the help string for this command.
const FilterReverseReadsHelp = "\nfilter-reverse-reads parameters:\n" +
	"RibosomeProfiling filter-reverse-reads [flag...] (sam-file sam-output-file)...\n" +
	"[--nr-of-threads number]\n" +
	"[--timed]\n" +
	"[--log-path path]\n" +
	"\nReads each sam-file, removes all reads aligned to the reverse strand, and\n" +
	"writes the remaining reads to the corresponding sam-output-file. Reads that\n" +
	"align to multiple locations must be laid out consecutively, with valid NH\n" +
	"tags; when some alignments of a read are removed, the NH, HI and MAPQ fields\n" +
	"of the remaining ones are recomputed, and a new primary alignment is chosen\n" +
	"if necessary. The file pairs are processed in parallel.\n"

// FilterReverseReads implements the filter-reverse-reads command.
func FilterReverseReads() error {
	var (
		nrOfThreads int
		timed       bool
		logPath     string
	)
	flags := flag.NewFlagSet("filter-reverse-reads", flag.ContinueOnError)
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, FilterReverseReadsHelp)
	pairs := filePairs(args, FilterReverseReadsHelp)
	if logPath != "" {
		setLogOutput(logPath)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}
	return timedRun(timed, "", "Filtering reverse reads.", 1, func() error {
		return sam.RunPairs(pairs, sam.Policy{Record: sam.KeepForward()})
	})
}
