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
	"os"
	"runtime"

	"github.com/cas-bioinf/RibosomeProfiling/counts"
)

// ReadCountsHelp is the help string for this command.
const ReadCountsHelp = "\nread-counts parameters:\n" +
	"RibosomeProfiling read-counts [flag...]\n" +
	"[--nr-of-threads number]\n" +
	"[--log-path path]\n" +
	"\nReads a file in SAM format from standard input, groups the reads by RNAME\n" +
	"and POS, and prints the read counts to standard output in tab-separated\n" +
	"values file format.\n"

// ReadCounts implements the read-counts command.
func ReadCounts() error {
	var (
		nrOfThreads int
		logPath     string
	)
	flags := flag.NewFlagSet("read-counts", flag.ContinueOnError)
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	if len(os.Args) > 2 {
		args := parseCommandArgs(flags, ReadCountsHelp)
		requireArgs(args, 0, ReadCountsHelp)
	}
	if logPath != "" {
		setLogOutput(logPath)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}
	rows, err := counts.ReadCounts(os.Stdin)
	if err != nil {
		return err
	}
	return counts.WriteCounts(os.Stdout, rows)
}
