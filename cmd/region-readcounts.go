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

	"github.com/cas-bioinf/RibosomeProfiling/counts"
	"github.com/cas-bioinf/RibosomeProfiling/regions"
)

// RegionReadcountsHelp is the help string for this command.
const RegionReadcountsHelp = "\nregion-readcounts parameters:\n" +
	"RibosomeProfiling region-readcounts [flag...] ranges-file counts-file\n" +
	"[--log-path path]\n" +
	"\nReads the region [from; to) or length of each identifier from ranges-file,\n" +
	"sums the per-position read counts from counts-file that fall within each\n" +
	"identifier's region, and prints the totals to standard output in\n" +
	"tab-separated values file format. ranges-file should have lines in\n" +
	"'[identifier]\\t[from]\\t[to]' or '[identifier]\\t[length]' format;\n" +
	"counts-file should have lines in '[identifier]\\t[position]\\t[count]'\n" +
	"format, as written by the read-counts command.\n"

// RegionReadcounts implements the region-readcounts command.
func RegionReadcounts() (err error) {
	var logPath string
	flags := flag.NewFlagSet("region-readcounts", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, RegionReadcountsHelp)
	requireArgs(args, 2, RegionReadcountsHelp)
	if ok := checkExist(args[0]); !checkExist(args[1]) || !ok {
		os.Exit(1)
	}
	if logPath != "" {
		setLogOutput(logPath)
	}
	table, err := regions.ParseRanges(args[0])
	if err != nil {
		return err
	}
	input, err := os.Open(args[1])
	if err != nil {
		return err
	}
	defer func() {
		if nerr := input.Close(); err == nil {
			err = nerr
		}
	}()
	rows, err := counts.RegionCounts(table, input)
	if err != nil {
		return err
	}
	return counts.WriteRegionCounts(os.Stdout, rows)
}
