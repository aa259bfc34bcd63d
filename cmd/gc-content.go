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
	"github.com/cas-bioinf/RibosomeProfiling/fasta"
)

// GCContentHelp is the help string for this command.
const GCContentHelp = "\ngc-content parameters:\n" +
	"RibosomeProfiling gc-content [flag...] fasta-file gtf-file\n" +
	"[--timed]\n" +
	"[--profile prefix]\n" +
	"[--log-path path]\n" +
	"\nComputes the GC content of every gene annotated in gtf-file, split by\n" +
	"feature type, over the genome in fasta-file. The table is written to\n" +
	"standard output in tab-separated values file format, one row per gene and\n" +
	"one column per feature type.\n"

// GCContent implements the gc-content command.
func GCContent() error {
	var (
		timed   bool
		profile string
		logPath string
	)
	flags := flag.NewFlagSet("gc-content", flag.ContinueOnError)
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a CPU profile per phase with the specified prefix")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, GCContentHelp)
	requireArgs(args, 2, GCContentHelp)
	if ok := checkExist(args[0]); !checkExist(args[1]) || !ok {
		os.Exit(1)
	}
	if logPath != "" {
		setLogOutput(logPath)
	}
	var sequences map[string][]byte
	err := timedRun(timed, profile, "Reading the genome.", 1, func() (err error) {
		sequences, err = fasta.ParseFasta(args[0])
		return err
	})
	if err != nil {
		return err
	}
	return timedRun(timed, profile, "Computing GC content.", 2, func() (err error) {
		annotations, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer func() {
			if nerr := annotations.Close(); err == nil {
				err = nerr
			}
		}()
		report, err := counts.GCContent(sequences, annotations, args[1])
		if err != nil {
			return err
		}
		return report.Format(os.Stdout)
	})
}
