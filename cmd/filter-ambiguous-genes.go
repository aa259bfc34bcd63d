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

	"github.com/cas-bioinf/RibosomeProfiling/gtf"
	"github.com/cas-bioinf/RibosomeProfiling/sam"
)

// FilterAmbiguousGenesHelp is the help string for this command.
const FilterAmbiguousGenesHelp = "\nfilter-ambiguous-genes parameters:\n" +
	"RibosomeProfiling filter-ambiguous-genes [flag...] gtf-file (sam-file sam-output-file)...\n" +
	"[--nr-of-threads number]\n" +
	"[--timed]\n" +
	"[--profile prefix]\n" +
	"[--log-path path]\n" +
	"\nReads each sam-file and removes every read group whose alignments map to\n" +
	"transcripts of more than one gene, according to the transcript and gene\n" +
	"identifiers in gtf-file. Groups that pass are written to the corresponding\n" +
	"sam-output-file unchanged. A transcript without a gene in gtf-file aborts\n" +
	"the run. The file pairs are processed in parallel.\n"

// FilterAmbiguousGenes implements the filter-ambiguous-genes command.
func FilterAmbiguousGenes() error {
	var (
		nrOfThreads int
		timed       bool
		profile     string
		logPath     string
	)
	flags := flag.NewFlagSet("filter-ambiguous-genes", flag.ContinueOnError)
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a CPU profile per phase with the specified prefix")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, FilterAmbiguousGenesHelp)
	if len(args) < 1 || !checkExist(args[0]) {
		os.Exit(1)
	}
	pairs := filePairs(args[1:], FilterAmbiguousGenesHelp)
	if logPath != "" {
		setLogOutput(logPath)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}
	var transcriptGenes map[string]string
	err := timedRun(timed, profile, "Reading transcript and gene identifiers.", 1, func() (err error) {
		transcriptGenes, err = gtf.TranscriptGenes(args[0])
		return err
	})
	if err != nil {
		return err
	}
	return timedRun(timed, profile, "Filtering ambiguous genes.", 2, func() error {
		return sam.RunPairs(pairs, sam.Policy{Group: sam.KeepUnambiguousGenes(transcriptGenes)})
	})
}
