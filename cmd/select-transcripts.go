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
	"bufio"
	"flag"
	"os"
	"runtime"

	"github.com/cas-bioinf/RibosomeProfiling/sam"
)

// SelectTranscriptsHelp is the help string for this command.
const SelectTranscriptsHelp = "\nselect-transcripts parameters:\n" +
	"RibosomeProfiling select-transcripts [flag...] transcripts-file (sam-file sam-output-file)...\n" +
	"[--nr-of-threads number]\n" +
	"[--timed]\n" +
	"[--log-path path]\n" +
	"\nReads each sam-file, keeps only the reads aligned to a transcript listed in\n" +
	"transcripts-file (one identifier per line), and writes them to the\n" +
	"corresponding sam-output-file. @SQ header lines of unlisted transcripts are\n" +
	"removed as well. The NH, HI and MAPQ fields and the primary alignment flag\n" +
	"of shrunken read groups are recomputed. The file pairs are processed in\n" +
	"parallel.\n"

func readTranscriptIDs(filename string) (ids map[string]bool, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := file.Close(); err == nil {
			err = nerr
		}
	}()
	ids = make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		ids[scanner.Text()] = true
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// SelectTranscripts implements the select-transcripts command.
func SelectTranscripts() error {
	var (
		nrOfThreads int
		timed       bool
		logPath     string
	)
	flags := flag.NewFlagSet("select-transcripts", flag.ContinueOnError)
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, SelectTranscriptsHelp)
	if len(args) < 1 || !checkExist(args[0]) {
		os.Exit(1)
	}
	pairs := filePairs(args[1:], SelectTranscriptsHelp)
	if logPath != "" {
		setLogOutput(logPath)
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
	}
	ids, err := readTranscriptIDs(args[0])
	if err != nil {
		return err
	}
	return timedRun(timed, "", "Selecting transcripts.", 1, func() error {
		return sam.RunPairs(pairs, sam.Policy{
			Record: sam.KeepTranscripts(ids),
			Header: sam.KeepSequenceHeaders(ids),
		})
	})
}
