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
	"fmt"
	"os"

	"github.com/cas-bioinf/RibosomeProfiling/gtf"
)

// TranscriptsStartStopPositionsHelp is the help string for this command.
const TranscriptsStartStopPositionsHelp = "\ntranscripts-startstop-positions parameters:\n" +
	"RibosomeProfiling transcripts-startstop-positions [flag...] gtf-file\n" +
	"[--log-path path]\n" +
	"\nParses the annotations in GTF format from gtf-file and identifies the start\n" +
	"and stop codon positions of each transcript, in coordinates relative to the\n" +
	"transcript. The positions are printed to standard output in tab-separated\n" +
	"values file format; inconsistently annotated transcripts are reported and\n" +
	"left out.\n"

// TranscriptsStartStopPositions implements the
// transcripts-startstop-positions command.
func TranscriptsStartStopPositions() error {
	var logPath string
	flags := flag.NewFlagSet("transcripts-startstop-positions", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, TranscriptsStartStopPositionsHelp)
	requireArgs(args, 1, TranscriptsStartStopPositionsHelp)
	if !checkExist(args[0]) {
		os.Exit(1)
	}
	if logPath != "" {
		setLogOutput(logPath)
	}
	rows, err := gtf.StartStopPositions(args[0])
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(os.Stdout)
	for _, row := range rows {
		if _, err := fmt.Fprintf(buf, "%v\t%v\t%v\n", row.Transcript, row.Start, row.Stop); err != nil {
			return err
		}
	}
	return buf.Flush()
}
