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

// RibosomeProfiling is a collection of tools for processing ribosome
// profiling sequencing data: filtering multi-mapping reads in SAM
// files, preparing gene annotations, and computing read count
// statistics.
//
// Please see https://github.com/cas-bioinf/RibosomeProfiling for a
// documentation of the tools.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cas-bioinf/RibosomeProfiling/cmd"
	"github.com/cas-bioinf/RibosomeProfiling/internal"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: filter-reverse-reads, select-transcripts, filter-ambiguous-genes, gc-content, mane2ensembl-gtf, read-counts, region-readcounts, transcripts-startstop-positions")
	fmt.Fprint(os.Stderr, "\n", cmd.FilterReverseReadsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.SelectTranscriptsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.FilterAmbiguousGenesHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.GCContentHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.Mane2EnsemblGtfHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ReadCountsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.RegionReadcountsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.TranscriptsStartStopPositionsHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "filter-reverse-reads":
		err = cmd.FilterReverseReads()
	case "select-transcripts":
		err = cmd.SelectTranscripts()
	case "filter-ambiguous-genes":
		err = cmd.FilterAmbiguousGenes()
	case "gc-content":
		err = cmd.GCContent()
	case "mane2ensembl-gtf":
		err = cmd.Mane2EnsemblGtf()
	case "read-counts":
		err = cmd.ReadCounts()
	case "region-readcounts":
		err = cmd.RegionReadcounts()
	case "transcripts-startstop-positions":
		err = cmd.TranscriptsStartStopPositions()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Printf("Unknown command %v.", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Println(err)
		os.Exit(internal.ExitStatus(err))
	}
}
