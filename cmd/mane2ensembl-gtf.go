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

	"github.com/cas-bioinf/RibosomeProfiling/gtf"
)

// Mane2EnsemblGtfHelp is the help string for this command.
const Mane2EnsemblGtfHelp = "\nmane2ensembl-gtf parameters:\n" +
	"RibosomeProfiling mane2ensembl-gtf [flag...] gtf-file gtf-output-file\n" +
	"[--log-path path]\n" +
	"\nRewrites the MANE annotations in GTF format from gtf-file to be consistent\n" +
	"with the annotations Ensembl distributes, and stores them in\n" +
	"gtf-output-file:\n" +
	"1. 'chr' is removed from the beginning of seqnames;\n" +
	"2. 'UTR' features are classified as 'five_prime_utr' or 'three_prime_utr';\n" +
	"3. stop codons are not considered to be a part of the 3'UTR;\n" +
	"4. the gene_id attribute is split into gene_id and gene_version, the same\n" +
	"   for transcript_id etc.;\n" +
	"5. '*_type' attributes are renamed '*_biotype'.\n"

// Mane2EnsemblGtf implements the mane2ensembl-gtf command.
func Mane2EnsemblGtf() (err error) {
	var logPath string
	flags := flag.NewFlagSet("mane2ensembl-gtf", flag.ContinueOnError)
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	args := parseCommandArgs(flags, Mane2EnsemblGtfHelp)
	requireArgs(args, 2, Mane2EnsemblGtfHelp)
	if ok := checkExist(args[0]); !checkCreate(args[1]) || !ok {
		os.Exit(1)
	}
	if logPath != "" {
		setLogOutput(logPath)
	}
	input, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		if nerr := input.Close(); err == nil {
			err = nerr
		}
	}()
	output, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); err == nil {
			err = nerr
		}
	}()
	return gtf.Mane2Ensembl(input, output)
}
