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

// Package cmd implements the command line interface of the
// RibosomeProfiling binary.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/cas-bioinf/RibosomeProfiling/internal"
	"github.com/cas-bioinf/RibosomeProfiling/sam"
	"github.com/cas-bioinf/RibosomeProfiling/utils"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// ProgramMessage is the first line printed when the RibosomeProfiling
// binary is called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

// parseCommandArgs parses the optional flags of a command and returns
// its positional arguments. A command invoked without any arguments
// prints its usage and succeeds; an unparsable flag prints the usage
// and fails.
func parseCommandArgs(flags *flag.FlagSet, help string) []string {
	if len(os.Args) <= 2 {
		fmt.Fprint(os.Stderr, help)
		os.Exit(0)
	}
	flags.SetOutput(io.Discard)
	if err := flags.Parse(os.Args[2:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
	return flags.Args()
}

// requireArgs validates that a command received its exact number of
// positional arguments.
func requireArgs(args []string, n int, help string) {
	if len(args) != n {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}

// filePairs validates the trailing arguments of a command that
// processes input/output file pairs: a non-empty, even-length list of
// existing inputs and creatable outputs.
func filePairs(args []string, help string) []sam.Pair {
	if len(args) == 0 || len(args)%2 != 0 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
	ok := true
	pairs := make([]sam.Pair, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		ok = checkExist(args[i]) && ok
		ok = checkCreate(args[i+1]) && ok
		pairs = append(pairs, sam.Pair{In: args[i], Out: args[i+1]})
	}
	if !ok {
		os.Exit(1)
	}
	return pairs
}

func checkExist(filename string) bool {
	if len(filename) == 0 {
		log.Println("Error: Missing filename.")
		return false
	}
	if filename[0] == '-' {
		log.Printf("Error: Missing filename before %v.\n", filename)
		return false
	}
	if _, err := os.Stat(filename); err == nil {
		return true
	} else if os.IsNotExist(err) {
		log.Printf("Error: File %v does not exist.\n", filename)
		return false
	} else if os.IsPermission(err) {
		log.Printf("Error: No permission to read file %v.\n", filename)
		return false
	} else {
		log.Printf("Error %v when trying to access file %v.\n", err, filename)
		return false
	}
}

func checkCreate(filename string) bool {
	if len(filename) == 0 {
		log.Println("Error: Missing filename.")
		return false
	}
	if filename[0] == '-' {
		log.Printf("Error: Missing filename before %v.\n", filename)
		return false
	}
	if _, err := os.Stat(filename); err == nil {
		// Assume that the file has been written by previous runs, and can be overwritten.
		return true
	}
	err := os.MkdirAll(filepath.Dir(filename), 0700)
	if err == nil {
		err = os.WriteFile(filename, nil, 0666)
	}
	if err != nil {
		if os.IsPermission(err) {
			log.Printf("Error: No permission to create file %v.\n", filename)
		} else {
			log.Printf("Error %v when trying to create file %v.\n", err, filename)
		}
		return false
	}
	_ = os.Remove(filename)
	return true
}

func createLogFilename() string {
	t := time.Now()
	return fmt.Sprintf("logs/RibosomeProfiling/run-%d-%02d-%02d-%02d-%02d-%02d-%v.log",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), uuid.New())
}

func setLogOutput(path string) {
	logPath := createLogFilename()
	var fullPath string
	if path == "" {
		fullPath = filepath.Join(os.Getenv("HOME"), logPath)
	} else {
		fullPath = filepath.Join(path, logPath)
	}
	internal.MkdirAll(filepath.Dir(fullPath), 0700)
	f := internal.FileCreate(fullPath)
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		log.Panic(err)
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		log.Panic(err)
	}

	multi := io.MultiWriter(f, ferr)

	log.SetOutput(multi)
	log.Println("Created log file at", fullPath)
	log.Println("Command line:", os.Args)
}

func timedRun(timed bool, profile, msg string, phase int64, f func() error) error {
	if profile != "" {
		filename := fmt.Sprint(profile, phase, ".prof")
		file := internal.FileCreate(filename)
		defer internal.Close(file)
		if err := pprof.StartCPUProfile(file); err != nil {
			log.Panic(err)
		}
		defer pprof.StopCPUProfile()
	}
	if timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			end := time.Now()
			log.Println("Elapsed time: ", end.Sub(start))
		}()
	}
	return f()
}
