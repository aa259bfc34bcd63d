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

package sam

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// InputFile reads a SAM file line by line.
type InputFile struct {
	name string
	file *os.File
	buf  *bufio.Reader
}

// OutputFile writes a SAM file line by line.
type OutputFile struct {
	name string
	file *os.File
	buf  *bufio.Writer
}

// Open opens a SAM file for reading. Use /dev/stdin to read from
// standard input.
func Open(name string) (*InputFile, error) {
	if name == "/dev/stdin" {
		return &InputFile{name: name, buf: bufio.NewReader(os.Stdin)}, nil
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	return &InputFile{name: name, file: file, buf: bufio.NewReader(file)}, nil
}

// NewInputFile wraps an arbitrary reader as a SAM input file. The
// name is only used in diagnostics.
func NewInputFile(name string, reader io.Reader) *InputFile {
	return &InputFile{name: name, buf: bufio.NewReader(reader)}
}

// Name returns the name the input file was opened with.
func (input *InputFile) Name() string {
	return input.name
}

// ReadLine reads the next line, without its line ending. It returns
// io.EOF when the input is exhausted.
func (input *InputFile) ReadLine() (string, error) {
	line, err := input.buf.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Close closes the input file.
func (input *InputFile) Close() error {
	if input.file == nil {
		return nil
	}
	return input.file.Close()
}

// Create creates a SAM file for writing. Use /dev/stdout to write to
// standard output.
func Create(name string) (*OutputFile, error) {
	if name == "/dev/stdout" {
		return &OutputFile{name: name, buf: bufio.NewWriter(os.Stdout)}, nil
	}
	file, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &OutputFile{name: name, file: file, buf: bufio.NewWriter(file)}, nil
}

// NewOutputFile wraps an arbitrary writer as a SAM output file. The
// name is only used in diagnostics.
func NewOutputFile(name string, writer io.Writer) *OutputFile {
	return &OutputFile{name: name, buf: bufio.NewWriter(writer)}
}

// Name returns the name the output file was created with.
func (output *OutputFile) Name() string {
	return output.name
}

// WriteLine writes one line followed by a newline.
func (output *OutputFile) WriteLine(line string) error {
	if _, err := output.buf.WriteString(line); err != nil {
		return err
	}
	return output.buf.WriteByte('\n')
}

// Close flushes any buffered output and closes the output file.
func (output *OutputFile) Close() error {
	err := output.buf.Flush()
	if output.file != nil {
		if nerr := output.file.Close(); err == nil {
			err = nerr
		}
	}
	return err
}
