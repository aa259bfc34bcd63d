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

package internal

import (
	"errors"
	"fmt"
)

// Exit statuses of the fatal condition classes shared by the
// command-line tools. The numeric values are stable; pipeline scripts
// built around the tools depend on them.
const (
	StatusBadInvocation       = 1
	StatusBadInput            = 2
	StatusDuplicateSequence   = 3
	StatusEmptyLine           = 4
	StatusBadColumns          = 5
	StatusUnknownIdentifier   = 6
	StatusMissingAttribute    = 8
	StatusMissingColumns      = 11
	StatusUnenclosedAttribute = 13
	StatusTruncatedGroup      = 17
	StatusUnsupportedBase     = 30
	StatusBadStrand           = 34
)

// A StatusError is a fatal condition that carries the exit status of
// its condition class.
type StatusError struct {
	status int
	msg    string
}

// NewStatusError creates a StatusError with the given exit status and
// message.
func NewStatusError(status int, format string, args ...interface{}) *StatusError {
	return &StatusError{status: status, msg: fmt.Sprintf(format, args...)}
}

func (err *StatusError) Error() string {
	return err.msg
}

// Status returns the exit status of the condition class.
func (err *StatusError) Status() int {
	return err.status
}

// ExitStatus returns the exit status for an error. Errors outside the
// known condition classes map to StatusBadInvocation.
func ExitStatus(err error) int {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Status()
	}
	return StatusBadInvocation
}
