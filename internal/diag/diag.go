// Copyright 2026 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag reports fatal allocator conditions.
//
// Everything here may run while the allocator itself is failing, so messages are
// written to stderr with a single unbuffered write and nothing is allocated.
package diag

import (
	"os"

	"github.com/cloudwego/pagemalloc/unsafex"
)

// ExitCode is the process exit status used for fatal conditions.
const ExitCode = 2

const logFailedMsg = "logging failed\n"

// swapped by tests
var (
	write = writeStderr
	exit  = os.Exit
)

// Log writes msg to stderr as is.
// If msg cannot be written in full, it tries to report that and exits with ExitCode.
func Log(msg string) {
	b := unsafex.StringToBinary(msg)
	if n, err := write(b); err != nil || n != len(b) {
		_, _ = write(unsafex.StringToBinary(logFailedMsg))
		exit(ExitCode)
	}
}

// Fatal writes msg to stderr and exits with ExitCode.
func Fatal(msg string) {
	Log(msg)
	exit(ExitCode)
}
