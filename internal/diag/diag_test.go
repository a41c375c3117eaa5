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

package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type exitCalled int

// hook replaces the writer and exit func, and records everything written.
func hook(t *testing.T, w func(b []byte) (int, error)) *[]string {
	t.Helper()
	oldWrite, oldExit := write, exit
	t.Cleanup(func() { write, exit = oldWrite, oldExit })

	var written []string
	write = func(b []byte) (int, error) {
		n, err := w(b)
		written = append(written, string(b[:n]))
		return n, err
	}
	exit = func(code int) { panic(exitCalled(code)) }
	return &written
}

func fullWrite(b []byte) (int, error) { return len(b), nil }

func TestLog(t *testing.T) {
	written := hook(t, fullWrite)

	Log("mmap failed! Giving up.\n")
	assert.Equal(t, []string{"mmap failed! Giving up.\n"}, *written)
}

func TestLogWriteFailed(t *testing.T) {
	tests := []struct {
		name string
		w    func(b []byte) (int, error)
	}{
		{"short_write", func(b []byte) (int, error) {
			if string(b) == logFailedMsg {
				return len(b), nil
			}
			return len(b) / 2, nil
		}},
		{"error", func(b []byte) (int, error) {
			if string(b) == logFailedMsg {
				return len(b), nil
			}
			return 0, errors.New("bad fd")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			written := hook(t, tt.w)
			assert.PanicsWithValue(t, exitCalled(ExitCode), func() { Log("0123456789\n") })
			last := (*written)[len(*written)-1]
			assert.Equal(t, logFailedMsg, last)
		})
	}
}

func TestFatal(t *testing.T) {
	written := hook(t, fullWrite)

	assert.PanicsWithValue(t, exitCalled(ExitCode), func() { Fatal("boom\n") })
	assert.Equal(t, []string{"boom\n"}, *written)
}

func TestLogNoAlloc(t *testing.T) {
	hook(t, func(b []byte) (int, error) { return len(b), nil })
	// the recording wrapper in hook allocates, so measure with a plain writer
	write = fullWrite
	n := testing.AllocsPerRun(100, func() { Log("no allocation\n") })
	assert.Equal(t, float64(0), n)
}
