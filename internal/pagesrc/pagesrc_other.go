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

//go:build !(linux || darwin || netbsd || freebsd || openbsd || dragonfly)

package pagesrc

import (
	"sync"
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Without anonymous mmap, pages are carved from the Go heap.
// Buffers are kept reachable forever: callers store links inside them
// which the GC never scans.
var (
	mu       sync.Mutex
	retained [][]byte
)

func mapAnon(length int) (unsafe.Pointer, error) {
	// one extra page leaves room to align the window
	buf := dirtmake.Bytes(length+PageSize, length+PageSize)
	off := int(-uintptr(unsafe.Pointer(unsafe.SliceData(buf))) & (PageSize - 1))
	window := buf[off : off+length]
	clear(window)

	mu.Lock()
	retained = append(retained, buf)
	mu.Unlock()
	return unsafe.Pointer(unsafe.SliceData(window)), nil
}
