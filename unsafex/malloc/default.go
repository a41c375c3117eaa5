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

package malloc

import (
	"sync"
	"unsafe"
)

var (
	defaultOnce      sync.Once
	defaultAllocator *Allocator
)

// Default returns the process-wide Allocator, creating it on first use.
// It lives as long as the process.
func Default() *Allocator {
	defaultOnce.Do(func() {
		defaultAllocator = New(nil)
	})
	return defaultAllocator
}

// Malloc calls Alloc on the default Allocator.
func Malloc(size int) unsafe.Pointer {
	return Default().Alloc(size)
}

// Free calls Free on the default Allocator.
func Free(p unsafe.Pointer) {
	Default().Free(p)
}

// UsableSize calls UsableSize on the default Allocator.
func UsableSize(p unsafe.Pointer) int {
	return Default().UsableSize(p)
}

// ReadStats returns the default Allocator's Stats.
func ReadStats() Stats {
	return Default().Stats()
}
