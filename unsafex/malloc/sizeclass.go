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
	"math/bits"

	"github.com/cloudwego/pagemalloc/internal/pagesrc"
)

const (
	// PageSize is the size and alignment of every small-object page.
	PageSize = pagesrc.PageSize

	// MinClassSize is the smallest chunk size. Alloc never returns less.
	MinClassSize = 16

	// MaxClassSize is the largest chunk size.
	// Requests above it are served by a dedicated mapping.
	MaxClassSize = 2048

	// NumClasses is the number of small-object size classes.
	NumClasses = 8
)

const minClassShift = 4 // log2(MinClassSize)

// ClassSize returns the chunk size that serves a request of size bytes:
// the smallest of 16, 32, ..., 2048 that is >= size.
// It returns large=true, with chunk 0, if size > MaxClassSize.
func ClassSize(size int) (chunk int, large bool) {
	if size > MaxClassSize {
		return 0, true
	}
	if size <= MinClassSize {
		return MinClassSize, false
	}
	return 1 << bits.Len(uint(size-1)), false
}

// classIndex maps a chunk size to its free list index in [0, NumClasses).
// It returns -1 for anything that is not one of the class sizes.
func classIndex(chunk int) int {
	if chunk < MinClassSize || chunk > MaxClassSize || chunk&(chunk-1) != 0 {
		return -1
	}
	return bits.TrailingZeros(uint(chunk)) - minClassShift
}

// classSize is the inverse of classIndex.
func classSize(idx int) int {
	return MinClassSize << idx
}
