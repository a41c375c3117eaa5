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

// Package pagesrc obtains fresh page-aligned memory from the operating system.
//
// Memory handed out by a Source is never given back: there is no Release.
package pagesrc

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// PageSize is the granularity of every mapping.
// It must not be larger than the OS page size on any supported platform,
// so that the first word of any address's page is always readable.
const PageSize = 4096

// ErrBadLength is returned for lengths that are not a positive multiple of PageSize.
var ErrBadLength = errors.New("pagesrc: bad length")

// Source maps anonymous, zeroed, read/write memory. It's safe for concurrent use.
type Source struct{}

// New returns a Source.
func New() *Source {
	return &Source{}
}

// Acquire returns the base of a new mapping of exactly length bytes.
// length must already be rounded up to PageSize, see RoundUp.
// The returned address is PageSize aligned and the memory is zeroed.
func (s *Source) Acquire(length int) (unsafe.Pointer, error) {
	if length <= 0 || length%PageSize != 0 {
		return nil, fmt.Errorf("%w: %d is not a positive multiple of %d", ErrBadLength, length, PageSize)
	}
	return mapAnon(length)
}

// RoundUp rounds n up to a multiple of PageSize.
// It returns -1 if the result does not fit in an int.
func RoundUp(n int) int {
	if n > math.MaxInt-(PageSize-1) {
		return -1
	}
	return (n + PageSize - 1) &^ (PageSize - 1)
}
