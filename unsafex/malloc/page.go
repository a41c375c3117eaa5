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
	"unsafe"
)

// Every small-object page starts with a chunkHeader.
// The header lives in slot 0, so a page of chunk size c holds PageSize/c-1 usable chunks.
// This file is the only place that computes addresses.

// headerMagic marks pages carved by this package.
const headerMagic uintptr = 10230829

type chunkHeader struct {
	chunkSize uintptr
	magic     uintptr
}

// page is a handle to a PageSize aligned small-object page.
type page struct {
	base unsafe.Pointer
}

// pageOf returns the page containing p.
// p may point anywhere, including memory not owned by this package.
//
//go:nocheckptr
func pageOf(p unsafe.Pointer) page {
	return page{base: unsafe.Add(p, -int(uintptr(p)&(PageSize-1)))}
}

// init writes the header of a freshly mapped page.
func (pg page) init(chunk int) {
	h := (*chunkHeader)(pg.base)
	h.chunkSize = uintptr(chunk)
	h.magic = headerMagic
}

// chunkSize returns the chunk size recorded in the header,
// or 0 if the page doesn't carry a header written by init.
//
//go:nocheckptr
func (pg page) chunkSize() int {
	h := (*chunkHeader)(pg.base)
	if h.magic != headerMagic {
		return 0
	}
	return int(h.chunkSize)
}

func (pg page) slot(i, chunk int) freeSlot {
	return freeSlot{p: unsafe.Add(pg.base, i*chunk)}
}

// chunkOf rounds p down to the start of its chunk.
// It returns false if p lies in the header slot, which is never handed out.
//
//go:nocheckptr
func (pg page) chunkOf(p unsafe.Pointer, chunk int) (freeSlot, bool) {
	off := int(uintptr(p) - uintptr(pg.base))
	i := off / chunk
	if i == 0 {
		return freeSlot{}, false
	}
	return pg.slot(i, chunk), true
}

// carve threads every usable slot of pg onto one list and returns its head.
// The last slot links to the nil slot.
func (pg page) carve(chunk int) freeSlot {
	n := PageSize / chunk
	for i := 1; i < n-1; i++ {
		pg.slot(i, chunk).setNext(pg.slot(i+1, chunk))
	}
	pg.slot(n-1, chunk).setNext(freeSlot{})
	return pg.slot(1, chunk)
}

// freeSlot is a chunk while it sits on a free list.
// Its first word links to the next free chunk of the same class.
type freeSlot struct {
	p unsafe.Pointer
}

func (s freeSlot) isNil() bool {
	return s.p == nil
}

func (s freeSlot) next() freeSlot {
	return freeSlot{p: *(*unsafe.Pointer)(s.p)}
}

func (s freeSlot) setNext(n freeSlot) {
	*(*unsafe.Pointer)(s.p) = n.p
}
