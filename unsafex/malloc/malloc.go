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

// Package malloc implements a page-backed size-class allocator living outside the Go heap.
//
// Requests up to MaxClassSize are rounded up to one of eight chunk sizes
// (16, 32, ..., 2048 bytes). Chunks are carved lazily from PageSize pages and
// recycled through per-class LIFO free lists threaded through the free chunks
// themselves. Every small-object page begins with a header holding its chunk
// size and a magic number, which is how Free and UsableSize classify a bare
// pointer without any side index.
//
// Larger requests get a dedicated mapping rounded up to PageSize.
// Such mappings are never reused nor returned to the OS.
//
// Memory returned by Alloc is invisible to the garbage collector:
// never store the only reference to a Go heap object in it.
package malloc

import (
	"unsafe"

	"github.com/cloudwego/pagemalloc/internal/diag"
	"github.com/cloudwego/pagemalloc/internal/pagesrc"
)

// PageSource supplies zeroed, PageSize aligned memory.
// length is always a positive multiple of PageSize.
type PageSource interface {
	Acquire(length int) (unsafe.Pointer, error)
}

// Option ...
type Option struct {
	// PageSource is where every page comes from.
	// Memory acquired from it is never given back.
	PageSource PageSource
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		PageSource: pagesrc.New(),
	}
}

const mmapFailedMsg = "mmap failed! Giving up.\n"

// Allocator is safe for concurrent use.
//
// Pages are recognised by their header, not by the Allocator that carved them,
// so a chunk freed through another Allocator joins that Allocator's free list.
type Allocator struct {
	src   PageSource
	lists [NumClasses]freeList
	large *largeObjects

	// fatal must not return. It's swapped by tests.
	fatal func(msg string)
}

// New creates an Allocator. A nil o means DefaultOption().
func New(o *Option) *Allocator {
	if o == nil {
		o = DefaultOption()
	}
	src := o.PageSource
	if src == nil {
		src = pagesrc.New()
	}
	a := &Allocator{
		src:   src,
		large: newLargeObjects(),
		fatal: diag.Fatal,
	}
	for i := range a.lists {
		a.lists[i].chunk = classSize(i)
	}
	return a
}

// Alloc returns a pointer to at least size usable bytes, see UsableSize.
// Alloc(0) returns a MinClassSize chunk. It panics if size is negative.
//
// Alloc never returns nil: if the page source fails,
// it writes a message to stderr and exits the process with status 2.
func (a *Allocator) Alloc(size int) unsafe.Pointer {
	if size < 0 {
		panic("malloc: negative size")
	}
	var (
		p   unsafe.Pointer
		err error
	)
	if chunk, large := ClassSize(size); large {
		p, err = a.large.alloc(a.src, size)
	} else {
		p, err = a.lists[classIndex(chunk)].pull(a.src)
	}
	if err != nil {
		a.fatal(mmapFailedMsg)
		return nil
	}
	return p
}

// UsableSize returns the number of bytes available behind p,
// which may point anywhere inside an object returned by Alloc.
// It returns 0 for nil, freed large objects and pointers not returned by Alloc.
func (a *Allocator) UsableSize(p unsafe.Pointer) int {
	if p == nil {
		return 0
	}
	if o, ok := a.large.lookup(p); ok {
		return o.length
	}
	return pageOf(p).chunkSize()
}

// Free releases the object p points into.
// Small chunks go back to the front of their class's free list.
// Large objects are only forgotten: their mapping stays, and is never reused.
// Free ignores nil and pointers it does not recognise. Double frees are not
// detected and corrupt the free list.
func (a *Allocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if a.large.forget(p) {
		return
	}
	pg := pageOf(p)
	chunk := pg.chunkSize()
	idx := classIndex(chunk)
	if idx < 0 {
		return
	}
	if s, ok := pg.chunkOf(p, chunk); ok {
		a.lists[idx].push(s)
	}
}
