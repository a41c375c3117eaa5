/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package mempool hands out []byte backed by the default unsafex/malloc Allocator.
package mempool

import (
	"unsafe"

	"github.com/cloudwego/pagemalloc/unsafex"
	"github.com/cloudwego/pagemalloc/unsafex/malloc"
)

// Malloc creates a buf of len size.
// Tips for usage:
// * buf returned by Malloc may not be initialized with zeros, use at your own risk.
// * cap(buf) is the usable size of the chunk, `buf = buf[:cap(buf)]` makes use of all of it.
// * call `Free` when buf is no longer use, DO NOT REUSE buf after calling `Free`.
// * DO NOT `Free` twice, coz the chunk would be handed out twice.
// * buf lives outside the Go heap, DO NOT store pointers to Go objects in it.
func Malloc(size int) []byte {
	if size == 0 {
		return []byte{}
	}
	p := malloc.Malloc(size)
	return unsafex.Bytes(p, malloc.UsableSize(p))[:size]
}

// Cap returns the max cap of a buf can be resized to.
// It panics if buf is not created by Malloc or already freed.
func Cap(buf []byte) int {
	if cap(buf) == 0 || malloc.UsableSize(dataPtr(buf)) == 0 {
		panic("buf not malloc by this package")
	}
	return cap(buf)
}

// Append appends bytes to the given `[]byte`.
// It frees `a` and creates a new one if needed.
// Please make sure you're calling the func like `b = mempool.Append(b, data...)`
func Append(a []byte, b ...byte) []byte {
	if cap(a)-len(a) >= len(b) {
		return append(a, b...)
	}
	return appendSlow(a, b)
}

func appendSlow(a, b []byte) []byte {
	ret := grow(a, len(b))
	copy(ret[len(a):], b)
	return ret
}

// AppendStr ... same as Append for string.
// See comment of `Append` for details.
func AppendStr(a []byte, b string) []byte {
	if cap(a)-len(a) >= len(b) {
		return append(a, b...)
	}
	return appendStrSlow(a, b)
}

func appendStrSlow(a []byte, b string) []byte {
	ret := grow(a, len(b))
	copy(ret[len(a):], b)
	return ret
}

// grow returns a new buf holding a with room for n more bytes, and frees a.
// It at least doubles the cap: large chunks are never reused, growing by
// small steps would map a new region on every call.
func grow(a []byte, n int) []byte {
	size := len(a) + n
	ret := Malloc(max(size, 2*cap(a)))[:size]
	copy(ret, a)
	Free(a)
	return ret
}

// Free should be called when a buf is no longer used.
// Bufs not created by Malloc are ignored.
func Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	malloc.Free(dataPtr(buf))
}

func dataPtr(buf []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(buf[:1]))
}
