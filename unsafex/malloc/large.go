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
	"sync/atomic"
	"unsafe"

	"github.com/google/btree"

	"github.com/cloudwego/pagemalloc/internal/pagesrc"
)

const largeTreeDegree = 32

// largeObject is a dedicated mapping serving one request above MaxClassSize.
type largeObject struct {
	base   uintptr
	length int
}

// Less implements btree.Item, ordering by base address.
func (o largeObject) Less(than btree.Item) bool {
	return o.base < than.(largeObject).base
}

func (o largeObject) contains(addr uintptr) bool {
	return addr >= o.base && addr-o.base < uintptr(o.length)
}

// largeObjects tracks live large objects so their size can be recovered from
// any pointer into them. Mappings are never reused or returned to the OS:
// forgetting an object only drops it from the tree.
type largeObjects struct {
	mu   sync.Mutex
	tree *btree.BTree

	live   atomic.Int64 // tree.Len(), readable without mu
	bytes  atomic.Int64 // sum of live lengths
	mapped atomic.Int64 // sum of every length ever mapped
}

func newLargeObjects() *largeObjects {
	return &largeObjects{tree: btree.New(largeTreeDegree)}
}

// alloc maps a new object of at least size bytes.
func (r *largeObjects) alloc(src PageSource, size int) (unsafe.Pointer, error) {
	length := pagesrc.RoundUp(size)
	p, err := src.Acquire(length)
	if err != nil {
		return nil, err
	}
	r.mapped.Add(int64(length))

	r.mu.Lock()
	r.tree.ReplaceOrInsert(largeObject{base: uintptr(p), length: length})
	r.mu.Unlock()
	r.live.Add(1)
	r.bytes.Add(int64(length))
	return p, nil
}

// lookup returns the live object containing p.
func (r *largeObjects) lookup(p unsafe.Pointer) (largeObject, bool) {
	if r.live.Load() == 0 {
		return largeObject{}, false
	}
	r.mu.Lock()
	o, ok := r.floor(uintptr(p))
	r.mu.Unlock()
	return o, ok
}

// forget drops the live object containing p, if any.
func (r *largeObjects) forget(p unsafe.Pointer) bool {
	if r.live.Load() == 0 {
		return false
	}
	r.mu.Lock()
	o, ok := r.floor(uintptr(p))
	if ok {
		r.tree.Delete(o)
	}
	r.mu.Unlock()
	if ok {
		r.live.Add(-1)
		r.bytes.Add(-int64(o.length))
	}
	return ok
}

// floor finds the object with the greatest base <= addr and checks that it
// contains addr. Caller holds mu.
func (r *largeObjects) floor(addr uintptr) (o largeObject, ok bool) {
	r.tree.DescendLessOrEqual(largeObject{base: addr}, func(i btree.Item) bool {
		o = i.(largeObject)
		ok = o.contains(addr)
		return false
	})
	return o, ok
}
