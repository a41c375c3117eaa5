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

// freeList is the LIFO list of free chunks of one size class.
// mu guards head, the page carve and the counters, nothing else:
// chunks handed out are never touched under it again.
type freeList struct {
	mu    sync.Mutex
	head  freeSlot
	chunk int

	pages  uint64
	allocs uint64
	frees  uint64
}

// pull pops the head of the list, carving a new page first if the list is empty.
func (l *freeList) pull(src PageSource) (unsafe.Pointer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.head.isNil() {
		base, err := src.Acquire(PageSize)
		if err != nil {
			return nil, err
		}
		pg := page{base: base}
		pg.init(l.chunk)
		l.head = pg.carve(l.chunk)
		l.pages++
	}

	s := l.head
	l.head = s.next()
	l.allocs++
	return s.p, nil
}

// push puts s back at the front of the list.
func (l *freeList) push(s freeSlot) {
	l.mu.Lock()
	s.setNext(l.head)
	l.head = s
	l.frees++
	l.mu.Unlock()
}

func (l *freeList) stats() ClassStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ClassStats{
		Size:   l.chunk,
		Pages:  l.pages,
		Allocs: l.allocs,
		Frees:  l.frees,
	}
}
