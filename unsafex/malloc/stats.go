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

// ClassStats describes one size class.
type ClassStats struct {
	Size   int    // chunk size in bytes
	Pages  uint64 // pages carved for the class
	Allocs uint64 // chunks handed out
	Frees  uint64 // chunks put back
}

// InUse returns the number of chunks currently handed out.
func (s ClassStats) InUse() uint64 {
	return s.Allocs - s.Frees
}

// Stats is a snapshot of an Allocator's counters.
// Classes are read one by one, so the snapshot is not atomic across classes.
type Stats struct {
	Classes [NumClasses]ClassStats

	LargeObjects int64 // live large objects
	LargeBytes   int64 // bytes mapped for live large objects
	MappedBytes  int64 // every byte ever mapped, small pages included
}

// Stats returns a snapshot of a's counters.
func (a *Allocator) Stats() Stats {
	var s Stats
	for i := range a.lists {
		cs := a.lists[i].stats()
		s.Classes[i] = cs
		s.MappedBytes += int64(cs.Pages) * PageSize
	}
	s.LargeObjects = a.large.live.Load()
	s.LargeBytes = a.large.bytes.Load()
	s.MappedBytes += a.large.mapped.Load()
	return s
}
