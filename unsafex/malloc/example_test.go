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

import "fmt"

func Example() {
	a := New(nil)

	p1 := a.Alloc(10)   // 16-byte chunk
	p2 := a.Alloc(17)   // 32-byte chunk
	p3 := a.Alloc(2049) // a page of its own

	fmt.Println(a.UsableSize(p1), a.UsableSize(p2), a.UsableSize(p3))

	a.Free(p1)
	fmt.Println(a.Alloc(16) == p1) // last freed, first reused

	a.Free(p3)
	fmt.Println(a.UsableSize(p3))

	// Output:
	// 16 32 4096
	// true
	// 0
}
