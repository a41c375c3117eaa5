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

//go:build linux || darwin || netbsd || freebsd || openbsd || dragonfly

package pagesrc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mapAnon relies on mmap returning OS-page aligned addresses,
// which are PageSize aligned as well.
func mapAnon(length int) (unsafe.Pointer, error) {
	b, err := unix.Mmap(
		-1, 0,
		length,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("pagesrc: mmap %d bytes: %w", length, err)
	}
	return unsafe.Pointer(unsafe.SliceData(b)), nil
}
