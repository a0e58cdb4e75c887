// Copyright 2014-2024 Aerospike, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package atomic

import (
	"strconv"
	"sync"
)

// Uint64 is a monotonic counter used for identifiers which must never repeat
// within a process.
type Uint64 struct {
	m   sync.Mutex
	val uint64
}

// NewUint64 creates a counter starting at value.
func NewUint64(value uint64) *Uint64 {
	return &Uint64{val: value}
}

// String implements the Stringer interface
func (au *Uint64) String() string {
	return strconv.FormatUint(au.Get(), 10)
}

// GomegaString implements the GomegaStringer interface
func (au *Uint64) GomegaString() string {
	return au.String()
}

// Get atomically retrieves the current value.
func (au *Uint64) Get() uint64 {
	au.m.Lock()
	defer au.m.Unlock()
	return au.val
}

// IncrementAndGet atomically increments the counter and returns the new value.
// Zero is skipped on wrap around.
func (au *Uint64) IncrementAndGet() uint64 {
	au.m.Lock()
	defer au.m.Unlock()
	au.val++
	if au.val == 0 {
		au.val++
	}
	return au.val
}
