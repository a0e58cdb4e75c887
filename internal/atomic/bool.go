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
	stdatomic "sync/atomic"
)

// Bool is a flag shared between goroutines, such as the closed state of a
// client. The zero value is false.
type Bool struct {
	val stdatomic.Bool
}

// NewBool creates a flag holding value.
func NewBool(value bool) *Bool {
	ab := new(Bool)
	ab.val.Store(value)
	return ab
}

// String implements the Stringer interface
func (ab *Bool) String() string {
	return strconv.FormatBool(ab.Get())
}

// GomegaString implements the GomegaStringer interface
func (ab *Bool) GomegaString() string {
	return ab.String()
}

// Get returns the current value.
func (ab *Bool) Get() bool {
	return ab.val.Load()
}

// Set stores the value.
func (ab *Bool) Set(newVal bool) {
	ab.val.Store(newVal)
}

// CompareAndToggle flips the value if it equals expect, and reports whether
// it did. Only one of several concurrent callers wins.
func (ab *Bool) CompareAndToggle(expect bool) bool {
	return ab.val.CompareAndSwap(expect, !expect)
}
