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

// Int is a counter shared between goroutines, such as the command and
// retry counts of a client or a latency bucket. The zero value is 0.
type Int struct {
	val stdatomic.Int64
}

// NewInt creates a counter holding value.
func NewInt(value int) *Int {
	ai := new(Int)
	ai.val.Store(int64(value))
	return ai
}

// String implements the Stringer interface
func (ai *Int) String() string {
	return strconv.Itoa(ai.Get())
}

// GomegaString implements the GomegaStringer interface
func (ai *Int) GomegaString() string {
	return ai.String()
}

// AddAndGet adds delta and returns the new value.
func (ai *Int) AddAndGet(delta int) int {
	return int(ai.val.Add(int64(delta)))
}

// IncrementAndGet adds one and returns the new value.
func (ai *Int) IncrementAndGet() int {
	return ai.AddAndGet(1)
}

// DecrementAndGet subtracts one and returns the new value.
func (ai *Int) DecrementAndGet() int {
	return ai.AddAndGet(-1)
}

// Get returns the current value.
func (ai *Int) Get() int {
	return int(ai.val.Load())
}

// GetAndSet stores newValue and returns the previous value.
func (ai *Int) GetAndSet(newValue int) int {
	return int(ai.val.Swap(int64(newValue)))
}
