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

package types

import (
	"math/bits"
	"sync"
)

const (
	minBufSize = 1 << 5
	maxBufSize = 1 << 24
)

// BufferPool is a tiered pool of byte slices. Each tier holds buffers
// of a power of two size. Buffers larger than the biggest tier are
// allocated on demand and never pooled.
type BufferPool struct {
	tiers []sync.Pool
}

// NewBufferPool creates a new buffer pool.
func NewBufferPool() *BufferPool {
	bp := &BufferPool{
		tiers: make([]sync.Pool, fastlog2(maxBufSize)+1),
	}

	for i := range bp.tiers {
		sz := 1 << i
		bp.tiers[i].New = func() interface{} {
			return make([]byte, sz)
		}
	}
	return bp
}

func powerOf2(sz int) bool {
	return sz > 0 && sz&(sz-1) == 0
}

func fastlog2(v uint64) int {
	if v == 0 {
		return 0
	}
	return bits.Len64(v) - 1
}

func tierFor(sz int) int {
	if sz < minBufSize {
		sz = minBufSize
	}
	if powerOf2(sz) {
		return fastlog2(uint64(sz))
	}
	return fastlog2(uint64(sz)) + 1
}

// Get returns a buffer of at least sz length.
func (bp *BufferPool) Get(sz int) []byte {
	if sz > maxBufSize {
		return make([]byte, sz)
	}
	return bp.tiers[tierFor(sz)].Get().([]byte)
}

// Put returns the buffer to its tier. Buffers which do not match a tier
// size are dropped.
func (bp *BufferPool) Put(buf []byte) {
	c := cap(buf)
	if c > maxBufSize || !powerOf2(c) || c < minBufSize {
		return
	}
	bp.tiers[fastlog2(uint64(c))].Put(buf[:c]) //nolint:staticcheck
}
