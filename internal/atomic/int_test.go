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

package atomic_test

import (
	"runtime"
	"sync"

	"github.com/aerospike/aerospike-expressions-go/internal/atomic"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"
)

var _ = gg.Describe("Atomic Int", func() {
	// atomic tests require actual parallelism
	runtime.GOMAXPROCS(runtime.NumCPU())

	var ai *atomic.Int

	gg.BeforeEach(func() {
		ai = atomic.NewInt(0)
	})

	gg.It("must count concurrent increments", func() {
		wg := new(sync.WaitGroup)
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ai.IncrementAndGet()
			}()
		}

		wg.Wait()
		gm.Expect(ai.Get()).To(gm.Equal(100))
	})

	gg.It("must swap values", func() {
		ai.AddAndGet(5)
		gm.Expect(ai.GetAndSet(7)).To(gm.Equal(5))
		gm.Expect(ai.DecrementAndGet()).To(gm.Equal(6))
	})
})

var _ = gg.Describe("Atomic Uint64", func() {

	gg.It("must hand out distinct increasing values under contention", func() {
		au := atomic.NewUint64(0)
		wg := new(sync.WaitGroup)
		mu := new(sync.Mutex)
		seen := map[uint64]struct{}{}

		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v := au.IncrementAndGet()
				mu.Lock()
				seen[v] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		gm.Expect(seen).To(gm.HaveLen(64))
		gm.Expect(au.Get()).To(gm.Equal(uint64(64)))
	})

	gg.It("must skip zero on wrap around", func() {
		au := atomic.NewUint64(^uint64(0))
		gm.Expect(au.IncrementAndGet()).To(gm.Equal(uint64(1)))
	})
})
