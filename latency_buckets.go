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

package aerospike

import (
	"strconv"
	"strings"
	"time"

	iatomic "github.com/aerospike/aerospike-expressions-go/internal/atomic"
)

// LatencyBuckets is a histogram of command latencies. Bucket i counts the
// commands that took at most 2^(i*shift) milliseconds; the last bucket
// counts everything slower.
type LatencyBuckets struct {
	buckets      []iatomic.Int
	latencyShift int
}

// NewLatencyBuckets creates a histogram with the given number of columns.
// Every column covers 2^shift times the range of the previous one.
func NewLatencyBuckets(latencyColumns int, latencyShift int) *LatencyBuckets {
	return &LatencyBuckets{
		buckets:      make([]iatomic.Int, latencyColumns),
		latencyShift: latencyShift,
	}
}

// Add counts a command that took elapsed.
func (lb *LatencyBuckets) Add(elapsed time.Duration) {
	lb.buckets[lb.getIndex(elapsed)].IncrementAndGet()
}

// Columns returns the number of buckets.
func (lb *LatencyBuckets) Columns() int {
	return len(lb.buckets)
}

// Get returns the count of the bucket at index i.
func (lb *LatencyBuckets) Get(i int) int {
	return lb.buckets[i].Get()
}

func (lb *LatencyBuckets) getIndex(elapsed time.Duration) int {
	elapsedMs := elapsed.Milliseconds()
	limit := int64(1)
	lastBucket := len(lb.buckets) - 1
	for i := 0; i < lastBucket; i++ {
		if elapsedMs <= limit {
			return i
		}
		limit <<= lb.latencyShift
	}
	return lastBucket
}

// writeTo renders the counts as a bracketed, comma separated list.
func (lb *LatencyBuckets) writeTo(sb *strings.Builder) {
	sb.WriteByte('[')
	for i := range lb.buckets {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(lb.buckets[i].Get()))
	}
	sb.WriteByte(']')
}

// NodeMetrics are the counters kept per node while metrics are enabled.
type NodeMetrics struct {
	name     string
	errors   iatomic.Int
	timeouts iatomic.Int
	latency  []*LatencyBuckets
}

func newNodeMetrics(name string, policy *MetricsPolicy) *NodeMetrics {
	latency := make([]*LatencyBuckets, latencyNone)
	for i := range latency {
		latency[i] = NewLatencyBuckets(policy.LatencyColumns, policy.LatencyShift)
	}
	return &NodeMetrics{
		name:    name,
		latency: latency,
	}
}

// Name returns the name of the node.
func (nm *NodeMetrics) Name() string {
	return nm.name
}

// ErrorCount returns the number of failed commands on the node.
func (nm *NodeMetrics) ErrorCount() int {
	return nm.errors.Get()
}

// TimeoutCount returns the number of timed out commands on the node.
func (nm *NodeMetrics) TimeoutCount() int {
	return nm.timeouts.Get()
}

// Latency returns the histogram of the latency type.
func (nm *NodeMetrics) Latency(latencyType LatencyType) *LatencyBuckets {
	return nm.latency[latencyType]
}

func (nm *NodeMetrics) addLatency(latencyType LatencyType, elapsed time.Duration) {
	nm.latency[latencyType].Add(elapsed)
}
