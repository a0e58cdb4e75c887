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
	"time"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// MetricsPolicy determines how the client collects and reports latency
// histograms and counters.
type MetricsPolicy struct {
	// Listener receives the snapshots. If nil, a MetricsWriter writing to
	// ReportDir is used.
	Listener MetricsListener

	// ReportDir is the directory the default writer creates its files in.
	// Default: "."
	ReportDir string

	// ReportSizeLimit is the size in bytes after which the default writer
	// starts a new file. Zero means no limit.
	ReportSizeLimit int64

	// Interval is the time between snapshots.
	// Default: 30 seconds
	Interval time.Duration

	// LatencyColumns is the number of latency buckets, between 1 and 100.
	// Default: 7
	LatencyColumns int

	// LatencyShift is the power of two by which the range of each bucket
	// grows over the previous one.
	// Default: 1
	LatencyShift int
}

// NewMetricsPolicy returns a policy with the default values.
func NewMetricsPolicy() *MetricsPolicy {
	return &MetricsPolicy{
		ReportDir:      ".",
		Interval:       30 * time.Second,
		LatencyColumns: 7,
		LatencyShift:   1,
	}
}

func (mp *MetricsPolicy) validate() Error {
	if mp.LatencyColumns < 1 || mp.LatencyColumns > 100 {
		return newErrorf(types.PARAMETER_ERROR, "Invalid latency columns %d: must be between 1 and 100", mp.LatencyColumns)
	}
	if mp.LatencyShift < 1 || mp.LatencyShift > 8 {
		return newErrorf(types.PARAMETER_ERROR, "Invalid latency shift %d: must be between 1 and 8", mp.LatencyShift)
	}
	if mp.Interval <= 0 {
		return newErrorf(types.PARAMETER_ERROR, "Invalid metrics interval %s", mp.Interval)
	}
	if mp.ReportSizeLimit < 0 {
		return newErrorf(types.PARAMETER_ERROR, "Invalid report size limit %d", mp.ReportSizeLimit)
	}
	if mp.Listener == nil && mp.ReportDir == "" {
		return newError(types.PARAMETER_ERROR, "Metrics report directory cannot be empty")
	}
	return nil
}
