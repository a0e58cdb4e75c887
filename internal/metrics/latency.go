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

// Package metrics exports client command latencies through opencensus.
// Views must be registered by the application for data to be collected.
package metrics

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	statusError = "ERROR"
	statusOK    = "OK"
)

// Tags applied to the stats recorded by this package.
var (
	// InstanceName is set by the application to tell clients apart.
	InstanceName = tag.MustNewKey("go_aerospike_instance_name")

	// Method is the client method called. Set by RecordCall.
	Method = tag.MustNewKey("go_aerospike_method")

	// Namespace is the namespace of the command, when known.
	Namespace = tag.MustNewKey("go_aerospike_namespace")

	// Status identifies the command outcome. Set by RecordCall.
	Status = tag.MustNewKey("go_aerospike_status")

	DefaultTags = []tag.Key{Method, Namespace, Status}
)

// Measures
var (
	MeasureLatencyMs = stats.Float64("go.aerospike/latency", "The latency of calls in milliseconds", stats.UnitMilliseconds)
	MeasureBatchKeys = stats.Int64("go.aerospike/batch_keys", "The number of keys sent per batch call", stats.UnitDimensionless)
)

// LatencyDistribution is the bucket layout of the latency view, in milliseconds.
var LatencyDistribution = view.Distribution(
	0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192,
)

// Views
var (
	LatencyView = &view.View{
		Name:        "go.aerospike/client/latency",
		Description: "The distribution of latency of client calls in milliseconds",
		Measure:     MeasureLatencyMs,
		Aggregation: LatencyDistribution,
		TagKeys:     DefaultTags,
	}

	CallsView = &view.View{
		Name:        "go.aerospike/client/calls",
		Description: "The number of client calls per method",
		Measure:     MeasureLatencyMs,
		Aggregation: view.Count(),
		TagKeys:     DefaultTags,
	}

	BatchKeysView = &view.View{
		Name:        "go.aerospike/client/batch_keys",
		Description: "The number of keys per batch call",
		Measure:     MeasureBatchKeys,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{Method},
	}

	DefaultViews = []*view.View{LatencyView, CallsView, BatchKeysView}
)

// RegisterAllViews registers all the views to enable collection of stats.
func RegisterAllViews() error {
	return view.Register(DefaultViews...)
}

// UnregisterAllViews stops collection for all views in this package.
func UnregisterAllViews() {
	view.Unregister(DefaultViews...)
}

// WithInstanceName sets the instance name in the context so that it is
// recorded with the latency metrics.
func WithInstanceName(ctx context.Context, value string) context.Context {
	return withKey(ctx, InstanceName, value)
}

// WithNamespace sets the namespace tag in the context.
func WithNamespace(ctx context.Context, value string) context.Context {
	return withKey(ctx, Namespace, value)
}

func withKey(ctx context.Context, key tag.Key, value string) context.Context {
	updatedCtx, err := tag.New(ctx, tag.Upsert(key, value))
	if err != nil {
		return ctx
	}
	return updatedCtx
}

// RecordCall starts timing a call of method. The returned function records
// the elapsed time along with the outcome and must be called exactly once.
func RecordCall(ctx context.Context, method string) func(err error) {
	startTime := time.Now()
	return func(err error) {
		status := statusOK
		if err != nil {
			status = statusError
		}

		elapsed := float64(time.Since(startTime)) / float64(time.Millisecond)
		_ = stats.RecordWithTags(ctx,
			[]tag.Mutator{tag.Upsert(Method, method), tag.Upsert(Status, status)},
			MeasureLatencyMs.M(elapsed),
		)
	}
}

// RecordBatchKeys records the number of keys sent in a batch call.
func RecordBatchKeys(ctx context.Context, method string, n int) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(Method, method)}, MeasureBatchKeys.M(int64(n)))
}
