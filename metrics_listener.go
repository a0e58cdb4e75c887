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

// MetricsSnapshot is a point in time view of the client counters.
type MetricsSnapshot struct {
	ClusterName  string
	CommandCount int
	RetryCount   int
	Nodes        []*NodeMetrics
}

// MetricsListener receives metrics events from the client. The calls are
// made from a single goroutine.
type MetricsListener interface {
	// OnEnable is called when metrics are enabled.
	OnEnable(policy *MetricsPolicy, snapshot *MetricsSnapshot) Error
	// OnSnapshot is called every MetricsPolicy.Interval.
	OnSnapshot(snapshot *MetricsSnapshot) Error
	// OnNodeClose is called when a node leaves the cluster.
	OnNodeClose(node *NodeMetrics) Error
	// OnDisable is called with a final snapshot when metrics are disabled.
	OnDisable(snapshot *MetricsSnapshot) Error
}
