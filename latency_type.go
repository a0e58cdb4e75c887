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

// LatencyType is the category of commands a latency histogram is kept for.
type LatencyType int

const (
	// LatencyConn is the latency of establishing a connection by the transport.
	LatencyConn LatencyType = iota
	// LatencyWrite is the latency of single record writes.
	LatencyWrite
	// LatencyRead is the latency of single record reads.
	LatencyRead
	// LatencyBatch is the latency of batch commands.
	LatencyBatch
	// LatencyQuery is the latency of scans and queries.
	LatencyQuery

	latencyNone
)

var latencyTypeNames = [...]string{
	LatencyConn:  "conn",
	LatencyWrite: "write",
	LatencyRead:  "read",
	LatencyBatch: "batch",
	LatencyQuery: "query",
}

func (lt LatencyType) String() string {
	if lt < 0 || lt >= latencyNone {
		return "none"
	}
	return latencyTypeNames[lt]
}
