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
	"context"
)

// Transport sends commands to the cluster. It owns the connections, the
// partition map and the wire encoding; the client resolves policies,
// compiles expressions and assembles the requests it hands over.
//
// Implementations must be safe for concurrent use. Server result codes are
// returned unchanged as errors of type Error, for example by returning an
// *AerospikeError with the ResultCode set.
type Transport interface {
	// NodeFor returns the name of the node the command for key is sent to.
	NodeFor(key *Key, isWrite bool) (string, Error)
	// Nodes returns the names of the active nodes.
	Nodes() []string

	// Execute runs a single record command. A record that does not exist
	// is reported with KEY_NOT_FOUND_ERROR.
	Execute(ctx context.Context, cmd *Command) (*Record, Error)
	// BatchExecute runs the batch commands of one node and reports the
	// result of every command through BatchCommand.SetRecord or SetResult.
	// A returned error applies to the commands left without a result.
	BatchExecute(ctx context.Context, node string, cmds []*BatchCommand) Error
	// Scan reads the records of a node which match the command.
	Scan(ctx context.Context, cmd *ScanCommand) ([]*Record, Error)
	// Info sends info commands to a node.
	Info(ctx context.Context, node string, commands ...string) (map[string]string, Error)

	// TxnVerify checks that the versions of the records read in the
	// transaction did not change.
	TxnVerify(ctx context.Context, policy *TxnVerifyPolicy, txn *Txn) Error
	// TxnRoll commits or aborts the writes of the transaction.
	TxnRoll(ctx context.Context, policy *TxnRollPolicy, txn *Txn, commit bool) Error

	// Close releases the connections.
	Close() Error
}

// NodeEvent reports a node joining or leaving the cluster.
type NodeEvent struct {
	Node  string
	Added bool
}

// ScanCommand is a scan or query request for one node.
type ScanCommand struct {
	Node      string
	Namespace string
	SetName   string
	BinNames  []string

	Policy *MultiPolicy

	// ScanPercent is the percentage of the records scanned, for scans only.
	ScanPercent int
	// IsQuery distinguishes queries from scans.
	IsQuery    bool
	ShortQuery bool

	// Filter is the packed filter expression, or nil.
	Filter []byte

	Txn *Txn
}
