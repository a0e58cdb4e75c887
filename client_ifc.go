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

// ClientIfc abstracts an Aerospike cluster.
type ClientIfc interface {
	Abort(ctx context.Context, txn *Txn) Error
	Add(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error
	AddBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error
	Append(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error
	AppendBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error
	BatchDelete(ctx context.Context, policy *BatchPolicy, deletePolicy *BatchDeletePolicy, keys []*Key) (*BatchRecords, Error)
	BatchExecute(ctx context.Context, policy *BatchPolicy, udfPolicy *BatchUDFPolicy, keys []*Key, packageName string, functionName string, args ...Value) (*BatchRecords, Error)
	BatchExists(ctx context.Context, policy *BatchPolicy, keys []*Key) ([]bool, Error)
	BatchGet(ctx context.Context, policy *BatchPolicy, keys []*Key, binNames ...string) ([]*Record, Error)
	BatchGetHeader(ctx context.Context, policy *BatchPolicy, keys []*Key) ([]*Record, Error)
	BatchGetOperate(ctx context.Context, policy *BatchPolicy, keys []*Key, ops ...*Operation) ([]*Record, Error)
	BatchOperate(ctx context.Context, policy *BatchPolicy, records *BatchRecords) Error
	ClientPolicy() ClientPolicy
	Close() Error
	Commit(ctx context.Context, txn *Txn) Error
	Delete(ctx context.Context, policy *WritePolicy, key *Key) (bool, Error)
	DisableMetrics() Error
	EnableMetrics(policy *MetricsPolicy) Error
	Execute(ctx context.Context, policy *WritePolicy, key *Key, packageName string, functionName string, args ...Value) (interface{}, Error)
	Exists(ctx context.Context, policy *BasePolicy, key *Key) (bool, Error)
	Get(ctx context.Context, policy *BasePolicy, key *Key, binNames ...string) (*Record, Error)
	GetHeader(ctx context.Context, policy *BasePolicy, key *Key) (*Record, Error)
	GetNodeNames() []string
	Info(ctx context.Context, policy *InfoPolicy, node string, commands ...string) (map[string]string, Error)
	IsClosed() bool
	Operate(ctx context.Context, policy *WritePolicy, key *Key, operations ...*Operation) (*Record, Error)
	Prepend(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error
	PrependBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error
	Put(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error
	PutBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error
	Query(ctx context.Context, policy *QueryPolicy, namespace string, setName string, binNames ...string) ([]*Record, Error)
	ScanAll(ctx context.Context, policy *ScanPolicy, namespace string, setName string, binNames ...string) ([]*Record, Error)
	Touch(ctx context.Context, policy *WritePolicy, key *Key) Error
}

var _ ClientIfc = (*Client)(nil)
