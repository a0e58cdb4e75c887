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
)

// TxnVerifyPolicy is the transaction policy fields used to batch verify
// record versions on commit. Used a placeholder for now as there are no
// additional fields beyond BatchPolicy.
type TxnVerifyPolicy struct {
	BatchPolicy
}

// NewTxnVerifyPolicy creates a default policy for verifying the read
// versions of a transaction.
func NewTxnVerifyPolicy() *TxnVerifyPolicy {
	bp := NewBatchPolicy()
	bp.ReadModeSC = ReadModeSCLinearize
	bp.ReplicaPolicy = MASTER
	bp.MaxRetries = 5
	bp.TotalTimeout = 10 * time.Second
	bp.SleepBetweenRetries = 1 * time.Second

	return &TxnVerifyPolicy{
		BatchPolicy: *bp,
	}
}

// TxnRollPolicy is the transaction policy fields used to batch roll forward
// or back records on commit or abort. Used a placeholder for now as there
// are no additional fields beyond BatchPolicy.
type TxnRollPolicy struct {
	BatchPolicy
}

// NewTxnRollPolicy creates a default policy for rolling a transaction
// forward or back.
func NewTxnRollPolicy() *TxnRollPolicy {
	bp := NewBatchPolicy()
	bp.ReplicaPolicy = MASTER
	bp.MaxRetries = 5
	bp.TotalTimeout = 10 * time.Second
	bp.SleepBetweenRetries = 1 * time.Second

	return &TxnRollPolicy{
		BatchPolicy: *bp,
	}
}
