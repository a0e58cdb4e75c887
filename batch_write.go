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
	"fmt"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// BatchWrite encapsulates a batch key and read/write operations with write policy.
type BatchWrite struct {
	BatchRecord

	// Optional write policy.
	Policy *BatchWritePolicy

	// Required operations for this key.
	Ops []*Operation
}

var _ BatchRecordIfc = &BatchWrite{}

// NewBatchWrite initializes a policy, batch key and read/write operations.
//   - ANY ReadOp() must be the last operation.
//   - Only ONE ReadOp() may be used.
func NewBatchWrite(policy *BatchWritePolicy, key *Key, ops ...*Operation) *BatchWrite {
	return &BatchWrite{
		BatchRecord: *newSimpleBatchRecord(key, true),
		Ops:         ops,
		Policy:      policy,
	}
}

func (bw *BatchWrite) getType() batchRecordType {
	return _BRT_BATCH_WRITE
}

func (bw *BatchWrite) validate() Error {
	if err := bw.BatchRecord.validate(); err != nil {
		return err
	}
	if len(bw.Ops) == 0 {
		return cloneError(ErrNoOperationsSpecified)
	}
	if err := validateBatchOps(bw.Ops, true); err != nil {
		return err
	}
	if bw.Policy != nil {
		if err := bw.Policy.validate(); err != nil {
			return err
		}
	}

	for _, op := range bw.Ops {
		if op.opType.isWrite {
			return nil
		}
	}
	return newError(types.PARAMETER_ERROR, "Batch write operations do not contain a write")
}

func (bw *BatchWrite) attr(defaults *batchDefaults) (*batchAttr, Error) {
	policy := bw.Policy
	if policy == nil {
		policy = defaults.write
	}

	ba := &batchAttr{}
	ba.setBatchWrite(policy, defaults.writeExpiration)
	ba.adjustWrite(bw.Ops)
	return ba, nil
}

// String implements the Stringer interface.
func (bw *BatchWrite) String() string {
	return fmt.Sprintf("%s: %v", bw.Key, bw.Ops)
}
