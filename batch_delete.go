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

// BatchDelete encapsulates a batch delete operation.
type BatchDelete struct {
	BatchRecord

	// policy os the optional write policy.
	Policy *BatchDeletePolicy
}

var _ BatchRecordIfc = &BatchDelete{}

// NewBatchDelete creates a batch delete operation.
func NewBatchDelete(policy *BatchDeletePolicy, key *Key) *BatchDelete {
	return &BatchDelete{
		BatchRecord: *newSimpleBatchRecord(key, true),
		Policy:      policy,
	}
}

func (bd *BatchDelete) getType() batchRecordType {
	return _BRT_BATCH_DELETE
}

func (bd *BatchDelete) validate() Error {
	if err := bd.BatchRecord.validate(); err != nil {
		return err
	}
	if bd.Policy != nil {
		return bd.Policy.validate()
	}
	return nil
}

func (bd *BatchDelete) attr(defaults *batchDefaults) (*batchAttr, Error) {
	policy := bd.Policy
	if policy == nil {
		policy = defaults.delete
	}

	ba := &batchAttr{}
	ba.setBatchDelete(policy)
	return ba, nil
}
