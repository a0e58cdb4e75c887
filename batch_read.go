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
)

// BatchRead specifies the Key and bin names used in batch read commands
// where variable bins are needed for each key.
type BatchRead struct {
	BatchRecord

	// Optional read policy.
	Policy *BatchReadPolicy

	// BinNames specifies the Bins to retrieve for this key.
	// BinNames are mutually exclusive with Ops.
	BinNames []string

	// ReadAllBins defines what data should be read from the record.
	// If true, ignore binNames and read all bins.
	// If false and binNames are set, read specified binNames.
	// If false and binNames are not set, read record header (generation, expiration) only.
	ReadAllBins bool //= false

	// Ops specifies the operations to perform for every key.
	// Ops are mutually exclusive with BinNames.
	// A binName can be emulated with `GetOp(binName)`
	// Supported by server v5.6.0+.
	Ops []*Operation
}

var _ BatchRecordIfc = &BatchRead{}

// NewBatchRead creates a batch read for the bins of a key. No bin names
// means all bins are read.
func NewBatchRead(policy *BatchReadPolicy, key *Key, binNames []string) *BatchRead {
	return &BatchRead{
		BatchRecord: *newSimpleBatchRecord(key, false),
		Policy:      policy,
		BinNames:    binNames,
		ReadAllBins: len(binNames) == 0,
	}
}

// NewBatchReadOps creates a batch read running read operations on a key.
func NewBatchReadOps(policy *BatchReadPolicy, key *Key, ops ...*Operation) *BatchRead {
	return &BatchRead{
		BatchRecord: *newSimpleBatchRecord(key, false),
		Policy:      policy,
		Ops:         ops,
	}
}

// NewBatchReadHeader creates a batch read for the meta data of a key.
func NewBatchReadHeader(policy *BatchReadPolicy, key *Key) *BatchRead {
	return &BatchRead{
		BatchRecord: *newSimpleBatchRecord(key, false),
		Policy:      policy,
		ReadAllBins: false,
	}
}

func (br *BatchRead) getType() batchRecordType {
	return _BRT_BATCH_READ
}

func (br *BatchRead) validate() Error {
	if err := br.BatchRecord.validate(); err != nil {
		return err
	}
	for _, name := range br.BinNames {
		if err := validateBinName(name); err != nil {
			return err
		}
	}
	if br.Policy != nil {
		if err := br.Policy.validate(); err != nil {
			return err
		}
	}
	return validateBatchOps(br.Ops, false)
}

func (br *BatchRead) attr(defaults *batchDefaults) (*batchAttr, Error) {
	policy := br.Policy
	if policy == nil {
		policy = defaults.read
	}

	ba := &batchAttr{}
	ba.setBatchRead(policy)
	switch {
	case len(br.Ops) > 0:
		ba.adjustRead(br.Ops)
	case len(br.BinNames) == 0:
		ba.adjustReadForAllBins(br.ReadAllBins)
	}
	return ba, nil
}

func (br *BatchRead) String() string {
	return fmt.Sprintf("%s: %v", br.Key, br.BinNames)
}
