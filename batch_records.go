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
	"strings"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// BatchRecords is an ordered list of batch records of mixed kinds. The
// results of a batch call are written into the records in place; the list
// must not be inspected or changed by other goroutines until the call
// returns.
type BatchRecords struct {
	records []BatchRecordIfc
}

// NewBatchRecords creates a container for the given records.
func NewBatchRecords(records ...BatchRecordIfc) *BatchRecords {
	res := &BatchRecords{records: make([]BatchRecordIfc, 0, len(records))}
	res.Add(records...)
	return res
}

// Add appends records to the container.
func (brs *BatchRecords) Add(records ...BatchRecordIfc) {
	brs.records = append(brs.records, records...)
}

// Len returns the number of records.
func (brs *BatchRecords) Len() int {
	return len(brs.records)
}

// Records returns the records in their original order.
func (brs *BatchRecords) Records() []BatchRecordIfc {
	return brs.records
}

// Result returns types.OK if every record completed with OK, FILTERED_OUT
// or KEY_NOT_FOUND_ERROR. Otherwise it returns the result code of the first
// record which did not.
func (brs *BatchRecords) Result() types.ResultCode {
	for _, r := range brs.records {
		if rc := r.resultCode(); !rc.IsBenignBatchResult() {
			return rc
		}
	}
	return types.OK
}

// Err returns the error of the first record whose result is not benign, or
// nil when Result is OK.
func (brs *BatchRecords) Err() Error {
	for _, r := range brs.records {
		br := r.BatchRec()
		if br.ResultCode.IsBenignBatchResult() {
			continue
		}
		if br.Err != nil {
			return br.Err
		}
		return newError(br.ResultCode).markInDoubt(br.InDoubt)
	}
	return nil
}

func (brs *BatchRecords) prepare() {
	for _, r := range brs.records {
		r.prepare()
	}
}

func (brs *BatchRecords) validate() Error {
	if len(brs.records) == 0 {
		return newError(types.PARAMETER_ERROR, "Batch records cannot be empty")
	}
	for i, r := range brs.records {
		if r == nil {
			return newErrorf(types.PARAMETER_ERROR, "Batch record %d is nil", i)
		}
		if err := r.validate(); err != nil {
			return err
		}
	}
	return nil
}

// String implements the Stringer interface.
func (brs *BatchRecords) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range brs.records {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.String())
	}
	sb.WriteString("]")
	return sb.String()
}
