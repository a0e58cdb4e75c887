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

// BatchUDF encapsulates a batch user defined function operation.
type BatchUDF struct {
	BatchRecord

	// Optional UDF policy.
	Policy *BatchUDFPolicy

	// Package or lua module name.
	PackageName string

	// Lua function name.
	FunctionName string

	// Optional arguments to lua function.
	FunctionArgs []Value
}

var _ BatchRecordIfc = &BatchUDF{}

// NewBatchUDF creates a batch UDF operation.
func NewBatchUDF(policy *BatchUDFPolicy, key *Key, packageName, functionName string, functionArgs ...Value) *BatchUDF {
	return &BatchUDF{
		BatchRecord:  *newSimpleBatchRecord(key, true),
		Policy:       policy,
		PackageName:  packageName,
		FunctionName: functionName,
		FunctionArgs: functionArgs,
	}
}

func (bu *BatchUDF) getType() batchRecordType {
	return _BRT_BATCH_UDF
}

func (bu *BatchUDF) validate() Error {
	if err := bu.BatchRecord.validate(); err != nil {
		return err
	}
	if bu.PackageName == "" || bu.FunctionName == "" {
		return newError(types.PARAMETER_ERROR, "UDF package and function names are required")
	}
	for i, arg := range bu.FunctionArgs {
		if iv, ok := arg.(invalidValue); ok {
			return newErrorf(types.PARAMETER_ERROR, "Invalid UDF argument %d", i).wrap(iv.err)
		}
	}
	if bu.Policy != nil {
		return bu.Policy.validate()
	}
	return nil
}

func (bu *BatchUDF) attr(defaults *batchDefaults) (*batchAttr, Error) {
	policy := bu.Policy
	if policy == nil {
		policy = defaults.udf
	}

	ba := &batchAttr{}
	ba.setBatchUDF(policy, defaults.udfExpiration)
	return ba, nil
}

// String implements the Stringer interface.
func (bu *BatchUDF) String() string {
	return fmt.Sprintf("%s: %s.%s(%v)", bu.Key, bu.PackageName, bu.FunctionName, bu.FunctionArgs)
}
