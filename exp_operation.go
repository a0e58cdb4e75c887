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
	"github.com/aerospike/aerospike-expressions-go/types"
)

// ExpWriteFlags is used to change mode in expression write operation.
type ExpWriteFlags int

const (
	// ExpWriteFlagDefault is the default. Allow create or update.
	ExpWriteFlagDefault ExpWriteFlags = 0

	// ExpWriteFlagCreateOnly means:
	// If bin does not exist, a new bin will be created.
	// If bin exists, the operation will be denied.
	// If bin exists, fail with ResultCode#BIN_EXISTS_ERROR
	// when ExpWriteFlagPolicyNoFail is not set.
	ExpWriteFlagCreateOnly ExpWriteFlags = 1 << 0

	// ExpWriteFlagUpdateOnly means:
	// If bin exists, the bin will be overwritten.
	// If bin does not exist, the operation will be denied.
	// If bin does not exist, fail with ResultCode#BIN_NOT_FOUND
	// when ExpWriteFlagPolicyNoFail is not set.
	ExpWriteFlagUpdateOnly ExpWriteFlags = 1 << 1

	// ExpWriteFlagAllowDelete means:
	// If expression results in nil value, then delete the bin.
	// Otherwise, fail with ResultCode#OP_NOT_APPLICABLE
	// when ExpWriteFlagPolicyNoFail is not set.
	ExpWriteFlagAllowDelete ExpWriteFlags = 1 << 2

	// ExpWriteFlagPolicyNoFail means:
	// Do not raise error if operation is denied.
	ExpWriteFlagPolicyNoFail ExpWriteFlags = 1 << 3

	// ExpWriteFlagEvalNoFail means:
	// Ignore failures caused by the expression resolving to unknown or a non-bin type.
	ExpWriteFlagEvalNoFail ExpWriteFlags = 1 << 4
)

// ExpReadFlags is used to change mode in expression reads.
type ExpReadFlags int

const (
	// ExpReadFlagDefault is the default
	ExpReadFlagDefault ExpReadFlags = 0

	// ExpReadFlagEvalNoFail means:
	// Ignore failures caused by the expression resolving to unknown or a non-bin type.
	ExpReadFlagEvalNoFail ExpReadFlags = 1 << 4
)

// ExpWriteOp creates an operation with an expression that writes to record bin.
func ExpWriteOp(binName string, exp *Expression, flags ExpWriteFlags) *Operation {
	return newExpOp(_EXP_MODIFY, binName, exp, int(flags))
}

// ExpReadOp creates an operation with an expression that reads from a record.
// The result is returned in a virtual bin named name.
func ExpReadOp(name string, exp *Expression, flags ExpReadFlags) *Operation {
	return newExpOp(_EXP_READ, name, exp, int(flags))
}

func newExpOp(opType OperationType, binName string, exp *Expression, flags int) *Operation {
	op := &Operation{
		opType:  opType,
		binName: binName,
		policy:  flags,
		encoder: func(_ *Operation, p *packer) Error {
			p.PackArrayBegin(2)
			if err := exp.packTo(p); err != nil {
				return err
			}
			p.PackAInt(flags)
			return nil
		},
	}

	switch {
	case exp == nil:
		op.err = newError(types.PARAMETER_ERROR, "expression cannot be nil")
	case exp.err != nil:
		op.err = exp.err
	default:
		op.err = validateBinName(binName)
	}
	return op
}
