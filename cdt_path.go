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

// SelectByPathOp creates an operation that returns the nodes of binName
// addressed by ctx. See ExpSelectByPath for the meaning of flags.
// Requires server version 8.1.0+.
func SelectByPathOp(binName string, flags SelectFlags, ctx ...*CDTContext) *Operation {
	return newPathOp(_CDT_READ, binName, flags, nil, ctx)
}

// ModifyByPathOp creates an operation that replaces every node of binName
// addressed by ctx with the value of modifyExp. Returning ExpRemoveResult
// from modifyExp removes the node.
// Requires server version 8.1.0+.
func ModifyByPathOp(binName string, flags SelectFlags, modifyExp *Expression, ctx ...*CDTContext) *Operation {
	if modifyExp == nil {
		return &Operation{opType: _CDT_MODIFY, binName: binName, err: newError(types.PARAMETER_ERROR, "modify by path requires a modify expression")}
	}
	return newPathOp(_CDT_MODIFY, binName, flags|SelectApply, modifyExp, ctx)
}

func newPathOp(opType OperationType, binName string, flags SelectFlags, modifyExp *Expression, ctx []*CDTContext) *Operation {
	op := &Operation{
		opType:  opType,
		binName: binName,
		cdtOp:   _CDT_SELECT,
		ctx:     ctx,
		policy:  flags,
		encoder: encodePathOp(flags, modifyExp),
	}

	switch {
	case binName == "":
		op.err = newError(types.PARAMETER_ERROR, "path operation requires a bin name")
	case len(ctx) == 0:
		op.err = cloneError(ErrInvalidContextPath)
	default:
		op.err = validateSelectFlags(flags, modifyExp != nil)
	}
	if op.err == nil {
		op.err = validateOperation(op)
	}
	if op.err == nil && modifyExp != nil && modifyExp.err != nil {
		op.err = modifyExp.err
	}
	return op
}

func encodePathOp(flags SelectFlags, modifyExp *Expression) func(*Operation, *packer) Error {
	return func(op *Operation, p *packer) Error {
		p.PackArrayBegin(3)
		p.PackAInt(0xff)
		if err := packCDTContext(p, op.ctx); err != nil {
			return err
		}

		if modifyExp == nil {
			p.PackArrayBegin(2)
			p.PackAInt(op.cdtOp)
			p.PackAInt(int(flags))
			return nil
		}

		p.PackArrayBegin(3)
		p.PackAInt(op.cdtOp)
		p.PackAInt(int(flags))
		return modifyExp.packTo(p)
	}
}
