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

// OperationType determines operation type
type OperationType struct {
	op      byte
	isWrite bool
	name    string
}

// Code returns the wire code of the operation type.
func (ot OperationType) Code() byte {
	return ot.op
}

// IsWrite returns true if the operation type modifies the record.
func (ot OperationType) IsWrite() bool {
	return ot.isWrite
}

func (ot OperationType) String() string {
	return ot.name
}

// Valid OperationType values that can be used to create custom Operations.
// The names are self-explanatory.
var (
	_READ        = OperationType{1, false, "READ"}
	_WRITE       = OperationType{2, true, "WRITE"}
	_CDT_READ    = OperationType{3, false, "CDT_READ"}
	_CDT_MODIFY  = OperationType{4, true, "CDT_MODIFY"}
	_MAP_READ    = OperationType{3, false, "MAP_READ"}
	_MAP_MODIFY  = OperationType{4, true, "MAP_MODIFY"}
	_ADD         = OperationType{5, true, "ADD"}
	_EXP_READ    = OperationType{7, false, "EXP_READ"}
	_EXP_MODIFY  = OperationType{8, true, "EXP_MODIFY"}
	_APPEND      = OperationType{9, true, "APPEND"}
	_PREPEND     = OperationType{10, true, "PREPEND"}
	_TOUCH       = OperationType{11, true, "TOUCH"}
	_BIT_READ    = OperationType{12, false, "BIT_READ"}
	_BIT_MODIFY  = OperationType{13, true, "BIT_MODIFY"}
	_DELETE      = OperationType{14, true, "DELETE"}
	_HLL_READ    = OperationType{15, false, "HLL_READ"}
	_HLL_MODIFY  = OperationType{16, true, "HLL_MODIFY"}
	_READ_HEADER = OperationType{1, false, "READ_HEADER"}
)

// Operation contains operation definition.
// This struct is used in client's operate() method.
// Operations are immutable once created, and can be reused in any number of
// operation lists.
type Operation struct {
	opType  OperationType
	binName string

	// operand of the basic operations
	binValue Value

	// sub command and arguments of CDT, bit and HLL operations
	cdtOp int
	args  []interface{}
	ctx   []*CDTContext

	// custom encoder for expression and path operations
	encoder func(*Operation, *packer) Error

	// op local policy, kept for inspection
	policy interface{}

	meta OperationMeta

	// will be true ONLY for GetHeader() operation
	headerOnly bool

	err Error
}

// OperationMeta holds per operation overrides of the record meta data.
type OperationMeta struct {
	// Expiration overrides the record TTL for this operation if HasExpiration is set.
	Expiration    uint32
	HasExpiration bool
}

// OpType returns the type of the operation.
func (op *Operation) OpType() OperationType {
	return op.opType
}

// BinName returns the name of the bin the operation applies to.
func (op *Operation) BinName() string {
	return op.binName
}

// BinValue returns the operand of basic operations.
func (op *Operation) BinValue() Value {
	return op.binValue
}

// Policy returns the operation local policy, if any.
func (op *Operation) Policy() interface{} {
	return op.policy
}

// Meta returns the per operation meta data overrides.
func (op *Operation) Meta() OperationMeta {
	return op.meta
}

// IsWrite returns true if the operation modifies the record.
func (op *Operation) IsWrite() bool {
	return op.opType.isWrite
}

// Err returns the error encountered while the operation was built.
func (op *Operation) Err() Error {
	return op.err
}

// Payload returns the MessagePack encoded operand of the operation:
// the command and arguments for CDT, bit and HLL operations, the packed
// expression for expression operations, or the bin value for basic ones.
func (op *Operation) Payload() ([]byte, Error) {
	if op.err != nil {
		return nil, op.err
	}

	p := newPacker()
	var err Error
	switch {
	case op.encoder != nil:
		err = op.encoder(op, p)
	case op.args != nil || op.opType == _CDT_READ || op.opType == _CDT_MODIFY ||
		op.opType == _BIT_READ || op.opType == _BIT_MODIFY || op.opType == _HLL_READ || op.opType == _HLL_MODIFY:
		err = packCDTOp(p, op.cdtOp, op.ctx, op.args...)
	case op.binValue != nil:
		err = op.binValue.pack(p)
	default:
		p.PackNil()
	}

	if err != nil {
		p.Bytes()
		return nil, err
	}
	return p.Bytes(), nil
}

func (op *Operation) String() string {
	return op.opType.String() + "(" + op.binName + ")"
}

// packCDTOp packs a CDT command with its arguments, and the context path if given.
func packCDTOp(p *packer, cdtOp int, ctx []*CDTContext, args ...interface{}) Error {
	if len(ctx) > 0 {
		p.PackArrayBegin(3)
		p.PackAInt(0xff)
		if err := packCDTContext(p, ctx); err != nil {
			return err
		}
	}

	p.PackArrayBegin(len(args) + 1)
	p.PackAInt(cdtOp)
	for _, arg := range args {
		if err := p.PackObject(arg); err != nil {
			return err
		}
	}
	return nil
}

func newCDTOp(opType OperationType, binName string, cdtOp int, ctx []*CDTContext, args ...interface{}) *Operation {
	op := &Operation{
		opType:  opType,
		binName: binName,
		cdtOp:   cdtOp,
		args:    args,
		ctx:     ctx,
	}
	if args == nil {
		op.args = []interface{}{}
	}
	op.err = validateOperation(op)
	return op
}

func validateBinName(name string) Error {
	if name == "" {
		return newError(types.PARAMETER_ERROR, "bin name is required")
	}
	if len(name) > 15 {
		return newErrorf(types.BIN_NAME_TOO_LONG, "bin name `%s` is longer than 15 characters", name)
	}
	return nil
}

func validateOperation(op *Operation) Error {
	if err := validateBinName(op.binName); err != nil {
		return err
	}
	for i, c := range op.ctx {
		if c == nil {
			return newErrorf(types.PARAMETER_ERROR, "CDT context step %d is nil", i)
		}
	}
	return nil
}

// GetBinOp creates read bin database operation.
func GetBinOp(binName string) *Operation {
	return &Operation{opType: _READ, binName: binName, binValue: NewNullValue()}
}

// GetOp creates read all record bins database operation.
func GetOp() *Operation {
	return &Operation{opType: _READ, binValue: NewNullValue()}
}

// GetHeaderOp creates read record header database operation.
func GetHeaderOp() *Operation {
	return &Operation{opType: _READ_HEADER, headerOnly: true, binValue: NewNullValue()}
}

func newBinOp(opType OperationType, bin *Bin) *Operation {
	if bin == nil {
		return &Operation{opType: opType, err: newError(types.PARAMETER_ERROR, "bin cannot be nil")}
	}

	op := &Operation{opType: opType, binName: bin.Name, binValue: bin.Value}
	if bin.Value == nil {
		op.binValue = NewNullValue()
	}
	if iv, ok := bin.Value.(invalidValue); ok {
		op.err = iv.err
	} else if err := validateBinName(bin.Name); err != nil {
		op.err = err
	} else if isBoundValue(op.binValue) {
		op.err = cloneError(ErrWildcardNotAllowedAsValue)
	}
	return op
}

// PutOp creates set database operation.
func PutOp(bin *Bin) *Operation {
	return newBinOp(_WRITE, bin)
}

// AppendOp creates string append database operation.
func AppendOp(bin *Bin) *Operation {
	return newBinOp(_APPEND, bin)
}

// PrependOp creates string prepend database operation.
func PrependOp(bin *Bin) *Operation {
	return newBinOp(_PREPEND, bin)
}

// AddOp creates integer add database operation.
func AddOp(bin *Bin) *Operation {
	return newBinOp(_ADD, bin)
}

// TouchOp creates touch record database operation.
func TouchOp() *Operation {
	return &Operation{opType: _TOUCH, binValue: NewNullValue()}
}

// TouchOpWithTTL creates touch record database operation which sets the
// record TTL to the given value. The TTL sentinels are accepted.
func TouchOpWithTTL(ttl uint32) *Operation {
	op := TouchOp()
	op.meta = OperationMeta{Expiration: ttl, HasExpiration: true}
	return op
}

// DeleteOp creates delete record database operation.
func DeleteOp() *Operation {
	return &Operation{opType: _DELETE, binValue: NewNullValue()}
}
