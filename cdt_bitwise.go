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

// Bit operations. Create bit operations used by client operate command.
// Offset orientation is left-to-right.  Negative offsets are supported.
// If the offset is negative, the offset starts backwards from end of the bitmap.
// If an offset is out of bounds, a parameter error will be returned.
//
// Bit operations on bitmap items nested in lists/maps are not currently
// supported by the server.

const (
	_CDT_BITWISE_RESIZE   = 0
	_CDT_BITWISE_INSERT   = 1
	_CDT_BITWISE_REMOVE   = 2
	_CDT_BITWISE_SET      = 3
	_CDT_BITWISE_OR       = 4
	_CDT_BITWISE_XOR      = 5
	_CDT_BITWISE_AND      = 6
	_CDT_BITWISE_NOT      = 7
	_CDT_BITWISE_LSHIFT   = 8
	_CDT_BITWISE_RSHIFT   = 9
	_CDT_BITWISE_ADD      = 10
	_CDT_BITWISE_SUBTRACT = 11
	_CDT_BITWISE_SET_INT  = 12
	_CDT_BITWISE_GET      = 50
	_CDT_BITWISE_COUNT    = 51
	_CDT_BITWISE_LSCAN    = 52
	_CDT_BITWISE_RSCAN    = 53
	_CDT_BITWISE_GET_INT  = 54

	_CDT_BITWISE_INT_FLAGS_SIGNED = 1
)

// BitWriteFlags specify bitwise operation policy write flags.
type BitWriteFlags int

const (
	// BitWriteFlagsDefault allows create or update.
	BitWriteFlagsDefault BitWriteFlags = 0

	// BitWriteFlagsCreateOnly specifies that:
	// If the bin already exists, the operation will be denied.
	// If the bin does not exist, a new bin will be created.
	BitWriteFlagsCreateOnly BitWriteFlags = 1

	// BitWriteFlagsUpdateOnly specifies that:
	// If the bin already exists, the bin will be overwritten.
	// If the bin does not exist, the operation will be denied.
	BitWriteFlagsUpdateOnly BitWriteFlags = 2

	// BitWriteFlagsNoFail specifies not to raise error if operation is denied.
	BitWriteFlagsNoFail BitWriteFlags = 4

	// BitWriteFlagsPartial allows other valid operations to be committed if this operations is
	// denied due to flag constraints.
	BitWriteFlagsPartial BitWriteFlags = 8
)

// BitResizeFlags specifies the bitwise operation flags for resize.
type BitResizeFlags int

const (
	// BitResizeFlagsDefault specifies the defalt flag.
	BitResizeFlagsDefault BitResizeFlags = 0

	// BitResizeFlagsFromFront Adds/removes bytes from the beginning instead of the end.
	BitResizeFlagsFromFront BitResizeFlags = 1

	// BitResizeFlagsGrowOnly will only allow the byte[] size to increase.
	BitResizeFlagsGrowOnly BitResizeFlags = 2

	// BitResizeFlagsShrinkOnly will only allow the byte[] size to decrease.
	BitResizeFlagsShrinkOnly BitResizeFlags = 4
)

// BitOverflowAction specifies the action to take when bitwise add/subtract results in overflow/underflow.
type BitOverflowAction int

const (
	// BitOverflowActionFail specifies to fail operation with error.
	BitOverflowActionFail BitOverflowAction = 0

	// BitOverflowActionSaturate specifies that in add/subtract overflows/underflows, set to max/min value.
	// Example: MAXINT + 1 = MAXINT
	BitOverflowActionSaturate BitOverflowAction = 2

	// BitOverflowActionWrap specifies that in add/subtract overflows/underflows, wrap the value.
	// Example: MAXINT + 1 = -1
	BitOverflowActionWrap BitOverflowAction = 4
)

// BitPolicy determines the Bit operation policy.
type BitPolicy struct {
	flags BitWriteFlags
}

// DefaultBitPolicy will return the default BitPolicy
func DefaultBitPolicy() *BitPolicy {
	return &BitPolicy{BitWriteFlagsDefault}
}

// NewBitPolicy will return a BitPolicy will provided flags.
func NewBitPolicy(flags BitWriteFlags) *BitPolicy {
	return &BitPolicy{flags: flags}
}

func (bp *BitPolicy) orDefault() *BitPolicy {
	if bp == nil {
		return DefaultBitPolicy()
	}
	return bp
}

func bitModify(policy *BitPolicy, binName string, command int, ctx []*CDTContext, args ...interface{}) *Operation {
	policy = policy.orDefault()
	op := newCDTOp(_BIT_MODIFY, binName, command, ctx, args...)
	op.policy = policy
	return op
}

func bitRead(binName string, command int, ctx []*CDTContext, args ...interface{}) *Operation {
	return newCDTOp(_BIT_READ, binName, command, ctx, args...)
}

// BitResizeOp creates byte "resize" operation.
// Server resizes byte[] to byteSize according to resizeFlags (See BitResizeFlags).
// Server does not return a value.
// Example:
//
//	bin = [0b00000001, 0b01000010]
//	byteSize = 4
//	resizeFlags = 0
//	bin result = [0b00000001, 0b01000010, 0b00000000, 0b00000000]
func BitResizeOp(policy *BitPolicy, binName string, byteSize int, resizeFlags BitResizeFlags, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_RESIZE, ctx, byteSize, int(policy.orDefault().flags), int(resizeFlags))
}

// BitInsertOp creates byte "insert" operation.
// Server inserts value bytes into byte[] bin at byteOffset.
// Server does not return a value.
// Example:
//
//	bin = [0b00000001, 0b01000010, 0b00000011, 0b00000100, 0b00000101]
//	byteOffset = 1
//	value = [0b11111111, 0b11000111]
//	bin result = [0b00000001, 0b11111111, 0b11000111, 0b01000010, 0b00000011, 0b00000100, 0b00000101]
func BitInsertOp(policy *BitPolicy, binName string, byteOffset int, value []byte, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_INSERT, ctx, byteOffset, BytesValue(value), int(policy.orDefault().flags))
}

// BitRemoveOp creates byte "remove" operation.
// Server removes bytes from byte[] bin at byteOffset for byteSize.
// Server does not return a value.
func BitRemoveOp(policy *BitPolicy, binName string, byteOffset int, byteSize int, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_REMOVE, ctx, byteOffset, byteSize, int(policy.orDefault().flags))
}

// BitSetOp creates bit "set" operation.
// Server sets value on byte[] bin at bitOffset for bitSize.
// Server does not return a value.
// Example:
//
//	bin = [0b00000001, 0b01000010, 0b00000011, 0b00000100, 0b00000101]
//	bitOffset = 13
//	bitSize = 3
//	value = [0b11100000]
//	bin result = [0b00000001, 0b01000111, 0b00000011, 0b00000100, 0b00000101]
func BitSetOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, value []byte, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_SET, ctx, bitOffset, bitSize, BytesValue(value), int(policy.orDefault().flags))
}

// BitOrOp creates bit "or" operation.
// Server performs bitwise "or" on value and byte[] bin at bitOffset for bitSize.
// Server does not return a value.
func BitOrOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, value []byte, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_OR, ctx, bitOffset, bitSize, BytesValue(value), int(policy.orDefault().flags))
}

// BitXorOp creates bit "exclusive or" operation.
// Server performs bitwise "xor" on value and byte[] bin at bitOffset for bitSize.
// Server does not return a value.
func BitXorOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, value []byte, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_XOR, ctx, bitOffset, bitSize, BytesValue(value), int(policy.orDefault().flags))
}

// BitAndOp creates bit "and" operation.
// Server performs bitwise "and" on value and byte[] bin at bitOffset for bitSize.
// Server does not return a value.
func BitAndOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, value []byte, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_AND, ctx, bitOffset, bitSize, BytesValue(value), int(policy.orDefault().flags))
}

// BitNotOp creates bit "not" operation.
// Server negates byte[] bin starting at bitOffset for bitSize.
// Server does not return a value.
func BitNotOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_NOT, ctx, bitOffset, bitSize, int(policy.orDefault().flags))
}

// BitLShiftOp creates bit "left shift" operation.
// Server shifts left byte[] bin starting at bitOffset for bitSize.
// Server does not return a value.
func BitLShiftOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, shift int, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_LSHIFT, ctx, bitOffset, bitSize, shift, int(policy.orDefault().flags))
}

// BitRShiftOp creates bit "right shift" operation.
// Server shifts right byte[] bin starting at bitOffset for bitSize.
// Server does not return a value.
func BitRShiftOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, shift int, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_RSHIFT, ctx, bitOffset, bitSize, shift, int(policy.orDefault().flags))
}

func bitIntFlags(signed bool, action BitOverflowAction) int {
	flags := int(action)
	if signed {
		flags |= _CDT_BITWISE_INT_FLAGS_SIGNED
	}
	return flags
}

// BitAddOp creates bit "add" operation.
// Server adds value to byte[] bin starting at bitOffset for bitSize. BitSize must be <= 64.
// Signed indicates if bits should be treated as a signed number.
// If add overflows/underflows, BitOverflowAction is used.
// Server does not return a value.
func BitAddOp(
	policy *BitPolicy,
	binName string,
	bitOffset int,
	bitSize int,
	value int64,
	signed bool,
	action BitOverflowAction,
	ctx ...*CDTContext,
) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_ADD, ctx, bitOffset, bitSize, value, int(policy.orDefault().flags), bitIntFlags(signed, action))
}

// BitSubtractOp creates bit "subtract" operation.
// Server subtracts value from byte[] bin starting at bitOffset for bitSize. BitSize must be <= 64.
// Signed indicates if bits should be treated as a signed number.
// If add overflows/underflows, BitOverflowAction is used.
// Server does not return a value.
func BitSubtractOp(
	policy *BitPolicy,
	binName string,
	bitOffset int,
	bitSize int,
	value int64,
	signed bool,
	action BitOverflowAction,
	ctx ...*CDTContext,
) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_SUBTRACT, ctx, bitOffset, bitSize, value, int(policy.orDefault().flags), bitIntFlags(signed, action))
}

// BitSetIntOp creates bit "setInt" operation.
// Server sets value to byte[] bin starting at bitOffset for bitSize. Size must be <= 64.
// Server does not return a value.
func BitSetIntOp(policy *BitPolicy, binName string, bitOffset int, bitSize int, value int64, ctx ...*CDTContext) *Operation {
	return bitModify(policy, binName, _CDT_BITWISE_SET_INT, ctx, bitOffset, bitSize, value, int(policy.orDefault().flags))
}

// BitGetOp creates bit "get" operation.
// Server returns bits from byte[] bin starting at bitOffset for bitSize.
func BitGetOp(binName string, bitOffset int, bitSize int, ctx ...*CDTContext) *Operation {
	return bitRead(binName, _CDT_BITWISE_GET, ctx, bitOffset, bitSize)
}

// BitCountOp creates bit "count" operation.
// Server returns integer count of set bits from byte[] bin starting at bitOffset for bitSize.
func BitCountOp(binName string, bitOffset int, bitSize int, ctx ...*CDTContext) *Operation {
	return bitRead(binName, _CDT_BITWISE_COUNT, ctx, bitOffset, bitSize)
}

// BitLScanOp creates bit "left scan" operation.
// Server returns integer bit offset of the first specified value bit in byte[] bin
// starting at bitOffset for bitSize.
func BitLScanOp(binName string, bitOffset int, bitSize int, value bool, ctx ...*CDTContext) *Operation {
	return bitRead(binName, _CDT_BITWISE_LSCAN, ctx, bitOffset, bitSize, value)
}

// BitRScanOp creates bit "right scan" operation.
// Server returns integer bit offset of the last specified value bit in byte[] bin
// starting at bitOffset for bitSize.
func BitRScanOp(binName string, bitOffset int, bitSize int, value bool, ctx ...*CDTContext) *Operation {
	return bitRead(binName, _CDT_BITWISE_RSCAN, ctx, bitOffset, bitSize, value)
}

// BitGetIntOp creates bit "get integer" operation.
// Server returns integer from byte[] bin starting at bitOffset for bitSize.
// Signed indicates if bits should be treated as a signed number.
func BitGetIntOp(binName string, bitOffset int, bitSize int, signed bool, ctx ...*CDTContext) *Operation {
	if signed {
		return bitRead(binName, _CDT_BITWISE_GET_INT, ctx, bitOffset, bitSize, _CDT_BITWISE_INT_FLAGS_SIGNED)
	}
	return bitRead(binName, _CDT_BITWISE_GET_INT, ctx, bitOffset, bitSize)
}
