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

// Bit expression generators.
//
// The bin expression argument in these methods can be a reference to a bin or the
// result of another expression. Expressions that modify bin values are only used
// for temporary expression evaluation and are not permanently applied to the bin.
// Bit modify expressions return the blob bin's value.
//
// Offset orientation is left-to-right.  Negative offsets are supported.
// If the offset is negative, the offset starts backwards from end of the bitmap.
// If an offset is out of bounds, a parameter error will be returned.

func expBitRead(cdtOp int, rt ExpType, bin *Expression, args ...*Expression) *Expression {
	return expModuleCall(expModuleBit, false, rt, cdtOp, bin, nil, args...)
}

func expBitWrite(cdtOp int, bin *Expression, args ...*Expression) *Expression {
	return expModuleCall(expModuleBit, true, ExpTypeBLOB, cdtOp, bin, nil, args...)
}

func expBitFlags(policy *BitPolicy) *Expression {
	policy = policy.orDefault()
	return newExp(expOpBitFlags, ExpTypeNone, params(paramFlags, int(policy.flags)))
}

// ExpBitResize creates an expression that resizes byte[] to byteSize according to resizeFlags (See BitResizeFlags)
// and returns byte[].
//
//	bin = [0b00000001, 0b01000010]
//	byteSize = 4
//	resizeFlags = 0
//	returns [0b00000001, 0b01000010, 0b00000000, 0b00000000]
func ExpBitResize(policy *BitPolicy, byteSize *Expression, resizeFlags BitResizeFlags, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_RESIZE, bin, byteSize, expBitFlags(policy), expIntArg(int(resizeFlags)))
}

// ExpBitInsert creates an expression that inserts value bytes into byte[] bin at byteOffset and returns byte[].
func ExpBitInsert(policy *BitPolicy, byteOffset *Expression, value *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_INSERT, bin, byteOffset, value, expBitFlags(policy))
}

// ExpBitRemove creates an expression that removes bytes from byte[] bin at byteOffset for byteSize and returns byte[].
func ExpBitRemove(policy *BitPolicy, byteOffset *Expression, byteSize *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_REMOVE, bin, byteOffset, byteSize, expBitFlags(policy))
}

// ExpBitSet creates an expression that sets value on byte[] bin at bitOffset for bitSize and returns byte[].
//
//	bin = [0b00000001, 0b01000010, 0b00000011, 0b00000100, 0b00000101]
//	bitOffset = 13
//	bitSize = 3
//	value = [0b11100000]
//	returns [0b00000001, 0b01000111, 0b00000011, 0b00000100, 0b00000101]
func ExpBitSet(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_SET, bin, bitOffset, bitSize, value, expBitFlags(policy))
}

// ExpBitOr creates an expression that performs bitwise "or" on value and byte[] bin at bitOffset for bitSize
// and returns byte[].
func ExpBitOr(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_OR, bin, bitOffset, bitSize, value, expBitFlags(policy))
}

// ExpBitXor creates an expression that performs bitwise "xor" on value and byte[] bin at bitOffset for bitSize
// and returns byte[].
func ExpBitXor(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_XOR, bin, bitOffset, bitSize, value, expBitFlags(policy))
}

// ExpBitAnd creates an expression that performs bitwise "and" on value and byte[] bin at bitOffset for bitSize
// and returns byte[].
func ExpBitAnd(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_AND, bin, bitOffset, bitSize, value, expBitFlags(policy))
}

// ExpBitNot creates an expression that negates byte[] bin starting at bitOffset for bitSize and returns byte[].
func ExpBitNot(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_NOT, bin, bitOffset, bitSize, expBitFlags(policy))
}

// ExpBitLShift creates an expression that shifts left byte[] bin starting at bitOffset for bitSize and returns byte[].
func ExpBitLShift(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, shift *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_LSHIFT, bin, bitOffset, bitSize, shift, expBitFlags(policy))
}

// ExpBitRShift creates an expression that shifts right byte[] bin starting at bitOffset for bitSize and returns byte[].
func ExpBitRShift(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, shift *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_RSHIFT, bin, bitOffset, bitSize, shift, expBitFlags(policy))
}

// ExpBitAdd creates an expression that adds value to byte[] bin starting at bitOffset for bitSize and returns byte[].
// BitSize must be <= 64. Signed indicates if bits should be treated as a signed number.
// If add overflows/underflows, BitOverflowAction is used.
func ExpBitAdd(
	policy *BitPolicy,
	bitOffset *Expression,
	bitSize *Expression,
	value *Expression,
	signed bool,
	action BitOverflowAction,
	bin *Expression,
) *Expression {
	return expBitWrite(_CDT_BITWISE_ADD, bin, bitOffset, bitSize, value, expBitFlags(policy), expIntArg(bitIntFlags(signed, action)))
}

// ExpBitSubtract creates an expression that subtracts value from byte[] bin starting at bitOffset for bitSize and returns byte[].
// BitSize must be <= 64. Signed indicates if bits should be treated as a signed number.
// If add overflows/underflows, BitOverflowAction is used.
func ExpBitSubtract(
	policy *BitPolicy,
	bitOffset *Expression,
	bitSize *Expression,
	value *Expression,
	signed bool,
	action BitOverflowAction,
	bin *Expression,
) *Expression {
	return expBitWrite(_CDT_BITWISE_SUBTRACT, bin, bitOffset, bitSize, value, expBitFlags(policy), expIntArg(bitIntFlags(signed, action)))
}

// ExpBitSetInt creates an expression that sets value to byte[] bin starting at bitOffset for bitSize and returns byte[].
// BitSize must be <= 64.
func ExpBitSetInt(policy *BitPolicy, bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitWrite(_CDT_BITWISE_SET_INT, bin, bitOffset, bitSize, value, expBitFlags(policy))
}

// ExpBitGet creates an expression that returns bits from byte[] bin starting at bitOffset for bitSize.
func ExpBitGet(bitOffset *Expression, bitSize *Expression, bin *Expression) *Expression {
	return expBitRead(_CDT_BITWISE_GET, ExpTypeBLOB, bin, bitOffset, bitSize)
}

// ExpBitCount creates an expression that returns integer count of set bits from byte[] bin starting at
// bitOffset for bitSize.
func ExpBitCount(bitOffset *Expression, bitSize *Expression, bin *Expression) *Expression {
	return expBitRead(_CDT_BITWISE_COUNT, ExpTypeINT, bin, bitOffset, bitSize)
}

// ExpBitLScan creates an expression that returns integer bit offset of the first specified value bit in byte[] bin
// starting at bitOffset for bitSize.
func ExpBitLScan(bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitRead(_CDT_BITWISE_LSCAN, ExpTypeINT, bin, bitOffset, bitSize, value)
}

// ExpBitRScan creates an expression that returns integer bit offset of the last specified value bit in byte[] bin
// starting at bitOffset for bitSize.
func ExpBitRScan(bitOffset *Expression, bitSize *Expression, value *Expression, bin *Expression) *Expression {
	return expBitRead(_CDT_BITWISE_RSCAN, ExpTypeINT, bin, bitOffset, bitSize, value)
}

// ExpBitGetInt creates an expression that returns integer from byte[] bin starting at bitOffset for bitSize.
// Signed indicates if bits should be treated as a signed number.
func ExpBitGetInt(bitOffset *Expression, bitSize *Expression, signed bool, bin *Expression) *Expression {
	if signed {
		return expBitRead(_CDT_BITWISE_GET_INT, ExpTypeINT, bin, bitOffset, bitSize, expIntArg(_CDT_BITWISE_INT_FLAGS_SIGNED))
	}
	return expBitRead(_CDT_BITWISE_GET_INT, ExpTypeINT, bin, bitOffset, bitSize)
}
