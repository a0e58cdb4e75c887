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

// HyperLogLog (HLL) operations.
// Requires server versions >= 4.9.
//
// HyperLogLog operations on HLL items nested in lists/maps are not currently
// supported by the server.

const (
	_HLL_INIT            = 0
	_HLL_ADD             = 1
	_HLL_SET_UNION       = 2
	_HLL_SET_COUNT       = 3
	_HLL_FOLD            = 4
	_HLL_COUNT           = 50
	_HLL_UNION           = 51
	_HLL_UNION_COUNT     = 52
	_HLL_INTERSECT_COUNT = 53
	_HLL_SIMILARITY      = 54
	_HLL_DESCRIBE        = 55
)

// HLLWriteFlags specifies the HLL write operation flags.
type HLLWriteFlags int

const (
	// HLLWriteFlagsDefault is Default. Allow create or update.
	HLLWriteFlagsDefault HLLWriteFlags = 0

	// HLLWriteFlagsCreateOnly behaves like the following:
	// If the bin already exists, the operation will be denied.
	// If the bin does not exist, a new bin will be created.
	HLLWriteFlagsCreateOnly HLLWriteFlags = 1

	// HLLWriteFlagsUpdateOnly behaves like the following:
	// If the bin already exists, the bin will be overwritten.
	// If the bin does not exist, the operation will be denied.
	HLLWriteFlagsUpdateOnly HLLWriteFlags = 2

	// HLLWriteFlagsNoFail does not raise error if operation is denied.
	HLLWriteFlagsNoFail HLLWriteFlags = 4

	// HLLWriteFlagsAllowFold allows the resulting set to be the minimum of provided index bits.
	// Also, allow the usage of less precise HLL algorithms when minHash bits
	// of all participating sets do not match.
	HLLWriteFlagsAllowFold HLLWriteFlags = 8
)

// HLLPolicy determines the HyperLogLog operation policy.
type HLLPolicy struct {
	flags HLLWriteFlags
}

// DefaultHLLPolicy uses the default policy when performing HLL operations.
func DefaultHLLPolicy() *HLLPolicy {
	return &HLLPolicy{HLLWriteFlagsDefault}
}

// NewHLLPolicy uses specified HLLWriteFlags when performing HLL operations.
func NewHLLPolicy(flags HLLWriteFlags) *HLLPolicy {
	return &HLLPolicy{flags}
}

func (hp *HLLPolicy) orDefault() *HLLPolicy {
	if hp == nil {
		return DefaultHLLPolicy()
	}
	return hp
}

func hllModify(policy *HLLPolicy, binName string, command int, args ...interface{}) *Operation {
	op := newCDTOp(_HLL_MODIFY, binName, command, nil, args...)
	op.policy = policy
	return op
}

func hllRead(binName string, command int, args ...interface{}) *Operation {
	return newCDTOp(_HLL_READ, binName, command, nil, args...)
}

func hllList(list []HLLValue) ListValue {
	res := make(ListValue, len(list))
	for i := range list {
		res[i] = list[i]
	}
	return res
}

// HLLInitOp creates HLL init operation with minhash bits.
// Server creates a new HLL or resets an existing HLL.
// Server does not return a value.
//
// policy			write policy, use DefaultHLLPolicy for default
// binName			name of bin
// indexBitCount	number of index bits. Must be between 4 and 16 inclusive. Pass -1 for default.
// minHashBitCount  number of min hash bits. Must be between 4 and 58 inclusive. Pass -1 for default.
// indexBitCount + minHashBitCount must be <= 64.
func HLLInitOp(policy *HLLPolicy, binName string, indexBitCount, minHashBitCount int) *Operation {
	policy = policy.orDefault()
	return hllModify(policy, binName, _HLL_INIT, indexBitCount, minHashBitCount, int(policy.flags))
}

// HLLAddOp creates HLL add operation with minhash bits.
// Server adds values to HLL set. If HLL bin does not exist, use indexBitCount and minHashBitCount
// to create HLL bin. Server returns number of entries that caused HLL to update a register.
//
// policy			write policy, use DefaultHLLPolicy for default
// binName			name of bin
// list				list of values to be added
// indexBitCount	number of index bits. Must be between 4 and 16 inclusive. Pass -1 for default.
// minHashBitCount  number of min hash bits. Must be between 4 and 58 inclusive. Pass -1 for default.
// indexBitCount + minHashBitCount must be <= 64.
func HLLAddOp(policy *HLLPolicy, binName string, list []Value, indexBitCount, minHashBitCount int) *Operation {
	policy = policy.orDefault()
	return hllModify(policy, binName, _HLL_ADD, ValueArray(list), indexBitCount, minHashBitCount, int(policy.flags))
}

// HLLSetUnionOp creates HLL set union operation.
// Server sets union of specified HLL objects with HLL bin.
// Server does not return a value.
//
// policy			write policy, use DefaultHLLPolicy for default
// binName			name of bin
// list				list of HLL objects
func HLLSetUnionOp(policy *HLLPolicy, binName string, list []HLLValue) *Operation {
	policy = policy.orDefault()
	return hllModify(policy, binName, _HLL_SET_UNION, hllList(list), int(policy.flags))
}

// HLLRefreshCountOp creates HLL refresh operation.
// Server updates the cached count (if stale) and returns the count.
//
// binName			name of bin
func HLLRefreshCountOp(binName string) *Operation {
	return hllModify(nil, binName, _HLL_SET_COUNT)
}

// HLLFoldOp creates HLL fold operation.
// Servers folds indexBitCount to the specified value.
// This can only be applied when minHashBitCount on the HLL bin is 0.
// Server does not return a value.
//
// binName			name of bin
// indexBitCount		number of index bits. Must be between 4 and 16 inclusive.
func HLLFoldOp(binName string, indexBitCount int) *Operation {
	return hllModify(nil, binName, _HLL_FOLD, indexBitCount)
}

// HLLGetCountOp creates HLL getCount operation.
// Server returns estimated number of elements in the HLL bin.
//
// binName			name of bin
func HLLGetCountOp(binName string) *Operation {
	return hllRead(binName, _HLL_COUNT)
}

// HLLGetUnionOp creates HLL getUnion operation.
// Server returns an HLL object that is the union of all specified HLL objects in the list
// with the HLL bin.
//
// binName			name of bin
// list				list of HLL objects
func HLLGetUnionOp(binName string, list []HLLValue) *Operation {
	return hllRead(binName, _HLL_UNION, hllList(list))
}

// HLLGetUnionCountOp creates HLL getUnionCount operation.
// Server returns estimated number of elements that would be contained by the union of these
// HLL objects.
//
// binName			name of bin
// list				list of HLL objects
func HLLGetUnionCountOp(binName string, list []HLLValue) *Operation {
	return hllRead(binName, _HLL_UNION_COUNT, hllList(list))
}

// HLLGetIntersectCountOp creates HLL getIntersectCount operation.
// Server returns estimated number of elements that would be contained by the intersection of
// these HLL objects.
//
// binName			name of bin
// list				list of HLL objects
func HLLGetIntersectCountOp(binName string, list []HLLValue) *Operation {
	return hllRead(binName, _HLL_INTERSECT_COUNT, hllList(list))
}

// HLLGetSimilarityOp creates HLL getSimilarity operation.
// Server returns estimated similarity of these HLL objects. Return type is a double.
//
// binName			name of bin
// list				list of HLL objects
func HLLGetSimilarityOp(binName string, list []HLLValue) *Operation {
	return hllRead(binName, _HLL_SIMILARITY, hllList(list))
}

// HLLDescribeOp creates HLL describe operation.
// Server returns indexBitCount and minHashBitCount used to create HLL bin in a list of longs.
// The list size is 2.
//
// binName			name of bin
func HLLDescribeOp(binName string) *Operation {
	return hllRead(binName, _HLL_DESCRIBE)
}
