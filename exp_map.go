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

// Map expression generators.
//
// The bin expression argument in these methods can be a reference to a bin or the
// result of another expression. Expressions that modify bin values are only used
// for temporary expression evaluation and are not permanently applied to the bin.
//
// Map modify expressions return the bin's value. This value will be a map except
// when the map is nested within a list. In that case, a list is returned for the
// map modify expression.
//
// Valid map key types are:
//
//	String
//	Integer
//	[]byte
//
// All maps maintain an index and a rank.  The index is the item offset from the start of the map,
// for both unordered and ordered maps.  The rank is the sorted index of the value component.
// Map supports negative indexing for index and rank.
//
// Nested expressions are supported by optional CTX context arguments.  Example:
//
//	bin = {key1={key11=9,key12=4}, key2={key21=3,key22=5}}
//	Get size of map key2.
//	ExpMapSize(ExpMapBin("bin"), CtxMapKey(StringValue("key2"))
//	result = 2

func expMapRead(cdtOp int, rt ExpType, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	return expModuleCall(expModuleCDT, false, rt, cdtOp, bin, ctx, args...)
}

func expMapWrite(cdtOp int, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	return expModuleCall(expModuleCDT, true, expCDTWriteType(ExpTypeMAP, ctx), cdtOp, bin, ctx, args...)
}

func expMapReadMulti(cdtOp int, returnType mapReturnType, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	rt, err := expMapValueType(returnType)
	if err != nil {
		return failedExp(expOpCALL, err)
	}
	return expMapRead(cdtOp, rt, bin, ctx, args...)
}

// expMapValueType returns the type of an expression which may select
// multiple items of a map.
func expMapValueType(returnType mapReturnType) (ExpType, Error) {
	switch returnType &^ MapReturnType.INVERTED {
	case MapReturnType.INDEX, MapReturnType.REVERSE_INDEX, MapReturnType.RANK, MapReturnType.REVERSE_RANK:
		return ExpTypeLIST, nil
	case MapReturnType.COUNT:
		return ExpTypeINT, nil
	case MapReturnType.KEY, MapReturnType.VALUE:
		return ExpTypeLIST, nil
	case MapReturnType.KEY_VALUE, MapReturnType.ORDERED_MAP, MapReturnType.UNORDERED_MAP:
		return ExpTypeMAP, nil
	case MapReturnType.EXISTS:
		return ExpTypeBOOL, nil
	}
	return ExpTypeNone, newErrorf(types.PARAMETER_ERROR, "invalid MapReturnType: %d", returnType)
}

// expMapPutArgs returns the command and the trailing policy arguments of a
// put, depending on the map policy.
func expMapPutArgs(policy *MapPolicy, multi bool) (int, *Expression) {
	policy = policy.orDefault()

	switch {
	case policy.flags != 0:
		cmd := _CDT_MAP_PUT
		if multi {
			cmd = _CDT_MAP_PUT_ITEMS
		}
		return cmd, newExp(expOpMapCRMod, ExpTypeNone, params(paramAttr, int(policy.attributes), paramFlags, int(policy.flags)))
	case policy.itemCommand == _CDT_MAP_REPLACE:
		// replace never creates the map, so it takes no attributes
		if multi {
			return policy.itemsCommand, nil
		}
		return policy.itemCommand, nil
	}

	cmd := policy.itemCommand
	if multi {
		cmd = policy.itemsCommand
	}
	return cmd, newExp(expOpMapCR, ExpTypeNone, params(paramAttr, int(policy.attributes)))
}

func expMapCR(policy *MapPolicy) *Expression {
	policy = policy.orDefault()
	return newExp(expOpMapCR, ExpTypeNone, params(paramAttr, int(policy.attributes)))
}

// ExpMapPut creates an expression that writes key/value item to map bin.
func ExpMapPut(policy *MapPolicy, key *Expression, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	cmd, pol := expMapPutArgs(policy, false)
	if pol == nil {
		return expMapWrite(cmd, bin, ctx, key, value)
	}
	return expMapWrite(cmd, bin, ctx, key, value, pol)
}

// ExpMapPutItems creates an expression that writes each map item to map bin.
func ExpMapPutItems(policy *MapPolicy, amap *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	cmd, pol := expMapPutArgs(policy, true)
	if pol == nil {
		return expMapWrite(cmd, bin, ctx, amap)
	}
	return expMapWrite(cmd, bin, ctx, amap, pol)
}

// ExpMapIncrement creates an expression that increments values by incr for all items identified by key.
// Valid only for numbers.
func ExpMapIncrement(policy *MapPolicy, key *Expression, incr *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_INCREMENT, bin, ctx, key, incr, expMapCR(policy))
}

// ExpMapClear creates an expression that removes all items in map.
func ExpMapClear(bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_CLEAR, bin, ctx)
}

// ExpMapRemoveByKey creates an expression that removes map item identified by key.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByKey(returnType mapReturnType, key *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_KEY, bin, ctx, expRType(int(returnType)), key)
}

// ExpMapRemoveByKeyList creates an expression that removes map items identified by keys.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByKeyList(returnType mapReturnType, keys *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_KEY_LIST, bin, ctx, expRType(int(returnType)), keys)
}

// ExpMapRemoveByKeyRange creates an expression that removes map items identified by key range (keyBegin inclusive, keyEnd exclusive).
// If keyBegin is nil, the range is less than keyEnd.
// If keyEnd is nil, the range is greater than equal to keyBegin.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByKeyRange(returnType mapReturnType, keyBegin *Expression, keyEnd *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_KEY_INTERVAL, bin, ctx, expRangeArgs(int(returnType), keyBegin, keyEnd)...)
}

// ExpMapRemoveByKeyRelativeIndexRange creates an expression that removes map items nearest to key and greater by index.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
//
// Examples for map [{0=17},{4=2},{5=15},{9=10}]:
//
//	(value,index) = [removed items]
//	(5,0) = [{5=15},{9=10}]
//	(5,1) = [{9=10}]
//	(5,-1) = [{4=2},{5=15},{9=10}]
//	(3,2) = [{9=10}]
//	(3,-2) = [{0=17},{4=2},{5=15},{9=10}]
func ExpMapRemoveByKeyRelativeIndexRange(returnType mapReturnType, key *Expression, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_KEY_REL_INDEX_RANGE, bin, ctx, expRType(int(returnType)), key, index)
}

// ExpMapRemoveByKeyRelativeIndexRangeCount creates an expression that removes map items nearest to key and greater by index with a count limit.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByKeyRelativeIndexRangeCount(returnType mapReturnType, key *Expression, index *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_KEY_REL_INDEX_RANGE, bin, ctx, expRType(int(returnType)), key, index, count)
}

// ExpMapRemoveByValue creates an expression that removes map items identified by value.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByValue(returnType mapReturnType, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_VALUE, bin, ctx, expRType(int(returnType)), value)
}

// ExpMapRemoveByValueList creates an expression that removes map items identified by values.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByValueList(returnType mapReturnType, values *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_VALUE_LIST, bin, ctx, expRType(int(returnType)), values)
}

// ExpMapRemoveByValueRange creates an expression that removes map items identified by value range (valueBegin inclusive, valueEnd exclusive).
// If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByValueRange(returnType mapReturnType, valueBegin *Expression, valueEnd *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_VALUE_INTERVAL, bin, ctx, expRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// ExpMapRemoveByValueRelativeRankRange creates an expression that removes map items nearest to value and greater by relative rank.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
//
// Examples for map [{4=2},{9=10},{5=15},{0=17}]:
//
//	(value,rank) = [removed items]
//	(11,1) = [{0=17}]
//	(11,-1) = [{9=10},{5=15},{0=17}]
func ExpMapRemoveByValueRelativeRankRange(returnType mapReturnType, value *Expression, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_VALUE_REL_RANK_RANGE, bin, ctx, expRType(int(returnType)), value, rank)
}

// ExpMapRemoveByValueRelativeRankRangeCount creates an expression that removes map items nearest to value and greater by relative rank with a
// count limit.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByValueRelativeRankRangeCount(returnType mapReturnType, value *Expression, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_VALUE_REL_RANK_RANGE, bin, ctx, expRType(int(returnType)), value, rank, count)
}

// ExpMapRemoveByIndex creates an expression that removes map item identified by index.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByIndex(returnType mapReturnType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_INDEX, bin, ctx, expRType(int(returnType)), index)
}

// ExpMapRemoveByIndexRange creates an expression that removes map items starting at specified index to the end of map.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByIndexRange(returnType mapReturnType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_INDEX_RANGE, bin, ctx, expRType(int(returnType)), index)
}

// ExpMapRemoveByIndexRangeCount creates an expression that removes "count" map items starting at specified index.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByIndexRangeCount(returnType mapReturnType, index *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_INDEX_RANGE, bin, ctx, expRType(int(returnType)), index, count)
}

// ExpMapRemoveByRank creates an expression that removes map item identified by rank.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByRank(returnType mapReturnType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_RANK, bin, ctx, expRType(int(returnType)), rank)
}

// ExpMapRemoveByRankRange creates an expression that removes map items starting at specified rank to the last ranked item.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByRankRange(returnType mapReturnType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_RANK_RANGE, bin, ctx, expRType(int(returnType)), rank)
}

// ExpMapRemoveByRankRangeCount creates an expression that removes "count" map items starting at specified rank.
// Valid returnType values are MapReturnType.NONE or MapReturnType.INVERTED.
func ExpMapRemoveByRankRangeCount(returnType mapReturnType, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapWrite(_CDT_MAP_REMOVE_BY_RANK_RANGE, bin, ctx, expRType(int(returnType)), rank, count)
}

// ExpMapSize creates an expression that returns list size.
func ExpMapSize(bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapRead(_CDT_MAP_SIZE, ExpTypeINT, bin, ctx)
}

// ExpMapGetByKey creates an expression that selects map item identified by key and returns selected data
// specified by returnType.
func ExpMapGetByKey(returnType mapReturnType, valueType ExpType, key *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapRead(_CDT_MAP_GET_BY_KEY, valueType, bin, ctx, expRType(int(returnType)), key)
}

// ExpMapGetByKeyRange creates an expression that selects map items identified by key range.
// (keyBegin inclusive, keyEnd exclusive). If keyBegin is nil, the range is less than keyEnd.
// If keyEnd is nil, the range is greater than equal to keyBegin.
// Expression returns selected data specified by returnType.
func ExpMapGetByKeyRange(returnType mapReturnType, keyBegin *Expression, keyEnd *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_KEY_INTERVAL, returnType, bin, ctx, expRangeArgs(int(returnType), keyBegin, keyEnd)...)
}

// ExpMapGetByKeyList creates an expression that selects map items identified by keys and returns selected data specified by
// returnType
func ExpMapGetByKeyList(returnType mapReturnType, keys *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_KEY_LIST, returnType, bin, ctx, expRType(int(returnType)), keys)
}

// ExpMapGetByKeyRelativeIndexRange creates an expression that selects map items nearest to key and greater by index.
// Expression returns selected data specified by returnType.
func ExpMapGetByKeyRelativeIndexRange(returnType mapReturnType, key *Expression, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_KEY_REL_INDEX_RANGE, returnType, bin, ctx, expRType(int(returnType)), key, index)
}

// ExpMapGetByKeyRelativeIndexRangeCount creates an expression that selects map items nearest to key and greater by index with a count limit.
// Expression returns selected data specified by returnType.
func ExpMapGetByKeyRelativeIndexRangeCount(returnType mapReturnType, key *Expression, index *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_KEY_REL_INDEX_RANGE, returnType, bin, ctx, expRType(int(returnType)), key, index, count)
}

// ExpMapGetByValue creates an expression that selects map items identified by value and returns selected data
// specified by returnType.
func ExpMapGetByValue(returnType mapReturnType, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_VALUE, returnType, bin, ctx, expRType(int(returnType)), value)
}

// ExpMapGetByValueRange creates an expression that selects map items identified by value range.
// (valueBegin inclusive, valueEnd exclusive)
// If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
// Expression returns selected data specified by returnType.
func ExpMapGetByValueRange(returnType mapReturnType, valueBegin *Expression, valueEnd *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_VALUE_INTERVAL, returnType, bin, ctx, expRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// ExpMapGetByValueList creates an expression that selects map items identified by values and returns selected data
// specified by returnType.
func ExpMapGetByValueList(returnType mapReturnType, values *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_VALUE_LIST, returnType, bin, ctx, expRType(int(returnType)), values)
}

// ExpMapGetByValueRelativeRankRange creates an expression that selects map items nearest to value and greater by relative rank.
// Expression returns selected data specified by returnType.
func ExpMapGetByValueRelativeRankRange(returnType mapReturnType, value *Expression, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_VALUE_REL_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), value, rank)
}

// ExpMapGetByValueRelativeRankRangeCount creates an expression that selects map items nearest to value and greater by relative rank with a
// count limit. Expression returns selected data specified by returnType.
func ExpMapGetByValueRelativeRankRangeCount(returnType mapReturnType, value *Expression, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_VALUE_REL_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), value, rank, count)
}

// ExpMapGetByIndex creates an expression that selects map item identified by index and returns selected data specified by
// returnType.
func ExpMapGetByIndex(returnType mapReturnType, valueType ExpType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapRead(_CDT_MAP_GET_BY_INDEX, valueType, bin, ctx, expRType(int(returnType)), index)
}

// ExpMapGetByIndexRange creates an expression that selects map items starting at specified index to the end of map and returns selected
// data specified by returnType.
func ExpMapGetByIndexRange(returnType mapReturnType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_INDEX_RANGE, returnType, bin, ctx, expRType(int(returnType)), index)
}

// ExpMapGetByIndexRangeCount creates an expression that selects "count" map items starting at specified index and returns selected data
// specified by returnType.
func ExpMapGetByIndexRangeCount(returnType mapReturnType, index *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_INDEX_RANGE, returnType, bin, ctx, expRType(int(returnType)), index, count)
}

// ExpMapGetByRank creates an expression that selects map item identified by rank and returns selected data specified by
// returnType.
func ExpMapGetByRank(returnType mapReturnType, valueType ExpType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapRead(_CDT_MAP_GET_BY_RANK, valueType, bin, ctx, expRType(int(returnType)), rank)
}

// ExpMapGetByRankRange creates an expression that selects map items starting at specified rank to the last ranked item and
// returns selected data specified by returnType.
func ExpMapGetByRankRange(returnType mapReturnType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), rank)
}

// ExpMapGetByRankRangeCount creates an expression that selects "count" map items starting at specified rank and returns selected
// data specified by returnType.
func ExpMapGetByRankRangeCount(returnType mapReturnType, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expMapReadMulti(_CDT_MAP_GET_BY_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), rank, count)
}
