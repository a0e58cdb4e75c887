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

// List expression generators.
//
// The bin expression argument in these methods can be a reference to a bin or the
// result of another expression. Expressions that modify bin values are only used
// for temporary expression evaluation and are not permanently applied to the bin.
//
// List modify expressions return the bin's value. This value will be a list except
// when the list is nested within a map. In that case, a map is returned for the
// list modify expression.
//
// List expressions support negative indexing. If the index is negative, the
// resolved index starts backwards from end of list. If an index is out of bounds,
// a parameter error will be returned. If a range is partially out of bounds, the
// valid part of the range will be returned. Index/Range examples:
//
//	Index 0: First item in list.
//	Index 4: Fifth item in list.
//	Index -1: Last item in list.
//	Index -3: Third to last item in list.
//	Index 1 Count 2: Second and third items in list.
//	Index -3 Count 3: Last three items in list.
//	Index -5 Count 4: Range between fifth to last item to second to last item inclusive.
//
// Nested expressions are supported by optional CTX context arguments.  Example:
//
//	bin = [[7,9,5],[1,2,3],[6,5,4,1]]
//	Get size of last list.
//	ExpListSize(ExpListBin("bin"), CtxListIndex(-1))
//	result = 4

// Module codes of the server side call expression.
const (
	expModuleCDT int64 = 0
	expModuleBit int64 = 1
	expModuleHLL int64 = 2
)

// expModuleCall builds a call of a server module on bin. The bin argument is
// always the last child.
func expModuleCall(module int64, modify bool, rt ExpType, cdtOp int, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	fixed := params(paramModule, module, paramCDTOp, cdtOp)
	if modify {
		fixed = append(fixed, ExpParam{Name: paramModify, Value: true})
	}
	if len(ctx) > 0 {
		fixed = append(fixed, ExpParam{Name: paramCtx, Value: ctx})
	}

	children := make([]*Expression, 0, len(args)+1)
	children = append(children, args...)
	children = append(children, bin)

	exp := newExp(expOpCALL, rt, fixed, children...)
	if exp.err == nil && len(ctx) > 0 {
		exp.err = validateCtx(ctx)
	}
	return exp
}

// expCDTWriteType returns the type of a modified collection: the bin type,
// or the type of the outermost collection when the target is nested.
func expCDTWriteType(binType ExpType, ctx []*CDTContext) ExpType {
	if len(ctx) == 0 {
		return binType
	}
	if ctx[0] != nil && ctx[0].isListStep() {
		return ExpTypeLIST
	}
	return ExpTypeMAP
}

func expListRead(cdtOp int, rt ExpType, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	return expModuleCall(expModuleCDT, false, rt, cdtOp, bin, ctx, args...)
}

func expListWrite(cdtOp int, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	return expModuleCall(expModuleCDT, true, expCDTWriteType(ExpTypeLIST, ctx), cdtOp, bin, ctx, args...)
}

// expListCRMod packs the order and write flags of a list policy.
func expListCRMod(policy *ListPolicy) *Expression {
	policy = policy.orDefault()
	return newExp(expOpListCRMod, ExpTypeNone, params(paramOrder, int(policy.attributes), paramFlags, int(policy.flags)))
}

// expListMod packs the write flags of a list policy.
func expListMod(policy *ListPolicy) *Expression {
	policy = policy.orDefault()
	return newExp(expOpListMod, ExpTypeNone, params(paramFlags, int(policy.flags)))
}

// expRangeArgs returns the interval arguments. A nil begin means the lowest
// value; a nil end leaves the range open and is not sent.
func expRangeArgs(rt int, begin, end *Expression) []*Expression {
	if begin == nil {
		begin = ExpNilValue()
	}
	if end == nil {
		return []*Expression{expRType(rt), begin}
	}
	return []*Expression{expRType(rt), begin, end}
}

// expListValueType returns the type of an expression which may select
// multiple items of a list.
func expListValueType(returnType ListReturnType) (ExpType, Error) {
	switch returnType &^ ListReturnTypeInverted {
	case ListReturnTypeIndex, ListReturnTypeReverseIndex, ListReturnTypeRank, ListReturnTypeReverseRank:
		return ExpTypeLIST, nil
	case ListReturnTypeCount:
		return ExpTypeINT, nil
	case ListReturnTypeValue:
		return ExpTypeLIST, nil
	case ListReturnTypeExists:
		return ExpTypeBOOL, nil
	}
	return ExpTypeNone, newErrorf(types.PARAMETER_ERROR, "invalid ListReturnType: %d", returnType)
}

func expListReadMulti(cdtOp int, returnType ListReturnType, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	rt, err := expListValueType(returnType)
	if err != nil {
		return failedExp(expOpCALL, err)
	}
	return expListRead(cdtOp, rt, bin, ctx, args...)
}

// ExpListAppend creates an expression that appends value to end of list.
func ExpListAppend(policy *ListPolicy, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_APPEND, bin, ctx, value, expListCRMod(policy))
}

// ExpListAppendItems creates an expression that appends list items to end of list.
func ExpListAppendItems(policy *ListPolicy, list *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_APPEND_ITEMS, bin, ctx, list, expListCRMod(policy))
}

// ExpListInsert creates an expression that inserts value to specified index of list.
func ExpListInsert(policy *ListPolicy, index *Expression, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_INSERT, bin, ctx, index, value, expListMod(policy))
}

// ExpListInsertItems creates an expression that inserts each input list item starting at specified index of list.
func ExpListInsertItems(policy *ListPolicy, index *Expression, list *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_INSERT_ITEMS, bin, ctx, index, list, expListMod(policy))
}

// ExpListIncrement creates an expression that increments list[index] by value.
// Value expression should resolve to a number.
func ExpListIncrement(policy *ListPolicy, index *Expression, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_INCREMENT, bin, ctx, index, value, expListCRMod(policy))
}

// ExpListSet creates an expression that sets item value at specified index in list.
func ExpListSet(policy *ListPolicy, index *Expression, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_SET, bin, ctx, index, value, expListMod(policy))
}

// ExpListClear creates an expression that removes all items in list.
func ExpListClear(bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_CLEAR, bin, ctx)
}

// ExpListSort creates an expression that sorts list according to sortFlags.
func ExpListSort(sortFlags ListSortFlags, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_SORT, bin, ctx, expIntArg(int(sortFlags)))
}

// ExpListRemoveByValue creates an expression that removes list items identified by value.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByValue(returnType ListReturnType, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_VALUE, bin, ctx, expRType(int(returnType)), value)
}

// ExpListRemoveByValueList creates an expression that removes list items identified by values.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByValueList(returnType ListReturnType, values *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_VALUE_LIST, bin, ctx, expRType(int(returnType)), values)
}

// ExpListRemoveByValueRange creates an expression that removes list items identified by value range
// (valueBegin inclusive, valueEnd exclusive). If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByValueRange(returnType ListReturnType, valueBegin, valueEnd *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_VALUE_INTERVAL, bin, ctx, expRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// ExpListRemoveByValueRelativeRankRange creates an expression that removes list items nearest to value
// and greater by relative rank.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
//
// Examples for ordered list [0,4,5,9,11,15]:
//
//	(value,rank) = [removed items]
//	(5,0) = [5,9,11,15]
//	(5,1) = [9,11,15]
//	(5,-1) = [4,5,9,11,15]
//	(3,0) = [4,5,9,11,15]
//	(3,3) = [11,15]
//	(3,-3) = [0,4,5,9,11,15]
func ExpListRemoveByValueRelativeRankRange(returnType ListReturnType, value *Expression, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_VALUE_REL_RANK_RANGE, bin, ctx, expRType(int(returnType)), value, rank)
}

// ExpListRemoveByValueRelativeRankRangeCount creates an expression that removes list items nearest to value
// and greater by relative rank with a count limit.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByValueRelativeRankRangeCount(returnType ListReturnType, value *Expression, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_VALUE_REL_RANK_RANGE, bin, ctx, expRType(int(returnType)), value, rank, count)
}

// ExpListRemoveByIndex creates an expression that removes list item identified by index.
func ExpListRemoveByIndex(returnType ListReturnType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_INDEX, bin, ctx, expRType(int(returnType)), index)
}

// ExpListRemoveByIndexRange creates an expression that removes list items starting at specified index to the end of list.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByIndexRange(returnType ListReturnType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_INDEX_RANGE, bin, ctx, expRType(int(returnType)), index)
}

// ExpListRemoveByIndexRangeCount creates an expression that removes "count" list items starting at specified index.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByIndexRangeCount(returnType ListReturnType, index *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_INDEX_RANGE, bin, ctx, expRType(int(returnType)), index, count)
}

// ExpListRemoveByRank creates an expression that removes list item identified by rank.
func ExpListRemoveByRank(returnType ListReturnType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_RANK, bin, ctx, expRType(int(returnType)), rank)
}

// ExpListRemoveByRankRange creates an expression that removes list items starting at specified rank to the last ranked item.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByRankRange(returnType ListReturnType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_RANK_RANGE, bin, ctx, expRType(int(returnType)), rank)
}

// ExpListRemoveByRankRangeCount creates an expression that removes "count" list items starting at specified rank.
// Valid returnType values are ListReturnTypeNone or ListReturnTypeInverted.
func ExpListRemoveByRankRangeCount(returnType ListReturnType, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListWrite(_CDT_LIST_REMOVE_BY_RANK_RANGE, bin, ctx, expRType(int(returnType)), rank, count)
}

// ExpListSize creates an expression that returns list size.
func ExpListSize(bin *Expression, ctx ...*CDTContext) *Expression {
	return expListRead(_CDT_LIST_SIZE, ExpTypeINT, bin, ctx)
}

// ExpListGetByValue creates an expression that selects list items identified by value and returns selected
// data specified by returnType.
func ExpListGetByValue(returnType ListReturnType, value *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_VALUE, returnType, bin, ctx, expRType(int(returnType)), value)
}

// ExpListGetByValueRange creates an expression that selects list items identified by value range and returns selected data
// specified by returnType.
func ExpListGetByValueRange(returnType ListReturnType, valueBegin, valueEnd *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_VALUE_INTERVAL, returnType, bin, ctx, expRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// ExpListGetByValueList creates an expression that selects list items identified by values and returns selected
// data specified by returnType.
func ExpListGetByValueList(returnType ListReturnType, values *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_VALUE_LIST, returnType, bin, ctx, expRType(int(returnType)), values)
}

// ExpListGetByValueRelativeRankRange creates an expression that selects list items nearest to value and greater by relative rank
// and returns selected data specified by returnType.
func ExpListGetByValueRelativeRankRange(returnType ListReturnType, value *Expression, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_VALUE_REL_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), value, rank)
}

// ExpListGetByValueRelativeRankRangeCount creates an expression that selects list items nearest to value and greater by relative rank with a count limit
// and returns selected data specified by returnType.
func ExpListGetByValueRelativeRankRangeCount(returnType ListReturnType, value *Expression, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_VALUE_REL_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), value, rank, count)
}

// ExpListGetByIndex creates an expression that selects list item identified by index and returns
// selected data specified by returnType.
func ExpListGetByIndex(returnType ListReturnType, valueType ExpType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListRead(_CDT_LIST_GET_BY_INDEX, valueType, bin, ctx, expRType(int(returnType)), index)
}

// ExpListGetByIndexRange creates an expression that selects list items starting at specified index to the end of list
// and returns selected data specified by returnType.
func ExpListGetByIndexRange(returnType ListReturnType, index *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_INDEX_RANGE, returnType, bin, ctx, expRType(int(returnType)), index)
}

// ExpListGetByIndexRangeCount creates an expression that selects "count" list items starting at specified index
// and returns selected data specified by returnType.
func ExpListGetByIndexRangeCount(returnType ListReturnType, index *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_INDEX_RANGE, returnType, bin, ctx, expRType(int(returnType)), index, count)
}

// ExpListGetByRank creates an expression that selects list item identified by rank and returns selected
// data specified by returnType.
func ExpListGetByRank(returnType ListReturnType, valueType ExpType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListRead(_CDT_LIST_GET_BY_RANK, valueType, bin, ctx, expRType(int(returnType)), rank)
}

// ExpListGetByRankRange creates an expression that selects list items starting at specified rank to the last ranked item
// and returns selected data specified by returnType.
func ExpListGetByRankRange(returnType ListReturnType, rank *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), rank)
}

// ExpListGetByRankRangeCount creates an expression that selects "count" list items starting at specified rank and returns
// selected data specified by returnType.
func ExpListGetByRankRangeCount(returnType ListReturnType, rank *Expression, count *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	return expListReadMulti(_CDT_LIST_GET_BY_RANK_RANGE, returnType, bin, ctx, expRType(int(returnType)), rank, count)
}
