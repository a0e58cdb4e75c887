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

import "github.com/aerospike/aerospike-expressions-go/types"

// List bin operations. Create list operations used by client.Operate command.
// List operations support negative indexing.  If the index is negative, the
// resolved index starts backwards from end of list.
//
// Index/Range examples:
//
//	Index 0: First item in list.
//	Index 4: Fifth item in list.
//	Index -1: Last item in list.
//	Index -3: Third to last item in list.
//	Index 1 Count 2: Second and third items in list.
//	Index -3 Count 3: Last three items in list.
//	Index -5 Count 4: Range between fifth to last item to second to last item inclusive.
//
// If an index is out of bounds, a parameter error will be returned. If a range is partially
// out of bounds, the valid part of the range will be returned.

const (
	_CDT_LIST_SET_TYPE                       = 0
	_CDT_LIST_APPEND                         = 1
	_CDT_LIST_APPEND_ITEMS                   = 2
	_CDT_LIST_INSERT                         = 3
	_CDT_LIST_INSERT_ITEMS                   = 4
	_CDT_LIST_POP                            = 5
	_CDT_LIST_POP_RANGE                      = 6
	_CDT_LIST_REMOVE                         = 7
	_CDT_LIST_REMOVE_RANGE                   = 8
	_CDT_LIST_SET                            = 9
	_CDT_LIST_TRIM                           = 10
	_CDT_LIST_CLEAR                          = 11
	_CDT_LIST_INCREMENT                      = 12
	_CDT_LIST_SORT                           = 13
	_CDT_LIST_SIZE                           = 16
	_CDT_LIST_GET                            = 17
	_CDT_LIST_GET_RANGE                      = 18
	_CDT_LIST_GET_BY_INDEX                   = 19
	_CDT_LIST_GET_BY_RANK                    = 21
	_CDT_LIST_GET_BY_VALUE                   = 22
	_CDT_LIST_GET_BY_VALUE_LIST              = 23
	_CDT_LIST_GET_BY_INDEX_RANGE             = 24
	_CDT_LIST_GET_BY_VALUE_INTERVAL          = 25
	_CDT_LIST_GET_BY_RANK_RANGE              = 26
	_CDT_LIST_GET_BY_VALUE_REL_RANK_RANGE    = 27
	_CDT_LIST_REMOVE_BY_INDEX                = 32
	_CDT_LIST_REMOVE_BY_RANK                 = 34
	_CDT_LIST_REMOVE_BY_VALUE                = 35
	_CDT_LIST_REMOVE_BY_VALUE_LIST           = 36
	_CDT_LIST_REMOVE_BY_INDEX_RANGE          = 37
	_CDT_LIST_REMOVE_BY_VALUE_INTERVAL       = 38
	_CDT_LIST_REMOVE_BY_RANK_RANGE           = 39
	_CDT_LIST_REMOVE_BY_VALUE_REL_RANK_RANGE = 40
)

// ListOrderType determines the order of returned values in CDT list operations.
type ListOrderType int

// Map storage order.
const (
	// ListOrderUnordered signifies that list is not ordered. This is the default.
	ListOrderUnordered ListOrderType = 0

	// ListOrderOrdered signifies that list is Ordered.
	ListOrderOrdered ListOrderType = 1
)

// listOrderFlag returns the context create flag for a list of the given order.
func listOrderFlag(order ListOrderType, pad bool) int {
	if order == ListOrderOrdered {
		return 0xc0
	}
	if pad {
		return 0x80
	}
	return 0x40
}

// ListReturnType determines the returned values in CDT List operations.
type ListReturnType int

const (
	// ListReturnTypeNone will not return a result.
	ListReturnTypeNone ListReturnType = 0

	// ListReturnTypeIndex will return index offset order.
	// 0 = first key
	// N = Nth key
	// -1 = last key
	ListReturnTypeIndex ListReturnType = 1

	// ListReturnTypeReverseIndex will return reverse index offset order.
	// 0 = last key
	// -1 = first key
	ListReturnTypeReverseIndex ListReturnType = 2

	// ListReturnTypeRank will return value order.
	// 0 = smallest value
	// N = Nth smallest value
	// -1 = largest value
	ListReturnTypeRank ListReturnType = 3

	// ListReturnTypeReverseRank will return reverse value order.
	// 0 = largest value
	// N = Nth largest value
	// -1 = smallest value
	ListReturnTypeReverseRank ListReturnType = 4

	// ListReturnTypeCount will return count of items selected.
	ListReturnTypeCount ListReturnType = 5

	// ListReturnTypeValue will return value for single key read and value list for range read.
	ListReturnTypeValue ListReturnType = 7

	// ListReturnTypeExists returns true if count > 0.
	ListReturnTypeExists ListReturnType = 13

	// ListReturnTypeInverted will invert meaning of list command and return values.  For example:
	// ListOperation.getByIndexRange(binName, index, count, ListReturnType.INDEX | ListReturnType.INVERTED)
	// With the INVERTED flag enabled, the items outside of the specified index range will be returned.
	// The meaning of the list command can also be inverted.  For example:
	// ListOperation.removeByIndexRange(binName, index, count, ListReturnType.INDEX | ListReturnType.INVERTED);
	// With the INVERTED flag enabled, the items outside of the specified index range will be removed and returned.
	ListReturnTypeInverted ListReturnType = 0x10000
)

// ListSortFlags detemines sort flags for CDT lists
type ListSortFlags int

const (
	// ListSortFlagsDefault is the default sort flag for CDT lists, and sort in Ascending order.
	ListSortFlagsDefault ListSortFlags = 0
	// ListSortFlagsDescending will sort the contents of the list in descending order.
	ListSortFlagsDescending ListSortFlags = 1
	// ListSortFlagsDropDuplicates will drop duplicate values in the results of the CDT list operation.
	ListSortFlagsDropDuplicates ListSortFlags = 2
)

// ListWriteFlags detemines write flags for CDT lists
type ListWriteFlags int

const (
	// ListWriteFlagsDefault is the default behavior. It means:  Allow duplicate values and insertions at any index.
	ListWriteFlagsDefault ListWriteFlags = 0
	// ListWriteFlagsAddUnique means: Only add unique values.
	ListWriteFlagsAddUnique ListWriteFlags = 1
	// ListWriteFlagsInsertBounded means: Enforce list boundaries when inserting.  Do not allow values to be inserted
	// at index outside current list boundaries.
	ListWriteFlagsInsertBounded ListWriteFlags = 2
	// ListWriteFlagsNoFail means: do not raise error if a list item fails due to write flag constraints.
	ListWriteFlagsNoFail ListWriteFlags = 4
	// ListWriteFlagsPartial means: allow other valid list items to be committed if a list item fails due to
	// write flag constraints.
	ListWriteFlagsPartial ListWriteFlags = 8
)

// ListPolicy directives when creating a list and writing list items.
type ListPolicy struct {
	attributes ListOrderType
	flags      ListWriteFlags
}

// NewListPolicy creates a policy with directives when creating a list and writing list items.
// Flags are ListWriteFlags. You can specify multiple by `or`ing them together.
func NewListPolicy(order ListOrderType, flags ListWriteFlags) *ListPolicy {
	return &ListPolicy{
		attributes: order,
		flags:      flags,
	}
}

// DefaultListPolicy returns the default policy for CDT list operations.
func DefaultListPolicy() *ListPolicy {
	return NewListPolicy(ListOrderUnordered, ListWriteFlagsDefault)
}

func (lp *ListPolicy) orDefault() *ListPolicy {
	if lp == nil {
		return DefaultListPolicy()
	}
	return lp
}

// cdtRangeArgs builds the arguments of an interval command. A nil end means
// the range is open ended and is omitted; a nil begin means the lowest value.
func cdtRangeArgs(returnType int, begin, end interface{}) []interface{} {
	if begin == nil {
		begin = NewNullValue()
	}
	if end == nil {
		return []interface{}{returnType, begin}
	}
	return []interface{}{returnType, begin, end}
}

func listRead(binName string, command int, ctx []*CDTContext, args ...interface{}) *Operation {
	return newCDTOp(_CDT_READ, binName, command, ctx, args...)
}

func listModify(binName string, command int, ctx []*CDTContext, args ...interface{}) *Operation {
	return newCDTOp(_CDT_MODIFY, binName, command, ctx, args...)
}

// ListCreateOp creates list create operation.
// Server creates list at given context level. The context is allowed to be beyond list
// boundaries only if pad is set to true.  In that case, nil list entries will be inserted to
// satisfy the context position.
func ListCreateOp(binName string, order ListOrderType, pad bool, ctx ...*CDTContext) *Operation {
	if len(ctx) > 0 {
		// the last step of the path creates the list
		last := *ctx[len(ctx)-1]
		last.Id |= listOrderFlag(order, pad)
		ctx = append(append([]*CDTContext{}, ctx[:len(ctx)-1]...), &last)
	}
	return listModify(binName, _CDT_LIST_SET_TYPE, ctx, int(order))
}

// ListSetOrderOp creates a set list order operation.
// Server sets list order.  Server returns nil.
func ListSetOrderOp(binName string, listOrder ListOrderType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_SET_TYPE, ctx, int(listOrder))
}

// ListAppendOp creates a list append operation.
// Server appends values to end of list bin.
// Server returns list size on bin name.
func ListAppendOp(binName string, values ...interface{}) *Operation {
	return ListAppendWithPolicyContextOp(nil, binName, nil, values...)
}

// ListAppendWithPolicyOp creates a list append operation.
// Server appends values to end of list bin.
// Server returns list size on bin name.
func ListAppendWithPolicyOp(policy *ListPolicy, binName string, values ...interface{}) *Operation {
	return ListAppendWithPolicyContextOp(policy, binName, nil, values...)
}

// ListAppendWithPolicyContextOp creates a list append operation.
// Server appends values to end of list bin.
// Server returns list size on bin name.
func ListAppendWithPolicyContextOp(policy *ListPolicy, binName string, ctx []*CDTContext, values ...interface{}) *Operation {
	var op *Operation
	switch len(values) {
	case 0:
		op = listModify(binName, _CDT_LIST_APPEND_ITEMS, ctx)
		op.err = newError(types.PARAMETER_ERROR, "no values passed to list append")
		return op
	case 1:
		if policy == nil {
			op = listModify(binName, _CDT_LIST_APPEND, ctx, values[0])
		} else {
			op = listModify(binName, _CDT_LIST_APPEND, ctx, values[0], int(policy.attributes), int(policy.flags))
		}
	default:
		if policy == nil {
			op = listModify(binName, _CDT_LIST_APPEND_ITEMS, ctx, ListValue(values))
		} else {
			op = listModify(binName, _CDT_LIST_APPEND_ITEMS, ctx, ListValue(values), int(policy.attributes), int(policy.flags))
		}
	}
	if policy != nil {
		op.policy = policy
	}
	return op
}

// ListInsertOp creates a list insert operation.
// Server inserts value to specified index of list bin.
// Server returns list size on bin name.
func ListInsertOp(binName string, index int, values ...interface{}) *Operation {
	return ListInsertWithPolicyContextOp(nil, binName, index, nil, values...)
}

// ListInsertWithPolicyOp creates a list insert operation.
// Server inserts value to specified index of list bin.
// Server returns list size on bin name.
func ListInsertWithPolicyOp(policy *ListPolicy, binName string, index int, values ...interface{}) *Operation {
	return ListInsertWithPolicyContextOp(policy, binName, index, nil, values...)
}

// ListInsertWithPolicyContextOp creates a list insert operation.
// Server inserts value to specified index of list bin.
// Server returns list size on bin name.
func ListInsertWithPolicyContextOp(policy *ListPolicy, binName string, index int, ctx []*CDTContext, values ...interface{}) *Operation {
	var op *Operation
	switch len(values) {
	case 0:
		op = listModify(binName, _CDT_LIST_INSERT_ITEMS, ctx, index)
		op.err = newError(types.PARAMETER_ERROR, "no values passed to list insert")
		return op
	case 1:
		if policy == nil {
			op = listModify(binName, _CDT_LIST_INSERT, ctx, index, values[0])
		} else {
			op = listModify(binName, _CDT_LIST_INSERT, ctx, index, values[0], int(policy.flags))
		}
	default:
		if policy == nil {
			op = listModify(binName, _CDT_LIST_INSERT_ITEMS, ctx, index, ListValue(values))
		} else {
			op = listModify(binName, _CDT_LIST_INSERT_ITEMS, ctx, index, ListValue(values), int(policy.flags))
		}
	}
	if policy != nil {
		op.policy = policy
	}
	return op
}

// ListIncrementOp creates a list increment operation.
// Server increments list[index] by value.
// Value should be integer(IntegerValue, LongValue) or float(FloatValue).
// Server returns list[index] after incrementing.
func ListIncrementOp(binName string, index int, value interface{}, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_INCREMENT, ctx, index, value)
}

// ListIncrementWithPolicyOp creates a list increment operation.
// Server increments list[index] by value.
// Server returns list[index] after incrementing.
func ListIncrementWithPolicyOp(policy *ListPolicy, binName string, index int, value interface{}, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()
	op := listModify(binName, _CDT_LIST_INCREMENT, ctx, index, value, int(policy.attributes), int(policy.flags))
	op.policy = policy
	return op
}

// ListPopOp creates list pop operation.
// Server returns item at specified index and removes item from list bin.
func ListPopOp(binName string, index int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_POP, ctx, index)
}

// ListPopRangeOp creates a list pop range operation.
// Server returns items starting at specified index and removes items from list bin.
func ListPopRangeOp(binName string, index int, count int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_POP_RANGE, ctx, index, count)
}

// ListPopRangeFromOp creates a list pop range operation.
// Server returns items starting at specified index to the end of list and removes items from list bin.
func ListPopRangeFromOp(binName string, index int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_POP_RANGE, ctx, index)
}

// ListRemoveOp creates a list remove operation.
// Server removes item at specified index from list bin.
// Server returns number of items removed.
func ListRemoveOp(binName string, index int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE, ctx, index)
}

// ListRemoveRangeOp creates a list remove range operation.
// Server removes "count" items starting at specified index from list bin.
// Server returns number of items removed.
func ListRemoveRangeOp(binName string, index int, count int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_RANGE, ctx, index, count)
}

// ListRemoveRangeFromOp creates a list remove range operation.
// Server removes all items starting at specified index to the end of list.
// Server returns number of items removed.
func ListRemoveRangeFromOp(binName string, index int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_RANGE, ctx, index)
}

// ListSetOp creates a list set operation.
// Server sets item value at specified index in list bin.
// Server does not return a result by default.
func ListSetOp(binName string, index int, value interface{}, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_SET, ctx, index, value)
}

// ListSetWithPolicyOp creates a list set operation with write flags.
// Server sets item value at specified index in list bin.
func ListSetWithPolicyOp(policy *ListPolicy, binName string, index int, value interface{}, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()
	op := listModify(binName, _CDT_LIST_SET, ctx, index, value, int(policy.flags))
	op.policy = policy
	return op
}

// ListTrimOp creates a list trim operation.
// Server removes items in list bin that do not fall into range specified by index
// and count range.  If the range is out of bounds, then all items will be removed.
// Server returns number of elements that were removed.
func ListTrimOp(binName string, index int, count int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_TRIM, ctx, index, count)
}

// ListClearOp creates a list clear operation.
// Server removes all items in list bin.
// Server does not return a result by default.
func ListClearOp(binName string, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_CLEAR, ctx)
}

// ListSortOp creates list sort operation.
// Server sorts list according to sortFlags.
// Server does not return a result by default.
func ListSortOp(binName string, sortFlags ListSortFlags, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_SORT, ctx, int(sortFlags))
}

// ListSizeOp creates a list size operation.
// Server returns size of list on bin name.
func ListSizeOp(binName string, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_SIZE, ctx)
}

// ListGetOp creates a list get operation.
// Server returns item at specified index in list bin.
func ListGetOp(binName string, index int, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET, ctx, index)
}

// ListGetRangeOp creates a list get range operation.
// Server returns "count" items starting at specified index in list bin.
func ListGetRangeOp(binName string, index int, count int, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_RANGE, ctx, index, count)
}

// ListGetRangeFromOp creates a list get range operation.
// Server returns items starting at specified index to the end of list.
func ListGetRangeFromOp(binName string, index int, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_RANGE, ctx, index)
}

// ListRemoveByValueOp creates list remove by value operation.
// Server removes the item identified by value and returns removed data specified by returnType.
func ListRemoveByValueOp(binName string, value interface{}, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_VALUE, ctx, int(returnType), value)
}

// ListRemoveByValueListOp creates list remove by value operation.
// Server removes list items identified by value and returns removed data specified by returnType.
func ListRemoveByValueListOp(binName string, values []interface{}, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_VALUE_LIST, ctx, int(returnType), ListValue(values))
}

// ListRemoveByValueRangeOp creates a list remove operation.
// Server removes list items identified by value range (valueBegin inclusive, valueEnd exclusive).
// If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
// Server returns removed data specified by returnType
func ListRemoveByValueRangeOp(binName string, returnType ListReturnType, valueBegin, valueEnd interface{}, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_VALUE_INTERVAL, ctx, cdtRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// ListRemoveByValueRelativeRankRangeOp creates a list remove by value relative to rank range operation.
// Server removes list items nearest to value and greater by relative rank.
// Server returns removed data specified by returnType.
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
func ListRemoveByValueRelativeRankRangeOp(binName string, returnType ListReturnType, value interface{}, rank int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank)
}

// ListRemoveByValueRelativeRankRangeCountOp creates a list remove by value relative to rank range operation.
// Server removes list items nearest to value and greater by relative rank with a count limit.
// Server returns removed data specified by returnType.
func ListRemoveByValueRelativeRankRangeCountOp(binName string, returnType ListReturnType, value interface{}, rank, count int, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank, count)
}

// ListRemoveByIndexOp creates a list remove operation.
// Server removes list item identified by index and returns removed data specified by returnType.
func ListRemoveByIndexOp(binName string, index int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_INDEX, ctx, int(returnType), index)
}

// ListRemoveByIndexRangeOp creates a list remove operation.
// Server removes list items starting at specified index to the end of list and returns removed
// data specified by returnType.
func ListRemoveByIndexRangeOp(binName string, index int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_INDEX_RANGE, ctx, int(returnType), index)
}

// ListRemoveByIndexRangeCountOp creates a list remove operation.
// Server removes "count" list items starting at specified index and returns removed data specified by returnType.
func ListRemoveByIndexRangeCountOp(binName string, index, count int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_INDEX_RANGE, ctx, int(returnType), index, count)
}

// ListRemoveByRankOp creates a list remove operation.
// Server removes list item identified by rank and returns removed data specified by returnType.
func ListRemoveByRankOp(binName string, rank int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_RANK, ctx, int(returnType), rank)
}

// ListRemoveByRankRangeOp creates a list remove operation.
// Server removes list items starting at specified rank to the last ranked item and returns removed
// data specified by returnType.
func ListRemoveByRankRangeOp(binName string, rank int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_RANK_RANGE, ctx, int(returnType), rank)
}

// ListRemoveByRankRangeCountOp creates a list remove operation.
// Server removes "count" list items starting at specified rank and returns removed data specified by returnType.
func ListRemoveByRankRangeCountOp(binName string, rank int, count int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listModify(binName, _CDT_LIST_REMOVE_BY_RANK_RANGE, ctx, int(returnType), rank, count)
}

// ListGetByValueOp creates a list get by value operation.
// Server selects list items identified by value and returns selected data specified by returnType.
func ListGetByValueOp(binName string, value interface{}, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_VALUE, ctx, int(returnType), value)
}

// ListGetByValueListOp creates list get by value list operation.
// Server selects list items identified by values and returns selected data specified by returnType.
func ListGetByValueListOp(binName string, values []interface{}, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_VALUE_LIST, ctx, int(returnType), ListValue(values))
}

// ListGetByValueRangeOp creates a list get by value range operation.
// Server selects list items identified by value range (valueBegin inclusive, valueEnd exclusive)
// If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
// Server returns selected data specified by returnType.
func ListGetByValueRangeOp(binName string, beginValue, endValue interface{}, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_VALUE_INTERVAL, ctx, cdtRangeArgs(int(returnType), beginValue, endValue)...)
}

// ListGetByValueRelativeRankRangeOp creates a list get by value relative to rank range operation.
// Server selects list items nearest to value and greater by relative rank.
// Server returns selected data specified by returnType.
func ListGetByValueRelativeRankRangeOp(binName string, value interface{}, rank int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank)
}

// ListGetByValueRelativeRankRangeCountOp creates a list get by value relative to rank range operation.
// Server selects list items nearest to value and greater by relative rank with a count limit.
// Server returns selected data specified by returnType.
func ListGetByValueRelativeRankRangeCountOp(binName string, value interface{}, rank, count int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank, count)
}

// ListGetByIndexOp creates list get by index operation.
// Server selects list item identified by index and returns selected data specified by returnType
func ListGetByIndexOp(binName string, index int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_INDEX, ctx, int(returnType), index)
}

// ListGetByIndexRangeOp creates list get by index range operation.
// Server selects list items starting at specified index to the end of list and returns selected
// data specified by returnType.
func ListGetByIndexRangeOp(binName string, index int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_INDEX_RANGE, ctx, int(returnType), index)
}

// ListGetByIndexRangeCountOp creates list get by index range operation.
// Server selects "count" list items starting at specified index and returns selected data specified
// by returnType.
func ListGetByIndexRangeCountOp(binName string, index, count int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_INDEX_RANGE, ctx, int(returnType), index, count)
}

// ListGetByRankOp creates a list get by rank operation.
// Server selects list item identified by rank and returns selected data specified by returnType.
func ListGetByRankOp(binName string, rank int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_RANK, ctx, int(returnType), rank)
}

// ListGetByRankRangeOp creates a list get by rank range operation.
// Server selects list items starting at specified rank to the last ranked item and returns selected
// data specified by returnType.
func ListGetByRankRangeOp(binName string, rank int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_RANK_RANGE, ctx, int(returnType), rank)
}

// ListGetByRankRangeCountOp creates a list get by rank range operation.
// Server selects "count" list items starting at specified rank and returns selected data specified by returnType.
func ListGetByRankRangeCountOp(binName string, rank, count int, returnType ListReturnType, ctx ...*CDTContext) *Operation {
	return listRead(binName, _CDT_LIST_GET_BY_RANK_RANGE, ctx, int(returnType), rank, count)
}
