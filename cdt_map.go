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

// Unique key map bin operations. Create map operations used by the client operate command.
// The default unique key map is unordered.
//
// All maps maintain an index and a rank.  The index is the item offset from the start of the map,
// for both unordered and ordered maps.  The rank is the sorted index of the value component.
// Map supports negative indexing for index and rank.
//
// Index examples:
//
//	Index 0: First item in map.
//	Index 4: Fifth item in map.
//	Index -1: Last item in map.
//	Index -3: Third to last item in map.
//	Index 1 Count 2: Second and third items in map.
//	Index -3 Count 3: Last three items in map.
//	Index -5 Count 4: Range between fifth to last item to second to last item inclusive.
//
// Rank examples:
//
//	Rank 0: Item with lowest value rank in map.
//	Rank 4: Fifth lowest ranked item in map.
//	Rank -1: Item with highest ranked value in map.
//	Rank -3: Item with third highest ranked value in map.
//	Rank 1 Count 2: Second and third lowest ranked items in map.
//	Rank -3 Count 3: Top three ranked items in map.

const (
	_CDT_MAP_SET_TYPE                       = 64
	_CDT_MAP_ADD                            = 65
	_CDT_MAP_ADD_ITEMS                      = 66
	_CDT_MAP_PUT                            = 67
	_CDT_MAP_PUT_ITEMS                      = 68
	_CDT_MAP_REPLACE                        = 69
	_CDT_MAP_REPLACE_ITEMS                  = 70
	_CDT_MAP_INCREMENT                      = 73
	_CDT_MAP_DECREMENT                      = 74
	_CDT_MAP_CLEAR                          = 75
	_CDT_MAP_REMOVE_BY_KEY                  = 76
	_CDT_MAP_REMOVE_BY_INDEX                = 77
	_CDT_MAP_REMOVE_BY_RANK                 = 79
	_CDT_MAP_REMOVE_BY_KEY_LIST             = 81
	_CDT_MAP_REMOVE_BY_VALUE                = 82
	_CDT_MAP_REMOVE_BY_VALUE_LIST           = 83
	_CDT_MAP_REMOVE_BY_KEY_INTERVAL         = 84
	_CDT_MAP_REMOVE_BY_INDEX_RANGE          = 85
	_CDT_MAP_REMOVE_BY_VALUE_INTERVAL       = 86
	_CDT_MAP_REMOVE_BY_RANK_RANGE           = 87
	_CDT_MAP_REMOVE_BY_KEY_REL_INDEX_RANGE  = 88
	_CDT_MAP_REMOVE_BY_VALUE_REL_RANK_RANGE = 89
	_CDT_MAP_SIZE                           = 96
	_CDT_MAP_GET_BY_KEY                     = 97
	_CDT_MAP_GET_BY_INDEX                   = 98
	_CDT_MAP_GET_BY_RANK                    = 100
	_CDT_MAP_GET_BY_VALUE                   = 102
	_CDT_MAP_GET_BY_KEY_INTERVAL            = 103
	_CDT_MAP_GET_BY_INDEX_RANGE             = 104
	_CDT_MAP_GET_BY_VALUE_INTERVAL          = 105
	_CDT_MAP_GET_BY_RANK_RANGE              = 106
	_CDT_MAP_GET_BY_KEY_LIST                = 107
	_CDT_MAP_GET_BY_VALUE_LIST              = 108
	_CDT_MAP_GET_BY_KEY_REL_INDEX_RANGE     = 109
	_CDT_MAP_GET_BY_VALUE_REL_RANK_RANGE    = 110
)

type mapOrderType int

// flag returns the context create flag for a map of this order.
func (o mapOrderType) flag() int {
	switch o {
	case MapOrder.KEY_ORDERED:
		return 0x80
	case MapOrder.KEY_VALUE_ORDERED:
		return 0xc0
	}
	return 0x40
}

// MapOrder defines map storage order.
var MapOrder = struct {
	// Map is not ordered.  This is the default.
	UNORDERED mapOrderType // 0

	// Order map by key.
	KEY_ORDERED mapOrderType // 1

	// Order map by key, then value.
	KEY_VALUE_ORDERED mapOrderType // 3
}{0, 1, 3}

type mapReturnType int

// MapReturnType defines the map return type.
// Type of data to return when selecting or removing items from the map.
var MapReturnType = struct {
	// NONE will will not return a result.
	NONE mapReturnType

	// INDEX will return key index order.
	//
	// 0 = first key
	// N = Nth key
	// -1 = last key
	INDEX mapReturnType

	// REVERSE_INDEX will return reverse key order.
	//
	// 0 = last key
	// -1 = first key
	REVERSE_INDEX mapReturnType

	// RANK will return value order.
	//
	// 0 = smallest value
	// N = Nth smallest value
	// -1 = largest value
	RANK mapReturnType

	// REVERSE_RANK will return reverse value order.
	//
	// 0 = largest value
	// N = Nth largest value
	// -1 = smallest value
	REVERSE_RANK mapReturnType

	// COUNT will return count of items selected.
	COUNT mapReturnType

	// KEY will return key for single key read and key list for range read.
	KEY mapReturnType

	// VALUE will return value for single key read and value list for range read.
	VALUE mapReturnType

	// KEY_VALUE will return key/value items. The possible return types are:
	//
	// map[interface{}]interface{} : Returned for unordered maps
	// []MapPair : Returned for range results where range order needs to be preserved.
	KEY_VALUE mapReturnType

	// EXISTS returns true if count > 0.
	EXISTS mapReturnType

	// UNORDERED_MAP returns an unordered map.
	UNORDERED_MAP mapReturnType

	// ORDERED_MAP returns an ordered map.
	ORDERED_MAP mapReturnType

	// INVERTED will invert meaning of map command and return values.  For example:
	// MapRemoveByKeyRange(binName, keyBegin, keyEnd, MapReturnType.KEY | MapReturnType.INVERTED)
	// With the INVERTED flag enabled, the keys outside of the specified key range will be removed and returned.
	INVERTED mapReturnType
}{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 13, 16, 17, 0x10000,
}

// MapWriteFlags contains the unique key map write flag values.
type MapWriteFlags int

const (
	// MapWriteFlagsDefault is the Default. Allow create or update.
	MapWriteFlagsDefault MapWriteFlags = 0

	// MapWriteFlagsCreateOnly means: If the key already exists, the item will be denied.
	// If the key does not exist, a new item will be created.
	MapWriteFlagsCreateOnly MapWriteFlags = 1

	// MapWriteFlagsUpdateOnly means: If the key already exists, the item will be overwritten.
	// If the key does not exist, the item will be denied.
	MapWriteFlagsUpdateOnly MapWriteFlags = 2

	// MapWriteFlagsNoFail means: Do not raise error if a map item is denied due to write flag constraints.
	MapWriteFlagsNoFail MapWriteFlags = 4

	// MapWriteFlagsPartial means: Allow other valid map items to be committed if a map item is denied due to
	// write flag constraints.
	MapWriteFlagsPartial MapWriteFlags = 8
)

type mapWriteMode struct {
	itemCommand  int
	itemsCommand int
}

// MapWriteMode should only be used for server versions < 4.3.
// MapWriteFlags are recommended for server versions >= 4.3.
var MapWriteMode = struct {
	// If the key already exists, the item will be overwritten.
	// If the key does not exist, a new item will be created.
	UPDATE *mapWriteMode

	// If the key already exists, the item will be overwritten.
	// If the key does not exist, the write will fail.
	UPDATE_ONLY *mapWriteMode

	// If the key already exists, the write will fail.
	// If the key does not exist, a new item will be created.
	CREATE_ONLY *mapWriteMode
}{
	&mapWriteMode{_CDT_MAP_PUT, _CDT_MAP_PUT_ITEMS},
	&mapWriteMode{_CDT_MAP_REPLACE, _CDT_MAP_REPLACE_ITEMS},
	&mapWriteMode{_CDT_MAP_ADD, _CDT_MAP_ADD_ITEMS},
}

// MapPolicy directives when creating a map and writing map items.
type MapPolicy struct {
	attributes   mapOrderType
	flags        MapWriteFlags
	itemCommand  int
	itemsCommand int
}

// NewMapPolicy creates a MapPolicy with WriteMode. Use with servers before v4.3.
func NewMapPolicy(order mapOrderType, writeMode *mapWriteMode) *MapPolicy {
	if writeMode == nil {
		writeMode = MapWriteMode.UPDATE
	}
	return &MapPolicy{
		attributes:   order,
		flags:        MapWriteFlagsDefault,
		itemCommand:  writeMode.itemCommand,
		itemsCommand: writeMode.itemsCommand,
	}
}

// NewMapPolicyWithFlags creates a MapPolicy with WriteFlags. Use with servers v4.3+.
func NewMapPolicyWithFlags(order mapOrderType, flags MapWriteFlags) *MapPolicy {
	return &MapPolicy{
		attributes:   order,
		flags:        flags,
		itemCommand:  _CDT_MAP_PUT,
		itemsCommand: _CDT_MAP_PUT_ITEMS,
	}
}

// DefaultMapPolicy returns the default map policy
func DefaultMapPolicy() *MapPolicy {
	return NewMapPolicy(MapOrder.UNORDERED, MapWriteMode.UPDATE)
}

func (mp *MapPolicy) orDefault() *MapPolicy {
	if mp == nil {
		return DefaultMapPolicy()
	}
	return mp
}

func mapRead(binName string, command int, ctx []*CDTContext, args ...interface{}) *Operation {
	return newCDTOp(_MAP_READ, binName, command, ctx, args...)
}

func mapModify(binName string, command int, ctx []*CDTContext, args ...interface{}) *Operation {
	return newCDTOp(_MAP_MODIFY, binName, command, ctx, args...)
}

// MapCreateOp creates a map create operation.
// Server creates map at given context level.
func MapCreateOp(binName string, order mapOrderType, ctx []*CDTContext) *Operation {
	if len(ctx) > 0 {
		last := *ctx[len(ctx)-1]
		last.Id |= order.flag()
		ctx = append(append([]*CDTContext{}, ctx[:len(ctx)-1]...), &last)
	}
	return mapModify(binName, _CDT_MAP_SET_TYPE, ctx, int(order))
}

// MapSetPolicyOp creates set map policy operation.
// Server sets map policy attributes.  Server returns nil.
//
// The required map policy attributes can be changed after the map is created.
func MapSetPolicyOp(policy *MapPolicy, binName string, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()
	op := mapModify(binName, _CDT_MAP_SET_TYPE, ctx, int(policy.attributes))
	op.policy = policy
	return op
}

// MapPutOp creates map put operation.
// Server writes key/value item to map bin and returns map size.
//
// The required map policy dictates the type of map to create when it does not exist.
// The map policy also specifies the mode used when writing items to the map.
func MapPutOp(policy *MapPolicy, binName string, key interface{}, value interface{}, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()

	var op *Operation
	switch {
	case policy.flags != 0:
		op = mapModify(binName, _CDT_MAP_PUT, ctx, key, value, int(policy.attributes), int(policy.flags))
	case policy.itemCommand == _CDT_MAP_REPLACE:
		// Replace doesn't allow map attributes because it does not create on non-existing key.
		op = mapModify(binName, policy.itemCommand, ctx, key, value)
	default:
		op = mapModify(binName, policy.itemCommand, ctx, key, value, int(policy.attributes))
	}
	op.policy = policy
	return op
}

// MapPutItemsOp creates map put items operation
// Server writes each map item to map bin and returns map size.
//
// The required map policy dictates the type of map to create when it does not exist.
// The map policy also specifies the mode used when writing items to the map.
func MapPutItemsOp(policy *MapPolicy, binName string, amap map[interface{}]interface{}, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()

	var op *Operation
	switch {
	case policy.flags != 0:
		op = mapModify(binName, _CDT_MAP_PUT_ITEMS, ctx, MapValue(amap), int(policy.attributes), int(policy.flags))
	case policy.itemsCommand == _CDT_MAP_REPLACE_ITEMS:
		op = mapModify(binName, policy.itemsCommand, ctx, MapValue(amap))
	default:
		op = mapModify(binName, policy.itemsCommand, ctx, MapValue(amap), int(policy.attributes))
	}
	op.policy = policy
	return op
}

// MapIncrementOp creates map increment operation.
// Server increments values by incr for all items identified by key and returns final result.
// Valid only for numbers.
//
// The required map policy dictates the type of map to create when it does not exist.
// The map policy also specifies the mode used when writing items to the map.
func MapIncrementOp(policy *MapPolicy, binName string, key interface{}, incr interface{}, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()
	op := mapModify(binName, _CDT_MAP_INCREMENT, ctx, key, incr, int(policy.attributes))
	op.policy = policy
	return op
}

// MapDecrementOp creates map decrement operation.
// Server decrements values by decr for all items identified by key and returns final result.
// Valid only for numbers.
func MapDecrementOp(policy *MapPolicy, binName string, key interface{}, decr interface{}, ctx ...*CDTContext) *Operation {
	policy = policy.orDefault()
	op := mapModify(binName, _CDT_MAP_DECREMENT, ctx, key, decr, int(policy.attributes))
	op.policy = policy
	return op
}

// MapClearOp creates map clear operation.
// Server removes all items in map.  Server returns nil.
func MapClearOp(binName string, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_CLEAR, ctx)
}

// MapRemoveByKeyOp creates map remove operation.
// Server removes map item identified by key and returns removed data specified by returnType.
func MapRemoveByKeyOp(binName string, key interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_KEY, ctx, int(returnType), key)
}

// MapRemoveByKeyListOp creates map remove operation.
// Server removes map items identified by keys and returns removed data specified by returnType.
func MapRemoveByKeyListOp(binName string, keys []interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_KEY_LIST, ctx, int(returnType), ListValue(keys))
}

// MapRemoveByKeyRangeOp creates map remove operation.
// Server removes map items identified by key range (keyBegin inclusive, keyEnd exclusive).
// If keyBegin is nil, the range is less than keyEnd.
// If keyEnd is nil, the range is greater than equal to keyBegin.
//
// Server returns removed data specified by returnType.
func MapRemoveByKeyRangeOp(binName string, keyBegin interface{}, keyEnd interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_KEY_INTERVAL, ctx, cdtRangeArgs(int(returnType), keyBegin, keyEnd)...)
}

// MapRemoveByValueOp creates map remove operation.
// Server removes map items identified by value and returns removed data specified by returnType.
func MapRemoveByValueOp(binName string, value interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_VALUE, ctx, int(returnType), value)
}

// MapRemoveByValueListOp creates map remove operation.
// Server removes map items identified by values and returns removed data specified by returnType.
func MapRemoveByValueListOp(binName string, values []interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_VALUE_LIST, ctx, int(returnType), ListValue(values))
}

// MapRemoveByValueRangeOp creates map remove operation.
// Server removes map items identified by value range (valueBegin inclusive, valueEnd exclusive).
// If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
//
// Server returns removed data specified by returnType.
func MapRemoveByValueRangeOp(binName string, valueBegin interface{}, valueEnd interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_VALUE_INTERVAL, ctx, cdtRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// MapRemoveByValueRelativeRankRangeOp creates a map remove by value relative to rank range operation.
// Server removes map items nearest to value and greater by relative rank.
// Server returns removed data specified by returnType.
//
// Examples for map [{4=2},{9=10},{5=15},{0=17}]:
//
//	(value,rank) = [removed items]
//	(11,1) = [{0=17}]
//	(11,-1) = [{9=10},{5=15},{0=17}]
func MapRemoveByValueRelativeRankRangeOp(binName string, value interface{}, rank int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank)
}

// MapRemoveByValueRelativeRankRangeCountOp creates a map remove by value relative to rank range operation.
// Server removes map items nearest to value and greater by relative rank with a count limit.
// Server returns removed data specified by returnType.
func MapRemoveByValueRelativeRankRangeCountOp(binName string, value interface{}, rank, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank, count)
}

// MapRemoveByIndexOp creates map remove operation.
// Server removes map item identified by index and returns removed data specified by returnType.
func MapRemoveByIndexOp(binName string, index int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_INDEX, ctx, int(returnType), index)
}

// MapRemoveByIndexRangeOp creates map remove operation.
// Server removes map items starting at specified index to the end of map and returns removed
// data specified by returnType.
func MapRemoveByIndexRangeOp(binName string, index int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_INDEX_RANGE, ctx, int(returnType), index)
}

// MapRemoveByIndexRangeCountOp creates map remove operation.
// Server removes "count" map items starting at specified index and returns removed data specified by returnType.
func MapRemoveByIndexRangeCountOp(binName string, index int, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_INDEX_RANGE, ctx, int(returnType), index, count)
}

// MapRemoveByRankOp creates map remove operation.
// Server removes map item identified by value rank and returns removed data specified by returnType.
func MapRemoveByRankOp(binName string, rank int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_RANK, ctx, int(returnType), rank)
}

// MapRemoveByRankRangeOp creates map remove operation.
// Server removes map items starting at specified rank to the last ranked item and returns removed
// data specified by returnType.
func MapRemoveByRankRangeOp(binName string, rank int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_RANK_RANGE, ctx, int(returnType), rank)
}

// MapRemoveByRankRangeCountOp creates map remove operation.
// Server removes "count" map items starting at specified rank and returns removed data specified by returnType.
func MapRemoveByRankRangeCountOp(binName string, rank int, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_RANK_RANGE, ctx, int(returnType), rank, count)
}

// MapRemoveByKeyRelativeIndexRangeOp creates a map remove by key relative to index range operation.
// Server removes map items nearest to key and greater by index.
// Server returns removed data specified by returnType.
//
// Examples for map [{0=17},{4=2},{5=15},{9=10}]:
//
//	(value,index) = [removed items]
//	(5,0) = [{5=15},{9=10}]
//	(5,1) = [{9=10}]
//	(5,-1) = [{4=2},{5=15},{9=10}]
//	(3,2) = [{9=10}]
//	(3,-2) = [{0=17},{4=2},{5=15},{9=10}]
func MapRemoveByKeyRelativeIndexRangeOp(binName string, key interface{}, index int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_KEY_REL_INDEX_RANGE, ctx, int(returnType), key, index)
}

// MapRemoveByKeyRelativeIndexRangeCountOp creates map remove by key relative to index range operation.
// Server removes map items nearest to key and greater by index with a count limit.
// Server returns removed data specified by returnType.
func MapRemoveByKeyRelativeIndexRangeCountOp(binName string, key interface{}, index, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapModify(binName, _CDT_MAP_REMOVE_BY_KEY_REL_INDEX_RANGE, ctx, int(returnType), key, index, count)
}

// MapSizeOp creates map size operation.
// Server returns size of map.
func MapSizeOp(binName string, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_SIZE, ctx)
}

// MapGetByKeyOp creates map get by key operation.
// Server selects map item identified by key and returns selected data specified by returnType.
func MapGetByKeyOp(binName string, key interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_KEY, ctx, int(returnType), key)
}

// MapGetByKeyRangeOp creates map get by key range operation.
// Server selects map items identified by key range (keyBegin inclusive, keyEnd exclusive).
// If keyBegin is nil, the range is less than keyEnd.
// If keyEnd is nil, the range is greater than equal to keyBegin.
//
// Server returns selected data specified by returnType.
func MapGetByKeyRangeOp(binName string, keyBegin interface{}, keyEnd interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_KEY_INTERVAL, ctx, cdtRangeArgs(int(returnType), keyBegin, keyEnd)...)
}

// MapGetByKeyRelativeIndexRangeOp creates a map get by key relative to index range operation.
// Server selects map items nearest to key and greater by index.
// Server returns selected data specified by returnType.
func MapGetByKeyRelativeIndexRangeOp(binName string, key interface{}, index int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_KEY_REL_INDEX_RANGE, ctx, int(returnType), key, index)
}

// MapGetByKeyRelativeIndexRangeCountOp creates a map get by key relative to index range operation.
// Server selects map items nearest to key and greater by index with a count limit.
// Server returns selected data specified by returnType.
func MapGetByKeyRelativeIndexRangeCountOp(binName string, key interface{}, index, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_KEY_REL_INDEX_RANGE, ctx, int(returnType), key, index, count)
}

// MapGetByKeyListOp creates a map get by key list operation.
// Server selects map items identified by keys and returns selected data specified by returnType.
func MapGetByKeyListOp(binName string, keys []interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_KEY_LIST, ctx, int(returnType), ListValue(keys))
}

// MapGetByValueOp creates map get by value operation.
// Server selects map items identified by value and returns selected data specified by returnType.
func MapGetByValueOp(binName string, value interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_VALUE, ctx, int(returnType), value)
}

// MapGetByValueRangeOp creates map get by value range operation.
// Server selects map items identified by value range (valueBegin inclusive, valueEnd exclusive)
// If valueBegin is nil, the range is less than valueEnd.
// If valueEnd is nil, the range is greater than equal to valueBegin.
//
// Server returns selected data specified by returnType.
func MapGetByValueRangeOp(binName string, valueBegin interface{}, valueEnd interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_VALUE_INTERVAL, ctx, cdtRangeArgs(int(returnType), valueBegin, valueEnd)...)
}

// MapGetByValueRelativeRankRangeOp creates a map get by value relative to rank range operation.
// Server selects map items nearest to value and greater by relative rank.
// Server returns selected data specified by returnType.
func MapGetByValueRelativeRankRangeOp(binName string, value interface{}, rank int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank)
}

// MapGetByValueRelativeRankRangeCountOp creates a map get by value relative to rank range operation.
// Server selects map items nearest to value and greater by relative rank with a count limit.
// Server returns selected data specified by returnType.
func MapGetByValueRelativeRankRangeCountOp(binName string, value interface{}, rank, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_VALUE_REL_RANK_RANGE, ctx, int(returnType), value, rank, count)
}

// MapGetByValueListOp creates map get by value list operation.
// Server selects map items identified by values and returns selected data specified by returnType.
func MapGetByValueListOp(binName string, values []interface{}, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_VALUE_LIST, ctx, int(returnType), ListValue(values))
}

// MapGetByIndexOp creates map get by index operation.
// Server selects map item identified by index and returns selected data specified by returnType.
func MapGetByIndexOp(binName string, index int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_INDEX, ctx, int(returnType), index)
}

// MapGetByIndexRangeOp creates map get by index range operation.
// Server selects map items starting at specified index to the end of map and returns selected
// data specified by returnType.
func MapGetByIndexRangeOp(binName string, index int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_INDEX_RANGE, ctx, int(returnType), index)
}

// MapGetByIndexRangeCountOp creates map get by index range operation.
// Server selects "count" map items starting at specified index and returns selected data specified by returnType.
func MapGetByIndexRangeCountOp(binName string, index int, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_INDEX_RANGE, ctx, int(returnType), index, count)
}

// MapGetByRankOp creates map get by rank operation.
// Server selects map item identified by value rank and returns selected data specified by returnType.
func MapGetByRankOp(binName string, rank int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_RANK, ctx, int(returnType), rank)
}

// MapGetByRankRangeOp creates map get by rank range operation.
// Server selects map items starting at specified rank to the last ranked item and returns selected
// data specified by returnType.
func MapGetByRankRangeOp(binName string, rank int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_RANK_RANGE, ctx, int(returnType), rank)
}

// MapGetByRankRangeCountOp creates map get by rank range operation.
// Server selects "count" map items starting at specified rank and returns selected data specified by returnType.
func MapGetByRankRangeCountOp(binName string, rank int, count int, returnType mapReturnType, ctx ...*CDTContext) *Operation {
	return mapRead(binName, _CDT_MAP_GET_BY_RANK_RANGE, ctx, int(returnType), rank, count)
}
