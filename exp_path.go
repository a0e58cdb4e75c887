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

// Path expressions iterate the children addressed by a context path.
// CtxAllChildren and CtxAllChildrenWithFilter select the iterated nodes;
// the filter and the modify body refer to the current node through loop
// variables.
//
//	bin = {"Day1": {"food": 10.0, "fun": 12.5}, "Day2": {"food": 34.0}}
//	ExpSelectByPath(ExpTypeMAP, SelectMatchingTree, ExpMapBin("bin"),
//		CtxAllChildren(),
//		CtxAllChildrenWithFilter(ExpGreaterEq(ExpLoopVarFloat(LoopVarPartValue), ExpFloatVal(20.0))))
//	result = {"Day1": {}, "Day2": {"food": 34.0}}

// ExpLoopVarPart identifies the part of the iterated node a loop variable
// refers to.
type ExpLoopVarPart int

const (
	// LoopVarPartMapKey refers to the key of the current map entry.
	LoopVarPartMapKey ExpLoopVarPart = 0
	// LoopVarPartValue refers to the value of the current node.
	LoopVarPartValue ExpLoopVarPart = 1
	// LoopVarPartIndex refers to the index of the current list item.
	LoopVarPartIndex ExpLoopVarPart = 2
)

func (part ExpLoopVarPart) String() string {
	switch part {
	case LoopVarPartMapKey:
		return "MAP_KEY"
	case LoopVarPartValue:
		return "VALUE"
	case LoopVarPartIndex:
		return "INDEX"
	}
	return "UNKNOWN"
}

// SelectFlags determine the shape of the result of a path expression.
type SelectFlags int

const (
	// SelectMatchingTree returns the original nested structure with the
	// non matching children removed.
	SelectMatchingTree SelectFlags = 0
	// SelectValue returns a flat list of the values of the matching nodes.
	SelectValue SelectFlags = 1
	// SelectMapKey returns a flat list of the keys of the matching map entries.
	SelectMapKey SelectFlags = 2
	// SelectMapKeyValue returns a flat list of key, value pairs of the
	// matching map entries.
	SelectMapKeyValue SelectFlags = 3
	// SelectApply applies the modify expression to the matching nodes.
	// Set by ExpModifyByPath and ModifyByPathOp.
	SelectApply SelectFlags = 4
	// SelectNoFail treats nodes for which the filter fails to evaluate,
	// for example because of a loop variable type mismatch, as non matching.
	SelectNoFail SelectFlags = 0x10
)

const (
	_CDT_SELECT = 0xfe

	selectProjectionMask = SelectValue | SelectMapKey
	selectKnownFlags     = selectProjectionMask | SelectApply | SelectNoFail
)

// validateSelectFlags rejects unknown bits. The apply bit is reserved for
// modify calls.
func validateSelectFlags(flags SelectFlags, modify bool) Error {
	if flags&^selectKnownFlags != 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid select flags: %#x", int(flags))
	}
	if !modify && flags&SelectApply != 0 {
		return newError(types.PARAMETER_ERROR, "SelectApply is only valid for modify by path")
	}
	return nil
}

func expLoopVar(rt ExpType, part ExpLoopVarPart) *Expression {
	exp := newExp(expOpVarBuiltin, rt, params(paramPart, int(part)))
	if part < LoopVarPartMapKey || part > LoopVarPartIndex {
		exp.err = newErrorf(types.PARAMETER_ERROR, "invalid loop variable part: %d", int(part))
	}
	return exp
}

// ExpLoopVarInt references an integer part of the iterated node.
func ExpLoopVarInt(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeINT, part)
}

// ExpLoopVarFloat references a float part of the iterated node.
func ExpLoopVarFloat(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeFLOAT, part)
}

// ExpLoopVarString references a string part of the iterated node.
func ExpLoopVarString(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeSTRING, part)
}

// ExpLoopVarBlob references a blob part of the iterated node.
func ExpLoopVarBlob(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeBLOB, part)
}

// ExpLoopVarList references a list part of the iterated node.
func ExpLoopVarList(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeLIST, part)
}

// ExpLoopVarMap references a map part of the iterated node.
func ExpLoopVarMap(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeMAP, part)
}

// ExpLoopVarBool references a boolean part of the iterated node.
func ExpLoopVarBool(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeBOOL, part)
}

// ExpLoopVarNil references a nil part of the iterated node.
func ExpLoopVarNil(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeNIL, part)
}

// ExpLoopVarGeo references a GeoJSON part of the iterated node.
func ExpLoopVarGeo(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeGEO, part)
}

// ExpLoopVarHLL references a HyperLogLog part of the iterated node.
func ExpLoopVarHLL(part ExpLoopVarPart) *Expression {
	return expLoopVar(ExpTypeHLL, part)
}

func expPathCall(modify bool, returnType ExpType, flags SelectFlags, bin *Expression, ctx []*CDTContext, args ...*Expression) *Expression {
	if len(ctx) == 0 {
		return failedExp(expOpCALL, cloneError(ErrInvalidContextPath))
	}
	if bin == nil {
		return failedExp(expOpCALL, newError(types.PARAMETER_ERROR, "path expression requires a bin"))
	}
	if err := validateSelectFlags(flags, modify); err != nil {
		return failedExp(expOpCALL, err)
	}

	args = append([]*Expression{expIntArg(int(flags))}, args...)
	return expModuleCall(expModuleCDT, modify, returnType, _CDT_SELECT, bin, ctx, args...)
}

// ExpSelectByPath creates an expression that selects the nodes addressed by
// ctx. The shape of the result is determined by flags.
// Requires server version 8.1.0+.
func ExpSelectByPath(returnType ExpType, flags SelectFlags, bin *Expression, ctx ...*CDTContext) *Expression {
	return expPathCall(false, returnType, flags, bin, ctx)
}

// ExpModifyByPath creates an expression that replaces every node addressed by
// ctx with the value of modifyExp. If modifyExp evaluates to ExpRemoveResult,
// the node is removed from its parent. Parents are kept even when they become
// empty. The result is the modified bin value.
// Requires server version 8.1.0+.
func ExpModifyByPath(returnType ExpType, flags SelectFlags, modifyExp *Expression, bin *Expression, ctx ...*CDTContext) *Expression {
	if modifyExp == nil {
		return failedExp(expOpCALL, newError(types.PARAMETER_ERROR, "modify by path requires a modify expression"))
	}
	return expPathCall(true, returnType, flags|SelectApply, bin, ctx, modifyExp)
}

// ExpRemoveResult creates an expression which removes the current node when
// returned from the body of ExpModifyByPath.
func ExpRemoveResult() *Expression {
	return newExp(expOpRemoveResult, ExpTypeNone, nil)
}
