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
	"fmt"
	"math"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// ExpType defines the expression's data type.
type ExpType uint

const (
	// ExpTypeNIL is NIL Expression Type
	ExpTypeNIL ExpType = 0
	// ExpTypeBOOL is BOOLEAN Expression Type
	ExpTypeBOOL ExpType = 1
	// ExpTypeINT is INTEGER Expression Type
	ExpTypeINT ExpType = 2
	// ExpTypeSTRING is STRING Expression Type
	ExpTypeSTRING ExpType = 3
	// ExpTypeLIST is LIST Expression Type
	ExpTypeLIST ExpType = 4
	// ExpTypeMAP is MAP Expression Type
	ExpTypeMAP ExpType = 5
	// ExpTypeBLOB is BLOB Expression Type
	ExpTypeBLOB ExpType = 6
	// ExpTypeFLOAT is FLOAT Expression Type
	ExpTypeFLOAT ExpType = 7
	// ExpTypeGEO is GEO String Expression Type
	ExpTypeGEO ExpType = 8
	// ExpTypeHLL is HLL Expression Type
	ExpTypeHLL ExpType = 9

	// ExpTypeNone marks nodes without a declared result type.
	ExpTypeNone ExpType = math.MaxUint8
)

var expTypeNames = map[ExpType]string{
	ExpTypeNIL:    "NIL",
	ExpTypeBOOL:   "BOOL",
	ExpTypeINT:    "INT",
	ExpTypeSTRING: "STRING",
	ExpTypeLIST:   "LIST",
	ExpTypeMAP:    "MAP",
	ExpTypeBLOB:   "BLOB",
	ExpTypeFLOAT:  "FLOAT",
	ExpTypeGEO:    "GEO",
	ExpTypeHLL:    "HLL",
	ExpTypeNone:   "-",
}

func (t ExpType) String() string {
	if s, ok := expTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ExpType(%d)", uint(t))
}

// ExpOp is the opcode of a compiled expression cell.
type ExpOp uint

const (
	expOpUnknown       ExpOp = 0
	expOpEQ            ExpOp = 1
	expOpNE            ExpOp = 2
	expOpGT            ExpOp = 3
	expOpGE            ExpOp = 4
	expOpLT            ExpOp = 5
	expOpLE            ExpOp = 6
	expOpREGEX         ExpOp = 7
	expOpGEO           ExpOp = 8
	expOpAND           ExpOp = 16
	expOpOR            ExpOp = 17
	expOpNOT           ExpOp = 18
	expOpExclusive     ExpOp = 19
	expOpAdd           ExpOp = 20
	expOpSub           ExpOp = 21
	expOpMul           ExpOp = 22
	expOpDiv           ExpOp = 23
	expOpPow           ExpOp = 24
	expOpLog           ExpOp = 25
	expOpMod           ExpOp = 26
	expOpAbs           ExpOp = 27
	expOpFloor         ExpOp = 28
	expOpCeil          ExpOp = 29
	expOpToInt         ExpOp = 30
	expOpToFloat       ExpOp = 31
	expOpIntAnd        ExpOp = 32
	expOpIntOr         ExpOp = 33
	expOpIntXor        ExpOp = 34
	expOpIntNot        ExpOp = 35
	expOpIntLShift     ExpOp = 36
	expOpIntRShift     ExpOp = 37
	expOpIntARShift    ExpOp = 38
	expOpIntCount      ExpOp = 39
	expOpIntLscan      ExpOp = 40
	expOpIntRscan      ExpOp = 41
	expOpMin           ExpOp = 50
	expOpMax           ExpOp = 51
	expOpDIGEST_MODULO ExpOp = 64
	expOpDEVICE_SIZE   ExpOp = 65
	expOpLAST_UPDATE   ExpOp = 66
	expOpSINCE_UPDATE  ExpOp = 67
	expOpVOID_TIME     ExpOp = 68
	expOpTTL           ExpOp = 69
	expOpSET_NAME      ExpOp = 70
	expOpKEY_EXISTS    ExpOp = 71
	expOpIS_TOMBSTONE  ExpOp = 72
	expOpMEMORY_SIZE   ExpOp = 73
	expOpRECORD_SIZE   ExpOp = 74
	expOpKEY           ExpOp = 80
	expOpBIN           ExpOp = 81
	expOpBIN_TYPE      ExpOp = 82
	expOpBIN_EXISTS    ExpOp = 83
	expOpRemoveResult  ExpOp = 100
	expOpVarBuiltin    ExpOp = 122
	expOpCond          ExpOp = 123
	expOpVar           ExpOp = 124
	expOpLet           ExpOp = 125
	expOpQUOTED        ExpOp = 126
	expOpCALL          ExpOp = 127

	// value cells
	expOpVal       ExpOp = 128
	expOpValGeo    ExpOp = 129
	expOpNil       ExpOp = 130
	expOpValInt    ExpOp = 131
	expOpValUint   ExpOp = 132
	expOpValFloat  ExpOp = 133
	expOpValBool   ExpOp = 134
	expOpValStr    ExpOp = 135
	expOpValBytes  ExpOp = 136
	expOpValRawStr ExpOp = 137
	expOpValRType  ExpOp = 138

	// virtual wrappers, expanded into their parent's arguments when packed
	expOpListCRMod ExpOp = 139
	expOpListMod   ExpOp = 140
	expOpMapCRMod  ExpOp = 141
	expOpMapCR     ExpOp = 142
	expOpMapMod    ExpOp = 143
	expOpHLLMod    ExpOp = 144
	expOpDef       ExpOp = 145

	expOpEndOfVAArgs ExpOp = 150
	expOpTrue        ExpOp = 151
	expOpFalse       ExpOp = 152
	expOpBitFlags    ExpOp = 153
)

var expOpNames = map[ExpOp]string{
	expOpUnknown: "UNKNOWN", expOpEQ: "EQ", expOpNE: "NE", expOpGT: "GT", expOpGE: "GE",
	expOpLT: "LT", expOpLE: "LE", expOpREGEX: "CMP_REGEX", expOpGEO: "CMP_GEO",
	expOpAND: "AND", expOpOR: "OR", expOpNOT: "NOT", expOpExclusive: "EXCLUSIVE",
	expOpAdd: "ADD", expOpSub: "SUB", expOpMul: "MUL", expOpDiv: "DIV", expOpPow: "POW",
	expOpLog: "LOG", expOpMod: "MOD", expOpAbs: "ABS", expOpFloor: "FLOOR", expOpCeil: "CEIL",
	expOpToInt: "TO_INT", expOpToFloat: "TO_FLOAT", expOpIntAnd: "INT_AND", expOpIntOr: "INT_OR",
	expOpIntXor: "INT_XOR", expOpIntNot: "INT_NOT", expOpIntLShift: "INT_LSHIFT",
	expOpIntRShift: "INT_RSHIFT", expOpIntARShift: "INT_ARSHIFT", expOpIntCount: "INT_COUNT",
	expOpIntLscan: "INT_LSCAN", expOpIntRscan: "INT_RSCAN", expOpMin: "MIN", expOpMax: "MAX",
	expOpDIGEST_MODULO: "DIGEST_MODULO", expOpDEVICE_SIZE: "DEVICE_SIZE",
	expOpLAST_UPDATE: "LAST_UPDATE", expOpSINCE_UPDATE: "SINCE_UPDATE", expOpVOID_TIME: "VOID_TIME",
	expOpTTL: "TTL", expOpSET_NAME: "SET_NAME", expOpKEY_EXISTS: "KEY_EXISTS",
	expOpIS_TOMBSTONE: "IS_TOMBSTONE", expOpMEMORY_SIZE: "MEMORY_SIZE", expOpRECORD_SIZE: "RECORD_SIZE",
	expOpKEY: "KEY", expOpBIN: "BIN", expOpBIN_TYPE: "BIN_TYPE", expOpBIN_EXISTS: "BIN_EXISTS",
	expOpRemoveResult: "REMOVE_RESULT", expOpVarBuiltin: "VAR_BUILTIN", expOpCond: "COND",
	expOpVar: "VAR", expOpLet: "LET", expOpQUOTED: "QUOTED", expOpCALL: "CALL",
	expOpVal: "VAL", expOpValGeo: "VAL_GEO", expOpNil: "NIL", expOpValInt: "VAL_INT",
	expOpValUint: "VAL_UINT", expOpValFloat: "VAL_FLOAT", expOpValBool: "VAL_BOOL",
	expOpValStr: "VAL_STR", expOpValBytes: "VAL_BYTES", expOpValRawStr: "VAL_RAWSTR",
	expOpValRType: "VAL_RTYPE", expOpListCRMod: "CDT_LIST_CRMOD", expOpListMod: "CDT_LIST_MOD",
	expOpMapCRMod: "CDT_MAP_CRMOD", expOpMapCR: "CDT_MAP_CR", expOpMapMod: "CDT_MAP_MOD",
	expOpHLLMod: "CDT_HLL_MOD", expOpDef: "DEF", expOpEndOfVAArgs: "END_OF_VA_ARGS",
	expOpTrue: "TRUE", expOpFalse: "FALSE", expOpBitFlags: "BIT_FLAGS",
}

func (op ExpOp) String() string {
	if s, ok := expOpNames[op]; ok {
		return s
	}
	return fmt.Sprintf("ExpOp(%d)", uint(op))
}

// isValueCell returns true for the zero arity literal cells.
func (op ExpOp) isValueCell() bool {
	return (op >= expOpVal && op <= expOpValRType) || op == expOpTrue || op == expOpFalse
}

// isWrapper returns true for virtual cells which expand into the arguments
// of their parent.
func (op ExpOp) isWrapper() bool {
	return (op >= expOpListCRMod && op <= expOpHLLMod) || op == expOpBitFlags
}

const _MODIFY = 0x40

// ExpRegexFlags is used to change the Regex Mode in Expression Filters.
type ExpRegexFlags int

const (
	// ExpRegexFlagNONE uses regex defaults.
	ExpRegexFlagNONE ExpRegexFlags = 0

	// ExpRegexFlagEXTENDED uses POSIX Extended Regular Expression syntax when interpreting regex.
	ExpRegexFlagEXTENDED ExpRegexFlags = 1 << 0

	// ExpRegexFlagICASE does not differentiate cases.
	ExpRegexFlagICASE ExpRegexFlags = 1 << 1

	// ExpRegexFlagNOSUB does not report position of matches.
	ExpRegexFlagNOSUB ExpRegexFlags = 1 << 2

	// ExpRegexFlagNEWLINE does not Match-any-character operators don't match a newline.
	ExpRegexFlagNEWLINE ExpRegexFlags = 1 << 3
)

// Names of the fixed parameters carried by expression nodes.
const (
	paramVal    = "val"
	paramBin    = "bin"
	paramName   = "name"
	paramFlags  = "flags"
	paramRegex  = "regex"
	paramMod    = "mod"
	paramModule = "module"
	paramCDTOp  = "op"
	paramCtx    = "ctx"
	paramModify = "modify"
	paramPart   = "part"
	paramOrder  = "order"
	paramAttr   = "attr"
)

// ExpParam is a single named parameter of an expression node.
type ExpParam struct {
	Name  string
	Value interface{}
}

// ExpParams is the ordered set of fixed parameters of an expression node.
// The order is the order of insertion, so that compiled streams are
// deterministic.
type ExpParams []ExpParam

// Get returns the named parameter.
func (p ExpParams) Get(name string) (interface{}, bool) {
	for i := range p {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

func (p ExpParams) int64(name string) int64 {
	v, _ := p.Get(name)
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case IntegerValue:
		return int64(n)
	case LongValue:
		return int64(n)
	}
	return 0
}

func (p ExpParams) string(name string) string {
	v, _ := p.Get(name)
	s, _ := v.(string)
	return s
}

func params(kv ...interface{}) ExpParams {
	res := make(ExpParams, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		res = append(res, ExpParam{Name: kv[i].(string), Value: kv[i+1]})
	}
	return res
}

// Expression is a node of a server side expression tree. Expressions are
// used as filters on most commands, and can read or compute values in
// operations. Trees are immutable values: building one performs no I/O,
// and the same tree may be compiled any number of times.
type Expression struct {
	op       ExpOp
	rt       ExpType
	fixed    ExpParams
	children []*Expression

	// construction error, surfaced by Compile
	err Error
}

func newExp(op ExpOp, rt ExpType, fixed ExpParams, children ...*Expression) *Expression {
	exp := &Expression{
		op:       op,
		rt:       rt,
		fixed:    fixed,
		children: children,
	}

	for _, c := range children {
		if c == nil {
			exp.err = newErrorf(types.PARAMETER_ERROR, "nil argument passed to expression %s", op)
			break
		}
	}
	return exp
}

func newVariadicExp(op ExpOp, exps []*Expression) *Expression {
	children := make([]*Expression, 0, len(exps)+1)
	children = append(children, exps...)
	children = append(children, expEndOfVAArgs())
	exp := newExp(op, ExpTypeNone, nil, children...)
	if len(exps) == 0 && exp.err == nil {
		exp.err = newErrorf(types.PARAMETER_ERROR, "expression %s requires at least one argument", op)
	}
	return exp
}

func failedExp(op ExpOp, err Error) *Expression {
	return &Expression{op: op, rt: ExpTypeNone, err: err}
}

func expEndOfVAArgs() *Expression {
	return &Expression{op: expOpEndOfVAArgs, rt: ExpTypeNone}
}

// Op returns the opcode of the expression node.
func (fe *Expression) Op() ExpOp {
	return fe.op
}

// ResultType returns the declared result type of the expression node, or
// ExpTypeNone.
func (fe *Expression) ResultType() ExpType {
	return fe.rt
}

// String implements the fmt.Stringer interface.
func (fe *Expression) String() string {
	if fe == nil {
		return "<nil>"
	}
	s := fe.op.String()
	if v, ok := fe.fixed.Get(paramVal); ok {
		s += fmt.Sprintf("(%v)", v)
	} else if v, ok := fe.fixed.Get(paramBin); ok {
		s += fmt.Sprintf("(%v)", v)
	}
	if len(fe.children) == 0 {
		return s
	}
	s += "["
	for i, c := range fe.children {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s + "]"
}

//-------------------------------------------------------
// Bin and record access
//-------------------------------------------------------

func expBin(name string, rt ExpType) *Expression {
	if name == "" {
		return failedExp(expOpBIN, newError(types.PARAMETER_ERROR, "bin name cannot be empty"))
	}
	if len(name) > 15 {
		return failedExp(expOpBIN, newErrorf(types.BIN_NAME_TOO_LONG, "bin name `%s` is longer than 15 characters", name))
	}
	return newExp(expOpBIN, rt, params(paramBin, name))
}

// ExpKey creates a record key expression of specified type.
func ExpKey(expType ExpType) *Expression {
	return newExp(expOpKEY, expType, nil)
}

// ExpKeyExists creates a function that returns if the primary key is stored in the record meta
// data as a boolean expression. This would occur when `send_key` is true on record write.
func ExpKeyExists() *Expression {
	return newExp(expOpKEY_EXISTS, ExpTypeBOOL, nil)
}

// ExpIntBin creates a 64 bit int bin expression.
func ExpIntBin(name string) *Expression {
	return expBin(name, ExpTypeINT)
}

// ExpStringBin creates a string bin expression.
func ExpStringBin(name string) *Expression {
	return expBin(name, ExpTypeSTRING)
}

// ExpBlobBin creates a blob bin expression.
func ExpBlobBin(name string) *Expression {
	return expBin(name, ExpTypeBLOB)
}

// ExpFloatBin creates a 64 bit float bin expression.
func ExpFloatBin(name string) *Expression {
	return expBin(name, ExpTypeFLOAT)
}

// ExpBoolBin creates a boolean bin expression.
func ExpBoolBin(name string) *Expression {
	return expBin(name, ExpTypeBOOL)
}

// ExpGeoBin creates a geo bin expression.
func ExpGeoBin(name string) *Expression {
	return expBin(name, ExpTypeGEO)
}

// ExpListBin creates a list bin expression.
func ExpListBin(name string) *Expression {
	return expBin(name, ExpTypeLIST)
}

// ExpMapBin creates a map bin expression.
func ExpMapBin(name string) *Expression {
	return expBin(name, ExpTypeMAP)
}

// ExpHLLBin creates a HyperLogLog bin expression.
func ExpHLLBin(name string) *Expression {
	return expBin(name, ExpTypeHLL)
}

// ExpBinExists creates a function that returns true if bin exists.
func ExpBinExists(name string) *Expression {
	if name == "" {
		return failedExp(expOpBIN_EXISTS, newError(types.PARAMETER_ERROR, "bin name cannot be empty"))
	}
	return newExp(expOpBIN_EXISTS, ExpTypeBOOL, params(paramBin, name))
}

// ExpBinType creates a function that returns bin's integer particle type.
func ExpBinType(name string) *Expression {
	if name == "" {
		return failedExp(expOpBIN_TYPE, newError(types.PARAMETER_ERROR, "bin name cannot be empty"))
	}
	return newExp(expOpBIN_TYPE, ExpTypeINT, params(paramBin, name))
}

//-------------------------------------------------------
// Record metadata
//-------------------------------------------------------

// ExpSetName creates a function that returns record set name string.
func ExpSetName() *Expression {
	return newExp(expOpSET_NAME, ExpTypeSTRING, nil)
}

// ExpDeviceSize creates a function that returns record size on disk.
// If server storage-engine is memory, then zero is returned.
func ExpDeviceSize() *Expression {
	return newExp(expOpDEVICE_SIZE, ExpTypeINT, nil)
}

// ExpMemorySize creates expression that returns record size in memory. If server storage-engine is
// not memory nor data-in-memory, then zero is returned.
func ExpMemorySize() *Expression {
	return newExp(expOpMEMORY_SIZE, ExpTypeINT, nil)
}

// ExpRecordSize creates expression that returns the record size.
func ExpRecordSize() *Expression {
	return newExp(expOpRECORD_SIZE, ExpTypeINT, nil)
}

// ExpLastUpdate creates a function that returns record last update time expressed as 64 bit integer
// nanoseconds since 1970-01-01 epoch.
func ExpLastUpdate() *Expression {
	return newExp(expOpLAST_UPDATE, ExpTypeINT, nil)
}

// ExpSinceUpdate creates a expression that returns milliseconds since the record was last updated.
func ExpSinceUpdate() *Expression {
	return newExp(expOpSINCE_UPDATE, ExpTypeINT, nil)
}

// ExpVoidTime creates a function that returns record expiration time expressed as 64 bit integer
// nanoseconds since 1970-01-01 epoch.
func ExpVoidTime() *Expression {
	return newExp(expOpVOID_TIME, ExpTypeINT, nil)
}

// ExpTTL creates a function that returns record expiration time (time to live) in integer seconds.
func ExpTTL() *Expression {
	return newExp(expOpTTL, ExpTypeINT, nil)
}

// ExpIsTombstone creates a expression that returns if record has been deleted and is still in
// tombstone state.
func ExpIsTombstone() *Expression {
	return newExp(expOpIS_TOMBSTONE, ExpTypeBOOL, nil)
}

// ExpDigestModulo creates a function that returns record digest modulo as integer.
func ExpDigestModulo(modulo int64) *Expression {
	if modulo == 0 {
		return failedExp(expOpDIGEST_MODULO, newError(types.PARAMETER_ERROR, "digest modulo cannot be zero"))
	}
	return newExp(expOpDIGEST_MODULO, ExpTypeINT, params(paramMod, modulo))
}

//-------------------------------------------------------
// Literals
//-------------------------------------------------------

// ExpIntVal creates a 64 bit integer value
func ExpIntVal(val int64) *Expression {
	return newExp(expOpValInt, ExpTypeNone, params(paramVal, LongValue(val)))
}

// ExpUintVal creates a 64 bit unsigned integer value
func ExpUintVal(val uint64) *Expression {
	return newExp(expOpValUint, ExpTypeNone, params(paramVal, val))
}

// ExpFloatVal creates a 64 bit float value
func ExpFloatVal(val float64) *Expression {
	return newExp(expOpValFloat, ExpTypeNone, params(paramVal, FloatValue(val)))
}

// ExpStringVal creates a String bin value
func ExpStringVal(val string) *Expression {
	return newExp(expOpValStr, ExpTypeNone, params(paramVal, StringValue(val)))
}

// ExpBoolVal creates a Boolean value
func ExpBoolVal(val bool) *Expression {
	return newExp(expOpValBool, ExpTypeNone, params(paramVal, BoolValue(val)))
}

// ExpBlobVal creates a Blob bin value
func ExpBlobVal(val []byte) *Expression {
	return newExp(expOpValBytes, ExpTypeNone, params(paramVal, BytesValue(val)))
}

// ExpGeoVal creates a geospatial json string value.
func ExpGeoVal(val string) *Expression {
	return newExp(expOpValGeo, ExpTypeNone, params(paramVal, GeoJSONValue(val)))
}

// ExpListVal creates a List bin Value
func ExpListVal(val ...Value) *Expression {
	return newExp(expOpVal, ExpTypeNone, params(paramVal, ValueArray(val)))
}

// ExpValueArrayVal creates a List bin Value
func ExpValueArrayVal(val ValueArray) *Expression {
	return newExp(expOpVal, ExpTypeNone, params(paramVal, val))
}

// ExpMapVal creates a Map bin Value
func ExpMapVal(val MapValue) *Expression {
	return newExp(expOpVal, ExpTypeNone, params(paramVal, val))
}

// ExpOrderedMapVal creates a key ordered Map bin Value
func ExpOrderedMapVal(val OrderedMapValue) *Expression {
	return newExp(expOpVal, ExpTypeNone, params(paramVal, val))
}

// ExpNilValue creates a a Nil Value
func ExpNilValue() *Expression {
	return newExp(expOpNil, ExpTypeNone, nil)
}

// ExpInfinityValue creates an Infinity Value. It is only valid as the
// upper bound of a range argument.
func ExpInfinityValue() *Expression {
	return newExp(expOpVal, ExpTypeNone, params(paramVal, InfinityValue{}))
}

// ExpWildCardValue creates a WildCard Value. It is only valid inside
// range or list arguments.
func ExpWildCardValue() *Expression {
	return newExp(expOpVal, ExpTypeNone, params(paramVal, WildCardValue{}))
}

// ExpValue wraps an arbitrary value as an expression literal.
func ExpValue(val interface{}) *Expression {
	if exp, ok := val.(*Expression); ok {
		return exp
	}

	v, err := newValue(val)
	if err != nil {
		return failedExp(expOpVal, err)
	}

	switch vt := v.(type) {
	case NullValue:
		return ExpNilValue()
	case IntegerValue:
		return ExpIntVal(int64(vt))
	case LongValue:
		return ExpIntVal(int64(vt))
	case FloatValue:
		return ExpFloatVal(float64(vt))
	case StringValue:
		return ExpStringVal(string(vt))
	case BoolValue:
		return ExpBoolVal(bool(vt))
	case BytesValue:
		return ExpBlobVal(vt)
	case GeoJSONValue:
		return ExpGeoVal(string(vt))
	}
	return newExp(expOpVal, ExpTypeNone, params(paramVal, v))
}

func expRawStr(s string) *Expression {
	return newExp(expOpValRawStr, ExpTypeNone, params(paramVal, s))
}

func expRType(rt int) *Expression {
	return newExp(expOpValRType, ExpTypeNone, params(paramVal, rt))
}

func expIntArg(v int) *Expression {
	return newExp(expOpValInt, ExpTypeNone, params(paramVal, LongValue(v)))
}

func expBoolToken(v bool) *Expression {
	if v {
		return newExp(expOpTrue, ExpTypeNone, nil)
	}
	return newExp(expOpFalse, ExpTypeNone, nil)
}

//-------------------------------------------------------
// Comparison and logical operators
//-------------------------------------------------------

// ExpEq creates a equal (==) expression.
func ExpEq(left *Expression, right *Expression) *Expression {
	return newExp(expOpEQ, ExpTypeNone, nil, left, right)
}

// ExpNotEq creates a not equal (!=) expression
func ExpNotEq(left *Expression, right *Expression) *Expression {
	return newExp(expOpNE, ExpTypeNone, nil, left, right)
}

// ExpGreater creates a greater than (>) operation.
func ExpGreater(left *Expression, right *Expression) *Expression {
	return newExp(expOpGT, ExpTypeNone, nil, left, right)
}

// ExpGreaterEq creates a greater than or equal (>=) operation.
func ExpGreaterEq(left *Expression, right *Expression) *Expression {
	return newExp(expOpGE, ExpTypeNone, nil, left, right)
}

// ExpLess creates a less than (<) operation.
func ExpLess(left *Expression, right *Expression) *Expression {
	return newExp(expOpLT, ExpTypeNone, nil, left, right)
}

// ExpLessEq creates a less than or equals (<=) operation.
func ExpLessEq(left *Expression, right *Expression) *Expression {
	return newExp(expOpLE, ExpTypeNone, nil, left, right)
}

// ExpRegexCompare creates a function like regular expression string operation.
func ExpRegexCompare(regex string, flags ExpRegexFlags, bin *Expression) *Expression {
	return newExp(expOpREGEX, ExpTypeNone, params(paramRegex, regex, paramFlags, int64(flags)), bin)
}

// ExpGeoCompare creates a compare geospatial operation.
func ExpGeoCompare(left *Expression, right *Expression) *Expression {
	return newExp(expOpGEO, ExpTypeNone, nil, left, right)
}

// ExpNot creates a "not" operator expression.
func ExpNot(exp *Expression) *Expression {
	return newExp(expOpNOT, ExpTypeNone, nil, exp)
}

// ExpAnd creates a "and" (&&) operator that applies to a variable number of expressions.
func ExpAnd(exps ...*Expression) *Expression {
	return newVariadicExp(expOpAND, exps)
}

// ExpOr creates a "or" (||) operator that applies to a variable number of expressions.
func ExpOr(exps ...*Expression) *Expression {
	return newVariadicExp(expOpOR, exps)
}

// ExpExclusive creates an expression that returns true if only one of the expressions are true.
// Requires server version 5.6.0+.
func ExpExclusive(exps ...*Expression) *Expression {
	return newVariadicExp(expOpExclusive, exps)
}

//-------------------------------------------------------
// Arithmetic
//-------------------------------------------------------

// ExpNumAdd creates "add" (+) operator that applies to a variable number of expressions.
// Return sum of all arguments. All arguments must resolve to the same type (integer or float).
func ExpNumAdd(exps ...*Expression) *Expression {
	return newVariadicExp(expOpAdd, exps)
}

// ExpNumSub creates "subtract" (-) operator that applies to a variable number of expressions.
// If only one argument is provided, return the negation of that argument.
func ExpNumSub(exps ...*Expression) *Expression {
	return newVariadicExp(expOpSub, exps)
}

// ExpNumMul creates "multiply" (*) operator that applies to a variable number of expressions.
func ExpNumMul(exps ...*Expression) *Expression {
	return newVariadicExp(expOpMul, exps)
}

// ExpNumDiv creates "divide" (/) operator that applies to a variable number of expressions.
// If there is only one argument, returns the reciprocal for that argument.
func ExpNumDiv(exps ...*Expression) *Expression {
	return newVariadicExp(expOpDiv, exps)
}

// ExpNumPow creates "power" operator that raises a "base" to the "exponent" power.
// All arguments must resolve to floats.
func ExpNumPow(base *Expression, exponent *Expression) *Expression {
	return newExp(expOpPow, ExpTypeNone, nil, base, exponent)
}

// ExpNumLog creates "log" operator for logarithm of "num" with base "base".
// All arguments must resolve to floats.
func ExpNumLog(num *Expression, base *Expression) *Expression {
	return newExp(expOpLog, ExpTypeNone, nil, num, base)
}

// ExpNumMod creates "modulo" (%) operator that determines the remainder of "numerator"
// divided by "denominator". All arguments must resolve to integers.
func ExpNumMod(numerator *Expression, denominator *Expression) *Expression {
	return newExp(expOpMod, ExpTypeNone, nil, numerator, denominator)
}

// ExpNumAbs creates operator that returns absolute value of a number.
func ExpNumAbs(value *Expression) *Expression {
	return newExp(expOpAbs, ExpTypeNone, nil, value)
}

// ExpNumFloor creates expression that rounds a floating point number down to the closest integer value.
func ExpNumFloor(num *Expression) *Expression {
	return newExp(expOpFloor, ExpTypeNone, nil, num)
}

// ExpNumCeil creates expression that rounds a floating point number up to the closest integer value.
func ExpNumCeil(num *Expression) *Expression {
	return newExp(expOpCeil, ExpTypeNone, nil, num)
}

// ExpToInt creates expression that converts a float to an integer.
func ExpToInt(num *Expression) *Expression {
	return newExp(expOpToInt, ExpTypeNone, nil, num)
}

// ExpToFloat creates expression that converts an integer to a float.
func ExpToFloat(num *Expression) *Expression {
	return newExp(expOpToFloat, ExpTypeNone, nil, num)
}

// ExpMin creates expression that returns the minimum value in a variable number of expressions.
func ExpMin(exps ...*Expression) *Expression {
	return newVariadicExp(expOpMin, exps)
}

// ExpMax creates expression that returns the maximum value in a variable number of expressions.
func ExpMax(exps ...*Expression) *Expression {
	return newVariadicExp(expOpMax, exps)
}

//-------------------------------------------------------
// Integer bitwise operators
//-------------------------------------------------------

// ExpIntAnd creates integer "and" (&) operator that is applied to two or more integers.
func ExpIntAnd(exps ...*Expression) *Expression {
	return newVariadicExp(expOpIntAnd, exps)
}

// ExpIntOr creates integer "or" (|) operator that is applied to two or more integers.
func ExpIntOr(exps ...*Expression) *Expression {
	return newVariadicExp(expOpIntOr, exps)
}

// ExpIntXor creates integer "xor" (^) operator that is applied to two or more integers.
func ExpIntXor(exps ...*Expression) *Expression {
	return newVariadicExp(expOpIntXor, exps)
}

// ExpIntNot creates integer "not" (~) operator.
func ExpIntNot(exp *Expression) *Expression {
	return newExp(expOpIntNot, ExpTypeNone, nil, exp)
}

// ExpIntLShift creates integer "left shift" (<<) operator.
func ExpIntLShift(value *Expression, shift *Expression) *Expression {
	return newExp(expOpIntLShift, ExpTypeNone, nil, value, shift)
}

// ExpIntRShift creates integer "logical right shift" (>>>) operator.
func ExpIntRShift(value *Expression, shift *Expression) *Expression {
	return newExp(expOpIntRShift, ExpTypeNone, nil, value, shift)
}

// ExpIntARShift creates integer "arithmetic right shift" (>>) operator.
func ExpIntARShift(value *Expression, shift *Expression) *Expression {
	return newExp(expOpIntARShift, ExpTypeNone, nil, value, shift)
}

// ExpIntCount creates expression that returns count of integer bits that are set to 1.
func ExpIntCount(exp *Expression) *Expression {
	return newExp(expOpIntCount, ExpTypeNone, nil, exp)
}

// ExpIntLScan creates expression that scans integer bits from left (most significant bit) to
// right (least significant bit), looking for a search bit value. When the
// search value is found, the index of that bit (where the most significant bit is
// index 0) is returned. If "search" is true, the scan will search for the bit
// value 1. If "search" is false it will search for bit value 0.
func ExpIntLScan(value *Expression, search *Expression) *Expression {
	return newExp(expOpIntLscan, ExpTypeNone, nil, value, search)
}

// ExpIntRScan creates expression that scans integer bits from right (least significant bit) to
// left (most significant bit), looking for a search bit value.
func ExpIntRScan(value *Expression, search *Expression) *Expression {
	return newExp(expOpIntRscan, ExpTypeNone, nil, value, search)
}

//-------------------------------------------------------
// Control flow and variables
//-------------------------------------------------------

// ExpCond will conditionally select an expression from a variable number of expression pairs
// followed by default expression action.
// Requires server version 5.6.0+.
//
//	// Args Format: bool exp1, action exp1, bool exp2, action exp2, ..., action-default
//	// Apply operator based on type.
//	ExpCond(
//	    ExpEq(ExpIntBin("type"), ExpIntVal(0)), ExpNumAdd(ExpIntBin("val1"), ExpIntBin("val2")),
//	    ExpEq(ExpIntBin("type"), ExpIntVal(1)), ExpNumSub(ExpIntBin("val1"), ExpIntBin("val2")),
//	    ExpIntVal(-1))
func ExpCond(exps ...*Expression) *Expression {
	exp := newVariadicExp(expOpCond, exps)
	if exp.err == nil && (len(exps) < 3 || len(exps)%2 == 0) {
		exp.err = newError(types.PARAMETER_ERROR, "cond requires condition/action pairs followed by a default action")
	}
	return exp
}

// ExpLet defines variables and expressions in scope.
// Requires server version 5.6.0+.
//
//	// 5 < a < 10
//	ExpLet(ExpDef("x", ExpIntBin("a")),
//	       ExpAnd(
//	         ExpLess(ExpIntVal(5), ExpVar("x")),
//	         ExpLess(ExpVar("x"), ExpIntVal(10))));
func ExpLet(exps ...*Expression) *Expression {
	exp := newVariadicExp(expOpLet, exps)
	if exp.err != nil {
		return exp
	}

	for i, e := range exps[:len(exps)-1] {
		if e.op != expOpDef {
			exp.err = newErrorf(types.PARAMETER_ERROR, "let argument %d must be a variable definition", i)
			return exp
		}
	}
	if exps[len(exps)-1].op == expOpDef {
		exp.err = newError(types.PARAMETER_ERROR, "let requires a scope expression as its last argument")
	}
	return exp
}

// ExpDef assigns variable to an expression that can be accessed later.
// Requires server version 5.6.0+.
func ExpDef(name string, value *Expression) *Expression {
	if name == "" {
		return failedExp(expOpDef, newError(types.PARAMETER_ERROR, "variable name cannot be empty"))
	}
	return newExp(expOpDef, ExpTypeNone, params(paramName, name), value)
}

// ExpVar retrieves expression value from a variable.
// Requires server version 5.6.0+.
func ExpVar(name string) *Expression {
	if name == "" {
		return failedExp(expOpVar, newError(types.PARAMETER_ERROR, "variable name cannot be empty"))
	}
	return newExp(expOpVar, ExpTypeNone, params(paramName, name))
}

// ExpUnknown creates unknown value. Used to intentionally fail an expression.
// The failure can be ignored with ExpWriteFlagEvalNoFail or ExpReadFlagEvalNoFail.
// Requires server version 5.6.0+.
func ExpUnknown() *Expression {
	return newExp(expOpUnknown, ExpTypeNone, nil)
}
