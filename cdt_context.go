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
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aerospike/aerospike-expressions-go/types"
)

const (
	ctxTypeExp       = 0x04
	ctxTypeListIndex = 0x10
	ctxTypeListRank  = 0x11
	ctxTypeListValue = 0x13
	ctxTypeMapIndex  = 0x20
	ctxTypeMapRank   = 0x21
	ctxTypeMapKey    = 0x22
	ctxTypeMapValue  = 0x23
)

// CDTContext defines Nested CDT context. Identifies the location of nested list/map to apply the operation.
// for the current level.
// An array of CTX identifies location of the list/map on multiple
// levels on nesting.
type CDTContext struct {
	Id    int
	Value Value

	exp *Expression
	// packed expression of a context decoded from its base64 form
	expBytes []byte
}

// CDTContextPath is an ordered chain of context steps, from the bin to the
// nested element.
type CDTContextPath []*CDTContext

// NewCDTContextPath validates and returns a context path. A path must have
// at least one step.
func NewCDTContextPath(steps ...*CDTContext) (CDTContextPath, Error) {
	if err := validateCtx(steps); err != nil {
		return nil, err
	}
	return CDTContextPath(steps), nil
}

func validateCtx(steps []*CDTContext) Error {
	if len(steps) == 0 {
		return cloneError(ErrInvalidContextPath)
	}
	for i, s := range steps {
		if s == nil {
			return newErrorf(types.PARAMETER_ERROR, "CDT context step %d is nil", i)
		}
		if s.exp != nil && s.exp.err != nil {
			return s.exp.err
		}
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (ctx *CDTContext) String() string {
	var kind string
	switch ctx.Id &^ 0xc0 {
	case ctxTypeExp:
		if ctx.exp != nil || ctx.expBytes != nil {
			return "AllChildrenWithFilter"
		}
		return "AllChildren"
	case ctxTypeListIndex:
		kind = "ListIndex"
	case ctxTypeListRank:
		kind = "ListRank"
	case ctxTypeListValue:
		kind = "ListValue"
	case ctxTypeMapIndex:
		kind = "MapIndex"
	case ctxTypeMapRank:
		kind = "MapRank"
	case ctxTypeMapKey:
		kind = "MapKey"
	case ctxTypeMapValue:
		kind = "MapValue"
	default:
		kind = fmt.Sprintf("Ctx(%#x)", ctx.Id)
	}
	return fmt.Sprintf("%s(%v)", kind, ctx.Value)
}

// String implements the fmt.Stringer interface.
func (path CDTContextPath) String() string {
	parts := make([]string, len(path))
	for i := range path {
		parts[i] = path[i].String()
	}
	return strings.Join(parts, ".")
}

// isListStep returns true if the step addresses a list element.
func (ctx *CDTContext) isListStep() bool {
	return ctx.Id&ctxTypeListIndex != 0
}

func (ctx *CDTContext) pack(p *packer) Error {
	p.PackAInt(ctx.Id)
	switch {
	case ctx.exp != nil:
		return ctx.exp.packTo(p)
	case ctx.expBytes != nil:
		p.PackByteArray(ctx.expBytes)
		return nil
	case ctx.Value == nil:
		p.PackNil()
		return nil
	}
	return ctx.Value.pack(p)
}

func packCDTContext(p *packer, ctx []*CDTContext) Error {
	if err := validateCtx(ctx); err != nil {
		return err
	}

	p.PackArrayBegin(len(ctx) * 2)
	for _, c := range ctx {
		if err := c.pack(p); err != nil {
			return err
		}
	}
	return nil
}

// CDTContextToBase64 converts a []*CDTContext into a base64 encoded string.
func CDTContextToBase64(ctxl []*CDTContext) (string, Error) {
	p := newPacker()
	if err := packCDTContext(p, ctxl); err != nil {
		p.Bytes()
		return "", err
	}
	return base64.StdEncoding.EncodeToString(p.Bytes()), nil
}

// Base64ToCDTContext converts a b64 encoded string back into a []*CDTContext.
func Base64ToCDTContext(b64 string) ([]*CDTContext, Error) {
	msg, e := base64.StdEncoding.DecodeString(b64)
	if e != nil {
		return nil, newErrorAndWrap(e, types.PARSE_ERROR)
	}

	upckr := newUnpacker(msg)
	n, err := upckr.arrayLen()
	if err != nil {
		return nil, err
	}
	if n == 0 || n%2 != 0 {
		return nil, errUnpack("invalid CDT context list length")
	}

	res := make([]*CDTContext, 0, n/2)
	for i := 0; i < n/2; i++ {
		id, err := upckr.unpackObject()
		if err != nil {
			return nil, err
		}
		idi, ok := id.(int)
		if !ok {
			return nil, errUnpack("invalid CDT context id")
		}

		if idi == ctxTypeExp {
			raw, err := upckr.skip()
			if err != nil {
				return nil, err
			}
			if len(raw) == 1 && raw[0] == 0xc3 {
				res = append(res, CtxAllChildren())
			} else {
				res = append(res, &CDTContext{Id: idi, expBytes: raw})
			}
			continue
		}

		obj, err := upckr.unpackObject()
		if err != nil {
			return nil, err
		}
		v, err := newValue(obj)
		if err != nil {
			return nil, err
		}
		res = append(res, &CDTContext{Id: idi, Value: v})
	}
	return res, nil
}

// CtxListIndex defines Lookup list by index offset.
// If the index is negative, the resolved index starts backwards from end of list.
// If an index is out of bounds, a parameter error will be returned.
// Examples:
// 0: First item.
// 4: Fifth item.
// -1: Last item.
// -3: Third to last item.
func CtxListIndex(index int) *CDTContext {
	return &CDTContext{Id: ctxTypeListIndex, Value: IntegerValue(index)}
}

// CtxListIndexCreate list with given type at index offset, given an order and pad.
func CtxListIndexCreate(index int, order ListOrderType, pad bool) *CDTContext {
	return &CDTContext{Id: ctxTypeListIndex | listOrderFlag(order, pad), Value: IntegerValue(index)}
}

// CtxListRank defines Lookup list by rank.
// 0 = smallest value
// N = Nth smallest value
// -1 = largest value
func CtxListRank(rank int) *CDTContext {
	return &CDTContext{Id: ctxTypeListRank, Value: IntegerValue(rank)}
}

// CtxListValue defines Lookup list by value.
func CtxListValue(key Value) *CDTContext {
	return &CDTContext{Id: ctxTypeListValue, Value: key}
}

// CtxMapIndex defines Lookup map by index offset.
// If the index is negative, the resolved index starts backwards from end of list.
func CtxMapIndex(index int) *CDTContext {
	return &CDTContext{Id: ctxTypeMapIndex, Value: IntegerValue(index)}
}

// CtxMapRank defines Lookup map by rank.
// 0 = smallest value
// N = Nth smallest value
// -1 = largest value
func CtxMapRank(rank int) *CDTContext {
	return &CDTContext{Id: ctxTypeMapRank, Value: IntegerValue(rank)}
}

// CtxMapKey defines Lookup map by key.
func CtxMapKey(key Value) *CDTContext {
	return &CDTContext{Id: ctxTypeMapKey, Value: key}
}

// CtxMapKeyCreate creates map with given type at map key.
func CtxMapKeyCreate(key Value, order mapOrderType) *CDTContext {
	return &CDTContext{Id: ctxTypeMapKey | order.flag(), Value: key}
}

// CtxMapValue defines Lookup map by value.
func CtxMapValue(value Value) *CDTContext {
	return &CDTContext{Id: ctxTypeMapValue, Value: value}
}

// CtxAllChildren selects every child of the current list or map.
// Used in path expressions.
func CtxAllChildren() *CDTContext {
	return &CDTContext{Id: ctxTypeExp, Value: BoolValue(true)}
}

// CtxAllChildrenWithFilter selects the children of the current list or map
// for which the filter expression is true. The filter refers to the child
// through loop variables.
func CtxAllChildrenWithFilter(exp *Expression) *CDTContext {
	if exp == nil {
		exp = failedExp(expOpUnknown, newError(types.PARAMETER_ERROR, "filter expression cannot be nil"))
	}
	return &CDTContext{Id: ctxTypeExp, exp: exp}
}
