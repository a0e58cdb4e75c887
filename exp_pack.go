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

	ParticleType "github.com/aerospike/aerospike-expressions-go/internal/particle_type"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// Pack converts the compiled stream to the wire format expected by the server.
// Virtual wrappers are expanded into the arguments of their parent and the
// variadic terminators are dropped, since wire arrays carry their own length.
func (s ExpressionStream) Pack() ([]byte, Error) {
	p := newPacker()
	if err := s.packTo(p); err != nil {
		p.Bytes()
		return nil, err
	}
	return p.Bytes(), nil
}

func (s ExpressionStream) packTo(p *packer) Error {
	if err := s.validate(); err != nil {
		return err
	}

	ep := expPacker{s: s, p: p}
	return ep.packCell(0)
}

// Pack compiles and packs the expression.
func (fe *Expression) Pack() ([]byte, Error) {
	s, err := fe.Compile()
	if err != nil {
		return nil, err
	}
	return s.Pack()
}

func (fe *Expression) packTo(p *packer) Error {
	s, err := fe.Compile()
	if err != nil {
		return err
	}
	return s.packTo(p)
}

// Size returns the size of the packed expression in bytes.
func (fe *Expression) Size() (int, Error) {
	b, err := fe.Pack()
	if err != nil {
		return 0, err
	}
	return len(b), nil
}

// Base64 returns the packed expression as a base64 encoded string.
func (fe *Expression) Base64() (string, Error) {
	b, err := fe.Pack()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

type expPacker struct {
	s ExpressionStream
	p *packer
}

// elemCount returns the number of wire elements the cell at i produces
// inside its parent's argument list.
func (ep *expPacker) elemCount(i int) int {
	switch ep.s[i].Op {
	case expOpEndOfVAArgs:
		return 0
	case expOpDef, expOpListCRMod, expOpMapCRMod:
		return 2
	}
	return 1
}

func (ep *expPacker) argsCount(children []int) int {
	n := 0
	for _, c := range children {
		n += ep.elemCount(c)
	}
	return n
}

func (ep *expPacker) packArgs(children []int) Error {
	for _, c := range children {
		if err := ep.packCell(c); err != nil {
			return err
		}
	}
	return nil
}

func (ep *expPacker) packHeader(op ExpOp, size int) {
	ep.p.PackArrayBegin(size)
	ep.p.PackAInt(int(op))
}

func (ep *expPacker) packCell(i int) Error {
	c := &ep.s[i]
	children := ep.s.children(i)
	p := ep.p

	if c.Op.isValueCell() {
		return ep.packValueCell(c)
	}

	switch c.Op {
	case expOpEndOfVAArgs:
		return nil

	case expOpListCRMod:
		p.PackAInt64(c.Fixed.int64(paramOrder))
		p.PackAInt64(c.Fixed.int64(paramFlags))
		return nil

	case expOpMapCRMod:
		p.PackAInt64(c.Fixed.int64(paramAttr))
		p.PackAInt64(c.Fixed.int64(paramFlags))
		return nil

	case expOpMapCR:
		p.PackAInt64(c.Fixed.int64(paramAttr))
		return nil

	case expOpListMod, expOpMapMod, expOpHLLMod, expOpBitFlags:
		p.PackAInt64(c.Fixed.int64(paramFlags))
		return nil

	case expOpDef:
		p.PackRawString(c.Fixed.string(paramName))
		return ep.packArgs(children)

	case expOpBIN:
		ep.packHeader(c.Op, 3)
		p.PackAInt(int(c.ResultType))
		p.PackRawString(c.Fixed.string(paramBin))
		return nil

	case expOpBIN_TYPE:
		ep.packHeader(c.Op, 2)
		p.PackRawString(c.Fixed.string(paramBin))
		return nil

	case expOpBIN_EXISTS:
		// the server has no such opcode; it is expressed as BIN_TYPE != NULL
		ep.packHeader(expOpNE, 3)
		ep.packHeader(expOpBIN_TYPE, 2)
		p.PackRawString(c.Fixed.string(paramBin))
		p.PackAInt(ParticleType.NULL)
		return nil

	case expOpKEY:
		ep.packHeader(c.Op, 2)
		p.PackAInt(int(c.ResultType))
		return nil

	case expOpDIGEST_MODULO:
		ep.packHeader(c.Op, 2)
		p.PackAInt64(c.Fixed.int64(paramMod))
		return nil

	case expOpREGEX:
		ep.packHeader(c.Op, 4)
		p.PackAInt64(c.Fixed.int64(paramFlags))
		p.PackRawString(c.Fixed.string(paramRegex))
		return ep.packArgs(children)

	case expOpVar:
		ep.packHeader(c.Op, 2)
		p.PackRawString(c.Fixed.string(paramName))
		return nil

	case expOpVarBuiltin:
		ep.packHeader(c.Op, 3)
		p.PackAInt(int(c.ResultType))
		p.PackAInt64(c.Fixed.int64(paramPart))
		return nil

	case expOpCALL:
		return ep.packCall(c, children)
	}

	ep.packHeader(c.Op, 1+ep.argsCount(children))
	return ep.packArgs(children)
}

func (ep *expPacker) packValueCell(c *ExpCell) Error {
	p := ep.p
	switch c.Op {
	case expOpNil:
		p.PackNil()
		return nil
	case expOpTrue:
		p.PackBool(true)
		return nil
	case expOpFalse:
		p.PackBool(false)
		return nil
	}

	v, _ := c.Fixed.Get(paramVal)
	switch c.Op {
	case expOpValUint:
		u, _ := v.(uint64)
		p.PackUInt64(u)
		return nil
	case expOpValRawStr:
		s, _ := v.(string)
		p.PackRawString(s)
		return nil
	case expOpValRType:
		p.PackAInt64(c.Fixed.int64(paramVal))
		return nil
	}

	val, ok := v.(Value)
	if !ok {
		return newErrorf(types.PARAMETER_ERROR, "value cell %s carries unsupported value %v", c.Op, v)
	}

	switch val.(type) {
	case ListValue, ValueArray:
		// lists would otherwise be taken for expressions
		p.PackArrayBegin(2)
		p.PackAInt(int(expOpQUOTED))
	}
	return val.pack(p)
}

func (ep *expPacker) packCall(c *ExpCell, children []int) Error {
	p := ep.p
	if len(children) == 0 {
		return newError(types.PARAMETER_ERROR, "module call requires a bin argument")
	}

	module := c.Fixed.int64(paramModule)
	if modify, _ := c.Fixed.Get(paramModify); modify == true {
		module |= _MODIFY
	}

	args, bin := children[:len(children)-1], children[len(children)-1]

	ep.packHeader(c.Op, 5)
	p.PackAInt(int(c.ResultType))
	p.PackAInt64(module)

	if v, ok := c.Fixed.Get(paramCtx); ok {
		ctx, _ := v.([]*CDTContext)
		if len(ctx) == 0 {
			return cloneError(ErrInvalidContextPath)
		}

		p.PackArrayBegin(3)
		p.PackAInt(0xff)
		if err := packCDTContext(p, ctx); err != nil {
			return err
		}
	}

	p.PackArrayBegin(1 + ep.argsCount(args))
	p.PackAInt64(c.Fixed.int64(paramCDTOp))
	if err := ep.packArgs(args); err != nil {
		return err
	}
	return ep.packCell(bin)
}
