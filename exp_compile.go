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
	"reflect"
	"strings"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// ExpCell is one entry of a compiled expression: the opcode, the declared
// result type, the fixed parameters and the number of child cells that
// follow it in pre-order.
type ExpCell struct {
	Op         ExpOp
	ResultType ExpType
	Fixed      ExpParams
	Arity      int
}

// String implements the fmt.Stringer interface.
func (c ExpCell) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(c.Op.String())
	sb.WriteString(", ")
	sb.WriteString(c.ResultType.String())
	sb.WriteString(", {")
	for i, p := range c.Fixed {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %v", p.Name, p.Value)
	}
	fmt.Fprintf(&sb, "}, %d)", c.Arity)
	return sb.String()
}

// ExpressionStream is the linear pre-order form of an expression tree.
type ExpressionStream []ExpCell

// Compile linearizes the expression tree. Errors recorded while the tree was
// built are returned here, before any I/O takes place.
// Compiling the same tree always yields an equal stream.
func (fe *Expression) Compile() (ExpressionStream, Error) {
	if fe == nil {
		return nil, newError(types.PARAMETER_ERROR, "expression is nil")
	}

	res := make(ExpressionStream, 0, fe.count())
	if err := fe.compile(&res); err != nil {
		return nil, err
	}
	return res, nil
}

func (fe *Expression) count() int {
	n := 1
	for _, c := range fe.children {
		if c != nil {
			n += c.count()
		}
	}
	return n
}

func (fe *Expression) compile(res *ExpressionStream) Error {
	if fe.err != nil {
		return fe.err
	}

	*res = append(*res, ExpCell{
		Op:         fe.op,
		ResultType: fe.rt,
		Fixed:      fe.fixed,
		Arity:      len(fe.children),
	})

	for _, c := range fe.children {
		if err := c.compile(res); err != nil {
			return err
		}
	}
	return nil
}

// Equal returns true if both streams have the same cells.
func (s ExpressionStream) Equal(other ExpressionStream) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i].Op != other[i].Op || s[i].ResultType != other[i].ResultType || s[i].Arity != other[i].Arity {
			return false
		}
		if !reflect.DeepEqual(s[i].Fixed, other[i].Fixed) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface.
func (s ExpressionStream) String() string {
	parts := make([]string, len(s))
	for i := range s {
		parts[i] = s[i].String()
	}
	return strings.Join(parts, " ")
}

// subtreeEnd returns the index right after the subtree rooted at i.
func (s ExpressionStream) subtreeEnd(i int) (int, Error) {
	if i >= len(s) {
		return 0, newError(types.PARAMETER_ERROR, "malformed expression stream: missing cells")
	}

	j := i + 1
	for k := 0; k < s[i].Arity; k++ {
		var err Error
		if j, err = s.subtreeEnd(j); err != nil {
			return 0, err
		}
	}
	return j, nil
}

// children returns the start index of each child of the cell at i.
func (s ExpressionStream) children(i int) []int {
	res := make([]int, 0, s[i].Arity)
	j := i + 1
	for k := 0; k < s[i].Arity; k++ {
		res = append(res, j)
		j, _ = s.subtreeEnd(j)
	}
	return res
}

func (s ExpressionStream) validate() Error {
	if len(s) == 0 {
		return newError(types.PARAMETER_ERROR, "expression stream is empty")
	}
	end, err := s.subtreeEnd(0)
	if err != nil {
		return err
	}
	if end != len(s) {
		return newErrorf(types.PARAMETER_ERROR, "malformed expression stream: %d trailing cells", len(s)-end)
	}
	return nil
}
