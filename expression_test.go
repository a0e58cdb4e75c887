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
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// wire packs the expression and decodes it back to nested slices. Strings
// keep their particle type prefix, if any.
func wire(exp *Expression) interface{} {
	b, err := exp.Pack()
	gm.ExpectWithOffset(1, err).ToNot(gm.HaveOccurred())
	return decodeForTest(b)
}

func decodeForTest(b []byte) interface{} {
	v, err := decodeWire(b)
	gm.ExpectWithOffset(2, err).ToNot(gm.HaveOccurred())
	return readable(v)
}

func readable(v interface{}) interface{} {
	switch v := v.(type) {
	case wireStr:
		return v.raw()
	case []interface{}:
		res := make([]interface{}, len(v))
		for i := range v {
			res[i] = readable(v[i])
		}
		return res
	}
	return v
}

func valStr(s string) string {
	return "\x03" + s
}

var _ = gg.Describe("Expression compiler", func() {

	gg.Context("Compile", func() {

		gg.It("should linearize the tree in pre-order", func() {
			s, err := ExpEq(ExpIntBin("a"), ExpIntVal(1)).Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(s).To(gm.HaveLen(3))
			gm.Expect(s[0].Op).To(gm.Equal(expOpEQ))
			gm.Expect(s[0].Arity).To(gm.Equal(2))
			gm.Expect(s[1].Op).To(gm.Equal(expOpBIN))
			gm.Expect(s[1].ResultType).To(gm.Equal(ExpTypeINT))
			gm.Expect(s[2].Op).To(gm.Equal(expOpValInt))
			gm.Expect(s.String()).To(gm.ContainSubstring("(EQ, -, {}, 2)"))
		})

		gg.It("should carry the fixed parameters of each node", func() {
			s, err := ExpGreater(ExpIntBin("a"), ExpIntVal(5)).Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())

			want := ExpressionStream{
				{Op: expOpGT, ResultType: ExpTypeNone, Arity: 2},
				{Op: expOpBIN, ResultType: ExpTypeINT, Fixed: ExpParams{{Name: "bin", Value: "a"}}},
				{Op: expOpValInt, ResultType: ExpTypeNone, Fixed: ExpParams{{Name: "val", Value: LongValue(5)}}},
			}
			gm.Expect(cmp.Diff(want, s, cmpopts.EquateEmpty())).To(gm.BeEmpty())
		})

		gg.It("should terminate variadic operators", func() {
			s, err := ExpAnd(ExpBoolBin("a"), ExpBoolBin("b")).Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(s).To(gm.HaveLen(4))
			gm.Expect(s[0].Arity).To(gm.Equal(3))
			gm.Expect(s[3].Op).To(gm.Equal(expOpEndOfVAArgs))
		})

		gg.It("should be deterministic", func() {
			exp := ExpAnd(
				ExpGreater(ExpListGetByRank(ListReturnTypeValue, ExpTypeINT, ExpIntVal(-1), ExpListBin("l")), ExpIntVal(10)),
				ExpEq(ExpMapGetByKey(MapReturnType.VALUE, ExpTypeSTRING, ExpStringVal("k"), ExpMapBin("m"), CtxMapKey(StringValue("x"))), ExpStringVal("v")),
			)

			s1, err := exp.Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			s2, err := exp.Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(s1.Equal(s2)).To(gm.BeTrue())

			b1, err := exp.Pack()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			b2, err := exp.Pack()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(b1).To(gm.Equal(b2))

			b64, err := exp.Base64()
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(b64).ToNot(gm.BeEmpty())
		})

		gg.It("should report construction errors", func() {
			_, err := ExpEq(nil, ExpIntVal(1)).Compile()
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(types.PARAMETER_ERROR)).To(gm.BeTrue())

			_, err = ExpAnd().Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpCond(ExpBoolBin("a"), ExpIntVal(1)).Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpLet(ExpVar("x")).Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())

			_, err = ExpLet(ExpVar("x"), ExpIntVal(1)).Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpDef("", ExpIntVal(1)).Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpNot(ExpAnd(ExpEq(ExpIntBin("a"), nil))).Pack()
			gm.Expect(err).To(gm.HaveOccurred())
		})

		gg.It("should reject malformed streams", func() {
			s, err := ExpEq(ExpIntBin("a"), ExpIntVal(1)).Compile()
			gm.Expect(err).ToNot(gm.HaveOccurred())

			_, err = s[:2].Pack()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = append(s, s[2]).Pack()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpressionStream{}.Pack()
			gm.Expect(err).To(gm.HaveOccurred())
		})
	})

	gg.Context("Wire format", func() {

		gg.It("should pack comparisons and bins", func() {
			gm.Expect(wire(ExpEq(ExpIntBin("count"), ExpIntVal(5)))).To(gm.Equal(
				[]interface{}{1, []interface{}{81, 2, "count"}, 5},
			))
			gm.Expect(wire(ExpNotEq(ExpStringBin("s"), ExpStringVal("x")))).To(gm.Equal(
				[]interface{}{2, []interface{}{81, 3, "s"}, valStr("x")},
			))
			gm.Expect(wire(ExpLessEq(ExpFloatBin("f"), ExpFloatVal(1.5)))).To(gm.Equal(
				[]interface{}{6, []interface{}{81, 7, "f"}, 1.5},
			))
		})

		gg.It("should drop the variadic terminator", func() {
			gm.Expect(wire(ExpOr(ExpBoolBin("a"), ExpBoolVal(true), ExpBoolVal(false)))).To(gm.Equal(
				[]interface{}{17, []interface{}{81, 1, "a"}, true, false},
			))
			gm.Expect(wire(ExpNumSub(ExpFloatBin("f"), ExpFloatVal(5.0)))).To(gm.Equal(
				[]interface{}{21, []interface{}{81, 7, "f"}, 5.0},
			))
		})

		gg.It("should pack record metadata", func() {
			gm.Expect(wire(ExpTTL())).To(gm.Equal([]interface{}{69}))
			gm.Expect(wire(ExpDigestModulo(3))).To(gm.Equal([]interface{}{64, 3}))
			gm.Expect(wire(ExpKey(ExpTypeINT))).To(gm.Equal([]interface{}{80, 2}))
		})

		gg.It("should express bin existence as a bin type comparison", func() {
			gm.Expect(wire(ExpBinExists("a"))).To(gm.Equal(
				[]interface{}{2, []interface{}{82, "a"}, 0},
			))
		})

		gg.It("should quote list values", func() {
			gm.Expect(wire(ExpListVal(NewValue(1), NewValue("a")))).To(gm.Equal(
				[]interface{}{126, []interface{}{1, valStr("a")}},
			))
		})

		gg.It("should flatten variable definitions into let", func() {
			exp := ExpLet(
				ExpDef("x", ExpIntBin("a")),
				ExpAnd(ExpLess(ExpIntVal(5), ExpVar("x")), ExpLess(ExpVar("x"), ExpIntVal(10))),
			)
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				125, "x", []interface{}{81, 2, "a"},
				[]interface{}{16,
					[]interface{}{5, 5, []interface{}{124, "x"}},
					[]interface{}{5, []interface{}{124, "x"}, 10},
				},
			}))
		})

		gg.It("should pack regex compare", func() {
			gm.Expect(wire(ExpRegexCompare("^a.*", ExpRegexFlagICASE, ExpStringBin("s")))).To(gm.Equal(
				[]interface{}{7, 2, "^a.*", []interface{}{81, 3, "s"}},
			))
		})

		gg.It("should pack list reads", func() {
			exp := ExpListGetByRank(ListReturnTypeValue, ExpTypeINT, ExpIntVal(-1), ExpListBin("plus_five_l"))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 2, 0, []interface{}{21, 7, -1}, []interface{}{81, 4, "plus_five_l"},
			}))

			gm.Expect(wire(ExpListSize(ExpListBin("l")))).To(gm.Equal([]interface{}{
				127, 2, 0, []interface{}{16}, []interface{}{81, 4, "l"},
			}))
		})

		gg.It("should pack nested list reads with a context", func() {
			exp := ExpListGetByIndex(ListReturnTypeValue, ExpTypeINT, ExpIntVal(0), ExpListBin("l"), CtxListIndex(-1))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 2, 0,
				[]interface{}{0xff, []interface{}{0x10, -1}, []interface{}{19, 7, 0}},
				[]interface{}{81, 4, "l"},
			}))
		})

		gg.It("should expand list policy wrappers in modify calls", func() {
			exp := ExpListAppend(nil, ExpIntVal(9), ExpListBin("l"))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 4, 0x40, []interface{}{1, 9, 0, 0}, []interface{}{81, 4, "l"},
			}))
		})

		gg.It("should pack map reads", func() {
			exp := ExpMapGetByValue(MapReturnType.COUNT, ExpIntVal(3), ExpMapBin("map"))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 2, 0, []interface{}{102, 5, 3}, []interface{}{81, 5, "map"},
			}))

			exp = ExpMapGetByKey(MapReturnType.VALUE, ExpTypeSTRING, ExpStringVal("k"), ExpMapBin("m"), CtxMapKey(StringValue("x")))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 3, 0,
				[]interface{}{0xff, []interface{}{0x22, valStr("x")}, []interface{}{97, 7, valStr("k")}},
				[]interface{}{81, 5, "m"},
			}))
		})

		gg.It("should pack bit and HLL calls in their modules", func() {
			exp := ExpBitCount(ExpIntVal(0), ExpIntVal(8), ExpBlobBin("b"))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 2, 1, []interface{}{51, 0, 8}, []interface{}{81, 6, "b"},
			}))

			exp = ExpBitSetInt(nil, ExpIntVal(0), ExpIntVal(8), ExpIntVal(255), ExpBlobBin("b"))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 6, 0x41, []interface{}{12, 0, 8, 255, 0}, []interface{}{81, 6, "b"},
			}))

			exp = ExpHLLGetCount(ExpHLLBin("h"))
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 2, 2, []interface{}{50}, []interface{}{81, 9, "h"},
			}))
		})
	})

	gg.Context("Path expressions", func() {

		gg.It("should pack loop variables", func() {
			gm.Expect(wire(ExpLoopVarFloat(LoopVarPartValue))).To(gm.Equal([]interface{}{122, 7, 1}))
			gm.Expect(wire(ExpLoopVarString(LoopVarPartMapKey))).To(gm.Equal([]interface{}{122, 3, 0}))
			gm.Expect(wire(ExpLoopVarInt(LoopVarPartIndex))).To(gm.Equal([]interface{}{122, 2, 2}))

			_, err := ExpLoopVarInt(ExpLoopVarPart(7)).Compile()
			gm.Expect(err).To(gm.HaveOccurred())
		})

		gg.It("should pack select by path", func() {
			exp := ExpSelectByPath(ExpTypeMAP, SelectMatchingTree, ExpMapBin("days"),
				CtxAllChildren(),
				CtxAllChildrenWithFilter(ExpGreaterEq(ExpLoopVarFloat(LoopVarPartValue), ExpFloatVal(20.0))),
			)
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 5, 0,
				[]interface{}{0xff,
					[]interface{}{0x04, true, 0x04, []interface{}{4, []interface{}{122, 7, 1}, 20.0}},
					[]interface{}{0xfe, 0},
				},
				[]interface{}{81, 5, "days"},
			}))
		})

		gg.It("should pack modify by path with the apply flag", func() {
			exp := ExpModifyByPath(ExpTypeMAP, SelectMatchingTree,
				ExpNumSub(ExpLoopVarFloat(LoopVarPartValue), ExpFloatVal(5.0)),
				ExpMapBin("days"),
				CtxAllChildren(), CtxAllChildren(),
			)
			gm.Expect(wire(exp)).To(gm.Equal([]interface{}{
				127, 5, 0x40,
				[]interface{}{0xff,
					[]interface{}{0x04, true, 0x04, true},
					[]interface{}{0xfe, 4, []interface{}{21, []interface{}{122, 7, 1}, 5.0}},
				},
				[]interface{}{81, 5, "days"},
			}))

			gm.Expect(wire(ExpRemoveResult())).To(gm.Equal([]interface{}{100}))
		})

		gg.It("should reject invalid path expressions", func() {
			_, err := ExpSelectByPath(ExpTypeMAP, SelectMatchingTree, ExpMapBin("days")).Compile()
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ErrInvalidContextPath.resultCode())).To(gm.BeTrue())

			_, err = ExpSelectByPath(ExpTypeMAP, SelectApply, ExpMapBin("days"), CtxAllChildren()).Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpSelectByPath(ExpTypeMAP, SelectFlags(0x100), ExpMapBin("days"), CtxAllChildren()).Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpModifyByPath(ExpTypeMAP, SelectMatchingTree, nil, ExpMapBin("days"), CtxAllChildren()).Compile()
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = ExpSelectByPath(ExpTypeMAP, SelectValue, ExpMapBin("days"), CtxAllChildrenWithFilter(nil)).Compile()
			gm.Expect(err).To(gm.HaveOccurred())
		})
	})
})
