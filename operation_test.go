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
	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	"github.com/aerospike/aerospike-expressions-go/types"
)

func payload(op *Operation) interface{} {
	b, err := op.Payload()
	gm.ExpectWithOffset(1, err).ToNot(gm.HaveOccurred())
	return decodeForTest(b)
}

var _ = gg.Describe("Operations", func() {

	gg.Context("Record operations", func() {

		gg.It("should classify reads and writes", func() {
			gm.Expect(GetBinOp("a").IsWrite()).To(gm.BeFalse())
			gm.Expect(GetOp().OpType().Code()).To(gm.Equal(byte(1)))
			gm.Expect(GetHeaderOp().OpType()).To(gm.Equal(_READ_HEADER))
			gm.Expect(PutOp(NewBin("a", 1)).IsWrite()).To(gm.BeTrue())
			gm.Expect(AddOp(NewBin("a", 1)).OpType().Code()).To(gm.Equal(byte(5)))
			gm.Expect(TouchOp().IsWrite()).To(gm.BeTrue())
			gm.Expect(DeleteOp().OpType().Code()).To(gm.Equal(byte(14)))
		})

		gg.It("should carry the bin value as the payload", func() {
			gm.Expect(payload(PutOp(NewBin("a", 7)))).To(gm.Equal(7))
			gm.Expect(payload(AppendOp(NewBin("s", "x")))).To(gm.Equal(valStr("x")))
			gm.Expect(payload(GetBinOp("a"))).To(gm.BeNil())
		})

		gg.DescribeTable("should require a bin name",
			func(op *Operation) {
				gm.Expect(op.Err()).To(gm.HaveOccurred())
				gm.Expect(op.Err().Matches(types.PARAMETER_ERROR)).To(gm.BeTrue())
			},
			gg.Entry("put", PutOp(NewBin("", 1))),
			gg.Entry("expression write", ExpWriteOp("", ExpIntVal(1), ExpWriteFlagDefault)),
			gg.Entry("expression read", ExpReadOp("", ExpIntVal(1), ExpReadFlagDefault)),
			gg.Entry("list", ListAppendOp("", 1)),
			gg.Entry("map", MapSizeOp("")),
			gg.Entry("bit", BitCountOp("", 0, 8)),
			gg.Entry("hll", HLLGetCountOp("")),
		)

		gg.It("should reject long bin names", func() {
			op := PutOp(NewBin("a_very_long_bin_name", 1))
			gm.Expect(op.Err()).To(gm.HaveOccurred())
			gm.Expect(op.Err().Matches(types.BIN_NAME_TOO_LONG)).To(gm.BeTrue())

			_, err := op.Payload()
			gm.Expect(err).To(gm.HaveOccurred())
		})
	})

	gg.Context("CDT operations", func() {

		gg.It("should pack list operations", func() {
			gm.Expect(payload(ListAppendOp("l", 1))).To(gm.Equal([]interface{}{1, 1}))
			gm.Expect(payload(ListAppendOp("l", 1, 2))).To(gm.Equal([]interface{}{2, []interface{}{1, 2}}))
			gm.Expect(payload(ListSizeOp("l"))).To(gm.Equal([]interface{}{16}))
			gm.Expect(payload(ListGetByRankOp("l", -1, ListReturnTypeValue))).To(gm.Equal([]interface{}{21, 7, -1}))

			gm.Expect(ListAppendOp("l").Err()).To(gm.HaveOccurred())
			gm.Expect(ListSizeOp("l").IsWrite()).To(gm.BeFalse())
			gm.Expect(ListAppendOp("l", 1).IsWrite()).To(gm.BeTrue())
		})

		gg.It("should pack the context path", func() {
			op := ListGetOp("l", 2, CtxMapKey(StringValue("k")), CtxListIndex(0))
			gm.Expect(payload(op)).To(gm.Equal([]interface{}{
				0xff, []interface{}{0x22, valStr("k"), 0x10, 0}, []interface{}{17, 2},
			}))
		})

		gg.It("should pack map operations", func() {
			gm.Expect(payload(MapPutOp(nil, "m", "k", 1))).To(gm.Equal([]interface{}{67, valStr("k"), 1, 0}))
			gm.Expect(payload(MapSizeOp("m"))).To(gm.Equal([]interface{}{96}))
			gm.Expect(payload(MapGetByKeyOp("m", "k", MapReturnType.VALUE))).To(gm.Equal([]interface{}{97, 7, valStr("k")}))
		})

		gg.It("should pack bit and HLL operations", func() {
			gm.Expect(payload(BitCountOp("b", 0, 8))).To(gm.Equal([]interface{}{51, 0, 8}))
			gm.Expect(payload(BitSetIntOp(nil, "b", 0, 8, 255))).To(gm.Equal([]interface{}{12, 0, 8, 255, 0}))
			gm.Expect(payload(HLLGetCountOp("h"))).To(gm.Equal([]interface{}{50}))
			gm.Expect(payload(HLLInitOp(nil, "h", 10, -1))).To(gm.Equal([]interface{}{0, 10, -1, 0}))
		})
	})

	gg.Context("Expression operations", func() {

		gg.It("should pack the expression and flags", func() {
			op := ExpReadOp("v", ExpNumAdd(ExpIntBin("a"), ExpIntVal(1)), ExpReadFlagEvalNoFail)
			gm.Expect(op.IsWrite()).To(gm.BeFalse())
			gm.Expect(payload(op)).To(gm.Equal([]interface{}{
				[]interface{}{20, []interface{}{81, 2, "a"}, 1}, 16,
			}))

			op = ExpWriteOp("v", ExpIntVal(1), ExpWriteFlagDefault)
			gm.Expect(op.IsWrite()).To(gm.BeTrue())
			gm.Expect(payload(op)).To(gm.Equal([]interface{}{1, 0}))
		})

		gg.It("should surface expression errors", func() {
			op := ExpReadOp("v", ExpAnd(), ExpReadFlagDefault)
			gm.Expect(op.Err()).To(gm.HaveOccurred())

			op = ExpWriteOp("v", nil, ExpWriteFlagDefault)
			gm.Expect(op.Err()).To(gm.HaveOccurred())
		})
	})

	gg.Context("Path operations", func() {

		gg.It("should pack select by path", func() {
			op := SelectByPathOp("days", SelectMatchingTree,
				CtxAllChildren(),
				CtxAllChildrenWithFilter(ExpGreaterEq(ExpLoopVarFloat(LoopVarPartValue), ExpFloatVal(20.0))),
			)
			gm.Expect(op.IsWrite()).To(gm.BeFalse())
			gm.Expect(payload(op)).To(gm.Equal([]interface{}{
				0xff,
				[]interface{}{0x04, true, 0x04, []interface{}{4, []interface{}{122, 7, 1}, 20.0}},
				[]interface{}{0xfe, 0},
			}))
		})

		gg.It("should pack modify by path with the apply flag", func() {
			op := ModifyByPathOp("days", SelectMatchingTree,
				ExpNumSub(ExpLoopVarFloat(LoopVarPartValue), ExpFloatVal(5.0)),
				CtxAllChildren(), CtxAllChildren(),
			)
			gm.Expect(op.IsWrite()).To(gm.BeTrue())
			gm.Expect(payload(op)).To(gm.Equal([]interface{}{
				0xff,
				[]interface{}{0x04, true, 0x04, true},
				[]interface{}{0xfe, 4, []interface{}{21, []interface{}{122, 7, 1}, 5.0}},
			}))
		})

		gg.It("should reject invalid path operations", func() {
			gm.Expect(SelectByPathOp("days", SelectValue).Err()).To(gm.HaveOccurred())
			gm.Expect(SelectByPathOp("", SelectValue, CtxAllChildren()).Err()).To(gm.HaveOccurred())
			gm.Expect(SelectByPathOp("days", SelectApply, CtxAllChildren()).Err()).To(gm.HaveOccurred())
			gm.Expect(ModifyByPathOp("days", SelectValue, nil, CtxAllChildren()).Err()).To(gm.HaveOccurred())
			gm.Expect(ModifyByPathOp("days", SelectValue, ExpAnd(), CtxAllChildren()).Err()).To(gm.HaveOccurred())
		})
	})
})
