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

package aerospike_test

import (
	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	as "github.com/aerospike/aerospike-expressions-go"
	ast "github.com/aerospike/aerospike-expressions-go/types"
)

var _ = gg.Describe("CDTContext Test", func() {

	gg.It("should convert to/from base64", func() {
		ctxl := []*as.CDTContext{
			as.CtxMapKey(as.StringValue("key2")),
			as.CtxListRank(0),
		}

		b, err := as.CDTContextToBase64(ctxl)
		gm.Expect(err).ToNot(gm.HaveOccurred())
		gm.Expect(b).ToNot(gm.BeEmpty())

		ctxl2, err := as.Base64ToCDTContext(b)
		gm.Expect(err).ToNot(gm.HaveOccurred())
		gm.Expect(ctxl2).To(gm.HaveLen(2))
		gm.Expect(as.CDTContextPath(ctxl2).String()).To(gm.Equal(as.CDTContextPath(ctxl).String()))
		for i := range ctxl {
			gm.Expect(ctxl2[i].Id).To(gm.Equal(ctxl[i].Id))
		}
	})

	gg.It("should keep the create flags through base64", func() {
		ctxl := []*as.CDTContext{
			as.CtxMapKeyCreate(as.StringValue("k"), as.MapOrder.KEY_ORDERED),
			as.CtxListIndexCreate(-1, as.ListOrderOrdered, false),
		}

		b, err := as.CDTContextToBase64(ctxl)
		gm.Expect(err).ToNot(gm.HaveOccurred())

		ctxl2, err := as.Base64ToCDTContext(b)
		gm.Expect(err).ToNot(gm.HaveOccurred())
		gm.Expect(ctxl2[0].Id).To(gm.Equal(0x22 | 0x80))
		gm.Expect(ctxl2[1].Id).To(gm.Equal(0x10 | 0xc0))
		gm.Expect(as.CDTContextPath(ctxl2).String()).To(gm.Equal("MapKey(k).ListIndex(-1)"))
	})

	gg.It("should round trip the all children steps", func() {
		filter := as.ExpGreater(as.ExpLoopVarInt(as.LoopVarPartValue), as.ExpIntVal(10))
		ctxl := []*as.CDTContext{
			as.CtxAllChildren(),
			as.CtxAllChildrenWithFilter(filter),
		}

		b, err := as.CDTContextToBase64(ctxl)
		gm.Expect(err).ToNot(gm.HaveOccurred())

		ctxl2, err := as.Base64ToCDTContext(b)
		gm.Expect(err).ToNot(gm.HaveOccurred())
		gm.Expect(as.CDTContextPath(ctxl2).String()).To(gm.Equal("AllChildren.AllChildrenWithFilter"))

		b2, err := as.CDTContextToBase64(ctxl2)
		gm.Expect(err).ToNot(gm.HaveOccurred())
		gm.Expect(b2).To(gm.Equal(b))
	})

	gg.It("should reject an empty path", func() {
		_, err := as.NewCDTContextPath()
		gm.Expect(err).To(gm.HaveOccurred())

		_, err = as.CDTContextToBase64(nil)
		gm.Expect(err).To(gm.HaveOccurred())

		path, err := as.NewCDTContextPath(as.CtxListIndex(1), as.CtxMapValue(as.IntegerValue(3)))
		gm.Expect(err).ToNot(gm.HaveOccurred())
		gm.Expect(path.String()).To(gm.Equal("ListIndex(1).MapValue(3)"))
	})

	gg.It("should reject nil steps and failed filters", func() {
		_, err := as.NewCDTContextPath(as.CtxListIndex(1), nil)
		gm.Expect(err).To(gm.HaveOccurred())
		gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())

		_, err = as.NewCDTContextPath(as.CtxAllChildrenWithFilter(nil))
		gm.Expect(err).To(gm.HaveOccurred())
	})

	gg.It("should reject malformed base64", func() {
		_, err := as.Base64ToCDTContext("not base64!")
		gm.Expect(err).To(gm.HaveOccurred())
		gm.Expect(err.Matches(ast.PARSE_ERROR)).To(gm.BeTrue())

		// an odd element count
		_, err = as.Base64ToCDTContext("kRA=")
		gm.Expect(err).To(gm.HaveOccurred())
	})

}) // describe
