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
	"bytes"
	"strings"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	as "github.com/aerospike/aerospike-expressions-go"
	ast "github.com/aerospike/aerospike-expressions-go/types"
)

var _ = gg.Describe("Key Test", func() {

	gg.Context("Digests", func() {

		gg.It("should be the same for all integer widths", func() {
			k1 := newKey("set", 42)
			for _, v := range []interface{}{int8(42), int16(42), int32(42), int64(42), uint8(42), uint16(42), uint32(42), uint64(42), uint(42)} {
				k2 := newKey("set", v)
				gm.Expect(k2.Digest()).To(gm.Equal(k1.Digest()))
				gm.Expect(k2.Equals(k1)).To(gm.BeTrue())
			}
		})

		gg.It("should depend on the set, the type and the value", func() {
			k := newKey("set", "1")
			gm.Expect(k.Digest()).To(gm.HaveLen(as.DigestSize))
			gm.Expect(newKey("set", 1).Digest()).ToNot(gm.Equal(k.Digest()))
			gm.Expect(newKey("other", "1").Digest()).ToNot(gm.Equal(k.Digest()))
			gm.Expect(newKey("set", "2").Digest()).ToNot(gm.Equal(k.Digest()))
			gm.Expect(newKey("set", []byte("1")).Digest()).ToNot(gm.Equal(k.Digest()))
		})

		gg.It("should not depend on the namespace", func() {
			k1, err := as.NewKey("ns1", "set", "k")
			gm.Expect(err).ToNot(gm.HaveOccurred())
			k2, err := as.NewKey("ns2", "set", "k")
			gm.Expect(err).ToNot(gm.HaveOccurred())

			gm.Expect(k1.Digest()).To(gm.Equal(k2.Digest()))
			gm.Expect(k1.Equals(k2)).To(gm.BeFalse())
		})

		gg.It("should keep a custom digest", func() {
			digest := bytes.Repeat([]byte{7}, as.DigestSize)
			k, err := as.NewKeyByDigest(*namespace, "set", digest)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(k.Digest()).To(gm.Equal(digest))
			gm.Expect(k.Value()).To(gm.BeNil())
			gm.Expect(k.String()).To(gm.HavePrefix(*namespace + ":set::"))

			k, err = as.NewKeyWithDigest(*namespace, "set", "user", digest)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(k.Digest()).To(gm.Equal(digest))
			gm.Expect(k.Value()).To(gm.Equal(as.StringValue("user")))

			_, err = as.NewKeyByDigest(*namespace, "set", digest[:5])
			gm.Expect(err).To(gm.HaveOccurred())
		})
	})

	gg.Context("Validation", func() {

		gg.It("should reject unsupported keys", func() {
			for _, v := range []interface{}{nil, 1.5, true, []interface{}{1}, map[string]interface{}{"a": 1}} {
				_, err := as.NewKey(*namespace, "set", v)
				gm.Expect(err).To(gm.HaveOccurred())
				gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())
			}

			_, err := as.NewKey(*namespace, "set", struct{}{})
			gm.Expect(err.Matches(ast.TYPE_NOT_SUPPORTED)).To(gm.BeTrue())
		})

		gg.It("should require a namespace", func() {
			_, err := as.NewKey("", "set", 1)
			gm.Expect(err).To(gm.HaveOccurred())
		})
	})

	gg.It("should render the key", func() {
		k := newKey("set", "user")
		s := k.String()
		gm.Expect(s).To(gm.HavePrefix(*namespace + ":set:user:"))
		gm.Expect(strings.Count(s, ":")).To(gm.Equal(3))

		var nilKey *as.Key
		gm.Expect(nilKey.String()).To(gm.BeEmpty())
	})
})
