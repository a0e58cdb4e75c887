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

package types

import (
	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"
)

var _ = gg.Describe("ResultCode", func() {

	gg.DescribeTable("benign batch results",
		func(rc ResultCode, benign bool) {
			gm.Expect(rc.IsBenignBatchResult()).To(gm.Equal(benign))
		},
		gg.Entry("OK", OK, true),
		gg.Entry("FILTERED_OUT", FILTERED_OUT, true),
		gg.Entry("KEY_NOT_FOUND_ERROR", KEY_NOT_FOUND_ERROR, true),
		gg.Entry("GENERATION_ERROR", GENERATION_ERROR, false),
		gg.Entry("BIN_TYPE_ERROR", BIN_TYPE_ERROR, false),
		gg.Entry("NO_RESPONSE", NO_RESPONSE, false),
	)

	gg.It("must use the server wire numbers", func() {
		gm.Expect(int(KEY_NOT_FOUND_ERROR)).To(gm.Equal(2))
		gm.Expect(int(GENERATION_ERROR)).To(gm.Equal(3))
		gm.Expect(int(PARAMETER_ERROR)).To(gm.Equal(4))
		gm.Expect(int(TIMEOUT)).To(gm.Equal(9))
		gm.Expect(int(PARTITION_UNAVAILABLE)).To(gm.Equal(11))
		gm.Expect(int(BIN_TYPE_ERROR)).To(gm.Equal(12))
		gm.Expect(int(BIN_NAME_TOO_LONG)).To(gm.Equal(21))
		gm.Expect(int(OP_NOT_APPLICABLE)).To(gm.Equal(26))
		gm.Expect(int(FILTERED_OUT)).To(gm.Equal(27))
	})

	gg.It("must describe unknown codes", func() {
		gm.Expect(ResultCode(9999).String()).To(gm.ContainSubstring("9999"))
		gm.Expect(FILTERED_OUT.String()).To(gm.Equal("Transaction filtered out"))
		gm.Expect(COMMON_ERROR.String()).To(gm.Equal("Common Error"))
		gm.Expect(COMMON_ERROR.IsRetryable()).To(gm.BeFalse())
	})

	gg.It("must only retry transient failures", func() {
		gm.Expect(TIMEOUT.IsRetryable()).To(gm.BeTrue())
		gm.Expect(KEY_BUSY.IsRetryable()).To(gm.BeTrue())
		gm.Expect(GENERATION_ERROR.IsRetryable()).To(gm.BeFalse())
		gm.Expect(PARAMETER_ERROR.IsRetryable()).To(gm.BeFalse())
	})
})
