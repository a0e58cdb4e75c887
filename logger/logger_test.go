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

package logger

import (
	"bytes"
	"log"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"
)

var _ = gg.Describe("Logger", func() {

	var buf *bytes.Buffer
	var lgr *logger

	gg.BeforeEach(func() {
		buf = new(bytes.Buffer)
		lgr = newLogger()
		lgr.SetLogger(log.New(buf, "", 0))
	})

	gg.It("must be silent by default", func() {
		lgr.Error("boom")
		gm.Expect(buf.Len()).To(gm.Equal(0))
		gm.Expect(lgr.Level()).To(gm.Equal(OFF))
	})

	gg.It("must filter messages below the level", func() {
		lgr.SetLevel(WARNING)
		lgr.Debug("d")
		lgr.Info("i")
		lgr.Warn("w %d", 1)
		lgr.Error("e")
		gm.Expect(buf.String()).To(gm.Equal("WARN: w 1\nERROR: e\n"))
	})
})
