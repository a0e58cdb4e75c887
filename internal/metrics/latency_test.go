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

package metrics_test

import (
	"context"
	"errors"

	"go.opencensus.io/stats/view"

	"github.com/aerospike/aerospike-expressions-go/internal/metrics"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"
)

var _ = gg.Describe("Latency views", func() {

	gg.BeforeEach(func() {
		gm.Expect(metrics.RegisterAllViews()).To(gm.Succeed())
		gg.DeferCleanup(metrics.UnregisterAllViews)
	})

	countFor := func(status string) int64 {
		rows, err := view.RetrieveData(metrics.CallsView.Name)
		gm.Expect(err).ToNot(gm.HaveOccurred())
		var total int64
		for _, row := range rows {
			for _, t := range row.Tags {
				if t.Key == metrics.Status && t.Value == status {
					total += row.Data.(*view.CountData).Value
				}
			}
		}
		return total
	}

	gg.It("must record calls with their status", func() {
		ctx := metrics.WithNamespace(context.Background(), "test")

		metrics.RecordCall(ctx, "Get")(nil)
		metrics.RecordCall(ctx, "Get")(nil)
		metrics.RecordCall(ctx, "Put")(errors.New("failed"))

		gm.Eventually(func() int64 { return countFor("OK") }).Should(gm.Equal(int64(2)))
		gm.Eventually(func() int64 { return countFor("ERROR") }).Should(gm.Equal(int64(1)))
	})

	gg.It("must sum batch keys", func() {
		metrics.RecordBatchKeys(context.Background(), "BatchOperate", 3)
		metrics.RecordBatchKeys(context.Background(), "BatchOperate", 4)

		gm.Eventually(func() float64 {
			rows, _ := view.RetrieveData(metrics.BatchKeysView.Name)
			if len(rows) == 0 {
				return 0
			}
			return rows[0].Data.(*view.SumData).Value
		}).Should(gm.Equal(float64(7)))
	})
})
