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
	"context"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	as "github.com/aerospike/aerospike-expressions-go"
	ast "github.com/aerospike/aerospike-expressions-go/types"
)

// ALL tests are isolated by SetName and Key, which are 50 random characters
var _ = gg.Describe("Aerospike", func() {

	var ctx context.Context
	var client *as.Client
	var transport *as.FakeTransport
	var set string

	gg.BeforeEach(func() {
		ctx = context.Background()
		client, transport = newTestClient()
		set = randString(50)
	})

	putKeys := func(n int) []*as.Key {
		keys := make([]*as.Key, n)
		for i := range keys {
			keys[i] = newKey(set, i)
			gm.Expect(client.Put(ctx, nil, keys[i], as.BinMap{"id": i, "balance": i * 100})).ToNot(gm.HaveOccurred())
		}
		return keys
	}

	gg.Describe("Batch Read operations", func() {

		gg.It("must return the records in key order", func() {
			keys := putKeys(10)
			keys = append(keys, newKey(set, "missing"))

			recs, err := client.BatchGet(ctx, nil, keys)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs).To(gm.HaveLen(11))
			for i := 0; i < 10; i++ {
				gm.Expect(recs[i].Bins["id"]).To(gm.Equal(i))
			}
			gm.Expect(recs[10]).To(gm.BeNil())
		})

		gg.It("must read the selected bins and operations", func() {
			keys := putKeys(3)

			recs, err := client.BatchGet(ctx, nil, keys, "balance")
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs[2].Bins).To(gm.Equal(as.BinMap{"balance": 200}))

			recs, err = client.BatchGetOperate(ctx, nil, keys, as.GetBinOp("id"))
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs[1].Bins).To(gm.Equal(as.BinMap{"id": 1}))

			recs, err = client.BatchGetHeader(ctx, nil, keys)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs[0].Bins).To(gm.BeEmpty())
			gm.Expect(recs[0].Generation).To(gm.Equal(uint32(1)))
		})

		gg.It("must report existence", func() {
			keys := putKeys(2)
			keys = append(keys, newKey(set, "missing"))

			res, err := client.BatchExists(ctx, nil, keys)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(res).To(gm.Equal([]bool{true, true, false}))
		})

		gg.It("must filter the records with the batch expression", func() {
			keys := putKeys(5)

			policy := as.NewBatchPolicy()
			policy.FilterExpression = as.ExpGreaterEq(as.ExpIntBin("balance"), as.ExpIntVal(300))
			recs, err := client.BatchGet(ctx, policy, keys)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs[2]).To(gm.BeNil())
			gm.Expect(recs[3]).ToNot(gm.BeNil())
			gm.Expect(recs[4]).ToNot(gm.BeNil())
		})

		gg.It("must reject an empty batch", func() {
			err := client.BatchOperate(ctx, nil, as.NewBatchRecords())
			gm.Expect(err).To(gm.HaveOccurred())
		})
	})

	gg.Describe("Batch Write operations", func() {

		gg.It("must write and delete records", func() {
			keys := putKeys(4)

			records := as.NewBatchRecords()
			for _, key := range keys[:2] {
				records.Add(as.NewBatchWrite(nil, key, as.AddOp(as.NewBin("balance", 5)), as.GetBinOp("balance")))
			}
			gm.Expect(client.BatchOperate(ctx, nil, records)).ToNot(gm.HaveOccurred())
			gm.Expect(records.Records()[1].BatchRec().Record.Bins["balance"]).To(gm.Equal(105))

			res, err := client.BatchDelete(ctx, nil, nil, append(keys[2:], newKey(set, "missing")))
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(res.Result()).To(gm.Equal(ast.OK))
			gm.Expect(res.Records()[2].BatchRec().ResultCode).To(gm.Equal(ast.KEY_NOT_FOUND_ERROR))

			exists, err := client.BatchExists(ctx, nil, keys)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(exists).To(gm.Equal([]bool{true, true, false, false}))
		})

		gg.It("must fall back on the default batch write policy", func() {
			keys := putKeys(1)

			policy := as.NewBatchPolicy()
			policy.DefaultWritePolicy = as.NewBatchWritePolicy()
			policy.DefaultWritePolicy.FilterExpression = as.ExpEq(as.ExpIntBin("id"), as.ExpIntVal(7))

			records := as.NewBatchRecords(as.NewBatchWrite(nil, keys[0], as.PutOp(as.NewBin("x", 1))))
			gm.Expect(client.BatchOperate(ctx, policy, records)).ToNot(gm.HaveOccurred())
			gm.Expect(records.Records()[0].BatchRec().ResultCode).To(gm.Equal(ast.FILTERED_OUT))
		})

		gg.It("must report the first failing record", func() {
			keys := putKeys(2)

			wpolicy := as.NewBatchWritePolicy()
			wpolicy.RecordExistsAction = as.CREATE_ONLY
			records := as.NewBatchRecords(
				as.NewBatchRead(nil, keys[0], nil),
				as.NewBatchWrite(wpolicy, keys[1], as.PutOp(as.NewBin("x", 1))),
			)
			gm.Expect(client.BatchOperate(ctx, nil, records)).ToNot(gm.HaveOccurred())
			gm.Expect(records.Result()).To(gm.Equal(ast.KEY_EXISTS_ERROR))
			gm.Expect(records.Err().Matches(ast.KEY_EXISTS_ERROR)).To(gm.BeTrue())
		})
	})

	gg.Describe("Batch UDF operations", func() {

		gg.It("must run the UDF on every key", func() {
			gm.Expect(transport.RegisterUDF("bank", `
function add_balance(rec, n)
	rec["balance"] = rec["balance"] + n
	return rec["balance"]
end
`)).ToNot(gm.HaveOccurred())

			keys := putKeys(3)
			res, err := client.BatchExecute(ctx, nil, nil, keys, "bank", "add_balance", as.NewValue(1))
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(res.Result()).To(gm.Equal(ast.OK))

			recs, err := client.BatchGet(ctx, nil, keys, "balance")
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs[2].Bins["balance"]).To(gm.Equal(201))
		})

		gg.It("must report missing UDF packages per record", func() {
			keys := putKeys(1)
			res, err := client.BatchExecute(ctx, nil, nil, keys, "nope", "fn")
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(res.Result()).To(gm.Equal(ast.UDF_BAD_RESPONSE))
		})
	})

	gg.Describe("Batch node failures", func() {

		gg.BeforeEach(func() {
			transport = as.NewFakeTransport("A")
			var err error
			client, err = as.NewClient(transport)
			gm.Expect(err).ToNot(gm.HaveOccurred())
		})

		gg.It("must mark sent writes in doubt and retry reads", func() {
			keys := putKeys(2)
			transport.FailNode("A", &as.AerospikeError{ResultCode: ast.TIMEOUT})

			policy := as.NewBatchPolicy()
			policy.MaxRetries = 1
			policy.SleepBetweenRetries = 0

			records := as.NewBatchRecords(
				as.NewBatchRead(nil, keys[0], nil),
				as.NewBatchWrite(nil, keys[1], as.PutOp(as.NewBin("x", 1))),
			)
			gm.Expect(client.BatchOperate(ctx, policy, records)).ToNot(gm.HaveOccurred())

			read := records.Records()[0].BatchRec()
			gm.Expect(read.ResultCode).To(gm.Equal(ast.TIMEOUT))
			gm.Expect(read.InDoubt).To(gm.BeFalse())
			gm.Expect(read.Err.IsInDoubt()).To(gm.BeFalse())
			gm.Expect(read.Err.Matches(ast.TIMEOUT)).To(gm.BeTrue())

			write := records.Records()[1].BatchRec()
			gm.Expect(write.ResultCode).To(gm.Equal(ast.TIMEOUT))
			gm.Expect(write.InDoubt).To(gm.BeTrue())
			gm.Expect(write.Err.IsInDoubt()).To(gm.BeTrue())
			gm.Expect(write.Err).ToNot(gm.BeIdenticalTo(read.Err))

			gm.Expect(records.Result()).To(gm.Equal(ast.TIMEOUT))
		})

		gg.It("must fail the whole read when partial results are not allowed", func() {
			keys := putKeys(2)
			transport.FailNode("A", &as.AerospikeError{ResultCode: ast.SERVER_NOT_AVAILABLE})

			policy := as.NewBatchPolicy()
			policy.MaxRetries = 0
			_, err := client.BatchGet(ctx, policy, keys)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.SERVER_NOT_AVAILABLE)).To(gm.BeTrue())

			policy.AllowPartialResults = true
			recs, err := client.BatchGet(ctx, policy, keys)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(recs).To(gm.Equal([]*as.Record{nil, nil}))
		})
	})

	gg.Describe("Batch on multiple nodes", func() {

		gg.It("must skip the remaining nodes when RespondAllKeys is false", func() {
			transport = as.NewFakeTransport("A", "B")
			var err error
			client, err = as.NewClient(transport)
			gm.Expect(err).ToNot(gm.HaveOccurred())

			keys := putKeys(20)
			transport.FailNode("A", &as.AerospikeError{ResultCode: ast.PARAMETER_ERROR})
			transport.FailNode("B", &as.AerospikeError{ResultCode: ast.PARAMETER_ERROR})

			policy := as.NewBatchPolicy()
			policy.ConcurrentNodes = 1
			policy.RespondAllKeys = false

			records := as.NewBatchRecords()
			for _, key := range keys {
				records.Add(as.NewBatchRead(nil, key, nil))
			}
			gm.Expect(client.BatchOperate(ctx, policy, records)).ToNot(gm.HaveOccurred())

			codes := map[ast.ResultCode]int{}
			for _, r := range records.Records() {
				codes[r.BatchRec().ResultCode]++
			}
			gm.Expect(codes).To(gm.HaveLen(2))
			gm.Expect(codes).To(gm.HaveKey(ast.PARAMETER_ERROR))
			gm.Expect(codes).To(gm.HaveKey(ast.BATCH_FAILED))
			gm.Expect(transport.Batches()).To(gm.Equal(1))
		})
	})
})
