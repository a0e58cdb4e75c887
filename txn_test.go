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
	"time"

	gg "github.com/onsi/ginkgo/v2"
	gm "github.com/onsi/gomega"

	as "github.com/aerospike/aerospike-expressions-go"
	ast "github.com/aerospike/aerospike-expressions-go/types"
)

var _ = gg.Describe("Transactions", func() {

	var ctx context.Context
	var client *as.Client
	var transport *as.FakeTransport

	gg.BeforeEach(func() {
		ctx = context.Background()
		client, transport = newTestClient()
	})

	txnWritePolicy := func(txn *as.Txn) *as.WritePolicy {
		wp := as.NewWritePolicy(0, 0)
		wp.Txn = txn
		return wp
	}

	txnReadPolicy := func(txn *as.Txn) *as.BasePolicy {
		p := as.NewPolicy()
		p.Txn = txn
		return p
	}

	gg.Context("Txn", func() {

		gg.It("should assign increasing ids", func() {
			prev := as.NewTxn().Id()
			for i := 0; i < 100; i++ {
				id := as.NewTxn().Id()
				gm.Expect(id).To(gm.BeNumerically(">", prev))
				prev = id
			}
		})

		gg.It("should require both capacities or neither", func() {
			txn, err := as.NewTxnWithCapacity(0, 0)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(txn.State()).To(gm.Equal(as.TxnStateOpen))

			txn, err = as.NewTxnWithCapacity(8, 16)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(txn.Id()).ToNot(gm.BeZero())

			_, err = as.NewTxnWithCapacity(8, 0)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())

			_, err = as.NewTxnWithCapacity(0, 8)
			gm.Expect(err).To(gm.HaveOccurred())

			_, err = as.NewTxnWithCapacity(-1, 8)
			gm.Expect(err).To(gm.HaveOccurred())
		})

		gg.It("should track the timeout", func() {
			txn := as.NewTxn()
			gm.Expect(txn.Deadline().IsZero()).To(gm.BeTrue())

			txn.SetTimeout(10 * time.Second)
			gm.Expect(txn.Timeout()).To(gm.Equal(10 * time.Second))
			gm.Expect(txn.Deadline()).To(gm.BeTemporally("~", time.Now().Add(10*time.Second), time.Second))

			txn.SetTimeout(0)
			gm.Expect(txn.Deadline().IsZero()).To(gm.BeTrue())
		})

		gg.It("should track reads and writes", func() {
			txn := as.NewTxn()
			key := newKey("txn", "k1")

			txn.OnRead(key, 0)
			gm.Expect(txn.Reads()).To(gm.BeEmpty())

			txn.OnRead(key, 42)
			gm.Expect(txn.ReadVersion(key)).To(gm.Equal(uint64(42)))
			gm.Expect(txn.WriteExistsForKey(key)).To(gm.BeFalse())

			txn.OnWrite(key)
			gm.Expect(txn.ReadVersion(key)).To(gm.BeZero())
			gm.Expect(txn.WriteExistsForKey(key)).To(gm.BeTrue())
			gm.Expect(txn.Writes()).To(gm.HaveLen(1))
		})
	})

	gg.Context("Commands", func() {

		gg.It("should record the versions of the records read", func() {
			key := newKey("txn", "read")
			gm.Expect(client.Put(ctx, nil, key, as.BinMap{"a": 1})).To(gm.Succeed())

			txn := as.NewTxn()
			rec, err := client.Get(ctx, txnReadPolicy(txn), key)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(rec.Version).ToNot(gm.BeZero())
			gm.Expect(txn.ReadVersion(key)).To(gm.Equal(rec.Version))
			gm.Expect(txn.Namespace()).To(gm.Equal(*namespace))
		})

		gg.It("should record the keys written", func() {
			key := newKey("txn", "write")
			txn := as.NewTxn()
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), key, as.BinMap{"a": 1})).To(gm.Succeed())
			gm.Expect(txn.WriteExistsForKey(key)).To(gm.BeTrue())
		})

		gg.It("should reject a second namespace", func() {
			txn := as.NewTxn()
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), newKey("txn", "a"), as.BinMap{"a": 1})).To(gm.Succeed())

			other, err := as.NewKey(*namespace+"_other", "txn", "b")
			gm.Expect(err).ToNot(gm.HaveOccurred())
			err = client.Put(ctx, txnWritePolicy(txn), other, as.BinMap{"a": 1})
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())
		})
	})

	gg.Context("Commit and abort", func() {

		gg.It("should commit the writes", func() {
			txn := as.NewTxn()
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), newKey("txn", "c1"), as.BinMap{"a": 1})).To(gm.Succeed())

			gm.Expect(client.Commit(ctx, txn)).To(gm.Succeed())
			gm.Expect(txn.State()).To(gm.Equal(as.TxnStateCommitted))
			gm.Expect(transport.Rolls()).To(gm.Equal([]bool{true}))
		})

		gg.It("should commit a read only transaction without a roll", func() {
			key := newKey("txn", "ro")
			gm.Expect(client.Put(ctx, nil, key, as.BinMap{"a": 1})).To(gm.Succeed())

			txn := as.NewTxn()
			_, err := client.Get(ctx, txnReadPolicy(txn), key)
			gm.Expect(err).ToNot(gm.HaveOccurred())

			gm.Expect(client.Commit(ctx, txn)).To(gm.Succeed())
			gm.Expect(transport.Rolls()).To(gm.BeEmpty())
		})

		gg.It("should abort when a read record changed", func() {
			key := newKey("txn", "changed")
			gm.Expect(client.Put(ctx, nil, key, as.BinMap{"a": 1})).To(gm.Succeed())

			txn := as.NewTxn()
			_, err := client.Get(ctx, txnReadPolicy(txn), key)
			gm.Expect(err).ToNot(gm.HaveOccurred())
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), newKey("txn", "other"), as.BinMap{"b": 1})).To(gm.Succeed())

			// outside of the transaction
			gm.Expect(client.Put(ctx, nil, key, as.BinMap{"a": 2})).To(gm.Succeed())

			err = client.Commit(ctx, txn)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.TXN_FAILED)).To(gm.BeTrue())
			gm.Expect(txn.State()).To(gm.Equal(as.TxnStateAborted))
			gm.Expect(transport.Rolls()).To(gm.Equal([]bool{false}))
		})

		gg.It("should abort when the verification fails", func() {
			key := newKey("txn", "verify")
			gm.Expect(client.Put(ctx, nil, key, as.BinMap{"a": 1})).To(gm.Succeed())

			txn := as.NewTxn()
			_, err := client.Get(ctx, txnReadPolicy(txn), key)
			gm.Expect(err).ToNot(gm.HaveOccurred())

			transport.FailVerify(&as.AerospikeError{ResultCode: ast.MRT_VERSION_MISMATCH})
			err = client.Commit(ctx, txn)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.TXN_FAILED)).To(gm.BeTrue())
			gm.Expect(err.Matches(ast.MRT_VERSION_MISMATCH)).To(gm.BeTrue())
		})

		gg.It("should report a failed roll forward as in doubt", func() {
			txn := as.NewTxn()
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), newKey("txn", "doubt"), as.BinMap{"a": 1})).To(gm.Succeed())

			transport.FailRoll(&as.AerospikeError{ResultCode: ast.TIMEOUT})
			err := client.Commit(ctx, txn)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.TXN_FAILED)).To(gm.BeTrue())
			gm.Expect(err.IsInDoubt()).To(gm.BeTrue())
		})

		gg.It("should abort the writes", func() {
			txn := as.NewTxn()
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), newKey("txn", "ab"), as.BinMap{"a": 1})).To(gm.Succeed())

			gm.Expect(client.Abort(ctx, txn)).To(gm.Succeed())
			gm.Expect(txn.State()).To(gm.Equal(as.TxnStateAborted))
			gm.Expect(transport.Rolls()).To(gm.Equal([]bool{false}))
		})

		gg.It("should allow a single commit or abort", func() {
			txn := as.NewTxn()
			gm.Expect(client.Commit(ctx, txn)).To(gm.Succeed())

			err := client.Commit(ctx, txn)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.ROLL_ALREADY_ATTEMPTED)).To(gm.BeTrue())

			err = client.Abort(ctx, txn)
			gm.Expect(err.Matches(ast.ROLL_ALREADY_ATTEMPTED)).To(gm.BeTrue())

			txn = as.NewTxn()
			gm.Expect(client.Abort(ctx, txn)).To(gm.Succeed())
			err = client.Commit(ctx, txn)
			gm.Expect(err.Matches(ast.ROLL_ALREADY_ATTEMPTED)).To(gm.BeTrue())
		})

		gg.It("should reject a nil transaction", func() {
			err := client.Commit(ctx, nil)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())

			err = client.Abort(ctx, nil)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())
		})

		gg.It("should not roll on a closed client", func() {
			txn := as.NewTxn()
			gm.Expect(client.Put(ctx, txnWritePolicy(txn), newKey("txn", "closed"), as.BinMap{"a": 1})).To(gm.Succeed())
			gm.Expect(client.Close()).To(gm.Succeed())

			err := client.Commit(ctx, txn)
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.COMMAND_REJECTED)).To(gm.BeTrue())

			err = client.Abort(ctx, txn)
			gm.Expect(err.Matches(ast.COMMAND_REJECTED)).To(gm.BeTrue())

			gm.Expect(txn.State()).To(gm.Equal(as.TxnStateOpen))
			gm.Expect(transport.Rolls()).To(gm.BeEmpty())
		})

		gg.It("should reject commands after the roll", func() {
			txn := as.NewTxn()
			gm.Expect(client.Commit(ctx, txn)).To(gm.Succeed())

			err := client.Put(ctx, txnWritePolicy(txn), newKey("txn", "late"), as.BinMap{"a": 1})
			gm.Expect(err).To(gm.HaveOccurred())
			gm.Expect(err.Matches(ast.PARAMETER_ERROR)).To(gm.BeTrue())
		})
	})
})
