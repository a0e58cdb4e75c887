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
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	iatomic "github.com/aerospike/aerospike-expressions-go/internal/atomic"
	"github.com/aerospike/aerospike-expressions-go/internal/metrics"
	"github.com/aerospike/aerospike-expressions-go/logger"
	"github.com/aerospike/aerospike-expressions-go/types"
)

//-------------------------------------------------------
// Batch Read Operations
//-------------------------------------------------------

// BatchOperate will read/write multiple records for specified batch keys in one batch call.
// This method allows different namespaces/bins for each key in the batch.
// The returned records are located in the same list.
//
// BatchRecord can be *BatchRead, *BatchWrite, *BatchDelete or *BatchUDF.
//
// The results are written into the records in place. Failures of single
// records or nodes do not fail the call; they are reported through each
// record's ResultCode and through records.Result().
//
// Requires server version 6.0+
func (clnt *Client) BatchOperate(ctx context.Context, policy *BatchPolicy, records *BatchRecords) (err Error) {
	done := metrics.RecordCall(ctx, "BatchOperate")
	defer func() { done(asError(err)) }()

	if records == nil {
		return newError(types.PARAMETER_ERROR, "Batch records cannot be nil")
	}
	metrics.RecordBatchKeys(ctx, "BatchOperate", records.Len())

	return clnt.batchOperate(ctx, policy, records)
}

// BatchGet reads multiple record headers and bins for specified keys in one batch request.
// The returned records are in positional order with the original key array order.
// If a key is not found, the positional record will be nil.
// The policy can be used to specify timeouts.
// If the policy has AllowPartialResults set to false, any record error is
// returned as the error of the call.
func (clnt *Client) BatchGet(ctx context.Context, policy *BatchPolicy, keys []*Key, binNames ...string) (recs []*Record, err Error) {
	done := metrics.RecordCall(ctx, "BatchGet")
	defer func() { done(asError(err)) }()
	metrics.RecordBatchKeys(ctx, "BatchGet", len(keys))

	records := NewBatchRecords()
	for _, key := range keys {
		records.Add(NewBatchRead(nil, key, binNames))
	}
	return clnt.batchRecords(ctx, policy, records)
}

// BatchGetOperate reads multiple records for specified keys using read operations in one batch call.
// The returned records are in positional order with the original key array order.
// If a key is not found, the positional record will be nil.
func (clnt *Client) BatchGetOperate(ctx context.Context, policy *BatchPolicy, keys []*Key, ops ...*Operation) (recs []*Record, err Error) {
	done := metrics.RecordCall(ctx, "BatchGetOperate")
	defer func() { done(asError(err)) }()
	metrics.RecordBatchKeys(ctx, "BatchGetOperate", len(keys))

	records := NewBatchRecords()
	for _, key := range keys {
		records.Add(NewBatchReadOps(nil, key, ops...))
	}
	return clnt.batchRecords(ctx, policy, records)
}

// BatchGetHeader reads multiple record header data for specified keys in one batch request.
// The returned records are in positional order with the original key array order.
// If a key is not found, the positional record will be nil.
func (clnt *Client) BatchGetHeader(ctx context.Context, policy *BatchPolicy, keys []*Key) (recs []*Record, err Error) {
	done := metrics.RecordCall(ctx, "BatchGetHeader")
	defer func() { done(asError(err)) }()
	metrics.RecordBatchKeys(ctx, "BatchGetHeader", len(keys))

	records := NewBatchRecords()
	for _, key := range keys {
		records.Add(NewBatchReadHeader(nil, key))
	}
	return clnt.batchRecords(ctx, policy, records)
}

// BatchExists determines if multiple record keys exist in one batch request.
// The returned boolean array is in positional order with the original key array order.
func (clnt *Client) BatchExists(ctx context.Context, policy *BatchPolicy, keys []*Key) (res []bool, err Error) {
	done := metrics.RecordCall(ctx, "BatchExists")
	defer func() { done(asError(err)) }()
	metrics.RecordBatchKeys(ctx, "BatchExists", len(keys))

	records := NewBatchRecords()
	for _, key := range keys {
		records.Add(NewBatchReadHeader(nil, key))
	}

	policy = clnt.getUsableBatchPolicy(policy)
	if err = clnt.batchOperate(ctx, policy, records); err != nil {
		return nil, err
	}

	res = make([]bool, records.Len())
	for i, r := range records.Records() {
		res[i] = r.resultCode() == types.OK
	}
	if !policy.AllowPartialResults {
		err = records.Err()
	}
	return res, err
}

//-------------------------------------------------------
// Batch Write Operations
//-------------------------------------------------------

// BatchDelete deletes records for specified keys. If a key is not found, the
// corresponding result ResultCode will be types.KEY_NOT_FOUND_ERROR.
//
// Requires server version 6.0+
func (clnt *Client) BatchDelete(ctx context.Context, policy *BatchPolicy, deletePolicy *BatchDeletePolicy, keys []*Key) (res *BatchRecords, err Error) {
	done := metrics.RecordCall(ctx, "BatchDelete")
	defer func() { done(asError(err)) }()
	metrics.RecordBatchKeys(ctx, "BatchDelete", len(keys))

	records := NewBatchRecords()
	for _, key := range keys {
		records.Add(NewBatchDelete(deletePolicy, key))
	}
	if err = clnt.batchOperate(ctx, policy, records); err != nil {
		return nil, err
	}
	return records, nil
}

// BatchExecute will read/write multiple records for specified batch keys in one batch call.
// This method allows different namespaces/bins for each key in the batch.
// The returned records are located in the same list.
//
// Requires server version 6.0+
func (clnt *Client) BatchExecute(ctx context.Context, policy *BatchPolicy, udfPolicy *BatchUDFPolicy, keys []*Key, packageName string, functionName string, args ...Value) (res *BatchRecords, err Error) {
	done := metrics.RecordCall(ctx, "BatchExecute")
	defer func() { done(asError(err)) }()
	metrics.RecordBatchKeys(ctx, "BatchExecute", len(keys))

	records := NewBatchRecords()
	for _, key := range keys {
		records.Add(NewBatchUDF(udfPolicy, key, packageName, functionName, args...))
	}
	if err = clnt.batchOperate(ctx, policy, records); err != nil {
		return nil, err
	}
	return records, nil
}

//-------------------------------------------------------
// Batch execution
//-------------------------------------------------------

// batchRecords runs the records and returns the record of each one in
// positional order.
func (clnt *Client) batchRecords(ctx context.Context, policy *BatchPolicy, records *BatchRecords) ([]*Record, Error) {
	policy = clnt.getUsableBatchPolicy(policy)
	if err := clnt.batchOperate(ctx, policy, records); err != nil {
		return nil, err
	}

	res := make([]*Record, records.Len())
	for i, r := range records.Records() {
		res[i] = r.BatchRec().Record
	}
	if !policy.AllowPartialResults {
		return res, records.Err()
	}
	return res, nil
}

// batchDefaults resolves the policies of the records which do not carry
// their own: the batch policy defaults first, then the client's.
func (clnt *Client) batchDefaults(policy *BatchPolicy) *batchDefaults {
	res := &batchDefaults{
		read:   policy.DefaultReadPolicy,
		write:  policy.DefaultWritePolicy,
		delete: policy.DefaultDeletePolicy,
		udf:    policy.DefaultUDFPolicy,
	}

	if res.read == nil {
		res.read = clnt.DefaultBatchReadPolicy
		if res.read == nil {
			res.read = NewBatchReadPolicy()
		}
	}
	if res.write == nil {
		res.write = clnt.DefaultBatchWritePolicy
		if res.write == nil {
			res.write = NewBatchWritePolicy()
		}
	}
	if res.delete == nil {
		res.delete = clnt.DefaultBatchDeletePolicy
		if res.delete == nil {
			res.delete = NewBatchDeletePolicy()
		}
	}
	if res.udf == nil {
		res.udf = clnt.DefaultBatchUDFPolicy
		if res.udf == nil {
			res.udf = NewBatchUDFPolicy()
		}
	}

	if clnt.DefaultBatchWritePolicy != nil {
		res.writeExpiration = clnt.DefaultBatchWritePolicy.Expiration
	}
	if clnt.DefaultBatchUDFPolicy != nil {
		res.udfExpiration = clnt.DefaultBatchUDFPolicy.Expiration
	}
	return res
}

func (clnt *Client) batchOperate(ctx context.Context, policy *BatchPolicy, records *BatchRecords) Error {
	if clnt.closed.Get() {
		return cloneError(ErrClientClosed)
	}

	policy = clnt.getUsableBatchPolicy(policy)
	if err := policy.validate(); err != nil {
		return err
	}
	if err := records.validate(); err != nil {
		return err
	}

	records.prepare()

	defaults := clnt.batchDefaults(policy)
	list := records.Records()
	cmds := make([]*BatchCommand, len(list))
	for i, rec := range list {
		if policy.Txn != nil {
			if err := policy.Txn.prepareCommand(rec.key()); err != nil {
				return err
			}
		}

		cmd, err := newBatchCommand(i, rec, defaults, policy)
		if err != nil {
			return err
		}
		cmds[i] = cmd
	}

	batchNodes, err := newBatchNodeList(clnt.transport, list)
	if err != nil {
		return err
	}

	if policy.TotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.TotalTimeout)
		defer cancel()
	}

	var sem *semaphore.Weighted
	if policy.ConcurrentNodes > 0 {
		sem = semaphore.NewWeighted(int64(policy.ConcurrentNodes))
	}

	// set once a node fails and RespondAllKeys is false
	var stop iatomic.Bool

	var g errgroup.Group
	for _, bn := range batchNodes {
		nodeCmds := make([]*BatchCommand, 0, len(bn.offsets))
		for _, offset := range bn.offsets {
			cmd := cmds[offset]
			cmd.node = bn.Node
			nodeCmds = append(nodeCmds, cmd)
		}

		if sem != nil {
			if err := sem.Acquire(ctx, 1); err != nil {
				abortBatchCommands(nodeCmds, chainErrors(cloneError(ErrTimeout), newCommonError(err)))
				continue
			}
		}

		node := bn.Node
		g.Go(func() error {
			if sem != nil {
				defer sem.Release(1)
			}

			if stop.Get() {
				abortBatchCommands(nodeCmds, newErrorf(types.BATCH_FAILED, "Batch to node %s skipped after a previous node failed", node))
				return nil
			}

			if err := clnt.executeBatchNode(ctx, policy, node, nodeCmds); err != nil {
				logger.Logger.Debug("Batch to node %s failed: %s", node, err.Error())
				if !policy.RespondAllKeys {
					stop.Set(true)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if policy.Txn != nil {
		for _, cmd := range cmds {
			clnt.onTxnBatchCommand(policy.Txn, cmd)
		}
	}
	return nil
}

// executeBatchNode sends the commands of one node, retrying the records the
// node did not answer for as the policy allows.
func (clnt *Client) executeBatchNode(ctx context.Context, policy *BatchPolicy, node string, cmds []*BatchCommand) Error {
	sleep := policy.SleepBetweenRetries
	pending := cmds

	var lastErr Error
	for iteration := 1; ; iteration++ {
		clnt.commandCount.IncrementAndGet()

		begin := time.Now()
		err := clnt.transport.BatchExecute(ctx, node, pending)
		clnt.recordLatency(node, LatencyBatch, time.Since(begin), err)
		if err == nil {
			return nil
		}
		lastErr = err.setNode(node).iter(iteration)

		if !err.resultCode().IsRetryable() || iteration > policy.MaxRetries || ctx.Err() != nil {
			break
		}

		// sent writes are not retried
		retry := make([]*BatchCommand, 0, len(pending))
		for _, cmd := range pending {
			if cmd.ResultCode() != types.NO_RESPONSE {
				continue
			}
			if cmd.IsWrite() && cmd.sent {
				cmd.setNodeError(lastErr)
				continue
			}
			retry = append(retry, cmd)
		}
		if len(retry) == 0 {
			return lastErr
		}
		pending = retry

		clnt.retryCount.IncrementAndGet()
		logger.Logger.Debug("Retrying batch of %d records on node %s after: %s", len(pending), node, err.Error())

		if !sleepWithContext(ctx, sleep) {
			break
		}
		if policy.SleepMultiplier > 1 {
			sleep = time.Duration(float64(sleep) * policy.SleepMultiplier)
		}
	}

	if ctx.Err() != nil && !lastErr.Matches(types.TIMEOUT) {
		lastErr = chainErrors(cloneError(ErrTimeout), lastErr)
	}
	abortBatchCommands(pending, lastErr)
	return lastErr
}

// abortBatchCommands marks the commands without a result with the error.
func abortBatchCommands(cmds []*BatchCommand, err Error) {
	for _, cmd := range cmds {
		cmd.setNodeError(err)
	}
}

// onTxnBatchCommand tracks the records of a batch a transaction touched.
func (clnt *Client) onTxnBatchCommand(txn *Txn, cmd *BatchCommand) {
	br := cmd.record.BatchRec()
	if cmd.IsWrite() {
		if br.ResultCode == types.OK || br.InDoubt {
			txn.OnWrite(cmd.Key)
		}
		return
	}
	if br.ResultCode == types.OK && br.Record != nil {
		txn.OnRead(cmd.Key, br.Record.Version)
	}
}
