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
	"strings"
	"sync"
	"time"

	iatomic "github.com/aerospike/aerospike-expressions-go/internal/atomic"
	"github.com/aerospike/aerospike-expressions-go/internal/metrics"
	"github.com/aerospike/aerospike-expressions-go/logger"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// Client encapsulates an Aerospike cluster reached through a Transport.
// All database operations are available against this object.
type Client struct {
	transport Transport
	policy    ClientPolicy
	closed    iatomic.Bool

	// DefaultPolicy is used for all read commands without a specific policy.
	DefaultPolicy *BasePolicy
	// DefaultWritePolicy is used for all write commands without a specific policy.
	// Its Expiration replaces TTLClientDefault in single record writes.
	DefaultWritePolicy *WritePolicy
	// DefaultBatchPolicy is used for all batch commands without a specific policy.
	DefaultBatchPolicy *BatchPolicy
	// DefaultBatchReadPolicy is used for batch reads without a policy of their own.
	DefaultBatchReadPolicy *BatchReadPolicy
	// DefaultBatchWritePolicy is used for batch writes without a policy of their own.
	DefaultBatchWritePolicy *BatchWritePolicy
	// DefaultBatchDeletePolicy is used for batch deletes without a policy of their own.
	DefaultBatchDeletePolicy *BatchDeletePolicy
	// DefaultBatchUDFPolicy is used for batch UDF calls without a policy of their own.
	DefaultBatchUDFPolicy *BatchUDFPolicy
	// DefaultScanPolicy is used for all scan commands without a specific policy.
	DefaultScanPolicy *ScanPolicy
	// DefaultQueryPolicy is used for all query commands without a specific policy.
	DefaultQueryPolicy *QueryPolicy
	// DefaultInfoPolicy is used for all info commands without a specific policy.
	DefaultInfoPolicy *InfoPolicy
	// DefaultTxnVerifyPolicy is used to verify transactions on commit.
	DefaultTxnVerifyPolicy *TxnVerifyPolicy
	// DefaultTxnRollPolicy is used to roll transactions forward or back.
	DefaultTxnRollPolicy *TxnRollPolicy
	// DefaultMetricsPolicy is used by EnableMetrics when called without a policy.
	DefaultMetricsPolicy *MetricsPolicy

	commandCount iatomic.Int
	retryCount   iatomic.Int

	metricsMutex sync.Mutex
	metrics      *clientMetrics
}

//-------------------------------------------------------
// Constructors
//-------------------------------------------------------

// NewClient generates a new Client on top of the transport with the default
// client policy.
func NewClient(transport Transport) (*Client, Error) {
	return NewClientWithPolicy(nil, transport)
}

// NewClientWithPolicy generates a new Client on top of the transport.
func NewClientWithPolicy(policy *ClientPolicy, transport Transport) (*Client, Error) {
	if transport == nil {
		return nil, cloneError(ErrNoTransport)
	}
	if policy == nil {
		policy = NewClientPolicy()
	}
	if err := policy.validate(); err != nil {
		return nil, err
	}

	return &Client{
		transport: transport,
		policy:    *policy,

		DefaultPolicy:            NewPolicy(),
		DefaultWritePolicy:       NewWritePolicy(0, 0),
		DefaultBatchPolicy:       NewBatchPolicy(),
		DefaultBatchReadPolicy:   NewBatchReadPolicy(),
		DefaultBatchWritePolicy:  NewBatchWritePolicy(),
		DefaultBatchDeletePolicy: NewBatchDeletePolicy(),
		DefaultBatchUDFPolicy:    NewBatchUDFPolicy(),
		DefaultScanPolicy:        NewScanPolicy(),
		DefaultQueryPolicy:       NewQueryPolicy(),
		DefaultInfoPolicy:        NewInfoPolicy(),
		DefaultTxnVerifyPolicy:   NewTxnVerifyPolicy(),
		DefaultTxnRollPolicy:     NewTxnRollPolicy(),
	}, nil
}

//-------------------------------------------------------
// Cluster Connection Management
//-------------------------------------------------------

// Close stops the metrics and closes the transport.
func (clnt *Client) Close() Error {
	if !clnt.closed.CompareAndToggle(false) {
		return nil
	}
	if err := clnt.DisableMetrics(); err != nil {
		logger.Logger.Warn("Failed to disable metrics on close: %s", err.Error())
	}
	return clnt.transport.Close()
}

// IsClosed returns true once Close was called.
func (clnt *Client) IsClosed() bool {
	return clnt.closed.Get()
}

// GetNodeNames returns the names of the active nodes.
func (clnt *Client) GetNodeNames() []string {
	return clnt.transport.Nodes()
}

// ClientPolicy returns the policy the client was created with.
func (clnt *Client) ClientPolicy() ClientPolicy {
	return clnt.policy
}

func (clnt *Client) getUsablePolicy(policy *BasePolicy) *BasePolicy {
	if policy == nil {
		if clnt.DefaultPolicy != nil {
			return clnt.DefaultPolicy
		}
		return NewPolicy()
	}
	return policy
}

func (clnt *Client) getUsableWritePolicy(policy *WritePolicy) *WritePolicy {
	if policy == nil {
		if clnt.DefaultWritePolicy != nil {
			return clnt.DefaultWritePolicy
		}
		return NewWritePolicy(0, 0)
	}
	return policy
}

func (clnt *Client) getUsableBatchPolicy(policy *BatchPolicy) *BatchPolicy {
	if policy == nil {
		if clnt.DefaultBatchPolicy != nil {
			return clnt.DefaultBatchPolicy
		}
		return NewBatchPolicy()
	}
	return policy
}

func (clnt *Client) getUsableScanPolicy(policy *ScanPolicy) *ScanPolicy {
	if policy == nil {
		if clnt.DefaultScanPolicy != nil {
			return clnt.DefaultScanPolicy
		}
		return NewScanPolicy()
	}
	return policy
}

func (clnt *Client) getUsableQueryPolicy(policy *QueryPolicy) *QueryPolicy {
	if policy == nil {
		if clnt.DefaultQueryPolicy != nil {
			return clnt.DefaultQueryPolicy
		}
		return NewQueryPolicy()
	}
	return policy
}

func (clnt *Client) getUsableInfoPolicy(policy *InfoPolicy) *InfoPolicy {
	if policy == nil {
		if clnt.DefaultInfoPolicy != nil {
			return clnt.DefaultInfoPolicy
		}
		return NewInfoPolicy()
	}
	return policy
}

func (clnt *Client) defaultWriteExpiration() uint32 {
	if clnt.DefaultWritePolicy == nil {
		return TTLServerDefault
	}
	return clnt.DefaultWritePolicy.Expiration
}

//-------------------------------------------------------
// Write Record Operations
//-------------------------------------------------------

// Put writes record bin(s).
// The policy specifies the command timeouts, record expiration and how the command is
// handled when the record already exists.
func (clnt *Client) Put(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error {
	return clnt.putBins(ctx, "Put", policy, key, binMapToBins(bins), _WRITE)
}

// PutBins writes record bin(s).
// The policy specifies the command timeouts, record expiration and how the command is
// handled when the record already exists.
func (clnt *Client) PutBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error {
	return clnt.putBins(ctx, "PutBins", policy, key, bins, _WRITE)
}

//-------------------------------------------------------
// Operations string
//-------------------------------------------------------

// Append appends bin value's string to existing record bin values.
// This call only works for string and []byte values.
func (clnt *Client) Append(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error {
	return clnt.putBins(ctx, "Append", policy, key, binMapToBins(bins), _APPEND)
}

// AppendBins works the same as Append, but avoids BinMap allocation and iteration.
func (clnt *Client) AppendBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error {
	return clnt.putBins(ctx, "AppendBins", policy, key, bins, _APPEND)
}

// Prepend prepends bin value's string to existing record bin values.
// This call works only for string and []byte values.
func (clnt *Client) Prepend(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error {
	return clnt.putBins(ctx, "Prepend", policy, key, binMapToBins(bins), _PREPEND)
}

// PrependBins works the same as Prepend, but avoids BinMap allocation and iteration.
func (clnt *Client) PrependBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error {
	return clnt.putBins(ctx, "PrependBins", policy, key, bins, _PREPEND)
}

//-------------------------------------------------------
// Arithmetic Operations
//-------------------------------------------------------

// Add adds integer bin values to existing record bin values.
// This call only works for integer values.
func (clnt *Client) Add(ctx context.Context, policy *WritePolicy, key *Key, bins BinMap) Error {
	return clnt.putBins(ctx, "Add", policy, key, binMapToBins(bins), _ADD)
}

// AddBins works the same as Add, but avoids BinMap allocation and iteration.
func (clnt *Client) AddBins(ctx context.Context, policy *WritePolicy, key *Key, bins ...*Bin) Error {
	return clnt.putBins(ctx, "AddBins", policy, key, bins, _ADD)
}

func (clnt *Client) putBins(ctx context.Context, method string, policy *WritePolicy, key *Key, bins []*Bin, opType OperationType) (err Error) {
	done := metrics.RecordCall(ctx, method)
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableWritePolicy(policy)
	if err = clnt.prepare(&policy.BasePolicy, key, policy.validate); err != nil {
		return err
	}

	cmd, err := newWriteCommand(policy, key, bins, opType, clnt.defaultWriteExpiration())
	if err != nil {
		return err
	}
	_, err = clnt.execute(ctx, cmd, LatencyWrite)
	return err
}

//-------------------------------------------------------
// Delete Operations
//-------------------------------------------------------

// Delete deletes a record for specified key.
// Returns true if the record existed before the delete.
func (clnt *Client) Delete(ctx context.Context, policy *WritePolicy, key *Key) (existed bool, err Error) {
	done := metrics.RecordCall(ctx, "Delete")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableWritePolicy(policy)
	if err = clnt.prepare(&policy.BasePolicy, key, policy.validate); err != nil {
		return false, err
	}

	cmd, err := newDeleteCommand(policy, key, clnt.defaultWriteExpiration())
	if err != nil {
		return false, err
	}
	if _, err = clnt.execute(ctx, cmd, LatencyWrite); err != nil {
		if err.Matches(types.KEY_NOT_FOUND_ERROR) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

//-------------------------------------------------------
// Touch Operations
//-------------------------------------------------------

// Touch updates a record's metadata.
// If the record exists, the record's TTL will be reset to the
// policy's expiration.
// If the record doesn't exist, it will return an error.
func (clnt *Client) Touch(ctx context.Context, policy *WritePolicy, key *Key) (err Error) {
	done := metrics.RecordCall(ctx, "Touch")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableWritePolicy(policy)
	if err = clnt.prepare(&policy.BasePolicy, key, policy.validate); err != nil {
		return err
	}

	cmd, err := newTouchCommand(policy, key, clnt.defaultWriteExpiration())
	if err != nil {
		return err
	}
	_, err = clnt.execute(ctx, cmd, LatencyWrite)
	return err
}

//-------------------------------------------------------
// Existence-Check Operations
//-------------------------------------------------------

// Exists determine if a record key exists.
// The policy can be used to specify timeouts.
func (clnt *Client) Exists(ctx context.Context, policy *BasePolicy, key *Key) (exists bool, err Error) {
	done := metrics.RecordCall(ctx, "Exists")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsablePolicy(policy)
	if err = clnt.prepare(policy, key, policy.validate); err != nil {
		return false, err
	}

	cmd, err := newExistsCommand(policy, key)
	if err != nil {
		return false, err
	}
	if _, err = clnt.execute(ctx, cmd, LatencyRead); err != nil {
		if err.Matches(types.KEY_NOT_FOUND_ERROR) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

//-------------------------------------------------------
// Read Record Operations
//-------------------------------------------------------

// Get reads a record header and bins for specified key.
// The policy can be used to specify timeouts.
// If the record does not exist, a KEY_NOT_FOUND_ERROR is returned.
func (clnt *Client) Get(ctx context.Context, policy *BasePolicy, key *Key, binNames ...string) (rec *Record, err Error) {
	done := metrics.RecordCall(ctx, "Get")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsablePolicy(policy)
	if err = clnt.prepare(policy, key, policy.validate); err != nil {
		return nil, err
	}
	for _, name := range binNames {
		if err = validateBinName(name); err != nil {
			return nil, err
		}
	}

	cmd, err := newReadCommand(policy, key, binNames)
	if err != nil {
		return nil, err
	}
	return clnt.execute(ctx, cmd, LatencyRead)
}

// GetHeader reads a record generation and expiration only for specified key.
// Bins are not read.
func (clnt *Client) GetHeader(ctx context.Context, policy *BasePolicy, key *Key) (rec *Record, err Error) {
	done := metrics.RecordCall(ctx, "GetHeader")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsablePolicy(policy)
	if err = clnt.prepare(policy, key, policy.validate); err != nil {
		return nil, err
	}

	cmd, err := newReadHeaderCommand(policy, key)
	if err != nil {
		return nil, err
	}
	return clnt.execute(ctx, cmd, LatencyRead)
}

//-------------------------------------------------------
// Generic Database Operations
//-------------------------------------------------------

// Operate performs multiple read/write operations on a single key in one batch call.
// An example would be to add an integer value to an existing record and then
// read the result, all in one database call.
//
// The operations are applied in order, atomically.
func (clnt *Client) Operate(ctx context.Context, policy *WritePolicy, key *Key, operations ...*Operation) (rec *Record, err Error) {
	done := metrics.RecordCall(ctx, "Operate")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableWritePolicy(policy)
	if err = clnt.prepare(&policy.BasePolicy, key, policy.validate); err != nil {
		return nil, err
	}

	cmd, err := newOperateCommand(policy, key, operations, clnt.defaultWriteExpiration())
	if err != nil {
		return nil, err
	}

	latency := LatencyRead
	if cmd.IsWrite() {
		latency = LatencyWrite
	}
	return clnt.execute(ctx, cmd, latency)
}

//---------------------------------------------------------------
// User defined functions
//---------------------------------------------------------------

// Execute executes a user defined function on server and return results.
// The function operates on a single record.
// The package name is used to locate the udf file location:
//
// udf file = <server udf dir>/<package name>.lua
func (clnt *Client) Execute(ctx context.Context, policy *WritePolicy, key *Key, packageName string, functionName string, args ...Value) (res interface{}, err Error) {
	done := metrics.RecordCall(ctx, "Execute")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableWritePolicy(policy)
	if err = clnt.prepare(&policy.BasePolicy, key, policy.validate); err != nil {
		return nil, err
	}

	cmd, err := newUDFCommand(policy, key, packageName, functionName, args, clnt.defaultWriteExpiration())
	if err != nil {
		return nil, err
	}

	record, err := clnt.execute(ctx, cmd, LatencyWrite)
	if err != nil {
		return nil, err
	}
	return udfResult(record)
}

// udfResult extracts the return value of a UDF from the record the server
// sends back.
func udfResult(record *Record) (interface{}, Error) {
	if record == nil || len(record.Bins) == 0 {
		return nil, nil
	}

	// User defined functions don't have to return a value.
	if exists, obj := mapContainsKeyPartial(record.Bins, "SUCCESS"); exists {
		return obj, nil
	}

	if _, obj := mapContainsKeyPartial(record.Bins, "FAILURE"); obj != nil {
		return nil, newErrorf(types.UDF_BAD_RESPONSE, "%v", obj)
	}

	return nil, cloneError(ErrUDFBadResponse)
}

func mapContainsKeyPartial(theMap map[string]interface{}, key string) (bool, interface{}) {
	for k, v := range theMap {
		if strings.Contains(k, key) {
			return true, v
		}
	}
	return false, nil
}

//-------------------------------------------------------
// Scan and Query Operations
//-------------------------------------------------------

// ScanAll reads all records in specified namespace and set from all nodes.
// If the policy's MaxConcurrentNodes is specified, each server node will be
// read in parallel up to that limit. Otherwise, all server nodes are read in
// parallel. The records are returned in node order.
func (clnt *Client) ScanAll(ctx context.Context, policy *ScanPolicy, namespace string, setName string, binNames ...string) (recs []*Record, err Error) {
	done := metrics.RecordCall(ctx, "ScanAll")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableScanPolicy(policy)
	if err = policy.validate(); err != nil {
		return nil, err
	}

	cmd := &ScanCommand{
		Namespace:   namespace,
		SetName:     setName,
		BinNames:    binNames,
		Policy:      &policy.MultiPolicy,
		ScanPercent: policy.ScanPercent,
	}
	return clnt.scanNodes(ctx, cmd)
}

// Query reads the records of the namespace and set which pass the filter
// expression of the policy from all nodes.
func (clnt *Client) Query(ctx context.Context, policy *QueryPolicy, namespace string, setName string, binNames ...string) (recs []*Record, err Error) {
	done := metrics.RecordCall(ctx, "Query")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableQueryPolicy(policy)
	if err = policy.MultiPolicy.validate(); err != nil {
		return nil, err
	}

	cmd := &ScanCommand{
		Namespace:  namespace,
		SetName:    setName,
		BinNames:   binNames,
		Policy:     &policy.MultiPolicy,
		IsQuery:    true,
		ShortQuery: policy.ShortQuery,
	}
	return clnt.scanNodes(ctx, cmd)
}

//-------------------------------------------------------
// Info
//-------------------------------------------------------

// Info sends info commands to the node. If node is empty, the first active
// node is used.
func (clnt *Client) Info(ctx context.Context, policy *InfoPolicy, node string, commands ...string) (res map[string]string, err Error) {
	done := metrics.RecordCall(ctx, "Info")
	defer func() { done(asError(err)) }()

	policy = clnt.getUsableInfoPolicy(policy)
	if err = policy.validate(); err != nil {
		return nil, err
	}
	if clnt.closed.Get() {
		return nil, cloneError(ErrClientClosed)
	}

	if node == "" {
		nodes := clnt.transport.Nodes()
		if len(nodes) == 0 {
			return nil, newError(types.INVALID_NODE_ERROR, "Cluster is empty")
		}
		node = nodes[0]
	}

	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	res, err = clnt.transport.Info(ctx, node, commands...)
	if err != nil {
		return nil, err.setNode(node)
	}
	return res, nil
}

//-------------------------------------------------------
// Transactions
//-------------------------------------------------------

// Commit verifies the reads of the transaction and commits its writes.
// If the verification fails, the transaction is aborted and TXN_FAILED is
// returned. A transaction can be committed or aborted only once; further
// attempts fail with ROLL_ALREADY_ATTEMPTED.
func (clnt *Client) Commit(ctx context.Context, txn *Txn) (err Error) {
	done := metrics.RecordCall(ctx, "Commit")
	defer func() { done(asError(err)) }()

	if err = clnt.prepareRoll(txn); err != nil {
		return err
	}
	if err = txn.beginRoll(); err != nil {
		return err
	}

	if len(txn.Reads()) > 0 {
		if verr := clnt.transport.TxnVerify(ctx, clnt.DefaultTxnVerifyPolicy, txn); verr != nil {
			logger.Logger.Warn("Transaction %d verification failed, aborting: %s", txn.Id(), verr.Error())
			if rerr := clnt.transport.TxnRoll(ctx, clnt.DefaultTxnRollPolicy, txn, false); rerr != nil {
				logger.Logger.Warn("Transaction %d abort after failed verification failed: %s", txn.Id(), rerr.Error())
			}
			txn.setState(TxnStateAborted)
			return newErrorf(types.TXN_FAILED, "Transaction %d verification failed. Transaction aborted", txn.Id()).wrap(verr)
		}
	}
	txn.setState(TxnStateVerified)

	if len(txn.Writes()) > 0 {
		if rerr := clnt.transport.TxnRoll(ctx, clnt.DefaultTxnRollPolicy, txn, true); rerr != nil {
			// the server completes a verified commit on its own
			return newErrorf(types.TXN_FAILED, "Transaction %d was verified but the roll forward failed", txn.Id()).
				wrap(rerr).markInDoubt(true)
		}
	}
	txn.setState(TxnStateCommitted)
	logger.Logger.Debug("Transaction %d committed", txn.Id())
	return nil
}

// Abort rolls back the writes of the transaction. A transaction can be
// committed or aborted only once; further attempts fail with
// ROLL_ALREADY_ATTEMPTED.
func (clnt *Client) Abort(ctx context.Context, txn *Txn) (err Error) {
	done := metrics.RecordCall(ctx, "Abort")
	defer func() { done(asError(err)) }()

	if err = clnt.prepareRoll(txn); err != nil {
		return err
	}
	if err = txn.beginRoll(); err != nil {
		return err
	}

	defer txn.setState(TxnStateAborted)
	if len(txn.Writes()) == 0 {
		return nil
	}
	if err = clnt.transport.TxnRoll(ctx, clnt.DefaultTxnRollPolicy, txn, false); err != nil {
		return err
	}
	logger.Logger.Debug("Transaction %d aborted", txn.Id())
	return nil
}

func (clnt *Client) prepareRoll(txn *Txn) Error {
	if clnt.closed.Get() {
		return cloneError(ErrClientClosed)
	}
	if txn == nil {
		return newError(types.PARAMETER_ERROR, "Transaction cannot be nil")
	}
	return nil
}

//-------------------------------------------------------
// Command execution
//-------------------------------------------------------

// prepare validates the arguments of a single record command.
func (clnt *Client) prepare(policy *BasePolicy, key *Key, validate func() Error) Error {
	if clnt.closed.Get() {
		return cloneError(ErrClientClosed)
	}
	if key == nil {
		return newError(types.PARAMETER_ERROR, "Key cannot be nil")
	}
	if err := validate(); err != nil {
		return err
	}
	if policy.Txn != nil {
		return policy.Txn.prepareCommand(key)
	}
	return nil
}

// execute sends the command, retrying retryable failures as the policy
// allows.
func (clnt *Client) execute(ctx context.Context, cmd *Command, latencyType LatencyType) (*Record, Error) {
	policy := cmd.Policy
	isRead := !cmd.IsWrite()

	if policy.TotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.TotalTimeout)
		defer cancel()
	}

	sleep := policy.SleepBetweenRetries
	sent := false

	var lastErr Error
	for iteration := 1; ; iteration++ {
		cmd.Iteration = iteration

		node, err := clnt.transport.NodeFor(cmd.Key, !isRead)
		if err == nil {
			cmd.Node = node
			clnt.commandCount.IncrementAndGet()

			begin := time.Now()
			var rec *Record
			rec, err = clnt.transport.Execute(ctx, cmd)
			sent = true
			clnt.recordLatency(node, latencyType, time.Since(begin), err)

			if err == nil {
				clnt.onTxnCommand(cmd, rec)
				return rec, nil
			}
			err = err.setNode(node)
		}
		lastErr = err.iter(iteration)

		if !err.resultCode().IsRetryable() || iteration > policy.MaxRetries {
			break
		}
		if ctx.Err() != nil {
			break
		}

		clnt.retryCount.IncrementAndGet()
		logger.Logger.Debug("Retrying %s command for key %s after: %s", cmd.Kind, cmd.Key, err.Error())

		if !sleepWithContext(ctx, sleep) {
			break
		}
		if policy.SleepMultiplier > 1 {
			sleep = time.Duration(float64(sleep) * policy.SleepMultiplier)
		}
	}

	if ctx.Err() != nil && !lastErr.Matches(types.TIMEOUT) {
		lastErr = chainErrors(cloneError(ErrTimeout).iter(cmd.Iteration), lastErr)
	}
	return nil, lastErr.setInDoubt(isRead, sent)
}

// sleepWithContext waits for the duration unless the context is done first.
// It returns false if the context is done.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// onTxnCommand tracks the records a transaction touched.
func (clnt *Client) onTxnCommand(cmd *Command, rec *Record) {
	if cmd.Txn == nil {
		return
	}
	if cmd.IsWrite() {
		cmd.Txn.OnWrite(cmd.Key)
	} else if rec != nil {
		cmd.Txn.OnRead(cmd.Key, rec.Version)
	}
}

// asError converts a nil Error to a nil error.
func asError(err Error) error {
	if err == nil {
		return nil
	}
	return err
}
