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
	"time"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// ReadModeAP is the read policy in AP (availability) mode namespaces.
// It indicates how duplicates should be consulted in a read operation.
// Only makes a difference during migrations and only applicable in AP mode.
type ReadModeAP int

const (
	// ReadModeAPOne indicates that a single node should be involved in the read operation.
	ReadModeAPOne ReadModeAP = iota

	// ReadModeAPAll indicates that all duplicates should be consulted in
	// the read operation.
	ReadModeAPAll
)

// ReadModeSC is the read policy in SC (strong consistency) mode namespaces.
// Determines SC read consistency options.
type ReadModeSC int

const (
	// ReadModeSCSession ensures this client will only see an increasing sequence of record versions.
	// Server only reads from master.  This is the default.
	ReadModeSCSession ReadModeSC = iota

	// ReadModeSCLinearize ensures ALL clients will only see an increasing sequence of record versions.
	// Server only reads from master.
	ReadModeSCLinearize

	// ReadModeSCAllowReplica indicates that the server may read from master or any full (non-migrating) replica.
	// Increasing sequence of record versions is not guaranteed.
	ReadModeSCAllowReplica

	// ReadModeSCAllowUnavailable indicates that the server may read from master or any full (non-migrating) replica or from unavailable
	// partitions.  Increasing sequence of record versions is not guaranteed.
	ReadModeSCAllowUnavailable
)

// ReplicaPolicy defines type of node partition targeted by read commands.
type ReplicaPolicy int

const (
	// MASTER reads from node containing key's master partition.
	// This is the default behavior.
	MASTER ReplicaPolicy = iota

	// MASTER_PROLES Distributes reads across nodes containing key's master and replicated partitions
	// in round-robin fashion.
	MASTER_PROLES

	// RANDOM Distribute reads across all nodes in cluster in round-robin fashion.
	RANDOM

	// SEQUENCE Always try node containing master partition first. If connection fails and
	// retryOnTimeout is true, try node containing prole partition.
	SEQUENCE

	// PREFER_RACK Try node on the same rack as the client first.  If there are no nodes on the
	// same rack, use SEQUENCE instead.
	PREFER_RACK
)

// CommitLevel indicates the desired consistency guarantee when committing a command on the server.
type CommitLevel int

const (
	// COMMIT_ALL indicates the server should wait until successfully committing master and all replicas.
	COMMIT_ALL CommitLevel = iota

	// COMMIT_MASTER indicates the server should wait until successfully committing master only.
	COMMIT_MASTER
)

// GenerationPolicy determines how to handle record writes based on record generation.
type GenerationPolicy int

const (
	// NONE means: Do not use record generation to restrict writes.
	NONE GenerationPolicy = iota

	// EXPECT_GEN_EQUAL means: Update/Delete record if expected generation is equal to server generation. Otherwise, fail.
	EXPECT_GEN_EQUAL

	// EXPECT_GEN_GT means: Update/Delete record if expected generation greater than the server generation. Otherwise, fail.
	// This is useful for restore after backup.
	EXPECT_GEN_GT
)

// Policy Interface
type Policy interface {
	// GetBasePolicy returns the base policy of the command.
	GetBasePolicy() *BasePolicy
}

// BasePolicy encapsulates parameters for command policy attributes
// used in all database operation calls.
type BasePolicy struct {
	// Txn is the multi-record transaction the command belongs to.
	// Default: nil
	Txn *Txn

	// FilterExpression is the optional Filter Expression. Supported on Server v5.2+
	FilterExpression *Expression

	// ReadModeAP indicates read policy for AP (availability) namespaces.
	ReadModeAP ReadModeAP //= ONE

	// ReadModeSC indicates read policy for SC (strong consistency) namespaces.
	ReadModeSC ReadModeSC //= SESSION;

	// TotalTimeout specifies total command timeout.
	//
	// The TotalTimeout is tracked on the client and also sent to the server along
	// with the command in the wire protocol. The client will most likely
	// timeout first, but the server has the capability to Timeout the command.
	//
	// If TotalTimeout is not zero and TotalTimeout is reached before the command
	// completes, the command will abort with TotalTimeout error.
	//
	// If TotalTimeout is zero, there will be no time limit.
	//
	// Default for everything but scan/query: 1000ms
	TotalTimeout time.Duration

	// SocketTimeout determines network timeout for each attempt.
	//
	// If SocketTimeout is not zero and SocketTimeout is reached before an attempt completes,
	// the Timeout above is checked. If Timeout is not exceeded, the command
	// is retried. If both SocketTimeout and TotalTimeout are non-zero, SocketTimeout must be less
	// than or equal to TotalTimeout, otherwise TotalTimeout will also be used for SocketTimeout.
	//
	// Default: 30s
	SocketTimeout time.Duration

	// MaxRetries determines the maximum number of retries before aborting the current command.
	// The initial attempt is not counted as a retry.
	//
	// If MaxRetries is exceeded, the command will return the last error.
	//
	// WARNING: Database writes that are not idempotent (such as AddOp)
	// should not be retried because the write operation may be performed
	// multiple times if the client timed out previous command attempts.
	// It's important to use a distinct WritePolicy for non-idempotent
	// writes which sets maxRetries = 0;
	//
	// Default for read: 2 (initial attempt + 2 retries = 3 attempts)
	//
	// Default for write: 0 (no retries)
	MaxRetries int //= 2;

	// SleepBetweenRetries determines the duration to sleep between retries.  Enter zero to skip sleep.
	// This field is ignored when maxRetries is zero.
	// This field is also ignored in async mode.
	//
	// The sleep only occurs on connection errors and server timeouts
	// which suggest a node is down and the cluster is reforming.
	// The sleep does not occur when the client's socketTimeout expires.
	//
	// Reads do not have to sleep when a node goes down because the cluster
	// does not shut out reads during cluster reformation.  The default for
	// reads is zero.
	//
	// Default for writes: 1ms
	SleepBetweenRetries time.Duration

	// SleepMultiplier specifies the multiplying factor to be used for exponential backoff during retries.
	// Default to (1.0); Only values greater than 1 are valid.
	SleepMultiplier float64 //= 1.0;

	// ExitFastOnExhaustedConnectionPool determines if a command that tries to get a
	// connection from the connection pool will wait and retry in case the pool is
	// exhausted until a connection becomes available (or the TotalTimeout is reached).
	// If set to true, an error will be return immediately.
	// If set to false, getting a connection will be retried.
	// This only applies if LimitConnectionsToQueueSize is set to true and the number of open connections to a node has reached ConnectionQueueSize.
	// The default is false
	ExitFastOnExhaustedConnectionPool bool // false

	// SendKey determines to whether send user defined key in addition to hash digest on both reads and writes.
	// If the key is sent on a write, the key will be stored with the record on
	// the server.
	// The default is to not send the user defined key.
	SendKey bool // = false

	// UseCompression uses zlib compression on command buffers sent to the server and responses received
	// from the server when the buffer size is greater than 128 bytes.
	//
	// This option will increase cpu and memory usage (for extra compressed buffers),but
	// decrease the size of data sent over the network.
	//
	// Default: false
	UseCompression bool // = false

	// ReplicaPolicy specifies the algorithm used to determine the target node for a partition derived from a key
	// or requested in a scan/query.
	// Write commands are not affected by this setting, because all writes go to the partition's master.
	ReplicaPolicy ReplicaPolicy //= MASTER

	// ReadTouchTTLPercent determines how record TTL (time to live) is affected on reads. When enabled, the server can
	// efficiently operate as a read-based LRU cache where the least recently used records are expired.
	// The value is expressed as a percentage of the TTL sent on the most recent write such that a read
	// within this interval of the record’s end of life will generate a touch.
	//
	// For example, if the most recent write had a TTL of 10 hours and ReadTouchTTLPercent is set to
	// 80, the next read within 8 hours of the record's end of life (equivalent to 2 hours after the most
	// recent write) will result in a touch, resetting the TTL to another 10 hours.
	//
	// Values:
	//
	// 0 : Use server config default-read-touch-ttl-pct for the record's namespace/set.
	// 1 - 100 : Reset record TTL on reads when within this percentage of the most recent write TTL.
	// Default: 0
	ReadTouchTTLPercent int32
}

var _ Policy = &BasePolicy{}

// NewPolicy generates a new BasePolicy instance with default values.
func NewPolicy() *BasePolicy {
	return &BasePolicy{
		ReadModeAP:          ReadModeAPOne,
		ReadModeSC:          ReadModeSCSession,
		TotalTimeout:        1000 * time.Millisecond,
		SocketTimeout:       30 * time.Second,
		MaxRetries:          2,
		SleepBetweenRetries: 1 * time.Millisecond,
		SleepMultiplier:     1.0,
		ReplicaPolicy:       SEQUENCE,
	}
}

// GetBasePolicy returns embedded BasePolicy in all types that embed this struct.
func (p *BasePolicy) GetBasePolicy() *BasePolicy { return p }

// socketTimeout validates and then calculates the timeout to be used for the socket
// based on Timeout and SocketTimeout values.
func (p *BasePolicy) socketTimeout() time.Duration {
	if p.TotalTimeout == 0 && p.SocketTimeout == 0 {
		return 0
	} else if p.TotalTimeout > 0 && p.SocketTimeout == 0 {
		return p.TotalTimeout
	} else if p.TotalTimeout == 0 && p.SocketTimeout > 0 {
		return p.SocketTimeout
	} else if p.TotalTimeout > 0 && p.SocketTimeout > 0 {
		if p.SocketTimeout < p.TotalTimeout {
			return p.SocketTimeout
		}
	}
	return p.TotalTimeout
}

func (p *BasePolicy) validate() Error {
	if p.TotalTimeout < 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid TotalTimeout: %v", p.TotalTimeout)
	}
	if p.SocketTimeout < 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid SocketTimeout: %v", p.SocketTimeout)
	}
	if p.MaxRetries < 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid MaxRetries: %d", p.MaxRetries)
	}
	if p.SleepBetweenRetries < 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid SleepBetweenRetries: %v", p.SleepBetweenRetries)
	}
	if p.SleepMultiplier != 0 && p.SleepMultiplier < 1 {
		return newErrorf(types.PARAMETER_ERROR, "invalid SleepMultiplier: %v", p.SleepMultiplier)
	}
	if err := validateReadTouchTTLPercent(p.ReadTouchTTLPercent); err != nil {
		return err
	}
	if p.FilterExpression != nil && p.FilterExpression.err != nil {
		return p.FilterExpression.err
	}
	return nil
}

func validateReadTouchTTLPercent(v int32) Error {
	if v < 0 || v > 100 {
		return newErrorf(types.PARAMETER_ERROR, "invalid ReadTouchTTLPercent: %d, must be in [0, 100]", v)
	}
	return nil
}

// validateFilter surfaces a construction error of the filter expression.
func validateFilter(exp *Expression) Error {
	if exp != nil && exp.err != nil {
		return exp.err
	}
	return nil
}

func validateReadModes(ap ReadModeAP, sc ReadModeSC) Error {
	if ap < ReadModeAPOne || ap > ReadModeAPAll {
		return newErrorf(types.PARAMETER_ERROR, "invalid ReadModeAP: %d", ap)
	}
	if sc < ReadModeSCSession || sc > ReadModeSCAllowUnavailable {
		return newErrorf(types.PARAMETER_ERROR, "invalid ReadModeSC: %d", sc)
	}
	return nil
}

func validateWriteModes(commitLevel CommitLevel, generationPolicy GenerationPolicy) Error {
	if commitLevel < COMMIT_ALL || commitLevel > COMMIT_MASTER {
		return newErrorf(types.PARAMETER_ERROR, "invalid CommitLevel: %d", commitLevel)
	}
	if generationPolicy < NONE || generationPolicy > EXPECT_GEN_GT {
		return newErrorf(types.PARAMETER_ERROR, "invalid GenerationPolicy: %d", generationPolicy)
	}
	return nil
}

// InfoPolicy contains attributes used for info commands.
type InfoPolicy struct {
	// Info command socket timeout.
	// Default is 2 seconds.
	Timeout time.Duration
}

// NewInfoPolicy generates a new InfoPolicy with default values.
func NewInfoPolicy() *InfoPolicy {
	return &InfoPolicy{
		Timeout: 2 * time.Second,
	}
}

func (p *InfoPolicy) validate() Error {
	if p.Timeout < 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid info Timeout: %v", p.Timeout)
	}
	return nil
}
