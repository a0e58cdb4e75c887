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
	"sync"
	"time"

	iatomic "github.com/aerospike/aerospike-expressions-go/internal/atomic"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// TxnState is the state of a multi-record transaction.
type TxnState byte

const (
	// TxnStateOpen is the state of a transaction which accepts commands.
	TxnStateOpen TxnState = iota
	// TxnStateVerified means the read versions were verified and the commit
	// is being rolled forward.
	TxnStateVerified
	// TxnStateCommitted is the terminal state of a committed transaction.
	TxnStateCommitted
	// TxnStateAborted is the terminal state of an aborted transaction.
	TxnStateAborted
)

func (s TxnState) String() string {
	switch s {
	case TxnStateOpen:
		return "OPEN"
	case TxnStateVerified:
		return "VERIFIED"
	case TxnStateCommitted:
		return "COMMITTED"
	case TxnStateAborted:
		return "ABORTED"
	}
	return "UNKNOWN"
}

const (
	defaultTxnReadCapacity  = 128
	defaultTxnWriteCapacity = 128
)

// seeded with the clock so ids of different processes rarely collide
var txnIDs = iatomic.NewUint64(uint64(time.Now().UnixNano()))

func nextTxnID() uint64 {
	for {
		if id := txnIDs.IncrementAndGet(); id != 0 {
			return id
		}
	}
}

// Txn is a multi-record transaction. Commands join the transaction by
// setting BasePolicy.Txn. A transaction is finished by Client.Commit or
// Client.Abort; either may be attempted only once.
type Txn struct {
	id uint64

	mutex     sync.Mutex
	reads     map[[DigestSize]byte]uint64
	writes    map[[DigestSize]byte]*Key
	namespace string
	state     TxnState
	timeout   time.Duration
	deadline  time.Time

	rollAttempted bool
}

// NewTxn creates a transaction with the default key capacities.
func NewTxn() *Txn {
	return newTxn(defaultTxnReadCapacity, defaultTxnWriteCapacity)
}

// NewTxnWithCapacity creates a transaction with the given expected number
// of read and written keys. Both capacities must be positive, or both zero
// to use the defaults.
func NewTxnWithCapacity(reads, writes int) (*Txn, Error) {
	if reads == 0 && writes == 0 {
		return NewTxn(), nil
	}
	if reads <= 0 || writes <= 0 {
		return nil, cloneError(ErrTxnCapacityBothOrNeither)
	}
	return newTxn(reads, writes), nil
}

func newTxn(reads, writes int) *Txn {
	return &Txn{
		id:     nextTxnID(),
		reads:  make(map[[DigestSize]byte]uint64, reads),
		writes: make(map[[DigestSize]byte]*Key, writes),
		state:  TxnStateOpen,
	}
}

// Id returns the transaction id.
func (txn *Txn) Id() uint64 {
	return txn.id
}

// State returns the transaction state.
func (txn *Txn) State() TxnState {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()
	return txn.state
}

func (txn *Txn) setState(state TxnState) {
	txn.mutex.Lock()
	txn.state = state
	txn.mutex.Unlock()
}

// Namespace returns the namespace of the transaction, or an empty string
// before the first command.
func (txn *Txn) Namespace() string {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()
	return txn.namespace
}

// Timeout returns the time the transaction may stay open on the server.
// Zero means the server default.
func (txn *Txn) Timeout() time.Duration {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()
	return txn.timeout
}

// SetTimeout sets the time the transaction may stay open on the server
// before it is aborted. Zero means the server default.
func (txn *Txn) SetTimeout(timeout time.Duration) {
	txn.mutex.Lock()
	txn.timeout = timeout
	if timeout > 0 {
		txn.deadline = time.Now().Add(timeout)
	} else {
		txn.deadline = time.Time{}
	}
	txn.mutex.Unlock()
}

// Deadline returns the time the transaction expires, or the zero time.
func (txn *Txn) Deadline() time.Time {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()
	return txn.deadline
}

// prepareCommand registers the namespace of a command that joins the
// transaction. Commands are rejected once a commit or abort was attempted.
func (txn *Txn) prepareCommand(key *Key) Error {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()

	if txn.rollAttempted || txn.state != TxnStateOpen {
		return newErrorf(types.PARAMETER_ERROR, "Transaction %d is not open: %s", txn.id, txn.state)
	}

	if txn.namespace == "" {
		txn.namespace = key.namespace
		return nil
	}
	if txn.namespace != key.namespace {
		return cloneError(ErrTxnNamespaceMismatch)
	}
	return nil
}

// OnRead records the version of a record read in the transaction.
func (txn *Txn) OnRead(key *Key, version uint64) {
	if version == 0 {
		return
	}
	txn.mutex.Lock()
	txn.reads[key.digest] = version
	txn.mutex.Unlock()
}

// ReadVersion returns the version of the record read in the transaction,
// or zero if the record was not read.
func (txn *Txn) ReadVersion(key *Key) uint64 {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()
	return txn.reads[key.digest]
}

// OnWrite records a record written in the transaction. A written record no
// longer needs its read version verified.
func (txn *Txn) OnWrite(key *Key) {
	txn.mutex.Lock()
	delete(txn.reads, key.digest)
	txn.writes[key.digest] = key
	txn.mutex.Unlock()
}

// WriteExistsForKey returns true if the key was written in the transaction.
func (txn *Txn) WriteExistsForKey(key *Key) bool {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()
	_, ok := txn.writes[key.digest]
	return ok
}

// Reads returns the digests and versions of the records read in the transaction.
func (txn *Txn) Reads() map[[DigestSize]byte]uint64 {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()

	res := make(map[[DigestSize]byte]uint64, len(txn.reads))
	for k, v := range txn.reads {
		res[k] = v
	}
	return res
}

// Writes returns the keys of the records written in the transaction.
func (txn *Txn) Writes() []*Key {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()

	res := make([]*Key, 0, len(txn.writes))
	for _, k := range txn.writes {
		res = append(res, k)
	}
	return res
}

// beginRoll marks the start of a commit or abort. Only the first call
// succeeds.
func (txn *Txn) beginRoll() Error {
	txn.mutex.Lock()
	defer txn.mutex.Unlock()

	if txn.rollAttempted {
		return cloneError(ErrRollAlreadyAttempted)
	}
	txn.rollAttempted = true
	return nil
}
