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
	"github.com/aerospike/aerospike-expressions-go/types"
)

// BatchPolicy encapsulates parameters for policy attributes used in batch commands.
// The per record policies of a batch take precedence over the defaults set here,
// which in turn take precedence over the client's default batch policies.
type BatchPolicy struct {
	BasePolicy

	// Maximum number of concurrent batch request goroutines to server nodes at any point in time.
	// If there are 16 node/namespace combinations requested and ConcurrentNodes is 8,
	// then batch requests will be made for 8 node/namespace combinations in concurrent goroutines.
	// When a request completes, a new request will be issued until all 16 goroutines are complete.
	//
	// Values:
	// 1: Issue batch requests sequentially.  This mode has a performance advantage for small
	// to medium sized batch sizes because requests can be issued in the main command goroutine.
	// This is the default.
	// 0: Issue all batch requests in concurrent goroutines.  This mode has a performance
	// advantage for extremely large batch sizes because each node can process the request
	// immediately.  The downside is extra goroutines will need to be created (or taken from
	// a goroutine pool).
	// > 0: Issue up to ConcurrentNodes batch requests in concurrent goroutines.  When a request
	// completes, a new request will be issued until all goroutines are complete.  This mode
	// prevents too many concurrent goroutines being created for large cluster implementations.
	// The downside is extra goroutines will still need to be created (or taken from a goroutine pool).
	ConcurrentNodes int // = 1

	// Allow batch to be processed immediately in the server's receiving thread when the server
	// deems it to be appropriate.  If false, the batch will always be processed in separate
	// command goroutines.
	//
	// Inline processing can introduce the possibility of unfairness because the server
	// can process the entire batch before moving onto the next command.
	AllowInline bool //= true

	// Allow batch to be processed immediately in the server's receiving thread for SSD
	// namespaces. If false, the batch will always be processed in separate service threads.
	// Server versions before 6.0 ignore this field.
	//
	// Default: false
	AllowInlineSSD bool // = false

	// Should all batch keys be attempted regardless of errors. This field is used on both
	// the client and server. The client handles node specific errors and the server handles
	// key specific errors.
	//
	// If true, every batch key is attempted regardless of previous key specific errors.
	// Node specific errors such as timeouts stop keys to that node, but keys directed at
	// other nodes will continue to be processed.
	//
	// If false, the server will stop the batch to its node on most key specific errors.
	// The exceptions are types.KEY_NOT_FOUND_ERROR and types.FILTERED_OUT which never stop the batch.
	// The client will stop dispatching to further nodes on node specific errors.
	//
	// Default: true
	RespondAllKeys bool //= true;

	// AllowPartialResults determines if the results for some nodes should be returned in case
	// some nodes encounter an error. The result for the unreceived records will be nil.
	//
	// This flag is only supported for BatchGet and BatchGetHeader methods.
	AllowPartialResults bool //= false

	// DefaultReadPolicy is used for the BatchRead records of the batch which
	// do not have a policy of their own. Falls back to Client.DefaultBatchReadPolicy if nil.
	DefaultReadPolicy *BatchReadPolicy

	// DefaultWritePolicy is used for the BatchWrite records of the batch which
	// do not have a policy of their own. Falls back to Client.DefaultBatchWritePolicy if nil.
	DefaultWritePolicy *BatchWritePolicy

	// DefaultDeletePolicy is used for the BatchDelete records of the batch which
	// do not have a policy of their own. Falls back to Client.DefaultBatchDeletePolicy if nil.
	DefaultDeletePolicy *BatchDeletePolicy

	// DefaultUDFPolicy is used for the BatchUDF records of the batch which
	// do not have a policy of their own. Falls back to Client.DefaultBatchUDFPolicy if nil.
	DefaultUDFPolicy *BatchUDFPolicy
}

// NewBatchPolicy initializes a new BatchPolicy instance with default parameters.
func NewBatchPolicy() *BatchPolicy {
	return &BatchPolicy{
		BasePolicy:          *NewPolicy(),
		ConcurrentNodes:     1,
		AllowInline:         true,
		AllowPartialResults: false,
		RespondAllKeys:      true,
	}
}

// NewReadBatchPolicy initializes a new BatchPolicy instance for reads.
func NewReadBatchPolicy() *BatchPolicy {
	return NewBatchPolicy()
}

// NewWriteBatchPolicy initializes a new BatchPolicy instance for writes.
func NewWriteBatchPolicy() *BatchPolicy {
	res := NewBatchPolicy()
	res.MaxRetries = 0
	return res
}

func (p *BatchPolicy) validate() Error {
	if err := p.BasePolicy.validate(); err != nil {
		return err
	}
	if p.ConcurrentNodes < 0 {
		return newErrorf(types.PARAMETER_ERROR, "invalid ConcurrentNodes: %d", p.ConcurrentNodes)
	}
	if p.DefaultReadPolicy != nil {
		if err := p.DefaultReadPolicy.validate(); err != nil {
			return err
		}
	}
	return nil
}
