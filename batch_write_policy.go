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

// BatchWritePolicy overrides the batch policy for a single BatchWrite record.
type BatchWritePolicy struct {
	// FilterExpression is checked against the existing record before the
	// operations run. A record that does not pass reports types.FILTERED_OUT.
	FilterExpression *Expression

	// RecordExistsAction selects what happens when the record already exists.
	// Default: UPDATE.
	RecordExistsAction RecordExistsAction

	// CommitLevel selects which replicas must apply the write before the
	// record reports success. Default: COMMIT_ALL.
	CommitLevel CommitLevel

	// GenerationPolicy restricts the write by the record generation.
	// Default: NONE.
	GenerationPolicy GenerationPolicy

	// Generation is the generation GenerationPolicy compares against.
	Generation uint32

	// Expiration is the record TTL in seconds. TTLClientDefault takes the
	// expiration of the client's DefaultBatchWritePolicy; the other special
	// values are described in ttl.go.
	Expiration uint32

	// DurableDelete leaves a tombstone when the operations delete the record.
	DurableDelete bool

	// SendKey stores the user key with the record.
	SendKey bool
}

// NewBatchWritePolicy returns a policy instance for BatchWrite commands.
func NewBatchWritePolicy() *BatchWritePolicy {
	return &BatchWritePolicy{
		RecordExistsAction: UPDATE,
		GenerationPolicy:   NONE,
		CommitLevel:        COMMIT_ALL,
	}
}

func (p *BatchWritePolicy) validate() Error {
	if err := validateFilter(p.FilterExpression); err != nil {
		return err
	}
	if p.RecordExistsAction < UPDATE || p.RecordExistsAction > CREATE_ONLY {
		return newErrorf(types.PARAMETER_ERROR, "invalid RecordExistsAction: %d", p.RecordExistsAction)
	}
	return validateWriteModes(p.CommitLevel, p.GenerationPolicy)
}
