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

// BatchDeletePolicy overrides the batch policy for a single BatchDelete record.
type BatchDeletePolicy struct {
	// FilterExpression is checked against the record before it is deleted.
	// A record that does not pass reports types.FILTERED_OUT.
	FilterExpression *Expression

	// CommitLevel selects which replicas must apply the delete before the
	// record reports success. Default: COMMIT_ALL.
	CommitLevel CommitLevel

	// GenerationPolicy restricts the delete by the record generation.
	// Default: NONE.
	GenerationPolicy GenerationPolicy

	// Generation is the generation GenerationPolicy compares against.
	Generation uint32

	// DurableDelete leaves a tombstone instead of removing the record.
	DurableDelete bool

	// SendKey stores the user key with the tombstone.
	SendKey bool
}

// NewBatchDeletePolicy returns a default BatchDeletePolicy.
func NewBatchDeletePolicy() *BatchDeletePolicy {
	return &BatchDeletePolicy{
		CommitLevel:      COMMIT_ALL,
		GenerationPolicy: NONE,
	}
}

func (p *BatchDeletePolicy) validate() Error {
	if err := validateFilter(p.FilterExpression); err != nil {
		return err
	}
	return validateWriteModes(p.CommitLevel, p.GenerationPolicy)
}
