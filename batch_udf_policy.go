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

// BatchUDFPolicy overrides the batch policy for a single BatchUDF record.
type BatchUDFPolicy struct {
	// FilterExpression is checked against the record before the UDF runs.
	// A record that does not pass reports types.FILTERED_OUT.
	FilterExpression *Expression

	// CommitLevel selects which replicas must apply the UDF writes before the
	// record reports success. Default: COMMIT_ALL.
	CommitLevel CommitLevel

	// Expiration is the record TTL in seconds if the UDF writes. TTLClientDefault
	// takes the expiration of the client's DefaultBatchUDFPolicy.
	Expiration uint32

	// DurableDelete leaves a tombstone when the UDF deletes the record.
	DurableDelete bool

	// SendKey stores the user key with the record.
	SendKey bool
}

// NewBatchUDFPolicy returns a default BatchUDFPolicy.
func NewBatchUDFPolicy() *BatchUDFPolicy {
	return &BatchUDFPolicy{
		CommitLevel: COMMIT_ALL,
	}
}

func (p *BatchUDFPolicy) validate() Error {
	if err := validateFilter(p.FilterExpression); err != nil {
		return err
	}
	return validateWriteModes(p.CommitLevel, NONE)
}
