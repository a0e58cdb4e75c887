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

// BatchReadPolicy overrides the batch policy for a single BatchRead record.
// The fields are folded into the read attributes of the record's sub-request.
type BatchReadPolicy struct {
	// FilterExpression is checked against the record before it is read.
	// A record that does not pass reports types.FILTERED_OUT.
	FilterExpression *Expression

	// ReadModeAP is the read mode for AP namespaces. Default: ReadModeAPOne.
	ReadModeAP ReadModeAP

	// ReadModeSC is the read mode for strong consistency namespaces.
	// Default: ReadModeSCSession.
	ReadModeSC ReadModeSC

	// ReadTouchTTLPercent resets the record TTL on read when the record is
	// within this percentage of its last write TTL. 0 defers to the server
	// configuration. Valid range is [0, 100].
	ReadTouchTTLPercent int32
}

// NewBatchReadPolicy returns a policy instance for BatchRead commands.
func NewBatchReadPolicy() *BatchReadPolicy {
	return &BatchReadPolicy{
		ReadModeAP: ReadModeAPOne,
		ReadModeSC: ReadModeSCSession,
	}
}

func (p *BatchReadPolicy) validate() Error {
	if err := validateFilter(p.FilterExpression); err != nil {
		return err
	}
	if err := validateReadModes(p.ReadModeAP, p.ReadModeSC); err != nil {
		return err
	}
	return validateReadTouchTTLPercent(p.ReadTouchTTLPercent)
}
