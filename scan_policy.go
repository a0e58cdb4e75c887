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

// ScanPolicy governs ScanAll. The filter expression of the embedded
// MultiPolicy is applied on every node.
type ScanPolicy struct {
	MultiPolicy

	// ScanPercent is the share of each node's records to read, in [1, 100].
	// Prefer MultiPolicy.MaxRecords to bound the result.
	ScanPercent int
}

// NewScanPolicy creates a new ScanPolicy instance with default values.
// Scans have no total timeout by default.
func NewScanPolicy() *ScanPolicy {
	mp := *NewMultiPolicy()
	mp.TotalTimeout = 0

	return &ScanPolicy{
		MultiPolicy: mp,
		ScanPercent: 100,
	}
}

func (sp *ScanPolicy) validate() Error {
	if err := sp.MultiPolicy.validate(); err != nil {
		return err
	}
	if sp.ScanPercent <= 0 || sp.ScanPercent > 100 {
		return newErrorf(types.PARAMETER_ERROR, "invalid ScanPercent: %d, must be in [1, 100]", sp.ScanPercent)
	}
	return nil
}
