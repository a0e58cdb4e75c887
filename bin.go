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
	"sort"
)

// BinMap is used to define a map of bin names to values.
type BinMap map[string]interface{}

// Bin encapsulates a field name/value pair.
type Bin struct {
	// Bin name. Current limit is 15 characters.
	Name string

	// Bin value.
	Value Value
}

// NewBin generates a new Bin instance, specifying bin name and string value.
// For servers configured as "single-bin", enter an empty name.
func NewBin(name string, value interface{}) *Bin {
	v, err := newValue(value)
	if err != nil {
		// keep the bin; the operation built from it reports the error
		return &Bin{Name: name, Value: invalidValue{err: err}}
	}
	return &Bin{Name: name, Value: v}
}

// binMapToBins converts a BinMap to a bin list ordered by name.
func binMapToBins(bins BinMap) []*Bin {
	binList := make([]*Bin, 0, len(bins))
	for name, value := range bins {
		binList = append(binList, NewBin(name, value))
	}
	sort.Slice(binList, func(i, j int) bool { return binList[i].Name < binList[j].Name })
	return binList
}

func (bn *Bin) String() string {
	return bn.Name + ":" + bn.Value.String()
}

// invalidValue carries a conversion error until the value is packed.
type invalidValue struct {
	err Error
}

func (vl invalidValue) pack(*packer) Error     { return vl.err }
func (vl invalidValue) GetType() int           { return -1 }
func (vl invalidValue) GetObject() interface{} { return nil }
func (vl invalidValue) String() string         { return "<invalid: " + vl.err.Error() + ">" }
