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
	"fmt"
	"time"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// Record is a container object for records. Records are equivalent to rows.
type Record struct {
	// Key is the record's key.
	// Might be empty, or may only consist of digest value.
	Key *Key

	// Node from which the Record is originating from.
	Node string

	// Bins is the map of requested name/value bins.
	// If an operation list touches a bin more than once, the bin holds the
	// result of the last operation.
	Bins BinMap

	// OpResults holds the result of every operation of an operate command,
	// in the order of the operations.
	OpResults []interface{}

	// Generation shows record modification count.
	Generation uint32

	// Expiration is the record void time, in seconds since Jan 01 2010 00:00:00 GMT.
	// Zero means the record never expires.
	Expiration uint32

	// Version is the record version returned for reads inside a
	// transaction. Zero if not returned.
	Version uint64
}

func newRecord(node string, key *Key, bins BinMap, generation, expiration uint32) *Record {
	r := &Record{
		Node:       node,
		Key:        key,
		Bins:       bins,
		Generation: generation,
		Expiration: expiration,
	}

	// always assign a map of length zero if Bins is nil
	if r.Bins == nil {
		r.Bins = make(BinMap)
	}

	return r
}

// TTL returns the remaining time to live of the record in seconds, or
// TTLDontExpire if the record never expires.
func (rc *Record) TTL() uint32 {
	return voidTimeToTTL(rc.Expiration, time.Now())
}

// String implements the Stringer interface. Returns string representation of record.
func (rc *Record) String() string {
	return fmt.Sprintf("%s %v", rc.Key, rc.Bins)
}

func (rc *Record) bin(binName string) (interface{}, Error) {
	v, ok := rc.Bins[binName]
	if !ok {
		return nil, newErrorf(types.BIN_NOT_FOUND, "No bin found with name %s", binName)
	}
	return v, nil
}

// GetString returns the string value of the bin.
func (rc *Record) GetString(binName string) (string, Error) {
	v, err := rc.bin(binName)
	if err != nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", newErrorf(types.BIN_TYPE_ERROR, "Bin %s did not contain a string value", binName)
}

// GetInt returns the integer value of the bin.
func (rc *Record) GetInt(binName string) (int, Error) {
	v, err := rc.bin(binName)
	if err != nil {
		return 0, err
	}
	if i, ok := v.(int); ok {
		return i, nil
	}
	return 0, newErrorf(types.BIN_TYPE_ERROR, "Bin %s did not contain an integer value", binName)
}

// GetFloat returns the float value of the bin.
func (rc *Record) GetFloat(binName string) (float64, Error) {
	v, err := rc.bin(binName)
	if err != nil {
		return 0, err
	}
	if f, ok := v.(float64); ok {
		return f, nil
	}
	return 0, newErrorf(types.BIN_TYPE_ERROR, "Bin %s did not contain a float value", binName)
}

// GetList returns the list value of the bin.
func (rc *Record) GetList(binName string) ([]interface{}, Error) {
	v, err := rc.bin(binName)
	if err != nil {
		return nil, err
	}
	if l, ok := v.([]interface{}); ok {
		return l, nil
	}
	return nil, newErrorf(types.BIN_TYPE_ERROR, "Bin %s did not contain a list", binName)
}

// GetMap returns the map value of the bin.
func (rc *Record) GetMap(binName string) (map[interface{}]interface{}, Error) {
	v, err := rc.bin(binName)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(map[interface{}]interface{}); ok {
		return m, nil
	}
	return nil, newErrorf(types.BIN_TYPE_ERROR, "Bin %s did not contain a map", binName)
}
