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
	"math"
	"time"

	"github.com/aerospike/aerospike-expressions-go/types"
)

// Record expiration values with a special meaning. They are sent in the
// 32 bit expiration field of the command header.
const (
	// TTLServerDefault uses the default TTL of the namespace on the server.
	TTLServerDefault uint32 = 0
	// TTLDontExpire means the record never expires.
	TTLDontExpire uint32 = math.MaxUint32
	// TTLDontUpdate keeps the TTL of an existing record. Requires server 3.10.1+.
	TTLDontUpdate uint32 = math.MaxUint32 - 1
	// TTLClientDefault uses the expiration of the client's default write
	// policy, resolved before the command is sent.
	TTLClientDefault uint32 = math.MaxUint32 - 2
)

// citrusleafEpoch is the epoch of the server record void times.
const citrusleafEpoch = 1262304000 // 2010-01-01T00:00:00Z

// resolveExpiration replaces TTLClientDefault with the expiration of the
// governing policy. If the governing value is itself TTLClientDefault, the
// server default is used.
func resolveExpiration(expiration, governing uint32) uint32 {
	if expiration != TTLClientDefault {
		return expiration
	}
	if governing == TTLClientDefault {
		return TTLServerDefault
	}
	return governing
}

// voidTimeToTTL converts a server void time to the remaining time to live in
// seconds. Records that never expire report TTLDontExpire. Records that are
// expired but not yet removed report one second.
func voidTimeToTTL(voidTime uint32, now time.Time) uint32 {
	if voidTime == 0 {
		return TTLDontExpire
	}

	current := now.Unix() - citrusleafEpoch
	if int64(voidTime) > current {
		return uint32(int64(voidTime) - current)
	}
	return 1
}

// ttlToVoidTime is the inverse of voidTimeToTTL for concrete TTL values.
func ttlToVoidTime(ttl uint32, now time.Time) uint32 {
	switch ttl {
	case TTLDontExpire, TTLServerDefault, TTLDontUpdate, TTLClientDefault:
		return 0
	}
	return uint32(now.Unix()-citrusleafEpoch) + ttl
}

// expirationFromSigned converts the signed TTL notation of policy files to
// the wire expiration: -1 never expires, -2 keeps the current TTL and -3
// uses the client default.
func expirationFromSigned(ttl int64) (uint32, Error) {
	switch {
	case ttl == -1:
		return TTLDontExpire, nil
	case ttl == -2:
		return TTLDontUpdate, nil
	case ttl == -3:
		return TTLClientDefault, nil
	case ttl >= 0 && ttl < int64(TTLClientDefault):
		return uint32(ttl), nil
	}
	return 0, newErrorf(types.PARAMETER_ERROR, "Invalid TTL %d", ttl)
}
