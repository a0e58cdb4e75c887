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

// Package buffer converts between numbers and their big endian wire bytes.
package buffer

import (
	"encoding/binary"
	"encoding/hex"
)

// BytesToHexString converts a byte slice into a hex string.
func BytesToHexString(buf []byte) string {
	return hex.EncodeToString(buf)
}

// BytesToInt64 converts a slice into int64; only maximum of 8 bytes will be used.
// Shorter slices are treated as the low order bytes of the number.
func BytesToInt64(buf []byte, offset int) int64 {
	b := buf[offset:]
	if len(b) >= 8 {
		return int64(binary.BigEndian.Uint64(b[:8]))
	}

	var r int64
	for _, c := range b {
		r = r<<8 | int64(c)
	}
	return r
}

// Int64ToBytes converts an int64 into a slice of bytes. If buffer is nil, a
// new slice is allocated and returned; otherwise the number is written to
// buffer at offset and nil is returned.
func Int64ToBytes(num int64, buffer []byte, offset int) []byte {
	if buffer != nil {
		binary.BigEndian.PutUint64(buffer[offset:], uint64(num))
		return nil
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(num))
	return b
}

// Uint32ToBytes converts an uint32 into a slice of bytes, following the
// conventions of Int64ToBytes.
func Uint32ToBytes(num uint32, buffer []byte, offset int) []byte {
	if buffer != nil {
		binary.BigEndian.PutUint32(buffer[offset:], num)
		return nil
	}

	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, num)
	return b
}
