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
	"bytes"
	"fmt"
	"hash"
	"sync"

	"golang.org/x/crypto/ripemd160"

	ParticleType "github.com/aerospike/aerospike-expressions-go/internal/particle_type"
	"github.com/aerospike/aerospike-expressions-go/types"
	Buffer "github.com/aerospike/aerospike-expressions-go/utils/buffer"
)

// DigestSize is the length of a record digest in bytes.
const DigestSize = 20

// Key is the unique record identifier. Records can be identified using a specified namespace,
// an optional set name, and a user defined key which must be unique within a set.
// Records can also be identified by namespace/digest which is the combination used
// on the server.
type Key struct {
	// namespace. Equivalent to database name.
	namespace string

	// Optional set name. Equivalent to database table.
	setName string

	// Unique server hash value generated from set name and user key.
	digest [DigestSize]byte

	// Original user key. This key is immediately converted to a hash digest.
	// This key is not used or returned by the server by default. If the user key needs
	// to persist on the server, use one of the following methods:
	//
	// Set "WritePolicy.SendKey" to true. In this case, the key will be sent to the server for storage on writes
	// and retrieved on multi-record scans and queries.
	// Explicitly store and retrieve the key in a bin.
	userKey Value
}

// Namespace returns key's namespace.
func (ky *Key) Namespace() string {
	return ky.namespace
}

// SetName returns key's set name.
func (ky *Key) SetName() string {
	return ky.setName
}

// Value returns key's value, or nil if the key was created from a digest.
func (ky *Key) Value() Value {
	return ky.userKey
}

// Digest returns key digest.
func (ky *Key) Digest() []byte {
	return ky.digest[:]
}

// Equals uses key digests to compare key equality.
func (ky *Key) Equals(other *Key) bool {
	if other == nil {
		return false
	}
	return ky.namespace == other.namespace && bytes.Equal(ky.digest[:], other.digest[:])
}

// String implements Stringer interface and returns string representation of key.
func (ky *Key) String() string {
	if ky == nil {
		return ""
	}

	if ky.userKey != nil {
		return fmt.Sprintf("%s:%s:%s:%v", ky.namespace, ky.setName, ky.userKey.String(), Buffer.BytesToHexString(ky.digest[:]))
	}
	return fmt.Sprintf("%s:%s::%v", ky.namespace, ky.setName, Buffer.BytesToHexString(ky.digest[:]))
}

// NewKey initializes a key from namespace, optional set name and user key.
// The set name and user defined key are converted to a digest before sending to the server.
// The server handles record identifiers by digest only.
func NewKey(namespace string, setName string, key interface{}) (*Key, Error) {
	if namespace == "" {
		return nil, newError(types.PARAMETER_ERROR, "namespace cannot be empty")
	}

	userKey, err := newValue(key)
	if err != nil {
		return nil, err
	}

	newKey := &Key{
		namespace: namespace,
		setName:   setName,
		userKey:   userKey,
	}

	if err := newKey.computeDigest(); err != nil {
		return nil, err
	}
	return newKey, nil
}

// NewKeyWithDigest initializes a key from namespace, optional set name, user key
// and the digest. The digest is authoritative and is not recomputed.
func NewKeyWithDigest(namespace string, setName string, key interface{}, digest []byte) (*Key, Error) {
	if namespace == "" {
		return nil, newError(types.PARAMETER_ERROR, "namespace cannot be empty")
	}

	userKey, err := newValue(key)
	if err != nil {
		return nil, err
	}

	newKey := &Key{
		namespace: namespace,
		setName:   setName,
		userKey:   userKey,
	}
	if err := newKey.SetDigest(digest); err != nil {
		return nil, err
	}
	return newKey, nil
}

// NewKeyByDigest initializes a key from namespace, digest and optional set name.
func NewKeyByDigest(namespace string, setName string, digest []byte) (*Key, Error) {
	if namespace == "" {
		return nil, newError(types.PARAMETER_ERROR, "namespace cannot be empty")
	}

	newKey := &Key{
		namespace: namespace,
		setName:   setName,
	}
	if err := newKey.SetDigest(digest); err != nil {
		return nil, err
	}
	return newKey, nil
}

// SetDigest sets a custom hash
func (ky *Key) SetDigest(digest []byte) Error {
	if len(digest) != DigestSize {
		return newErrorf(types.PARAMETER_ERROR, "Invalid digest: Digest is required to be exactly %d bytes.", DigestSize)
	}
	copy(ky.digest[:], digest)
	return nil
}

var hashPool = sync.Pool{
	New: func() interface{} {
		return ripemd160.New()
	},
}

// computeDigest generates a unique digest from the set name, key type and
// user defined key. The hash function is RIPEMD-160 (a 160 bit hash).
func (ky *Key) computeDigest() Error {
	b, err := keyBytes(ky.userKey)
	if err != nil {
		return err
	}

	h := hashPool.Get().(hash.Hash)
	defer hashPool.Put(h)
	h.Reset()

	h.Write([]byte(ky.setName))
	h.Write([]byte{byte(ky.userKey.GetType())})
	h.Write(b)
	h.Sum(ky.digest[:0])
	return nil
}

// keyBytes returns the bytes of a user key that go into its digest.
// Only integers, strings and blobs may be used as keys.
func keyBytes(v Value) ([]byte, Error) {
	switch val := v.(type) {
	case IntegerValue:
		return Buffer.Int64ToBytes(int64(val), nil, 0), nil
	case LongValue:
		return Buffer.Int64ToBytes(int64(val), nil, 0), nil
	case StringValue:
		return []byte(val), nil
	case BytesValue:
		return []byte(val), nil
	case NullValue:
		return nil, newError(types.PARAMETER_ERROR, "Invalid key: nil")
	}
	return nil, newErrorf(types.PARAMETER_ERROR, "Key type %T is not supported; use integer, string or blob", v)
}

// keyParticleType returns the particle type the key's user value is sent with.
func (ky *Key) keyParticleType() int {
	if ky.userKey == nil {
		return ParticleType.NULL
	}
	return ky.userKey.GetType()
}
