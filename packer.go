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
	"encoding/binary"
	"math"
	"sort"

	ParticleType "github.com/aerospike/aerospike-expressions-go/internal/particle_type"
	"github.com/aerospike/aerospike-expressions-go/types"
)

var packerPool = types.NewBufferPool()

const initialPackerSize = 256

// packer writes MessagePack the way the server expects it: strings and
// blobs inside collections carry a particle type prefix byte, while raw
// strings (bin names, UDF names) do not.
type packer struct {
	buf    []byte
	offset int
}

func newPacker() *packer {
	return &packer{buf: packerPool.Get(initialPackerSize)}
}

// Bytes returns a copy of the packed data and releases the internal buffer.
// The packer must not be used afterwards.
func (pckr *packer) Bytes() []byte {
	res := make([]byte, pckr.offset)
	copy(res, pckr.buf[:pckr.offset])
	packerPool.Put(pckr.buf)
	pckr.buf = nil
	pckr.offset = 0
	return res
}

// Len returns the number of bytes packed so far.
func (pckr *packer) Len() int {
	return pckr.offset
}

func (pckr *packer) grow(n int) {
	if pckr.offset+n <= len(pckr.buf) {
		return
	}

	sz := 2 * len(pckr.buf)
	if sz < pckr.offset+n {
		sz = pckr.offset + n
	}
	nbuf := packerPool.Get(sz)
	copy(nbuf, pckr.buf[:pckr.offset])
	packerPool.Put(pckr.buf)
	pckr.buf = nbuf
}

func (pckr *packer) PackAByte(val byte) {
	pckr.grow(1)
	pckr.buf[pckr.offset] = val
	pckr.offset++
}

func (pckr *packer) PackByteArray(src []byte) {
	pckr.grow(len(src))
	copy(pckr.buf[pckr.offset:], src)
	pckr.offset += len(src)
}

func (pckr *packer) PackByte(valType byte, val byte) {
	pckr.PackAByte(valType)
	pckr.PackAByte(val)
}

func (pckr *packer) PackShort(valType byte, val uint16) {
	pckr.grow(3)
	pckr.buf[pckr.offset] = valType
	binary.BigEndian.PutUint16(pckr.buf[pckr.offset+1:], val)
	pckr.offset += 3
}

func (pckr *packer) PackInt(valType byte, val uint32) {
	pckr.grow(5)
	pckr.buf[pckr.offset] = valType
	binary.BigEndian.PutUint32(pckr.buf[pckr.offset+1:], val)
	pckr.offset += 5
}

func (pckr *packer) PackLong(valType byte, val uint64) {
	pckr.grow(9)
	pckr.buf[pckr.offset] = valType
	binary.BigEndian.PutUint64(pckr.buf[pckr.offset+1:], val)
	pckr.offset += 9
}

func (pckr *packer) PackArrayBegin(size int) {
	switch {
	case size < 16:
		pckr.PackAByte(0x90 | byte(size))
	case size <= math.MaxUint16:
		pckr.PackShort(0xdc, uint16(size))
	default:
		pckr.PackInt(0xdd, uint32(size))
	}
}

func (pckr *packer) PackMapBegin(size int) {
	switch {
	case size < 16:
		pckr.PackAByte(0x80 | byte(size))
	case size <= math.MaxUint16:
		pckr.PackShort(0xde, uint16(size))
	default:
		pckr.PackInt(0xdf, uint32(size))
	}
}

func (pckr *packer) PackByteArrayBegin(length int) {
	switch {
	case length < 32:
		pckr.PackAByte(0xa0 | byte(length))
	case length <= math.MaxUint16:
		pckr.PackShort(0xda, uint16(length))
	default:
		pckr.PackInt(0xdb, uint32(length))
	}
}

// PackRawString packs a string without the particle type prefix.
func (pckr *packer) PackRawString(val string) {
	pckr.PackByteArrayBegin(len(val))
	pckr.grow(len(val))
	pckr.offset += copy(pckr.buf[pckr.offset:], val)
}

// PackString packs a string value as it is stored inside collections.
func (pckr *packer) PackString(val string) {
	pckr.packParticle(ParticleType.STRING, []byte(val))
}

// PackGeoJSON packs a GeoJSON string value.
func (pckr *packer) PackGeoJSON(val string) {
	pckr.packParticle(ParticleType.GEOJSON, []byte(val))
}

// PackBytes packs a blob value.
func (pckr *packer) PackBytes(b []byte) {
	pckr.packParticle(ParticleType.BLOB, b)
}

func (pckr *packer) packParticle(ptype int, b []byte) {
	pckr.PackByteArrayBegin(len(b) + 1)
	pckr.PackAByte(byte(ptype))
	pckr.PackByteArray(b)
}

func (pckr *packer) PackNil() {
	pckr.PackAByte(0xc0)
}

func (pckr *packer) PackBool(val bool) {
	if val {
		pckr.PackAByte(0xc3)
	} else {
		pckr.PackAByte(0xc2)
	}
}

func (pckr *packer) PackFloat64(val float64) {
	pckr.PackLong(0xcb, math.Float64bits(val))
}

func (pckr *packer) PackUInt64(val uint64) {
	if val <= math.MaxInt64 {
		pckr.PackAInt64(int64(val))
		return
	}
	pckr.PackLong(0xcf, val)
}

// PackAInt64 packs an integer in the smallest representation.
func (pckr *packer) PackAInt64(val int64) {
	if val >= 0 {
		switch {
		case val < 128:
			pckr.PackAByte(byte(val))
		case val <= math.MaxUint8:
			pckr.PackByte(0xcc, byte(val))
		case val <= math.MaxUint16:
			pckr.PackShort(0xcd, uint16(val))
		case val <= math.MaxUint32:
			pckr.PackInt(0xce, uint32(val))
		default:
			pckr.PackLong(0xd3, uint64(val))
		}
		return
	}

	switch {
	case val >= -32:
		pckr.PackAByte(0xe0 | byte(val+32))
	case val >= math.MinInt8:
		pckr.PackByte(0xd0, byte(val))
	case val >= math.MinInt16:
		pckr.PackShort(0xd1, uint16(val))
	case val >= math.MinInt32:
		pckr.PackInt(0xd2, uint32(val))
	default:
		pckr.PackLong(0xd3, uint64(val))
	}
}

// PackAInt packs an int in the smallest representation.
func (pckr *packer) PackAInt(val int) {
	pckr.PackAInt64(int64(val))
}

// packExt1 packs a fixext1 value.
func (pckr *packer) packExt1(extType byte, val byte) {
	pckr.PackAByte(0xd4)
	pckr.PackAByte(extType)
	pckr.PackAByte(val)
}

// PackMapOrderHeader packs the header of a map that carries its order
// flags as the first, nil keyed, entry.
func (pckr *packer) PackMapOrderHeader(size int, attr int) {
	pckr.PackMapBegin(size + 1)
	pckr.PackAByte(0xc7)
	pckr.PackAByte(0)
	pckr.PackAByte(byte(attr))
	pckr.PackNil()
}

// PackListOrderHeader packs the header of a list that carries its order
// flags as an extension element.
func (pckr *packer) PackListOrderHeader(size int, attr int) {
	pckr.PackArrayBegin(size + 1)
	pckr.PackAByte(0xc7)
	pckr.PackAByte(0)
	pckr.PackAByte(byte(attr))
}

func (pckr *packer) PackList(list []interface{}) Error {
	pckr.PackArrayBegin(len(list))
	for _, obj := range list {
		if err := pckr.PackObject(obj); err != nil {
			return err
		}
	}
	return nil
}

func (pckr *packer) packValueArray(values []Value) Error {
	pckr.PackArrayBegin(len(values))
	for _, value := range values {
		if err := value.pack(pckr); err != nil {
			return err
		}
	}
	return nil
}

// PackMap packs an unordered map. Entries are written in the order of their
// packed keys so that equal maps always produce the same bytes.
func (pckr *packer) PackMap(theMap map[interface{}]interface{}) Error {
	type entry struct {
		key []byte
		val interface{}
	}

	entries := make([]entry, 0, len(theMap))
	for k, v := range theMap {
		kp := newPacker()
		if err := kp.PackObject(k); err != nil {
			return err
		}
		entries = append(entries, entry{key: kp.Bytes(), val: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})

	pckr.PackMapBegin(len(entries))
	for i := range entries {
		pckr.PackByteArray(entries[i].key)
		if err := pckr.PackObject(entries[i].val); err != nil {
			return err
		}
	}
	return nil
}

// PackObject packs any supported value.
func (pckr *packer) PackObject(obj interface{}) Error {
	if v, ok := obj.(Value); ok {
		return v.pack(pckr)
	}

	v, err := newValue(obj)
	if err != nil {
		return err
	}
	return v.pack(pckr)
}

// packValue packs a single value and returns the bytes.
func packValue(v Value) ([]byte, Error) {
	p := newPacker()
	if err := v.pack(p); err != nil {
		p.Bytes()
		return nil, err
	}
	return p.Bytes(), nil
}
