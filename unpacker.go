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
	"encoding/binary"
	"math"
	"reflect"

	ParticleType "github.com/aerospike/aerospike-expressions-go/internal/particle_type"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// unpacker decodes the MessagePack produced by packer.
type unpacker struct {
	buffer []byte
	offset int
}

func newUnpacker(buffer []byte) *unpacker {
	return &unpacker{buffer: buffer}
}

func errUnpack(msg string) Error {
	return newError(types.PARSE_ERROR, msg)
}

func (upckr *unpacker) remaining() int {
	return len(upckr.buffer) - upckr.offset
}

func (upckr *unpacker) need(n int) Error {
	if upckr.remaining() < n {
		return errUnpack("unexpected end of msgpack buffer")
	}
	return nil
}

func (upckr *unpacker) readByte() (byte, Error) {
	if err := upckr.need(1); err != nil {
		return 0, err
	}
	b := upckr.buffer[upckr.offset]
	upckr.offset++
	return b, nil
}

func (upckr *unpacker) readN(n int) ([]byte, Error) {
	if err := upckr.need(n); err != nil {
		return nil, err
	}
	b := upckr.buffer[upckr.offset : upckr.offset+n]
	upckr.offset += n
	return b, nil
}

func (upckr *unpacker) readUint(n int) (uint64, Error) {
	b, err := upckr.readN(n)
	if err != nil {
		return 0, err
	}
	switch n {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), nil
	}
	return binary.BigEndian.Uint64(b), nil
}

// arrayLen reads an array header.
func (upckr *unpacker) arrayLen() (int, Error) {
	t, err := upckr.readByte()
	if err != nil {
		return 0, err
	}
	switch {
	case t&0xf0 == 0x90:
		return int(t & 0x0f), nil
	case t == 0xdc:
		n, err := upckr.readUint(2)
		return int(n), err
	case t == 0xdd:
		n, err := upckr.readUint(4)
		return int(n), err
	}
	return 0, errUnpack("expected msgpack array")
}

// rawString reads a string without a particle type prefix.
func (upckr *unpacker) rawString() (string, Error) {
	t, err := upckr.readByte()
	if err != nil {
		return "", err
	}
	n, err := upckr.strLen(t)
	if err != nil {
		return "", err
	}
	b, err := upckr.readN(n)
	return string(b), err
}

func (upckr *unpacker) strLen(t byte) (int, Error) {
	switch {
	case t&0xe0 == 0xa0:
		return int(t & 0x1f), nil
	case t == 0xd9 || t == 0xc4:
		n, err := upckr.readUint(1)
		return int(n), err
	case t == 0xda || t == 0xc5:
		n, err := upckr.readUint(2)
		return int(n), err
	case t == 0xdb || t == 0xc6:
		n, err := upckr.readUint(4)
		return int(n), err
	}
	return 0, errUnpack("expected msgpack string")
}

// skip returns the raw bytes of the next object.
func (upckr *unpacker) skip() ([]byte, Error) {
	start := upckr.offset
	if _, err := upckr.unpackObject(); err != nil {
		return nil, err
	}
	return upckr.buffer[start:upckr.offset], nil
}

func (upckr *unpacker) unpackObject() (interface{}, Error) {
	t, err := upckr.readByte()
	if err != nil {
		return nil, err
	}

	switch {
	case t <= 0x7f:
		return int(t), nil
	case t >= 0xe0:
		return int(int8(t)), nil
	case t&0xf0 == 0x80:
		return upckr.unpackMap(int(t & 0x0f))
	case t&0xf0 == 0x90:
		return upckr.unpackList(int(t & 0x0f))
	case t&0xe0 == 0xa0:
		return upckr.unpackBlob(int(t & 0x1f))
	}

	switch t {
	case 0xc0:
		return nil, nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil
	case 0xc4, 0xc5, 0xc6, 0xd9, 0xda, 0xdb:
		n, err := upckr.strLen(t)
		if err != nil {
			return nil, err
		}
		return upckr.unpackBlob(n)
	case 0xca:
		u, err := upckr.readUint(4)
		return float64(math.Float32frombits(uint32(u))), err
	case 0xcb:
		u, err := upckr.readUint(8)
		return math.Float64frombits(u), err
	case 0xcc:
		u, err := upckr.readUint(1)
		return int(u), err
	case 0xcd:
		u, err := upckr.readUint(2)
		return int(u), err
	case 0xce:
		u, err := upckr.readUint(4)
		return int(u), err
	case 0xcf:
		u, err := upckr.readUint(8)
		if u <= math.MaxInt64 {
			return int(u), err
		}
		return u, err
	case 0xd0:
		u, err := upckr.readUint(1)
		return int(int8(u)), err
	case 0xd1:
		u, err := upckr.readUint(2)
		return int(int16(u)), err
	case 0xd2:
		u, err := upckr.readUint(4)
		return int(int32(u)), err
	case 0xd3:
		u, err := upckr.readUint(8)
		return int(int64(u)), err
	case 0xd4:
		b, err := upckr.readN(2)
		if err != nil {
			return nil, err
		}
		if b[0] == 0xff && b[1] == 0x01 {
			return InfinityValue{}, nil
		}
		return WildCardValue{}, nil
	case 0xc7:
		// order header: length, ext type, flags
		_, err := upckr.readN(2)
		if err != nil {
			return nil, err
		}
		return orderHeader{}, nil
	case 0xdc, 0xdd:
		n, err := upckr.readUint(int(t-0xdc+1) * 2)
		if err != nil {
			return nil, err
		}
		return upckr.unpackList(int(n))
	case 0xde, 0xdf:
		n, err := upckr.readUint(int(t-0xde+1) * 2)
		if err != nil {
			return nil, err
		}
		return upckr.unpackMap(int(n))
	}

	return nil, errUnpack("unsupported msgpack type")
}

type orderHeader struct{}

func (upckr *unpacker) unpackBlob(n int) (interface{}, Error) {
	b, err := upckr.readN(n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return "", nil
	}

	data := b[1:]
	switch int(b[0]) {
	case ParticleType.STRING:
		return string(data), nil
	case ParticleType.GEOJSON:
		return GeoJSONValue(data), nil
	case ParticleType.HLL:
		return HLLValue(append([]byte(nil), data...)), nil
	}
	return append([]byte(nil), data...), nil
}

func (upckr *unpacker) unpackList(count int) (interface{}, Error) {
	out := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		obj, err := upckr.unpackObject()
		if err != nil {
			return nil, err
		}
		if _, ok := obj.(orderHeader); ok && i == 0 {
			continue
		}
		out = append(out, obj)
	}
	return out, nil
}

func (upckr *unpacker) unpackMap(count int) (interface{}, Error) {
	var ordered []MapPair
	var out map[interface{}]interface{}

	for i := 0; i < count; i++ {
		key, err := upckr.unpackObject()
		if err != nil {
			return nil, err
		}
		val, err := upckr.unpackObject()
		if err != nil {
			return nil, err
		}

		if _, ok := key.(orderHeader); ok && i == 0 {
			ordered = make([]MapPair, 0, count-1)
			continue
		}

		if ordered != nil {
			ordered = append(ordered, MapPair{Key: key, Value: val})
			continue
		}

		if out == nil {
			out = make(map[interface{}]interface{}, count)
		}
		if key != nil && !reflect.TypeOf(key).Comparable() {
			return nil, errUnpack("map key is not comparable")
		}
		out[key] = val
	}

	if ordered != nil {
		return ordered, nil
	}
	if out == nil {
		out = map[interface{}]interface{}{}
	}
	return out, nil
}
