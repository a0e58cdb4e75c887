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
	"math"
	"reflect"
	"strconv"
	"strings"

	ParticleType "github.com/aerospike/aerospike-expressions-go/internal/particle_type"
	"github.com/aerospike/aerospike-expressions-go/types"
)

// Value is the polymorphic value class used to serialize user data into
// the wire protocol.
type Value interface {
	// Serialize the value using MessagePack.
	pack(*packer) Error

	// GetType returns the wire protocol value type.
	GetType() int

	// GetObject returns the original value as an interface{}.
	GetObject() interface{}

	// String implements the fmt.Stringer interface.
	String() string
}

// boundValue marks values which are only legal as range endpoints.
type boundValue interface {
	isBound()
}

// NewValue generates a new Value object based on the type.
// If the type is not supported, NewValue will panic.
// Use it only for literals whose type is known at compile time.
func NewValue(v interface{}) Value {
	res, err := newValue(v)
	if err != nil {
		panic(err)
	}
	return res
}

func newValue(v interface{}) (Value, Error) {
	switch val := v.(type) {
	case nil:
		return nullValue, nil
	case Value:
		return val, nil
	case int:
		return IntegerValue(val), nil
	case int8:
		return IntegerValue(val), nil
	case int16:
		return IntegerValue(val), nil
	case int32:
		return IntegerValue(val), nil
	case int64:
		return LongValue(val), nil
	case uint8:
		return IntegerValue(val), nil
	case uint16:
		return IntegerValue(val), nil
	case uint32:
		return LongValue(val), nil
	case uint:
		return uintToValue(uint64(val))
	case uint64:
		return uintToValue(val)
	case bool:
		return BoolValue(val), nil
	case float32:
		return FloatValue(val), nil
	case float64:
		return FloatValue(val), nil
	case string:
		return StringValue(val), nil
	case []byte:
		return BytesValue(val), nil
	case []Value:
		return ValueArray(val), nil
	case []interface{}:
		return ListValue(val), nil
	case map[interface{}]interface{}:
		return MapValue(val), nil
	case map[string]interface{}:
		m := make(map[interface{}]interface{}, len(val))
		for k, e := range val {
			m[k] = e
		}
		return MapValue(m), nil
	case []MapPair:
		return OrderedMapValue(val), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array, reflect.Slice:
		arr := make([]interface{}, rv.Len())
		for i := range arr {
			arr[i] = rv.Index(i).Interface()
		}
		return ListValue(arr), nil
	case reflect.Map:
		m := make(map[interface{}]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().Interface()] = iter.Value().Interface()
		}
		return MapValue(m), nil
	case reflect.Ptr:
		if rv.IsNil() {
			return nullValue, nil
		}
		return newValue(rv.Elem().Interface())
	}

	return nil, newErrorf(types.TYPE_NOT_SUPPORTED, "Value type '%T' not supported", v)
}

func uintToValue(v uint64) (Value, Error) {
	if v > math.MaxInt64 {
		return nil, newErrorf(types.TYPE_NOT_SUPPORTED, "Value %d is larger than the maximum signed 64-bit integer", v)
	}
	return LongValue(int64(v)), nil
}

// ValuesEqual returns true if the two values are structurally equal.
// Lists compare by position, unordered maps compare by content.
// Integer values compare equal regardless of their Go width.
func ValuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	pa, err := packValue(a)
	if err != nil {
		return false
	}
	pb, err := packValue(b)
	if err != nil {
		return false
	}
	return bytes.Equal(pa, pb)
}

// isBoundValue reports if the value is a wildcard or infinity, or a
// collection containing one.
func isBoundValue(v Value) bool {
	switch val := v.(type) {
	case boundValue:
		return true
	case ValueArray:
		for _, e := range val {
			if isBoundValue(e) {
				return true
			}
		}
	case ListValue:
		for _, e := range val {
			if ev, ok := e.(Value); ok && isBoundValue(ev) {
				return true
			}
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////////

// NullValue is an empty value.
type NullValue struct{}

var nullValue NullValue

// NewNullValue generates a NullValue instance.
func NewNullValue() NullValue {
	return nullValue
}

func (vl NullValue) pack(pckr *packer) Error {
	pckr.PackNil()
	return nil
}

// GetType returns wire protocol value type.
func (vl NullValue) GetType() int {
	return ParticleType.NULL
}

// GetObject returns original value as an interface{}.
func (vl NullValue) GetObject() interface{} {
	return nil
}

func (vl NullValue) String() string {
	return ""
}

///////////////////////////////////////////////////////////////////////////////

// InfinityValue is used to set the upper bound of a range to infinity.
// It is only legal as a range endpoint.
type InfinityValue struct{}

// NewInfinityValue generates an InfinityValue instance.
func NewInfinityValue() InfinityValue {
	return InfinityValue{}
}

func (vl InfinityValue) isBound() {}

func (vl InfinityValue) pack(pckr *packer) Error {
	pckr.packExt1(0xff, 0x01)
	return nil
}

// GetType returns wire protocol value type.
func (vl InfinityValue) GetType() int {
	return ParticleType.NULL
}

// GetObject returns original value as an interface{}.
func (vl InfinityValue) GetObject() interface{} {
	return nil
}

func (vl InfinityValue) String() string {
	return "INF"
}

///////////////////////////////////////////////////////////////////////////////

// WildCardValue matches any value in a range or list comparison.
// It is only legal as a range endpoint or inside a list of endpoints.
type WildCardValue struct{}

// NewWildCardValue generates a WildCardValue instance.
func NewWildCardValue() WildCardValue {
	return WildCardValue{}
}

func (vl WildCardValue) isBound() {}

func (vl WildCardValue) pack(pckr *packer) Error {
	pckr.packExt1(0xff, 0x00)
	return nil
}

// GetType returns wire protocol value type.
func (vl WildCardValue) GetType() int {
	return ParticleType.NULL
}

// GetObject returns original value as an interface{}.
func (vl WildCardValue) GetObject() interface{} {
	return nil
}

func (vl WildCardValue) String() string {
	return "*"
}

///////////////////////////////////////////////////////////////////////////////

// BytesValue encapsulates an array of bytes.
type BytesValue []byte

// NewBytesValue generates a ByteValue instance.
func NewBytesValue(bytes []byte) BytesValue {
	return BytesValue(bytes)
}

func (vl BytesValue) pack(pckr *packer) Error {
	pckr.PackBytes(vl)
	return nil
}

// GetType returns wire protocol value type.
func (vl BytesValue) GetType() int {
	return ParticleType.BLOB
}

// GetObject returns original value as an interface{}.
func (vl BytesValue) GetObject() interface{} {
	return []byte(vl)
}

func (vl BytesValue) String() string {
	return fmt.Sprintf("% 02x", []byte(vl))
}

///////////////////////////////////////////////////////////////////////////////

// StringValue encapsulates a string value.
type StringValue string

// NewStringValue generates a StringValue instance.
func NewStringValue(value string) StringValue {
	return StringValue(value)
}

func (vl StringValue) pack(pckr *packer) Error {
	pckr.PackString(string(vl))
	return nil
}

// GetType returns wire protocol value type.
func (vl StringValue) GetType() int {
	return ParticleType.STRING
}

// GetObject returns original value as an interface{}.
func (vl StringValue) GetObject() interface{} {
	return string(vl)
}

func (vl StringValue) String() string {
	return string(vl)
}

///////////////////////////////////////////////////////////////////////////////

// GeoJSONValue encapsulates a 2D Geo point.
// Supported by Aerospike 3.6.1 servers and later only.
type GeoJSONValue string

// NewGeoJSONValue generates a GeoJSONValue instance.
func NewGeoJSONValue(value string) GeoJSONValue {
	return GeoJSONValue(value)
}

func (vl GeoJSONValue) pack(pckr *packer) Error {
	pckr.PackGeoJSON(string(vl))
	return nil
}

// GetType returns wire protocol value type.
func (vl GeoJSONValue) GetType() int {
	return ParticleType.GEOJSON
}

// GetObject returns original value as an interface{}.
func (vl GeoJSONValue) GetObject() interface{} {
	return string(vl)
}

func (vl GeoJSONValue) String() string {
	return string(vl)
}

///////////////////////////////////////////////////////////////////////////////

// HLLValue encapsulates a HyperLogLog value.
type HLLValue []byte

// NewHLLValue generates a HLLValue instance.
func NewHLLValue(bytes []byte) HLLValue {
	return HLLValue(bytes)
}

func (vl HLLValue) pack(pckr *packer) Error {
	pckr.packParticle(ParticleType.HLL, vl)
	return nil
}

// GetType returns wire protocol value type.
func (vl HLLValue) GetType() int {
	return ParticleType.HLL
}

// GetObject returns original value as an interface{}.
func (vl HLLValue) GetObject() interface{} {
	return []byte(vl)
}

func (vl HLLValue) String() string {
	return fmt.Sprintf("% 02x", []byte(vl))
}

///////////////////////////////////////////////////////////////////////////////

// IntegerValue encapsulates an integer value.
type IntegerValue int

// NewIntegerValue generates an IntegerValue instance.
func NewIntegerValue(value int) IntegerValue {
	return IntegerValue(value)
}

func (vl IntegerValue) pack(pckr *packer) Error {
	pckr.PackAInt(int(vl))
	return nil
}

// GetType returns wire protocol value type.
func (vl IntegerValue) GetType() int {
	return ParticleType.INTEGER
}

// GetObject returns original value as an interface{}.
func (vl IntegerValue) GetObject() interface{} {
	return int(vl)
}

func (vl IntegerValue) String() string {
	return strconv.Itoa(int(vl))
}

///////////////////////////////////////////////////////////////////////////////

// LongValue encapsulates an int64 value.
type LongValue int64

// NewLongValue generates a LongValue instance.
func NewLongValue(value int64) LongValue {
	return LongValue(value)
}

func (vl LongValue) pack(pckr *packer) Error {
	pckr.PackAInt64(int64(vl))
	return nil
}

// GetType returns wire protocol value type.
func (vl LongValue) GetType() int {
	return ParticleType.INTEGER
}

// GetObject returns original value as an interface{}.
func (vl LongValue) GetObject() interface{} {
	return int64(vl)
}

func (vl LongValue) String() string {
	return strconv.FormatInt(int64(vl), 10)
}

///////////////////////////////////////////////////////////////////////////////

// FloatValue encapsulates a float64 value.
type FloatValue float64

// NewFloatValue generates a FloatValue instance.
func NewFloatValue(value float64) FloatValue {
	return FloatValue(value)
}

func (vl FloatValue) pack(pckr *packer) Error {
	pckr.PackFloat64(float64(vl))
	return nil
}

// GetType returns wire protocol value type.
func (vl FloatValue) GetType() int {
	return ParticleType.FLOAT
}

// GetObject returns original value as an interface{}.
func (vl FloatValue) GetObject() interface{} {
	return float64(vl)
}

func (vl FloatValue) String() string {
	return strconv.FormatFloat(float64(vl), 'g', -1, 64)
}

///////////////////////////////////////////////////////////////////////////////

// BoolValue encapsulates a boolean value.
type BoolValue bool

// NewBoolValue generates a BoolValue instance.
func NewBoolValue(value bool) BoolValue {
	return BoolValue(value)
}

func (vb BoolValue) pack(pckr *packer) Error {
	pckr.PackBool(bool(vb))
	return nil
}

// GetType returns wire protocol value type.
func (vb BoolValue) GetType() int {
	return ParticleType.BOOL
}

// GetObject returns original value as an interface{}.
func (vb BoolValue) GetObject() interface{} {
	return bool(vb)
}

func (vb BoolValue) String() string {
	return strconv.FormatBool(bool(vb))
}

///////////////////////////////////////////////////////////////////////////////

// ValueArray encapsulates an array of Value.
type ValueArray []Value

// NewValueArray generates a ValueArray instance.
func NewValueArray(array []Value) ValueArray {
	return ValueArray(array)
}

// ToValueArray converts a []interface{} to a ValueArray.
func ToValueArray(array []interface{}) (ValueArray, Error) {
	res := make(ValueArray, 0, len(array))
	for i := range array {
		v, err := newValue(array[i])
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (va ValueArray) pack(pckr *packer) Error {
	return pckr.packValueArray(va)
}

// GetType returns wire protocol value type.
func (va ValueArray) GetType() int {
	return ParticleType.LIST
}

// GetObject returns original value as an interface{}.
func (va ValueArray) GetObject() interface{} {
	res := make([]interface{}, len(va))
	for i := range va {
		res[i] = va[i].GetObject()
	}
	return res
}

func (va ValueArray) String() string {
	parts := make([]string, len(va))
	for i := range va {
		parts[i] = va[i].String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

///////////////////////////////////////////////////////////////////////////////

// ListValue encapsulates any arbitrary array.
type ListValue []interface{}

// NewListValue generates a ListValue instance.
func NewListValue(list []interface{}) ListValue {
	return ListValue(list)
}

func (vl ListValue) pack(pckr *packer) Error {
	return pckr.PackList(vl)
}

// GetType returns wire protocol value type.
func (vl ListValue) GetType() int {
	return ParticleType.LIST
}

// GetObject returns original value as an interface{}.
func (vl ListValue) GetObject() interface{} {
	return []interface{}(vl)
}

func (vl ListValue) String() string {
	return fmt.Sprintf("%v", []interface{}(vl))
}

///////////////////////////////////////////////////////////////////////////////

// MapValue encapsulates an arbitrary map.
type MapValue map[interface{}]interface{}

// NewMapValue generates a MapValue instance.
func NewMapValue(vmap map[interface{}]interface{}) MapValue {
	return MapValue(vmap)
}

func (vl MapValue) pack(pckr *packer) Error {
	return pckr.PackMap(vl)
}

// GetType returns wire protocol value type.
func (vl MapValue) GetType() int {
	return ParticleType.MAP
}

// GetObject returns original value as an interface{}.
func (vl MapValue) GetObject() interface{} {
	return map[interface{}]interface{}(vl)
}

func (vl MapValue) String() string {
	return fmt.Sprintf("%v", map[interface{}]interface{}(vl))
}

///////////////////////////////////////////////////////////////////////////////

// MapPair is used when the client returns sorted maps from the server, or
// when the order of entries must be kept.
type MapPair struct{ Key, Value interface{} }

// OrderedMapValue is a key ordered map. Entries are packed in the order
// given, after a header marking the map as key ordered.
type OrderedMapValue []MapPair

// NewOrderedMapValue generates an OrderedMapValue instance.
func NewOrderedMapValue(pairs []MapPair) OrderedMapValue {
	return OrderedMapValue(pairs)
}

func (vl OrderedMapValue) pack(pckr *packer) Error {
	pckr.PackMapOrderHeader(len(vl), int(MapOrder.KEY_ORDERED))
	for i := range vl {
		if err := pckr.PackObject(vl[i].Key); err != nil {
			return err
		}
		if err := pckr.PackObject(vl[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// GetType returns wire protocol value type.
func (vl OrderedMapValue) GetType() int {
	return ParticleType.MAP
}

// GetObject returns original value as an interface{}.
func (vl OrderedMapValue) GetObject() interface{} {
	return []MapPair(vl)
}

func (vl OrderedMapValue) String() string {
	parts := make([]string, len(vl))
	for i := range vl {
		parts[i] = fmt.Sprintf("%v:%v", vl[i].Key, vl[i].Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
