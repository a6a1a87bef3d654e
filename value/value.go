// Package value defines LiQuer's polymorphic typed value model: a closed
// set of built-in kinds (None, Bool, I32, I64, F64, Text, Array, Object,
// Bytes) plus an open registry that lets downstream deployments add
// extension kinds (e.g. dataframes) that the engine handles polymorphically
// via the same Value interface.
package value

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lqerrors "github.com/orest-d/liquer-go/errors"
	"github.com/orest-d/liquer-go/position"
)

// Value is the uniform contract every kind of value in the pipeline
// implements. Values are never mutated after construction, so they are
// safe to share across goroutines without copying.
type Value interface {
	// Identifier is the cross-platform type tag used in Metadata and in
	// the extension registry (e.g. "none", "text", "dataframe").
	Identifier() string
	IsNone() bool
	TypeName() string
	DefaultFilename() string
	DefaultMediaType() string

	TryString() (string, error)
	TryI32() (int32, error)
	TryI64() (int64, error)
	TryF64() (float64, error)
	TryBool() (bool, error)

	// TryJSON converts the value to a plain Go value suitable for
	// encoding/json.
	TryJSON() (interface{}, error)

	Equal(other Value) bool
	Hash() uint64
	String() string
}

func conversionError(v Value, target string) error {
	return lqerrors.NewConversionError(position.Unknown, v.String(), target)
}

// baseValue provides the conversion-failure defaults shared by every
// built-in kind; each concrete kind embeds it and overrides only the
// conversions it actually supports.
type baseValue struct{}

func (baseValue) TryString() (string, error)    { return "", fmt.Errorf("cannot convert to string") }
func (baseValue) TryI32() (int32, error)         { return 0, fmt.Errorf("cannot convert to i32") }
func (baseValue) TryI64() (int64, error)         { return 0, fmt.Errorf("cannot convert to i64") }
func (baseValue) TryF64() (float64, error)       { return 0, fmt.Errorf("cannot convert to f64") }
func (baseValue) TryBool() (bool, error)         { return false, fmt.Errorf("cannot convert to bool") }

// ---- None ----

type noneValue struct{ baseValue }

// None is the singleton absent value.
var None Value = noneValue{}

func (noneValue) Identifier() string        { return "none" }
func (noneValue) IsNone() bool              { return true }
func (noneValue) TypeName() string          { return "none" }
func (noneValue) DefaultFilename() string   { return "none" }
func (noneValue) DefaultMediaType() string  { return "application/octet-stream" }
func (noneValue) TryJSON() (interface{}, error) { return nil, nil }
func (v noneValue) Equal(other Value) bool  { return other != nil && other.IsNone() }
func (noneValue) Hash() uint64              { return hashString("none:") }
func (noneValue) String() string            { return "None" }

// ---- Bool ----

type boolValue struct {
	baseValue
	v bool
}

func NewBool(b bool) Value { return boolValue{v: b} }

func (boolValue) Identifier() string       { return "bool" }
func (boolValue) IsNone() bool             { return false }
func (boolValue) TypeName() string         { return "bool" }
func (boolValue) DefaultFilename() string  { return "value.json" }
func (boolValue) DefaultMediaType() string { return "application/json" }
func (b boolValue) TryBool() (bool, error) { return b.v, nil }
func (b boolValue) TryI32() (int32, error) {
	if b.v {
		return 1, nil
	}
	return 0, nil
}
func (b boolValue) TryI64() (int64, error) {
	i, _ := b.TryI32()
	return int64(i), nil
}
func (b boolValue) TryString() (string, error) {
	if b.v {
		return "true", nil
	}
	return "false", nil
}
func (b boolValue) TryJSON() (interface{}, error) { return b.v, nil }
func (b boolValue) Equal(other Value) bool {
	o, ok := other.(boolValue)
	return ok && o.v == b.v
}
func (b boolValue) Hash() uint64 { return hashString(fmt.Sprintf("bool:%v", b.v)) }
func (b boolValue) String() string {
	s, _ := b.TryString()
	return s
}

// ---- I32 / I64 / F64 ----

type i32Value struct {
	baseValue
	v int32
}

func NewI32(v int32) Value { return i32Value{v: v} }

func (i32Value) Identifier() string           { return "i32" }
func (i32Value) IsNone() bool                 { return false }
func (i32Value) TypeName() string             { return "i32" }
func (i32Value) DefaultFilename() string      { return "value.json" }
func (i32Value) DefaultMediaType() string     { return "application/json" }
func (v i32Value) TryI32() (int32, error)     { return v.v, nil }
func (v i32Value) TryI64() (int64, error)     { return int64(v.v), nil }
func (v i32Value) TryF64() (float64, error)   { return float64(v.v), nil }
func (v i32Value) TryBool() (bool, error)     { return v.v != 0, nil }
func (v i32Value) TryString() (string, error) { return fmt.Sprintf("%d", v.v), nil }
func (v i32Value) TryJSON() (interface{}, error) { return float64(v.v), nil }
func (v i32Value) Equal(other Value) bool {
	o, ok := other.(i32Value)
	return ok && o.v == v.v
}
func (v i32Value) Hash() uint64   { return hashString(fmt.Sprintf("i32:%d", v.v)) }
func (v i32Value) String() string { return fmt.Sprintf("%d", v.v) }

type i64Value struct {
	baseValue
	v int64
}

func NewI64(v int64) Value { return i64Value{v: v} }

func (i64Value) Identifier() string           { return "i64" }
func (i64Value) IsNone() bool                 { return false }
func (i64Value) TypeName() string             { return "i64" }
func (i64Value) DefaultFilename() string      { return "value.json" }
func (i64Value) DefaultMediaType() string     { return "application/json" }
func (v i64Value) TryI32() (int32, error)     { return int32(v.v), nil }
func (v i64Value) TryI64() (int64, error)     { return v.v, nil }
func (v i64Value) TryF64() (float64, error)   { return float64(v.v), nil }
func (v i64Value) TryBool() (bool, error)     { return v.v != 0, nil }
func (v i64Value) TryString() (string, error) { return fmt.Sprintf("%d", v.v), nil }
func (v i64Value) TryJSON() (interface{}, error) { return float64(v.v), nil }
func (v i64Value) Equal(other Value) bool {
	o, ok := other.(i64Value)
	return ok && o.v == v.v
}
func (v i64Value) Hash() uint64   { return hashString(fmt.Sprintf("i64:%d", v.v)) }
func (v i64Value) String() string { return fmt.Sprintf("%d", v.v) }

type f64Value struct {
	baseValue
	v float64
}

func NewF64(v float64) Value { return f64Value{v: v} }

func (f64Value) Identifier() string           { return "f64" }
func (f64Value) IsNone() bool                 { return false }
func (f64Value) TypeName() string             { return "f64" }
func (f64Value) DefaultFilename() string      { return "value.json" }
func (f64Value) DefaultMediaType() string     { return "application/json" }
func (v f64Value) TryI32() (int32, error)     { return int32(v.v), nil }
func (v f64Value) TryI64() (int64, error)     { return int64(v.v), nil }
func (v f64Value) TryF64() (float64, error)   { return v.v, nil }
func (v f64Value) TryBool() (bool, error)     { return v.v != 0, nil }
func (v f64Value) TryString() (string, error) { return fmt.Sprintf("%g", v.v), nil }
func (v f64Value) TryJSON() (interface{}, error) { return v.v, nil }
func (v f64Value) Equal(other Value) bool {
	o, ok := other.(f64Value)
	return ok && o.v == v.v
}
func (v f64Value) Hash() uint64   { return hashString(fmt.Sprintf("f64:%v", v.v)) }
func (v f64Value) String() string { return fmt.Sprintf("%g", v.v) }

// ---- Text ----

type textValue struct {
	baseValue
	v string
}

func NewText(s string) Value { return textValue{v: s} }

func (textValue) Identifier() string          { return "text" }
func (textValue) IsNone() bool                { return false }
func (textValue) TypeName() string            { return "text" }
func (textValue) DefaultFilename() string     { return "value.txt" }
func (textValue) DefaultMediaType() string    { return "text/plain" }
func (v textValue) TryString() (string, error) { return v.v, nil }
func (v textValue) TryI32() (int32, error) {
	i, err := parseInt32(v.v)
	return i, err
}
func (v textValue) TryI64() (int64, error) {
	i, err := parseInt64(v.v)
	return i, err
}
func (v textValue) TryF64() (float64, error) {
	f, err := parseFloat64(v.v)
	return f, err
}
func (v textValue) TryBool() (bool, error) {
	switch v.v {
	case "true", "True", "1":
		return true, nil
	case "false", "False", "0":
		return false, nil
	}
	return false, conversionError(v, "bool")
}
func (v textValue) TryJSON() (interface{}, error) { return v.v, nil }
func (v textValue) Equal(other Value) bool {
	o, ok := other.(textValue)
	return ok && o.v == v.v
}
func (v textValue) Hash() uint64   { return hashString("text:" + v.v) }
func (v textValue) String() string { return v.v }

// ---- Bytes ----

type bytesValue struct {
	baseValue
	v []byte
}

func NewBytes(b []byte) Value { return bytesValue{v: b} }

func (bytesValue) Identifier() string       { return "bytes" }
func (bytesValue) IsNone() bool             { return false }
func (bytesValue) TypeName() string         { return "bytes" }
func (bytesValue) DefaultFilename() string  { return "value.b" }
func (bytesValue) DefaultMediaType() string { return "application/octet-stream" }
func (v bytesValue) TryString() (string, error) { return string(v.v), nil }
func (v bytesValue) TryJSON() (interface{}, error) {
	return nil, lqerrors.NewSerializationError("json", fmt.Errorf("bytes values have no JSON representation"))
}
func (v bytesValue) Equal(other Value) bool {
	o, ok := other.(bytesValue)
	if !ok || len(o.v) != len(v.v) {
		return false
	}
	for i := range v.v {
		if v.v[i] != o.v[i] {
			return false
		}
	}
	return true
}
func (v bytesValue) Hash() uint64   { h := xxhash.New(); _, _ = h.Write(v.v); return h.Sum64() }
func (v bytesValue) String() string { return fmt.Sprintf("<%d bytes>", len(v.v)) }
func (v bytesValue) Bytes() []byte  { return v.v }

// ---- Array ----

type arrayValue struct {
	baseValue
	v []Value
}

func NewArray(items []Value) Value { return arrayValue{v: items} }

func (arrayValue) Identifier() string       { return "array" }
func (arrayValue) IsNone() bool             { return false }
func (arrayValue) TypeName() string         { return "array" }
func (arrayValue) DefaultFilename() string  { return "value.json" }
func (arrayValue) DefaultMediaType() string { return "application/json" }
func (v arrayValue) TryJSON() (interface{}, error) {
	out := make([]interface{}, len(v.v))
	for i, item := range v.v {
		j, err := item.TryJSON()
		if err != nil {
			return nil, err
		}
		out[i] = j
	}
	return out, nil
}
func (v arrayValue) Equal(other Value) bool {
	o, ok := other.(arrayValue)
	if !ok || len(o.v) != len(v.v) {
		return false
	}
	for i := range v.v {
		if !v.v[i].Equal(o.v[i]) {
			return false
		}
	}
	return true
}
func (v arrayValue) Hash() uint64 {
	h := xxhash.New()
	for _, item := range v.v {
		var buf [8]byte
		putUint64(buf[:], item.Hash())
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
func (v arrayValue) String() string { return fmt.Sprintf("Array(%d)", len(v.v)) }
func (v arrayValue) Items() []Value { return v.v }

// ---- Object ----

type objectValue struct {
	baseValue
	keys []string
	v    map[string]Value
}

// NewObject builds an Object value. keys fixes iteration/encoding order;
// it must contain exactly the keys present in fields.
func NewObject(keys []string, fields map[string]Value) Value {
	return objectValue{keys: keys, v: fields}
}

func (objectValue) Identifier() string       { return "object" }
func (objectValue) IsNone() bool             { return false }
func (objectValue) TypeName() string         { return "object" }
func (objectValue) DefaultFilename() string  { return "value.json" }
func (objectValue) DefaultMediaType() string { return "application/json" }
func (v objectValue) TryJSON() (interface{}, error) {
	out := make(map[string]interface{}, len(v.v))
	for k, item := range v.v {
		j, err := item.TryJSON()
		if err != nil {
			return nil, err
		}
		out[k] = j
	}
	return out, nil
}
func (v objectValue) Equal(other Value) bool {
	o, ok := other.(objectValue)
	if !ok || len(o.v) != len(v.v) {
		return false
	}
	for k, item := range v.v {
		oi, ok := o.v[k]
		if !ok || !item.Equal(oi) {
			return false
		}
	}
	return true
}
func (v objectValue) Hash() uint64 {
	h := xxhash.New()
	for _, k := range v.keys {
		_, _ = h.WriteString(k)
		var buf [8]byte
		putUint64(buf[:], v.v[k].Hash())
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
func (v objectValue) String() string     { return fmt.Sprintf("Object(%d)", len(v.v)) }
func (v objectValue) Keys() []string     { return v.keys }
func (v objectValue) Get(key string) (Value, bool) {
	val, ok := v.v[key]
	return val, ok
}

func hashString(s string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(s)
	return h.Sum64()
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
