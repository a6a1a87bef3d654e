package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// UnmarshalJSON parses the JSON encoded data and stores the result in the
// value pointed to by x.
//
// This function is intended to be used in place of the standard
// json.Unmarshal when json.Number is required, and it rejects input with
// trailing data after the first decoded value.
func UnmarshalJSON(bs []byte, x interface{}) error {
	dec := NewJSONDecoder(bytes.NewReader(bs))
	if err := dec.Decode(x); err != nil {
		return err
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		return fmt.Errorf("invalid JSON input: extra data after top-level value")
	}
	return nil
}

// NewJSONDecoder returns a new decoder that reads from r.
//
// This function is intended to be used in place of the standard
// json.NewDecoder when json.Number is required.
func NewJSONDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

// MustUnmarshalJSON parses the JSON encoded data and returns the result.
//
// If the data cannot be decoded, this function will panic. This function is
// for test purposes.
func MustUnmarshalJSON(bs []byte) interface{} {
	var x interface{}
	if err := UnmarshalJSON(bs, &x); err != nil {
		panic(err)
	}
	return x
}

// MustMarshalJSON returns the JSON encoding of x.
//
// If the data cannot be encoded, this function will panic. This function is
// for test purposes.
func MustMarshalJSON(x interface{}) []byte {
	bs, err := json.Marshal(x)
	if err != nil {
		panic(err)
	}
	return bs
}

// RoundTrip encodes x to JSON and decodes the result back into x, collapsing
// typed Go values (structs, named slice/map types) into the plain
// interface{}/json.Number representation the rest of the package expects.
// Works with both references and values.
func RoundTrip(x *interface{}) error {
	bs, err := json.Marshal(*x)
	if err != nil {
		return err
	}
	return UnmarshalJSON(bs, x)
}

// Reference returns a pointer to its argument unless the argument already is
// a pointer. If the argument is **t, or ***t, etc, it will return *t.
//
// Used for preparing Go types (including pointers to structs) into values to
// be put through RoundTrip.
func Reference(x interface{}) *interface{} {
	v := reflect.ValueOf(x)
	if v.Kind() != reflect.Ptr {
		return &x
	}
	for v.Kind() == reflect.Ptr && v.Elem().Kind() == reflect.Ptr {
		v = v.Elem()
	}
	y := v.Interface()
	return &y
}

// Unmarshal decodes a YAML, JSON or JSON extension value into the value
// pointed to by v. Input that is already valid JSON is decoded directly;
// everything else is parsed as YAML and converted to the equivalent JSON
// representation first.
func Unmarshal(bs []byte, v interface{}) error {
	if json.Valid(bs) {
		return UnmarshalJSON(bs, v)
	}
	var y interface{}
	if err := yaml.Unmarshal(bs, &y); err != nil {
		return err
	}
	jsonBytes, err := json.Marshal(y)
	if err != nil {
		return err
	}
	return UnmarshalJSON(jsonBytes, v)
}
