package value

import (
	"fmt"
	"html"

	lqerrors "github.com/orest-d/liquer-go/errors"
)

// Built-in serialization format identifiers, per the "as_bytes" /
// "deserialize" registry.
const (
	FormatJSON = "json"
	FormatText = "txt"
	FormatHTML = "html"
	FormatRaw  = "b"
)

// AsBytes renders v into the wire format named by format. The four
// built-in formats are always available; extension kinds registered via
// RegisterType may additionally accept formats of their own choosing.
func AsBytes(v Value, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSONBytes(v)
	case FormatText:
		s, err := v.TryString()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormatHTML:
		s, err := v.TryString()
		if err != nil {
			return nil, err
		}
		return []byte(html.EscapeString(s)), nil
	case FormatRaw:
		if b, ok := v.(bytesValue); ok {
			return b.Bytes(), nil
		}
		return nil, lqerrors.NewSerializationError(format, fmt.Errorf("%s value has no raw byte representation", v.TypeName()))
	}
	if codec, ok := lookupExtension(v.Identifier()); ok {
		return codec.Encode(v, format)
	}
	return nil, lqerrors.NewSerializationError(format, fmt.Errorf("unknown format"))
}

// Deserialize builds a Value of the given type identifier from wire bytes
// encoded in format. typeID is one of the built-in kind identifiers
// ("none", "bool", "i32", "i64", "f64", "text", "array", "object",
// "bytes") or an identifier registered via RegisterType.
func Deserialize(data []byte, typeID, format string) (Value, error) {
	switch typeID {
	case "none":
		return None, nil
	case "bool", "i32", "i64", "f64", "text", "array", "object":
		switch format {
		case FormatJSON:
			return FromJSONBytes(data)
		case FormatText:
			return NewText(string(data)), nil
		default:
			return nil, lqerrors.NewSerializationError(format, fmt.Errorf("cannot deserialize %s from %s", typeID, format))
		}
	case "bytes":
		return NewBytes(data), nil
	}
	if codec, ok := lookupExtension(typeID); ok {
		return codec.Decode(data, format)
	}
	return nil, lqerrors.NewSerializationError(format, fmt.Errorf("unknown type identifier %q", typeID))
}
