package toon

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// TOON shares JSON's data model, so the bridge is total in both
// directions. Object key order is part of the codec contract, which rules
// out a map[string]interface{} round-trip: FromJSON walks the decoder's
// token stream and ToJSON writes ordered objects itself. Scalar encoding
// and string escaping are delegated to goccy/go-json.

// FromJSON converts a JSON document to a Value tree. JSON numbers with no
// fraction or exponent become Int when they fit int64, Float otherwise;
// numbers outside the float64 range become Null.
func FromJSON(data []byte) (*Value, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("toon: JSON parse error: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("toon: trailing data after JSON value")
	}
	return v, nil
}

func decodeJSONValue(dec *gojson.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return Null(), nil

	case bool:
		return Bool(t), nil

	case string:
		return Str(t), nil

	case gojson.Number:
		return numberToValue(string(t)), nil

	case gojson.Delim:
		switch t {
		case '{':
			obj := Obj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key token %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil

		case '[':
			arr := Arr()
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)

	default:
		return nil, fmt.Errorf("unsupported JSON token %T", tok)
	}
}

// numberToValue maps a JSON number literal to Int or Float.
func numberToValue(s string) *Value {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(n)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return Null()
	}
	return Float(f)
}

// ToJSON converts a Value tree to JSON bytes, preserving object field
// order. Non-finite floats become null, matching the encoder.
func ToJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v *Value) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")

	case KindBool:
		if v.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case KindInt:
		buf.WriteString(strconv.FormatInt(v.intVal, 10))

	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			buf.WriteString("null")
			return nil
		}
		out, err := gojson.Marshal(v.floatVal)
		if err != nil {
			return err
		}
		buf.Write(out)

	case KindString:
		out, err := gojson.Marshal(v.strVal)
		if err != nil {
			return err
		}
		buf.Write(out)

	case KindArray:
		buf.WriteByte('[')
		for i, it := range v.arrVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, it); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.objVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := gojson.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSONValue(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	default:
		return fmt.Errorf("toon: unsupported value kind %s", v.Kind())
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return ToJSON(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := FromJSON(data)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}
