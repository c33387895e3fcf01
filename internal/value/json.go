package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MarshalJSON implements [json.Marshaler] for a [Mapping], writing keys in insertion order.
//
// Floats are written with [FormatFloat] so they keep a fractional part and decode back
// as floats. Non-finite floats have no JSON representation and are an error.
func (m *Mapping) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, m); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// MarshalJSON implements [json.Marshaler] for a [Sequence].
func (s Sequence) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeJSON(buf, s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalJSON implements [json.Unmarshaler] for a [Mapping], keeping the document's
// key order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}

	mapping, ok := decoded.(*Mapping)
	if !ok {
		return fmt.Errorf("expected a JSON object, got %s", describe(decoded))
	}

	*m = *mapping

	return nil
}

// DecodeJSON decodes a single JSON value from r into a tree.
//
// Objects become [*Mapping] in document order, arrays [Sequence]. Number literals without
// a fraction or exponent decode as int, all others as float64.
func DecodeJSON(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	v, err := decodeValue(decoder)
	if err != nil {
		return nil, fmt.Errorf("could not decode JSON: %w", err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("could not decode JSON: unexpected data after top-level value")
	}

	return v, nil
}

func decodeValue(decoder *json.Decoder) (any, error) {
	tok, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '{':
			return decodeObject(decoder)
		case '[':
			return decodeArray(decoder)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", tok)
		}
	case json.Number:
		return decodeNumber(tok)
	default:
		// string, bool or nil
		return tok, nil
	}
}

func decodeObject(decoder *json.Decoder) (*Mapping, error) {
	m := NewMapping()

	for decoder.More() {
		tok, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", tok)
		}

		if _, exists := m.Get(key); exists {
			return nil, fmt.Errorf("duplicate key %q", key)
		}

		v, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}

		m.Set(key, v)
	}

	// Closing '}'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeArray(decoder *json.Decoder) (Sequence, error) {
	seq := Sequence{}

	for decoder.More() {
		v, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}

		seq = append(seq, v)
	}

	// Closing ']'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}

	return seq, nil
}

func decodeNumber(n json.Number) (any, error) {
	text := n.String()
	if strings.ContainsAny(text, ".eE") {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid float %s: %w", text, err)
		}

		return f, nil
	}

	i, err := strconv.Atoi(text)
	if err == nil {
		return i, nil
	}

	// Beyond the int range but still a valid unsigned integer
	if u, uerr := strconv.ParseUint(text, 10, 64); uerr == nil {
		return u, nil
	}

	return nil, fmt.Errorf("invalid integer %s: %w", text, err)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	v, kind, err := Normalize(v)
	if err != nil {
		return err
	}

	switch kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.(bool)))
	case KindInt:
		buf.WriteString(FormatInt(v))
	case KindFloat:
		f := v.(float64)
		if !IsFinite(f) {
			return fmt.Errorf("%w: non-finite float %s cannot be encoded as JSON", ErrUnsupported, FormatFloat(f))
		}

		buf.WriteString(FormatFloat(f))
	case KindString:
		return writeJSONString(buf, v.(string))
	case KindSequence:
		buf.WriteByte('[')

		for i, item := range v.(Sequence) {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')

		first := true
		for key, item := range v.(*Mapping).All() {
			if !first {
				buf.WriteByte(',')
			}

			first = false

			if err := writeJSONString(buf, key); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := writeJSON(buf, item); err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
		}

		buf.WriteByte('}')
	}

	return nil
}

// writeJSONString writes s as a JSON string without HTML escaping.
func writeJSONString(buf *bytes.Buffer, s string) error {
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(s); err != nil {
		return err
	}

	// Encode always terminates with a newline
	buf.Truncate(buf.Len() - 1)

	return nil
}

// describe names the JSON type of a decoded value for error messages.
func describe(v any) string {
	kind, err := KindOf(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}

	return kind.String()
}
