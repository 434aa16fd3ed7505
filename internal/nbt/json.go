package nbt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"
)

// Marshal encodes a compound as canonical JSON: sorted keys, NFC strings,
// no HTML escaping, no insignificant whitespace. Equal compounds always
// produce identical bytes.
func Marshal(c Compound) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTag(&buf, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTag(buf *bytes.Buffer, t Tag) error {
	switch v := t.(type) {
	case Int:
		fmt.Fprintf(buf, "%d", int32(v))
	case String:
		return writeString(buf, string(v))
	case List:
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeTag(buf, elem); err != nil {
				return fmt.Errorf("list[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case Compound:
		buf.WriteByte('{')
		for i, k := range v.SortedKeys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := writeTag(buf, v[k]); err != nil {
				return fmt.Errorf("value for key %q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	case nil:
		return fmt.Errorf("nil tag")
	default:
		return fmt.Errorf("unsupported tag type %T", t)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(out.Bytes(), []byte{'\n'}))
	return nil
}

// Unmarshal decodes JSON produced by Marshal. Values a tag cannot hold
// (booleans, nulls, floats, integers outside 32 bits) are dropped so the
// reader sees them as missing. Only malformed JSON or a non-object top level
// is an error.
func Unmarshal(data []byte) (Compound, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	c, ok := fromJSON(raw).(Compound)
	if !ok {
		return nil, fmt.Errorf("decode record: top level is %T, want compound", raw)
	}
	return c, nil
}

// fromJSON returns nil for values with no tag representation.
func fromJSON(v any) Tag {
	switch val := v.(type) {
	case json.Number:
		n, err := val.Int64()
		if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
			return nil
		}
		return Int(int32(n))
	case string:
		return String(norm.NFC.String(val))
	case []any:
		list := make(List, 0, len(val))
		for _, elem := range val {
			if t := fromJSON(elem); t != nil {
				list = append(list, t)
			}
		}
		return list
	case map[string]any:
		c := make(Compound, len(val))
		for k, elem := range val {
			if t := fromJSON(elem); t != nil {
				c[norm.NFC.String(k)] = t
			}
		}
		return c
	default:
		return nil
	}
}
