package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports the first unparseable token of a candidate. Offset is
// the byte position within the candidate at which decoding failed.
type SyntaxError struct {
	Offset  int64
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("structo: syntax error at offset %d: %s", e.Offset, e.Message)
}

// Decode parses candidate into a generic value tree. The candidate must
// contain one complete JSON value; content after it is ignored, since the
// extractor already bounded the candidate. On failure the returned error is
// always a *SyntaxError and the returned Value must not be used.
func Decode(candidate string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, toSyntaxError(err, dec)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return valueFromToken(tok, dec)
}

func valueFromToken(tok json.Token, dec *json.Decoder) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		default:
			// ']' and '}' at value position never escape dec.Token, but
			// keep the decoder honest.
			return Value{}, fmt.Errorf("unexpected %q", t.String())
		}
	case string:
		return Value{Kind: KindString, Str: t}, nil
	case json.Number:
		return Value{Kind: KindNumber, Num: t.String()}, nil
	case bool:
		return Value{Kind: KindBool, Bool: t}, nil
	case nil:
		return Value{Kind: KindNull}, nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindMapping}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		member, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		// Duplicate keys keep the first position, last value wins.
		if i, seen := index[key]; seen {
			v.Map[i].Value = member
			continue
		}
		index[key] = len(v.Map)
		v.Map = append(v.Map, Member{Key: key, Value: member})
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return Value{}, err
	}
	return v, nil
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	v := Value{Kind: KindSequence}
	for dec.More() {
		elem, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		v.Seq = append(v.Seq, elem)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return Value{}, err
	}
	return v, nil
}

func toSyntaxError(err error, dec *json.Decoder) *SyntaxError {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return &SyntaxError{Offset: syn.Offset, Message: syn.Error()}
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &SyntaxError{Offset: dec.InputOffset(), Message: "unexpected end of input"}
	}
	return &SyntaxError{Offset: dec.InputOffset(), Message: err.Error()}
}
