package schema_registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// EncodeJSON serializes v the way the registry expects request bodies:
// whole-number floats keep their fraction ({"a": 0.0} encodes as {"a":0.0}),
// HTML characters are not escaped and there is no trailing newline.
//
// Slices, arrays, pointers and string-keyed maps of any element type are
// walked recursively, so []float64{1} encodes as [1.0]. Values implementing
// json.Marshaler, json.Number and structs are written as encoding/json would.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(preserveZeroFraction(v)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

var marshalerType = reflect.TypeOf((*json.Marshaler)(nil)).Elem()

func preserveZeroFraction(v any) any {
	switch val := v.(type) {
	case nil, json.Number, json.RawMessage:
		return v
	case float64:
		return zeroFractionNumber(v, val, 64)
	case float32:
		return zeroFractionNumber(v, float64(val), 32)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().Implements(marshalerType) {
		return v
	}

	switch rv.Kind() {
	case reflect.Float64:
		return zeroFractionNumber(v, rv.Float(), 64)
	case reflect.Float32:
		return zeroFractionNumber(v, rv.Float(), 32)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return v
		}
		return preserveZeroFraction(rv.Elem().Interface())
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = preserveZeroFraction(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		// []byte is encoded as base64.
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		return walkSequence(rv)
	case reflect.Array:
		return walkSequence(rv)
	default:
		return v
	}
}

func walkSequence(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = preserveZeroFraction(rv.Index(i).Interface())
	}
	return out
}

// zeroFractionNumber returns v unchanged unless f is a finite whole number.
func zeroFractionNumber(v any, f float64, bitSize int) any {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return v
	}
	return json.Number(strconv.FormatFloat(f, 'f', -1, bitSize) + ".0")
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

// normalizeSchema round-trips schema text through the JSON decoder and
// EncodeJSON, so whitespace is dropped while numbers keep their original
// spelling. Object keys come out sorted ({"type","name","fields"} is sent as
// {"fields","name","type"}); array order, and with it Avro field order, is kept.
func normalizeSchema(schema string) (string, error) {
	if strings.TrimSpace(schema) == "" {
		return "", fmt.Errorf("%w: schema is empty", ErrInvalidArgument)
	}

	decoded, err := decodeJSON([]byte(schema))
	if err != nil {
		return "", fmt.Errorf("%w: schema is not valid JSON: %v", ErrInvalidArgument, err)
	}

	encoded, err := EncodeJSON(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: cannot encode schema: %v", ErrInvalidArgument, err)
	}
	return string(encoded), nil
}
