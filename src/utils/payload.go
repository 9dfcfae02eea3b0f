package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

var decimalFields = []string{"base_price", "price", "duration_hours"}

// nullableFields may be sent as JSON null; any other key sent as null is
// rejected instead of silently keeping its current value.
var nullableFields = map[string]bool{
	"duration_hours":  true,
	"fullDescription": true,
	"attributes":      true,
}

type normalizer interface {
	Normalize()
}

// Payload is a decoded JSON object body. Keys records which fields the
// client actually sent so partial updates can tell "absent" from "zero".
type Payload struct {
	raw  []byte
	keys map[string]json.RawMessage
}

// ParsePayload accepts an empty body as an empty object.
func ParsePayload(raw []byte) (*Payload, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	keys := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &keys); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &BadRequestError{Msg: "Invalid data. Expected a dictionary."}
		}
		return nil, &BadRequestError{Msg: fmt.Sprintf("JSON parse error - %s", err.Error())}
	}
	return &Payload{raw: raw, keys: keys}, nil
}

// PayloadFromValues builds a payload from already split values such as
// multipart form fields.
func PayloadFromValues(values map[string]string) (*Payload, error) {
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return ParsePayload(raw)
}

func (p *Payload) Has(key string) bool {
	_, ok := p.keys[key]
	return ok
}

// Bind decodes the payload over dst and runs its binding rules. Fields
// already set on dst and absent from the payload are left alone.
func (p *Payload) Bind(dst any) error {
	fields := FieldErrors{}
	known := jsonFieldNames(dst)
	for name, v := range p.keys {
		if string(v) == "null" && known[name] && !nullableFields[name] {
			fields.Add(name, "This field may not be null.")
		}
	}
	for _, name := range decimalFields {
		v, ok := p.keys[name]
		if !ok || string(v) == "null" {
			continue
		}
		var d decimal.Decimal
		if err := d.UnmarshalJSON(v); err != nil {
			fields.Add(name, "A valid number is required.")
		}
	}
	if err := fields.Err(); err != nil {
		return err
	}

	if err := json.Unmarshal(p.raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			fields.Add(typeErr.Field, fmt.Sprintf("Incorrect type. Expected %s but got %s.", typeErr.Type.String(), typeErr.Value))
			return fields.Err()
		}
		return &BadRequestError{Msg: fmt.Sprintf("JSON parse error - %s", err.Error())}
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	return validate(dst)
}

// jsonFieldNames lists the JSON keys a struct (or pointer to one) decodes.
func jsonFieldNames(dst any) map[string]bool {
	names := map[string]bool{}
	t := reflect.TypeOf(dst)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[name] = true
	}
	return names
}
