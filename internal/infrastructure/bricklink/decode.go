package bricklink

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode unmarshals an envelope data field into T and validates every struct in it.
func Decode[T any](data json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &APIError{Kind: ErrDecode, Message: fmt.Sprintf("malformed %T payload", out), Err: err}
	}
	if err := validatePayload(reflect.ValueOf(out)); err != nil {
		return out, &APIError{Kind: ErrDecode, Message: fmt.Sprintf("invalid %T payload", out), Err: err}
	}
	return out, nil
}

func validatePayload(v reflect.Value) error {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return validatePayload(v.Elem())
	case reflect.Struct:
		return validate.Struct(v.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := validatePayload(v.Index(i)); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}
