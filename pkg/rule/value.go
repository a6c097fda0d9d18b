package rule

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// ErrTypeMismatch is matched by every TypeMismatchError.
var ErrTypeMismatch = errors.New("type mismatch")

// TypeMismatchError is returned when a value has no string representation.
type TypeMismatchError struct {
	Value    any
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected argument of type %q, %T given", e.Expected, e.Value)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// stringValue returns the string form of value. ok is false for nil values and nil pointers.
func stringValue(value any) (s string, ok bool, err error) {
	if value == nil {
		return "", false, nil
	}

	switch v := value.(type) {
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	case fmt.Stringer:
		if isNilPointer(value) {
			return "", false, nil
		}
		return v.String(), true, nil
	case encoding.TextMarshaler:
		if isNilPointer(value) {
			return "", false, nil
		}
		b, err := v.MarshalText()
		if err != nil {
			return "", false, fmt.Errorf("marshal text: %w", err)
		}
		return string(b), true, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "", false, nil
		}
		s, ok, err := stringValue(rv.Elem().Interface())
		var mismatch *TypeMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Value = value
		}
		return s, ok, err
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true, nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true, nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true, nil
	}

	return "", false, &TypeMismatchError{Value: value, Expected: "string-compatible"}
}

func isNilPointer(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
