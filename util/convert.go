package util

import (
	"fmt"
	"math"
	"reflect"

	"github.com/napalu/argtree/errs"
)

// ConvertTo converts a parsed value to the Go type target. nil becomes the zero value, numbers
// convert between numeric kinds without losing precision, []any and map[any]any convert element
// by element and pointer targets receive a pointer to the converted value.
func ConvertTo(v any, target reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(target), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(target) {
		return rv, nil
	}

	switch {
	case target.Kind() == reflect.Pointer:
		elem, err := ConvertTo(v, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case isNumeric(rv.Kind()) && isNumeric(target.Kind()):
		return convertNumeric(rv, target)
	case rv.Kind() == target.Kind() && (rv.Kind() == reflect.String || rv.Kind() == reflect.Bool):
		return rv.Convert(target), nil
	case (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && target.Kind() == reflect.Slice:
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem, err := ConvertTo(rv.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	case rv.Kind() == reflect.Map && target.Kind() == reflect.Map:
		out := reflect.MakeMapWithSize(target, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key, err := ConvertTo(iter.Key().Interface(), target.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			val, err := ConvertTo(iter.Value().Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(key, val)
		}
		return out, nil
	}

	return reflect.Value{}, conversionError(v, target)
}

func convertNumeric(rv reflect.Value, target reflect.Type) (reflect.Value, error) {
	switch {
	case isFloat(rv.Kind()) && !isFloat(target.Kind()):
		f := rv.Float()
		if f != math.Trunc(f) {
			return reflect.Value{}, conversionError(rv.Interface(), target)
		}
	case isSigned(rv.Kind()) && isUnsigned(target.Kind()):
		if rv.Int() < 0 {
			return reflect.Value{}, conversionError(rv.Interface(), target)
		}
	}

	out := rv.Convert(target)
	if !isFloat(target.Kind()) && !isFloat(rv.Kind()) {
		back := out.Convert(rv.Type())
		if !back.Equal(rv) {
			return reflect.Value{}, conversionError(rv.Interface(), target)
		}
	}

	return out, nil
}

func conversionError(v any, target reflect.Type) error {
	return errs.NewValueError(errs.ErrConversion, fmt.Sprint(v), target.String())
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) || isFloat(k)
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
