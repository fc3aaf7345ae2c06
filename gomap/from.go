package gomap

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/signadot/space/ir"

	"github.com/goccy/go-yaml"
)

// FromAny converts a Go value to a node.
//
// Maps become trees with their keys in sorted order, yaml.MapSlice values
// keep their order, slices and arrays become trees keyed "0", "1", ...,
// structs are converted through their exported fields, nil becomes the
// leaf "null" and time.Time values become their unix time in
// milliseconds. Values reachable from themselves are dropped where the
// cycle closes.
func FromAny(v any) (*ir.Node, error) {
	fr := &fromer{visiting: map[uintptr]bool{}}
	return fr.from(reflect.ValueOf(v))
}

type fromer struct {
	visiting map[uintptr]bool
}

func (fr *fromer) from(v reflect.Value) (*ir.Node, error) {
	if !v.IsValid() {
		return ir.FromString("null"), nil
	}
	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case *ir.Node:
			if x == nil {
				return ir.FromString("null"), nil
			}
			return x.Clone(), nil
		case yaml.MapSlice:
			return fr.fromMapSlice(x)
		case time.Time:
			return ir.FromString(strconv.FormatInt(x.UnixMilli(), 10)), nil
		case json.Number:
			return ir.FromString(x.String()), nil
		case []byte:
			return ir.FromString(string(x)), nil
		}
	}
	switch v.Kind() {
	case reflect.String:
		return ir.FromString(v.String()), nil
	case reflect.Bool:
		return ir.FromString(strconv.FormatBool(v.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromString(strconv.FormatInt(v.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return ir.FromString(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return ir.FromString(strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())), nil
	case reflect.Interface:
		if v.IsNil() {
			return ir.FromString("null"), nil
		}
		return fr.from(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			return ir.FromString("null"), nil
		}
		var res *ir.Node
		err := fr.enter(v, func() error {
			var err error
			res, err = fr.from(v.Elem())
			return err
		})
		return res, err
	case reflect.Map:
		if v.IsNil() {
			return ir.FromString("null"), nil
		}
		res := ir.New()
		err := fr.enter(v, func() error {
			return fr.fromMap(v, res)
		})
		return res, err
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return ir.New(), nil
		}
		res := ir.New()
		err := fr.enter(v, func() error {
			return fr.fromSlice(v, res)
		})
		return res, err
	case reflect.Struct:
		res := ir.New()
		err := fr.fromStruct(v, res)
		return res, err
	default:
		return nil, fmt.Errorf("%w: cannot convert %s", ErrUnsupported, v.Type())
	}
}

var errCycle = errors.New("cycle")

// enter runs fn with v marked as being visited. A value already being
// visited closes a cycle and reports errCycle.
func (fr *fromer) enter(v reflect.Value, fn func() error) error {
	if v.Kind() == reflect.Array || (v.Kind() == reflect.Slice && v.Len() == 0) {
		return fn()
	}
	p := v.Pointer()
	if fr.visiting[p] {
		return errCycle
	}
	fr.visiting[p] = true
	defer delete(fr.visiting, p)
	return fn()
}

func (fr *fromer) add(res *ir.Node, field string, v reflect.Value) error {
	child, err := fr.from(v)
	if err == errCycle {
		return nil
	}
	if err != nil {
		return err
	}
	res.SetPair(field, child, -1, false)
	return nil
}

func (fr *fromer) fromMap(v reflect.Value, res *ir.Node) error {
	keys := map[string]reflect.Value{}
	for _, k := range v.MapKeys() {
		keys[fmt.Sprint(k.Interface())] = k
	}
	for _, k := range slices.Sorted(maps.Keys(keys)) {
		if err := fr.add(res, k, v.MapIndex(keys[k])); err != nil {
			return err
		}
	}
	return nil
}

func (fr *fromer) fromSlice(v reflect.Value, res *ir.Node) error {
	for i := range v.Len() {
		if err := fr.add(res, strconv.Itoa(i), v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (fr *fromer) fromMapSlice(ms yaml.MapSlice) (*ir.Node, error) {
	res := ir.New()
	for _, item := range ms {
		if err := fr.add(res, fmt.Sprint(item.Key), reflect.ValueOf(item.Value)); err != nil {
			return nil, err
		}
	}
	return res, nil
}
