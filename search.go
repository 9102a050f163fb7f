package qutrace

import (
	"fmt"
	"reflect"
	"sort"
)

/*
FindPromises walks an arbitrary value returned by a traced function and
collects the distinct promises reachable inside it. Nil and plain data
(booleans, numbers, strings) contribute nothing; maps are searched through
keys and values, slices and arrays element-wise, structs through their
exported fields, pointers and interfaces through their referents.

A raw *Qubit anywhere in the output is ErrQubitEscaped: qubits cannot outlive
their circuit, so only classical promises may be returned. Values the walk
cannot recurse into (functions, channels) are ErrUnsearchable.

The result is ordered by promise creation, keeping compilation deterministic
regardless of map iteration order.
*/
func FindPromises(output any) ([]*Promise, error) {
	found := make(map[*Promise]bool)
	if err := searchValue(reflect.ValueOf(output), found); err != nil {
		return nil, err
	}
	promises := make([]*Promise, 0, len(found))
	for p := range found {
		promises = append(promises, p)
	}
	sort.Slice(promises, func(i, j int) bool {
		return promises[i].seq < promises[j].seq
	})
	return promises, nil
}

var (
	promiseType = reflect.TypeOf((*Promise)(nil))
	qubitType   = reflect.TypeOf((*Qubit)(nil))
)

func searchValue(v reflect.Value, found map[*Promise]bool) error {
	if !v.IsValid() {
		return nil
	}

	if v.Type() == promiseType {
		if !v.IsNil() {
			found[v.Interface().(*Promise)] = true
		}
		return nil
	}
	if v.Type() == qubitType {
		return ErrQubitEscaped
	}

	switch v.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return nil

	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return searchValue(v.Elem(), found)

	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := searchValue(v.Index(i), found); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		for _, key := range v.MapKeys() {
			if err := searchValue(key, found); err != nil {
				return err
			}
			if err := searchValue(v.MapIndex(key), found); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !v.Type().Field(i).IsExported() {
				continue
			}
			if err := searchValue(v.Field(i), found); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsearchable, v.Type())
	}
}
