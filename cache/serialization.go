package cache

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"
	"strconv"
)

// Serialize encodes a value for the remote backends. Byte slices pass through
// untouched and integers are written in decimal so that redis and memcached
// can see them as numbers. Anything else is gob encoded.
func Serialize(value interface{}) ([]byte, error) {
	if data, ok := value.([]byte); ok {
		return data, nil
	}

	v := reflect.ValueOf(value)
	switch {
	case v.CanInt():
		return strconv.AppendInt(nil, v.Int(), 10), nil
	case v.CanUint():
		return strconv.AppendUint(nil, v.Uint(), 10), nil
	}

	var b bytes.Buffer
	if err := gob.NewEncoder(&b).Encode(value); err != nil {
		return nil, fmt.Errorf("cache: encode %T: %w", value, err)
	}
	return b.Bytes(), nil
}

// Deserialize reverses Serialize into ptr, which must be a pointer.
func Deserialize(data []byte, ptr interface{}) error {
	if out, ok := ptr.(*[]byte); ok {
		*out = data
		return nil
	}

	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrInvalidValue
	}

	elem := v.Elem()
	switch {
	case elem.CanInt():
		i, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("cache: parse int %q: %w", data, err)
		}
		elem.SetInt(i)
		return nil
	case elem.CanUint():
		u, err := strconv.ParseUint(string(data), 10, 64)
		if err != nil {
			return fmt.Errorf("cache: parse uint %q: %w", data, err)
		}
		elem.SetUint(u)
		return nil
	}

	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(ptr); err != nil {
		cacheLog.Warn("Deserialize: gob decoding failed", "error", err)
		return fmt.Errorf("cache: decode %T: %w", ptr, err)
	}
	return nil
}
