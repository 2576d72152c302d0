package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrUnrecognizedShape reports a response body matching none of the
// shapes a caller declared it can handle.
var ErrUnrecognizedShape = errors.New("response shape unrecognized")

// List decodes a response that is either an envelope holding the list
// under one of the named keys (eg. {"categories": [...]}) or a bare
// JSON array.
func List[T any](resp Response, keys ...string) ([]T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(resp.Raw(), &fields); err == nil {
		for _, key := range keys {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			var items []T
			if err := json.Unmarshal(raw, &items); err == nil {
				return items, nil
			}
		}
		return nil, errors.Wrapf(ErrUnrecognizedShape, "no list under %v", keys)
	}

	var items []T
	if err := json.Unmarshal(resp.Raw(), &items); err == nil {
		return items, nil
	}
	return nil, ErrUnrecognizedShape
}

// Object decodes a response that carries the object under one of the
// named keys (eg. {"category": {...}}) or is the object itself.
func Object[T any](resp Response, keys ...string) (T, error) {
	var obj T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(resp.Raw(), &fields); err != nil {
		return obj, ErrUnrecognizedShape
	}
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			return obj, nil
		}
	}
	if err := json.Unmarshal(resp.Raw(), &obj); err == nil {
		return obj, nil
	}
	return obj, ErrUnrecognizedShape
}
