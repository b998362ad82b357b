package dialect

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/arthur-debert/dictus/pkg/tree"
)

func decodeJSON(data []byte) (*tree.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.NewMap(), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON document")
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("top level must be an object")
	}
	return jsonValue(result).(*tree.Map), nil
}

func jsonValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := tree.NewMap()
		r.ForEach(func(key, value gjson.Result) bool {
			m.Set(key.String(), jsonValue(value))
			return true
		})
		return m
	case r.IsArray():
		list := []any{}
		r.ForEach(func(_, value gjson.Result) bool {
			list = append(list, jsonValue(value))
			return true
		})
		return list
	}

	switch r.Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	case gjson.String:
		return r.Str
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return i
		}
		return r.Num
	}
	return nil
}
