package client

import (
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/fivetwenty-io/minds/pkg/minds"
)

// decodeRecord converts a generic JSON object into a typed record using the
// record's json tags. Scalars are coerced where the server sends a looser
// type than the record declares.
func decodeRecord(item map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       namedObjectToString,
		Result:           out,
	})
	if err != nil {
		return minds.WrapError(minds.KindUnknown, "unexpected error: "+err.Error(), err)
	}

	err = decoder.Decode(item)
	if err != nil {
		return minds.WrapError(minds.KindUnknown, "unexpected error: decoding record: "+err.Error(), err)
	}

	return nil
}

// namedObjectToString lets a {"name": ...} object stand in for its name, so a
// mind's datasources decode whether the server sends names or objects.
func namedObjectToString(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.Map || to.Kind() != reflect.String {
		return data, nil
	}

	object, ok := data.(map[string]interface{})
	if !ok {
		return data, nil
	}

	if name, ok := object["name"].(string); ok {
		return name, nil
	}

	return data, nil
}

// hasEngine reports whether a raw datasource carries a non-empty engine.
func hasEngine(item map[string]interface{}) bool {
	engine, ok := item["engine"]
	if !ok || engine == nil {
		return false
	}

	if s, isString := engine.(string); isString {
		return s != ""
	}

	return true
}
