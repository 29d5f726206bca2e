package util

import (
	"encoding/json"
	"errors"
	"reflect"
)

// SerializeToJSONString serializes the given value to a JSON string.
func SerializeToJSONString(v interface{}) (string, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}

// DeserializeFromJSONBytes deserializes a vendor response body into v.
// An empty body is reported as an error rather than leaving v untouched.
func DeserializeFromJSONBytes(data []byte, v interface{}) error {
	// Check if v is a pointer
	if reflect.ValueOf(v).Kind() != reflect.Ptr {
		return errors.New("input must be a pointer")
	}
	if len(data) == 0 {
		return errors.New("empty JSON body")
	}
	return json.Unmarshal(data, v)
}
