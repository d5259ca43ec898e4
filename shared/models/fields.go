package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Fields holds the document fields the server stores and returns without
// interpreting them. Numbers decoded from a request body stay json.Number so
// they are stored exactly as received.
type Fields map[string]interface{}

// marshalDocument encodes base and adds the extra fields next to its own.
// Typed fields win on a name clash.
func marshalDocument(base interface{}, extra Fields) ([]byte, error) {
	data, err := json.Marshal(base)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var typed map[string]json.RawMessage
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, err
	}

	merged := make(map[string]interface{}, len(typed)+len(extra))
	for k, v := range extra {
		merged[k] = plainValue(v)
	}
	for k, v := range typed {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// unmarshalDocument decodes data into base and returns every top-level key
// base has no field for.
func unmarshalDocument(data []byte, base interface{}) (Fields, error) {
	if err := json.Unmarshal(data, base); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var all map[string]interface{}
	if err := dec.Decode(&all); err != nil {
		return nil, err
	}

	known := jsonKeys(reflect.TypeOf(base).Elem())
	var extra Fields
	for k, v := range all {
		if _, ok := known[k]; ok {
			continue
		}
		if extra == nil {
			extra = Fields{}
		}
		extra[k] = v
	}
	return extra, nil
}

var keyCache sync.Map

func jsonKeys(t reflect.Type) map[string]struct{} {
	if cached, ok := keyCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		keys[name] = struct{}{}
	}

	keyCache.Store(t, keys)
	return keys
}

// plainValue turns values decoded from BSON into types encoding/json writes
// naturally.
func plainValue(v interface{}) interface{} {
	switch x := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(x))
		for _, e := range x {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case primitive.M:
		return plainValue(map[string]interface{}(x))
	case Fields:
		return plainValue(map[string]interface{}(x))
	case map[string]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, e := range x {
			m[k] = plainValue(e)
		}
		return m
	case primitive.A:
		return plainValue([]interface{}(x))
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, e := range x {
			out[i] = plainValue(e)
		}
		return out
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time()
	case primitive.Decimal128:
		return json.Number(x.String())
	case bson.Raw:
		var m map[string]interface{}
		if err := bson.Unmarshal(x, &m); err != nil {
			return nil
		}
		return plainValue(m)
	default:
		return v
	}
}
