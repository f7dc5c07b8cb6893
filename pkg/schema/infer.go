// Package schema infers a JSON schema from a sample of flat records.
//
// Inventio records are commonly flat objects with string values. A property
// which only ever appears as null is assumed to possibly be a string.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Property holds the set of JSON types observed for one key.
type Property struct {
	types map[string]struct{}
}

// Types returns the observed types, sorted. An all-null property widens to
// null plus string, since null by itself is not a useful type.
func (p *Property) Types() []string {
	if len(p.types) == 1 {
		if _, onlyNull := p.types["null"]; onlyNull {
			return []string{"null", "string"}
		}
	}
	types := make([]string, 0, len(p.types))
	for t := range p.types {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// MarshalJSON renders the property as {"type": [...]}.
func (p *Property) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{"type": p.Types()})
}

// Inferrer accumulates observed records.
type Inferrer struct {
	properties map[string]*Property
}

// NewInferrer returns an empty Inferrer.
func NewInferrer() *Inferrer {
	return &Inferrer{properties: make(map[string]*Property)}
}

// Add observes one record.
func (in *Inferrer) Add(record map[string]interface{}) {
	for key, value := range record {
		prop, ok := in.properties[key]
		if !ok {
			prop = &Property{types: map[string]struct{}{"null": {}}}
			in.properties[key] = prop
		}
		prop.types[typeOf(value)] = struct{}{}
	}
}

// typeOf maps a decoded JSON value to its schema type. Strings are the
// default since the API delivers everything as XML text.
func typeOf(value interface{}) string {
	switch value.(type) {
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case bool:
		return "bool"
	case float64, int, int64, json.Number:
		return "number"
	case nil:
		return "null"
	default:
		return "string"
	}
}

// Schema is a best-effort JSON schema for the observed records.
type Schema struct {
	Type       string               `json:"type"`
	Properties map[string]*Property `json:"properties"`
	Required   []string             `json:"required,omitempty"`
}

// Schema builds the schema. When required keys are given, company_name is
// always part of the required set, and a required key that was never observed
// is an error.
func (in *Inferrer) Schema(required ...string) (*Schema, error) {
	s := &Schema{
		Type:       "object",
		Properties: in.properties,
	}

	if len(required) > 0 {
		seen := map[string]struct{}{"company_name": {}}
		for _, key := range required {
			seen[key] = struct{}{}
		}
		for key := range seen {
			if _, ok := in.properties[key]; !ok {
				keys := make([]string, 0, len(in.properties))
				for k := range in.properties {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				return nil, fmt.Errorf("required property %q was not found in object keys %v", key, keys)
			}
			s.Required = append(s.Required, key)
		}
		sort.Strings(s.Required)
	}

	return s, nil
}
