package schema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInferTypes(t *testing.T) {
	in := NewInferrer()
	in.Add(map[string]interface{}{
		"name":   "Acme",
		"amount": 118.5,
		"open":   true,
		"tags":   []interface{}{"a"},
		"meta":   map[string]interface{}{"k": "v"},
		"gone":   nil,
	})

	s, err := in.Schema()
	if err != nil {
		t.Fatal(err)
	}

	cases := map[string][]string{
		"name":   {"null", "string"},
		"amount": {"null", "number"},
		"open":   {"bool", "null"},
		"tags":   {"array", "null"},
		"meta":   {"null", "object"},
	}
	for key, want := range cases {
		prop, ok := s.Properties[key]
		if !ok {
			t.Errorf("expected property %q", key)
			continue
		}
		if got := prop.Types(); !reflect.DeepEqual(got, want) {
			t.Errorf("property %q: expected types %v, got %v", key, want, got)
		}
	}
}

func TestAllNullWidensToString(t *testing.T) {
	in := NewInferrer()
	in.Add(map[string]interface{}{"gone": nil})
	in.Add(map[string]interface{}{"gone": nil})

	s, err := in.Schema()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"null", "string"}
	if got := s.Properties["gone"].Types(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v for all-null property, got %v", want, got)
	}
}

func TestMissingKeysObserveNull(t *testing.T) {
	in := NewInferrer()
	in.Add(map[string]interface{}{"always": "x", "sometimes": "y"})
	in.Add(map[string]interface{}{"always": "x"})

	s, err := in.Schema()
	if err != nil {
		t.Fatal(err)
	}
	// a key can be absent, so null stays in its type set
	want := []string{"null", "string"}
	if got := s.Properties["sometimes"].Types(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRequiredIncludesCompanyName(t *testing.T) {
	in := NewInferrer()
	in.Add(map[string]interface{}{"entry_no": "1", "company_name": "C1"})

	s, err := in.Schema("entry_no")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"company_name", "entry_no"}
	if !reflect.DeepEqual(s.Required, want) {
		t.Errorf("expected required %v, got %v", want, s.Required)
	}
}

func TestRequiredMustBeObserved(t *testing.T) {
	in := NewInferrer()
	in.Add(map[string]interface{}{"company_name": "C1"})

	if _, err := in.Schema("entry_no"); err == nil {
		t.Fatal("expected error for unobserved required key")
	}
}

func TestSchemaMarshal(t *testing.T) {
	in := NewInferrer()
	in.Add(map[string]interface{}{"no": "1"})

	s, err := in.Schema()
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	if !strings.Contains(got, `"type":"object"`) {
		t.Errorf("expected object type, got %s", got)
	}
	if !strings.Contains(got, `"no":{"type":["null","string"]}`) {
		t.Errorf("expected property types, got %s", got)
	}
}

func TestReadRecords(t *testing.T) {
	input := strings.Join([]string{
		`{"no":"1","name":"Acme"}`,
		``,
		`not json at all`,
		`{"no":"2"}`,
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input), false, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestReadRecordsSingerStyle(t *testing.T) {
	input := strings.Join([]string{
		`{"type":"SCHEMA","stream":"Customer","schema":{}}`,
		`{"type":"RECORD","stream":"Customer","record":{"no":"1"}}`,
		`{"type":"STATE","value":{}}`,
		`{"type":"RECORD","stream":"Customer","record":{"no":"2"}}`,
	}, "\n")

	records, err := ReadRecords(strings.NewReader(input), true, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["no"] != "1" {
		t.Errorf("expected unwrapped record content, got %v", records[0])
	}
}
