// Package streams defines the Inventio endpoints this tap can extract.
package streams

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nordicdata/tap-inventio/pkg/endpoints"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Stream describes one extractable endpoint: where its records sit inside the
// decoded response and which keys identify a record.
type Stream struct {
	// Name is the endpoint name without the -GET suffix, e.g. "GLEntry".
	Name string

	// RecordPath is the dotted path to the records inside the decoded body,
	// e.g. "entries.entry". The element there is either a list of records or,
	// when the response holds exactly one record, a single record.
	RecordPath string

	// PrimaryKeys identify a record after post-processing. company_name is
	// always part of the key because the same entry numbers repeat per tenant.
	PrimaryKeys []string

	// ReplicationKey, when set, is passed to the API as order_by. No stream
	// currently keeps state; replication is always FULL_TABLE.
	ReplicationKey string
}

// EndpointType returns the 'type' query parameter value for this stream.
func (s Stream) EndpointType() string {
	return s.Name + "-GET"
}

// Schema returns the stream's JSON schema.
func (s Stream) Schema() (map[string]interface{}, error) {
	data, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.json", s.Name))
	if err != nil {
		return nil, fmt.Errorf("no schema for stream %s: %w", s.Name, err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("invalid schema for stream %s: %w", s.Name, err)
	}
	return schema, nil
}

// All streams implemented by this tap.
var All = []Stream{
	{
		Name:        "GLEntry",
		RecordPath:  "entries.entry",
		PrimaryKeys: []string{"company_name", "entry_no"},
	},
	{
		Name:        "DimensionSetEntry",
		RecordPath:  "dimension-entries.dimension-entry",
		PrimaryKeys: []string{"company_name", "entry_no", "code"},
	},
	{
		Name:        "Customer",
		RecordPath:  "customers.customer",
		PrimaryKeys: []string{"company_name", "no"},
	},
}

// Lookup finds the stream serving an endpoint name, in any casing or with any
// -GET suffix.
func Lookup(endpointName string) (Stream, bool) {
	key, ok := endpoints.Normalize(endpointName)
	if !ok {
		return Stream{}, false
	}
	for _, s := range All {
		k, _ := endpoints.Normalize(s.Name)
		if k == key {
			return s, true
		}
	}
	return Stream{}, false
}

// Names returns the names of all implemented streams.
func Names() []string {
	names := make([]string, len(All))
	for i, s := range All {
		names[i] = s.Name
	}
	return names
}
