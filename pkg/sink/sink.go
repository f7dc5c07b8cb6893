// Package sink delivers extracted records downstream.
package sink

// Sink receives the output of a sync run, one stream at a time. WriteSchema
// is called once per stream before any of its records.
type Sink interface {
	WriteSchema(stream string, schema map[string]interface{}, keyProperties []string) error
	WriteRecord(stream string, record map[string]interface{}) error
	WriteState(value map[string]interface{}) error
	Close() error
}
