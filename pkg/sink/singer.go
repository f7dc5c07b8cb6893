package sink

import (
	"encoding/json"
	"io"
	"time"
)

// SingerWriter emits Singer style NDJSON messages (SCHEMA, RECORD, STATE) to
// a writer, normally stdout.
type SingerWriter struct {
	enc *json.Encoder
	now func() time.Time
}

// NewSingerWriter wraps w in a SingerWriter.
func NewSingerWriter(w io.Writer) *SingerWriter {
	return &SingerWriter{
		enc: json.NewEncoder(w),
		now: time.Now,
	}
}

type schemaMessage struct {
	Type          string                 `json:"type"`
	Stream        string                 `json:"stream"`
	Schema        map[string]interface{} `json:"schema"`
	KeyProperties []string               `json:"key_properties"`
}

type recordMessage struct {
	Type          string                 `json:"type"`
	Stream        string                 `json:"stream"`
	Record        map[string]interface{} `json:"record"`
	TimeExtracted string                 `json:"time_extracted"`
}

type stateMessage struct {
	Type  string                 `json:"type"`
	Value map[string]interface{} `json:"value"`
}

// WriteSchema emits a SCHEMA message.
func (w *SingerWriter) WriteSchema(stream string, schema map[string]interface{}, keyProperties []string) error {
	if keyProperties == nil {
		keyProperties = []string{}
	}
	return w.enc.Encode(schemaMessage{
		Type:          "SCHEMA",
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
	})
}

// WriteRecord emits a RECORD message.
func (w *SingerWriter) WriteRecord(stream string, record map[string]interface{}) error {
	return w.enc.Encode(recordMessage{
		Type:          "RECORD",
		Stream:        stream,
		Record:        record,
		TimeExtracted: w.now().UTC().Format(time.RFC3339),
	})
}

// WriteState emits a STATE message.
func (w *SingerWriter) WriteState(value map[string]interface{}) error {
	return w.enc.Encode(stateMessage{Type: "STATE", Value: value})
}

// Close is a no-op; the underlying writer is owned by the caller.
func (w *SingerWriter) Close() error {
	return nil
}
