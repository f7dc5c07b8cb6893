package schema

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
)

// ReadRecords scans newline-delimited JSON and returns every line that looks
// like a record. With singerStyle set, only RECORD messages are kept and the
// nested record content is returned. Unparseable lines are logged and skipped.
func ReadRecords(r io.Reader, singerStyle bool, logger zerolog.Logger) ([]map[string]interface{}, error) {
	var records []map[string]interface{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record map[string]interface{}
		if err := json.Unmarshal(line, &record); err != nil {
			logger.Warn().Err(err).Str("line", string(line)).Msg("failed to parse line")
			continue
		}
		if record == nil {
			logger.Warn().Str("line", string(line)).Msg("row doesn't look like a record")
			continue
		}

		if singerStyle {
			if record["type"] != "RECORD" {
				continue
			}
			inner, ok := record["record"].(map[string]interface{})
			if !ok {
				continue
			}
			record = inner
		}

		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
