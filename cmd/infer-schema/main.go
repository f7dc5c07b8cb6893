// Command infer-schema derives a JSON schema from newline-delimited JSON
// records on stdin.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strings"

	"github.com/nordicdata/tap-inventio/pkg/logging"
	"github.com/nordicdata/tap-inventio/pkg/schema"
)

func main() {
	pretty := flag.Bool("pretty", false, "pretty print schema")
	required := flag.String("required", "", "comma separated required keys")
	singerStyle := flag.Bool("singer-style", false,
		"records come straight from the tap; extract only record content")
	flag.Parse()

	logger := logging.Setup(logging.DefaultConfig())

	records, err := schema.ReadRecords(os.Stdin, *singerStyle, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read records")
	}

	inferrer := schema.NewInferrer()
	for _, record := range records {
		inferrer.Add(record)
	}

	var requiredKeys []string
	if *required != "" {
		for _, key := range strings.Split(*required, ",") {
			if key = strings.TrimSpace(key); key != "" {
				requiredKeys = append(requiredKeys, key)
			}
		}
	}

	result, err := inferrer.Schema(requiredKeys...)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build schema")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		logger.Fatal().Err(err).Msg("failed to render schema")
	}
}
