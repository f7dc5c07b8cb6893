// Package core orchestrates a sync run: one pass over every configured
// stream, one request per company, records handed to the sink.
package core

import (
	"context"
	"crypto/rand"
	"net/http"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/nordicdata/tap-inventio/pkg/client"
	"github.com/nordicdata/tap-inventio/pkg/config"
	"github.com/nordicdata/tap-inventio/pkg/errors"
	"github.com/nordicdata/tap-inventio/pkg/logging"
	"github.com/nordicdata/tap-inventio/pkg/pagination"
	"github.com/nordicdata/tap-inventio/pkg/sink"
	"github.com/nordicdata/tap-inventio/pkg/streams"
	"github.com/nordicdata/tap-inventio/pkg/transform"
	"github.com/nordicdata/tap-inventio/pkg/transport/rest"
)

// Connector runs the extraction loop for every configured endpoint.
type Connector struct {
	cfg    *config.Config
	client *client.Client
	sink   sink.Sink
	logger zerolog.Logger
	runID  string
}

// Option configures a Connector.
type Option func(*Connector)

// WithHTTPDoer replaces the HTTP client, mainly for tests.
func WithHTTPDoer(doer pagination.HTTPDoer) Option {
	return func(c *Connector) {
		c.client = client.New(client.WithHTTPDoer(doer))
	}
}

// NewConnector wires a Connector from config and a sink.
func NewConnector(cfg *config.Config, s sink.Sink, options ...Option) *Connector {
	runID := ulid.MustNew(ulid.Now(), rand.Reader).String()
	c := &Connector{
		cfg:    cfg,
		client: client.New(),
		sink:   s,
		logger: logging.NewLogger("connector").With().Str("run_id", runID).Logger(),
		runID:  runID,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Summary describes a finished run.
type Summary struct {
	RunID   string
	Streams int
	Records int
}

// Sync extracts every configured endpoint that has an implemented stream.
// Endpoints without a stream are skipped with a warning; the first hard error
// aborts the run.
func (c *Connector) Sync(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: c.runID}

	for _, warning := range config.Warnings(c.cfg, streams.Names()) {
		c.logger.Warn().Msg(warning)
	}

	for _, ep := range c.cfg.Endpoints {
		stream, ok := streams.Lookup(ep.Endpoint)
		if !ok {
			continue
		}

		count, err := c.syncStream(ctx, stream, ep)
		if err != nil {
			return summary, err
		}

		summary.Streams++
		summary.Records += count
		c.logger.Info().
			Str("stream", stream.Name).
			Int("records", count).
			Msg("stream finished")
	}

	return summary, nil
}

// syncStream walks the company pager for one stream.
func (c *Connector) syncStream(ctx context.Context, stream streams.Stream, ep config.EndpointConfig) (int, error) {
	schema, err := stream.Schema()
	if err != nil {
		return 0, errors.WrapError(err, errors.ErrConfiguration, "load schema")
	}
	if err := c.sink.WriteSchema(stream.Name, schema, stream.PrimaryKeys); err != nil {
		return 0, err
	}

	builder := rest.NewBuilder(c.cfg.BaseURL, stream.EndpointType())
	builder.UserAgent = c.cfg.UserAgent
	builder.Limit = ep.EffectiveLimit(c.cfg.Limit)
	builder.OrderBy = stream.ReplicationKey

	pager, err := pagination.NewCompanyPager(func(page pagination.CompanyToken) (*http.Request, error) {
		return builder.Build(ctx, page)
	}, ep.Companies)
	if err != nil {
		return 0, err
	}

	count := 0
	for {
		req, err := pager.NextRequest()
		if err != nil {
			return count, err
		}
		if req == nil {
			break
		}
		page, _ := pager.Current()

		body, resp, err := c.client.Fetch(req, stream.EndpointType())
		if err != nil {
			return count, err
		}

		records, err := client.ExtractRecords(body, stream.RecordPath)
		if err != nil {
			return count, err
		}

		for _, record := range records {
			row := transform.PostProcess(record, page.Company)
			if err := c.sink.WriteRecord(stream.Name, row); err != nil {
				return count, err
			}
			count++
		}

		c.logger.Debug().
			Str("stream", stream.Name).
			Str("company", page.Company).
			Int("records", len(records)).
			Msg("page extracted")

		if err := pager.UpdateState(resp); err != nil {
			return count, errors.WrapError(err, errors.ErrExtraction, "paginate")
		}
	}

	// Replication is FULL_TABLE for every stream, so the state message
	// carries no bookmark. Downstream runners still expect one per stream.
	state := map[string]interface{}{
		"bookmarks": map[string]interface{}{
			stream.Name: map[string]interface{}{},
		},
	}
	if err := c.sink.WriteState(state); err != nil {
		return count, err
	}

	return count, nil
}

// CatalogEntry describes one discoverable stream.
type CatalogEntry struct {
	Stream        string                 `json:"stream"`
	Schema        map[string]interface{} `json:"schema"`
	KeyProperties []string               `json:"key_properties"`
	Selected      bool                   `json:"selected"`
}

// Discover lists every implemented stream. A stream is selected by default
// when an endpoint config exists for it.
func Discover(cfg *config.Config) ([]CatalogEntry, error) {
	configured := make(map[string]struct{})
	if cfg != nil {
		for _, ep := range cfg.Endpoints {
			if stream, ok := streams.Lookup(ep.Endpoint); ok {
				configured[stream.Name] = struct{}{}
			}
		}
	}

	entries := make([]CatalogEntry, 0, len(streams.All))
	for _, stream := range streams.All {
		schema, err := stream.Schema()
		if err != nil {
			return nil, err
		}
		_, selected := configured[stream.Name]
		entries = append(entries, CatalogEntry{
			Stream:        stream.Name,
			Schema:        schema,
			KeyProperties: stream.PrimaryKeys,
			Selected:      selected,
		})
	}
	return entries, nil
}
