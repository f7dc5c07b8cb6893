package config

import (
	"strings"
	"testing"
)

const validConfig = `
user_agent: tap-inventio/1.0
limit: 100
endpoints:
  - endpoint: GLEntry-GET
    companies:
      COMPANY1: "{5B3C070F-BD90-4293-84BB-DCBB1E521B54}"
      COMPANY2: "{ACLKLLKE-BD90-4293-ALKF-DCBB1E521B54}"
    limit: 10
  - endpoint: Customer-GET
    companies:
      COMPANY1: "{5B3C070F-BD90-4293-84BB-DCBB1E521B54}"
`

func parse(t *testing.T, yaml string) (*Config, error) {
	t.Helper()
	return NewDefaultLoader().Parse([]byte(yaml))
}

func TestParseValidConfig(t *testing.T) {
	cfg, err := parse(t, validConfig)
	if err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	if len(cfg.Endpoints) != 2 {
		t.Fatalf("expected 2 endpoints, got %d", len(cfg.Endpoints))
	}
	if cfg.Endpoints[0].Limit != 10 {
		t.Errorf("expected endpoint limit 10, got %d", cfg.Endpoints[0].Limit)
	}
	if got := cfg.Endpoints[0].EffectiveLimit(cfg.Limit); got != 10 {
		t.Errorf("expected effective limit 10, got %d", got)
	}
	if got := cfg.Endpoints[1].EffectiveLimit(cfg.Limit); got != 100 {
		t.Errorf("expected effective limit 100, got %d", got)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := parse(t, validConfig)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base url, got %q", cfg.BaseURL)
	}
	if cfg.Destination.Type != DestinationSinger {
		t.Errorf("expected singer destination by default, got %q", cfg.Destination.Type)
	}
}

func TestEnvExpansion(t *testing.T) {
	t.Setenv("GLENTRY_TOKEN", "{SECRET}")

	cfg, err := parse(t, `
endpoints:
  - endpoint: GLEntry-GET
    companies:
      COMPANY1: "${GLENTRY_TOKEN}"
`)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Endpoints[0].Companies["COMPANY1"]; got != "{SECRET}" {
		t.Errorf("expected expanded token, got %q", got)
	}
}

func TestDuplicateEndpointsRejected(t *testing.T) {
	_, err := parse(t, `
endpoints:
  - endpoint: GLEntry-GET
    companies: {COMPANY1: "{T1}"}
  - endpoint: glentry
    companies: {COMPANY2: "{T2}"}
`)
	if err == nil {
		t.Fatal("expected duplicate endpoint error")
	}
	if !strings.Contains(err.Error(), "more than once") {
		t.Errorf("expected duplicate message, got %v", err)
	}
}

func TestWriteEndpointRejected(t *testing.T) {
	_, err := parse(t, `
endpoints:
  - endpoint: Item-POST
    companies: {COMPANY1: "{T1}"}
`)
	if err == nil {
		t.Fatal("expected write endpoint error")
	}
	if !strings.Contains(err.Error(), "write endpoint") {
		t.Errorf("expected write endpoint message, got %v", err)
	}
}

func TestMissingCompaniesRejected(t *testing.T) {
	_, err := parse(t, `
endpoints:
  - endpoint: GLEntry-GET
`)
	if err == nil {
		t.Fatal("expected missing companies error")
	}
}

func TestEmptyEndpointsRejected(t *testing.T) {
	if _, err := parse(t, `limit: 10`); err == nil {
		t.Fatal("expected empty endpoints error")
	}
}

func TestSQLiteDestinationNeedsPath(t *testing.T) {
	_, err := parse(t, `
destination: {type: sqlite}
endpoints:
  - endpoint: GLEntry-GET
    companies: {COMPANY1: "{T1}"}
`)
	if err == nil {
		t.Fatal("expected destination path error")
	}

	cfg, err := parse(t, `
destination: {type: sqlite, path: out.db}
endpoints:
  - endpoint: GLEntry-GET
    companies: {COMPANY1: "{T1}"}
`)
	if err != nil {
		t.Fatalf("expected valid sqlite destination, got %v", err)
	}
	if cfg.Destination.Path != "out.db" {
		t.Errorf("expected path out.db, got %q", cfg.Destination.Path)
	}
}

func TestUnknownDestinationRejected(t *testing.T) {
	_, err := parse(t, `
destination: {type: kafka}
endpoints:
  - endpoint: GLEntry-GET
    companies: {COMPANY1: "{T1}"}
`)
	if err == nil {
		t.Fatal("expected unknown destination error")
	}
}

func TestWarningsForUnavailableEndpoints(t *testing.T) {
	cfg, err := parse(t, `
endpoints:
  - endpoint: GLEntry-GET
    companies: {COMPANY1: "{T1}"}
  - endpoint: Vendor-GET
    companies: {COMPANY1: "{T1}"}
`)
	if err != nil {
		t.Fatal(err)
	}

	warnings := Warnings(cfg, []string{"GLEntry"})
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "VENDOR") {
		t.Errorf("expected warning about VENDOR, got %q", warnings[0])
	}
}
