package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/nordicdata/tap-inventio/pkg/pagination"
)

func assertQueryParam(t *testing.T, req *http.Request, key, want string) {
	t.Helper()
	if got := req.URL.Query().Get(key); got != want {
		t.Fatalf("expected query %q=%q, got %q", key, want, got)
	}
}

func TestBuilderURLAndParams(t *testing.T) {
	b := NewBuilder("https://app.cloud.inventio.it", "GLEntry-GET")
	b.UserAgent = "tap-inventio/1.0"
	b.Limit = 100

	req, err := b.Build(context.Background(), pagination.CompanyToken{
		Company: "20220422122248574",
		Token:   "{5B3C070F-BD90-4293-84BB-DCBB1E521B54}",
	})
	if err != nil {
		t.Fatal(err)
	}

	if req.Method != http.MethodGet {
		t.Errorf("expected GET, got %s", req.Method)
	}
	if got := req.URL.Path; got != "/20220422122248574/smartapi/" {
		t.Errorf("expected company in path, got %q", got)
	}
	assertQueryParam(t, req, "type", "GLEntry-GET")
	assertQueryParam(t, req, "token", "{5B3C070F-BD90-4293-84BB-DCBB1E521B54}")
	assertQueryParam(t, req, "limit", "100")
	if got := req.Header.Get("User-Agent"); got != "tap-inventio/1.0" {
		t.Errorf("expected user agent header, got %q", got)
	}
}

func TestBuilderOmitsOptionalParams(t *testing.T) {
	b := NewBuilder("https://app.cloud.inventio.it/", "Customer-GET")

	req, err := b.Build(context.Background(), pagination.CompanyToken{Company: "C1", Token: "{T}"})
	if err != nil {
		t.Fatal(err)
	}

	q := req.URL.Query()
	if q.Has("limit") {
		t.Error("expected no limit param when limit is 0")
	}
	if q.Has("sort") || q.Has("order_by") {
		t.Error("expected no ordering params without a replication key")
	}
	if req.Header.Get("User-Agent") != "" {
		t.Error("expected no user agent header when unset")
	}
	// trailing slash on the base url must not double up
	if got := req.URL.Path; got != "/C1/smartapi/" {
		t.Errorf("unexpected path %q", got)
	}
}

func TestBuilderOrderBy(t *testing.T) {
	b := NewBuilder("https://app.cloud.inventio.it", "AccountScheduleResult-GET")
	b.OrderBy = "posting_date"

	req, err := b.Build(context.Background(), pagination.CompanyToken{Company: "C1", Token: "{T}"})
	if err != nil {
		t.Fatal(err)
	}
	assertQueryParam(t, req, "sort", "asc")
	assertQueryParam(t, req, "order_by", "posting_date")
}
