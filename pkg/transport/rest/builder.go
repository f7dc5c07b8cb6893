// Package rest builds HTTP requests for the Inventio smartapi.
package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/nordicdata/tap-inventio/pkg/errors"
	"github.com/nordicdata/tap-inventio/pkg/pagination"
)

// URLTemplate is the smartapi path under the tenant host. The company name is
// part of the URL path, not a query parameter.
const URLTemplate = "{base_url}/{company_name}/smartapi/"

// Builder builds smartapi HTTP requests for one endpoint.
type Builder struct {
	BaseURL      string
	EndpointType string // the 'type' query parameter, e.g. "GLEntry-GET"
	UserAgent    string
	Limit        int    // 0 means no limit parameter
	OrderBy      string // when set, adds sort=asc&order_by=<OrderBy>
}

// NewBuilder constructs a Builder.
func NewBuilder(baseURL, endpointType string) *Builder {
	return &Builder{
		BaseURL:      baseURL,
		EndpointType: endpointType,
	}
}

// Build creates the GET request for one company/token page.
func (b *Builder) Build(ctx context.Context, page pagination.CompanyToken) (*http.Request, error) {
	url := b.substituteTemplateVariables(URLTemplate, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPRequest, "build request")
	}

	q := req.URL.Query()
	q.Set("type", b.EndpointType)
	q.Set("token", page.Token)
	if b.Limit > 0 {
		q.Set("limit", strconv.Itoa(b.Limit))
	}
	if b.OrderBy != "" {
		q.Set("sort", "asc")
		q.Set("order_by", b.OrderBy)
	}
	req.URL.RawQuery = q.Encode()

	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}

	return req, nil
}

// substituteTemplateVariables fills the URL template from the page context.
func (b *Builder) substituteTemplateVariables(template string, page pagination.CompanyToken) string {
	url := strings.ReplaceAll(template, "{base_url}", strings.TrimSuffix(b.BaseURL, "/"))
	return strings.ReplaceAll(url, "{company_name}", page.Company)
}
