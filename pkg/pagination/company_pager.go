package pagination

import (
	"fmt"
	"net/http"
	"sort"
	"sync"

	"github.com/nordicdata/tap-inventio/pkg/errors"
)

// CompanyToken is one "page": a company name and its smartapi access token.
type CompanyToken struct {
	Company string
	Token   string
}

// RequestFunc builds the request for one company/token pair.
type RequestFunc func(page CompanyToken) (*http.Request, error)

// CompanyPager paginates over a list of companies (yes, very odd).
//
// The Inventio API doesn't have page pagination, but we want data for many
// tenant companies, so each company/token pair acts as one page. The walk is
// in sorted company order so runs are deterministic, and it terminates when
// the list is exhausted.
type CompanyPager struct {
	mu    sync.Mutex
	build RequestFunc
	pairs []CompanyToken
	index int
}

// NewCompanyPager builds a CompanyPager over a company -> token mapping.
func NewCompanyPager(build RequestFunc, companies map[string]string) (*CompanyPager, error) {
	if len(companies) == 0 {
		return nil, errors.WrapError(
			fmt.Errorf("companies map is empty"),
			errors.ErrConfiguration,
			"company pagination",
		)
	}

	pairs := make([]CompanyToken, 0, len(companies))
	for company, token := range companies {
		pairs = append(pairs, CompanyToken{Company: company, Token: token})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Company < pairs[j].Company })

	return &CompanyPager{build: build, pairs: pairs}, nil
}

// NextRequest returns the request for the current company, or nil when every
// company has been served.
func (p *CompanyPager) NextRequest() (*http.Request, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index >= len(p.pairs) {
		return nil, nil
	}
	return p.build(p.pairs[p.index])
}

// UpdateState advances to the next company. The response carries no paging
// information, so it is ignored.
func (p *CompanyPager) UpdateState(_ *http.Response) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index < len(p.pairs) {
		p.index++
	}
	return nil
}

// Current returns the company/token pair the last NextRequest was built for.
func (p *CompanyPager) Current() (CompanyToken, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.index >= len(p.pairs) {
		return CompanyToken{}, false
	}
	return p.pairs[p.index], true
}

// PageCount reports how many pages (companies) the pager walks in total.
func (p *CompanyPager) PageCount() int {
	return len(p.pairs)
}
