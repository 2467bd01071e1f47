// internal/adapters/extranet/client.go
package extranet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"hotel_extranet/internal/adapters/observability"
	"hotel_extranet/internal/domain"
)

// The extranet pretends to be a browser-facing site: the same base URL
// serves the login form before authentication and the CSV export after.
// Reaching the login form at all requires HTTP Basic credentials, and the
// form submission must carry whatever hidden fields the page embeds.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

const bodyExcerptLimit = 500

type Client struct {
	base     string
	username string
	password string
	hc       *resty.Client
	rl       *rate.Limiter
	extract  FormFieldExtractor
}

type Option func(*Client)

// WithFormFieldExtractor swaps the strategy used to recover hidden form
// fields from the login page.
func WithFormFieldExtractor(e FormFieldExtractor) Option {
	return func(c *Client) { c.extract = e }
}

func New(base, username, password string, timeout time.Duration, opts ...Option) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	hc := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetCookieJar(jar).
		SetBasicAuth(username, password).
		SetHeader("User-Agent", userAgent).
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	c := &Client{
		base:     base,
		username: username,
		password: password,
		hc:       hc,
		rl:       rate.NewLimiter(rate.Limit(2), 2),
		extract:  RegexExtractor{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Authenticate runs the two-step form-login dance: fetch the login page,
// scrape its input fields, then post them back with the credentials filled
// in. Success is solely "final status after redirects is 200"; the
// post-login body is not inspected, so a re-rendered login form (wrong
// credentials) is not detected here and surfaces later as a garbled feed.
func (c *Client) Authenticate(ctx context.Context) (domain.FeedSession, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := c.hc.R().SetContext(ctx).Get("/")
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("fetch login page: %w", err)}
	}
	observability.ObserveExternal("extranet", "login_page", res.StatusCode(), time.Since(start))
	if res.StatusCode() != http.StatusOK {
		return nil, &AuthError{Status: res.StatusCode()}
	}

	fields, err := c.extract.Extract(res.Body())
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("scrape login form: %w", err)}
	}
	if fields == nil {
		fields = map[string]string{}
	}
	// Credentials overwrite any same-named scraped fields.
	fields["Username"] = c.username
	fields["Password"] = c.password

	start = time.Now()
	res, err = c.hc.R().
		SetContext(ctx).
		SetHeader("Referer", c.base).
		SetFormData(fields).
		Post("/")
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("submit login form: %w", err)}
	}
	observability.ObserveExternal("extranet", "login_submit", res.StatusCode(), time.Since(start))
	if res.StatusCode() != http.StatusOK {
		return nil, &AuthError{Status: res.StatusCode()}
	}

	return &Session{hc: c.hc, rl: c.rl}, nil
}

// Session is an authenticated extranet session. It shares the client's
// cookie jar, Basic Auth header and rate limiter; the jar lives only in
// memory for the lifetime of the process.
type Session struct {
	hc *resty.Client
	rl *rate.Limiter
}

// FetchFeed retrieves the raw CSV document verbatim. Any transport failure
// or non-2xx status becomes a *FetchError carrying the upstream status and a
// truncated body excerpt for diagnostics.
func (s *Session) FetchFeed(ctx context.Context) ([]byte, error) {
	if err := s.rl.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.hc.R().SetContext(ctx).Get("/")
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	observability.ObserveExternal("extranet", "feed", res.StatusCode(), time.Since(start))
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return nil, &FetchError{Status: res.StatusCode(), BodyExcerpt: excerpt(res.Body())}
	}
	return res.Body(), nil
}

func excerpt(b []byte) string {
	if len(b) > bodyExcerptLimit {
		b = b[:bodyExcerptLimit]
	}
	return string(b)
}

// AuthError is fatal: the login page was unreachable or the post-login
// status was not 200.
type AuthError struct {
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extranet: authentication failed: %v", e.Err)
	}
	return fmt.Sprintf("extranet: login failed with status code %d", e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError is fatal: the feed request failed after authentication had
// succeeded.
type FetchError struct {
	Status      int
	BodyExcerpt string
	Err         error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extranet: fetch feed: %v", e.Err)
	}
	return fmt.Sprintf("extranet: fetch feed: status %d: %s", e.Status, e.BodyExcerpt)
}

func (e *FetchError) Unwrap() error { return e.Err }
