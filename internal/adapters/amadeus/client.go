package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotelpoc/internal/adapters/observability"
	"hotelpoc/internal/domain"
)

const (
	SandboxBaseURL = "https://test.api.amadeus.com"

	tokenPath        = "/v1/security/oauth2/token"
	hotelsByCityPath = "/v1/reference-data/locations/hotels/by-city"
	hotelOffersPath  = "/v3/shopping/hotel-offers"

	authTimeout   = 20 * time.Second
	listTimeout   = 30 * time.Second
	offersTimeout = 60 * time.Second

	bodySnippet = 400
	service     = "amadeus"
)

type Client struct {
	base   string
	hc     *http.Client
	rl     *rate.Limiter
	policy RetryPolicy
	sleep  func(context.Context, time.Duration) bool
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

func WithRetryPolicy(p RetryPolicy) Option { return func(c *Client) { c.policy = p } }

// WithSleep replaces the wait between attempts.
// The function returns false when the wait was interrupted.
func WithSleep(fn func(context.Context, time.Duration) bool) Option {
	return func(c *Client) { c.sleep = fn }
}

func New(base string, rps int, opts ...Option) *Client {
	if rps <= 0 {
		rps = 10
	}
	c := &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{},
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
		policy: DefaultRetryPolicy(),
		sleep:  sleepCtx,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Request describes one upstream call. Form, when set, is sent url-encoded as the body.
type Request struct {
	Method   string
	URL      string
	Endpoint string // metrics/log label
	Header   http.Header
	Query    url.Values
	Form     url.Values
	Timeout  time.Duration // per attempt
}

// Response is a fully read upstream response. A status >= 400 is not an
// error by itself; callers check it with Err.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	method string
	url    string
}

// Err returns a *domain.APIError when the status is >= 400.
func (r *Response) Err() error {
	if r.StatusCode < 400 {
		return nil
	}
	return r.apiError()
}

func (r *Response) apiError() *domain.APIError {
	return &domain.APIError{
		Method: r.method,
		URL:    r.url,
		Status: r.StatusCode,
		Body:   snippet(r.Body, bodySnippet),
	}
}

// Do sends r, retrying according to the client's RetryPolicy.
// Once every attempt failed at the transport level, the last error is
// returned inside a *domain.TransportError.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	u := r.URL
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	attempts := c.policy.attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		// client-side rate limiting
		if err := c.rl.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.send(ctx, r, u)
		if err == nil {
			return resp, nil
		}
		var be *buildError
		if errors.As(err, &be) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !c.policy.retryable(err) {
			return nil, err
		}
		lastErr = err
		if attempt == attempts {
			break
		}

		wait := c.policy.backoff(attempt)
		observability.ObserveRetry(service, r.Endpoint)
		log.Warn().
			Err(err).
			Str("endpoint", r.Endpoint).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("amadeus request failed, retrying")
		if !c.sleep(ctx, wait) {
			return nil, ctx.Err()
		}
	}
	return nil, &domain.TransportError{URL: r.URL, Attempts: attempts, Err: lastErr}
}

// buildError marks a request that never left the process. A malformed URL
// surfaces as *url.Error, so it must be told apart from wire failures.
type buildError struct{ err error }

func (e *buildError) Error() string { return "build request: " + e.err.Error() }
func (e *buildError) Unwrap() error { return e.err }

// send performs a single attempt and reads the whole body.
func (c *Client) send(ctx context.Context, r Request, u string) (*Response, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var body io.Reader
	if r.Form != nil {
		body = strings.NewReader(r.Form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, &buildError{err: err}
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("User-Agent", "hotelpoc/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, r.Endpoint, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.ObserveExternal(service, r.Endpoint, 0, time.Since(start))
		return nil, fmt.Errorf("read body: %w", err)
	}
	observability.ObserveExternal(service, r.Endpoint, resp.StatusCode, time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       b,
		method:     r.Method,
		url:        r.URL,
	}, nil
}

// ListHotelsByCity returns the raw `data` array of the by-city hotel listing.
func (c *Client) ListHotelsByCity(ctx context.Context, token, cityCode string) ([]map[string]any, error) {
	code, err := domain.NormalizeCityCode(cityCode)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, Request{
		Method:   http.MethodGet,
		URL:      c.base + hotelsByCityPath,
		Endpoint: "hotels_by_city",
		Header:   bearer(token),
		Query:    url.Values{"cityCode": {code}},
		Timeout:  listTimeout,
	})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return decodeData(resp.Body)
}

// SearchOffers returns the raw `data` array of the hotel offers search.
// Only the first page is requested.
func (c *Client) SearchOffers(ctx context.Context, token string, q domain.OffersQuery) ([]map[string]any, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(ctx, Request{
		Method:   http.MethodGet,
		URL:      c.base + hotelOffersPath,
		Endpoint: "hotel_offers",
		Header:   bearer(token),
		Query: url.Values{
			"hotelIds":     {strings.Join(q.HotelIDs, ",")},
			"adults":       {strconv.Itoa(q.Adults)},
			"roomQuantity": {"1"},
			"checkInDate":  {q.CheckInDate},
			"checkOutDate": {q.CheckOutDate},
			"currency":     {domain.DefaultCurrency},
			"lang":         {q.Lang},
		},
		Timeout: offersTimeout,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", snippet(resp.Body, bodySnippet)).
			Msg("hotel offers request failed")
		return nil, resp.Err()
	}
	return decodeData(resp.Body)
}

func bearer(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	h.Set("Accept", "application/json")
	return h
}

// decodeData extracts `data`; absent or null yields an empty slice.
func decodeData(body []byte) ([]map[string]any, error) {
	var env struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("amadeus: decode response: %w body=%s", err, snippet(body, bodySnippet))
	}
	if env.Data == nil {
		return []map[string]any{}, nil
	}
	return env.Data, nil
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
