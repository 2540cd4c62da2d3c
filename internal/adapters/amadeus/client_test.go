package amadeus_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotelpoc/internal/adapters/amadeus"
	"hotelpoc/internal/domain"
)

var errDial = errors.New("dial tcp: connection refused")

// flakyTransport fails the first `fails` round trips, then delegates.
type flakyTransport struct {
	fails int32
	calls int32
	next  http.RoundTripper
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if n := atomic.AddInt32(&f.calls, 1); n <= f.fails {
		return nil, errDial
	}
	return f.next.RoundTrip(r)
}

type sleepRecorder struct{ waits []time.Duration }

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) bool {
	s.waits = append(s.waits, d)
	return true
}

func newClient(t *testing.T, base string, opts ...amadeus.Option) *amadeus.Client {
	t.Helper()
	return amadeus.New(base, 100, opts...) // high RPS for tests
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListHotelsByCity_UppercasesCityCode(t *testing.T) {
	var gotCity, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reference-data/locations/hotels/by-city" {
			http.NotFound(w, r)
			return
		}
		gotCity = r.URL.Query().Get("cityCode")
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, map[string]any{"data": []any{map[string]any{"hotelId": "ARNCEACH"}}})
	}))
	defer ts.Close()

	for _, code := range []string{"nce", "Nce", "NCE"} {
		data, err := newClient(t, ts.URL).ListHotelsByCity(context.Background(), "tok", code)
		require.NoError(t, err)
		require.Len(t, data, 1)
		require.Equal(t, "NCE", gotCity)
		require.Equal(t, "Bearer tok", gotAuth)
	}
}

func TestListHotelsByCity_InvalidCodeMakesNoCall(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	for _, code := range []string{"", "PA", "PARI", "P4R", "PA "} {
		_, err := cl.ListHotelsByCity(context.Background(), "tok", code)
		require.ErrorIs(t, err, domain.ErrValidation, "code %q", code)
	}
	require.Zero(t, atomic.LoadInt32(&hits))
}

func TestListHotelsByCity_MissingDataIsEmpty(t *testing.T) {
	for _, body := range []string{`{}`, `{"data":null}`, `{"meta":{"count":0}}`} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		data, err := newClient(t, ts.URL).ListHotelsByCity(context.Background(), "tok", "PAR")
		ts.Close()

		require.NoError(t, err)
		require.NotNil(t, data)
		require.Empty(t, data)
	}
}

func TestDo_TransportErrorsThenSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"data": []any{}})
	}))
	defer ts.Close()

	rt := &flakyTransport{fails: 2, next: http.DefaultTransport}
	rec := &sleepRecorder{}
	cl := newClient(t, ts.URL,
		amadeus.WithHTTPClient(&http.Client{Transport: rt}),
		amadeus.WithSleep(rec.sleep),
	)

	data, err := cl.ListHotelsByCity(context.Background(), "tok", "PAR")
	require.NoError(t, err)
	require.Empty(t, data)
	require.EqualValues(t, 3, atomic.LoadInt32(&rt.calls))
	require.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, rec.waits)
}

func TestDo_TransportErrorOnEveryAttempt(t *testing.T) {
	rt := &flakyTransport{fails: 100}
	rec := &sleepRecorder{}
	cl := newClient(t, "http://amadeus.invalid",
		amadeus.WithHTTPClient(&http.Client{Transport: rt}),
		amadeus.WithSleep(rec.sleep),
	)

	_, err := cl.ListHotelsByCity(context.Background(), "tok", "PAR")
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrTransport)
	require.ErrorIs(t, err, errDial, "dial error must stay reachable")

	var terr *domain.TransportError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, 3, terr.Attempts)
	require.EqualValues(t, 3, atomic.LoadInt32(&rt.calls))
	// no wait after the last attempt
	require.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, rec.waits)
}

func TestDo_HTTPErrorIsReturnedNotRetried(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"code":38190,"title":"Invalid access token"}]}`))
	}))
	defer ts.Close()

	rec := &sleepRecorder{}
	cl := newClient(t, ts.URL, amadeus.WithSleep(rec.sleep))

	resp, err := cl.Do(context.Background(), amadeus.Request{
		Method: http.MethodGet, URL: ts.URL + "/v1/reference-data/locations/hotels/by-city", Endpoint: "test",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
	require.Empty(t, rec.waits)

	var apiErr *domain.APIError
	require.ErrorAs(t, resp.Err(), &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Contains(t, apiErr.Body, "Invalid access token")

	_, err = cl.ListHotelsByCity(context.Background(), "tok", "PAR")
	require.ErrorIs(t, err, domain.ErrAPI)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
}

func TestDo_APIErrorBodyIsTruncated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).ListHotelsByCity(context.Background(), "tok", "PAR")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 500, apiErr.Status)
	require.Len(t, apiErr.Body, 400)
}

func TestDo_RequestBuildErrorIsNotRetried(t *testing.T) {
	rt := &flakyTransport{next: http.DefaultTransport}
	cl := newClient(t, "http://example.invalid", amadeus.WithHTTPClient(&http.Client{Transport: rt}))

	_, err := cl.Do(context.Background(), amadeus.Request{Method: "BAD METHOD", URL: "http://example.invalid"})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrTransport)
	require.Zero(t, atomic.LoadInt32(&rt.calls))
}

func TestDo_MalformedURLIsNotRetried(t *testing.T) {
	rt := &flakyTransport{next: http.DefaultTransport}
	cl := newClient(t, "http://example.invalid", amadeus.WithHTTPClient(&http.Client{Transport: rt}))

	_, err := cl.Do(context.Background(), amadeus.Request{Method: http.MethodGet, URL: "http://[::1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrTransport)
	require.Zero(t, atomic.LoadInt32(&rt.calls))
}

func TestDo_CanceledContextStopsRetries(t *testing.T) {
	rt := &flakyTransport{fails: 100}
	ctx, cancel := context.WithCancel(context.Background())
	cl := newClient(t, "http://amadeus.invalid",
		amadeus.WithHTTPClient(&http.Client{Transport: rt}),
		amadeus.WithSleep(func(context.Context, time.Duration) bool {
			cancel()
			return false
		}),
	)

	_, err := cl.ListHotelsByCity(ctx, "tok", "PAR")
	require.ErrorIs(t, err, context.Canceled)
	require.EqualValues(t, 1, atomic.LoadInt32(&rt.calls))
}

func TestSearchOffers_QueryParameters(t *testing.T) {
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/shopping/hotel-offers" {
			http.NotFound(w, r)
			return
		}
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		writeJSON(w, map[string]any{"data": []any{
			map[string]any{"hotel": map[string]any{"hotelId": "ARNCEACH"}, "offers": []any{}},
		}})
	}))
	defer ts.Close()

	data, err := newClient(t, ts.URL).SearchOffers(context.Background(), "tok", domain.OffersQuery{
		HotelIDs:     []string{"ARNCEACH", "BWNCE645"},
		CheckInDate:  "2026-11-07",
		CheckOutDate: "2026-11-09",
	})
	require.NoError(t, err)
	require.Len(t, data, 1)
	require.Equal(t, map[string]string{
		"hotelIds":     "ARNCEACH,BWNCE645",
		"adults":       "2",
		"roomQuantity": "1",
		"checkInDate":  "2026-11-07",
		"checkOutDate": "2026-11-09",
		"currency":     "EUR",
		"lang":         "FR",
	}, got)
}

func TestSearchOffers_InvalidQueryMakesNoCall(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	cl := newClient(t, ts.URL)
	for _, q := range []domain.OffersQuery{
		{CheckInDate: "2026-11-07", CheckOutDate: "2026-11-09"},
		{HotelIDs: []string{"ARNCEACH"}, CheckInDate: "07/11/2026", CheckOutDate: "2026-11-09"},
		{HotelIDs: []string{"ARNCEACH"}, CheckInDate: "2026-11-07", CheckOutDate: "2026-11-09", Adults: -1},
	} {
		_, err := cl.SearchOffers(context.Background(), "tok", q)
		require.ErrorIs(t, err, domain.ErrValidation)
	}
	require.Zero(t, atomic.LoadInt32(&hits))
}
