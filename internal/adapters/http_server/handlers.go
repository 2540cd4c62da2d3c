package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotelpoc/internal/domain"
)

// Searcher is the pipeline behind the handlers.
type Searcher interface {
	ListHotels(ctx context.Context, cityCode string) ([]domain.HotelSummary, error)
	SearchOffers(ctx context.Context, q domain.OffersQuery) ([]domain.OfferRow, error)
}

type Handlers struct{ S Searcher }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type page[T any] struct {
	Items []T `json:"items"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotel-offers", h.searchOffers)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps the pipeline error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *domain.ValidationError
		aerr *domain.APIError
	)
	switch {
	case errors.As(err, &verr):
		writeProblem(w, http.StatusBadRequest, "Invalid request", verr.Error())
	case errors.Is(err, domain.ErrConfiguration):
		writeProblem(w, http.StatusInternalServerError, "Misconfigured", "upstream credentials are not configured")
	case errors.Is(err, domain.ErrAuth):
		writeProblem(w, http.StatusBadGateway, "Upstream authentication failed", err.Error())
	case errors.As(err, &aerr):
		writeProblem(w, http.StatusBadGateway, "Upstream error", "amadeus status "+strconv.Itoa(aerr.Status)+": "+aerr.Body)
	case errors.Is(err, domain.ErrTransport):
		writeProblem(w, http.StatusGatewayTimeout, "Upstream unreachable", err.Error())
	default:
		log.Error().Err(err).Msg("unexpected pipeline error")
		writeProblem(w, http.StatusInternalServerError, "Internal error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	rows, err := h.S.ListHotels(r.Context(), r.URL.Query().Get("cityCode"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, page[domain.HotelSummary]{Items: rows})
}

func (h *Handlers) searchOffers(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := domain.OffersQuery{
		HotelIDs:     splitIDs(qs.Get("hotelIds")),
		CheckInDate:  qs.Get("checkInDate"),
		CheckOutDate: qs.Get("checkOutDate"),
		Lang:         strings.ToUpper(qs.Get("lang")),
	}
	if as := qs.Get("adults"); as != "" {
		n, err := strconv.Atoi(as)
		if err != nil || n < 1 {
			writeProblem(w, http.StatusBadRequest, "Invalid adults", "adults must be an integer >= 1")
			return
		}
		q.Adults = n
	}

	rows, err := h.S.SearchOffers(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, page[domain.OfferRow]{Items: rows})
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
