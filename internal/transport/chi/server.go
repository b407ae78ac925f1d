package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinekit/internal/domain"
	"github.com/kailas-cloud/dinekit/internal/domain/aggregate"
	"github.com/kailas-cloud/dinekit/internal/domain/filter"
	"github.com/kailas-cloud/dinekit/internal/logger"
	"github.com/kailas-cloud/dinekit/internal/metrics"
	browseuc "github.com/kailas-cloud/dinekit/internal/usecase/browse"
	cartuc "github.com/kailas-cloud/dinekit/internal/usecase/cart"
	healthuc "github.com/kailas-cloud/dinekit/internal/usecase/health"
	reservationuc "github.com/kailas-cloud/dinekit/internal/usecase/reservation"
)

const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the dinekit HTTP API.
type Server struct {
	browse        *browseuc.Service
	carts         *cartuc.Service
	reservations  *reservationuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	browse *browseuc.Service,
	carts *cartuc.Service,
	reservations *reservationuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		browse:       browse,
		carts:        carts,
		reservations: reservations,
		health:       health,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		quantityLimitHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
		sentinelHandler(domain.ErrCartNotFound, http.StatusNotFound, CodeCartNotFound),
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, CodeItemNotFound),
		sentinelHandler(domain.ErrInvalidCriterion, http.StatusBadRequest, CodeInvalidCriterion),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrInvalidSlotRequest, http.StatusUnprocessableEntity, CodeInvalidSlotRequest),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/collections/{collection}/browse", s.Browse)
		r.Get("/collections/{collection}/summary", s.Summary)

		r.Post("/carts", s.CreateCart)
		r.Route("/carts/{id}", func(r chi.Router) {
			r.Get("/", s.GetCart)
			r.Delete("/", s.DeleteCart)
			r.Post("/items", s.AddItem)
			r.Put("/items/{item}", s.SetItemQuantity)
			r.Delete("/items/{item}", s.RemoveItem)
			r.Post("/wishlist-toggle", s.ToggleItem)
			r.Get("/quote", s.Quote)
		})

		r.Get("/restaurants/{id}/slots", s.Slots)
	})
}

// Browse handles POST /api/v1/collections/{collection}/browse.
func (s *Server) Browse(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var req BrowseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	active := filter.Active{}
	for i, c := range req.Criteria {
		crit, known, err := criterionFromRequest(c)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		if !known {
			logger.FromContext(r.Context()).Warn("Unknown criterion kind, skipping",
				zap.String("collection", collection),
				zap.String("name", c.Name),
				zap.String("kind", c.Kind),
			)
			metrics.FallbacksTotal.WithLabelValues("criterion_kind").Inc()
			continue
		}
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("%s#%d", c.Kind, i)
		}
		active = active.With(name, crit)
	}

	items, err := s.browse.Browse(r.Context(), collection, browseuc.Query{
		Criteria: active.List(),
		Sort:     req.Sort,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BrowseResponse{Items: items, Count: len(items)})
}

// Summary handles GET /api/v1/collections/{collection}/summary.
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var raw []string
	if err := runtime.BindQueryParameter("form", false, false, "price_bands", r.URL.Query(), &raw); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid price_bands: "+err.Error())
		return
	}
	bands, err := parseBands(raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.browse.Summarize(r.Context(), collection, aggregate.DefaultSpec(bands...))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateCart handles POST /api/v1/carts.
func (s *Server) CreateCart(w http.ResponseWriter, r *http.Request) {
	id, err := s.carts.Create(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/carts/"+id)
	writeJSON(w, http.StatusCreated, CreateCartResponse{ID: id})
}

// GetCart handles GET /api/v1/carts/{id}.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.carts.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(id, snap))
}

// DeleteCart handles DELETE /api/v1/carts/{id}.
func (s *Server) DeleteCart(w http.ResponseWriter, r *http.Request) {
	if err := s.carts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /api/v1/carts/{id}/items.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "item_id is required")
		return
	}
	delta := 1
	if req.Quantity != nil {
		delta = *req.Quantity
	}

	snap, err := s.carts.Add(r.Context(), id, req.ItemID, delta)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(id, snap))
}

// SetItemQuantity handles PUT /api/v1/carts/{id}/items/{item}.
func (s *Server) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, item := chi.URLParam(r, "id"), chi.URLParam(r, "item")

	var req SetQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "quantity is required")
		return
	}

	snap, err := s.carts.SetQuantity(r.Context(), id, item, *req.Quantity)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(id, snap))
}

// RemoveItem handles DELETE /api/v1/carts/{id}/items/{item}.
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, item := chi.URLParam(r, "id"), chi.URLParam(r, "item")
	snap, err := s.carts.Remove(r.Context(), id, item)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(id, snap))
}

// ToggleItem handles POST /api/v1/carts/{id}/wishlist-toggle.
func (s *Server) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "item_id is required")
		return
	}

	present, snap, err := s.carts.Toggle(r.Context(), id, req.ItemID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ToggleResponse{Present: present, Cart: cartToResponse(id, snap)})
}

// Quote handles GET /api/v1/carts/{id}/quote.
func (s *Server) Quote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	q, err := s.carts.Quote(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteToResponse(id, q))
}

// Slots handles GET /api/v1/restaurants/{id}/slots.
func (s *Server) Slots(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var increment int
	if err := runtime.BindQueryParameter("form", true, false, "increment", r.URL.Query(), &increment); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid increment: "+err.Error())
		return
	}
	if increment < 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "increment must be positive")
		return
	}

	slots, err := s.reservations.Slots(r.Context(), id, increment)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SlotsResponse{RestaurantID: id, Slots: slots})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the full message for client-input errors and the bare
// sentinel text otherwise, so internals are never exposed.
func safeDomainMessage(err error) string {
	detailed := []error{
		domain.ErrInvalidCriterion,
		domain.ErrInvalidRequest,
		domain.ErrQuantityLimit,
	}
	for _, s := range detailed {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrCartNotFound,
		domain.ErrItemNotFound,
		domain.ErrInvalidSlotRequest,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// quantityLimitHandler handles ErrQuantityLimit and reports the configured cap.
func quantityLimitHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrQuantityLimit) {
		return false
	}
	var qle *domain.QuantityLimitError
	if errors.As(err, &qle) {
		w.Header().Set("X-Max-Quantity", strconv.Itoa(qle.Max))
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":         CodeQuantityLimit,
			"message":      msg,
			"max_quantity": qle.Max,
		})
		return true
	}
	writeError(w, http.StatusUnprocessableEntity, CodeQuantityLimit, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
