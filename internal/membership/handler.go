// internal/membership/handler.go
package membership

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// UserIDHeader carries the identity of the requesting user. Every route
// rejects requests without it before touching the service.
const UserIDHeader = "X-USER-ID"

// errorStatus is the complete translation table from domain failure kinds
// to HTTP statuses. Anything outside the table is an internal error.
var errorStatus = map[ErrorCode]int{
	CodeMembershipNotFound:           http.StatusNotFound,
	CodeDuplicatedMembershipRegister: http.StatusBadRequest,
	CodeNotMembershipOwner:           http.StatusBadRequest,
}

type Handler struct {
	service  Service
	logger   *slog.Logger
	limiter  *rate.Limiter
	requests metric.Int64Counter
}

func NewHandler(service Service, logger *slog.Logger, limiter *rate.Limiter) *Handler {
	requests, err := otel.Meter("loyaltyhub/http").Int64Counter(
		"http.server.requests",
		metric.WithDescription("Completed HTTP requests."),
	)
	if err != nil {
		logger.Warn("request counter unavailable", "error", err)
		requests = nil
	}

	return &Handler{
		service:  service,
		logger:   logger,
		limiter:  limiter,
		requests: requests,
	}
}

// Routes builds the HTTP API for membership records.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.observe, h.throttle)

	r.Route("/api/v1/memberships", func(r chi.Router) {
		r.Use(h.requireUserID)
		r.Post("/", h.handleAddMembership)
		r.Get("/", h.handleGetMembershipList)
		r.Route("/{membershipID}", func(r chi.Router) {
			r.Get("/", h.handleGetMembership)
			r.Delete("/", h.handleRemoveMembership)
			r.Post("/accumulate", h.handleAccumulatePoint)
		})
	})

	return r
}

type membershipRequest struct {
	MembershipType MembershipType `json:"membership_type"`
	Point          *int           `json:"point"`
}

type accumulateRequest struct {
	Point *int `json:"point"`
}

type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (h *Handler) handleAddMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid request body")
		return
	}
	if req.Point == nil || *req.Point < 0 {
		writeError(w, http.StatusBadRequest, "", "point must be a non-negative integer")
		return
	}
	if !req.MembershipType.Valid() {
		writeError(w, http.StatusBadRequest, "", "unsupported membership type")
		return
	}

	summary, err := h.service.AddMembership(r.Context(), userID(r.Context()), req.MembershipType, *req.Point)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

func (h *Handler) handleGetMembershipList(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.GetMembershipList(r.Context(), userID(r.Context()))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleGetMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := membershipID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetMembership(r.Context(), id, userID(r.Context()))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) handleRemoveMembership(w http.ResponseWriter, r *http.Request) {
	id, ok := membershipID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveMembership(r.Context(), id, userID(r.Context())); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleAccumulatePoint(w http.ResponseWriter, r *http.Request) {
	id, ok := membershipID(w, r)
	if !ok {
		return
	}

	var req accumulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid request body")
		return
	}
	if req.Point == nil || *req.Point < 0 {
		writeError(w, http.StatusBadRequest, "", "point must be a non-negative integer")
		return
	}

	if err := h.service.AccumulateMembershipPoint(r.Context(), id, userID(r.Context()), *req.Point); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func membershipID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "membershipID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "", "invalid membership ID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		writeError(w, errorStatus[domainErr.Code], string(domainErr.Code), domainErr.Message)
		return
	}

	h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "", "internal server error")
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Code: code, Message: message})
}

type userIDKey struct{}

func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

func (h *Handler) requireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(UserIDHeader)
		if id == "" {
			writeError(w, http.StatusBadRequest, "", "missing "+UserIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey{}, id)))
	})
}

func (h *Handler) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		h.logger.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
		if h.requests != nil {
			h.requests.Add(r.Context(), 1, metric.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.Int("http.status_code", rec.status),
			))
		}
	})
}
