package preorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/princepradeep36/food-preorder-backend/internal/logger"
	"github.com/princepradeep36/food-preorder-backend/internal/metrics"
	"github.com/princepradeep36/food-preorder-backend/internal/models"
)

// Handler handles HTTP requests for the pre-order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new pre-order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// SubmitOrder handles POST /api/submit-order requests
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	// Only accept JSON content
	if r.Header.Get("Content-Type") != "application/json" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", "", requestID)
		return
	}

	h.logger.Debug("order_received", "Received order submission", requestID, map[string]interface{}{
		"content_length": r.ContentLength,
		"remote_addr":    r.RemoteAddr,
	})

	// Parse request body
	var req models.SubmitOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", "", requestID)
		return
	}

	// Process order with timeout
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	response, err := h.service.SubmitOrder(ctx, &req, requestID)
	if err != nil {
		var validationErr models.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Error("validation_failed", "Request validation failed", requestID, err, map[string]interface{}{
				"customer_name": req.Customer.Name,
			})
			h.writeErrorResponse(w, http.StatusBadRequest, "Validation failed", validationErr.Error(), requestID)
			return
		}

		h.logger.Error("order_submission_failed", "Failed to submit order", requestID, err, map[string]interface{}{
			"customer_name": req.Customer.Name,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to process order.", "", requestID)
		return
	}

	h.logger.Debug("order_accepted", "Order submitted successfully", requestID, map[string]interface{}{
		"order_id":     response.OrderID,
		"total_amount": response.TotalAmount,
	})

	// Write successful response
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// ListOrders handles GET /api/orders requests
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := h.service.ListOrders(ctx)
	if err != nil {
		h.logger.Error("order_listing_failed", "Failed to list orders", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to list orders.", "", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(orders)
}

// VendorSummary handles GET /api/vendor-summary requests
func (h *Handler) VendorSummary(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := h.service.VendorSummary(ctx)
	if err != nil {
		h.logger.Error("summary_listing_failed", "Failed to list vendor summary", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to list vendor summary.", "", requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(entries)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.service.HealthCheck(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "preorder-service",
		"healthy":   healthy,
	}

	w.Header().Set("Content-Type", "application/json")

	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		response["status"] = "unhealthy"
	}

	json.NewEncoder(w).Encode(response)
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, details, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}
	if details != "" {
		errorResponse["details"] = details
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// SetupRoutes sets up the HTTP routes
func (h *Handler) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/submit-order", h.withLogging(h.SubmitOrder))
	mux.HandleFunc("GET /api/orders", h.withLogging(h.ListOrders))
	mux.HandleFunc("GET /api/vendor-summary", h.withLogging(h.VendorSummary))
	mux.HandleFunc("GET /health", h.withLogging(h.HealthCheck))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

// withLogging adds request logging and metrics middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		// Create a response writer that captures status code
		rw := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(rw, r)

		duration := time.Since(start)
		metrics.RequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
