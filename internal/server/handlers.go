package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/bigfib/internal/errors"
	"github.com/agbru/bigfib/internal/fibonacci"
	"github.com/agbru/bigfib/internal/service"
	"github.com/agbru/bigfib/pkg/models"
)

// maxBatchSize bounds the number of indexes in one /batch request.
const maxBatchSize = 256

// parseError is a request parsing failure with its HTTP status.
type parseError struct {
	Message    string
	StatusCode int
}

func (e parseError) Error() string {
	return e.Message
}

// handleHealth responds to health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleFib serves GET /fib?n=<index>.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	n, err := parseUintParam(r, "n", true)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	term, err := s.service.Decimal(ctx, n)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.FibResponse{
		Term:      term,
		Duration:  time.Since(start).String(),
		Algorithm: fibonacci.AlgorithmName,
	})
}

// handleSequence serves GET /sequence?from=<a>&to=<b>. A missing from
// defaults to 0.
func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	from, err := parseUintParam(r, "from", false)
	if err != nil {
		s.writeParseError(w, err)
		return
	}
	to, err := parseUintParam(r, "to", true)
	if err != nil {
		s.writeParseError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	terms, err := s.service.Range(ctx, from, to)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.SequenceResponse{
		From:     from,
		To:       to,
		Terms:    terms,
		Duration: time.Since(start).String(),
	})
}

// handleBatch serves POST /batch with a models.BatchRequest body.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.BatchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return
	}
	if len(req.Indexes) == 0 {
		s.writeErrorResponse(w, http.StatusBadRequest, "'indexes' must not be empty")
		return
	}
	if len(req.Indexes) > maxBatchSize {
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("'indexes' is limited to %d entries", maxBatchSize))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	terms, err := s.service.Batch(ctx, req.Indexes)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSONResponse(w, http.StatusOK, models.BatchResponse{
		Terms:    terms,
		Duration: time.Since(start).String(),
	})
}

// parseUintParam reads a non-negative integer query parameter.
func parseUintParam(r *http.Request, name string, required bool) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return 0, parseError{
				Message:    fmt.Sprintf("Missing '%s' parameter", name),
				StatusCode: http.StatusBadRequest,
			}
		}
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, parseError{
			Message:    fmt.Sprintf("Invalid '%s' parameter: must be a non-negative integer", name),
			StatusCode: http.StatusBadRequest,
		}
	}
	return v, nil
}

func (s *Server) writeParseError(w http.ResponseWriter, err error) {
	var pe parseError
	if errors.As(err, &pe) {
		s.writeErrorResponse(w, pe.StatusCode, pe.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

// writeServiceError maps service failures onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var (
		vErr     apperrors.ValidationError
		limitErr service.LimitError
	)
	switch {
	case errors.As(err, &limitErr):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Index %d exceeds maximum allowed (%d).", limitErr.Index, limitErr.Max))
	case errors.Is(err, service.ErrMaxValueExceeded):
		s.writeErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d).", s.securityConfig.MaxNValue))
	case errors.As(err, &vErr):
		s.writeErrorResponse(w, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorResponse(w, http.StatusGatewayTimeout, "Calculation timed out")
	case errors.Is(err, context.Canceled):
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "Request canceled")
	case apperrors.IsAllocationFailure(err):
		s.logger.Error("allocation failure", err)
		s.writeErrorResponse(w, http.StatusInsufficientStorage, "Result too large to allocate")
	default:
		s.logger.Error("calculation failed", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// writeJSONResponse writes data as JSON with the given status.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

// writeErrorResponse writes a models.ErrorResponse.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
