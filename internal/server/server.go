package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/iwvelando/staffing-cost/internal/calculator"
	"github.com/iwvelando/staffing-cost/internal/session"
	"github.com/iwvelando/staffing-cost/internal/snapshot"
	"github.com/iwvelando/staffing-cost/pkg/constants"
	"go.uber.org/zap"
)

// Options tune the HTTP handler.
type Options struct {
	MaxBodySize  int64
	Version      string
	Capabilities calculator.Capabilities
}

type handler struct {
	logger      *zap.Logger
	session     *session.Session
	caps        calculator.Capabilities
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler serving the calculator API over the
// given session.
func NewHandler(logger *zap.Logger, sess *session.Session, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sess == nil {
		sess = session.New(nil, session.Options{Logger: logger})
	}

	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		session:     sess,
		caps:        opts.Capabilities,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/fields", h.handleFields)
		r.Get("/state", h.handleState)
		r.Post("/recompute", h.handleRecompute)
		r.Patch("/inputs", h.handleUpdateInputs)
		r.Post("/replacement/apply", h.handleApplyReplacement)
		r.Post("/reset", h.handleReset)
		r.Get("/version", h.handleVersion)
	})

	return r
}

type fieldResponse struct {
	Key     string      `json:"key"`
	Kind    string      `json:"kind"`
	Default interface{} `json:"default"`
	Derived bool        `json:"derived,omitempty"`
}

type stateResponse struct {
	CalculationID string                 `json:"calculationId"`
	Policies      policiesResponse       `json:"policies"`
	Inputs        map[string]interface{} `json:"inputs"`
	Outputs       map[string]string      `json:"outputs"`
	Totals        totalsResponse         `json:"totals"`
	Warnings      []string               `json:"warnings,omitempty"`
	Duration      string                 `json:"duration"`
}

type policiesResponse struct {
	Security string `json:"security"`
	Cleaning string `json:"cleaning"`
}

type totalsResponse struct {
	SecurityMonthly    float64 `json:"securityMonthly"`
	CleaningMonthly    float64 `json:"cleaningMonthly"`
	ConsumablesMonthly float64 `json:"consumablesMonthly"`
	TransportMonthly   float64 `json:"transportMonthly"`
	OpexMonthly        float64 `json:"opexMonthly"`
	OpexAnnual         float64 `json:"opexAnnual"`
	CapexTotal         float64 `json:"capexTotal"`
	Month1Total        float64 `json:"month1Total"`
	ReplacementPercent float64 `json:"replacementComputedPercent"`
}

type recomputeRequest struct {
	Inputs   map[string]interface{} `json:"inputs"`
	Policies *policiesResponse      `json:"policies,omitempty"`
}

func (h *handler) handleFields(w http.ResponseWriter, r *http.Request) {
	fields := snapshot.Fields()
	out := make([]fieldResponse, 0, len(fields))
	for _, f := range fields {
		resp := fieldResponse{Key: f.Key, Kind: f.Kind.String(), Derived: f.Derived}
		if f.Kind == snapshot.Flag {
			resp.Default = f.Flag
		} else {
			resp.Default = f.Number
		}
		out = append(out, resp)
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handler) handleState(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.respondResult(w, h.session.State(), nil, start, "server.handleState")
}

func (h *handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRecompute"
	start := time.Now()

	var req recomputeRequest
	if !h.decodeBody(w, r, &req, op) {
		return
	}

	policies := h.session.Policies()
	if req.Policies != nil {
		if req.Policies.Security != "" {
			policies.Security = req.Policies.Security
		}
		if req.Policies.Cleaning != "" {
			policies.Cleaning = req.Policies.Cleaning
		}
	}

	warnings := unknownInputs(req.Inputs)
	if !calculator.ValidPolicy(policies.Security) || !calculator.ValidPolicy(policies.Cleaning) {
		warnings = append(warnings, fmt.Sprintf("unknown pricing policy, using %s", constants.PolicyHeadcount))
	}

	result := calculator.Recompute(snapshot.FromValues(req.Inputs), policies)
	h.respondResult(w, result, warnings, start, op)
}

func (h *handler) handleUpdateInputs(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleUpdateInputs"
	start := time.Now()

	var edits map[string]interface{}
	if !h.decodeBody(w, r, &edits, op) {
		return
	}

	result, err := h.session.UpdateValues(r.Context(), edits)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.respondResult(w, result, unknownInputs(edits), start, op)
}

func (h *handler) handleApplyReplacement(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleApplyReplacement"
	start := time.Now()

	result, err := h.session.ApplyReplacement(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.respondResult(w, result, nil, start, op)
}

func (h *handler) handleReset(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReset"
	start := time.Now()

	result, err := h.session.Reset(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.respondResult(w, result, nil, start, op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":        h.version,
		"profileVersion": constants.ProfileVersion,
	})
}

// decodeBody reads a size-limited JSON body into dst. An empty body leaves dst
// untouched. It writes the error response and returns false on failure.
func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err), op)
		return false
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return true
	}
	if err := json.Unmarshal(data, dst); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request body: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondResult(w http.ResponseWriter, result calculator.Result, warnings []string, start time.Time, op string) {
	id := uuid.NewString()
	elapsed := time.Since(start)

	response := stateResponse{
		CalculationID: id,
		Policies: policiesResponse{
			Security: result.Policies.Security,
			Cleaning: result.Policies.Cleaning,
		},
		Inputs:  result.Inputs.Values(),
		Outputs: calculator.Render(result, h.caps),
		Totals: totalsResponse{
			SecurityMonthly:    result.Opex.SecurityMonthly,
			CleaningMonthly:    result.Opex.CleaningMonthly,
			ConsumablesMonthly: result.Opex.ConsumablesMonthly,
			TransportMonthly:   result.Opex.TransportMonthly,
			OpexMonthly:        result.Opex.Total,
			OpexAnnual:         result.Opex.Annual,
			CapexTotal:         result.CapexTotal,
			Month1Total:        result.Month1Total,
			ReplacementPercent: result.Replacement.Percent,
		},
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Debug("calculation served",
		zap.String("op", op),
		zap.String("calculationId", id),
		zap.Float64("opexMonthly", result.Opex.Total),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func unknownInputs(values map[string]interface{}) []string {
	var unknown []string
	for key := range values {
		if _, ok := snapshot.Canonical(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return []string{"unknown inputs ignored: " + strings.Join(unknown, ", ")}
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request handled",
			zap.String("op", "server.request"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
