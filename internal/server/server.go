package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/iwvelando/home-cost-calculator/internal/calculator"
	"github.com/iwvelando/home-cost-calculator/internal/config"
	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/field"
	"github.com/iwvelando/home-cost-calculator/pkg/format"
	"github.com/iwvelando/home-cost-calculator/pkg/mortgage"
	"github.com/iwvelando/home-cost-calculator/pkg/output"
	"github.com/iwvelando/home-cost-calculator/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger         *zap.Logger
	maxUploadSize  int64
	version        string
	fixedLoanTerms bool
}

// Options tunes NewHandler.
type Options struct {
	MaxUploadSize  int64
	Version        string
	FixedLoanTerms bool
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxUploadSize:  maxUploadSize,
		version:        trimmedVersion,
		fixedLoanTerms: opts.FixedLoanTerms,
	}

	mux := http.NewServeMux()

	// Keystroke endpoints for a form collaborator
	mux.HandleFunc("/api/field", h.handleField)
	mux.HandleFunc("/api/field/percentage", h.handleFieldPercentage)

	// Derived figures for one set of inputs
	mux.HandleFunc("/api/breakdown", h.handleBreakdown)

	// Scenario file upload and export
	mux.HandleFunc("/api/scenarios", h.handleScenarios)
	mux.HandleFunc("/api/scenarios/export", h.handleScenarioExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type fieldRequest struct {
	Previous    field.NumericField `json:"previous"`
	MaxDecimals *int               `json:"maxDecimals,omitempty"`
	Input       string             `json:"input"`
	Base        float64            `json:"base"`
	Percentage  float64            `json:"percentage"`
}

type fieldResponse struct {
	Field    field.NumericField `json:"field"`
	Accepted bool               `json:"accepted"`
	Input    string             `json:"input,omitempty"`
}

type breakdownResponse struct {
	Inputs    mortgage.Inputs    `json:"inputs"`
	Breakdown mortgage.Breakdown `json:"breakdown"`
	Formatted formattedBreakdown `json:"formatted"`
	Warnings  []string           `json:"warnings,omitempty"`
}

type formattedBreakdown struct {
	DownPaymentPct   string `json:"downPaymentPct"`
	LoanAmount       string `json:"loanAmount"`
	MortgagePayment  string `json:"mortgagePayment"`
	TaxPayment       string `json:"taxPayment"`
	InsurancePayment string `json:"insurancePayment"`
	TotalPayment     string `json:"totalPayment"`
}

type scenariosResponse struct {
	Results  []scenarioResult `json:"results"`
	CSV      string           `json:"csv"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type scenarioResult struct {
	Name      string                        `json:"name"`
	Fields    map[string]field.NumericField `json:"fields"`
	Inputs    mortgage.Inputs               `json:"inputs"`
	Breakdown mortgage.Breakdown            `json:"breakdown"`
	Formatted formattedBreakdown            `json:"formatted"`
	Warnings  []string                      `json:"warnings,omitempty"`
	Notes     []string                      `json:"notes,omitempty"`
}

func (h *handler) handleField(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleField"
	req, cfg, ok := h.decodeFieldRequest(w, r, op)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, fieldResponse{
		Field:    field.Apply(req.Previous, cfg, req.Input),
		Accepted: field.Accepts(cfg, req.Input),
	})
}

func (h *handler) handleFieldPercentage(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleFieldPercentage"
	req, cfg, ok := h.decodeFieldRequest(w, r, op)
	if !ok {
		return
	}

	input := field.PercentageText(req.Base, req.Percentage)
	accepted := field.Accepts(cfg, input)
	if !accepted {
		h.logger.Debug("quick option rejected by field rules",
			zap.String("op", op),
			zap.Float64("base", req.Base),
			zap.Float64("percentage", req.Percentage),
			zap.String("input", input),
		)
	}

	h.writeJSON(w, http.StatusOK, fieldResponse{
		Field:    field.SetFromPercentageOf(req.Previous, cfg, req.Base, req.Percentage),
		Accepted: accepted,
		Input:    input,
	})
}

func (h *handler) decodeFieldRequest(w http.ResponseWriter, r *http.Request, op string) (fieldRequest, field.Config, bool) {
	var req fieldRequest
	if !h.decodeJSON(w, r, op, &req) {
		return req, field.Config{}, false
	}

	cfg := field.MoneyConfig()
	if req.MaxDecimals != nil {
		if err := validation.ValidateMaxDecimals(*req.MaxDecimals); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return req, cfg, false
		}
		cfg.MaxDecimals = *req.MaxDecimals
	}
	return req, cfg, true
}

func (h *handler) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBreakdown"

	var in mortgage.Inputs
	if !h.decodeJSON(w, r, op, &in) {
		return
	}

	period, err := mortgage.ParsePeriod(string(in.Period))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	in.Period = period

	if err := validation.ValidateLoanTerm(in.LoanTermYears, h.fixedLoanTerms); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	breakdown := mortgage.Calculate(in)
	if !breakdown.IsFinite() {
		h.respondErrorWithOp(w, http.StatusBadRequest, "inputs are too large to compute a breakdown", op)
		return
	}
	h.writeJSON(w, http.StatusOK, breakdownResponse{
		Inputs:    in,
		Breakdown: breakdown,
		Formatted: formatBreakdown(breakdown),
		Warnings:  mortgage.Warnings(in),
	})
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	warnings := cfg.ValidateConfiguration()
	results, err := calculator.Run(h.logger, *cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to compute scenarios: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	response := scenariosResponse{
		Results:  buildScenarioResults(results),
		CSV:      output.CsvString(results),
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("scenarios computed",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleScenarioExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarioExport"

	var payload map[string]interface{}
	if !h.decodeJSON(w, r, op, &payload) {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range []string{"logging", "output", "scenarios"} {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func formatBreakdown(b mortgage.Breakdown) formattedBreakdown {
	return formattedBreakdown{
		DownPaymentPct:   format.Number(b.DownPaymentPct) + "%",
		LoanAmount:       format.Currency(b.LoanAmount),
		MortgagePayment:  format.Currency(b.MortgagePayment),
		TaxPayment:       format.Currency(b.TaxPayment),
		InsurancePayment: format.Currency(b.InsurancePayment),
		TotalPayment:     format.Currency(b.TotalPayment),
	}
}

func buildScenarioResults(results []calculator.Result) []scenarioResult {
	out := make([]scenarioResult, 0, len(results))
	for _, result := range results {
		out = append(out, scenarioResult{
			Name:      result.Name,
			Fields:    result.Fields,
			Inputs:    result.Inputs,
			Breakdown: result.Breakdown,
			Formatted: formatBreakdown(result.Breakdown),
			Warnings:  result.Warnings,
			Notes:     result.Notes,
		})
	}
	return out
}

// decodeJSON enforces POST and the body limit and decodes into dst.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before sending the status so an unencodable
// payload becomes a 500 instead of an empty success.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
