package ioweb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
	"github.com/go-chi/chi/v5"
	app "github.com/nutrigrade/nutrigrade/pkg"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
	"github.com/nutrigrade/nutrigrade/pkg/product"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
)

// maxRequest limits the size of a request body.
const maxRequest = 1 << 20

// Sources of ingredients text.
const (
	SourceOFF    = "openfoodfacts"
	SourceManual = "manual"
)

// AnalyzeRequest is the body of POST /analyze. At least one field is
// required, ingredients text wins if both are given.
type AnalyzeRequest struct {
	Barcode         string `json:"barcode,omitempty"`
	IngredientsText string `json:"ingredients_text,omitempty"`
}

// AnalyzeResponse is the result of POST /analyze.
type AnalyzeResponse struct {
	ProductName       *string           `json:"product_name"`
	Source            string            `json:"source"`
	IngredientsText   string            `json:"ingredients_text"`
	Ingredients       []additive.Detail `json:"ingredients"`
	ProductCompliance additive.Verdict  `json:"product_compliance"`
}

// HealthResponse is the result of GET /health.
type HealthResponse struct {
	Status    string         `json:"status"`
	Version   string         `json:"version"`
	Reference reftable.Stats `json:"reference"`
}

// errorResponse is the body of all error responses.
type errorResponse struct {
	Detail    string `json:"detail"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   app.Version,
		Reference: s.table.Stats(),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequest))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "cannot read request body")
		return
	}

	var req AnalyzeRequest
	enc := gnfmt.GNjson{}
	if err = enc.Decode(body, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	res := AnalyzeResponse{Source: SourceManual}
	text := strings.TrimSpace(gnlib.FixUtf8(req.IngredientsText))
	barcode := strings.TrimSpace(req.Barcode)

	switch {
	case text != "":
		res.IngredientsText = text
	case barcode != "":
		p, status, msg := s.fetch(ctx, barcode)
		if status != http.StatusOK {
			writeError(w, r, status, msg)
			return
		}
		res.Source = SourceOFF
		if p.Name != "" {
			res.ProductName = &p.Name
		}
		res.IngredientsText = gnlib.FixUtf8(p.IngredientsText)
	default:
		writeError(w, r, http.StatusBadRequest,
			"either barcode or ingredients_text must be provided")
		return
	}

	start := time.Now()
	out := s.engine.Analyze(res.IngredientsText)
	s.metrics.ObserveAnalyze(time.Since(start))
	s.metrics.ObserveVerdict(string(out.Verdict), res.Source)

	res.Ingredients = out.Details
	res.ProductCompliance = out.Verdict
	writeJSON(w, http.StatusOK, res)
}

// fetch finds a product with ingredients text. It returns the HTTP status
// and error message if the product cannot be used.
func (s *Server) fetch(
	ctx context.Context,
	barcode string,
) (*product.Product, int, string) {
	code := product.NormBarcode(barcode)
	if code == "" {
		return nil, http.StatusBadRequest, "barcode must contain only digits"
	}
	if s.fetcher == nil {
		return nil, http.StatusBadGateway, "product lookup is not available"
	}

	start := time.Now()
	p, err := s.fetcher.Product(ctx, code)
	s.metrics.ObserveFetch(time.Since(start))
	if err != nil {
		slog.Error("Product lookup failed",
			"request_id", GetRequestID(ctx),
			"barcode", code,
			"error", err,
		)
		return nil, http.StatusBadGateway,
			"cannot fetch product from Open Food Facts"
	}
	if p == nil {
		return nil, http.StatusNotFound,
			"product not found in Open Food Facts"
	}
	if strings.TrimSpace(p.IngredientsText) == "" {
		return nil, http.StatusUnprocessableEntity,
			"product has no ingredients text, please enter it manually"
	}
	return p, http.StatusOK, ""
}

func (s *Server) handleAdditives(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeJSON(w, http.StatusOK, s.table.All())
		return
	}

	rec, ok := s.table.ByName(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, "additive not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleAdditive(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if m := s.engine.Extract(code); len(m) == 1 {
		code = m[0].Code
	}

	rec, ok := s.table.ByCode(code)
	if !ok {
		writeError(w, r, http.StatusNotFound, "additive not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	enc := gnfmt.GNjson{}
	bs, err := enc.Encode(data)
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(bs)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Detail:    msg,
		RequestID: GetRequestID(r.Context()),
	})
}
