package ioweb_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/nutrigrade/nutrigrade/internal/ioweb"
	"github.com/nutrigrade/nutrigrade/pkg/additive"
	"github.com/nutrigrade/nutrigrade/pkg/product"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFetcher map[string]*product.Product

func (f testFetcher) Product(
	_ context.Context,
	barcode string,
) (*product.Product, error) {
	if barcode == "500" {
		return nil, errors.New("upstream is down")
	}
	return f[barcode], nil
}

func ppm(f float64) *float64 {
	return &f
}

func testServer() *ioweb.Server {
	tbl := reftable.NewFromRecords([]additive.Record{
		{
			Code:      "211",
			Name:      "Sodium benzoate",
			Status:    additive.Permitted,
			MaxPPM:    ppm(500),
			AllowedIn: []string{"non-alcoholic beverages"},
		},
		{Code: "102", Name: "Tartrazine", Status: additive.Restricted},
		{Code: "924", Name: "Potassium bromate", Status: additive.Banned},
	})
	fetcher := testFetcher{
		"8901058851298": {
			Barcode:         "8901058851298",
			Name:            "Cola",
			IngredientsText: "Carbonated water, sugar, INS 211, E102",
		},
		"111": {Barcode: "111", Name: "Water"},
	}
	return ioweb.New(8000, tbl, fetcher)
}

func do(
	t *testing.T,
	h http.Handler,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	enc := gnfmt.GNjson{}
	require.NoError(t, enc.Decode(w.Body.Bytes(), &res))
	return res
}

func TestHealth(t *testing.T) {
	h := testServer().Handler()
	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(ioweb.RequestIDHeader))

	res := decode[ioweb.HealthResponse](t, w)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, 3, res.Reference.Records)
}

func TestAnalyzeManual(t *testing.T) {
	h := testServer().Handler()
	body := `{"ingredients_text": "Water, INS 211 (Sodium Benzoate), E102, E999"}`
	w := do(t, h, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)

	res := decode[ioweb.AnalyzeResponse](t, w)
	assert.Equal(t, ioweb.SourceManual, res.Source)
	assert.Nil(t, res.ProductName)
	assert.Equal(t, additive.PartiallyCompliant, res.ProductCompliance)
	require.Len(t, res.Ingredients, 3)

	det := res.Ingredients[0]
	assert.Equal(t, "INS 211 (Sodium Benzoate)", det.Raw)
	assert.Equal(t, "211", det.Code)
	assert.Equal(t, additive.Permitted, det.Status)
	require.NotNil(t, det.MaxPPM)
	assert.Equal(t, 500.0, *det.MaxPPM)
	assert.Equal(t, additive.Restricted, res.Ingredients[1].Status)
	assert.Equal(t, additive.Unknown, res.Ingredients[2].Status)
}

func TestAnalyzeBarcode(t *testing.T) {
	h := testServer().Handler()

	w := do(t, h, http.MethodPost, "/analyze", `{"barcode": "8901058851298"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[ioweb.AnalyzeResponse](t, w)
	assert.Equal(t, ioweb.SourceOFF, res.Source)
	require.NotNil(t, res.ProductName)
	assert.Equal(t, "Cola", *res.ProductName)
	assert.Equal(t, "Carbonated water, sugar, INS 211, E102", res.IngredientsText)
	assert.Equal(t, additive.PartiallyCompliant, res.ProductCompliance)
	assert.Len(t, res.Ingredients, 2)

	// manual text wins over barcode
	body := `{"barcode": "8901058851298", "ingredients_text": "Flour, INS 924"}`
	w = do(t, h, http.MethodPost, "/api/v1/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)
	res = decode[ioweb.AnalyzeResponse](t, w)
	assert.Equal(t, ioweb.SourceManual, res.Source)
	assert.Equal(t, additive.NonCompliant, res.ProductCompliance)
}

func TestAnalyzeErrors(t *testing.T) {
	h := testServer().Handler()

	tests := []struct {
		msg, body string
		status    int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"bad json", `{"barcode":`, http.StatusBadRequest},
		{"no fields", `{}`, http.StatusBadRequest},
		{"blank fields", `{"barcode": " ", "ingredients_text": "  "}`,
			http.StatusBadRequest},
		{"bad barcode", `{"barcode": "abc"}`, http.StatusBadRequest},
		{"not found", `{"barcode": "222"}`, http.StatusNotFound},
		{"no ingredients", `{"barcode": "111"}`, http.StatusUnprocessableEntity},
		{"upstream", `{"barcode": "500"}`, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/analyze", tt.body)
			assert.Equal(t, tt.status, w.Code)
			res := decode[map[string]any](t, w)
			assert.NotEmpty(t, res["detail"])
			assert.NotEmpty(t, res["request_id"])
		})
	}
}

func TestAnalyzeNoCodes(t *testing.T) {
	h := testServer().Handler()
	w := do(t, h, http.MethodPost, "/analyze", `{"ingredients_text": "Water, salt"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[ioweb.AnalyzeResponse](t, w)
	assert.Empty(t, res.Ingredients)
	assert.Equal(t, additive.UnknownCompliance, res.ProductCompliance)
	assert.Contains(t, w.Body.String(), `"ingredients":[]`)
}

func TestAdditives(t *testing.T) {
	h := testServer().Handler()

	w := do(t, h, http.MethodGet, "/api/v1/additives", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]additive.Record](t, w)
	assert.Len(t, all, 3)
	assert.Equal(t, "102", all[0].Code)

	tests := []struct {
		msg, path string
		status    int
		code      string
	}{
		{"by code", "/api/v1/additives/211", http.StatusOK, "211"},
		{"decorated code", "/api/v1/additives/INS-924", http.StatusOK, "924"},
		{"unknown code", "/api/v1/additives/999", http.StatusNotFound, ""},
		{"by name", "/api/v1/additives?name=TARTRAZINE", http.StatusOK, "102"},
		{"unknown name", "/api/v1/additives?name=salt", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				rec := decode[additive.Record](t, w)
				assert.Equal(t, tt.code, rec.Code)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	h := testServer().Handler()
	_ = do(t, h, http.MethodPost, "/analyze", `{"ingredients_text": "INS 924"}`)
	_ = do(t, h, http.MethodPost, "/analyze", `{"barcode": "8901058851298"}`)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body,
		`nutrigrade_verdicts_total{source="manual",verdict="non_compliant"} 1`)
	assert.Contains(t, body,
		`nutrigrade_verdicts_total{source="openfoodfacts",verdict="partially_compliant"} 1`)
	assert.Contains(t, body, "nutrigrade_analyze_duration_seconds_count 2")
	assert.Contains(t, body, "nutrigrade_off_fetch_duration_seconds_count 1")
}

func TestRequestID(t *testing.T) {
	h := testServer().Handler()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(ioweb.RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(ioweb.RequestIDHeader))
}

func TestServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	srv := ioweb.New(port, reftable.NewFromRecords(nil), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d", port)
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(url + "/health")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	cancel()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}
