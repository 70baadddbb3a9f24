package engine_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/nutrigrade/nutrigrade/pkg/additive"
	"github.com/nutrigrade/nutrigrade/pkg/engine"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ppm(f float64) *float64 {
	return &f
}

func testEngine() *engine.Engine {
	tbl := reftable.NewFromRecords([]additive.Record{
		{
			Code:      "211",
			Name:      "Sodium benzoate",
			Status:    additive.Permitted,
			MaxPPM:    ppm(250),
			AllowedIn: []string{"beverages", "jams"},
			Notes:     "Preservative",
		},
		{Code: "330", Name: "Citric acid", Status: additive.Permitted},
		{Code: "102", Name: "Tartrazine", Status: additive.Restricted},
		{Code: "924", Name: "Potassium bromate", Status: additive.Banned},
		{Code: "460", Name: "Cellulose"},
	})
	return engine.New(tbl)
}

func TestExtract(t *testing.T) {
	e := testEngine()

	tests := []struct {
		msg, text string
		raws      []string
		codes     []string
	}{
		{"space", "INS 211", []string{"INS 211"}, []string{"211"}},
		{"hyphen", "INS-211", []string{"INS-211"}, []string{"211"}},
		{"lower", "ins211", []string{"ins211"}, []string{"211"}},
		{
			"annotation",
			"Sugar, INS 211 (Sodium Benzoate), water",
			[]string{"INS 211 (Sodium Benzoate)"},
			[]string{"211"},
		},
		{"e number", "E330", []string{"E330"}, []string{"330"}},
		{"four digits", "E1400", []string{"E1400"}, []string{"1400"}},
		{"two digits", "INS 21", nil, nil},
		{"empty", "", nil, nil},
		{"no codes", "Wheat flour, salt, water", nil, nil},
		{
			"ins then e",
			"E330, INS 211",
			[]string{"INS 211", "E330"},
			[]string{"211", "330"},
		},
		{
			"incidental e",
			"Sauce 330 g",
			[]string{"e 330"},
			[]string{"330"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res := e.Extract(tt.text)
			var raws, codes []string
			for _, v := range res {
				raws = append(raws, v.Raw)
				codes = append(codes, v.Code)
			}
			assert.Equal(t, tt.raws, raws)
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestExtractIdempotent(t *testing.T) {
	e := testEngine()
	text := "Flour, INS 102, E211 (Sodium Benzoate), ins-924"
	assert.Equal(t, e.Extract(text), e.Extract(text))
}

func TestAnalyzeOne(t *testing.T) {
	e := testEngine()

	t.Run("known", func(t *testing.T) {
		d := e.AnalyzeOne("INS 211", "211")
		assert.Equal(t, "INS 211", d.Raw)
		assert.Equal(t, "211", d.Code)
		assert.Equal(t, additive.Permitted, d.Status)
		require.NotNil(t, d.Name)
		assert.Equal(t, "Sodium benzoate", *d.Name)
		require.NotNil(t, d.MaxPPM)
		assert.Equal(t, 250.0, *d.MaxPPM)
		assert.Equal(t, []string{"beverages", "jams"}, d.AllowedIn)
		require.NotNil(t, d.Notes)
		assert.Equal(t, "Preservative", *d.Notes)
	})

	t.Run("no status", func(t *testing.T) {
		d := e.AnalyzeOne("INS 460", "460")
		assert.Equal(t, additive.Unknown, d.Status)
		require.NotNil(t, d.Name)
		assert.Equal(t, "Cellulose", *d.Name)
	})

	t.Run("absent", func(t *testing.T) {
		d := e.AnalyzeOne("INS 999", "999")
		assert.Equal(t, additive.Unknown, d.Status)
		assert.Nil(t, d.Name)
		assert.Nil(t, d.MaxPPM)
		assert.Nil(t, d.AllowedIn)
		assert.Nil(t, d.Notes)
	})

	t.Run("nil lookup", func(t *testing.T) {
		d := engine.New(nil).AnalyzeOne("INS 211", "211")
		assert.Equal(t, additive.Unknown, d.Status)
	})

	t.Run("detail does not change table", func(t *testing.T) {
		d := e.AnalyzeOne("INS 211", "211")
		*d.MaxPPM = 1
		d.AllowedIn[0] = "meat"
		rec, ok := e.Lookup().ByCode("211")
		require.True(t, ok)
		assert.Equal(t, 250.0, *rec.MaxPPM)
		assert.Equal(t, "beverages", rec.AllowedIn[0])
	})
}

func TestDeriveVerdict(t *testing.T) {
	details := func(ss ...additive.Status) []additive.Detail {
		var res []additive.Detail
		for _, s := range ss {
			res = append(res, additive.Detail{Status: s})
		}
		return res
	}

	p := additive.Permitted
	r := additive.Restricted
	b := additive.Banned
	u := additive.Unknown

	tests := []struct {
		msg      string
		statuses []additive.Status
		verdict  additive.Verdict
	}{
		{"empty", nil, additive.UnknownCompliance},
		{"permitted", []additive.Status{p, p}, additive.Compliant},
		{"restricted", []additive.Status{p, r}, additive.PartiallyCompliant},
		{"banned", []additive.Status{p, r, b}, additive.NonCompliant},
		{"banned over unknown", []additive.Status{u, b}, additive.NonCompliant},
		{"restricted over unknown", []additive.Status{u, r}, additive.PartiallyCompliant},
		{"unknown over permitted", []additive.Status{p, u}, additive.UnknownCompliance},
		{"only unknown", []additive.Status{u}, additive.UnknownCompliance},
		{"order does not matter", []additive.Status{b, r, p}, additive.NonCompliant},
		{"counts do not matter", []additive.Status{r, r, r, p}, additive.PartiallyCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res := engine.DeriveVerdict(details(tt.statuses...))
			assert.Equal(t, tt.verdict, res)
		})
	}
}

func TestAnalyze(t *testing.T) {
	e := testEngine()

	tests := []struct {
		msg     string
		text    string
		codes   []string
		verdict additive.Verdict
	}{
		{
			"compliant",
			"Water, sugar, INS 211 (Sodium Benzoate), INS 330",
			[]string{"211", "330"},
			additive.Compliant,
		},
		{
			"restricted",
			"Sugar, INS 102, INS 330",
			[]string{"102", "330"},
			additive.PartiallyCompliant,
		},
		{
			"banned",
			"Flour, INS 924, INS 102",
			[]string{"924", "102"},
			additive.NonCompliant,
		},
		{
			"unresolved",
			"Flour, INS 999, INS 211",
			[]string{"999", "211"},
			additive.UnknownCompliance,
		},
		{"no codes", "Wheat flour, water, salt", nil, additive.UnknownCompliance},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res := e.Analyze(tt.text)
			var codes []string
			for _, v := range res.Details {
				codes = append(codes, v.Code)
			}
			assert.Equal(t, tt.codes, codes)
			assert.Equal(t, tt.verdict, res.Verdict)
		})
	}
}

func TestAnalyzeEmptyTable(t *testing.T) {
	e := engine.New(reftable.New(nil))
	res := e.Analyze("INS 211, INS 102, INS 924")
	require.Len(t, res.Details, 3)
	for _, v := range res.Details {
		assert.Equal(t, additive.Unknown, v.Status)
	}
	assert.Equal(t, additive.UnknownCompliance, res.Verdict)
}

func TestAnalyzeAll(t *testing.T) {
	e := testEngine()

	var texts []string
	for i := range 100 {
		switch i % 3 {
		case 0:
			texts = append(texts, fmt.Sprintf("Item %d, INS 211", i))
		case 1:
			texts = append(texts, fmt.Sprintf("Item %d, INS 102", i))
		default:
			texts = append(texts, fmt.Sprintf("Item %d, INS 924", i))
		}
	}

	res, err := e.AnalyzeAll(context.Background(), texts, 4)
	require.NoError(t, err)
	require.Len(t, res, len(texts))
	for i, v := range res {
		assert.Equal(t, e.Analyze(texts[i]), v)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.AnalyzeAll(ctx, texts, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
