package pisano_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	Ps "github.com/maroda/pisano/analysis"
	Pd "github.com/maroda/pisano/display"
	Po "github.com/maroda/pisano/obvy"
)

func TestView_SetupMux(t *testing.T) {
	view := makeTestView(t, 13)
	mux := view.SetupMux()

	t.Run("Websocket Endpoint answers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/ws", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
		// websocket upgrade will fail in test, but check for the 400
		assertStatus(t, w.Code, http.StatusBadRequest)
	})

	t.Run("Metrics Endpoint answers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/metrics", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
		assertStatus(t, w.Code, http.StatusOK)
	})

	t.Run("Version Endpoint answers with JSON", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/version", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
		assertStatus(t, w.Code, http.StatusOK)

		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("could not unmarshal version: %v", err)
		}
		if _, ok := resp["version"]; !ok {
			t.Errorf("Field 'version' not found in response")
		}
	})

	t.Run("Period Endpoint answers", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/period", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)
		assertStatus(t, w.Code, http.StatusOK)
	})
}

// Every API request must pass through the stats middleware,
// visible as an incremented request counter in the registry.
func TestView_StatsMiddlewareCounts(t *testing.T) {
	view := makeTestView(t, 13)
	mux := view.SetupMux()

	r := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	assertStatus(t, w.Code, http.StatusOK)

	mfs, err := view.Stats.Registry.Gather()
	if err != nil {
		t.Fatalf("could not gather registry: %v", err)
	}

	var counted float64
	for _, mf := range mfs {
		if mf.GetName() != "pisano_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			counted += m.GetCounter().GetValue()
		}
	}
	if counted < 1 {
		t.Error("API request did not increment pisano_http_requests_total")
	}
}

func TestView_PeriodHandler(t *testing.T) {
	view := makeTestView(t, 13)

	t.Run("Serves the on-screen analysis by default", func(t *testing.T) {
		pd := getPeriod(t, view, "/api/period", http.StatusOK)
		if pd.Modulus != 13 || pd.Length != 28 {
			t.Errorf("got modulus %d length %d, want 13 and 28", pd.Modulus, pd.Length)
		}
		if pd.Sections != 4 {
			t.Errorf("sections = %d, want 4", pd.Sections)
		}
		if pd.Signature != 7 {
			t.Errorf("signature = %d, want 7", pd.Signature)
		}
	})

	t.Run("Analyzes a queried modulus", func(t *testing.T) {
		pd := getPeriod(t, view, "/api/period?m=10", http.StatusOK)
		if pd.Modulus != 10 || pd.Length != 60 {
			t.Errorf("got modulus %d length %d, want 10 and 60", pd.Modulus, pd.Length)
		}
		if !strings.Contains(pd.Subtitle, "mirrored") {
			t.Errorf("subtitle %q should mention the mirror", pd.Subtitle)
		}
		if len(pd.Sequence) != pd.Length {
			t.Errorf("sequence has %d residues, want %d", len(pd.Sequence), pd.Length)
		}
	})

	t.Run("Rejects a non-integer modulus", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/period?m=thirteen", nil)
		w := httptest.NewRecorder()
		view.PeriodHandler(w, r)
		assertStatus(t, w.Code, http.StatusBadRequest)
	})

	t.Run("Rejects a modulus below two", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/period?m=1", nil)
		w := httptest.NewRecorder()
		view.PeriodHandler(w, r)
		assertStatus(t, w.Code, http.StatusBadRequest)
	})

	t.Run("Reports no analysis available", func(t *testing.T) {
		empty := &Pd.View{
			Config: Ps.DefaultConfig(),
			Stats:  Po.NewStatsInternal(),
		}
		r := httptest.NewRequest("GET", "/api/period", nil)
		w := httptest.NewRecorder()
		empty.PeriodHandler(w, r)
		assertStatus(t, w.Code, http.StatusServiceUnavailable)
	})
}

func TestView_VersionHandler(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	view := &Pd.View{}
	view.VersionHandler(w, r)

	assertStatus(t, w.Code, http.StatusOK)

	// Check response, "dev" is the default
	want := "dev"
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	if !strings.Contains(response["version"], want) {
		t.Errorf("version = %q, want %q", response["version"], want)
	}
}

// Helpers //

// View with a precomputed analysis and no exporters
func makeTestView(t *testing.T, m int) *Pd.View {
	t.Helper()
	a, err := Ps.Analyze(m, Ps.DefaultCap)
	if err != nil {
		t.Fatalf("could not analyze modulus %d: %v", m, err)
	}
	return &Pd.View{
		Config:  Ps.DefaultConfig(),
		Modulus: m,
		Current: a,
		Stats:   Po.NewStatsInternal(),
	}
}

func getPeriod(t *testing.T, view *Pd.View, target string, wantStatus int) *Pd.PeriodData {
	t.Helper()
	r := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	view.PeriodHandler(w, r)
	assertStatus(t, w.Code, wantStatus)

	var pd Pd.PeriodData
	if err := json.Unmarshal(w.Body.Bytes(), &pd); err != nil {
		t.Fatalf("could not unmarshal period data: %v", err)
	}
	return &pd
}

func assertStatus(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}
