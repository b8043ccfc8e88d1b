package pisano

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	Ps "github.com/maroda/pisano/analysis"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Websocket for a browser frontend
// - Version for programmatic use
// - Period analysis data for any modulus
func (v *View) SetupMux() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", v.Stats.Handler())
	r.HandleFunc("/ws", v.WebsocketHandler)

	// API routes live on the subrouter so every request
	// passes through the stats middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(v.StatsMiddleware)
	api.HandleFunc("/version", v.VersionHandler)
	api.Handle("/period", otelhttp.NewHandler(http.HandlerFunc(v.PeriodHandler), "period"))

	return r
}

var Version = "dev"

func (v *View) VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": Version})
}

// PeriodData is the JSON shape served for one analysis.
type PeriodData struct {
	Modulus   int    `json:"modulus"`
	Length    int    `json:"length"`
	Sections  int    `json:"sections"`
	Mirrors   int    `json:"mirrors"`
	Signature int    `json:"signature"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Sequence  []int  `json:"sequence"`
}

// PeriodHandler serves the analysis for ?m=N,
// defaulting to the modulus currently on screen.
func (v *View) PeriodHandler(w http.ResponseWriter, r *http.Request) {
	a := v.Analysis()

	if q := r.URL.Query().Get("m"); q != "" {
		m, err := strconv.Atoi(q)
		if err != nil {
			http.Error(w, "modulus must be an integer", http.StatusBadRequest)
			return
		}
		a, err = Ps.Analyze(m, v.Config.Cap)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, Ps.ErrModulusTooSmall) {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}
	}

	if a == nil {
		http.Error(w, "no analysis available", http.StatusServiceUnavailable)
		return
	}

	pd := PeriodData{
		Modulus:   a.Modulus,
		Length:    a.Length,
		Sections:  a.Sections,
		Mirrors:   a.Mirrors,
		Signature: Ps.TimeSignature(a.Length, Ps.MaxBeatsPerBar),
		Title:     Ps.Title(a.Modulus),
		Subtitle:  Ps.SubtitleFor(a),
		Sequence:  a.Sequence,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pd)
}
