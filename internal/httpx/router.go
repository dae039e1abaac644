package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelcm/campaign-report-go/internal/ingest"
	"github.com/angelcm/campaign-report-go/internal/models"
	"github.com/angelcm/campaign-report-go/internal/pipeline"
	"github.com/angelcm/campaign-report-go/internal/store"
	"github.com/angelcm/campaign-report-go/internal/utils"
)

func NewRouter(log *slog.Logger, p *pipeline.Pipeline, st *store.MemoryStore, maxBody int64) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/analyze", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		raw, err := ingest.ReadCSV(io.LimitReader(r.Body, maxBody))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		res, err := p.Run(r.Context(), raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		a := st.Put(models.Analysis{Summary: res.Summary, Insights: res.Insights, Dropped: res.Dropped})
		writeJSON(w, http.StatusCreated, a)
	})

	mux.Get("/analyses/{id}", func(w http.ResponseWriter, r *http.Request) {
		a, ok := st.Get(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, a)
	})

	mux.Get("/analyses/{id}/insights", func(w http.ResponseWriter, r *http.Request) {
		a, ok := st.Get(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "analysis not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, a.Insights)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
