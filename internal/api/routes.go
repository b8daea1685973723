package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tubenotes/internal/engine"
	"tubenotes/internal/store"
	"tubenotes/internal/workflow"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(IdentityMiddleware())

	r.Get("/healthz", healthHandler(cfg))
	r.Get("/metrics", metricsHandler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/transcript", transcriptHandler(cfg))
		r.Get("/search", searchHandler())
		r.Post("/summarize", summarizeHandler(cfg))
		r.Post("/view", viewHandler(cfg))
		r.Post("/translate", translateHandler(cfg))
		r.Post("/analyze", analyzeHandler(cfg))
		r.Post("/generate", generateHandler(cfg))

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", listCollectionHandler(cfg))
			r.Post("/", saveCollectionHandler(cfg))
			r.Delete("/{id}", deleteCollectionHandler(cfg))
		})
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: cfg.Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(engine.FormatMetrics()))
	}
}

func transcriptHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoURL := r.URL.Query().Get("url")
		if videoURL == "" {
			WriteError(w, http.StatusBadRequest, "url query parameter is required", string(engine.ErrValidation))
			return
		}
		content, err := cfg.Source.Fetch(r.Context(), videoURL)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, TranscriptResponse{Content: content})
	}
}

func searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := engine.SearchVideos(r.Context(), r.URL.Query().Get("query"))
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, SearchResponse{Results: results})
	}
}

func summarizeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SummarizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", string(engine.ErrValidation))
			return
		}
		res, err := cfg.Workflow.FetchAndSummarize(r.Context(), req.VideoURL)
		if err != nil {
			// The transcript and any sibling artifact that finished are
			// still useful to the caller, so a partial result rides along
			// with the error status.
			if res.Transcript != "" {
				WriteJSON(w, engine.HTTPStatus(engine.CodeOf(err)), res)
				return
			}
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, res)
	}
}

func viewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", string(engine.ErrValidation))
			return
		}
		content, generated, err := cfg.Workflow.ViewArtifact(r.Context(),
			workflow.ArtifactKind(req.Kind), req.Transcript, req.Cached)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, ViewResponse{Content: content, Generated: generated})
	}
}

func translateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TranslateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", string(engine.ErrValidation))
			return
		}
		if len(req.Points) > 0 {
			points, err := cfg.Workflow.TranslatePoints(r.Context(), req.Points, req.Language)
			if err != nil {
				writeWorkflowError(w, err)
				return
			}
			WriteJSON(w, http.StatusOK, TranslateResponse{Points: points})
			return
		}
		content, err := cfg.Workflow.Translate(r.Context(), req.Content, req.Language)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, TranslateResponse{Content: content})
	}
}

func analyzeHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", string(engine.ErrValidation))
			return
		}
		analysis, err := cfg.Workflow.AnalyzeVideo(r.Context(), req.VideoURL, req.Title)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, analysis)
	}
}

func generateHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", string(engine.ErrValidation))
			return
		}
		rec := store.Record{Notes: req.Notes, Summary: req.Summary, Points: req.Points}
		content, err := cfg.Workflow.GenerateContent(r.Context(), rec, req.Prompt)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, GeneratedResponse{Content: content})
	}
}

func listCollectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r.Context())
		if userID == "" {
			WriteError(w, http.StatusUnauthorized, "please sign in to view your collection", string(engine.ErrAuthRequired))
			return
		}
		sortBy := r.URL.Query().Get("sortBy")
		if sortBy == "" {
			sortBy = store.SortBySavedAt
		}
		order := r.URL.Query().Get("order")
		if order == "" {
			order = store.OrderDesc
		}
		records, err := cfg.Collections.List(r.Context(), userID, sortBy, order)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, CollectionResponse{Records: records})
	}
}

func saveCollectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft workflow.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", string(engine.ErrValidation))
			return
		}
		res, err := cfg.Workflow.SaveComposite(r.Context(), UserID(r.Context()), draft)
		if err != nil {
			writeWorkflowError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, SaveResponse{ID: res.ID, Warnings: res.Warnings})
	}
}

func deleteCollectionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			WriteError(w, http.StatusUnauthorized, "please sign in to modify your collection", string(engine.ErrAuthRequired))
			return
		}
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "record id required", string(engine.ErrValidation))
			return
		}
		if err := cfg.Collections.Delete(r.Context(), id); err != nil {
			writeWorkflowError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
