package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArturoR1986/roof-report/internal/extract"
	"github.com/ArturoR1986/roof-report/internal/manual"
	"github.com/ArturoR1986/roof-report/internal/model"
	"github.com/ArturoR1986/roof-report/internal/report"
	"github.com/ArturoR1986/roof-report/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore()
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		router := buildRouter(st, newOrchestrator(false))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter wires the session endpoints. Sessions are containers holding
// at most one record; normalize and manual replace the slot on success.
func buildRouter(st store.Store, orch *extract.Orchestrator) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Entry forms populate their dropdowns from this; the lists are advisory
	// for roof_system and primary_issue, closed for severity and urgency.
	r.Get("/vocabulary", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{
			"roof_systems":   model.RoofSystems,
			"primary_issues": model.PrimaryIssues,
			"severities":     model.Severities,
			"urgencies":      model.Urgencies,
		})
	})

	r.Post("/sessions", handleCreateSession(st))
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Post("/normalize", handleNormalize(st, orch))
		r.Post("/manual", handleManual(st))
		r.Get("/record", handleRecord(st))
		r.Get("/report", handleReport(st))
		r.Delete("/", handleClearSession(st))
	})

	return r
}

func handleCreateSession(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := &model.Session{ID: uuid.New().String()}
		if err := st.Put(r.Context(), session); err != nil {
			zap.L().Error("create session", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "create session failed")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": session.ID})
	}
}

func handleNormalize(st store.Store, orch *extract.Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := st.Get(r.Context(), id); err != nil {
			respondStoreErr(w, err)
			return
		}

		var req struct {
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res := orch.Normalize(r.Context(), req.Notes)
		if res.Failure != nil {
			// A classified failure is a user-actionable outcome, not a
			// transport error. The previous record, if any, stays in place.
			writeJSON(w, http.StatusOK, map[string]any{
				"failure": map[string]string{
					"kind":    string(res.Failure.Kind),
					"message": res.Failure.Message,
				},
			})
			return
		}

		session := &model.Session{ID: id, Record: res.Record, RawPayload: res.RawPayload}
		if err := st.Put(r.Context(), session); err != nil {
			zap.L().Error("store session", zap.String("session", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "store session failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"record": res.Record})
	}
}

func handleManual(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := st.Get(r.Context(), id); err != nil {
			respondStoreErr(w, err)
			return
		}

		var entry manual.Entry
		if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rec, err := manual.BuildRecord(entry)
		if err != nil {
			zap.L().Error("manual entry rejected", zap.String("session", id), zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, "entry could not be validated")
			return
		}

		if err := st.Put(r.Context(), &model.Session{ID: id, Record: rec}); err != nil {
			zap.L().Error("store session", zap.String("session", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "store session failed")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"record": rec})
	}
}

func handleRecord(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := st.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		if session.Record == nil {
			writeError(w, http.StatusNotFound, "session has no record")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": session.Record})
	}
}

func handleReport(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := st.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreErr(w, err)
			return
		}
		if session.Record == nil {
			writeError(w, http.StatusNotFound, "session has no record")
			return
		}

		var text string
		switch kind := r.URL.Query().Get("kind"); kind {
		case "", "internal":
			text = report.RenderInternal(session.Record)
		case "customer":
			text = report.RenderCustomer(session.Record)
		case "summary":
			text = report.RenderFieldSummary(session.Record)
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown report kind %q", kind))
			return
		}
		text += "\n" + report.Footer(time.Now())

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
	}
}

func handleClearSession(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Clear(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondStoreErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondStoreErr(w http.ResponseWriter, err error) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	zap.L().Error("session store", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "session store error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
