package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"teluguspell/internal/checker"
	"teluguspell/internal/config"
	"teluguspell/internal/customdict"
	"teluguspell/internal/vocab"
	"teluguspell/pkg/options"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "err", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Log)

	ctx := context.Background()

	var client *redis.Client
	if cfg.Redis.Enabled() {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var store vocab.Store
	switch {
	case cfg.Vocab.SnapshotPath != "":
		store = &vocab.FileStore{Path: cfg.Vocab.SnapshotPath, Source: cfg.Vocab.Path}
	case client != nil:
		store = &vocab.RedisStore{Client: client, Key: "teluguspell:index", Source: cfg.Vocab.Path}
	}

	index, err := vocab.Open(ctx, store, cfg.Vocab.Path)
	if err != nil {
		logger.Error("vocabulary initialization failed", "err", err)
		os.Exit(1)
	}

	var dict *customdict.CustomDict
	if client != nil {
		dict = customdict.New(client)
	}

	chk, err := checker.New(ctx, index, dict,
		options.WithMaxCandidates(cfg.Vocab.MaxCandidates),
		options.WithMaxEditDistance(cfg.Vocab.MaxEditDistance),
	)
	if err != nil {
		logger.Error("checker initialization failed", "err", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/documents/check", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		results := chk.CheckDocument(req.ID, req.Text)
		writeJSON(w, http.StatusOK, map[string]any{
			"document_id": req.ID,
			"results":     results,
		})
	})

	mux.HandleFunc("/api/v1/documents/correct", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		corrected, err := chk.CorrectDocument(req.ID)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, checker.ErrDocumentNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"document_id": req.ID,
			"corrected":   corrected,
		})
	})

	mux.HandleFunc("/api/v1/documents/export", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id is required")
			return
		}
		record, err := chk.ExportDocument(id)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, checker.ErrDocumentNotFound) {
				status = http.StatusNotFound
			}
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, record)
	})

	mux.HandleFunc("/api/v1/candidates", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "word is required")
			return
		}
		max := 0
		if v := r.URL.Query().Get("max"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				max = n
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"word":       word,
			"is_correct": chk.IsCorrect(word),
			"candidates": chk.Candidates(word, max),
		})
	})

	mux.HandleFunc("/api/v1/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, chk.Stats())
	})

	mux.HandleFunc("/api/v1/custom-word", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Word string `json:"word"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := chk.AddCustomWord(r.Context(), req.Word); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/v1/custom-word/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
		if word == "" {
			writeError(w, http.StatusBadRequest, "word is required")
			return
		}
		if err := chk.RemoveCustomWord(r.Context(), word); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	logger.Info("listening", "addr", cfg.HTTP.Addr, "words", index.Len())
	if err := http.ListenAndServe(cfg.HTTP.Addr, mux); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// newLogger builds a *slog.Logger from LogConfig and installs it as the
// default. Format "json" is for production, "text" for development.
func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
