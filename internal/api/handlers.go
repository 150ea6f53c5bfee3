// Package api exposes the lesson service over HTTP and MCP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lessonforge/lessonforge/internal/catalog"
	"github.com/lessonforge/lessonforge/internal/export"
	"github.com/lessonforge/lessonforge/internal/lesson"
	"github.com/lessonforge/lessonforge/internal/store"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Submitter schedules background image generation for a stored lesson.
type Submitter interface {
	Submit(lessonID string)
}

type AppDeps struct {
	Store     store.Store
	Assembler *lesson.Assembler
	Runner    Submitter
	Token     string // optional bearer token; empty leaves the API open
}

func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	// Health stays open so liveness probes work without credentials.
	r.Get("/health", handleHealth(deps))

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Get("/api/subjects", handleListSubjects())
		r.Post("/api/lessons", handleCreateLesson(deps))
		r.Get("/api/lessons/{id}", handleGetLesson(deps))
		r.Get("/api/lessons/{id}/progress", handleProgress(deps))
		r.Get("/api/lessons/{id}/export", handleExport(deps))
	})

	return r
}

func handleHealth(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := deps.Store.CountLessons()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "counting lessons: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"lessons": n,
		})
	}
}

func handleListSubjects() http.HandlerFunc {
	type subjectInfo struct {
		Name      string `json:"name"`
		Scenes    int    `json:"scenes"`
		Questions int    `json:"quizQuestions"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		names := catalog.SubjectNames()
		subjects := make([]subjectInfo, 0, len(names))
		for _, name := range names {
			s, _ := catalog.Subject(name)
			subjects = append(subjects, subjectInfo{
				Name:      name,
				Scenes:    len(s.Scenes),
				Questions: len(s.QuizQuestions),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"subjects":  subjects,
			"narrators": catalog.NarratorNames(),
		})
	}
}

func handleCreateLesson(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req lesson.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		l, err := deps.Assembler.Assemble(req)
		var verr *lesson.ValidationError
		if errors.As(err, &verr) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%s", verr.Reason)
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "assembling lesson: %v", err)
			return
		}

		if err := deps.Store.PutLesson(l); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "saving lesson: %v", err)
			return
		}
		deps.Runner.Submit(l.ID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"lessonId": l.ID,
			"lesson":   l.AsView(),
		})
	}
}

// handleGetLesson returns the full lesson record, prompts included. Only the
// creation response strips prompts; by the time a client fetches the lesson
// back, the prompts are part of its permanent record.
func handleGetLesson(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := loadLesson(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(l)
	}
}

func handleProgress(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := loadLesson(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(lesson.BuildProgress(l))
	}
}

func handleExport(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
			return
		}

		l, ok := loadLesson(w, deps, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		out, err := export.Render(l, format)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "rendering export: %v", err)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		w.Write([]byte(out))
	}
}

// loadLesson fetches the lesson or writes the error response and reports false.
func loadLesson(w http.ResponseWriter, deps AppDeps, id string) (lesson.Lesson, bool) {
	l, err := deps.Store.GetLesson(id)
	if errors.Is(err, store.ErrNotFound) {
		httpError(w, http.StatusNotFound, "not_found", "lesson not found")
		return lesson.Lesson{}, false
	}
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "loading lesson: %v", err)
		return lesson.Lesson{}, false
	}
	return l, true
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
