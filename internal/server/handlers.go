package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"valentine/internal/codec"
	"valentine/internal/model"
	"valentine/internal/theme"
)

// maxBodyBytes bounds a draft; the longest legitimate one is a few KB.
const maxBodyBytes = 64 << 10

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error       string             `json:"error"`
	FieldErrors []model.FieldError `json:"fieldErrors,omitempty"`
}

// ThemeSummary is a catalog entry as listed by /api/themes.
type ThemeSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// ThemeDetail carries everything a page needs to render a theme.
type ThemeDetail struct {
	ThemeSummary
	Images             []string `json:"images"`
	CelebrationImage   string   `json:"celebrationImage"`
	DeclineMessages    []string `json:"declineMessages"`
	CelebrationMessage string   `json:"celebrationMessage"`
	Gradient           []string `json:"gradient"`
	Accent             string   `json:"accent"`
}

// ThemesResponse lists themes and question presets in display order.
type ThemesResponse struct {
	Themes  []ThemeSummary `json:"themes"`
	Presets []theme.Preset `json:"presets"`
}

// LinkResponse is returned when a link was created.
type LinkResponse struct {
	Token  string       `json:"token"`
	Link   string       `json:"link"`
	Record model.Record `json:"record"`
}

// ValentineResponse is a decoded link with its theme.
type ValentineResponse struct {
	Record model.Record `json:"record"`
	Theme  ThemeDetail  `json:"theme"`
}

func summarize(th *theme.Theme) ThemeSummary {
	return ThemeSummary{ID: th.ID, Name: th.Name, Emoji: th.Emoji, Description: th.Description}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	resp := ThemesResponse{Presets: s.catalog.Presets()}
	for _, th := range s.catalog.Themes() {
		resp.Themes = append(resp.Themes, summarize(th))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rec, fieldErrs := codec.FromDraft(draft, s.catalog)
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid valentine", FieldErrors: fieldErrs})
		return
	}

	token, err := codec.Encode(rec)
	if err != nil {
		slog.Error("failed to encode valentine", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create link"})
		return
	}
	link, err := codec.Link(s.baseURL, token)
	if err != nil {
		slog.Error("failed to build link", "base_url", s.baseURL, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create link"})
		return
	}

	slog.Info("link created", "style", rec.Style, "token_len", len(token))
	writeJSON(w, http.StatusCreated, LinkResponse{Token: token, Link: link, Record: rec})
}

func (s *Server) handleGetValentine(w http.ResponseWriter, r *http.Request) {
	// Query parsing turns '+' into ' '; Decode maps it back.
	token := r.URL.Query().Get(codec.QueryParam)

	rec, err := codec.Decode(token, s.catalog)
	if err != nil {
		// Decode and validation failures look the same to the recipient.
		if !errors.Is(err, codec.ErrDecode) && !errors.Is(err, codec.ErrValidation) {
			slog.Error("unexpected decode failure", "error", err)
		}
		slog.Debug("rejected valentine", "token_len", len(token), "error", err)
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: "invalid or missing link data"})
		return
	}

	th, _ := s.catalog.Lookup(rec.Style)
	writeJSON(w, http.StatusOK, ValentineResponse{
		Record: rec,
		Theme: ThemeDetail{
			ThemeSummary:       summarize(th),
			Images:             th.Images,
			CelebrationImage:   th.CelebrationImage,
			DeclineMessages:    th.DeclineMessages,
			CelebrationMessage: th.CelebrationMessage,
			Gradient:           th.Gradient,
			Accent:             th.Accent,
		},
	})
}
