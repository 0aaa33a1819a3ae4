// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"intex/internal/models"
)

// maxBodyBytes bounds request bodies accepted by the API.
const maxBodyBytes = 64 << 10

// errorBody is the envelope for every non-2xx response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// langOf reads ?lang=, falling back to the Accept-Language header.
func langOf(r *http.Request) models.Lang {
	if v := r.URL.Query().Get("lang"); v != "" {
		return models.ParseLang(v)
	}
	return models.ParseLang(r.Header.Get("Accept-Language"))
}

// setLanguage marks the response language so clients can pick a text
// direction.
func setLanguage(w http.ResponseWriter, lang models.Lang) {
	w.Header().Set("Content-Language", string(lang))
}
