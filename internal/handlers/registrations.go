// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"intex/internal/catalog"
)

// Register accepts the registration form as JSON.
//
//	201 the stored registration
//	400 malformed body or invalid fields
//	409 the session is not open or is full
//	503 the store could not be reached
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var in catalog.RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	reg, err := a.site.Service().Register(r.Context(), in)
	if err == nil {
		writeJSON(w, http.StatusCreated, reg)
		return
	}

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid registration", Fields: verr.Fields})
	case errors.Is(err, catalog.ErrSessionFull):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, catalog.ErrSessionUnavailable):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("registration failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "registration is temporarily unavailable")
	}
}
