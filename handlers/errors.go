// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/majority/middleware"
	"github.com/danielhkuo/majority/store"
)

// storeError maps a store error to a response. Unexpected errors are
// logged and answered with failure, never with the error text.
func storeError(w http.ResponseWriter, err error, failure string, attrs ...any) {
	switch {
	case errors.Is(err, store.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
	case errors.Is(err, store.ErrOptionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")
	case errors.Is(err, store.ErrPollClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Poll is closed")
	case errors.Is(err, store.ErrNoOptions):
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one option is required")
	default:
		slog.Error(failure, append(attrs, "error", err)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, failure)
	}
}
