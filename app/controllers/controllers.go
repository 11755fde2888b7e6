// Package controllers holds the HTTP handlers. Controllers are constructed
// with their repositories at startup and registered in app/routes; they
// bind and validate the request, enforce ownership, and translate store
// errors to status codes. No controller talks to Mongo directly.
package controllers

import (
	"net/http"

	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/logger"
	"github.com/pawhaven/pawhaven/pkg/response"
)

// storeError maps adapter errors onto the response envelope.
func storeError(w http.ResponseWriter, r *http.Request, err error) {
	switch err {
	case store.ErrBadID:
		response.BadRequest(w, "invalid id")
	case store.ErrNotFound:
		response.NotFound(w)
	default:
		logger.WithCtx(r.Context()).Error("store operation failed", "error", err)
		response.Upstream(w)
	}
}
