package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	internal_errors "github.com/aviationlaunchpad/launchpad/internal/errors"
)

func parseThreadId(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "thread")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal_errors.Validation("Thread id must be a positive integer")
	}
	return id, nil
}
