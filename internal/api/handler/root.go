package handler

import (
	"net/http"

	"github.com/autodiag/autodiag/internal/api/response"
)

// NewRootHandler returns an http.HandlerFunc for GET /.
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, map[string]string{"message": "AutoDiag backend running"})
	}
}
