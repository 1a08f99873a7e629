package http

import (
	"errors"
	"net/http"

	"github.com/examgate/examgate/internal/upstream"
)

// recoverPapersPath is where flows missing their selected-exam context are
// sent instead of an error page.
const recoverPapersPath = "/api/papers"

// upstreamError maps an upstream failure onto the user-facing taxonomy:
// auth rejections surface the server's message verbatim, everything else
// collapses to a generic retryable message.
func upstreamError(w http.ResponseWriter, err error) {
	var ae *upstream.AuthError
	if errors.As(err, &ae) {
		http.Error(w, ae.Message, http.StatusUnauthorized)
		return
	}
	http.Error(w, "request failed, please try again", http.StatusBadGateway)
}
