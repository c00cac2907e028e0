package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/MKhiriev/go-doc-vault/internal/app"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
	"github.com/MKhiriev/go-doc-vault/internal/utils"
)

// bodyHashHeader carries the client's HMAC-SHA256 signature of the raw
// request body, hex-encoded. The key is the shared hash key from config.
const bodyHashHeader = "X-Body-Hash"

// withIntegrityCheck verifies the request-body signature on mutating
// endpoints. Requests without the header pass through untouched — the check
// is opt-in per client — but a present header must match the body exactly,
// otherwise the request is rejected before it reaches a handler.
func (h *Handler) withIntegrityCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claimed := r.Header.Get(bodyHashHeader)
		if claimed == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withIntegrityCheck").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		// restore request body
		r.Body = io.NopCloser(bytes.NewReader(body))

		claimedSum, err := hex.DecodeString(claimed)
		if err != nil {
			log.Err(err).Str("func", "*Handler.withIntegrityCheck").Msg("body hash header is not hex")
			h.respondBadRequest(w, app.MsgIntegrityCheckFailed)
			return
		}

		computedSum := utils.Hash(body)
		if !hmac.Equal(claimedSum, computedSum) {
			log.Error().Str("func", "*Handler.withIntegrityCheck").
				Str("hash from request", claimed).
				Str("hashed body", hex.EncodeToString(computedSum)).
				Msg("hashes are not equal")
			h.respondBadRequest(w, app.MsgIntegrityCheckFailed)
			return
		}

		next.ServeHTTP(w, r)
	})
}
