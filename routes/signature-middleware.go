package routes

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"
	"net/http"

	"gitlab.com/BIC_Dev/pokedex-interactions/controllers"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/signature"
	"go.uber.org/zap"
)

// maxSignedBody caps how much of a request is read for verification
const maxSignedBody int64 = 1 << 20

// Signature struct
type Signature struct {
	PublicKey ed25519.PublicKey
	BasePath  string
}

// SignatureMiddleware rejects any request not signed by Discord before the body is parsed
func (m Signature) SignatureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

		if r.URL.Path == m.BasePath+"/status" {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSignedBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				controllers.Error(ctx, w, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), err, http.StatusRequestEntityTooLarge)
				return
			}
			controllers.Error(ctx, w, "Unable to read request body", err, http.StatusBadRequest)
			return
		}
		r.Body.Close()

		vErr := signature.Verify(
			body,
			r.Header.Get(signature.SignatureHeader),
			r.Header.Get(signature.TimestampHeader),
			m.PublicKey,
		)
		if vErr != nil {
			controllers.Error(ctx, w, vErr.Message, vErr, http.StatusUnauthorized)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}
