package controllers

import (
	"errors"
	"io"
	"net/http"

	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// maxInteractionBody caps the size of an interaction callback
const maxInteractionBody int64 = 1 << 20

// HandleInteraction answers a Discord interaction callback.
// The signature has already been checked by the router.
func (c *Controller) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(ctx, w, "Request body is too large", err, http.StatusRequestEntityTooLarge)
			return
		}
		Error(ctx, w, "Unable to read request body", err, http.StatusBadRequest)
		return
	}

	if c.Interactions == nil {
		Error(ctx, w, "Interactions are not configured", errors.New("no dispatcher"), http.StatusInternalServerError)
		return
	}

	response, dErr := c.Interactions.Dispatch(ctx, body)
	if dErr != nil {
		Error(ctx, w, dErr.Message, dErr, dErr.Code)
		return
	}

	Response(ctx, w, response, http.StatusOK)
}
