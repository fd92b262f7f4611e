package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime/debug"

	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/interactions"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"gitlab.com/BIC_Dev/pokedex-interactions/viewmodels"
	"go.uber.org/zap"
)

// Controller struct
type Controller struct {
	Config       *configs.Config
	Interactions *interactions.Interactions
}

// Response sends a response to the client
func Response(ctx context.Context, w http.ResponseWriter, response interface{}, status int) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(response)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err))
		logger := logging.Logger(ctx)
		logger.Error("error_log")
	}
}

// Error sends error response to the client
func Error(ctx context.Context, w http.ResponseWriter, message string, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encErr := json.NewEncoder(w).Encode(viewmodels.NewErrorResponse(status, err, message))

	if encErr != nil {
		encCtx := logging.AddValues(ctx, zap.NamedError("error", encErr))
		logger := logging.Logger(encCtx)
		logger.Error("error_log")
	}

	ctx = logging.AddValues(ctx,
		zap.NamedError("error", err),
		zap.String("error_message", message),
		zap.Int("status", status),
	)

	if status >= 500 {
		ctx = logging.AddValues(ctx, zap.String("trace", string(debug.Stack())))
	}

	logger := logging.Logger(ctx)
	if status >= 500 {
		logger.Error("error_log")
	} else {
		logger.Warn("error_log")
	}
}
