package controllers

import (
	"net/http"

	"gitlab.com/BIC_Dev/pokedex-interactions/interactions/commands"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"gitlab.com/BIC_Dev/pokedex-interactions/viewmodels"
	"go.uber.org/zap"
)

// GetStatus reports the registered commands and upstream this instance uses
func (c *Controller) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	registry := commands.Registry()
	names := make([]string, 0, len(registry))
	for _, cmd := range registry {
		names = append(names, "/"+cmd.Name)
	}

	status := viewmodels.GetStatusResponse{
		Message:  "Service is available",
		Commands: names,
	}

	if c.Config != nil {
		status.PokeAPI = c.Config.PokeAPI.URL
	}

	if c.Interactions != nil && c.Interactions.ReplayGuard != nil && c.Config != nil {
		status.ReplayGuard = c.Config.CacheSettings.InteractionReplay.Enabled
	}

	Response(ctx, w, status, http.StatusOK)
}
