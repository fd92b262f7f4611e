package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

var (
	// ErrRequest is returned when PokeAPI could not be reached
	ErrRequest = errors.New("pokeapi request failed")
	// ErrUpstream is returned for a non-2xx response
	ErrUpstream = errors.New("pokeapi returned an error status")
	// ErrDecode is returned when the response body is not a pokemon record
	ErrDecode = errors.New("pokeapi response could not be decoded")
)

// PokeAPI struct
type PokeAPI struct {
	Client           *http.Client
	BaseURL          string
	PlaceholderImage string
}

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
	Status  int    `json:"status,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Error func
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap func
func (e *Error) Unwrap() error {
	return e.Err
}

// InitService initializes the PokeAPI client from config
func InitService(ctx context.Context, config *configs.Config) *PokeAPI {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("poke_api_url", config.PokeAPI.URL),
	)

	logger := logging.Logger(ctx)
	logger.Debug("startup_log")

	return &PokeAPI{
		Client:           &http.Client{Timeout: config.PokeAPI.Timeout},
		BaseURL:          strings.TrimRight(config.PokeAPI.URL, "/"),
		PlaceholderImage: config.PokeAPI.PlaceholderImage,
	}
}
