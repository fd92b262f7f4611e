package interactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/interactions/commands"
	"gitlab.com/BIC_Dev/pokedex-interactions/models"
	"gitlab.com/BIC_Dev/pokedex-interactions/services/pokeapi"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/cache"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

var (
	// ErrMalformedPayload is returned when the body is not an interaction
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrMissingData is returned for a command interaction without data
	ErrMissingData = errors.New("no data given")
	// ErrMissingOption is returned for a command interaction without options
	ErrMissingOption = errors.New("no option given")
	// ErrReplayed is returned when an interaction id was already handled
	ErrReplayed = errors.New("interaction already handled")
	// ErrUpstream is returned when the pokemon lookup failed
	ErrUpstream = errors.New("pokemon lookup failed")
)

// Pokedex looks up pokemon records
type Pokedex interface {
	GetPokemon(ctx context.Context, name string) (*pokeapi.Pokemon, *pokeapi.Error)
}

// ReplayGuard remembers interaction ids that were already handled
type ReplayGuard interface {
	MarkSeen(ctx context.Context, key string, ttl string) (bool, *cache.CacheError)
}

// Interactions struct
type Interactions struct {
	Config      *configs.Config
	Pokedex     Pokedex
	ReplayGuard ReplayGuard
}

// Error struct
type Error struct {
	Message string `json:"message"`
	Err     error  `json:"error"`
	Code    int    `json:"code"`
}

// Error func
func (ie *Error) Error() string {
	return ie.Err.Error()
}

// Unwrap func
func (ie *Error) Unwrap() error {
	return ie.Err
}

// Dispatch decodes an authenticated interaction body and builds the reply
func (i *Interactions) Dispatch(ctx context.Context, body []byte) (*models.Response, *Error) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	// only the type tag is needed to answer a ping
	var envelope struct {
		Type discordgo.InteractionType `json:"type"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, malformedPayload(err)
	}

	if envelope.Type == discordgo.InteractionPing {
		return models.NewPongResponse(), nil
	}

	var interaction models.Interaction
	if err := json.Unmarshal(body, &interaction); err != nil {
		return nil, malformedPayload(err)
	}

	ctx = logging.AddValues(ctx,
		zap.String("interaction_id", interaction.ID),
		zap.Uint8("interaction_type", uint8(interaction.Type)),
		zap.String("guild_id", interaction.GuildID),
		zap.String("channel_id", interaction.ChannelID),
	)

	return i.Command(ctx, interaction)
}

func malformedPayload(err error) *Error {
	return &Error{
		Message: "Interaction payload could not be decoded",
		Err:     fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error()),
		Code:    http.StatusBadRequest,
	}
}

// Command answers a command interaction with a pokedex entry.
// Only the first option is read.
func (i *Interactions) Command(ctx context.Context, interaction models.Interaction) (*models.Response, *Error) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if interaction.Data == nil {
		return nil, &Error{
			Message: "Command interaction is missing data",
			Err:     ErrMissingData,
			Code:    http.StatusBadRequest,
		}
	}

	if len(interaction.Data.Options) == 0 {
		return nil, &Error{
			Message: "Command interaction is missing an option",
			Err:     ErrMissingOption,
			Code:    http.StatusBadRequest,
		}
	}

	search := interaction.Data.Options[0].Value
	if strings.TrimSpace(search) == "" {
		return nil, &Error{
			Message: "Command option has no value",
			Err:     ErrMissingOption,
			Code:    http.StatusBadRequest,
		}
	}

	_, known := commands.Lookup(interaction.Data.Name)
	ctx = logging.AddValues(ctx,
		zap.String("command", interaction.Data.Name),
		zap.Bool("known_command", known),
		zap.String("search", search),
	)

	if rErr := i.checkReplay(ctx, interaction.ID); rErr != nil {
		return nil, rErr
	}

	logger := logging.Logger(ctx)
	logger.Info("command_log")

	pokemon, pErr := i.Pokedex.GetPokemon(ctx, search)
	if pErr != nil {
		return nil, &Error{
			Message: pErr.Message,
			Err:     fmt.Errorf("%w: %s", ErrUpstream, pErr.Error()),
			Code:    http.StatusInternalServerError,
		}
	}

	return models.NewMessageResponse(pokemon.Markdown(i.placeholderImage())), nil
}

// checkReplay rejects an interaction id seen within the configured TTL.
// Storage failures are logged and do not block the request.
func (i *Interactions) checkReplay(ctx context.Context, interactionID string) *Error {
	if i.ReplayGuard == nil || i.Config == nil || interactionID == "" {
		return nil
	}

	settings := i.Config.CacheSettings.InteractionReplay
	if !settings.Enabled {
		return nil
	}

	first, cErr := i.ReplayGuard.MarkSeen(ctx, cache.GenerateKey(settings.Base, interactionID), settings.TTL)
	if cErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", cErr.Err), zap.String("error_message", cErr.Message))
		logger := logging.Logger(ctx)
		logger.Warn("error_log")
		return nil
	}

	if !first {
		return &Error{
			Message: "Interaction has already been handled",
			Err:     ErrReplayed,
			Code:    http.StatusUnauthorized,
		}
	}

	return nil
}

func (i *Interactions) placeholderImage() string {
	if i.Config == nil {
		return configs.DefaultPlaceholderImage
	}

	return i.Config.PokeAPI.PlaceholderImage
}
