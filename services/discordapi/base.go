package discordapi

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// CommandService registers guild application commands
type CommandService struct {
	Session       *discordgo.Session
	ApplicationID string
	GuildID       string
	Workers       int
}

// InitService creates a REST-only Discord session for the bot token
func InitService(ctx context.Context, config *configs.Config, botToken, applicationID, guildID string) (*CommandService, *Error) {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("application_id", applicationID),
		zap.String("guild_id", guildID),
	)

	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, &Error{
			Code:    -1,
			Message: "Failed to create Discord session",
			Err:     err,
		}
	}

	logger := logging.Logger(ctx)
	logger.Debug("startup_log")

	return &CommandService{
		Session:       session,
		ApplicationID: applicationID,
		GuildID:       guildID,
		Workers:       config.Commands.Workers,
	}, nil
}
