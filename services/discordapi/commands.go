package discordapi

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/gammazero/workerpool"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// List returns the commands currently registered on the guild
func (cs *CommandService) List(ctx context.Context) ([]*discordgo.ApplicationCommand, *Error) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	cmds, err := cs.Session.ApplicationCommands(cs.ApplicationID, cs.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, ParseDiscordError(err)
	}

	logger := logging.Logger(ctx)
	logger.Debug("command_log", zap.Int("count", len(cmds)))

	return cmds, nil
}

// Publish creates or overwrites a single guild command
func (cs *CommandService) Publish(ctx context.Context, cmd *discordgo.ApplicationCommand) *Error {
	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("command", cmd.Name),
	)

	created, err := cs.Session.ApplicationCommandCreate(cs.ApplicationID, cs.GuildID, cmd, discordgo.WithContext(ctx))
	if err != nil {
		return ParseDiscordError(err)
	}

	logger := logging.Logger(ctx)
	logger.Info("command_log", zap.String("command_id", created.ID))

	return nil
}

// PublishAll publishes every command in order and stops at the first failure
func (cs *CommandService) PublishAll(ctx context.Context, registry []*discordgo.ApplicationCommand) *Error {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	for _, cmd := range registry {
		if err := cs.Publish(ctx, cmd); err != nil {
			return err
		}
	}

	return nil
}

// Prune deletes remote commands whose names are not in the registry
func (cs *CommandService) Prune(ctx context.Context, registry []*discordgo.ApplicationCommand) []*Error {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	remote, lErr := cs.List(ctx)
	if lErr != nil {
		return []*Error{lErr}
	}

	known := make(map[string]struct{}, len(registry))
	for _, cmd := range registry {
		known[cmd.Name] = struct{}{}
	}

	workers := cs.Workers
	if workers <= 0 {
		workers = 1
	}

	var mu sync.Mutex
	var errs []*Error

	wp := workerpool.New(workers)
	for _, cmd := range remote {
		if _, ok := known[cmd.Name]; ok {
			continue
		}

		stale := cmd
		wp.Submit(func() {
			delCtx := logging.AddValues(ctx,
				zap.String("command", stale.Name),
				zap.String("command_id", stale.ID),
			)

			err := cs.Session.ApplicationCommandDelete(cs.ApplicationID, cs.GuildID, stale.ID, discordgo.WithContext(delCtx))
			if err != nil {
				dErr := ParseDiscordError(err)
				mu.Lock()
				errs = append(errs, dErr)
				mu.Unlock()
				return
			}

			logger := logging.Logger(delCtx)
			logger.Info("command_log", zap.Bool("deleted", true))
		})
	}
	wp.StopWait()

	return errs
}
