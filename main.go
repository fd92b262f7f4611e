package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env"
	"gitlab.com/BIC_Dev/pokedex-interactions/configs"
	"gitlab.com/BIC_Dev/pokedex-interactions/controllers"
	"gitlab.com/BIC_Dev/pokedex-interactions/interactions"
	"gitlab.com/BIC_Dev/pokedex-interactions/interactions/commands"
	"gitlab.com/BIC_Dev/pokedex-interactions/routes"
	"gitlab.com/BIC_Dev/pokedex-interactions/services/discordapi"
	"gitlab.com/BIC_Dev/pokedex-interactions/services/pokeapi"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/cache"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/signature"
	"go.uber.org/zap"
)

// Environment struct
type Environment struct {
	Environment   string `env:"ENVIRONMENT,required"`
	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	ApplicationID string `env:"APPLICATION_ID,required"`
	GuildID       string `env:"GUILD_ID,required"`
	PublicKey     string `env:"PUBLIC_KEY,required"`
	ListenerPort  string `env:"LISTENER_PORT,required"`
	BasePath      string `env:"BASE_PATH"`
	ConfigDir     string `env:"CONFIG_DIR"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	environment := Environment{}
	if err := env.Parse(&environment); err != nil {
		log.Fatalf("FAILED TO LOAD CONFIG: %s", err.Error())
	}

	if environment.ConfigDir == "" {
		environment.ConfigDir = "./configs"
	}

	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("env", environment.Environment),
		zap.String("listener_port", environment.ListenerPort),
		zap.String("base_path", environment.BasePath),
	)

	config := configs.GetConfig(ctx, environment.ConfigDir, environment.Environment)
	logging.SetLevel(config.Bot.LogLevel)

	publicKey, pkErr := signature.ParsePublicKey(environment.PublicKey)
	if pkErr != nil {
		fatal(ctx, pkErr, pkErr.Message)
	}

	commandService, csErr := discordapi.InitService(ctx, config, environment.DiscordToken, environment.ApplicationID, environment.GuildID)
	if csErr != nil {
		fatal(ctx, csErr, csErr.Message)
	}

	RegisterCommands(ctx, config, commandService)

	dispatcher := &interactions.Interactions{
		Config:  config,
		Pokedex: pokeapi.InitService(ctx, config),
	}

	if config.CacheSettings.InteractionReplay.Enabled {
		replayCache := InitCache(ctx, config)
		defer replayCache.Close()
		dispatcher.ReplayGuard = replayCache
	}

	controller := controllers.Controller{
		Config:       config,
		Interactions: dispatcher,
	}

	r := routes.Router{
		Controller:      &controller,
		PublicKey:       publicKey,
		Port:            environment.ListenerPort,
		BasePath:        environment.BasePath,
		ReadTimeout:     config.Server.ReadTimeout,
		WriteTimeout:    config.Server.WriteTimeout,
		ShutdownTimeout: config.Server.ShutdownTimeout,
	}

	if err := routes.AddRoutes(ctx, routes.GetRouter(ctx), r); err != nil {
		fatal(ctx, err, "Listener stopped")
	}
}

// RegisterCommands publishes the command registry and optionally prunes stale commands.
// Any publish failure stops the process.
func RegisterCommands(ctx context.Context, config *configs.Config, cs *discordapi.CommandService) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	registry := commands.Registry()
	if err := cs.PublishAll(ctx, registry); err != nil {
		ctx = logging.AddValues(ctx, zap.Int("status_code", err.Status), zap.Int("discord_code", err.Code))
		fatal(ctx, err, err.Message)
	}

	if config.Commands.PruneStale {
		for _, err := range cs.Prune(ctx, registry) {
			errCtx := logging.AddValues(ctx, zap.NamedError("error", err.Err), zap.String("error_message", err.Message), zap.Int("status_code", err.Status))
			logger := logging.Logger(errCtx)
			logger.Warn("error_log")
		}
	}

	logger := logging.Logger(ctx)
	logger.Info("startup_log", zap.Int("commands", len(registry)))
}

// InitCache initializes the Redis replay cache
func InitCache(ctx context.Context, config *configs.Config) *cache.Cache {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	pool, err := cache.GetClient(ctx, config.Redis.Host, config.Redis.Port, config.Redis.Pool)

	if err != nil {
		fatal(ctx, err.Err, err.Message)
	}

	return &cache.Cache{
		Client: pool,
	}
}

func fatal(ctx context.Context, err error, message string) {
	ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", message))
	logger := logging.Logger(ctx)
	logger.Fatal("error_log")
}
