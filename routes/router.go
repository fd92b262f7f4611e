package routes

import (
	"context"
	"crypto/ed25519"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"gitlab.com/BIC_Dev/pokedex-interactions/controllers"
	"gitlab.com/BIC_Dev/pokedex-interactions/utils/logging"
	"go.uber.org/zap"
)

// Router struct
type Router struct {
	Controller      *controllers.Controller
	PublicKey       ed25519.PublicKey
	Port            string
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// GetRouter creates and returns a router
func GetRouter(ctx context.Context) *mux.Router {
	return mux.NewRouter().StrictSlash(true)
}

// GetHandler registers all routes and wraps them in the middleware chain
func GetHandler(ctx context.Context, router *mux.Router, r Router) http.Handler {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	sig := Signature{
		PublicKey: r.PublicKey,
		BasePath:  r.BasePath,
	}

	// STATUS
	router.HandleFunc(r.BasePath+"/status", r.Controller.GetStatus).Methods("GET")
	// INTERACTIONS
	router.HandleFunc(r.BasePath+"/", r.Controller.HandleInteraction).Methods("POST")

	router.Use(sig.SignatureMiddleware)

	loggingMiddleware := LoggingMiddleware(r.BasePath)

	logger := logging.Logger(ctx)
	logger.Debug("startup_log", zap.String("base_path", r.BasePath))

	return loggingMiddleware(router)
}

// AddRoutes adds all necessary routes to the router and serves until ctx is done
func AddRoutes(ctx context.Context, router *mux.Router, r Router) error {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	srv := &http.Server{
		Addr:         ":" + r.Port,
		Handler:      GetHandler(ctx, router, r),
		ReadTimeout:  r.ReadTimeout,
		WriteTimeout: r.WriteTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		logger := logging.Logger(ctx)
		logger.Info("Starting Listener", zap.String("port", r.Port))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.ShutdownTimeout)
	defer cancel()

	logger := logging.Logger(ctx)
	logger.Info("Stopping Listener")

	return srv.Shutdown(shutdownCtx)
}
