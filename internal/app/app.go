package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/MikhailRaia/shortlink/internal/auth"
	"github.com/MikhailRaia/shortlink/internal/config"
	"github.com/MikhailRaia/shortlink/internal/generator"
	"github.com/MikhailRaia/shortlink/internal/handler"
	"github.com/MikhailRaia/shortlink/internal/logger"
	"github.com/MikhailRaia/shortlink/internal/proto"
	"github.com/MikhailRaia/shortlink/internal/service"
	"github.com/MikhailRaia/shortlink/internal/storage"
	"github.com/MikhailRaia/shortlink/internal/storage/file"
	"github.com/MikhailRaia/shortlink/internal/storage/level"
	"github.com/MikhailRaia/shortlink/internal/storage/memory"
	"github.com/MikhailRaia/shortlink/internal/storage/postgres"
)

const shutdownTimeout = 5 * time.Second

// App owns the store for the lifetime of the process.
type App struct {
	config     *config.Config
	store      storage.Store
	handler    http.Handler
	grpcServer *grpc.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	shortener := service.NewShortener(
		store,
		auth.NewMasterKey(cfg.MasterKey, cfg.HasMasterKey),
		generator.Default,
	)

	a := &App{
		config:  cfg,
		store:   store,
		handler: handler.NewHandler(shortener).RegisterRoutes(),
	}

	if cfg.GRPCAddress != "" {
		a.grpcServer = grpc.NewServer(
			grpc.ForceServerCodec(proto.JSONCodec{}),
			grpc.UnaryInterceptor(logger.UnaryServerInterceptor),
		)
		proto.RegisterShortlinkServer(a.grpcServer, handler.NewShortlinkGRPCServer(shortener))
	}

	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch {
	case cfg.DatabaseDSN != "":
		log.Info().Msg("Using PostgreSQL storage")
		return postgres.NewStorage(ctx, cfg.DatabaseDSN)
	case cfg.Storage == config.StorageMemory:
		log.Info().Msg("Using in-memory storage")
		return memory.NewStorage(), nil
	case cfg.Storage == config.StorageFile:
		log.Info().Str("path", cfg.FileStoragePath).Msg("Using file storage")
		return file.NewStorage(cfg.FileStoragePath)
	default:
		log.Info().Str("path", cfg.DBPath).Msg("Using LevelDB storage")
		return level.Open(cfg.DBPath)
	}
}

// Run binds the listeners and serves until ctx is done or a server fails.
// The store is closed before Run returns.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	httpListener, err := net.Listen("tcp", a.config.ServerAddress)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", a.config.ServerAddress, err)
	}

	var grpcListener net.Listener
	if a.grpcServer != nil {
		grpcListener, err = net.Listen("tcp", a.config.GRPCAddress)
		if err != nil {
			httpListener.Close()
			return fmt.Errorf("failed to bind %s: %w", a.config.GRPCAddress, err)
		}
	}

	httpServer := &http.Server{Handler: a.handler}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", httpListener.Addr().String()).Msg("Starting HTTP server")
		if err := httpServer.Serve(httpListener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if grpcListener != nil {
		g.Go(func() error {
			log.Info().Str("address", grpcListener.Addr().String()).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(grpcListener); !errors.Is(err, grpc.ErrServerStopped) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if a.grpcServer != nil {
			a.grpcServer.GracefulStop()
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	log.Info().Msg("Servers stopped")
	return err
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}
