package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/adaptor"
	"github.com/ponyo877/chatroom/server/domain"
	"github.com/ponyo877/chatroom/server/repository"
	"github.com/ponyo877/chatroom/server/usecase"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

var rootCmd = &cobra.Command{
	Use:   "chatroom-server",
	Short: "Real-time multi-room chat server",
	Long: `chatroom-server serves the chat stream over gRPC and WebSocket,
plus a read-only HTTP API for rooms, users and message history.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode, err := run(loadConfig())
		if err != nil {
			return err
		}
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg Config) (int, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		return 1, err
	}
	defer db.Close()
	rp := repository.NewRepository(db)

	rooms, err := usecase.LoadRooms(rp)
	if err != nil {
		return 1, err
	}
	engine := usecase.NewSessionEngine(
		usecase.WithHistoryLimit(cfg.HistoryLimit),
		usecase.WithRooms(rooms...),
	)
	hub := domain.NewHub()
	uc := usecase.NewUsecase(rp, engine, hub, logger)
	suc := usecase.NewStreamUsecase(rp, engine, hub, logger, cfg.TypingTimeout)
	limiter := func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(cfg.WSRate), cfg.WSBurst)
	}

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return 1, fmt.Errorf("failed to listen: %w", err)
	}
	httpLis, err := net.Listen("tcp", cfg.HTTPAddress)
	if err != nil {
		grpcLis.Close()
		return 1, fmt.Errorf("failed to listen: %w", err)
	}

	s := grpc.NewServer()
	chatpb.RegisterChatServiceServer(s, adaptor.NewAdaptor(uc, suc, logger, limiter))
	reflection.Register(s)
	app := adaptor.NewHTTPApp(uc, suc, logger, adaptor.HTTPConfig{
		ClientURL: cfg.ClientURL,
		Limiter:   limiter,
	})

	var g errgroup.Group
	g.Go(func() error {
		log.Printf("gRPC server is running on %s", grpcLis.Addr())
		if err := s.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Printf("HTTP server is running on %s", httpLis.Addr())
		if err := app.Listener(httpLis); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	go func() {
		if err := g.Wait(); err != nil {
			log.Fatalf("failed to serve: %v", err)
		}
	}()
	logger.Info("server started", "rooms", len(engine.Rooms()), "db", cfg.DBPath)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"grpc": func(ctx context.Context) error {
				stopped := make(chan struct{})
				go func() {
					s.GracefulStop()
					close(stopped)
				}()
				select {
				case <-stopped:
					return nil
				case <-ctx.Done():
					s.Stop()
					return ctx.Err()
				}
			},
			"http": func(ctx context.Context) error {
				return app.ShutdownWithContext(ctx)
			},
		},
	)
	exitCode := <-wait
	log.Printf("Server exited with code: %d", exitCode)
	return exitCode, nil
}
