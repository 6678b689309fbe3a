package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/db"
	"socialfeed/internal/log"
	"socialfeed/internal/router"
	"socialfeed/internal/store"
	"socialfeed/internal/store/gormstore"
	"socialfeed/internal/store/mongostore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const ErrExitCode = 1

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file found, reading settings from the environment")
	}

	if err := NewRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(ErrExitCode)
	}
}

func NewRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "socialfeed",
		Short:        "social feed api server",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.SetLevel(cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}
	cfg.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newMigrateCmd(cfg))
	return cmd
}

func newMigrateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "create tables and indexes, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close(context.Background())
			return st.Migrate(ctx)
		},
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := db.OpenMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return mongostore.New(client, database), nil
	case config.DriverPostgres, config.DriverSQLite:
		gdb, err := db.Open(cfg)
		if err != nil {
			return nil, err
		}
		return gormstore.New(gdb), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetGinDebugPrintRouteFunc(log.GlobalLogger)
	engine, err := router.New(cfg, st)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("server running in %s:%s", cfg.BaseURL, cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Infof("server stopped")
	return nil
}
