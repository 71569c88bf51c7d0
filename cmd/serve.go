package cmd

import (
	"fiber-admin/config"
	"fiber-admin/controllers/idgen"
	"fiber-admin/database"
	"fiber-admin/routes"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		idgen.Init(config.SnowflakeNode)

		if seedOnStart {
			if err := database.RunSeeders(db); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		opts := routes.Options{DB: db, Log: log}
		if c := connectCache(cmd.Context()); c != nil {
			defer c.Close()
			opts.Cache = c
			log.Info("menu cache enabled", zap.String("addr", config.RedisAddr))
		}

		app := routes.NewApp(opts)

		errCh := make(chan error, 1)
		go func() {
			log.Info("server starting", zap.String("port", config.APP_PORT), zap.String("env", config.APP_ENV))
			errCh <- app.Listen(":" + config.APP_PORT)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("listen: %w", err)
		case sig := <-quit:
			log.Info("shutting down server", zap.String("signal", sig.String()))
		}

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
			return err
		}
		log.Info("server exited")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "run seeders before starting")
	rootCmd.Flags().BoolVar(&seedOnStart, "seed", false, "run seeders before starting")
	rootCmd.AddCommand(serveCmd)
}
