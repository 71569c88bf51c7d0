package cmd

import (
	"context"
	"fiber-admin/config"
	"fiber-admin/database"
	"fiber-admin/logger"
	"fiber-admin/migration"
	"fiber-admin/utils/cache"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "fiber-admin",
	Short: "Admin portal backend: menus, approvals and master data",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()
		l, err := logger.New(config.APP_ENV)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	// tanpa subcommand = jalankan server
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

// Execute dipanggil dari main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd dipakai di test
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// openDatabase memastikan database ada, connect, lalu migrate.
func openDatabase() (*gorm.DB, error) {
	if err := database.EnsureDatabaseExists(config.DBName); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}
	db, err := database.Open()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}

// connectCache mengembalikan nil kalau REDIS_ADDR kosong atau redis tidak menjawab ping.
func connectCache(ctx context.Context) *cache.Cache {
	if config.RedisAddr == "" {
		return nil
	}
	c := cache.NewCache(config.RedisAddr, config.RedisPassword)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, menu cache disabled", zap.String("addr", config.RedisAddr), zap.Error(err))
		_ = c.Close()
		return nil
	}
	return c
}
