package cmd

import (
	"encoding/json"
	"fiber-admin/config"
	"fiber-admin/database"
	"fiber-admin/repositories"
	"fiber-admin/services"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importMenusCmd = &cobra.Command{
	Use:   "import-menus <payload.json>",
	Short: "Replace menus from a legacy {user, menu} payload file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(args[0])
		if err != nil {
			return err
		}
		// validasi payload dan tree sebelum menyentuh database
		profile, err := services.MapPayload(payload)
		if err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		// cache yang sama dengan server supaya tree lama langsung di-invalidate
		var menuCache services.MenuCache
		if c := connectCache(cmd.Context()); c != nil {
			defer c.Close()
			menuCache = c
		}
		menuService := services.NewMenuService(repositories.NewMenuRepository(db), menuCache, config.MenuCacheTTL, log.Named("menu"))
		n, err := menuService.Import(cmd.Context(), payload.Menu)
		if err != nil {
			return err
		}
		log.Info("menus imported", zap.Int("count", n), zap.Int("roots", len(profile.ListMenu)), zap.String("user", profile.Name))
		return nil
	},
}

func readPayload(path string) (services.RawPayload, error) {
	var payload services.RawPayload
	raw, err := os.ReadFile(path)
	if err != nil {
		return payload, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, fmt.Errorf("decode %s: %w", path, err)
	}
	return payload, nil
}

func init() {
	rootCmd.AddCommand(importMenusCmd)
}
