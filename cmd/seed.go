package cmd

import (
	"fiber-admin/database"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	demoNotifications int
	demoSeed          uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed users, menus, approval requests and commodities",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.RunSeeders(db); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if demoNotifications > 0 {
			seed := demoSeed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			if err := database.SeedDemoNotifications(db, demoNotifications, seed); err != nil {
				return fmt.Errorf("seed notifications: %w", err)
			}
		}
		log.Info("seeding finished", zap.Int("demo_notifications_per_user", demoNotifications))
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&demoNotifications, "demo-notifications", 0, "number of demo notifications per user")
	seedCmd.Flags().Uint64Var(&demoSeed, "rand-seed", 0, "random seed for demo data (0 = time based)")
	rootCmd.AddCommand(seedCmd)
}
