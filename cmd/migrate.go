package cmd

import (
	"fiber-admin/config"
	"fiber-admin/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database if needed and run auto migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)
		log.Info("migration finished", zap.String("driver", config.DBDriver), zap.String("database", config.DBName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
