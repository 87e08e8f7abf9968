package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/database"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DB, nil)
		if err != nil {
			return err
		}

		log.Info().Msg("Running database migrations...")
		if err := models.SetupModels(db); err != nil {
			return err
		}

		log.Info().Msg("Database migrations completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
