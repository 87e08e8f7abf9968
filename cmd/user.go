package cmd

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/auth"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/database"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/repositories"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/services"
)

var userInput services.CreateUserInput

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account, typically the first administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.DB, nil)
		if err != nil {
			return err
		}
		if err := models.SetupModels(db); err != nil {
			return err
		}

		users := services.NewUserService(&services.Dependencies{
			Store:  repositories.NewStore(db),
			Tokens: auth.NewTokenManager(cfg.Auth),
		})
		user, err := users.CreateUser(cmd.Context(), userInput)
		if err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		log.Info().
			Str("id", user.ID).
			Str("employee_id", user.EmployeeID).
			Str("role", string(user.Role)).
			Msg("User created")
		return nil
	},
}

func init() {
	flags := userCreateCmd.Flags()
	flags.StringVar(&userInput.FullName, "name", "", "full name")
	flags.StringVar(&userInput.EmployeeID, "employee-id", "", "employee id used to log in")
	flags.StringVar(&userInput.Password, "password", "", "initial password")
	flags.StringVar(&userInput.Email, "email", "", "email address")
	flags.StringVar((*string)(&userInput.Role), "role", string(models.RoleAdmin), "role (admin, employee)")
	_ = userCreateCmd.MarkFlagRequired("employee-id")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
