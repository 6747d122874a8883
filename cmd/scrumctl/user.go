package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yukikurage/scrum-board-api/internal/database"
	"github.com/yukikurage/scrum-board-api/internal/output"
	"github.com/yukikurage/scrum-board-api/internal/repository"
	"github.com/yukikurage/scrum-board-api/internal/services"
	"github.com/yukikurage/scrum-board-api/internal/utils"
)

var (
	userPassword  string
	userFirstName string
	userLastName  string
	userEmail     string
	userSearch    string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage board users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create an active user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		auth, err := authService()
		if err != nil {
			return err
		}

		password := userPassword
		if password == "" {
			password = os.Getenv("SCRUM_USER_PASSWORD")
		}

		user, err := auth.CreateUser(services.CreateUserInput{
			Username:  args[0],
			Password:  password,
			FirstName: userFirstName,
			LastName:  userLastName,
			Email:     userEmail,
		})
		if err != nil {
			return err
		}

		ui.Success("Created user %s (id %d)", output.Cyan(user.Username), user.ID)
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users ordered by username",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := connect(); err != nil {
			return err
		}

		users, _, err := services.NewUserService(repository.NewUserRepository(database.GetDB())).
			ListUsers(userSearch, utils.PaginationParams{})
		if err != nil {
			return err
		}

		if len(users) == 0 {
			ui.Info("No users found. Use 'scrumctl user create <username>' to add one.")
			return nil
		}

		table := ui.Table([]string{"ID", "Username", "Name", "Email", "Status"})
		for _, u := range users {
			_ = table.Append([]string{
				strconv.FormatUint(u.ID, 10),
				output.Cyan(u.Username),
				u.FullName(),
				u.Email,
				output.ActiveColor(u.IsActive),
			})
		}
		return table.Render()
	},
}

func setActiveCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <username>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auth, err := authService()
			if err != nil {
				return err
			}

			user, err := auth.SetActive(args[0], active)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			ui.Success("User %s is now %s", output.Cyan(user.Username), output.ActiveColor(user.IsActive))
			return nil
		},
	}
}

func init() {
	userCreateCmd.Flags().StringVarP(&userPassword, "password", "p", "", "Password (default $SCRUM_USER_PASSWORD)")
	userCreateCmd.Flags().StringVar(&userFirstName, "first-name", "", "First name")
	userCreateCmd.Flags().StringVar(&userLastName, "last-name", "", "Last name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address")
	userListCmd.Flags().StringVarP(&userSearch, "search", "s", "", "Only usernames containing every term")

	userCmd.AddCommand(
		userCreateCmd,
		userListCmd,
		setActiveCmd("deactivate", "Disable a user and revoke their API token", false),
		setActiveCmd("activate", "Re-enable a disabled user", true),
	)
	rootCmd.AddCommand(userCmd)
}
