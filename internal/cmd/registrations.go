package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var registrationsCmd = &cobra.Command{
	Use:   "registrations",
	Short: "Manage your activity registrations",
	Long: `Manage your activity registrations. All subcommands require a
login.

Examples:
  cqnu registrations list
  cqnu registrations signup 7
  cqnu registrations cancel 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var registrationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireLogin(cmd.Context(), client); err != nil {
			return err
		}

		items, err := client.MyRegistrations(cmd.Context(), status)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Println("No registrations found.")
			return nil
		}

		for _, item := range items {
			fmt.Printf("Activity: %s (id %d)\n", item.Activity.Title, item.Activity.ID)
			fmt.Printf("Status:   %s\n", item.Registration.Status)
			fmt.Printf("Starts:   %s\n", item.Activity.StartTime.Format("2006-01-02 15:04"))
			fmt.Println()
		}
		return nil
	},
}

var registrationsSignupCmd = &cobra.Command{
	Use:   "signup <activity-id>",
	Short: "Sign up for an activity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid activity id %q", args[0])
		}
		notes, _ := cmd.Flags().GetString("notes")

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireLogin(cmd.Context(), client); err != nil {
			return err
		}

		if _, err := client.SignUp(cmd.Context(), id, notes); err != nil {
			return err
		}

		fmt.Println("Registered.")
		return nil
	},
}

var registrationsCancelCmd = &cobra.Command{
	Use:   "cancel <activity-id>",
	Short: "Cancel a registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid activity id %q", args[0])
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireLogin(cmd.Context(), client); err != nil {
			return err
		}

		if err := client.CancelRegistration(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Println("Registration cancelled.")
		return nil
	},
}

func init() {
	registrationsCmd.AddCommand(registrationsListCmd)
	registrationsCmd.AddCommand(registrationsSignupCmd)
	registrationsCmd.AddCommand(registrationsCancelCmd)

	registrationsListCmd.Flags().String("status", "", "Filter by status: registered, cancelled, attended")
	registrationsSignupCmd.Flags().String("notes", "", "Optional note for the organizer")

	rootCmd.AddCommand(registrationsCmd)
}
