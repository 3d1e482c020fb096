package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/tui"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administration commands",
	Long: `Administration commands. All subcommands require a login with
the admin role.

Examples:
  cqnu admin stats
  cqnu admin export 7
  cqnu admin set-role 4 admin
  cqnu admin mark-attended 12 13 14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show platform statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireAdmin(cmd.Context(), client); err != nil {
			return err
		}

		summary, err := client.DashboardSummary(cmd.Context())
		if err != nil {
			return err
		}

		s := summary.Stats
		fmt.Printf("Users:         %d (%d admins)\n", s.Users.Total, s.Users.Admins)
		fmt.Printf("Activities:    %d (%d active, %d completed, %d cancelled)\n",
			s.Activities.Total, s.Activities.Active, s.Activities.Completed, s.Activities.Cancelled)
		fmt.Printf("Registrations: %d (%d active, %d cancelled)\n",
			s.Registrations.Total, s.Registrations.Active, s.Registrations.Cancelled)

		if len(summary.UpcomingActivities) > 0 {
			fmt.Println("\nUpcoming:")
			for _, a := range summary.UpcomingActivities {
				fmt.Printf("  %s  %s\n", a.StartTime.Format("2006-01-02 15:04"), a.Title)
			}
		}
		return nil
	},
}

var adminExportCmd = &cobra.Command{
	Use:   "export <activity-id>",
	Short: "Export an activity's participants as CSV",
	Long: `Export an activity's participant list as a CSV file.

The file is written to the current directory using the server-provided
filename unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid activity id %q", args[0])
		}
		output, _ := cmd.Flags().GetString("output")

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireAdmin(cmd.Context(), client); err != nil {
			return err
		}

		export, err := client.ExportParticipants(cmd.Context(), id)
		if err != nil {
			return err
		}

		filename := export.Filename
		if output != "" {
			filename = output
		}
		if err := os.WriteFile(filename, []byte(export.CSVData), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}

		fmt.Printf("Exported participants of %q to %s\n", export.Activity.Title, filename)
		return nil
	},
}

var adminSetRoleCmd = &cobra.Command{
	Use:   "set-role <user-id> <role>",
	Short: "Change a user's role",
	Long: `Change a user's role to "user" or "admin".

You cannot change your own role, and the backend refuses to demote the
last remaining admin.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		role := args[1]
		if role != api.RoleUser && role != api.RoleAdmin {
			return fmt.Errorf("role must be %q or %q", api.RoleUser, api.RoleAdmin)
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		_, snap, err := requireAdmin(cmd.Context(), client)
		if err != nil {
			return err
		}
		if snap.User.ID == id {
			return fmt.Errorf("you cannot change your own role")
		}

		target, err := client.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		if target.Role == role {
			fmt.Printf("%s already has role %s.\n", target.Username, role)
			return nil
		}

		if tui.ShouldPrompt() {
			confirmed, err := tui.PromptForConfirmation(
				fmt.Sprintf("Change role of %s from %s to %s?", target.Username, target.Role, role), false)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		user, err := client.UpdateUserRole(cmd.Context(), id, role)
		if err != nil {
			return err
		}

		fmt.Printf("%s is now %s.\n", user.Username, user.Role)
		return nil
	},
}

var adminMarkAttendedCmd = &cobra.Command{
	Use:   "mark-attended <registration-id>...",
	Short: "Mark registrations as attended",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid registration id %q", arg)
			}
			ids = append(ids, id)
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireAdmin(cmd.Context(), client); err != nil {
			return err
		}

		count, err := client.UpdateRegistrationStatuses(cmd.Context(), ids, api.RegistrationStatusAttended)
		if err != nil {
			return err
		}

		fmt.Printf("Marked %d registration(s) as attended.\n", count)
		return nil
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List platform users",
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		if _, _, err := requireAdmin(cmd.Context(), client); err != nil {
			return err
		}

		users, err := client.DashboardUsers(cmd.Context(), role)
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}
		for _, u := range users {
			fmt.Printf("ID:            %d\n", u.ID)
			fmt.Printf("Username:      %s\n", u.Username)
			fmt.Printf("Role:          %s\n", u.Role)
			fmt.Printf("Email:         %s\n", u.Email)
			fmt.Printf("Registrations: %d\n", u.RegistrationStats.Total)
			fmt.Println()
		}
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminStatsCmd)
	adminCmd.AddCommand(adminExportCmd)
	adminCmd.AddCommand(adminSetRoleCmd)
	adminCmd.AddCommand(adminMarkAttendedCmd)
	adminCmd.AddCommand(adminUsersCmd)

	adminExportCmd.Flags().StringP("output", "o", "", "Output filename")
	adminUsersCmd.Flags().String("role", "", "Filter by role: user, admin")

	rootCmd.AddCommand(adminCmd)
}
