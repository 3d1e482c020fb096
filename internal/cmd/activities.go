package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Stuart-0728/cqnu/internal/api"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Browse activities",
	Long: `Browse the association's activities without the interactive
interface.

Examples:
  cqnu activities list
  cqnu activities list --status active --page 2
  cqnu activities show 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		result, err := client.ListActivities(cmd.Context(), api.ActivityListOptions{
			Status:  status,
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			return err
		}

		if len(result.Activities) == 0 {
			fmt.Println("No activities found.")
			return nil
		}

		fmt.Printf("Activities (page %d/%d, %d total):\n\n", result.Page, result.Pages, result.Total)
		for _, a := range result.Activities {
			capacity := "unlimited"
			if a.MaxParticipants > 0 {
				capacity = fmt.Sprintf("%d/%d", a.RegisteredCount, a.MaxParticipants)
			}
			fmt.Printf("ID:       %d\n", a.ID)
			fmt.Printf("Title:    %s\n", a.Title)
			fmt.Printf("Status:   %s\n", a.Status)
			fmt.Printf("Starts:   %s\n", a.StartTime.Format("2006-01-02 15:04"))
			fmt.Printf("Capacity: %s\n", capacity)
			fmt.Println()
		}
		return nil
	},
}

var activitiesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one activity",
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

		a, err := newClient(cfg).GetActivity(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Title:    %s\n", a.Title)
		fmt.Printf("Status:   %s\n", a.Status)
		fmt.Printf("Location: %s\n", a.Location)
		fmt.Printf("Starts:   %s\n", a.StartTime.Format("2006-01-02 15:04"))
		fmt.Printf("Ends:     %s\n", a.EndTime.Format("2006-01-02 15:04"))
		if !a.RegistrationDeadline.IsZero() {
			fmt.Printf("Deadline: %s\n", a.RegistrationDeadline.Format("2006-01-02 15:04"))
		}
		if a.MaxParticipants > 0 {
			fmt.Printf("Capacity: %d/%d\n", a.RegisteredCount, a.MaxParticipants)
		} else {
			fmt.Printf("Capacity: %d registered (unlimited)\n", a.RegisteredCount)
		}
		if a.Description != "" {
			fmt.Printf("\n%s\n", a.Description)
		}
		return nil
	},
}

func init() {
	activitiesCmd.AddCommand(activitiesListCmd)
	activitiesCmd.AddCommand(activitiesShowCmd)

	activitiesListCmd.Flags().String("status", "all", "Filter by status: all, active, completed, cancelled")
	activitiesListCmd.Flags().Int("page", 1, "Page number")
	activitiesListCmd.Flags().Int("per-page", 10, "Results per page")

	rootCmd.AddCommand(activitiesCmd)
}
