package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/forms"
	"github.com/Stuart-0728/cqnu/internal/session"
	"github.com/Stuart-0728/cqnu/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication credentials",
	Long: `Manage authentication credentials for the activity platform.

Credentials are stored in ~/.cqnu/credentials.json.

Examples:
  cqnu auth login --username alice
  cqnu auth register
  cqnu auth status
  cqnu auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in with your username and password.

Missing credentials are prompted for interactively. After logging in,
your token is saved locally so later commands start authenticated.

Examples:
  cqnu auth login --username alice --password secret
  cqnu auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if username == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--username is required")
			}
			username, err = tui.PromptForString(tui.Prompt{Message: "Username", Required: true})
			if err != nil {
				return err
			}
		}
		if password == "" {
			if !tui.ShouldPrompt() {
				return fmt.Errorf("--password is required")
			}
			password, err = tui.PromptForString(tui.Prompt{Message: "Password", Required: true, Password: true})
			if err != nil {
				return err
			}
		}

		if err := forms.Validate(forms.LoginForm{Username: username, Password: password}); err != nil {
			return err
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		store := session.NewStore(newClient(cfg))
		snap, err := store.Login(cmd.Context(), username, password)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s (%s)\n", snap.User.Username, snap.User.Role)
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account and log in with it.

All fields can be passed as flags; missing required fields are
prompted for interactively.

Examples:
  cqnu auth register --username alice --email alice@example.edu --full-name "Alice Zhang"
  cqnu auth register`,
	RunE: func(cmd *cobra.Command, args []string) error {
		form := forms.RegisterForm{}
		form.Username, _ = cmd.Flags().GetString("username")
		form.Email, _ = cmd.Flags().GetString("email")
		form.Password, _ = cmd.Flags().GetString("password")
		form.FullName, _ = cmd.Flags().GetString("full-name")
		form.StudentID, _ = cmd.Flags().GetString("student-id")
		form.Department, _ = cmd.Flags().GetString("department")
		form.Major, _ = cmd.Flags().GetString("major")
		form.Phone, _ = cmd.Flags().GetString("phone")
		form.ConfirmPassword = form.Password

		if err := fillRegisterForm(&form); err != nil {
			return err
		}
		if err := forms.Validate(form); err != nil {
			return err
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		store := session.NewStore(newClient(cfg))
		snap, err := store.Register(cmd.Context(), form.Request())
		if err != nil {
			return err
		}

		fmt.Printf("Account created. Logged in as %s\n", snap.User.Username)
		return nil
	},
}

// fillRegisterForm prompts for required fields the flags left empty.
func fillRegisterForm(form *forms.RegisterForm) error {
	type field struct {
		value    *string
		message  string
		password bool
	}
	required := []field{
		{&form.Username, "Username", false},
		{&form.Email, "Email", false},
		{&form.FullName, "Full name", false},
		{&form.Password, "Password", true},
	}

	for _, f := range required {
		if *f.value != "" {
			continue
		}
		if !tui.ShouldPrompt() {
			return fmt.Errorf("missing required field: %s", f.message)
		}
		value, err := tui.PromptForString(tui.Prompt{Message: f.message, Required: true, Password: f.password})
		if err != nil {
			return err
		}
		*f.value = value
	}

	if form.ConfirmPassword == "" {
		if !tui.ShouldPrompt() {
			form.ConfirmPassword = form.Password
			return nil
		}
		confirm, err := tui.PromptForString(tui.Prompt{Message: "Confirm password", Required: true, Password: true})
		if err != nil {
			return err
		}
		form.ConfirmPassword = confirm
	}
	return nil
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove credentials",
	Long: `Log out and remove the stored token.

The server session is ended best-effort; local credentials are removed
either way.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, ok, err := session.LoadCredentials()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}

		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		client := newClient(cfg)
		client.SetToken(creds.Token)
		store := session.NewStore(client)
		store.Logout(cmd.Context())

		fmt.Printf("Logged out %s.\n", creds.Username)
		return nil
	},
}

var authUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	Long: `Update profile fields on your account.

Only the flags you pass are changed.

Examples:
  cqnu auth update --phone 13800000000
  cqnu auth update --department "Computer Science" --major "Software Engineering"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		update := api.ProfileUpdate{}
		update.FullName, _ = cmd.Flags().GetString("full-name")
		update.Phone, _ = cmd.Flags().GetString("phone")
		update.Department, _ = cmd.Flags().GetString("department")
		update.Major, _ = cmd.Flags().GetString("major")

		if update == (api.ProfileUpdate{}) {
			return fmt.Errorf("nothing to update: pass at least one of --full-name, --phone, --department, --major")
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

		user, err := client.UpdateProfile(cmd.Context(), update)
		if err != nil {
			return err
		}

		fmt.Printf("Profile updated for %s.\n", user.Username)
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		if err := setupLogger(cfg, false); err != nil {
			return err
		}

		_, snap := restoreSession(cmd.Context(), newClient(cfg))
		if !snap.IsLoggedIn() {
			fmt.Println("Not logged in.")
			fmt.Println()
			fmt.Println("Use 'cqnu auth login' to log in.")
			return nil
		}

		user := snap.User
		fmt.Printf("Logged in as: %s\n", user.Username)
		fmt.Printf("Role:         %s\n", user.Role)
		if user.Email != "" {
			fmt.Printf("Email:        %s\n", user.Email)
		}
		if user.FullName != "" {
			fmt.Printf("Full name:    %s\n", user.FullName)
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authUpdateCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("username", "", "Username")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("username", "", "Username (required)")
	authRegisterCmd.Flags().String("email", "", "Email address (required)")
	authRegisterCmd.Flags().String("password", "", "Password (required)")
	authRegisterCmd.Flags().String("full-name", "", "Full name (required)")
	authRegisterCmd.Flags().String("student-id", "", "Student ID")
	authRegisterCmd.Flags().String("department", "", "Department")
	authRegisterCmd.Flags().String("major", "", "Major")
	authRegisterCmd.Flags().String("phone", "", "Phone number")

	authUpdateCmd.Flags().String("full-name", "", "Full name")
	authUpdateCmd.Flags().String("phone", "", "Phone number")
	authUpdateCmd.Flags().String("department", "", "Department")
	authUpdateCmd.Flags().String("major", "", "Major")

	rootCmd.AddCommand(authCmd)
}
