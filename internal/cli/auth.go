package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account management commands",
	}

	cmd.AddCommand(newAuthSignupCmd())
	cmd.AddCommand(newAuthSigninCmd())
	cmd.AddCommand(newAuthMeCmd())
	cmd.AddCommand(newAuthAvatarCmd())

	return cmd
}

func newAuthSignupCmd() *cobra.Command {
	var user, pass, role string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
				"type":     role,
			}
			var result SignupResult

			if err := client.Post("/api/v1/signup", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&role, "role", "user", "Account role: user, admin")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthSigninCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in with existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"username": user,
				"password": pass,
			}
			var result SigninResult

			if err := client.Post("/api/v1/signin", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current account info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/api/v1/user/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAuthAvatarCmd() *cobra.Command {
	var avatarID string

	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Set the current account's avatar",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"avatar_id": avatarID}

			if err := client.Post("/api/v1/user/metadata", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Avatar updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&avatarID, "id", "", "Avatar ID (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
