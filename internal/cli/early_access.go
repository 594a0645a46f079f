package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sirchsolutions/sirchweb/internal/api/dto/v1/earlyaccess"
	"github.com/sirchsolutions/sirchweb/internal/api/validation"
	"github.com/sirchsolutions/sirchweb/internal/client"
	"github.com/sirchsolutions/sirchweb/internal/presenter"
)

func (a *app) newEarlyAccessCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "early-access",
		Short: "Sign up for early access to the SIRCH Academy",
		Long: `Sign up for early access to the SIRCH Academy.

Example:
  sirchctl early-access --email you@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New(earlyaccess.MessageEmailRequired)
			}
			if !validation.IsEmail(email) {
				return errors.New(earlyaccess.MessageEmailInvalid)
			}

			renderer := newTerminalRenderer(out, a.opts.Interactive)
			renderer.Render(presenter.View{State: presenter.StateSubmitting, Message: "Signing up..."})

			info, err := a.client().SignupEarlyAccess(cmd.Context(), email)
			if err != nil {
				var submitErr *client.SubmitError
				message := client.KindUnknown.Message()
				if errors.As(err, &submitErr) {
					message = submitErr.Message
				}
				renderer.Render(presenter.View{State: presenter.StateError, Message: message})
				a.logger.Warn("Early access signup failed: %v", err)
				return fmt.Errorf("signup failed: %w", err)
			}

			message := info.Message
			if message == "" {
				message = earlyaccess.MessageSignedUp
			}
			renderer.Render(presenter.View{State: presenter.StateSuccess, Message: message})
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address to sign up")
	cmd.MarkFlagRequired("email")

	return cmd
}
