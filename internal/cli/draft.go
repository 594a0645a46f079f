package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirchsolutions/sirchweb/internal/form"
)

func (a *app) newDraftCommand() *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the saved contact form draft",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cache, err := form.OpenSQLiteDraftCache(a.draftPath)
			if err != nil {
				return err
			}
			defer cache.Close()

			draft, err := cache.Load()
			if errors.Is(err, form.ErrNoDraft) {
				fmt.Fprintln(out, "No draft saved.")
				return nil
			}
			if err != nil {
				return err
			}

			now := time.Now()
			fmt.Fprintf(out, "Saved:   %s (%s ago)\n", draft.SavedAt().Format(time.RFC3339), now.Sub(draft.SavedAt()).Round(time.Second))
			fmt.Fprintf(out, "Name:    %s\n", draft.Data.Name)
			fmt.Fprintf(out, "Email:   %s\n", draft.Data.Email)
			fmt.Fprintf(out, "Phone:   %s\n", draft.Data.Phone)
			fmt.Fprintf(out, "Message: %s\n", draft.Data.Message)
			if draft.Expired(now) {
				fmt.Fprintln(out, "This draft is older than one hour and will not be restored.")
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := form.OpenSQLiteDraftCache(a.draftPath)
			if err != nil {
				return err
			}
			defer cache.Close()

			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
			return nil
		},
	}

	draftCmd.AddCommand(showCmd)
	draftCmd.AddCommand(clearCmd)
	return draftCmd
}
