package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sirchsolutions/sirchweb/internal/api/validation"
	"github.com/sirchsolutions/sirchweb/internal/form"
	"github.com/sirchsolutions/sirchweb/internal/presenter"
)

// ErrNotSent is returned when a contact message could not be delivered
var ErrNotSent = errors.New("message not sent")

type contactFlags struct {
	name     string
	email    string
	phone    string
	message  string
	service  string
	honeypot string
	consent  bool
	retries  int
}

func (a *app) newContactCommand() *cobra.Command {
	f := &contactFlags{}

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the SIRCH team",
		Long: `Send a message through the website contact form.

Fields left out are taken from a draft saved less than an hour ago, if any.
Every change is saved as a draft until the message has been sent.

Example:
  sirchctl contact --name "Jane Doe" --email jane@example.com \
    --message "I need a website for my bakery." --consent
  sirchctl contact --service "Cybersecurity" --name "Jane Doe" --email jane@example.com --consent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runContact(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "Your name")
	flags.StringVar(&f.email, "email", "", "Your email address")
	flags.StringVar(&f.phone, "phone", "", "Phone number (optional)")
	flags.StringVar(&f.message, "message", "", "Your message")
	flags.StringVar(&f.service, "service", "", "Prefill the message with an inquiry about this service")
	flags.BoolVar(&f.consent, "consent", false, "Agree to the Privacy Policy")
	flags.IntVar(&f.retries, "retries", 0, "Retry a failed submission up to this many times")
	flags.StringVar(&f.honeypot, "website", "", "")
	flags.MarkHidden("website")

	return cmd
}

func (a *app) runContact(cmd *cobra.Command, f *contactFlags) error {
	out := cmd.OutOrStdout()

	opts := []form.Option{}
	cache, err := a.openDraftCache()
	if err != nil {
		a.logger.Warn("Draft cache unavailable: %v", err)
	}
	if cache != nil {
		defer cache.Close()
		opts = append(opts, form.WithDraftCache(cache))
	}

	store := form.NewStore(opts...)

	restored, err := store.Restore()
	if err != nil {
		a.logger.Warn("Failed to restore draft: %v", err)
	}
	if restored {
		fmt.Fprintln(out, "Restored your unsent draft.")
	}

	if err := applyContactFlags(cmd, store, f); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	renderer := newTerminalRenderer(out, a.opts.Interactive)
	defer renderer.stop()

	p := presenter.New(store, a.client(), renderer)
	defer p.Close()

	view := p.Submit(ctx)
	for attempt := 0; view.State == presenter.StateError && attempt < f.retries; attempt++ {
		a.logger.Info("Retrying contact submission (attempt %d of %d)", attempt+1, f.retries)
		view = p.Retry(ctx)
	}

	switch view.State {
	case presenter.StateSuccess:
		a.logger.Info("Contact message sent")
		return nil
	case presenter.StateIdle:
		if len(view.FieldErrors) > 0 {
			return ErrNotSent
		}
		// Honeypot: nothing to say
		return nil
	default:
		a.logger.Warn("Contact submission failed: %s", view.Message)
		if cache != nil {
			fmt.Fprintln(out, "Your message was kept as a draft for one hour.")
		}
		return ErrNotSent
	}
}

func applyContactFlags(cmd *cobra.Command, store *form.Store, f *contactFlags) error {
	flags := cmd.Flags()

	set := func(flag string, field validation.Field, value any) error {
		if !flags.Changed(flag) {
			return nil
		}
		if err := store.SetField(field, value); err != nil && !isDraftOnly(err) {
			return err
		}
		return nil
	}

	if err := set("name", validation.FieldName, f.name); err != nil {
		return err
	}
	if err := set("email", validation.FieldEmail, f.email); err != nil {
		return err
	}
	if err := set("phone", validation.FieldPhone, f.phone); err != nil {
		return err
	}
	if flags.Changed("service") && !flags.Changed("message") {
		if err := store.PrefillService(f.service); err != nil && !isDraftOnly(err) {
			return err
		}
	}
	if err := set("message", validation.FieldMessage, f.message); err != nil {
		return err
	}
	if err := set("consent", validation.FieldConsent, f.consent); err != nil {
		return err
	}
	return set("website", validation.FieldHoneypot, f.honeypot)
}

// isDraftOnly reports whether err came from the draft cache rather than the form
func isDraftOnly(err error) bool {
	return !errors.Is(err, form.ErrUnknownField) && !errors.Is(err, form.ErrFieldType)
}
