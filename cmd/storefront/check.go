package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/storefront/modules/inquiry"
	appconfig "github.com/dmitrymomot/storefront/pkg/config"
)

var errInvalidForm = errors.New("form is invalid")

func checkCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a form submission from flags",
		Long: `Run the same rules the site applies on submit and print the message
shown for each rejected field. Exits with status 1 when the form is invalid.`,
	}
	cmd.PersistentFlags().StringVar(&lang, "lang", "", "language of the messages (default: DEFAULT_LANGUAGE)")

	cmd.AddCommand(checkBookingCmd(&lang), checkContactCmd(&lang))
	return cmd
}

func checkBookingCmd(lang *string) *cobra.Command {
	var req inquiry.BookingRequest

	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Validate an appointment request",
		Example: `  storefront check booking --name "Maria Silva" --phone "(11) 91234-5678" \
    --email maria@example.com --service corte --date 2025-03-14 --time 10:00`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, *lang, inquiry.FormBooking, func(c *inquiry.Catalog) []inquiry.Field {
				return req.Fields(c)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "visitor name")
	f.StringVar(&req.Phone, "phone", "", "phone number")
	f.StringVar(&req.Email, "email", "", "e-mail address")
	f.StringVar(&req.Service, "service", "", "service id from the catalog")
	f.StringVar(&req.Date, "date", "", "date as YYYY-MM-DD")
	f.StringVar(&req.Time, "time", "", "time slot as HH:MM")
	return cmd
}

func checkContactCmd(lang *string) *cobra.Command {
	var req inquiry.ContactRequest

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Validate a contact message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, *lang, inquiry.FormContact, func(c *inquiry.Catalog) []inquiry.Field {
				return req.Fields(c)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "visitor name")
	f.StringVar(&req.Email, "email", "", "e-mail address")
	f.StringVar(&req.Phone, "phone", "", "phone number (optional)")
	f.StringVar(&req.Message, "message", "", "message text")
	return cmd
}

func runCheck(cmd *cobra.Command, lang, form string, fields func(*inquiry.Catalog) []inquiry.Field) error {
	var cfg config
	if err := appconfig.Load(&cfg); err != nil {
		return err
	}
	if lang == "" {
		lang = cfg.App.DefaultLanguage
	}

	tr, err := newTranslator(cmd.Context(), cfg.App, newLogger(cfg.App))
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	catalog, err := inquiry.LoadCatalog(cfg.Inquiry.CatalogPath)
	if err != nil {
		return err
	}
	v, err := newValidator(cfg.Inquiry)
	if err != nil {
		return err
	}

	res := v.ValidateForm(fields(catalog))
	if res.Valid() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", form)
		return nil
	}

	printErrors(cmd.OutOrStdout(), inquiry.NewLocalizer(tr).Errors(lang, res.Errors))
	return fmt.Errorf("%s: %w", form, errInvalidForm)
}

func printErrors(w io.Writer, errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%-10s %s\n", name, errs[name])
	}
}
