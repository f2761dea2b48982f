package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/heihealth-cli/internal/adapters/render/summary"
	"github.com/bnema/heihealth-cli/internal/application"
	"github.com/bnema/heihealth-cli/internal/domain"
)

const (
	defaultLoginPatient = "eps-001"
	defaultLoginOrg     = "OYS"
)

func newLoginCmd(app *app) *cobra.Command {
	var patientID string
	var org string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Launch a SMART session for a patient and organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := app.controller.Login(cmd.Context(), domain.PatientID(patientID), org); err != nil {
				return err
			}

			view := app.controller.Snapshot()
			if asJSON {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Logged in to %s as patient %s\n",
				domain.OrganizationLabel(view.Session.Organization()), view.Session.ActivePatientID); err != nil {
				return err
			}
			return writeDirectory(cmd, view)
		},
	}

	cmd.Flags().StringVar(&patientID, "patient", defaultLoginPatient, "Patient ID to launch with")
	cmd.Flags().StringVar(&org, "org", defaultLoginOrg, "Organization code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.controller.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := app.controller.Snapshot()
			if asJSON {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			if !view.Session.LoggedIn {
				_, err := fmt.Fprintln(out, "Not logged in")
				return err
			}

			header := summary.HeaderFor(view.Session, view.Directory)
			lines := []string{
				"session: " + view.Session.ID,
				"organization: " + domain.OrganizationLabel(view.Session.Organization()),
				"patient: " + string(view.Session.ActivePatientID),
				"selector: " + header.SelectorText(),
				fmt.Sprintf("patients: %d", len(view.Directory.Entries)),
			}
			if !view.Session.StartedAt.IsZero() {
				since := app.now().Sub(view.Session.StartedAt).Truncate(time.Second)
				lines = append(lines, fmt.Sprintf("started: %s (%s ago)", view.Session.StartedAt.Format(time.RFC3339), since))
			}

			for _, line := range lines {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newPatientsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Refresh and list the patients of the session's organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}

			directory := app.controller.LoadDirectory(cmd.Context())
			if asJSON {
				return writeJSON(cmd, directory)
			}
			return writeDirectory(cmd, app.controller.Snapshot())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func requireLogin(app *app) error {
	if !app.controller.Snapshot().Session.LoggedIn {
		return fmt.Errorf("%w: run `hh login` first", domain.ErrNotLoggedIn)
	}
	return nil
}

func writeDirectory(cmd *cobra.Command, view application.View) error {
	rendered, err := summary.RenderDirectory(summary.HeaderFor(view.Session, view.Directory))
	if err != nil {
		return fmt.Errorf("render patients: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func isNotLoggedIn(err error) bool {
	return errors.Is(err, domain.ErrNotLoggedIn)
}
