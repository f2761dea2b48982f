package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/heihealth-cli/internal/adapters/render/browse"
	"github.com/bnema/heihealth-cli/internal/adapters/render/summary"
	"github.com/bnema/heihealth-cli/internal/application"
	"github.com/bnema/heihealth-cli/internal/domain"
)

type screen int

const (
	screenOverview screen = iota
	screenDetails
)

func newSwitchCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "switch <patient-id>",
		Short: "Make another patient active and load their overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}

			id := domain.PatientID(args[0])
			load := func(ctx context.Context) error {
				_, err := app.controller.SwitchPatient(ctx, id)
				return err
			}
			return runScreen(cmd, app, screenOverview, asJSON, load)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newOverviewCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the summary dashboard of the active patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			return runScreen(cmd, app, screenOverview, asJSON, activate(app))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newDetailsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "details",
		Short: "Show every condition, immunization, procedure, care plan and observation of the active patient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}
			return runScreen(cmd, app, screenDetails, asJSON, activate(app))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newBrowseCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse patients interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireLogin(app); err != nil {
				return err
			}

			result, err := browse.Run(cmd.Context(), app.controller)
			if err != nil {
				return err
			}
			if result.LoggedOut() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
				return err
			}
			return nil
		},
	}
}

func activate(app *app) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := app.controller.Activate(ctx)
		return err
	}
}

// runScreen loads the active patient and prints one screen. A failed load prints only the error
// banner and returns the load error.
func runScreen(cmd *cobra.Command, app *app, which screen, asJSON bool, load func(context.Context) error) error {
	var loadErr error
	if asJSON {
		loadErr = load(cmd.Context())
	} else {
		loadErr = runLoadSpinner(cmd.Context(), cmd.ErrOrStderr(), summary.LoadingPatientData, load)
	}
	if loadErr != nil && !errors.Is(loadErr, domain.ErrSuperseded) {
		return writeLoadFailure(cmd, app, loadErr, asJSON)
	}

	view := app.controller.Snapshot()
	state := view.Load
	if state.Phase != domain.LoadLoaded || state.Bundle == nil || state.PatientID != view.Session.ActivePatientID {
		return fmt.Errorf("no clinical data loaded for patient %s", view.Session.ActivePatientID)
	}

	if which == screenDetails {
		details := application.BuildDetails(*state.Bundle)
		if asJSON {
			return writeJSON(cmd, details)
		}
		rendered, err := summary.RenderDetails(summary.HeaderFor(view.Session, view.Directory), details)
		if err != nil {
			return fmt.Errorf("render details: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return err
	}

	overview := application.BuildOverview(*state.Bundle)
	if asJSON {
		return writeJSON(cmd, overview)
	}
	rendered, err := summary.RenderOverview(summary.HeaderFor(view.Session, view.Directory), overview)
	if err != nil {
		return fmt.Errorf("render overview: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

type loadFailure struct {
	PatientID domain.PatientID `json:"patientId"`
	Resource  string           `json:"resource,omitempty"`
	Error     string           `json:"error"`
}

func writeLoadFailure(cmd *cobra.Command, app *app, loadErr error, asJSON bool) error {
	if isNotLoggedIn(loadErr) || errors.Is(loadErr, domain.ErrEmptyPatientID) {
		return loadErr
	}

	view := app.controller.Snapshot()
	if asJSON {
		failure := loadFailure{PatientID: view.Session.ActivePatientID, Error: loadErr.Error()}
		var typed *application.LoadError
		if errors.As(loadErr, &typed) {
			failure.Resource = typed.Resource
		}
		if err := writeJSON(cmd, failure); err != nil {
			return err
		}
		return loadErr
	}

	rendered, err := summary.RenderError(summary.HeaderFor(view.Session, view.Directory), loadErr.Error())
	if err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
		return err
	}
	return loadErr
}
