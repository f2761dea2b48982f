package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/heihealth-cli/internal/application"
	"github.com/bnema/heihealth-cli/internal/domain"
)

func testHeader() Header {
	return Header{
		Organization: "OYS",
		Directory: domain.PatientDirectory{Loaded: true, Entries: []domain.DirectoryEntry{
			{ID: "eps-001", Name: "Aino Virtanen", Identifier: "010185-123A"},
			{ID: "eps-002", Identifier: "eps-002"},
		}},
		ActivePatientID: "eps-001",
	}
}

func TestHeaderSelectorText(t *testing.T) {
	h := testHeader()
	assert.Equal(t, "Patient: Aino Virtanen (010185-123A)", h.SelectorText())

	h.ActivePatientID = "eps-002"
	assert.Equal(t, "Patient: eps-002", h.SelectorText())

	h.Directory = domain.PatientDirectory{}
	assert.Equal(t, "Loading patients...", h.SelectorText())

	h.Directory = domain.PatientDirectory{Loaded: true}
	assert.Equal(t, "No patients available", h.SelectorText())
}

func TestRenderOverview(t *testing.T) {
	overview := application.Overview{
		Title:    application.OverviewTitle,
		Subtitle: "Aino Virtanen",
		PatientInfo: []application.InfoField{
			{Label: "Date of Birth", Value: "March 14, 1985"},
			{Label: "Gender", Value: "Female"},
		},
		Metrics: []application.Metric{{Title: "Blood Pressure", Value: "120/80", Unit: "mmHg"}},
		ActiveConditions: application.ConditionsSection{
			Shown: true,
			Items: []application.ConditionSummary{{Name: "Hypertension", Status: "Active"}},
		},
		Observations: application.ObservationSection{
			Total:         2,
			VitalSigns:    []application.ObservationRow{{Name: "Heart rate", Value: "72", Unit: "bpm", Date: "May 2, 2024"}},
			Uncategorized: 1,
		},
	}

	output, err := RenderOverview(testHeader(), overview)
	require.NoError(t, err)

	assert.Contains(t, output, "HeiHealth")
	assert.Contains(t, output, "Oulun yliopistollinen sairaala")
	assert.Contains(t, output, "Patient: Aino Virtanen (010185-123A)")
	assert.Contains(t, output, "Patient Summary")
	assert.Contains(t, output, "Aino Virtanen")
	assert.Contains(t, output, "Date of Birth  March 14, 1985")
	assert.Contains(t, output, "120/80")
	assert.Contains(t, output, "mmHg")
	assert.Contains(t, output, "Active Conditions")
	assert.Contains(t, output, "Hypertension")
	assert.Contains(t, output, "Recent Vital Signs")
	assert.Contains(t, output, "Heart rate")
	assert.Contains(t, output, "1 observation(s) outside vital signs and laboratory not shown")
}

func TestRenderOverviewHidesEmptySections(t *testing.T) {
	output, err := RenderOverview(testHeader(), application.Overview{Title: application.OverviewTitle})
	require.NoError(t, err)

	assert.Contains(t, output, "Key Metrics")
	assert.NotContains(t, output, "Active Conditions")
	assert.NotContains(t, output, "Recent Vital Signs")
}

func TestRenderOverviewNoActiveConditions(t *testing.T) {
	output, err := RenderOverview(testHeader(), application.Overview{
		Title:            application.OverviewTitle,
		ActiveConditions: application.ConditionsSection{Shown: true, Message: application.NoActiveConditions},
	})
	require.NoError(t, err)

	assert.Contains(t, output, "No active conditions")
}

func TestRenderDetailsEmptyCollections(t *testing.T) {
	details := application.BuildDetails(domain.ClinicalBundle{})

	output, err := RenderDetails(testHeader(), details)
	require.NoError(t, err)

	assert.Contains(t, output, "Patient Details")
	assert.Contains(t, output, "No conditions found.")
	assert.Contains(t, output, "No immunizations found.")
	assert.Contains(t, output, "No procedures found.")
	assert.Contains(t, output, "No care plans found.")
	assert.Contains(t, output, "No observations found.")
}

func TestRenderErrorShowsOnlyBanner(t *testing.T) {
	output, err := RenderError(testHeader(), "load Condition for patient eps-001: status 500")
	require.NoError(t, err)

	assert.Contains(t, output, "Error:")
	assert.Contains(t, output, "load Condition for patient eps-001: status 500")
	assert.NotContains(t, output, "Patient Summary")
	assert.NotContains(t, output, "Key Metrics")
}

func TestRenderDirectoryMarksActivePatient(t *testing.T) {
	output, err := RenderDirectory(testHeader())
	require.NoError(t, err)

	assert.Contains(t, output, "> eps-001  Aino Virtanen (010185-123A)")
	assert.Contains(t, output, "  eps-002  eps-002")
}

func TestViewLoading(t *testing.T) {
	h := testHeader()
	h.Directory = domain.PatientDirectory{}

	output := ViewLoading(h, "")
	assert.Contains(t, output, "Loading patient data...")
	assert.Contains(t, output, "Loading patients...")
}
