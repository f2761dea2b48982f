package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patientFixture = `{
  "resourceType": "Patient",
  "id": "eps-001",
  "identifier": [{"system": "urn:oid:1.2.246.21", "value": "250178-123X"}],
  "name": [{"family": "Knudsen", "given": ["Albert", "Johan"]}],
  "telecom": [{"system": "email", "value": "a@example.fi"}, {"system": "phone", "value": "+358 40 123 4567"}],
  "gender": "male",
  "birthDate": "1978-01-25",
  "address": [{"line": ["Kirkkokatu 1", "A 3"], "city": "Oulu", "postalCode": "90100"}],
  "extension": [{
    "url": "http://hl7.org/fhir/StructureDefinition/patient-nationality",
    "valueCodeableConcept": {"coding": [{"code": "FI"}]}
  }]
}`

func TestPatientDisplayFields(t *testing.T) {
	t.Parallel()

	var patient Patient
	require.NoError(t, json.Unmarshal([]byte(patientFixture), &patient))

	assert.Equal(t, "Albert Johan Knudsen", PatientFullName(patient))
	assert.Equal(t, "Albert Johan Knudsen", PatientBannerName(patient))
	assert.Equal(t, "Male", PatientGender(patient))
	assert.Equal(t, "January 25, 1978", PatientBirthDate(patient))
	assert.Equal(t, "250178-123X", PatientIdentifier(patient))
	assert.Equal(t, "Finland", PatientNationality(patient))
	assert.Equal(t, "Kirkkokatu 1, A 3, Oulu 90100", PatientAddress(patient))
	assert.Equal(t, "+358 40 123 4567", PatientPhone(patient))
}

func TestPatientDisplayPlaceholders(t *testing.T) {
	t.Parallel()

	patient := Patient{ResourceType: "Patient", ID: "eps-009"}

	assert.Equal(t, "Unknown", PatientFullName(patient))
	assert.Equal(t, "Patient", PatientBannerName(patient))
	assert.Equal(t, "Unknown", PatientGender(patient))
	assert.Equal(t, "Unknown", PatientBirthDate(patient))
	assert.Empty(t, PatientIdentifier(patient))
	assert.Empty(t, PatientNationality(patient))
	assert.Empty(t, PatientAddress(patient))
	assert.Empty(t, PatientPhone(patient))
}

func TestPatientNationalityKeepsUnmappedCode(t *testing.T) {
	t.Parallel()

	patient := Patient{Extension: []Extension{{
		URL:                  NationalityExtension,
		ValueCodeableConcept: &CodeableConcept{Coding: []Coding{{Code: "EE"}}},
	}}}

	assert.Equal(t, "EE", PatientNationality(patient))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "2023-04-05", want: "Apr 5, 2023"},
		{raw: "2023-04-05T10:30:00+03:00", want: "Apr 5, 2023"},
		{raw: "2023-04", want: "Apr 1, 2023"},
		{raw: "", want: "Unknown"},
		{raw: "last spring", want: "last spring"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatDate(tc.raw), tc.raw)
	}
}

func TestResourceFallbackChains(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown observation", ObservationName(Observation{}))
	assert.Equal(t, "Heart rate", ObservationName(Observation{Code: &CodeableConcept{Coding: []Coding{{Display: "Heart rate"}}}}))

	assert.Equal(t, "Unknown condition", ConditionName(Condition{}))
	assert.Equal(t, "inactive", ConditionStatus(Condition{}))
	assert.Equal(t, "active", ConditionStatus(Condition{ClinicalStatus: coded("active")}))
	assert.Equal(t, "2020-01-01", ConditionOnset(Condition{OnsetPeriod: &Period{Start: "2020-01-01"}}))
	assert.Equal(t, "2019-05-01", ConditionOnset(Condition{OnsetDateTime: "2019-05-01", OnsetPeriod: &Period{Start: "2020-01-01"}}))

	assert.Equal(t, "Unknown vaccine", VaccineName(Immunization{}))
	assert.Equal(t, "Unknown procedure", ProcedureName(Procedure{}))
	assert.Equal(t, "Asthma", ProcedureReason(Procedure{ReasonCode: []CodeableConcept{{Coding: []Coding{{Display: "Asthma"}}}}}))

	assert.Equal(t, "General Care", CarePlanTitle(CarePlan{}))
	assert.Equal(t, "Active", CarePlanStatus(CarePlan{}))
	assert.Equal(t, "completed", CarePlanStatus(CarePlan{Status: "completed"}))
	assert.Equal(t, "2021-02-03", CarePlanCreated(CarePlan{Period: &Period{Start: "2021-02-03"}}))
	assert.Equal(t, "Activity", CarePlanActivityName(CarePlanActivity{}))
}

func TestImmunizationDoseChoices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "positive int", payload: `{"protocolApplied":[{"doseNumberPositiveInt":2}]}`, want: "2"},
		{name: "string choice", payload: `{"protocolApplied":[{"doseNumberString":"booster"}]}`, want: "booster"},
		{name: "legacy number", payload: `{"protocolApplied":[{"doseNumber":3}]}`, want: "3"},
		{name: "legacy string", payload: `{"protocolApplied":[{"doseNumber":"1"}]}`, want: "1"},
		{name: "none", payload: `{}`, want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var imm Immunization
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &imm))
			assert.Equal(t, tc.want, ImmunizationDose(imm))
		})
	}
}

func TestPatientGenderCapitalisesFirstRune(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Female", PatientGender(Patient{Gender: "female"}))
	assert.Equal(t, "Émile", PatientGender(Patient{Gender: "émile"}))
	assert.Equal(t, "Öther", PatientGender(Patient{Gender: " öther "}))
}
