package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	shortDateLayout = "Jan 2, 2006"
	longDateLayout  = "January 2, 2006"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

var countryNames = map[string]string{
	"FI": "Finland",
	"NL": "Netherlands",
	"SE": "Sweden",
	"NO": "Norway",
	"DK": "Denmark",
	"DE": "Germany",
	"FR": "France",
	"ES": "Spain",
	"IT": "Italy",
	"PL": "Poland",
	"GB": "United Kingdom",
	"US": "United States",
	"LT": "Lithuania",
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func formatDate(raw, layout string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PlaceholderUnknown
	}
	parsed, ok := parseDate(trimmed)
	if !ok {
		return trimmed
	}
	return parsed.Format(layout)
}

// FormatDate renders a FHIR date as "Jan 2, 2006". Unparseable input is returned as-is.
func FormatDate(raw string) string {
	return formatDate(raw, shortDateLayout)
}

func FormatLongDate(raw string) string {
	return formatDate(raw, longDateLayout)
}

func PatientFullName(patient Patient) string {
	if len(patient.Name) == 0 {
		return PlaceholderUnknown
	}
	name := patient.Name[0]
	given := strings.Join(name.Given, " ")
	return strings.TrimSpace(given + " " + name.Family)
}

// PatientBannerName is the short name shown in the top bar.
func PatientBannerName(patient Patient) string {
	if len(patient.Name) == 0 {
		return "Patient"
	}
	return PatientFullName(patient)
}

func PatientGender(patient Patient) string {
	gender := strings.TrimSpace(patient.Gender)
	if gender == "" {
		return PlaceholderUnknown
	}
	first, size := utf8.DecodeRuneInString(gender)
	return string(unicode.ToUpper(first)) + gender[size:]
}

func PatientBirthDate(patient Patient) string {
	return FormatLongDate(patient.BirthDate)
}

func PatientIdentifier(patient Patient) string {
	if len(patient.Identifier) == 0 {
		return ""
	}
	return patient.Identifier[0].Value
}

func PatientNationality(patient Patient) string {
	for _, ext := range patient.Extension {
		if ext.URL != NationalityExtension {
			continue
		}
		code := ext.ValueCodeableConcept.PrimaryCode()
		if code == "" {
			return ""
		}
		if name, ok := countryNames[code]; ok {
			return name
		}
		return code
	}
	return ""
}

func PatientAddress(patient Patient) string {
	if len(patient.Address) == 0 {
		return ""
	}
	address := patient.Address[0]

	var b strings.Builder
	b.WriteString(strings.Join(address.Line, ", "))
	if address.City != "" {
		b.WriteString(", " + address.City)
	}
	if address.PostalCode != "" {
		b.WriteString(" " + address.PostalCode)
	}
	return b.String()
}

func PatientPhone(patient Patient) string {
	for _, telecom := range patient.Telecom {
		if telecom.System == ContactSystemPhone {
			return telecom.Value
		}
	}
	return ""
}

func ObservationName(observation Observation) string {
	return observation.Code.Label("Unknown observation")
}

func ObservationInterpretation(observation Observation) string {
	if len(observation.Interpretation) == 0 {
		return ""
	}
	return observation.Interpretation[0].PrimaryDisplay()
}

// ConditionSummaryName is the label used in the overview's active-conditions list.
func ConditionSummaryName(condition Condition) string {
	return condition.Code.Label(PlaceholderUnknown)
}

func ConditionName(condition Condition) string {
	return condition.Code.Label("Unknown condition")
}

func ConditionStatus(condition Condition) string {
	if IsActiveCondition(condition) {
		return "active"
	}
	return "inactive"
}

func ConditionOnset(condition Condition) string {
	if condition.OnsetDateTime != "" {
		return condition.OnsetDateTime
	}
	if condition.OnsetPeriod != nil {
		return condition.OnsetPeriod.Start
	}
	return ""
}

func VaccineName(immunization Immunization) string {
	return immunization.VaccineCode.Label("Unknown vaccine")
}

func ImmunizationDose(immunization Immunization) string {
	if len(immunization.ProtocolApplied) == 0 {
		return ""
	}
	return immunization.ProtocolApplied[0].Dose()
}

func ProcedureName(procedure Procedure) string {
	return procedure.Code.Label("Unknown procedure")
}

func ProcedureReason(procedure Procedure) string {
	if len(procedure.ReasonCode) == 0 {
		return ""
	}
	return procedure.ReasonCode[0].Label("")
}

func CarePlanTitle(plan CarePlan) string {
	if len(plan.Category) == 0 {
		return "General Care"
	}
	return firstNonEmpty(plan.Category[0].PrimaryDisplay(), "General Care")
}

func CarePlanCreated(plan CarePlan) string {
	if plan.Created != "" {
		return plan.Created
	}
	if plan.Period != nil {
		return plan.Period.Start
	}
	return ""
}

func CarePlanStatus(plan CarePlan) string {
	return firstNonEmpty(plan.Status, "Active")
}

func CarePlanActivityName(activity CarePlanActivity) string {
	if activity.Detail == nil {
		return "Activity"
	}
	return activity.Detail.Code.Label("Activity")
}
