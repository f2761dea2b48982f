package application

import (
	"fmt"

	"github.com/bnema/heihealth-cli/internal/domain"
)

const (
	OverviewTitle           = "Patient Summary"
	DetailsTitle            = "Patient Details"
	NoActiveConditions      = "No active conditions"
	CompletedStatus         = "Completed"
	activeConditionStatus   = "Active"
	nationalityLabel        = "Nationality"
	nationalIdentifierLabel = "Henkilötunnus"
)

type InfoField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Metric struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

type ConditionSummary struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type ObservationRow struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Value          string `json:"value"`
	Unit           string `json:"unit,omitempty"`
	Date           string `json:"date,omitempty"`
	Interpretation string `json:"interpretation,omitempty"`
}

// ObservationSection holds the grouped observations. Entries outside both categories are only counted.
type ObservationSection struct {
	Total         int              `json:"total"`
	VitalSigns    []ObservationRow `json:"vitalSigns"`
	Laboratory    []ObservationRow `json:"laboratory"`
	Uncategorized int              `json:"uncategorized"`
}

func (s ObservationSection) Empty() bool {
	return s.Total == 0
}

type ConditionsSection struct {
	Shown   bool               `json:"shown"`
	Items   []ConditionSummary `json:"items"`
	Message string             `json:"message,omitempty"`
}

type Overview struct {
	Title            string             `json:"title"`
	Subtitle         string             `json:"subtitle,omitempty"`
	PatientInfo      []InfoField        `json:"patientInfo"`
	Metrics          []Metric           `json:"metrics"`
	ActiveConditions ConditionsSection  `json:"activeConditions"`
	Observations     ObservationSection `json:"observations"`
}

func BuildOverview(bundle domain.ClinicalBundle) Overview {
	overview := Overview{
		Title:        OverviewTitle,
		PatientInfo:  patientInfo(bundle.Patient),
		Metrics:      keyMetrics(bundle.Observations),
		Observations: observationSection(bundle.Observations),
	}
	if len(bundle.Patient.Name) > 0 {
		overview.Subtitle = domain.PatientFullName(bundle.Patient)
	}

	if len(bundle.Conditions.Entry) > 0 {
		section := ConditionsSection{Shown: true, Items: []ConditionSummary{}}
		for _, condition := range domain.ActiveConditions(bundle.Conditions, domain.OverviewConditionLimit) {
			section.Items = append(section.Items, ConditionSummary{
				ID:     condition.ID,
				Name:   domain.ConditionSummaryName(condition),
				Status: activeConditionStatus,
			})
		}
		if len(section.Items) == 0 {
			section.Message = NoActiveConditions
		}
		overview.ActiveConditions = section
	}

	return overview
}

func patientInfo(patient domain.Patient) []InfoField {
	fields := []InfoField{
		{Label: "Date of Birth", Value: domain.PatientBirthDate(patient)},
		{Label: "Gender", Value: domain.PatientGender(patient)},
	}

	optional := []InfoField{
		{Label: nationalIdentifierLabel, Value: domain.PatientIdentifier(patient)},
		{Label: nationalityLabel, Value: domain.PatientNationality(patient)},
		{Label: "Address", Value: domain.PatientAddress(patient)},
		{Label: "Phone", Value: domain.PatientPhone(patient)},
	}
	for _, field := range optional {
		if field.Value != "" {
			fields = append(fields, field)
		}
	}

	return fields
}

func keyMetrics(observations domain.Bundle[domain.Observation]) []Metric {
	metrics := []Metric{}
	add := func(title, unit string, derive func(domain.Bundle[domain.Observation]) (string, bool)) {
		if value, ok := derive(observations); ok {
			metrics = append(metrics, Metric{Title: title, Value: value, Unit: unit})
		}
	}

	add("Blood Pressure", "mmHg", domain.BloodPressure)
	add("Heart Rate", "bpm", domain.HeartRate)
	add("Body Mass Index", "kg/m²", domain.BodyMassIndex)
	add("Cholesterol", "mmol/L", domain.Cholesterol)

	return metrics
}

func observationSection(observations domain.Bundle[domain.Observation]) ObservationSection {
	groups := domain.GroupObservations(observations)
	section := ObservationSection{
		Total:         len(observations.Entry),
		VitalSigns:    []ObservationRow{},
		Laboratory:    []ObservationRow{},
		Uncategorized: groups.Uncategorized,
	}

	for _, observation := range groups.VitalSigns {
		section.VitalSigns = append(section.VitalSigns, observationRow(observation, false))
	}
	for _, observation := range groups.Laboratory {
		section.Laboratory = append(section.Laboratory, observationRow(observation, true))
	}

	return section
}

func observationRow(observation domain.Observation, withInterpretation bool) ObservationRow {
	value := domain.FormatValue(observation)
	row := ObservationRow{
		ID:    observation.ID,
		Name:  domain.ObservationName(observation),
		Value: value.Value,
		Unit:  value.Unit,
	}
	if observation.EffectiveDateTime != "" {
		row.Date = domain.FormatDate(observation.EffectiveDateTime)
	}
	if withInterpretation {
		row.Interpretation = domain.ObservationInterpretation(observation)
	}
	return row
}

type ConditionItem struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Onset    string `json:"onset,omitempty"`
	Recorded string `json:"recorded,omitempty"`
}

type ImmunizationItem struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Dose   string `json:"dose,omitempty"`
	Status string `json:"status"`
}

type ProcedureItem struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Date   string `json:"date,omitempty"`
	Reason string `json:"reason,omitempty"`
	Status string `json:"status"`
}

type CarePlanActivityItem struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CarePlanItem struct {
	ID         string                 `json:"id,omitempty"`
	Title      string                 `json:"title"`
	Created    string                 `json:"created,omitempty"`
	Status     string                 `json:"status"`
	Activities []CarePlanActivityItem `json:"activities,omitempty"`
}

// Section is one titled list of the details view. Message is set when the list is empty.
type Section[T any] struct {
	Title   string `json:"title"`
	Items   []T    `json:"items"`
	Message string `json:"message,omitempty"`
}

func newSection[T any](title, kind string, items []T) Section[T] {
	section := Section[T]{Title: title, Items: items}
	if len(items) == 0 {
		section.Items = []T{}
		section.Message = emptyMessage(kind)
	}
	return section
}

func emptyMessage(kind string) string {
	return fmt.Sprintf("No %s found.", kind)
}

type Details struct {
	Title         string                    `json:"title"`
	Conditions    Section[ConditionItem]    `json:"conditions"`
	Immunizations Section[ImmunizationItem] `json:"immunizations"`
	Procedures    Section[ProcedureItem]    `json:"procedures"`
	CarePlans     Section[CarePlanItem]     `json:"carePlans"`
	Observations  ObservationSection        `json:"observations"`

	// ObservationsMessage is set when the patient has no observations at all.
	ObservationsMessage string `json:"observationsMessage,omitempty"`
}

func BuildDetails(bundle domain.ClinicalBundle) Details {
	details := Details{
		Title:         DetailsTitle,
		Conditions:    newSection("Conditions", "conditions", conditionItems(bundle.Conditions)),
		Immunizations: newSection("Immunizations", "immunizations", immunizationItems(bundle.Immunizations)),
		Procedures:    newSection("Procedures", "procedures", procedureItems(bundle.Procedures)),
		CarePlans:     newSection("Care Plans", "care plans", carePlanItems(bundle.CarePlans)),
		Observations:  observationSection(bundle.Observations),
	}
	if details.Observations.Empty() {
		details.ObservationsMessage = emptyMessage("observations")
	}

	return details
}

func conditionItems(conditions domain.Bundle[domain.Condition]) []ConditionItem {
	items := make([]ConditionItem, 0, len(conditions.Entry))
	for _, condition := range conditions.Resources() {
		item := ConditionItem{
			ID:     condition.ID,
			Name:   domain.ConditionName(condition),
			Status: domain.ConditionStatus(condition),
		}
		if onset := domain.ConditionOnset(condition); onset != "" {
			item.Onset = domain.FormatDate(onset)
		}
		if condition.RecordedDate != "" {
			item.Recorded = domain.FormatDate(condition.RecordedDate)
		}
		items = append(items, item)
	}
	return items
}

func immunizationItems(immunizations domain.Bundle[domain.Immunization]) []ImmunizationItem {
	items := make([]ImmunizationItem, 0, len(immunizations.Entry))
	for _, immunization := range immunizations.Resources() {
		items = append(items, ImmunizationItem{
			ID:     immunization.ID,
			Name:   domain.VaccineName(immunization),
			Date:   domain.FormatDate(immunization.OccurrenceDateTime),
			Dose:   domain.ImmunizationDose(immunization),
			Status: CompletedStatus,
		})
	}
	return items
}

func procedureItems(procedures domain.Bundle[domain.Procedure]) []ProcedureItem {
	items := make([]ProcedureItem, 0, len(procedures.Entry))
	for _, procedure := range procedures.Resources() {
		item := ProcedureItem{
			ID:     procedure.ID,
			Name:   domain.ProcedureName(procedure),
			Reason: domain.ProcedureReason(procedure),
			Status: CompletedStatus,
		}
		if procedure.PerformedDateTime != "" {
			item.Date = domain.FormatDate(procedure.PerformedDateTime)
		}
		items = append(items, item)
	}
	return items
}

func carePlanItems(plans domain.Bundle[domain.CarePlan]) []CarePlanItem {
	items := make([]CarePlanItem, 0, len(plans.Entry))
	for _, plan := range plans.Resources() {
		item := CarePlanItem{
			ID:     plan.ID,
			Title:  domain.CarePlanTitle(plan),
			Status: domain.CarePlanStatus(plan),
		}
		if created := domain.CarePlanCreated(plan); created != "" {
			item.Created = domain.FormatDate(created)
		}
		for _, activity := range plan.Activity {
			activityItem := CarePlanActivityItem{Name: domain.CarePlanActivityName(activity)}
			if activity.Detail != nil {
				activityItem.Description = activity.Detail.Description
			}
			item.Activities = append(item.Activities, activityItem)
		}
		items = append(items, item)
	}
	return items
}
