package domain

import "fmt"

const (
	LOINCBloodPressurePanel = "85354-9"
	LOINCSystolic           = "8480-6"
	LOINCDiastolic          = "8462-4"
	LOINCHeartRate          = "8867-4"
	LOINCBodyMassIndex      = "39156-5"
	LOINCCholesterol        = "2093-3"

	CategoryVitalSigns = "vital-signs"
	CategoryLaboratory = "laboratory"

	DefaultUnitBloodPressure = "mmHg"
	OverviewConditionLimit   = 3

	PlaceholderNotAvailable = "N/A"
	PlaceholderUnknown      = "Unknown"
)

func findObservation(observations Bundle[Observation], code string) (Observation, bool) {
	for _, entry := range observations.Entry {
		if entry.Resource.Code.PrimaryCode() == code {
			return entry.Resource, true
		}
	}
	return Observation{}, false
}

func findComponent(components []ObservationComponent, code string) (ObservationComponent, bool) {
	for _, component := range components {
		if component.Code.PrimaryCode() == code {
			return component, true
		}
	}
	return ObservationComponent{}, false
}

func componentValue(components []ObservationComponent, code string) Number {
	component, ok := findComponent(components, code)
	if !ok || component.ValueQuantity == nil {
		return Number{}
	}
	return component.ValueQuantity.Value
}

// BloodPressure returns "systolic/diastolic" from the first blood pressure panel, or false when
// either reading is missing.
func BloodPressure(observations Bundle[Observation]) (string, bool) {
	panel, ok := findObservation(observations, LOINCBloodPressurePanel)
	if !ok || len(panel.Component) == 0 {
		return "", false
	}

	systolic := componentValue(panel.Component, LOINCSystolic)
	diastolic := componentValue(panel.Component, LOINCDiastolic)
	if !systolic.Present() || !diastolic.Present() {
		return "", false
	}

	return fmt.Sprintf("%s/%s", systolic, diastolic), true
}

func scalarMetric(observations Bundle[Observation], code string) (string, bool) {
	observation, ok := findObservation(observations, code)
	if !ok || observation.ValueQuantity == nil || !observation.ValueQuantity.Value.Present() {
		return "", false
	}
	return observation.ValueQuantity.Value.String(), true
}

func HeartRate(observations Bundle[Observation]) (string, bool) {
	return scalarMetric(observations, LOINCHeartRate)
}

func BodyMassIndex(observations Bundle[Observation]) (string, bool) {
	return scalarMetric(observations, LOINCBodyMassIndex)
}

func Cholesterol(observations Bundle[Observation]) (string, bool) {
	return scalarMetric(observations, LOINCCholesterol)
}

func IsActiveCondition(condition Condition) bool {
	return condition.ClinicalStatus.PrimaryCode() == ConditionStatusActive
}

// ActiveConditions keeps entries with an active clinical status in their original order.
// A limit <= 0 keeps all of them.
func ActiveConditions(conditions Bundle[Condition], limit int) []Condition {
	active := make([]Condition, 0, len(conditions.Entry))
	for _, entry := range conditions.Entry {
		if !IsActiveCondition(entry.Resource) {
			continue
		}
		active = append(active, entry.Resource)
		if limit > 0 && len(active) == limit {
			break
		}
	}
	return active
}

type ObservationGroups struct {
	VitalSigns    []Observation
	Laboratory    []Observation
	Uncategorized int
}

// GroupObservations splits by first category code. Anything that is neither vital-signs nor
// laboratory is only counted.
func GroupObservations(observations Bundle[Observation]) ObservationGroups {
	var groups ObservationGroups
	for _, entry := range observations.Entry {
		switch entry.Resource.CategoryCode() {
		case CategoryVitalSigns:
			groups.VitalSigns = append(groups.VitalSigns, entry.Resource)
		case CategoryLaboratory:
			groups.Laboratory = append(groups.Laboratory, entry.Resource)
		default:
			groups.Uncategorized++
		}
	}
	return groups
}

type FormattedValue struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

func FormatValue(observation Observation) FormattedValue {
	if observation.ValueQuantity != nil {
		value := observation.ValueQuantity.Value.String()
		if value == "" {
			value = PlaceholderNotAvailable
		}
		return FormattedValue{Value: value, Unit: observation.ValueQuantity.Unit}
	}

	if len(observation.Component) > 0 {
		systolic, hasSystolic := findComponent(observation.Component, LOINCSystolic)
		diastolic, hasDiastolic := findComponent(observation.Component, LOINCDiastolic)
		if hasSystolic && hasDiastolic {
			unit := DefaultUnitBloodPressure
			if systolic.ValueQuantity != nil && systolic.ValueQuantity.Unit != "" {
				unit = systolic.ValueQuantity.Unit
			}
			return FormattedValue{
				Value: fmt.Sprintf("%s/%s", quantityValue(systolic.ValueQuantity), quantityValue(diastolic.ValueQuantity)),
				Unit:  unit,
			}
		}
	}

	return FormattedValue{Value: PlaceholderNotAvailable, Unit: ""}
}

func quantityValue(q *Quantity) string {
	if q == nil || !q.Value.Valid {
		return PlaceholderNotAvailable
	}
	return q.Value.String()
}
