package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	ResourceTypeBundle    = "Bundle"
	BundleTypeSearchset   = "searchset"
	NationalityExtension  = "http://hl7.org/fhir/StructureDefinition/patient-nationality"
	ContactSystemPhone    = "phone"
	ConditionStatusActive = "active"
)

// Number is a FHIR decimal. Payloads that are not numeric decode as absent instead of failing.
type Number struct {
	Value float64
	Valid bool
}

func NewNumber(v float64) Number {
	return Number{Value: v, Valid: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = NewNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = NewNumber(parsed)
		}
	}

	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Present mirrors the original viewer's truthiness check: absent and zero are both "no value".
func (n Number) Present() bool {
	return n.Valid && n.Value != 0
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

func (c *CodeableConcept) PrimaryCode() string {
	if c == nil || len(c.Coding) == 0 {
		return ""
	}
	return c.Coding[0].Code
}

func (c *CodeableConcept) PrimaryDisplay() string {
	if c == nil || len(c.Coding) == 0 {
		return ""
	}
	return c.Coding[0].Display
}

// Label returns text, then the first coding's display, then fallback.
func (c *CodeableConcept) Label(fallback string) string {
	if c == nil {
		return fallback
	}
	return firstNonEmpty(c.Text, c.PrimaryDisplay(), fallback)
}

func firstPrimaryCode(concepts []CodeableConcept) string {
	if len(concepts) == 0 {
		return ""
	}
	return concepts[0].PrimaryCode()
}

type Quantity struct {
	Value  Number `json:"value"`
	Unit   string `json:"unit,omitempty"`
	System string `json:"system,omitempty"`
	Code   string `json:"code,omitempty"`
}

type Identifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

type Address struct {
	Line       []string `json:"line,omitempty"`
	City       string   `json:"city,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Country    string   `json:"country,omitempty"`
}

type ContactPoint struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
	Use    string `json:"use,omitempty"`
}

type Extension struct {
	URL                  string           `json:"url"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty"`
	ValueString          string           `json:"valueString,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Patient struct {
	ResourceType string         `json:"resourceType"`
	ID           string         `json:"id"`
	Identifier   []Identifier   `json:"identifier,omitempty"`
	Name         []HumanName    `json:"name,omitempty"`
	Telecom      []ContactPoint `json:"telecom,omitempty"`
	Gender       string         `json:"gender,omitempty"`
	BirthDate    string         `json:"birthDate,omitempty"`
	Address      []Address      `json:"address,omitempty"`
	Extension    []Extension    `json:"extension,omitempty"`
}

type Condition struct {
	ResourceType   string           `json:"resourceType"`
	ID             string           `json:"id,omitempty"`
	ClinicalStatus *CodeableConcept `json:"clinicalStatus,omitempty"`
	Code           *CodeableConcept `json:"code,omitempty"`
	OnsetDateTime  string           `json:"onsetDateTime,omitempty"`
	OnsetPeriod    *Period          `json:"onsetPeriod,omitempty"`
	RecordedDate   string           `json:"recordedDate,omitempty"`
}

type ObservationComponent struct {
	Code          *CodeableConcept `json:"code,omitempty"`
	ValueQuantity *Quantity        `json:"valueQuantity,omitempty"`
}

type Observation struct {
	ResourceType      string                 `json:"resourceType"`
	ID                string                 `json:"id,omitempty"`
	Status            string                 `json:"status,omitempty"`
	Category          []CodeableConcept      `json:"category,omitempty"`
	Code              *CodeableConcept       `json:"code,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty"`
	Interpretation    []CodeableConcept      `json:"interpretation,omitempty"`
}

func (o Observation) CategoryCode() string {
	return firstPrimaryCode(o.Category)
}

type ProtocolApplied struct {
	DoseNumberPositiveInt Number          `json:"doseNumberPositiveInt"`
	DoseNumberString      string          `json:"doseNumberString,omitempty"`
	DoseNumber            json.RawMessage `json:"doseNumber,omitempty"`
}

// Dose returns the applied dose number using the R4 choice fields, then the legacy doseNumber.
func (p ProtocolApplied) Dose() string {
	if p.DoseNumberPositiveInt.Present() {
		return p.DoseNumberPositiveInt.String()
	}
	if s := strings.TrimSpace(p.DoseNumberString); s != "" {
		return s
	}

	raw := bytes.TrimSpace(p.DoseNumber)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n Number
	_ = n.UnmarshalJSON(raw)
	if n.Present() {
		return n.String()
	}
	return ""
}

type Immunization struct {
	ResourceType       string            `json:"resourceType"`
	ID                 string            `json:"id,omitempty"`
	Status             string            `json:"status,omitempty"`
	VaccineCode        *CodeableConcept  `json:"vaccineCode,omitempty"`
	OccurrenceDateTime string            `json:"occurrenceDateTime,omitempty"`
	ProtocolApplied    []ProtocolApplied `json:"protocolApplied,omitempty"`
}

type Procedure struct {
	ResourceType      string            `json:"resourceType"`
	ID                string            `json:"id,omitempty"`
	Status            string            `json:"status,omitempty"`
	Code              *CodeableConcept  `json:"code,omitempty"`
	PerformedDateTime string            `json:"performedDateTime,omitempty"`
	ReasonCode        []CodeableConcept `json:"reasonCode,omitempty"`
}

type CarePlanActivityDetail struct {
	Code        *CodeableConcept `json:"code,omitempty"`
	Description string           `json:"description,omitempty"`
}

type CarePlanActivity struct {
	Detail *CarePlanActivityDetail `json:"detail,omitempty"`
}

type CarePlan struct {
	ResourceType string             `json:"resourceType"`
	ID           string             `json:"id,omitempty"`
	Status       string             `json:"status,omitempty"`
	Category     []CodeableConcept  `json:"category,omitempty"`
	Created      string             `json:"created,omitempty"`
	Period       *Period            `json:"period,omitempty"`
	Activity     []CarePlanActivity `json:"activity,omitempty"`
}

type Bundle[T any] struct {
	ResourceType string           `json:"resourceType"`
	Type         string           `json:"type"`
	Total        *int             `json:"total,omitempty"`
	Entry        []BundleEntry[T] `json:"entry"`
}

type BundleEntry[T any] struct {
	FullURL  string `json:"fullUrl,omitempty"`
	Resource T      `json:"resource"`
}

func (b Bundle[T]) Resources() []T {
	resources := make([]T, 0, len(b.Entry))
	for _, entry := range b.Entry {
		resources = append(resources, entry.Resource)
	}
	return resources
}

func NewSearchset[T any](resources ...T) Bundle[T] {
	entries := make([]BundleEntry[T], 0, len(resources))
	for _, r := range resources {
		entries = append(entries, BundleEntry[T]{Resource: r})
	}
	return Bundle[T]{ResourceType: ResourceTypeBundle, Type: BundleTypeSearchset, Entry: entries}
}

// ClinicalBundle is the full per-patient snapshot. It only exists when all six fetches succeeded.
type ClinicalBundle struct {
	Patient       Patient
	Conditions    Bundle[Condition]
	Observations  Bundle[Observation]
	Immunizations Bundle[Immunization]
	Procedures    Bundle[Procedure]
	CarePlans     Bundle[CarePlan]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
