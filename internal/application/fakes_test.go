package application

import (
	"context"
	"sync"

	"github.com/bnema/heihealth-cli/internal/domain"
)

type fakeSource struct {
	mu          sync.Mutex
	bundles     map[domain.PatientID]domain.ClinicalBundle
	failures    map[string]error
	gates       map[domain.PatientID]chan struct{}
	ignoreGates map[string]bool
	honorCancel bool
	calls       map[domain.PatientID]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		bundles:     map[domain.PatientID]domain.ClinicalBundle{},
		failures:    map[string]error{},
		gates:       map[domain.PatientID]chan struct{}{},
		ignoreGates: map[string]bool{},
		honorCancel: true,
		calls:       map[domain.PatientID]int{},
	}
}

func (f *fakeSource) withPatient(bundle domain.ClinicalBundle) *fakeSource {
	f.bundles[domain.PatientID(bundle.Patient.ID)] = bundle
	return f
}

func (f *fakeSource) fail(resource string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[resource] = err
}

// hold blocks every fetch for id until the returned release func is called.
func (f *fakeSource) hold(id domain.PatientID) func() {
	gate := make(chan struct{})
	f.mu.Lock()
	f.gates[id] = gate
	f.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

func (f *fakeSource) callCount(id domain.PatientID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func (f *fakeSource) enter(ctx context.Context, id domain.PatientID, resource string) (domain.ClinicalBundle, error) {
	f.mu.Lock()
	f.calls[id]++
	failure := f.failures[resource]
	gate := f.gates[id]
	if f.ignoreGates[resource] {
		gate = nil
	}
	bundle := f.bundles[id]
	honorCancel := f.honorCancel
	f.mu.Unlock()

	if failure != nil {
		return domain.ClinicalBundle{}, failure
	}
	if gate != nil {
		if honorCancel {
			select {
			case <-gate:
			case <-ctx.Done():
				return domain.ClinicalBundle{}, ctx.Err()
			}
		} else {
			<-gate
		}
	}
	return bundle, nil
}

func (f *fakeSource) Patient(ctx context.Context, id domain.PatientID) (domain.Patient, error) {
	bundle, err := f.enter(ctx, id, ResourcePatient)
	return bundle.Patient, err
}

func (f *fakeSource) Conditions(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Condition], error) {
	bundle, err := f.enter(ctx, id, ResourceCondition)
	return bundle.Conditions, err
}

func (f *fakeSource) Observations(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Observation], error) {
	bundle, err := f.enter(ctx, id, ResourceObservation)
	return bundle.Observations, err
}

func (f *fakeSource) Immunizations(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Immunization], error) {
	bundle, err := f.enter(ctx, id, ResourceImmunization)
	return bundle.Immunizations, err
}

func (f *fakeSource) Procedures(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Procedure], error) {
	bundle, err := f.enter(ctx, id, ResourceProcedure)
	return bundle.Procedures, err
}

func (f *fakeSource) CarePlans(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.CarePlan], error) {
	bundle, err := f.enter(ctx, id, ResourceCarePlan)
	return bundle.CarePlans, err
}

func testBundle(id, given, family string) domain.ClinicalBundle {
	return domain.ClinicalBundle{
		Patient: domain.Patient{
			ResourceType: "Patient",
			ID:           id,
			Name:         []domain.HumanName{{Given: []string{given}, Family: family}},
			Gender:       "female",
			BirthDate:    "1985-03-14",
		},
		Conditions: domain.NewSearchset(domain.Condition{
			ResourceType:   "Condition",
			ID:             id + "-cond",
			ClinicalStatus: &domain.CodeableConcept{Coding: []domain.Coding{{Code: "active"}}},
			Code:           &domain.CodeableConcept{Text: "Hypertension"},
		}),
		Observations: domain.NewSearchset(domain.Observation{
			ResourceType:  "Observation",
			ID:            id + "-hr",
			Category:      []domain.CodeableConcept{{Coding: []domain.Coding{{Code: domain.CategoryVitalSigns}}}},
			Code:          &domain.CodeableConcept{Coding: []domain.Coding{{Code: domain.LOINCHeartRate, Display: "Heart rate"}}},
			ValueQuantity: &domain.Quantity{Value: domain.NewNumber(72), Unit: "bpm"},
		}),
		Immunizations: domain.NewSearchset[domain.Immunization](),
		Procedures:    domain.NewSearchset[domain.Procedure](),
		CarePlans:     domain.NewSearchset[domain.CarePlan](),
	}
}
