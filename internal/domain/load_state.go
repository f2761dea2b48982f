package domain

type LoadPhase string

const (
	LoadIdle    LoadPhase = "idle"
	LoadLoading LoadPhase = "loading"
	LoadLoaded  LoadPhase = "loaded"
	LoadFailed  LoadPhase = "failed"
)

// LoadState tracks clinical data for the active patient. Bundle is set only in LoadLoaded and
// Message only in LoadFailed.
type LoadState struct {
	Phase     LoadPhase       `json:"phase"`
	PatientID PatientID       `json:"patientId,omitempty"`
	Bundle    *ClinicalBundle `json:"-"`
	Message   string          `json:"message,omitempty"`
}

func IdleState() LoadState {
	return LoadState{Phase: LoadIdle}
}

func LoadingState(id PatientID) LoadState {
	return LoadState{Phase: LoadLoading, PatientID: id}
}

func LoadedState(id PatientID, bundle ClinicalBundle) LoadState {
	return LoadState{Phase: LoadLoaded, PatientID: id, Bundle: &bundle}
}

func FailedState(id PatientID, message string) LoadState {
	return LoadState{Phase: LoadFailed, PatientID: id, Message: message}
}

func (s LoadState) IsIdle() bool {
	return s.Phase == "" || s.Phase == LoadIdle
}

// Current reports whether the state already covers id and needs no new load.
func (s LoadState) Current(id PatientID) bool {
	if s.PatientID != id {
		return false
	}
	return s.Phase == LoadLoading || s.Phase == LoadLoaded
}
