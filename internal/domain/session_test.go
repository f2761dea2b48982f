package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectoryEntryDisplayText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Albert Knudsen (250178-123X)", DirectoryEntry{ID: "eps-001", Name: "Albert Knudsen", Identifier: "250178-123X"}.DisplayText())
	assert.Equal(t, "eps-002", DirectoryEntry{ID: "eps-002", Identifier: "eps-002"}.DisplayText())
}

func TestNormalizeDirectoryEntryDefaultsIdentifier(t *testing.T) {
	t.Parallel()

	got := NormalizeDirectoryEntry(DirectoryEntry{ID: " eps-003 ", Name: " "})
	assert.Equal(t, DirectoryEntry{ID: "eps-003", Identifier: "eps-003"}, got)
}

func TestPatientDirectoryNeighbourWraps(t *testing.T) {
	t.Parallel()

	dir := PatientDirectory{Loaded: true, Entries: []DirectoryEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	next, ok := dir.Neighbour("c", 1)
	assert.True(t, ok)
	assert.Equal(t, PatientID("a"), next.ID)

	prev, ok := dir.Neighbour("a", -1)
	assert.True(t, ok)
	assert.Equal(t, PatientID("c"), prev.ID)

	first, ok := dir.Neighbour("zz", 1)
	assert.True(t, ok)
	assert.Equal(t, PatientID("a"), first.ID)

	_, ok = PatientDirectory{}.Neighbour("a", 1)
	assert.False(t, ok)
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Session{}.Validate())
	assert.ErrorContains(t, Session{LoggedIn: true}.Validate(), "session id is required")
	assert.ErrorContains(t, Session{LoggedIn: true, ID: "s"}.Validate(), "launch context is required")
	assert.ErrorContains(t, Session{LoggedIn: true, ID: "s", Launch: &LaunchContext{}}.Validate(), "active patient id is required")
	assert.NoError(t, Session{LoggedIn: true, ID: "s", Launch: &LaunchContext{PatientID: "p"}, ActivePatientID: "p"}.Validate())
}

func TestOrganizationLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Oulun yliopistollinen sairaala", OrganizationLabel("OYS"))
	assert.Equal(t, "Oulun yliopistollinen sairaala", OrganizationLabel("OuluHVA"))
	assert.Equal(t, "Helsinki University Hospital", OrganizationLabel("hus"))
	assert.Equal(t, "Tampere University Hospital", OrganizationLabel("TampereTAYS"))
	assert.Equal(t, "KYS", OrganizationLabel(" KYS "))
}
