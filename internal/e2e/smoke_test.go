package e2e

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	server := newBackend(t)

	stdout, stderr, err := runHH(t, binaryPath, home, server.URL, "login", "--patient", "eps-001", "--org", "OYS")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "eps-001")
	assert.Contains(t, stdout, "eps-002")

	stdout, stderr, err = runHH(t, binaryPath, home, server.URL, "overview", "--json")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, `"title": "Patient Summary"`)
	assert.Contains(t, stdout, `"subtitle": "Aino Virtanen"`)

	stdout, stderr, err = runHH(t, binaryPath, home, server.URL, "logout")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Logged out")

	stdout, stderr, err = runHH(t, binaryPath, home, server.URL, "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Not logged in")
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()

	searchset := `{"resourceType":"Bundle","type":"searchset","entry":[]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/smart/launch":
			_, _ = w.Write([]byte(`{"patientId":"eps-001","organization":"OYS","practitionerId":"prac-001","launchType":"provider-ehr"}`))
		case r.URL.Path == "/patients":
			_, _ = w.Write([]byte(`{"patients":[{"id":"eps-001","name":"Aino Virtanen","identifier":"010185-123A"},{"id":"eps-002","name":"Mikko Korhonen","identifier":"020290-456B"}]}`))
		case strings.HasPrefix(r.URL.Path, "/fhir/Patient/"):
			_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"eps-001","name":[{"given":["Aino"],"family":"Virtanen"}]}`))
		case strings.HasPrefix(r.URL.Path, "/fhir/"):
			_, _ = w.Write([]byte(searchset))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "hh-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/hh")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build hh binary: %s", string(output))
	return binaryPath
}

func runHH(t *testing.T, binaryPath, home, baseURL string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "HH_API_BASE_URL="+baseURL)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
