package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/heihealth-cli/internal/domain"
)

const maxResponseBytes = 4 << 20

const (
	launchPath   = "/smart/launch"
	patientsPath = "/patients"
	fhirPath     = "/fhir/"
)

// Client talks to the HeiHealth backend. It implements both the launch and the clinical ports.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

type launchResponse struct {
	PatientID      string `json:"patientId"`
	Organization   string `json:"organization"`
	PractitionerID string `json:"practitionerId"`
	LaunchType     string `json:"launchType"`
}

type patientsResponse struct {
	Patients []json.RawMessage `json:"patients"`
}

func (c Client) Launch(ctx context.Context, patientID domain.PatientID, org string) (domain.LaunchContext, error) {
	query := url.Values{}
	query.Set("patient", string(patientID))
	query.Set("org", org)

	var payload launchResponse
	if err := c.getJSON(ctx, launchPath, query, &payload); err != nil {
		return domain.LaunchContext{}, fmt.Errorf("smart launch: %w", err)
	}

	return domain.LaunchContext{
		PatientID:      domain.PatientID(payload.PatientID),
		Organization:   payload.Organization,
		PractitionerID: payload.PractitionerID,
		LaunchType:     payload.LaunchType,
	}, nil
}

// ListPatients returns the directory. Entries may arrive as bare ids or as objects; both are
// normalised to DirectoryEntry here.
func (c Client) ListPatients(ctx context.Context) ([]domain.DirectoryEntry, error) {
	var payload patientsResponse
	if err := c.getJSON(ctx, patientsPath, nil, &payload); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}

	entries := make([]domain.DirectoryEntry, 0, len(payload.Patients))
	for _, raw := range payload.Patients {
		entry, ok := decodeDirectoryEntry(raw)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeDirectoryEntry(raw json.RawMessage) (domain.DirectoryEntry, bool) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		entry := domain.NormalizeDirectoryEntry(domain.DirectoryEntry{ID: domain.PatientID(id)})
		return entry, entry.ID != ""
	}

	var entry domain.DirectoryEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.DirectoryEntry{}, false
	}
	entry = domain.NormalizeDirectoryEntry(entry)
	return entry, entry.ID != ""
}

func (c Client) Patient(ctx context.Context, id domain.PatientID) (domain.Patient, error) {
	var patient domain.Patient
	if err := c.getJSON(ctx, fhirPath+"Patient/"+url.PathEscape(string(id)), nil, &patient); err != nil {
		return domain.Patient{}, fmt.Errorf("get patient: %w", err)
	}
	return patient, nil
}

func (c Client) Conditions(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Condition], error) {
	return search[domain.Condition](ctx, c, "Condition", id)
}

func (c Client) Observations(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Observation], error) {
	return search[domain.Observation](ctx, c, "Observation", id)
}

func (c Client) Immunizations(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Immunization], error) {
	return search[domain.Immunization](ctx, c, "Immunization", id)
}

func (c Client) Procedures(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.Procedure], error) {
	return search[domain.Procedure](ctx, c, "Procedure", id)
}

func (c Client) CarePlans(ctx context.Context, id domain.PatientID) (domain.Bundle[domain.CarePlan], error) {
	return search[domain.CarePlan](ctx, c, "CarePlan", id)
}

func search[T any](ctx context.Context, c Client, resourceType string, id domain.PatientID) (domain.Bundle[T], error) {
	query := url.Values{}
	query.Set("patient", string(id))

	var bundle domain.Bundle[T]
	if err := c.getJSON(ctx, fhirPath+resourceType, query, &bundle); err != nil {
		return domain.Bundle[T]{}, fmt.Errorf("search %s: %w", resourceType, err)
	}
	return bundle, nil
}

func (c Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	logger := c.logger().With(zap.String("path", path))
	started := time.Now()

	resp, err := c.httpClient().Do(req)
	if err != nil {
		logger.Debug("backend request failed", zap.Error(err))
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logger.Debug("backend response", zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeStatusError(resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *zap.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

// ValidateBaseURL reports whether baseURL is usable as the backend root.
func ValidateBaseURL(baseURL string) error {
	_, err := buildAPIURL(baseURL, "/")
	return err
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	parsed.Path = strings.TrimRight(parsed.Path, "/")
	endpoint, err := url.Parse(parsed.String() + path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
