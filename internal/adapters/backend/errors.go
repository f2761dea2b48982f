package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const maxErrorBodyBytes = 64 << 10

// StatusError is a non-2xx response. Detail carries the backend's "detail" message when present.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

func (e *StatusError) ErrorDetail() string {
	return e.Detail
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func decodeStatusError(resp *http.Response) *StatusError {
	statusErr := &StatusError{StatusCode: resp.StatusCode}

	var body errorBody
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&body); err != nil {
		return statusErr
	}
	statusErr.Detail = decodeDetail(body.Detail)
	return statusErr
}

// decodeDetail accepts both a plain string and a list of validation issues.
func decodeDetail(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(raw, &issues); err == nil {
		messages := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg == "" {
				continue
			}
			if field := issueField(issue.Loc); field != "" {
				messages = append(messages, field+": "+issue.Msg)
				continue
			}
			messages = append(messages, issue.Msg)
		}
		return strings.Join(messages, "; ")
	}

	return ""
}

func issueField(loc []any) string {
	if len(loc) == 0 {
		return ""
	}
	if field, ok := loc[len(loc)-1].(string); ok {
		return field
	}
	return ""
}
