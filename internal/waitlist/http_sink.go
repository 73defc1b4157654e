package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIRequest is the JSON body accepted by the waitlist API.
type APIRequest struct {
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// APIResponse is the JSON body returned by the waitlist API.
type APIResponse struct {
	Status string `json:"status,omitempty"`
	ID     string `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// API status values.
const (
	StatusRegistered = "registered"
	StatusDuplicate  = "duplicate"
)

// HTTPSink records signups by posting them to the waitlist API.
type HTTPSink struct {
	Endpoint string
	Client   *http.Client
}

// Register posts the signup and maps the response onto the error taxonomy.
func (s HTTPSink) Register(ctx context.Context, signup Signup) error {
	endpoint := strings.TrimSpace(s.Endpoint)
	if endpoint == "" {
		return &SubmissionError{Err: errors.New("waitlist endpoint is required")}
	}
	payload, err := json.Marshal(APIRequest{Email: signup.Email, Source: signup.Source})
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &SubmissionError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return &SubmissionError{Err: fmt.Errorf("read response: %w", err)}
	}
	var decoded APIResponse
	_ = json.Unmarshal(body, &decoded)

	switch {
	case resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode == http.StatusOK && decoded.Status == StatusDuplicate:
		return &DuplicateError{Email: signup.Email}
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return &ValidationError{Email: signup.Email, Reason: decoded.Error}
	default:
		msg := strings.TrimSpace(decoded.Error)
		if msg == "" {
			msg = resp.Status
		}
		return &SubmissionError{Err: errors.New(msg)}
	}
}
