package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// errorEnvelope matches the backend error payloads. Details is decoded
// lazily because only validation errors carry a field map.
type errorEnvelope struct {
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func (e errorEnvelope) text() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return e.Error
}

func (e errorEnvelope) fieldErrors() map[string]string {
	if len(e.Details) == 0 {
		return nil
	}
	out := map[string]string{}
	if err := json.Unmarshal(e.Details, &out); err != nil {
		return nil
	}
	return out
}

// doJSON performs one request. No retries: every call is at-most-once
// from the caller's perspective.
func doJSON(ctx context.Context, hc *http.Client, method, url, token string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return TransportError{Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return TransportError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ServerError{Status: resp.StatusCode, Message: "invalid response body"}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var env errorEnvelope
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	_ = json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NotFoundError{Message: env.text()}
	case resp.StatusCode == http.StatusBadRequest && env.Code == "validation_error":
		return ValidationError{FieldErrors: env.fieldErrors()}
	default:
		return ServerError{Status: resp.StatusCode, Message: env.text()}
	}
}
