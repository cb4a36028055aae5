package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"issuedeck/internal/graph"
)

// githubv4 surfaces only the first GraphQL error message. The capturing
// transport keeps the full "errors" array of a response so the caller can
// report every entry with its type and path.

type errorCaptureKey struct{}

type errorCapture struct {
	errors []graph.ErrorMessage
}

// withErrorCapture returns a context whose requests record GraphQL errors
// into the returned capture.
func withErrorCapture(ctx context.Context) (context.Context, *errorCapture) {
	capture := &errorCapture{}
	return context.WithValue(ctx, errorCaptureKey{}, capture), capture
}

type capturingTransport struct {
	base http.RoundTripper
}

// wrapHTTPClient returns a copy of client whose transport captures GraphQL
// errors. The given client is not modified.
func wrapHTTPClient(client *http.Client) *http.Client {
	wrapped := *client
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped.Transport = &capturingTransport{base: base}
	return &wrapped
}

func (t *capturingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	capture, ok := req.Context().Value(errorCaptureKey{}).(*errorCapture)
	if err != nil || !ok || resp == nil || resp.Body == nil {
		return resp, err
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if readErr != nil {
		return resp, nil
	}
	capture.errors = decodeErrorList(body)
	return resp, nil
}

// decodeErrorList extracts the GraphQL "errors" array from a response body.
// Path segments may be field names or list indexes; both become strings.
func decodeErrorList(body []byte) []graph.ErrorMessage {
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Path    []any  `json:"path"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil
	}
	out := make([]graph.ErrorMessage, len(envelope.Errors))
	for i, e := range envelope.Errors {
		msg := graph.ErrorMessage{Message: e.Message, Type: e.Type}
		for _, segment := range e.Path {
			msg.Path = append(msg.Path, fmt.Sprint(segment))
		}
		out[i] = msg
	}
	return out
}
