package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	appErrors "issuedeck/internal/errors"
)

// statusPrefix is how githubv4 reports a non-200 HTTP response.
const statusPrefix = "non-200 OK status code:"

const maxErrorSnippetLen = 200

// classifyError maps a githubv4 error onto a structured error code.
// Anything that is not a transport or HTTP status failure is a GraphQL
// error list reported by the server.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}
	msg := truncate(err.Error())

	var urlErr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return appErrors.New(appErrors.CodeTransportFailed, fmt.Sprintf("%s: %s", op, msg), err)
	case errors.As(err, &urlErr):
		return appErrors.New(appErrors.CodeTransportFailed, fmt.Sprintf("%s: %s", op, msg), err)
	case strings.HasPrefix(msg, statusPrefix):
		status := strings.TrimSpace(strings.TrimPrefix(msg, statusPrefix))
		if strings.HasPrefix(status, "401") || strings.HasPrefix(status, "403") {
			return appErrors.New(appErrors.CodeUnauthorized, fmt.Sprintf("%s: GitHub rejected the token (%s)", op, firstField(status)), err)
		}
		return appErrors.New(appErrors.CodeTransportFailed, fmt.Sprintf("%s: %s", op, msg), err)
	case strings.Contains(msg, "invalid character") || strings.Contains(msg, "unexpected EOF"):
		return appErrors.New(appErrors.CodeTransportFailed, fmt.Sprintf("%s: malformed response: %s", op, msg), err)
	default:
		return appErrors.New(appErrors.CodeGraphQLFailed, fmt.Sprintf("%s: %s", op, msg), err)
	}
}

func isGraphQLError(err error) bool {
	return appErrors.IsCode(err, appErrors.CodeGraphQLFailed)
}

func firstField(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}

func truncate(s string) string {
	if len(s) <= maxErrorSnippetLen {
		return s
	}
	return s[:maxErrorSnippetLen] + "..."
}
