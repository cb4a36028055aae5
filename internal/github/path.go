package github

import (
	"fmt"
	"strings"

	appErrors "issuedeck/internal/errors"
)

// RepositoryPath identifies a repository as "organization/repository".
type RepositoryPath struct {
	Organization string
	Repository   string
}

// ParseRepositoryPath accepts "org/repo", optionally prefixed with the
// github.com URL or suffixed with a slash.
func ParseRepositoryPath(raw string) (RepositoryPath, error) {
	trimmed := strings.TrimSpace(raw)
	for _, prefix := range []string{"https://github.com/", "http://github.com/", "github.com/"} {
		trimmed = strings.TrimPrefix(trimmed, prefix)
	}
	trimmed = strings.TrimSuffix(strings.TrimSuffix(trimmed, "/"), ".git")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return RepositoryPath{}, appErrors.New(appErrors.CodeInvalidPath,
			fmt.Sprintf("expected organization/repository, got %q", raw), nil)
	}
	return RepositoryPath{Organization: parts[0], Repository: parts[1]}, nil
}

func (p RepositoryPath) String() string {
	if p.Organization == "" && p.Repository == "" {
		return ""
	}
	return p.Organization + "/" + p.Repository
}

// IsZero reports whether the path is unset.
func (p RepositoryPath) IsZero() bool {
	return p.Organization == "" && p.Repository == ""
}
