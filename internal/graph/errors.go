package graph

import (
	"fmt"

	appErrors "issuedeck/internal/errors"
)

func notLoadedError(operation string) error {
	return appErrors.New(appErrors.CodeNotLoaded, fmt.Sprintf("%s: no repository loaded", operation), nil)
}

func invalidDirectionError(d Direction) error {
	return appErrors.New(appErrors.CodeInvalidArgument, fmt.Sprintf("star toggle: unsupported direction %d", int(d)), nil)
}
