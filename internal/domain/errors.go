package domain

import (
	"fmt"

	appErrors "issuedeck/internal/errors"
)

func invalidReactionError(raw string) error {
	return appErrors.New(appErrors.CodeInvalidReaction, fmt.Sprintf("invalid reaction content: %s", raw), nil)
}
