package graph

import "issuedeck/internal/domain"

// ErrorMessage is one entry of a GraphQL "errors" list.
type ErrorMessage struct {
	Message string   `json:"message"`
	Type    string   `json:"type,omitempty"`
	Path    []string `json:"path,omitempty"`
}

// QueryResponse is a decoded issues query page. The organization subtree
// holds only the issues returned by this request, not the merged history.
type QueryResponse struct {
	Organization *Organization  `json:"organization"`
	Errors       []ErrorMessage `json:"errors,omitempty"`
}

// StarResult is the payload of addStar/removeStar.
type StarResult struct {
	ViewerHasStarred bool `json:"viewerHasStarred"`
}

// ReactionResult is the payload of addReaction.
// ReactionID may be empty when the mutation did not select it.
type ReactionResult struct {
	SubjectID  string                 `json:"subjectId"`
	ReactionID string                 `json:"reactionId,omitempty"`
	Content    domain.ReactionContent `json:"content"`
}

// Direction selects which star mutation produced a StarResult.
type Direction int

const (
	Star Direction = iota + 1
	Unstar
)

func (d Direction) String() string {
	switch d {
	case Star:
		return "star"
	case Unstar:
		return "unstar"
	default:
		return "unknown"
	}
}

// Toggle returns the direction that flips the given starred state.
func Toggle(starred bool) Direction {
	if starred {
		return Unstar
	}
	return Star
}
