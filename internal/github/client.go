// Package github fetches the issues graph and issues star/reaction
// mutations against the GitHub GraphQL API.
package github

import (
	"context"

	"issuedeck/internal/domain"
	"issuedeck/internal/graph"
)

// Client defines the round trips the UI needs. GraphQL errors returned
// alongside a query are reported in QueryResponse.Errors; only transport
// failures and failed mutations surface as Go errors.
type Client interface {
	FetchIssues(ctx context.Context, path RepositoryPath, after string) (graph.QueryResponse, error)
	AddStar(ctx context.Context, starrableID string) (graph.StarResult, error)
	RemoveStar(ctx context.Context, starrableID string) (graph.StarResult, error)
	AddReaction(ctx context.Context, subjectID string, content domain.ReactionContent) (graph.ReactionResult, error)
}
