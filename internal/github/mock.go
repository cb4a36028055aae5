package github

import (
	"context"
	"errors"
	"sync"

	"issuedeck/internal/domain"
	"issuedeck/internal/graph"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("github.MockClient: method not implemented")

// MockClient is a test double for the GitHub client interface.
type MockClient struct {
	FetchIssuesFn func(context.Context, RepositoryPath, string) (graph.QueryResponse, error)
	AddStarFn     func(context.Context, string) (graph.StarResult, error)
	RemoveStarFn  func(context.Context, string) (graph.StarResult, error)
	AddReactionFn func(context.Context, string, domain.ReactionContent) (graph.ReactionResult, error)

	mu               sync.Mutex
	FetchIssuesCalls []FetchIssuesCallArg
	AddStarCalls     []string
	RemoveStarCalls  []string
	AddReactionCalls []AddReactionCallArg
}

// FetchIssuesCallArg captures arguments passed to FetchIssues.
type FetchIssuesCallArg struct {
	Path  RepositoryPath
	After string
}

// AddReactionCallArg captures arguments passed to AddReaction.
type AddReactionCallArg struct {
	SubjectID string
	Content   domain.ReactionContent
}

// NewMockClient returns a MockClient with zeroed handlers.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// FetchIssues invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) FetchIssues(ctx context.Context, path RepositoryPath, after string) (graph.QueryResponse, error) {
	m.mu.Lock()
	m.FetchIssuesCalls = append(m.FetchIssuesCalls, FetchIssuesCallArg{Path: path, After: after})
	m.mu.Unlock()

	if m.FetchIssuesFn == nil {
		return graph.QueryResponse{}, ErrMockNotImplemented
	}
	return m.FetchIssuesFn(ctx, path, after)
}

// AddStar invokes the configured stub or echoes a starred result.
func (m *MockClient) AddStar(ctx context.Context, starrableID string) (graph.StarResult, error) {
	m.mu.Lock()
	m.AddStarCalls = append(m.AddStarCalls, starrableID)
	m.mu.Unlock()

	if m.AddStarFn == nil {
		return graph.StarResult{ViewerHasStarred: true}, nil
	}
	return m.AddStarFn(ctx, starrableID)
}

// RemoveStar invokes the configured stub or echoes an unstarred result.
func (m *MockClient) RemoveStar(ctx context.Context, starrableID string) (graph.StarResult, error) {
	m.mu.Lock()
	m.RemoveStarCalls = append(m.RemoveStarCalls, starrableID)
	m.mu.Unlock()

	if m.RemoveStarFn == nil {
		return graph.StarResult{ViewerHasStarred: false}, nil
	}
	return m.RemoveStarFn(ctx, starrableID)
}

// AddReaction invokes the configured stub or echoes the requested reaction.
func (m *MockClient) AddReaction(ctx context.Context, subjectID string, content domain.ReactionContent) (graph.ReactionResult, error) {
	m.mu.Lock()
	m.AddReactionCalls = append(m.AddReactionCalls, AddReactionCallArg{SubjectID: subjectID, Content: content})
	m.mu.Unlock()

	if m.AddReactionFn == nil {
		return graph.ReactionResult{SubjectID: subjectID, Content: content}, nil
	}
	return m.AddReactionFn(ctx, subjectID, content)
}

// FetchCount returns how many times FetchIssues was called.
func (m *MockClient) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FetchIssuesCalls)
}
