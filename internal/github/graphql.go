package github

import (
	"context"
	"net/http"
	"strings"
	"time"

	"issuedeck/internal/debug"
	"issuedeck/internal/domain"
	appErrors "issuedeck/internal/errors"
	"issuedeck/internal/graph"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

const (
	// DefaultEndpoint is the public GitHub GraphQL endpoint.
	DefaultEndpoint      = "https://api.github.com/graphql"
	defaultPageSize      = 5
	defaultReactionCount = 3
	maxPageSize          = 100
	defaultHTTPTimeout   = 30 * time.Second
)

var log = debug.For("github")

// graphQLClient implements Client on top of githubv4.
type graphQLClient struct {
	endpoint      string
	token         string
	httpClient    *http.Client
	pageSize      int
	reactionCount int

	api *githubv4.Client
}

// Option configures the GraphQL client.
type Option func(*graphQLClient)

// WithEndpoint points the client at a GitHub Enterprise or test server.
func WithEndpoint(endpoint string) Option {
	return func(c *graphQLClient) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			c.endpoint = trimmed
		}
	}
}

// WithToken sets the personal access token sent as a bearer token.
func WithToken(token string) Option {
	return func(c *graphQLClient) {
		c.token = strings.TrimSpace(token)
	}
}

// WithHTTPClient overrides the transport. The token, if any, is ignored
// in favour of whatever authentication the given client performs.
func WithHTTPClient(client *http.Client) Option {
	return func(c *graphQLClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithPageSize sets how many issues one page requests (1-100).
func WithPageSize(n int) Option {
	return func(c *graphQLClient) {
		c.pageSize = clampCount(n, defaultPageSize)
	}
}

// WithReactionCount sets how many of the latest reactions to load per issue.
func WithReactionCount(n int) Option {
	return func(c *graphQLClient) {
		c.reactionCount = clampCount(n, defaultReactionCount)
	}
}

// NewClient constructs a GraphQL-backed Client.
func NewClient(opts ...Option) Client {
	c := &graphQLClient{
		endpoint:      DefaultEndpoint,
		pageSize:      defaultPageSize,
		reactionCount: defaultReactionCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = newHTTPClient(c.token)
	}
	c.httpClient = wrapHTTPClient(c.httpClient)
	c.api = githubv4.NewEnterpriseClient(c.endpoint, c.httpClient)
	return c
}

func newHTTPClient(token string) *http.Client {
	if token == "" {
		return &http.Client{Timeout: defaultHTTPTimeout}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := oauth2.NewClient(context.Background(), src)
	client.Timeout = defaultHTTPTimeout
	return client
}

func (c *graphQLClient) FetchIssues(ctx context.Context, path RepositoryPath, after string) (graph.QueryResponse, error) {
	if path.IsZero() {
		return graph.QueryResponse{}, appErrors.New(appErrors.CodeInvalidPath, "repository path is required", nil)
	}
	var cursor *githubv4.String
	if after != "" {
		cursor = githubv4.NewString(githubv4.String(after))
	}
	vars := map[string]any{
		"organization":  githubv4.String(path.Organization),
		"repository":    githubv4.String(path.Repository),
		"pageSize":      githubv4.Int(c.pageSize),
		"cursor":        cursor,
		"reactionCount": githubv4.Int(c.reactionCount),
	}

	ctx, capture := withErrorCapture(ctx)
	start := time.Now()
	var q issuesQuery
	err := c.api.Query(ctx, &q, vars)
	log.Event("query issues", "path", path, "after", after, "elapsed", time.Since(start).Round(time.Millisecond), "err", err)
	if err != nil {
		classified := classifyError("query issues", err)
		if !isGraphQLError(classified) {
			return graph.QueryResponse{}, classified
		}
		errs := capture.errors
		if len(errs) == 0 {
			errs = []graph.ErrorMessage{{Message: err.Error()}}
		}
		// GraphQL allows partial success: keep whatever data decoded.
		return graph.QueryResponse{
			Organization: toOrganization(q),
			Errors:       errs,
		}, nil
	}
	return graph.QueryResponse{Organization: toOrganization(q)}, nil
}

func (c *graphQLClient) AddStar(ctx context.Context, starrableID string) (graph.StarResult, error) {
	if strings.TrimSpace(starrableID) == "" {
		return graph.StarResult{}, appErrors.New(appErrors.CodeInvalidArgument, "starrable id is required for addStar", nil)
	}
	var m addStarMutation
	input := githubv4.AddStarInput{StarrableID: githubv4.ID(starrableID)}
	if err := c.api.Mutate(ctx, &m, input, nil); err != nil {
		log.Event("add star failed", "id", starrableID, "err", err)
		return graph.StarResult{}, classifyError("add star", err)
	}
	log.Event("add star", "id", starrableID, "starred", m.AddStar.Starrable.ViewerHasStarred)
	return graph.StarResult{ViewerHasStarred: bool(m.AddStar.Starrable.ViewerHasStarred)}, nil
}

func (c *graphQLClient) RemoveStar(ctx context.Context, starrableID string) (graph.StarResult, error) {
	if strings.TrimSpace(starrableID) == "" {
		return graph.StarResult{}, appErrors.New(appErrors.CodeInvalidArgument, "starrable id is required for removeStar", nil)
	}
	var m removeStarMutation
	input := githubv4.RemoveStarInput{StarrableID: githubv4.ID(starrableID)}
	if err := c.api.Mutate(ctx, &m, input, nil); err != nil {
		log.Event("remove star failed", "id", starrableID, "err", err)
		return graph.StarResult{}, classifyError("remove star", err)
	}
	log.Event("remove star", "id", starrableID, "starred", m.RemoveStar.Starrable.ViewerHasStarred)
	return graph.StarResult{ViewerHasStarred: bool(m.RemoveStar.Starrable.ViewerHasStarred)}, nil
}

func (c *graphQLClient) AddReaction(ctx context.Context, subjectID string, content domain.ReactionContent) (graph.ReactionResult, error) {
	if strings.TrimSpace(subjectID) == "" {
		return graph.ReactionResult{}, appErrors.New(appErrors.CodeInvalidArgument, "subject id is required for addReaction", nil)
	}
	if err := content.Validate(); err != nil {
		return graph.ReactionResult{}, err
	}
	var m addReactionMutation
	input := githubv4.AddReactionInput{
		SubjectID: githubv4.ID(subjectID),
		Content:   githubv4.ReactionContent(content),
	}
	if err := c.api.Mutate(ctx, &m, input, nil); err != nil {
		log.Event("add reaction failed", "subject", subjectID, "content", content, "err", err)
		return graph.ReactionResult{}, classifyError("add reaction", err)
	}
	result := graph.ReactionResult{
		SubjectID:  idString(m.AddReaction.Subject.ID),
		ReactionID: idString(m.AddReaction.Reaction.ID),
		Content:    domain.ReactionContent(m.AddReaction.Reaction.Content),
	}
	if result.SubjectID == "" {
		result.SubjectID = subjectID
	}
	if result.Content == domain.ReactionUnknown {
		result.Content = content
	}
	log.Event("add reaction", "subject", result.SubjectID, "content", result.Content, "reaction", result.ReactionID)
	return result, nil
}

func clampCount(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
