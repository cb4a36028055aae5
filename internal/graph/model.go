// Package graph holds the cached view of the queried GitHub graph
// (organization → repository → issues → reactions) and the pure reconcilers
// that fold query pages and mutation results into it.
//
// Every value here is treated as immutable. Updates go through the With*
// constructors, which copy the receiver and share untouched subtrees.
package graph

import "issuedeck/internal/domain"

// Snapshot is the full locally cached view at a point in time.
type Snapshot struct {
	Organization *Organization  `json:"organization"`
	Errors       []ErrorMessage `json:"errors,omitempty"`
}

// Organization owns the single repository selected by the query.
type Organization struct {
	Name       string      `json:"name"`
	URL        string      `json:"url"`
	Repository *Repository `json:"repository"`
}

// Stargazers carries the star counter of a repository.
type Stargazers struct {
	TotalCount int `json:"totalCount"`
}

// Repository is the starrable node whose issues are paginated.
type Repository struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	URL              string          `json:"url"`
	ViewerHasStarred bool            `json:"viewerHasStarred"`
	Stargazers       Stargazers      `json:"stargazers"`
	Issues           IssueConnection `json:"issues"`
}

// PageInfo describes where the next page of a connection starts.
// EndCursor is empty when the server returned no cursor.
type PageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

// IssueConnection is the paginated issue list. Edge order is server order.
type IssueConnection struct {
	Edges      []IssueEdge `json:"edges"`
	TotalCount int         `json:"totalCount"`
	PageInfo   PageInfo    `json:"pageInfo"`
}

// IssueEdge wraps one issue plus its pagination cursor.
type IssueEdge struct {
	Cursor string `json:"cursor"`
	Node   *Issue `json:"node"`
}

// Issue is an open issue with its most recent reactions.
type Issue struct {
	ID        string             `json:"id"`
	Number    int                `json:"number"`
	Title     string             `json:"title"`
	URL       string             `json:"url"`
	Body      string             `json:"body"`
	Reactions ReactionConnection `json:"reactions"`
}

// ReactionConnection lists reactions on an issue, oldest first.
type ReactionConnection struct {
	Edges      []ReactionEdge `json:"edges"`
	TotalCount int            `json:"totalCount"`
}

// ReactionEdge wraps one reaction.
type ReactionEdge struct {
	Node Reaction `json:"node"`
}

// Reaction is a single emoji reaction.
type Reaction struct {
	ID      string                 `json:"id"`
	Content domain.ReactionContent `json:"content"`
}

// WithRepository returns a copy of o pointing at repo.
func (o Organization) WithRepository(repo *Repository) *Organization {
	o.Repository = repo
	return &o
}

// WithIssues returns a copy of r with its issue connection replaced.
func (r Repository) WithIssues(issues IssueConnection) *Repository {
	r.Issues = issues
	return &r
}

// WithStar returns a copy of r with the starred flag and counter replaced.
func (r Repository) WithStar(starred bool, count int) *Repository {
	r.ViewerHasStarred = starred
	r.Stargazers = Stargazers{TotalCount: count}
	return &r
}

// WithEdges returns a copy of c with its edges replaced.
func (c IssueConnection) WithEdges(edges []IssueEdge) IssueConnection {
	c.Edges = edges
	return c
}

// WithNode returns a copy of e wrapping issue.
func (e IssueEdge) WithNode(issue *Issue) IssueEdge {
	e.Node = issue
	return e
}

// WithReactions returns a copy of i with its reaction connection replaced.
func (i Issue) WithReactions(reactions ReactionConnection) *Issue {
	i.Reactions = reactions
	return &i
}

// Appended returns a new connection with edge added at the tail.
// The receiver's backing array is never written to.
func (c ReactionConnection) Appended(edge ReactionEdge) ReactionConnection {
	edges := make([]ReactionEdge, len(c.Edges), len(c.Edges)+1)
	copy(edges, c.Edges)
	return ReactionConnection{
		Edges:      append(edges, edge),
		TotalCount: c.TotalCount + 1,
	}
}

// Repository returns the cached repository, or nil before anything loaded.
func (s Snapshot) Repository() *Repository {
	if s.Organization == nil {
		return nil
	}
	return s.Organization.Repository
}

// HasErrors reports whether the last response carried GraphQL errors.
func (s Snapshot) HasErrors() bool {
	return len(s.Errors) > 0
}

// NextCursor returns the cursor to request the following page, if any.
func (s Snapshot) NextCursor() (string, bool) {
	repo := s.Repository()
	if repo == nil || !repo.Issues.PageInfo.HasNextPage || repo.Issues.PageInfo.EndCursor == "" {
		return "", false
	}
	return repo.Issues.PageInfo.EndCursor, true
}

// FindIssue returns the cached issue with the given id.
func (s Snapshot) FindIssue(id string) (*Issue, bool) {
	repo := s.Repository()
	if repo == nil {
		return nil, false
	}
	for _, edge := range repo.Issues.Edges {
		if edge.Node != nil && edge.Node.ID == id {
			return edge.Node, true
		}
	}
	return nil, false
}

// withRepository swaps the repository under the current organization.
func (s Snapshot) withRepository(repo *Repository) Snapshot {
	s.Organization = s.Organization.WithRepository(repo)
	return s
}
