package github

import (
	"fmt"

	"issuedeck/internal/domain"
	"issuedeck/internal/graph"
)

// toOrganization converts a decoded query into the cached graph shape.
// It returns nil when the server resolved no organization.
func toOrganization(q issuesQuery) *graph.Organization {
	if q.Organization == nil {
		return nil
	}
	org := &graph.Organization{
		Name: string(q.Organization.Name),
		URL:  string(q.Organization.URL),
	}
	repo := q.Organization.Repository
	if repo == nil {
		return org
	}

	edges := make([]graph.IssueEdge, 0, len(repo.Issues.Edges))
	for _, edge := range repo.Issues.Edges {
		edges = append(edges, toIssueEdge(edge))
	}

	org.Repository = &graph.Repository{
		ID:               idString(repo.ID),
		Name:             string(repo.Name),
		URL:              string(repo.URL),
		ViewerHasStarred: bool(repo.ViewerHasStarred),
		Stargazers:       graph.Stargazers{TotalCount: int(repo.Stargazers.TotalCount)},
		Issues: graph.IssueConnection{
			Edges:      edges,
			TotalCount: int(repo.Issues.TotalCount),
			PageInfo: graph.PageInfo{
				EndCursor:   string(repo.Issues.PageInfo.EndCursor),
				HasNextPage: bool(repo.Issues.PageInfo.HasNextPage),
			},
		},
	}
	return org
}

func toIssueEdge(edge issueEdge) graph.IssueEdge {
	reactions := make([]graph.ReactionEdge, 0, len(edge.Node.Reactions.Edges))
	for _, r := range edge.Node.Reactions.Edges {
		reactions = append(reactions, graph.ReactionEdge{
			Node: graph.Reaction{
				ID:      idString(r.Node.ID),
				Content: domain.ReactionContent(r.Node.Content),
			},
		})
	}
	return graph.IssueEdge{
		Cursor: string(edge.Cursor),
		Node: &graph.Issue{
			ID:     idString(edge.Node.ID),
			Number: int(edge.Node.Number),
			Title:  string(edge.Node.Title),
			URL:    string(edge.Node.URL),
			Body:   string(edge.Node.Body),
			Reactions: graph.ReactionConnection{
				Edges:      reactions,
				TotalCount: int(edge.Node.Reactions.TotalCount),
			},
		},
	}
}

func idString(id any) string {
	if id == nil {
		return ""
	}
	if s, ok := id.(string); ok {
		return s
	}
	return fmt.Sprint(id)
}
