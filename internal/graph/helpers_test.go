package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"issuedeck/internal/domain"
)

func testIssue(id string, reactions ...domain.ReactionContent) *Issue {
	issue := &Issue{
		ID:    id,
		Title: "Issue " + id,
		URL:   "https://github.com/acme/widgets/issues/" + id,
	}
	for i, content := range reactions {
		issue.Reactions.Edges = append(issue.Reactions.Edges, ReactionEdge{
			Node: Reaction{ID: fmt.Sprintf("%s-r%d", id, i+1), Content: content},
		})
	}
	issue.Reactions.TotalCount = len(reactions)
	return issue
}

func testEdges(ids ...string) []IssueEdge {
	edges := make([]IssueEdge, len(ids))
	for i, id := range ids {
		edges[i] = IssueEdge{Cursor: "c-" + id, Node: testIssue(id)}
	}
	return edges
}

func testSnapshot(stars int, starred bool, edges []IssueEdge) Snapshot {
	return Snapshot{
		Organization: &Organization{
			Name: "Acme",
			URL:  "https://github.com/acme",
			Repository: &Repository{
				ID:               "R_widgets",
				Name:             "widgets",
				URL:              "https://github.com/acme/widgets",
				ViewerHasStarred: starred,
				Stargazers:       Stargazers{TotalCount: stars},
				Issues: IssueConnection{
					Edges:      edges,
					TotalCount: 10,
					PageInfo:   PageInfo{EndCursor: "end-1", HasNextPage: true},
				},
			},
		},
	}
}

func testPage(stars int, hasNext bool, cursor string, ids ...string) QueryResponse {
	snap := testSnapshot(stars, false, testEdges(ids...))
	snap.Organization.Repository.Issues.PageInfo = PageInfo{EndCursor: cursor, HasNextPage: hasNext}
	return QueryResponse{Organization: snap.Organization}
}

func edgeIDs(edges []IssueEdge) []string {
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.Node.ID
	}
	return ids
}

// loadFixturePage decodes a GitHub GraphQL response envelope from testdata.
func loadFixturePage(t *testing.T, file string) QueryResponse {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", file))
	if err != nil {
		t.Fatalf("read fixture %s: %v", file, err)
	}
	var envelope struct {
		Data struct {
			Organization *Organization `json:"organization"`
		} `json:"data"`
		Errors []ErrorMessage `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("decode fixture %s: %v", file, err)
	}
	return QueryResponse{Organization: envelope.Data.Organization, Errors: envelope.Errors}
}
