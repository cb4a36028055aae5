package graph

import "fmt"

// MergeIssuePage folds a freshly fetched issues page into the previous snapshot.
//
// A fresh page (isContinuation false) replaces the organization verbatim. A
// continuation keeps every field of the new page but prefixes its issue edges
// with the previously cached ones. Errors on the page are copied through; when
// the page has errors and no organization, the previous organization is kept.
//
// Edges are not deduplicated. Callers must not request a cursor twice.
func MergeIssuePage(previous Snapshot, page QueryResponse, isContinuation bool) Snapshot {
	next := Snapshot{Errors: copyErrors(page.Errors)}

	if page.Organization == nil {
		if len(page.Errors) > 0 {
			next.Organization = previous.Organization
		}
		return next
	}

	next.Organization = page.Organization
	if !isContinuation {
		return next
	}

	prevRepo := previous.Repository()
	pageRepo := page.Organization.Repository
	if prevRepo == nil || pageRepo == nil {
		return next
	}
	// A page from a different repository cannot continue this one.
	if prevRepo.ID != "" && pageRepo.ID != "" && prevRepo.ID != pageRepo.ID {
		return next
	}

	edges := concatEdges(prevRepo.Issues.Edges, pageRepo.Issues.Edges)
	next.Organization = page.Organization.WithRepository(pageRepo.WithIssues(pageRepo.Issues.WithEdges(edges)))
	return next
}

// ApplyStarToggle applies an addStar/removeStar result.
//
// The starred flag is taken from the server; the counter is derived locally
// from the previous count since the mutation does not return it. The counter
// never drops below zero.
func ApplyStarToggle(previous Snapshot, result StarResult, direction Direction) (Snapshot, error) {
	repo := previous.Repository()
	if repo == nil {
		return previous, notLoadedError("star toggle")
	}

	count := repo.Stargazers.TotalCount
	switch direction {
	case Star:
		count++
	case Unstar:
		count--
	default:
		return previous, invalidDirectionError(direction)
	}
	if count < 0 {
		count = 0
	}

	return previous.withRepository(repo.WithStar(result.ViewerHasStarred, count)), nil
}

// ApplyReactionAdd appends the reaction from an addReaction result to the
// issue it targets. Only that issue is rebuilt; sibling edges keep their
// nodes. If the issue is not cached the previous snapshot is returned as is.
func ApplyReactionAdd(previous Snapshot, result ReactionResult) (Snapshot, error) {
	repo := previous.Repository()
	if repo == nil {
		return previous, notLoadedError("add reaction")
	}

	idx := -1
	for i, edge := range repo.Issues.Edges {
		if edge.Node != nil && edge.Node.ID == result.SubjectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return previous, nil
	}

	issue := repo.Issues.Edges[idx].Node
	reactionID := result.ReactionID
	if reactionID == "" {
		reactionID = localReactionID(result, len(issue.Reactions.Edges))
	}
	reactions := issue.Reactions.Appended(ReactionEdge{
		Node: Reaction{ID: reactionID, Content: result.Content},
	})

	edges := make([]IssueEdge, len(repo.Issues.Edges))
	copy(edges, repo.Issues.Edges)
	edges[idx] = edges[idx].WithNode(issue.WithReactions(reactions))

	return previous.withRepository(repo.WithIssues(repo.Issues.WithEdges(edges))), nil
}

// localReactionID scopes a placeholder id to the subject so that it cannot
// collide with edges on other issues.
func localReactionID(result ReactionResult, existing int) string {
	return fmt.Sprintf("%s:%s:%d", result.SubjectID, result.Content, existing+1)
}

func concatEdges(prev, next []IssueEdge) []IssueEdge {
	edges := make([]IssueEdge, 0, len(prev)+len(next))
	edges = append(edges, prev...)
	return append(edges, next...)
}

func copyErrors(errs []ErrorMessage) []ErrorMessage {
	if len(errs) == 0 {
		return nil
	}
	return append([]ErrorMessage(nil), errs...)
}
