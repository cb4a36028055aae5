package graph

import "issuedeck/internal/domain"

// Stats summarises a snapshot for headers and the exit summary.
type Stats struct {
	IssuesLoaded    int
	IssuesTotal     int
	ReactionsLoaded int
	Stars           int
	Starred         bool
	HasMore         bool
}

// Stats computes counts over the cached repository.
func (s Snapshot) Stats() Stats {
	repo := s.Repository()
	if repo == nil {
		return Stats{}
	}
	stats := Stats{
		IssuesLoaded: len(repo.Issues.Edges),
		IssuesTotal:  repo.Issues.TotalCount,
		Stars:        repo.Stargazers.TotalCount,
		Starred:      repo.ViewerHasStarred,
		HasMore:      repo.Issues.PageInfo.HasNextPage,
	}
	for _, edge := range repo.Issues.Edges {
		if edge.Node != nil {
			stats.ReactionsLoaded += len(edge.Node.Reactions.Edges)
		}
	}
	return stats
}

// ReactionTally counts the loaded reactions on an issue per content,
// in display order. Contents with no reactions are omitted.
func (i Issue) ReactionTally() []ReactionCount {
	counts := map[domain.ReactionContent]int{}
	var unknown []domain.ReactionContent
	for _, edge := range i.Reactions.Edges {
		content := edge.Node.Content
		if counts[content] == 0 && !content.IsKnown() {
			unknown = append(unknown, content)
		}
		counts[content]++
	}
	tally := make([]ReactionCount, 0, len(counts))
	for _, content := range domain.AllReactions() {
		if n := counts[content]; n > 0 {
			tally = append(tally, ReactionCount{Content: content, Count: n})
		}
	}
	for _, content := range unknown {
		tally = append(tally, ReactionCount{Content: content, Count: counts[content]})
	}
	return tally
}

// ReactionCount pairs a reaction kind with how often it was loaded.
type ReactionCount struct {
	Content domain.ReactionContent
	Count   int
}
