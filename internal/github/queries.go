package github

import "github.com/shurcooL/githubv4"

// issuesQuery mirrors the query the UI renders:
// organization → repository → open issues → latest reactions.
type issuesQuery struct {
	Organization *struct {
		Name       githubv4.String
		URL        githubv4.String
		Repository *struct {
			ID               githubv4.ID
			Name             githubv4.String
			URL              githubv4.String
			ViewerHasStarred githubv4.Boolean
			Stargazers       struct {
				TotalCount githubv4.Int
			}
			Issues struct {
				TotalCount githubv4.Int
				PageInfo   struct {
					EndCursor   githubv4.String
					HasNextPage githubv4.Boolean
				}
				Edges []issueEdge
			} `graphql:"issues(first: $pageSize, after: $cursor, states: [OPEN], orderBy: {field: CREATED_AT, direction: DESC})"`
		} `graphql:"repository(name: $repository)"`
	} `graphql:"organization(login: $organization)"`
}

type issueEdge struct {
	Cursor githubv4.String
	Node   struct {
		ID        githubv4.ID
		Number    githubv4.Int
		Title     githubv4.String
		URL       githubv4.String
		Body      githubv4.String
		Reactions struct {
			TotalCount githubv4.Int
			Edges      []struct {
				Node struct {
					ID      githubv4.ID
					Content githubv4.ReactionContent
				}
			}
		} `graphql:"reactions(last: $reactionCount)"`
	}
}

type addStarMutation struct {
	AddStar struct {
		Starrable struct {
			ViewerHasStarred githubv4.Boolean
		}
	} `graphql:"addStar(input: $input)"`
}

type removeStarMutation struct {
	RemoveStar struct {
		Starrable struct {
			ViewerHasStarred githubv4.Boolean
		}
	} `graphql:"removeStar(input: $input)"`
}

type addReactionMutation struct {
	AddReaction struct {
		Reaction struct {
			ID      githubv4.ID
			Content githubv4.ReactionContent
		}
		Subject struct {
			ID githubv4.ID
		}
	} `graphql:"addReaction(input: $input)"`
}
