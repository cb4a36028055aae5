package graph

import (
	"reflect"
	"testing"

	"issuedeck/internal/domain"
	appErrors "issuedeck/internal/errors"
)

func TestMergeIssuePageFreshReplaces(t *testing.T) {
	prev := testSnapshot(5, true, testEdges("I1", "I2"))
	page := testPage(6, false, "end-2", "I9")

	next := MergeIssuePage(prev, page, false)

	if next.Organization != page.Organization {
		t.Fatalf("expected fresh page organization to be used verbatim")
	}
	if got := edgeIDs(next.Repository().Issues.Edges); !reflect.DeepEqual(got, []string{"I9"}) {
		t.Fatalf("expected edges [I9], got %v", got)
	}
}

func TestMergeIssuePageContinuationAppends(t *testing.T) {
	prevEdges := testEdges("I1", "I2")
	prev := testSnapshot(5, false, prevEdges)
	page := testPage(7, false, "end-2", "I3", "I4")
	page.Organization.Repository.ViewerHasStarred = true
	page.Organization.Repository.Issues.TotalCount = 4

	next := MergeIssuePage(prev, page, true)
	repo := next.Repository()

	if got := edgeIDs(repo.Issues.Edges); !reflect.DeepEqual(got, []string{"I1", "I2", "I3", "I4"}) {
		t.Fatalf("expected previous edges followed by page edges, got %v", got)
	}
	if repo.Issues.Edges[0].Node != prevEdges[0].Node {
		t.Fatalf("expected previous issue nodes to be carried over by reference")
	}
	if repo.Stargazers.TotalCount != 7 || !repo.ViewerHasStarred {
		t.Fatalf("expected star fields from new page, got count=%d starred=%v", repo.Stargazers.TotalCount, repo.ViewerHasStarred)
	}
	if repo.Issues.TotalCount != 4 {
		t.Fatalf("expected totalCount from new page, got %d", repo.Issues.TotalCount)
	}
	if repo.Issues.PageInfo != (PageInfo{EndCursor: "end-2", HasNextPage: false}) {
		t.Fatalf("expected pageInfo from new page, got %+v", repo.Issues.PageInfo)
	}

	// Inputs stay untouched.
	if got := edgeIDs(prev.Repository().Issues.Edges); !reflect.DeepEqual(got, []string{"I1", "I2"}) {
		t.Fatalf("previous snapshot mutated: %v", got)
	}
	if got := edgeIDs(page.Organization.Repository.Issues.Edges); !reflect.DeepEqual(got, []string{"I3", "I4"}) {
		t.Fatalf("page mutated: %v", got)
	}
}

func TestMergeIssuePageAppendProperty(t *testing.T) {
	cases := []struct {
		prev []string
		page []string
	}{
		{prev: nil, page: []string{"A"}},
		{prev: []string{"A"}, page: nil},
		{prev: []string{"A", "B"}, page: []string{"C"}},
		{prev: []string{"A", "B", "C"}, page: []string{"D", "E", "F"}},
	}
	for _, tc := range cases {
		prev := testSnapshot(1, false, testEdges(tc.prev...))
		page := testPage(1, true, "x", tc.page...)

		want := append(append([]string{}, tc.prev...), tc.page...)
		if got := edgeIDs(MergeIssuePage(prev, page, true).Repository().Issues.Edges); !reflect.DeepEqual(got, want) {
			t.Errorf("continuation %v ++ %v = %v, want %v", tc.prev, tc.page, got, want)
		}
		wantFresh := append([]string{}, tc.page...)
		if got := edgeIDs(MergeIssuePage(prev, page, false).Repository().Issues.Edges); !reflect.DeepEqual(got, wantFresh) {
			t.Errorf("fresh %v = %v, want %v", tc.page, got, wantFresh)
		}
	}
}

func TestMergeIssuePageDoesNotDeduplicate(t *testing.T) {
	prev := testSnapshot(1, false, testEdges("I1", "I2"))
	page := testPage(1, false, "", "I2")

	got := edgeIDs(MergeIssuePage(prev, page, true).Repository().Issues.Edges)
	if !reflect.DeepEqual(got, []string{"I1", "I2", "I2"}) {
		t.Fatalf("expected duplicate edge to be appended, got %v", got)
	}
}

func TestMergeIssuePageDoesNotShareBackingArray(t *testing.T) {
	prevEdges := make([]IssueEdge, 1, 8)
	prevEdges[0] = IssueEdge{Node: testIssue("I1")}
	prev := testSnapshot(1, false, prevEdges)

	first := MergeIssuePage(prev, testPage(1, true, "a", "I2"), true)
	second := MergeIssuePage(prev, testPage(1, true, "b", "I3"), true)

	if got := edgeIDs(first.Repository().Issues.Edges); !reflect.DeepEqual(got, []string{"I1", "I2"}) {
		t.Fatalf("first merge clobbered by second: %v", got)
	}
	if got := edgeIDs(second.Repository().Issues.Edges); !reflect.DeepEqual(got, []string{"I1", "I3"}) {
		t.Fatalf("unexpected second merge: %v", got)
	}
}

func TestMergeIssuePageErrorPassthrough(t *testing.T) {
	prev := testSnapshot(3, false, testEdges("I1"))
	page := QueryResponse{Errors: []ErrorMessage{{Message: "Not Found"}}}

	next := MergeIssuePage(prev, page, true)

	if next.Organization != prev.Organization {
		t.Fatalf("expected organization unchanged on error-only response")
	}
	if !next.HasErrors() || next.Errors[0].Message != "Not Found" {
		t.Fatalf("expected errors passed through, got %+v", next.Errors)
	}

	page.Errors[0].Message = "changed"
	if next.Errors[0].Message != "Not Found" {
		t.Fatalf("expected errors to be copied, not aliased")
	}
}

func TestMergeIssuePagePartialSuccessStillMerges(t *testing.T) {
	prev := testSnapshot(3, false, testEdges("I1"))
	page := testPage(3, false, "", "I2")
	page.Errors = []ErrorMessage{{Message: "reactions: rate limited", Path: []string{"organization", "repository"}}}

	next := MergeIssuePage(prev, page, true)

	if got := edgeIDs(next.Repository().Issues.Edges); !reflect.DeepEqual(got, []string{"I1", "I2"}) {
		t.Fatalf("expected merge despite errors, got %v", got)
	}
	if len(next.Errors) != 1 {
		t.Fatalf("expected errors kept alongside data, got %+v", next.Errors)
	}
}

func TestMergeIssuePageClearsStaleErrors(t *testing.T) {
	prev := testSnapshot(3, false, testEdges("I1"))
	prev.Errors = []ErrorMessage{{Message: "earlier failure"}}

	next := MergeIssuePage(prev, testPage(3, false, "", "I1"), false)
	if next.HasErrors() {
		t.Fatalf("expected successful page to clear errors, got %+v", next.Errors)
	}
}

func TestMergeIssuePageNullOrganizationWithoutErrors(t *testing.T) {
	prev := testSnapshot(3, false, testEdges("I1"))
	next := MergeIssuePage(prev, QueryResponse{}, false)
	if next.Organization != nil || next.HasErrors() {
		t.Fatalf("expected empty snapshot for null organization, got %+v", next)
	}
}

func TestMergeIssuePageContinuationWithoutPreviousRepository(t *testing.T) {
	page := testPage(1, true, "end", "I1")
	next := MergeIssuePage(Snapshot{}, page, true)
	if next.Organization != page.Organization {
		t.Fatalf("expected page used verbatim when nothing was cached")
	}
}

func TestMergeIssuePageContinuationFromOtherRepositoryReplaces(t *testing.T) {
	prev := testSnapshot(1, false, testEdges("I1"))
	page := testPage(1, false, "", "X1")
	page.Organization.Repository.ID = "R_other"

	got := edgeIDs(MergeIssuePage(prev, page, true).Repository().Issues.Edges)
	if !reflect.DeepEqual(got, []string{"X1"}) {
		t.Fatalf("expected foreign repository page to replace, got %v", got)
	}
}

func TestMergeIssuePageFixtures(t *testing.T) {
	first := MergeIssuePage(Snapshot{}, loadFixturePage(t, "page1.json"), false)
	cursor, ok := first.NextCursor()
	if !ok || cursor != "Y3Vyc29yOjI=" {
		t.Fatalf("expected next cursor from page1, got %q %v", cursor, ok)
	}

	second := MergeIssuePage(first, loadFixturePage(t, "page2.json"), true)
	repo := second.Repository()
	if got := edgeIDs(repo.Issues.Edges); !reflect.DeepEqual(got, []string{"I_1", "I_2", "I_3", "I_4"}) {
		t.Fatalf("unexpected merged edges %v", got)
	}
	if repo.Stargazers.TotalCount != 42 || !repo.ViewerHasStarred {
		t.Fatalf("expected server truth from page2, got %+v", repo.Stargazers)
	}
	if _, ok := second.NextCursor(); ok {
		t.Fatalf("expected no further pages")
	}
	if got := repo.Issues.Edges[3].Node.Reactions.Edges[1].Node.Content; got != domain.ReactionHooray {
		t.Fatalf("expected decoded HOORAY reaction, got %q", got)
	}

	failed := MergeIssuePage(second, loadFixturePage(t, "not_found.json"), false)
	if failed.Organization != second.Organization {
		t.Fatalf("expected organization kept on not-found response")
	}
	if len(failed.Errors) != 1 || failed.Errors[0].Type != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND error, got %+v", failed.Errors)
	}
}

func TestApplyStarToggle(t *testing.T) {
	cases := []struct {
		name        string
		count       int
		starred     bool
		result      StarResult
		direction   Direction
		wantCount   int
		wantStarred bool
	}{
		{name: "star", count: 10, result: StarResult{ViewerHasStarred: true}, direction: Star, wantCount: 11, wantStarred: true},
		{name: "unstar", count: 10, starred: true, result: StarResult{ViewerHasStarred: false}, direction: Unstar, wantCount: 9},
		{name: "flag trusted from server", count: 10, result: StarResult{ViewerHasStarred: false}, direction: Star, wantCount: 11},
		{name: "clamped at zero", count: 0, starred: true, result: StarResult{ViewerHasStarred: false}, direction: Unstar, wantCount: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := testSnapshot(tc.count, tc.starred, testEdges("I1"))
			next, err := ApplyStarToggle(prev, tc.result, tc.direction)
			if err != nil {
				t.Fatalf("ApplyStarToggle returned error: %v", err)
			}
			repo := next.Repository()
			if repo.Stargazers.TotalCount != tc.wantCount || repo.ViewerHasStarred != tc.wantStarred {
				t.Fatalf("got count=%d starred=%v, want count=%d starred=%v",
					repo.Stargazers.TotalCount, repo.ViewerHasStarred, tc.wantCount, tc.wantStarred)
			}
			if prev.Repository().Stargazers.TotalCount != tc.count {
				t.Fatalf("previous snapshot mutated")
			}
		})
	}
}

func TestApplyStarToggleCounterSymmetry(t *testing.T) {
	for _, count := range []int{0, 1, 57} {
		prev := testSnapshot(count, false, testEdges("I1"))
		starred, err := ApplyStarToggle(prev, StarResult{ViewerHasStarred: true}, Star)
		if err != nil {
			t.Fatalf("star: %v", err)
		}
		back, err := ApplyStarToggle(starred, StarResult{ViewerHasStarred: false}, Unstar)
		if err != nil {
			t.Fatalf("unstar: %v", err)
		}
		if got := back.Repository().Stargazers.TotalCount; got != count {
			t.Fatalf("star then unstar from %d ended at %d", count, got)
		}
	}
}

func TestApplyStarToggleSharesUntouchedSubtrees(t *testing.T) {
	prev := testSnapshot(1, false, testEdges("I1", "I2"))
	next, err := ApplyStarToggle(prev, StarResult{ViewerHasStarred: true}, Star)
	if err != nil {
		t.Fatalf("ApplyStarToggle returned error: %v", err)
	}
	if &next.Repository().Issues.Edges[0] != &prev.Repository().Issues.Edges[0] {
		t.Fatalf("expected issue edges to share the previous backing array")
	}
	if next.Repository() == prev.Repository() || next.Organization == prev.Organization {
		t.Fatalf("expected new repository and organization values")
	}
	if next.Organization.Name != prev.Organization.Name || next.Repository().URL != prev.Repository().URL {
		t.Fatalf("expected names and urls carried over")
	}
}

func TestApplyStarToggleRequiresRepository(t *testing.T) {
	for _, snap := range []Snapshot{{}, {Organization: &Organization{Name: "Acme"}}} {
		_, err := ApplyStarToggle(snap, StarResult{ViewerHasStarred: true}, Star)
		if !appErrors.IsCode(err, appErrors.CodeNotLoaded) {
			t.Fatalf("expected not_loaded error, got %v", err)
		}
	}
}

func TestApplyStarToggleRejectsUnknownDirection(t *testing.T) {
	prev := testSnapshot(1, false, nil)
	_, err := ApplyStarToggle(prev, StarResult{}, Direction(0))
	if !appErrors.IsCode(err, appErrors.CodeInvalidArgument) {
		t.Fatalf("expected invalid_argument error, got %v", err)
	}
}

func TestApplyReactionAddEndToEnd(t *testing.T) {
	snap := testSnapshot(0, false, []IssueEdge{{Node: &Issue{ID: "I1", Title: "only"}}})
	result := ReactionResult{SubjectID: "I1", Content: domain.ReactionHooray}

	once, err := ApplyReactionAdd(snap, result)
	if err != nil {
		t.Fatalf("ApplyReactionAdd returned error: %v", err)
	}
	issue, _ := once.FindIssue("I1")
	if len(issue.Reactions.Edges) != 1 || issue.Reactions.Edges[0].Node.Content != domain.ReactionHooray {
		t.Fatalf("expected one HOORAY reaction, got %+v", issue.Reactions.Edges)
	}

	twice, err := ApplyReactionAdd(once, result)
	if err != nil {
		t.Fatalf("ApplyReactionAdd returned error: %v", err)
	}
	issue, _ = twice.FindIssue("I1")
	if len(issue.Reactions.Edges) != 2 {
		t.Fatalf("expected duplicate reaction edges, got %d", len(issue.Reactions.Edges))
	}
	if issue.Reactions.TotalCount != 2 {
		t.Fatalf("expected reaction totalCount 2, got %d", issue.Reactions.TotalCount)
	}
	if issue.Reactions.Edges[0].Node.ID == issue.Reactions.Edges[1].Node.ID {
		t.Fatalf("expected distinct local reaction ids, got %q twice", issue.Reactions.Edges[0].Node.ID)
	}
}

func TestApplyReactionAddUsesServerReactionID(t *testing.T) {
	snap := testSnapshot(0, false, testEdges("I1"))
	next, err := ApplyReactionAdd(snap, ReactionResult{SubjectID: "I1", ReactionID: "RE_server", Content: domain.ReactionRocket})
	if err != nil {
		t.Fatalf("ApplyReactionAdd returned error: %v", err)
	}
	issue, _ := next.FindIssue("I1")
	if got := issue.Reactions.Edges[0].Node.ID; got != "RE_server" {
		t.Fatalf("expected server reaction id, got %q", got)
	}
}

func TestApplyReactionAddMissingSubjectIsNoop(t *testing.T) {
	snap := testSnapshot(2, true, testEdges("I1", "I2"))
	next, err := ApplyReactionAdd(snap, ReactionResult{SubjectID: "paginated-out", Content: domain.ReactionHooray})
	if err != nil {
		t.Fatalf("expected silent no-op, got error %v", err)
	}
	if !reflect.DeepEqual(next, snap) {
		t.Fatalf("expected snapshot unchanged")
	}
}

func TestApplyReactionAddIsolatesSingleIssue(t *testing.T) {
	edges := []IssueEdge{
		{Cursor: "c1", Node: testIssue("I1", domain.ReactionHeart)},
		{Cursor: "c2", Node: testIssue("I2")},
		{Cursor: "c3", Node: testIssue("I3", domain.ReactionEyes)},
	}
	prev := testSnapshot(0, false, edges)

	next, err := ApplyReactionAdd(prev, ReactionResult{SubjectID: "I2", Content: domain.ReactionHooray})
	if err != nil {
		t.Fatalf("ApplyReactionAdd returned error: %v", err)
	}
	nextEdges := next.Repository().Issues.Edges
	if nextEdges[0].Node != edges[0].Node || nextEdges[2].Node != edges[2].Node {
		t.Fatalf("expected sibling issues to be reference-equal")
	}
	if nextEdges[1].Node == edges[1].Node {
		t.Fatalf("expected target issue to be rebuilt")
	}
	if nextEdges[1].Cursor != "c2" {
		t.Fatalf("expected cursor preserved on rebuilt edge")
	}
	if len(edges[1].Node.Reactions.Edges) != 0 {
		t.Fatalf("previous issue mutated")
	}
	if prev.Repository().Issues.Edges[1].Node != edges[1].Node {
		t.Fatalf("previous edge slice mutated")
	}
}

func TestApplyReactionAddDoesNotAliasReactionEdges(t *testing.T) {
	issue := testIssue("I1", domain.ReactionHeart)
	issue.Reactions.Edges = append(make([]ReactionEdge, 0, 8), issue.Reactions.Edges...)
	prev := testSnapshot(0, false, []IssueEdge{{Node: issue}})

	a, _ := ApplyReactionAdd(prev, ReactionResult{SubjectID: "I1", ReactionID: "a", Content: domain.ReactionLaugh})
	b, _ := ApplyReactionAdd(prev, ReactionResult{SubjectID: "I1", ReactionID: "b", Content: domain.ReactionRocket})

	ia, _ := a.FindIssue("I1")
	ib, _ := b.FindIssue("I1")
	if ia.Reactions.Edges[1].Node.ID != "a" || ib.Reactions.Edges[1].Node.ID != "b" {
		t.Fatalf("reaction appends leaked between snapshots: %q %q", ia.Reactions.Edges[1].Node.ID, ib.Reactions.Edges[1].Node.ID)
	}
}

func TestApplyReactionAddRequiresRepository(t *testing.T) {
	_, err := ApplyReactionAdd(Snapshot{}, ReactionResult{SubjectID: "I1", Content: domain.ReactionHooray})
	if !appErrors.IsCode(err, appErrors.CodeNotLoaded) {
		t.Fatalf("expected not_loaded error, got %v", err)
	}
}
