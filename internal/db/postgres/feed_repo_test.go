package postgres

import (
	"strings"
	"testing"

	"Quotable/internal/core/feeds"
)

func TestBuildFilterClause(t *testing.T) {
	tests := []struct {
		name       string
		filter     feeds.Filter
		startParam int
		wantClause string
		wantArgs   int
	}{
		{
			name:       "all has no predicate",
			filter:     feeds.Filter{Kind: feeds.FilterAll},
			startParam: 2,
			wantClause: "",
			wantArgs:   0,
		},
		{
			name:       "likes is strictly positive",
			filter:     feeds.Filter{Kind: feeds.FilterLikes},
			startParam: 2,
			wantClause: "AND q.likes > 0",
			wantArgs:   0,
		},
		{
			name:       "dislikes is strictly negative",
			filter:     feeds.Filter{Kind: feeds.FilterDislikes},
			startParam: 2,
			wantClause: "AND q.likes < 0",
			wantArgs:   0,
		},
		{
			name:       "author binds one parameter",
			filter:     feeds.Filter{Kind: feeds.FilterAuthor, Author: "shake"},
			startParam: 3,
			wantClause: "AND POSITION(LOWER($3) IN LOWER(q.author)) > 0",
			wantArgs:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := buildFilterClause(tt.filter, tt.startParam)
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestFeedSortClauses_CoverAllKeysetSorts(t *testing.T) {
	for _, sort := range []feeds.SortKind{feeds.SortNew, feeds.SortOld, feeds.SortMost, feeds.SortLeast} {
		if _, ok := feedSortClauses[sort]; !ok {
			t.Errorf("missing ORDER BY clause for %q", sort)
		}
		if _, ok := feedCursorClauses[sort]; !ok {
			t.Errorf("missing cursor clause for %q", sort)
		}
	}

	// The shuffle sort must never reach the keyset path
	if _, ok := feedSortClauses[feeds.SortDefault]; ok {
		t.Error("default sort must not have a keyset ordering")
	}
}

func TestFeedSortClauses_AlwaysTiebreakOnID(t *testing.T) {
	for sort, clause := range feedSortClauses {
		if !strings.Contains(clause, "q.id") {
			t.Errorf("sort %q ordering %q lacks the id tiebreaker", sort, clause)
		}
	}
}

func TestIsWriteConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique pair violation", errString(`pq: duplicate key value violates unique constraint "unique_quote_voter"`), true},
		{"serialization failure", errString("pq: could not serialize access due to concurrent update"), true},
		{"deadlock", errString("pq: deadlock detected"), true},
		{"unrelated duplicate", errString(`pq: duplicate key value violates unique constraint "users_pkey"`), false},
		{"plain failure", errString("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWriteConflict(tt.err); got != tt.want {
				t.Errorf("isWriteConflict(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
