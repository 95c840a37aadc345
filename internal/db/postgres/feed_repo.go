package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Quotable/internal/core/feeds"
)

// feedSortClauses whitelists ORDER BY SQL per sort kind (defense-in-depth
// against injection via dynamic ordering). The identifier is always the
// tiebreaker so keyset pages are stable under equal sort keys.
var feedSortClauses = map[feeds.SortKind]string{
	feeds.SortNew:   "q.created_at DESC, q.id DESC",
	feeds.SortOld:   "q.created_at ASC, q.id ASC",
	feeds.SortMost:  "q.likes DESC, q.id DESC",
	feeds.SortLeast: "q.likes ASC, q.id ASC",
}

// feedCursorClauses maps each keyset sort to its row-comparison against the
// anchor row identified by the cursor. If the anchor row has been deleted the
// subselect is empty and the page comes back empty.
var feedCursorClauses = map[feeds.SortKind]string{
	feeds.SortNew:   "AND (q.created_at, q.id) < (SELECT created_at, id FROM quotes WHERE id = $%d)",
	feeds.SortOld:   "AND (q.created_at, q.id) > (SELECT created_at, id FROM quotes WHERE id = $%d)",
	feeds.SortMost:  "AND (q.likes, q.id) < (SELECT likes, id FROM quotes WHERE id = $%d)",
	feeds.SortLeast: "AND (q.likes, q.id) > (SELECT likes, id FROM quotes WHERE id = $%d)",
}

const feedSelect = `
	SELECT
		q.id, q.quote, q.author, q.likes, q.user_id, u.handle, v.value,
		q.created_at, q.updated_at
	FROM quotes q
	LEFT JOIN users u ON u.id = q.user_id
	LEFT JOIN quote_likes v ON v.quote_id = q.id AND v.user_id = NULLIF($1, '')
`

type postgresFeedRepo struct {
	db *sql.DB
}

// NewFeedRepository creates a new PostgreSQL feed repository
func NewFeedRepository(db *sql.DB) feeds.Repository {
	return &postgresFeedRepo{db: db}
}

// ListPage fetches limit+1 rows ordered by the descriptor's sort key,
// starting strictly after the cursor row
func (r *postgresFeedRepo) ListPage(ctx context.Context, q feeds.QueryDescriptor, cursorID *int64, limit int, viewerID string) ([]feeds.QuoteView, error) {
	orderBy, ok := feedSortClauses[q.Sort]
	if !ok {
		return nil, fmt.Errorf("sort %q has no keyset ordering", q.Sort)
	}

	args := []interface{}{viewerID}

	filterClause, filterArgs := buildFilterClause(q.Filter, len(args)+1)
	args = append(args, filterArgs...)

	cursorClause := ""
	if cursorID != nil {
		cursorClause = fmt.Sprintf(feedCursorClauses[q.Sort], len(args)+1)
		args = append(args, *cursorID)
	}

	query := fmt.Sprintf(`%s WHERE TRUE %s %s ORDER BY %s LIMIT $%d`,
		feedSelect, filterClause, cursorClause, orderBy, len(args)+1)
	args = append(args, limit+1)

	return r.queryViews(ctx, query, args)
}

// ListAllFiltered fetches the entire filtered set ordered by ascending id,
// the input order for the deterministic shuffle
func (r *postgresFeedRepo) ListAllFiltered(ctx context.Context, f feeds.Filter, viewerID string) ([]feeds.QuoteView, error) {
	args := []interface{}{viewerID}

	filterClause, filterArgs := buildFilterClause(f, len(args)+1)
	args = append(args, filterArgs...)

	query := fmt.Sprintf(`%s WHERE TRUE %s ORDER BY q.id ASC`, feedSelect, filterClause)

	return r.queryViews(ctx, query, args)
}

// buildFilterClause returns the SQL predicate and bind args for a filter,
// numbering parameters from startParam. The author match is a literal
// case-insensitive substring, so LIKE wildcards in input carry no meaning.
func buildFilterClause(f feeds.Filter, startParam int) (string, []interface{}) {
	switch f.Kind {
	case feeds.FilterLikes:
		return "AND q.likes > 0", nil
	case feeds.FilterDislikes:
		return "AND q.likes < 0", nil
	case feeds.FilterAuthor:
		return fmt.Sprintf("AND POSITION(LOWER($%d) IN LOWER(q.author)) > 0", startParam),
			[]interface{}{f.Author}
	default:
		return "", nil
	}
}

func (r *postgresFeedRepo) queryViews(ctx context.Context, query string, args []interface{}) ([]feeds.QuoteView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []feeds.QuoteView
	for rows.Next() {
		view, err := scanQuoteView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		result = append(result, *view)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed rows: %w", err)
	}

	return result, nil
}

// scanQuoteView scans one feed row, folding nullable columns into pointers
func scanQuoteView(rows *sql.Rows) (*feeds.QuoteView, error) {
	var (
		view       feeds.QuoteView
		userID     sql.NullString
		userHandle sql.NullString
		viewerVote sql.NullInt64
	)

	err := rows.Scan(
		&view.ID, &view.Text, &view.Author, &view.Likes,
		&userID, &userHandle, &viewerVote,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.UserID = nullStringPtr(userID)
	view.UserHandle = nullStringPtr(userHandle)
	if viewerVote.Valid {
		value := int(viewerVote.Int64)
		view.ViewerVote = &value
	}

	return &view, nil
}

// nullStringPtr converts sql.NullString to *string
func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
