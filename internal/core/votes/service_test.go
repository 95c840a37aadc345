package votes

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quotable/internal/core/quotes"
	"Quotable/internal/core/ratelimit"
	"Quotable/internal/core/users"
)

// memoryLedger applies the real transition table against an in-memory map,
// mirroring what the postgres ledger does inside one transaction.
type memoryLedger struct {
	likes    map[int64]int64
	stored   map[string]int
	applyErr error
}

func newMemoryLedger(quoteIDs ...int64) *memoryLedger {
	l := &memoryLedger{
		likes:  make(map[int64]int64),
		stored: make(map[string]int),
	}
	for _, id := range quoteIDs {
		l.likes[id] = 0
	}
	return l
}

func (l *memoryLedger) key(quoteID int64, voterID string) string {
	return voterID + "@" + strconv.FormatInt(quoteID, 10)
}

func (l *memoryLedger) ApplyVote(_ context.Context, quoteID int64, voterID string, direction Direction) (int64, error) {
	if l.applyErr != nil {
		return 0, l.applyErr
	}
	if _, ok := l.likes[quoteID]; !ok {
		return 0, quotes.ErrQuoteNotFound
	}

	key := l.key(quoteID, voterID)
	next, delta := Transition(l.stored[key], direction)
	if next == ValueNone {
		delete(l.stored, key)
	} else {
		l.stored[key] = next
	}
	l.likes[quoteID] += delta
	return l.likes[quoteID], nil
}

func (l *memoryLedger) GetVote(_ context.Context, quoteID int64, voterID string) (*Vote, error) {
	value, ok := l.stored[l.key(quoteID, voterID)]
	if !ok {
		return nil, nil
	}
	return &Vote{QuoteID: quoteID, UserID: voterID, Value: value}, nil
}

// fakeUserRepo returns canned users keyed by id
type fakeUserRepo struct {
	users map[string]*users.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*users.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

// fakeLimiter admits or rejects every call
type fakeLimiter struct {
	decision ratelimit.Decision
	err      error
}

func (l *fakeLimiter) Check(context.Context, string, string) (ratelimit.Decision, error) {
	return l.decision, l.err
}

func newTestService(ledger Ledger) (Service, *fakeUserRepo, *fakeLimiter) {
	userRepo := &fakeUserRepo{users: map[string]*users.User{
		"voter-a": {ID: "voter-a", Handle: "alice"},
		"voter-b": {ID: "voter-b", Handle: "bob"},
		"ghost":   {ID: "ghost", Handle: "ghost", IsAnonymous: true},
	}}
	limiter := &fakeLimiter{decision: ratelimit.Decision{Allowed: true}}
	return NewService(ledger, userRepo, limiter, nil), userRepo, limiter
}

func TestApplyVote_ToggleIdempotence(t *testing.T) {
	ledger := newMemoryLedger(5)
	service, _, _ := newTestService(ledger)
	ctx := context.Background()

	req := ApplyVoteRequest{QuoteID: 5, VoterID: "voter-a", Direction: DirectionUp}

	likes, err := service.ApplyVote(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	vote, err := service.GetVote(ctx, 5, "voter-a")
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, ValueUp, vote.Value)

	// Same action again returns the counter to its pre-vote value and
	// leaves no vote row.
	likes, err = service.ApplyVote(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	vote, err = service.GetVote(ctx, 5, "voter-a")
	require.NoError(t, err)
	assert.Nil(t, vote)
}

func TestApplyVote_SwitchDelta(t *testing.T) {
	ledger := newMemoryLedger(5)
	service, _, _ := newTestService(ledger)
	ctx := context.Background()

	likes, err := service.ApplyVote(ctx, ApplyVoteRequest{QuoteID: 5, VoterID: "voter-a", Direction: DirectionUp})
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	// Switching direction moves the counter by exactly -2
	likes, err = service.ApplyVote(ctx, ApplyVoteRequest{QuoteID: 5, VoterID: "voter-a", Direction: DirectionDown})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), likes)

	vote, err := service.GetVote(ctx, 5, "voter-a")
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, ValueDown, vote.Value)

	// And the reverse switch moves it by exactly +2
	likes, err = service.ApplyVote(ctx, ApplyVoteRequest{QuoteID: 5, VoterID: "voter-a", Direction: DirectionUp})
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
}

func TestApplyVote_CounterSumAcrossVoters(t *testing.T) {
	ledger := newMemoryLedger(9)
	service, _, _ := newTestService(ledger)
	ctx := context.Background()

	var likes int64
	var err error

	likes, err = service.ApplyVote(ctx, ApplyVoteRequest{QuoteID: 9, VoterID: "voter-a", Direction: DirectionUp})
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)

	likes, err = service.ApplyVote(ctx, ApplyVoteRequest{QuoteID: 9, VoterID: "voter-b", Direction: DirectionDown})
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)

	likes, err = service.ApplyVote(ctx, ApplyVoteRequest{QuoteID: 9, VoterID: "voter-b", Direction: DirectionUp})
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	// Final counter equals the sum of currently stored vote values
	var sum int64
	for _, voter := range []string{"voter-a", "voter-b"} {
		vote, err := service.GetVote(ctx, 9, voter)
		require.NoError(t, err)
		if vote != nil {
			sum += int64(vote.Value)
		}
	}
	assert.Equal(t, likes, sum)
}

func TestApplyVote_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		req     ApplyVoteRequest
		wantErr error
	}{
		{
			name:    "zero quote id",
			req:     ApplyVoteRequest{QuoteID: 0, VoterID: "voter-a", Direction: DirectionUp},
			wantErr: nil, // validation error, checked separately
		},
		{
			name:    "invalid direction",
			req:     ApplyVoteRequest{QuoteID: 5, VoterID: "voter-a", Direction: "sideways"},
			wantErr: ErrInvalidDirection,
		},
		{
			name:    "missing voter",
			req:     ApplyVoteRequest{QuoteID: 5, VoterID: "", Direction: DirectionUp},
			wantErr: ErrNotAuthorized,
		},
		{
			name:    "unknown voter",
			req:     ApplyVoteRequest{QuoteID: 5, VoterID: "nobody", Direction: DirectionUp},
			wantErr: ErrNotAuthorized,
		},
		{
			name:    "anonymous voter",
			req:     ApplyVoteRequest{QuoteID: 5, VoterID: "ghost", Direction: DirectionUp},
			wantErr: ErrAnonymousVoter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newMemoryLedger(5)
			service, _, _ := newTestService(ledger)

			_, err := service.ApplyVote(context.Background(), tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.True(t, quotes.IsValidationError(err), "expected validation error, got %v", err)
			}

			// Failed preconditions must leave no side effects
			assert.Equal(t, int64(0), ledger.likes[5])
			assert.Empty(t, ledger.stored)
		})
	}
}

func TestApplyVote_QuoteNotFound(t *testing.T) {
	ledger := newMemoryLedger(5)
	service, _, _ := newTestService(ledger)

	_, err := service.ApplyVote(context.Background(), ApplyVoteRequest{
		QuoteID: 404, VoterID: "voter-a", Direction: DirectionUp,
	})
	assert.ErrorIs(t, err, quotes.ErrQuoteNotFound)
}

func TestApplyVote_RateLimited(t *testing.T) {
	ledger := newMemoryLedger(5)
	service, _, limiter := newTestService(ledger)
	limiter.decision = ratelimit.Decision{Allowed: false, RetryAfter: 45 * time.Second}

	_, err := service.ApplyVote(context.Background(), ApplyVoteRequest{
		QuoteID: 5, VoterID: "voter-a", Direction: DirectionUp,
	})
	require.Error(t, err)

	var limited *ratelimit.RateLimitedError
	require.True(t, errors.As(err, &limited))
	assert.Equal(t, 45, limited.RetryAfterSeconds())

	// A rejected call records no vote
	assert.Equal(t, int64(0), ledger.likes[5])
}

func TestApplyVote_ConflictSurfaced(t *testing.T) {
	ledger := newMemoryLedger(5)
	ledger.applyErr = ErrVoteConflict
	service, _, _ := newTestService(ledger)

	_, err := service.ApplyVote(context.Background(), ApplyVoteRequest{
		QuoteID: 5, VoterID: "voter-a", Direction: DirectionUp,
	})
	assert.ErrorIs(t, err, ErrVoteConflict)
}
