package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Prem324/bookshelf/internal/mocks"
	"github.com/Prem324/bookshelf/internal/model"
	"github.com/Prem324/bookshelf/internal/testutil"
	"github.com/Prem324/bookshelf/internal/token"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: 1, Role: model.RoleUser}

	manager := &mocks.TokenManager{}
	ledger := &mocks.RefreshTokenStore{}
	users := &mocks.UserStore{}

	manager.On("GenerateAccessToken", int64(1), model.RoleUser).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", int64(1), model.RoleUser).Return("refresh", nil).Once()
	ledger.On("Create", ctx, mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.UserID == 1 && rt.TokenHash == hashToken("refresh") && !rt.Revoked
	})).Return(nil).Once()

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "access", pair.Token)
	assert.Equal(t, "refresh", pair.RefreshToken)
	ledger.AssertExpectations(t)
}

func TestTokenService_Issue_EmptyRoleDefaults(t *testing.T) {
	ctx := context.Background()

	manager := &mocks.TokenManager{}
	ledger := &mocks.RefreshTokenStore{}
	users := &mocks.UserStore{}

	manager.On("GenerateAccessToken", int64(7), model.RoleUser).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", int64(7), model.RoleUser).Return("refresh", nil).Once()
	ledger.On("Create", ctx, mock.Anything).Return(nil).Once()

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Issue(ctx, model.User{ID: 7})
	require.NoError(t, err)
	manager.AssertExpectations(t)
}

func TestTokenService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	presented := "refresh-old"

	manager := &mocks.TokenManager{}
	ledger := &mocks.RefreshTokenStore{}
	users := &mocks.UserStore{}

	manager.On("ParseRefreshToken", presented).Return(model.Identity{UserID: 3, Role: model.RoleUser}, nil).Once()
	users.On("GetByID", ctx, int64(3)).Return(model.User{ID: 3, Role: model.RoleUser}, nil).Once()
	manager.On("GenerateAccessToken", int64(3), model.RoleUser).Return("access-new", nil).Once()
	manager.On("GenerateRefreshToken", int64(3), model.RoleUser).Return("refresh-new", nil).Once()
	ledger.On("Rotate", ctx, hashToken(presented), mock.MatchedBy(func(rt model.RefreshToken) bool {
		return rt.UserID == 3 && rt.TokenHash == hashToken("refresh-new")
	})).Return(model.RefreshToken{UserID: 3, TokenHash: hashToken(presented)}, nil).Once()

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	pair, err := svc.Refresh(ctx, presented)
	require.NoError(t, err)
	assert.Equal(t, "access-new", pair.Token)
	assert.Equal(t, "refresh-new", pair.RefreshToken)
	ledger.AssertExpectations(t)
}

func TestTokenService_Refresh_RejectionsCollapse(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		ledgerErr error
	}{
		{name: "unknown token", ledgerErr: model.ErrNotFound},
		{name: "already consumed", ledgerErr: model.ErrTokenRevoked},
		{name: "ledger row expired", ledgerErr: model.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := &mocks.TokenManager{}
			ledger := &mocks.RefreshTokenStore{}
			users := &mocks.UserStore{}

			manager.On("ParseRefreshToken", "presented").Return(model.Identity{UserID: 3, Role: model.RoleUser}, nil).Once()
			users.On("GetByID", ctx, int64(3)).Return(model.User{ID: 3, Role: model.RoleUser}, nil).Once()
			manager.On("GenerateAccessToken", int64(3), model.RoleUser).Return("access", nil).Once()
			manager.On("GenerateRefreshToken", int64(3), model.RoleUser).Return("refresh", nil).Once()
			ledger.On("Rotate", ctx, hashToken("presented"), mock.Anything).Return(model.RefreshToken{}, tt.ledgerErr).Once()

			svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

			_, err := svc.Refresh(ctx, "presented")
			assert.ErrorIs(t, err, model.ErrInvalidToken)
		})
	}
}

func TestTokenService_Refresh_BadSignature(t *testing.T) {
	manager := &mocks.TokenManager{}
	ledger := &mocks.RefreshTokenStore{}
	users := &mocks.UserStore{}

	manager.On("ParseRefreshToken", "garbage").Return(model.Identity{}, model.ErrInvalidToken).Once()

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Refresh(context.Background(), "garbage")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
	ledger.AssertNotCalled(t, "Rotate", mock.Anything, mock.Anything, mock.Anything)
}

func TestTokenService_Refresh_DeletedUser(t *testing.T) {
	ctx := context.Background()

	manager := &mocks.TokenManager{}
	ledger := &mocks.RefreshTokenStore{}
	users := &mocks.UserStore{}

	manager.On("ParseRefreshToken", "presented").Return(model.Identity{UserID: 9, Role: model.RoleUser}, nil).Once()
	users.On("GetByID", ctx, int64(9)).Return(model.User{}, model.ErrNotFound).Once()

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	_, err := svc.Refresh(ctx, "presented")
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

// memoryLedger is an in-memory RefreshTokenStore with database-equivalent
// rotation semantics for concurrency tests.
type memoryLedger struct {
	mu   sync.Mutex
	rows map[string]model.RefreshToken
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{rows: make(map[string]model.RefreshToken)}
}

func (l *memoryLedger) Create(_ context.Context, token model.RefreshToken) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows[token.TokenHash] = token
	return nil
}

func (l *memoryLedger) Rotate(_ context.Context, oldHash string, next model.RefreshToken) (model.RefreshToken, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	row, ok := l.rows[oldHash]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	if row.Revoked {
		return model.RefreshToken{}, model.ErrTokenRevoked
	}
	if time.Now().After(row.ExpiresAt) {
		return model.RefreshToken{}, model.ErrTokenExpired
	}

	row.Revoked = true
	l.rows[oldHash] = row
	l.rows[next.TokenHash] = next
	return row, nil
}

func (l *memoryLedger) Revoke(_ context.Context, tokenHash string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if row, ok := l.rows[tokenHash]; ok {
		row.Revoked = true
		l.rows[tokenHash] = row
	}
	return nil
}

func (l *memoryLedger) RevokeAllByUser(_ context.Context, userID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for hash, row := range l.rows {
		if row.UserID == userID {
			row.Revoked = true
			l.rows[hash] = row
		}
	}
	return nil
}

func TestTokenService_Refresh_SingleUse(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	manager := token.NewJWT("test-secret", time.Minute, time.Hour)

	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, int64(5)).Return(model.User{ID: 5, Role: model.RoleUser}, nil)

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, model.User{ID: 5, Role: model.RoleUser})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_Refresh_ConcurrentOneWinner(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	manager := token.NewJWT("test-secret", time.Minute, time.Hour)

	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, int64(5)).Return(model.User{ID: 5, Role: model.RoleUser}, nil)

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, model.User{ID: 5, Role: model.RoleUser})
	require.NoError(t, err)

	const workers = 16
	results := make(chan error, workers)

	var start sync.WaitGroup
	start.Add(1)
	for range workers {
		go func() {
			start.Wait()
			_, err := svc.Refresh(ctx, pair.RefreshToken)
			results <- err
		}()
	}
	start.Done()

	var winners int
	for range workers {
		if err := <-results; err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, model.ErrInvalidToken)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestTokenService_Validate_RejectsRefreshToken(t *testing.T) {
	manager := token.NewJWT("test-secret", time.Minute, time.Hour)
	users := &mocks.UserStore{}

	svc := NewTokenService(manager, newMemoryLedger(), users, time.Hour, testutil.MakeNoopLogger())

	refresh, err := manager.GenerateRefreshToken(5, model.RoleUser)
	require.NoError(t, err)

	_, err = svc.Validate(refresh)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenService_RevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	manager := token.NewJWT("test-secret", time.Minute, time.Hour)

	users := &mocks.UserStore{}
	users.On("GetByID", mock.Anything, int64(5)).Return(model.User{ID: 5, Role: model.RoleUser}, nil)

	svc := NewTokenService(manager, ledger, users, time.Hour, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, model.User{ID: 5, Role: model.RoleUser})
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAllForUser(ctx, 5))

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}
