package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"schoollink/internal/domain"
	"schoollink/internal/repository/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV fails every write.
type failingKV struct {
	domain.KVStore
}

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("quota exceeded") }

func TestEventRepository_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		stored      *string
		wantLen     int
		wantCorrupt bool
	}{
		{name: "absent", stored: nil, wantLen: 0},
		{name: "empty value", stored: ptr(""), wantLen: 0},
		{name: "empty array", stored: ptr("[]"), wantLen: 0},
		{name: "one event", stored: ptr(`[{"id":"abc","title":"Staff Meeting","startAt":"2024-03-01T00:00:00.000Z","endAt":"2024-03-01T04:00:00.000Z"}]`), wantLen: 1},
		{name: "object instead of sequence", stored: ptr(`{"id":"abc"}`), wantCorrupt: true},
		{name: "null", stored: ptr(`null`), wantCorrupt: true},
		{name: "truncated", stored: ptr(`[{"id":`), wantCorrupt: true},
		{name: "wrong element type", stored: ptr(`[1,2]`), wantCorrupt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			if tt.stored != nil {
				require.NoError(t, store.Set(ctx, domain.KeyEvents, []byte(*tt.stored)))
			}
			events, err := NewEventRepository(store).Load(ctx)
			if tt.wantCorrupt {
				require.ErrorIs(t, err, domain.ErrStorageCorruption)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, events)
			assert.Len(t, events, tt.wantLen)
		})
	}
}

func TestEventRepository_SaveAll(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewEventRepository(store)

	require.NoError(t, repo.SaveAll(ctx, nil))
	raw, err := store.Get(ctx, domain.KeyEvents)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	at := domain.NewInstant(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.SaveAll(ctx, []domain.Event{{ID: "a", Title: "x", StartAt: at, EndAt: at}}))
	events, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "a", events[0].ID)
	assert.True(t, at.Equal(events[0].StartAt.Time))

	err = NewEventRepository(failingKV{store}).SaveAll(ctx, events)
	assert.ErrorIs(t, err, domain.ErrStorageWrite)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingsRepository(kv.NewMemoryStore())

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)

	want := domain.Settings{Opacity: 60, Notifications: true}
	require.NoError(t, repo.Save(ctx, want))
	s, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, want, *s)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewAccountRepository(store)

	u, err := repo.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	pins, err := repo.LoadPINs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pins)

	require.NoError(t, repo.SaveUser(ctx, domain.UserProfile{UID: "u-1-1", DisplayName: "1학년 1반"}))
	require.NoError(t, repo.SaveTenant(ctx, domain.Tenant{ID: "t1", InviteCode: "SCH-1"}))
	require.NoError(t, repo.SavePINs(ctx, map[string]domain.PINRecord{"u-1-1": {Hash: "h", Salt: "s"}}))

	u, err = repo.LoadUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u-1-1", u.UID)

	require.NoError(t, repo.Clear(ctx))
	u, err = repo.LoadUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
	tenant, err := repo.LoadTenant(ctx)
	require.NoError(t, err)
	assert.Nil(t, tenant)

	pins, err = repo.LoadPINs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "h", pins["u-1-1"].Hash, "pins survive sign-out")

	require.NoError(t, store.Set(ctx, domain.KeyUser, []byte("{broken")))
	_, err = repo.LoadUser(ctx)
	assert.ErrorIs(t, err, domain.ErrStorageCorruption)
}

func ptr(s string) *string { return &s }
