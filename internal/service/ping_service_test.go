package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/houseping/internal/db"
	"github.com/houseping/internal/domain"
	"github.com/houseping/internal/validation"
)

func setupPingService(t *testing.T) (domain.PingService, *memoryStore, *db.User) {
	t.Helper()
	store := newMemoryStore()
	users := NewUserService(store, discardLogger())

	user, err := users.LoginWithIdentity(context.Background(), domain.Identity{Provider: "csh", Subject: "owner"})
	require.NoError(t, err)

	return NewPingService(store, discardLogger()), store, user
}

func TestCreatePing(t *testing.T) {
	svc, _, user := setupPingService(t)
	ctx := context.Background()

	ping, err := svc.CreatePing(ctx, user.ID, domain.CreatePingRequest{Message: "  in the lounge  "})
	require.NoError(t, err)
	assert.Equal(t, "in the lounge", ping.Message)
	assert.Equal(t, user.ID, ping.UserID)
	assert.NoError(t, validation.ValidateID(ping.ID))

	empty, err := svc.CreatePing(ctx, user.ID, domain.CreatePingRequest{})
	require.NoError(t, err)
	assert.Empty(t, empty.Message)
}

func TestCreatePing_Invalid(t *testing.T) {
	svc, _, user := setupPingService(t)

	_, err := svc.CreatePing(context.Background(), user.ID, domain.CreatePingRequest{Message: strings.Repeat("x", 281)})
	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
	assert.Contains(t, domain.PublicMessage(err), "message")
}

func TestCreatePing_UnknownUser(t *testing.T) {
	svc, _, _ := setupPingService(t)

	_, err := svc.CreatePing(context.Background(), "ghost", domain.CreatePingRequest{Message: "hi"})
	assert.True(t, domain.IsNotFoundError(err))
}

func TestListPings_LimitAndOrder(t *testing.T) {
	svc, store, user := setupPingService(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		ping := db.NewPing(user.ID, "ping")
		ping.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, store.CreatePing(ctx, ping))
	}

	pings, err := svc.ListPings(ctx, user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, pings, validation.DefaultListLimit)
	for i := 1; i < len(pings); i++ {
		assert.False(t, pings[i].CreatedAt.After(pings[i-1].CreatedAt), "pings must be newest first")
	}

	pings, err = svc.ListPings(ctx, user.ID, 5)
	require.NoError(t, err)
	assert.Len(t, pings, 5)

	_, err = svc.ListPings(ctx, user.ID, -1)
	assert.True(t, domain.IsValidationError(err))
}

func TestGetPing_OwnerOnly(t *testing.T) {
	svc, store, user := setupPingService(t)
	ctx := context.Background()

	ping, err := svc.CreatePing(ctx, user.ID, domain.CreatePingRequest{Message: "mine"})
	require.NoError(t, err)

	got, err := svc.GetPing(ctx, user.ID, ping.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Message)

	intruder, err := NewUserService(store, discardLogger()).LoginWithIdentity(ctx, domain.Identity{Provider: "csh", Subject: "intruder"})
	require.NoError(t, err)

	_, err = svc.GetPing(ctx, intruder.ID, ping.ID)
	assert.True(t, domain.IsNotFoundError(err))

	_, err = svc.GetPing(ctx, user.ID, "not-a-uuid")
	assert.True(t, domain.IsValidationError(err))
}

func TestDeletePing(t *testing.T) {
	svc, store, user := setupPingService(t)
	ctx := context.Background()

	ping, err := svc.CreatePing(ctx, user.ID, domain.CreatePingRequest{Message: "bye"})
	require.NoError(t, err)

	intruder, err := NewUserService(store, discardLogger()).LoginWithIdentity(ctx, domain.Identity{Provider: "csh", Subject: "intruder"})
	require.NoError(t, err)

	err = svc.DeletePing(ctx, intruder.ID, ping.ID)
	assert.True(t, domain.IsNotFoundError(err), "deleting someone else's ping must look like a missing ping")

	require.NoError(t, svc.DeletePing(ctx, user.ID, ping.ID))

	err = svc.DeletePing(ctx, user.ID, ping.ID)
	assert.True(t, domain.IsNotFoundError(err))
}

func TestSummary(t *testing.T) {
	svc, _, user := setupPingService(t)
	ctx := context.Background()

	summary, err := svc.Summary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Nil(t, summary.Latest)

	_, err = svc.CreatePing(ctx, user.ID, domain.CreatePingRequest{Message: "first"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.CreatePing(ctx, user.ID, domain.CreatePingRequest{Message: "second"})
	require.NoError(t, err)

	summary, err = svc.Summary(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	require.NotNil(t, summary.Latest)
	assert.Equal(t, "second", summary.Latest.Message)
}

func TestSummary_StoreFailure(t *testing.T) {
	svc, store, user := setupPingService(t)
	store.err = errStoreDown

	_, err := svc.Summary(context.Background(), user.ID)
	assert.True(t, domain.IsInfrastructureError(err))
}
