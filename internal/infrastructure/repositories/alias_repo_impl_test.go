package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mercury-mail.backend/internal/domain/entities"
	domainerrors "mercury-mail.backend/internal/domain/errors"
)

func TestAliasRepositoryCreateNormalizes(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	alias := &entities.Alias{UserID: 7, Address: "  Alice@MistyStep.io ", IsPrimary: true}
	require.NoError(t, repo.Create(ctx, alias))

	assert.Equal(t, "alice@mistystep.io", alias.Address)
	assert.Greater(t, alias.ID, int64(0))
}

func TestAliasRepositoryResolveAddress(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Alias{UserID: 7, Address: "alice@mistystep.io"}))

	got, err := repo.ResolveAddress(ctx, "ALICE@mistystep.IO")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)

	_, err = repo.ResolveAddress(ctx, "unknown@mistystep.io")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAliasRepositoryListByUserIDPrimaryFirst(t *testing.T) {
	db := newTestDB(t)
	createUserTables(t, db)
	repo := NewAliasRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.Alias{UserID: 7, Address: "secondary@mistystep.io"}))
	require.NoError(t, repo.Create(ctx, &entities.Alias{UserID: 7, Address: "primary@mistystep.io", IsPrimary: true}))
	require.NoError(t, repo.Create(ctx, &entities.Alias{UserID: 8, Address: "other@mistystep.io"}))

	aliases, err := repo.ListByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, aliases, 2)
	assert.Equal(t, "primary@mistystep.io", aliases[0].Address)
	assert.True(t, aliases[0].IsPrimary)
}
