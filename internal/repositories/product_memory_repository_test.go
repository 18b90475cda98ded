package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katalog/internal/repositories"
)

func TestMemoryProductRepository_IsolatesCallerSlices(t *testing.T) {
	seed := sampleProducts()
	repo := repositories.NewMemoryProductRepository(seed...)
	ctx := context.Background()

	seed[0].Name = "changed by caller"
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", loaded[0].Name)

	loaded[1].Stock = 99
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again[1].Stock)
}

func TestMemoryProductRepository_SaveReplacesDocument(t *testing.T) {
	repo := repositories.NewMemoryProductRepository(sampleProducts()...)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleProducts()[1:]))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded[0].ID)
}
