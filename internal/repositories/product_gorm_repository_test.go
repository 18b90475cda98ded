package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

func setupGORMRepository(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	repo := repositories.NewGORMProductRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestGORMProductRepository_EmptyTable(t *testing.T) {
	repo := setupGORMRepository(t)

	products, err := repo.Load(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGORMProductRepository_SaveReplacesRows(t *testing.T) {
	repo := setupGORMRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleProducts()))
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleProducts(), loaded)

	remaining := []models.Product{sampleProducts()[1]}
	require.NoError(t, repo.Save(ctx, remaining))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, remaining, loaded)

	require.NoError(t, repo.Save(ctx, nil))
	loaded, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
