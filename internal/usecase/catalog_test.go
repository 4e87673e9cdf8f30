package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/maxprotein/internal/domain"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable before first load", func(t *testing.T) {
		catalog := NewCatalog(&mockFoodSource{})

		_, err := catalog.Foods()
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
		assert.Zero(t, catalog.Size())
		assert.True(t, catalog.LoadedAt().IsZero())
	})

	t.Run("loads foods from source", func(t *testing.T) {
		source := &mockFoodSource{foods: []domain.Food{
			domain.MustNewFood("Egg", "1 large", 50, 72, 6),
			domain.MustNewFood("Tofu", "0.5 cup", 126, 94, 10),
		}}
		catalog := NewCatalog(source)

		n, err := catalog.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 2, catalog.Size())
		assert.False(t, catalog.LoadedAt().IsZero())

		foods, err := catalog.Foods()
		require.NoError(t, err)
		assert.Equal(t, source.foods, foods)
	})

	t.Run("empty source is a valid catalog", func(t *testing.T) {
		catalog := NewCatalog(&mockFoodSource{foods: []domain.Food{}})

		_, err := catalog.Load(ctx)
		require.NoError(t, err)

		foods, err := catalog.Foods()
		require.NoError(t, err)
		assert.Empty(t, foods)
	})

	t.Run("failed reload keeps previous foods", func(t *testing.T) {
		source := &mockFoodSource{foods: []domain.Food{domain.MustNewFood("Egg", "1 large", 50, 72, 6)}}
		catalog := NewCatalog(source)
		_, err := catalog.Load(ctx)
		require.NoError(t, err)
		_, gen, _ := catalog.snapshot()

		source.err = errors.New("disk on fire")
		_, err = catalog.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)

		foods, newGen, err := catalog.snapshot()
		require.NoError(t, err)
		assert.Len(t, foods, 1)
		assert.Equal(t, gen, newGen)
	})

	t.Run("reload advances generation", func(t *testing.T) {
		catalog := NewCatalog(&mockFoodSource{foods: []domain.Food{}})
		_, err := catalog.Load(ctx)
		require.NoError(t, err)
		_, first, _ := catalog.snapshot()

		_, err = catalog.Load(ctx)
		require.NoError(t, err)
		_, second, _ := catalog.snapshot()

		assert.Greater(t, second, first)
	})
}
