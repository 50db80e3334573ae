package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "siscav/internal/errors"
	"siscav/internal/model"
)

func TestPlateRepository_CreateAndFind(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	plate := &model.AuthorizedPlate{
		Plate:           "ABC-1234",
		NormalizedPlate: "ABC1234",
		Description:     "delivery truck",
	}
	require.NoError(t, repo.Create(ctx, plate))
	assert.NotEqual(t, uuid.Nil, plate.ID)

	found, err := repo.FindByNormalizedPlate(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, plate.ID, found.ID)
	assert.Equal(t, "ABC-1234", found.Plate)

	_, err = repo.FindByNormalizedPlate(ctx, "ZZZ0000")
	assert.ErrorIs(t, err, apperrors.ErrPlateNotFound)
}

func TestPlateRepository_DuplicateNormalizedPlate(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.AuthorizedPlate{Plate: "ABC-1234", NormalizedPlate: "ABC1234"}))

	err := repo.Create(ctx, &model.AuthorizedPlate{Plate: "abc 1234", NormalizedPlate: "ABC1234"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicatePlate)
}

func TestPlateRepository_ConcurrentDuplicateCreate(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	const writers = 2
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &model.AuthorizedPlate{Plate: "ABC-1234", NormalizedPlate: "ABC1234"})
		}(i)
	}
	wg.Wait()

	// The unique index decides the race: exactly one insert wins.
	successes, duplicates := 0, 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicatePlate)
		duplicates++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, duplicates)
}

func TestPlateRepository_SaveSelfIsNotConflict(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	plate := &model.AuthorizedPlate{Plate: "ABC-1234", NormalizedPlate: "ABC1234"}
	require.NoError(t, repo.Create(ctx, plate))

	plate.Description = "updated description"
	assert.NoError(t, repo.Save(ctx, plate))
}

func TestPlateRepository_SaveCollidingWithOtherEntry(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.AuthorizedPlate{Plate: "ABC-1234", NormalizedPlate: "ABC1234"}))
	other := &model.AuthorizedPlate{Plate: "XYZ-9999", NormalizedPlate: "XYZ9999"}
	require.NoError(t, repo.Create(ctx, other))

	other.Plate = "ABC-1234"
	other.NormalizedPlate = "ABC1234"
	assert.ErrorIs(t, repo.Save(ctx, other), apperrors.ErrDuplicatePlate)
}

func TestPlateRepository_Delete(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	plate := &model.AuthorizedPlate{Plate: "ABC-1234", NormalizedPlate: "ABC1234"}
	require.NoError(t, repo.Create(ctx, plate))

	require.NoError(t, repo.Delete(ctx, plate.ID))
	_, err := repo.FindByID(ctx, plate.ID)
	assert.ErrorIs(t, err, apperrors.ErrPlateNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), apperrors.ErrPlateNotFound)
}

func TestPlateRepository_ListPage(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		plate := &model.AuthorizedPlate{
			Plate:           fmt.Sprintf("AB%c-1234", 'C'+i),
			NormalizedPlate: fmt.Sprintf("AB%c1234", 'C'+i),
		}
		require.NoError(t, repo.Create(ctx, plate))
	}

	items, total, err := repo.ListPage(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.EqualValues(t, 5, total)

	items, total, err = repo.ListPage(ctx, 4, 2)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.EqualValues(t, 5, total)
}

func TestPlateRepository_WithTransactionRollsBack(t *testing.T) {
	repo := NewPlateRepository(newTestDB(t))
	ctx := context.Background()

	err := repo.WithTransaction(ctx, func(tx PlateRepository) error {
		if err := tx.Create(ctx, &model.AuthorizedPlate{Plate: "ABC-1234", NormalizedPlate: "ABC1234"}); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	_, err = repo.FindByNormalizedPlate(ctx, "ABC1234")
	assert.ErrorIs(t, err, apperrors.ErrPlateNotFound)
}
