package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/students-api/internal/dberr"
	"github.com/deppfellow/students-api/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = model.StudentFields{Name: "Ada", Email: "ada@x.io", Cohort: "2024"}

func TestMemory_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStudentRepository()

	created, err := repo.Create(ctx, ada)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, ada, created.Fields())

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byEmail, err := repo.FindByEmail(ctx, "ada@x.io")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestMemory_ListIsInsertionOrderedAndNeverNil(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStudentRepository()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, _ := repo.Create(ctx, ada)
	second, _ := repo.Create(ctx, model.StudentFields{Name: "Grace", Email: "grace@x.io", Cohort: "2023"})

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestMemory_CreateRejectsMissingFields(t *testing.T) {
	repo := NewMemoryStudentRepository()

	_, err := repo.Create(context.Background(), model.StudentFields{Name: "Ada"})
	assert.True(t, dberr.Is(err, dberr.Validation))

	n, _ := repo.Count(context.Background())
	assert.Zero(t, n)
}

func TestMemory_ReplacePrecedence(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStudentRepository()
	existing, _ := repo.Create(ctx, ada)

	_, err := repo.ReplaceByID(ctx, "not-a-uuid", model.StudentFields{})
	assert.Equal(t, dberr.MalformedID, dberr.KindOf(err))

	_, err = repo.ReplaceByID(ctx, uuid.NewString(), model.StudentFields{Name: "x"})
	assert.Equal(t, dberr.Validation, dberr.KindOf(err))

	_, err = repo.ReplaceByID(ctx, uuid.NewString(), ada)
	assert.Equal(t, dberr.NotFound, dberr.KindOf(err))

	updated, err := repo.ReplaceByID(ctx, existing.ID, model.StudentFields{Name: "Ada L.", Email: "ada@y.io", Cohort: "2025"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, "Ada L.", updated.Name)
}

func TestMemory_DeleteReturnsRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStudentRepository()
	existing, _ := repo.Create(ctx, ada)

	deleted, err := repo.DeleteByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, deleted)

	_, err = repo.FindByID(ctx, existing.ID)
	assert.True(t, dberr.Is(err, dberr.NotFound))

	_, err = repo.DeleteByID(ctx, existing.ID)
	assert.True(t, dberr.Is(err, dberr.NotFound))

	_, err = repo.DeleteByID(ctx, "123")
	assert.True(t, dberr.Is(err, dberr.MalformedID))
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStudentRepository().List(ctx)
	assert.Equal(t, dberr.Store, dberr.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemory_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStudentRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, ada)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 50, n)
}
