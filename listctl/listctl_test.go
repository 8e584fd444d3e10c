package listctl

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grade struct {
	ID    uuid.UUID
	Name  string
	Order int
}

func gradeController(fetch func(ctx context.Context) ([]grade, error)) *Controller[grade] {
	return New(Config[grade]{
		Fetch: fetch,
		ID:    func(g grade) uuid.UUID { return g.ID },
		Less:  func(a, b grade) bool { return a.Order < b.Order },
	})
}

func TestLoad_ReplacesWholesaleAndSorts(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	g2 := grade{ID: uuid.New(), Name: "2. ročník", Order: 2}

	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		return []grade{g2, g1}, nil
	})

	require.NoError(t, ctrl.Load(context.Background()))

	items := ctrl.Items()
	require.Len(t, items, 2)
	assert.Equal(t, g1, items[0], "list is kept in order")
	assert.Equal(t, g2, items[1])
	assert.False(t, ctrl.Loading())
	assert.NoError(t, ctrl.Err())
}

func TestLoad_FailureKeepsPriorList(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	fail := false

	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return []grade{g1}, nil
	})

	require.NoError(t, ctrl.Load(context.Background()))

	fail = true
	err := ctrl.Load(context.Background())
	require.Error(t, err)

	assert.Equal(t, []grade{g1}, ctrl.Items(), "failed reload keeps the prior list")
	assert.False(t, ctrl.Loading(), "loading clears even on failure")
	assert.Error(t, ctrl.Err())
}

func TestCreate_AppendsOnlyAfterSuccess(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	g3 := grade{ID: uuid.New(), Name: "3. ročník", Order: 3}

	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		return []grade{g1, g3}, nil
	})
	require.NoError(t, ctrl.Load(context.Background()))

	// Failed create leaves the list pointwise identical.
	before := ctrl.Items()
	_, err := ctrl.Create(context.Background(), func(ctx context.Context) (grade, error) {
		return grade{}, errors.New("duplicate name")
	})
	require.Error(t, err)
	assert.Equal(t, before, ctrl.Items())

	// Successful create merges the canonical entity, re-sorted.
	g2 := grade{ID: uuid.New(), Name: "2. ročník", Order: 2}
	created, err := ctrl.Create(context.Background(), func(ctx context.Context) (grade, error) {
		return g2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, g2, created)
	assert.Equal(t, []grade{g1, g2, g3}, ctrl.Items())
	assert.NoError(t, ctrl.Err())
}

func TestUpdate_ReplacesByIDAfterSuccess(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	g2 := grade{ID: uuid.New(), Name: "2. ročník", Order: 2}

	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		return []grade{g1, g2}, nil
	})
	require.NoError(t, ctrl.Load(context.Background()))

	// Failure leaves the entity untouched.
	err := ctrl.Update(context.Background(), g1.ID, func(ctx context.Context) (grade, error) {
		return grade{}, errors.New("rejected")
	})
	require.Error(t, err)
	assert.Equal(t, []grade{g1, g2}, ctrl.Items())

	// Success replaces the entity and re-sorts on the new order.
	moved := grade{ID: g1.ID, Name: "1. ročník", Order: 3}
	err = ctrl.Update(context.Background(), g1.ID, func(ctx context.Context) (grade, error) {
		return moved, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []grade{g2, moved}, ctrl.Items())
}

func TestRemove_DeletesOnlyAfterConfirm(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	g2 := grade{ID: uuid.New(), Name: "2. ročník", Order: 2}

	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		return []grade{g1, g2}, nil
	})
	require.NoError(t, ctrl.Load(context.Background()))

	// A failed delete keeps the entity visible.
	err := ctrl.Remove(context.Background(), g1.ID, func(ctx context.Context) error {
		return errors.New("grade still has students")
	})
	require.Error(t, err)
	assert.Equal(t, []grade{g1, g2}, ctrl.Items())

	// Confirmed delete drops exactly the target entity.
	err = ctrl.Remove(context.Background(), g1.ID, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []grade{g2}, ctrl.Items())
}

func TestRemove_UnknownIDIsHarmless(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		return []grade{g1}, nil
	})
	require.NoError(t, ctrl.Load(context.Background()))

	err := ctrl.Remove(context.Background(), uuid.New(), func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []grade{g1}, ctrl.Items())
}

func TestClose_DiscardsLateResults(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}

	started := make(chan struct{})
	release := make(chan struct{})
	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		close(started)
		<-release
		return []grade{g1}, nil
	})

	done := make(chan error)
	go func() {
		done <- ctrl.Load(context.Background())
	}()

	<-started
	ctrl.Close()
	close(release)

	require.NoError(t, <-done)
	assert.Empty(t, ctrl.Items(), "results landing after Close never mutate state")

	// Every later operation on a closed controller is inert.
	_, err := ctrl.Create(context.Background(), func(ctx context.Context) (grade, error) {
		return g1, nil
	})
	require.NoError(t, err)
	assert.Empty(t, ctrl.Items())
}

func TestItems_ReturnsCopy(t *testing.T) {
	g1 := grade{ID: uuid.New(), Name: "1. ročník", Order: 1}
	ctrl := gradeController(func(ctx context.Context) ([]grade, error) {
		return []grade{g1}, nil
	})
	require.NoError(t, ctrl.Load(context.Background()))

	items := ctrl.Items()
	items[0].Name = "mutated"

	assert.Equal(t, "1. ročník", ctrl.Items()[0].Name, "callers cannot mutate internal state")
}
