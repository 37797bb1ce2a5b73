package draft_models

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory Store for exercising the draft state
// machine without Redis.
type memoryStore struct {
	drafts map[uuid.UUID]Draft
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: make(map[uuid.UUID]Draft)}
}

func (s *memoryStore) Get(_ context.Context, userID uuid.UUID) (*Draft, error) {
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, ErrNoDraft
	}
	copied := draft
	return &copied, nil
}

func (s *memoryStore) Save(_ context.Context, userID uuid.UUID, draft *Draft) error {
	s.drafts[userID] = *draft
	return nil
}

func (s *memoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	delete(s.drafts, userID)
	return nil
}

func TestDraftStateMachine(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	serviceID := uuid.New()

	t.Run("StepsBeforeServiceFail", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		_, err := m.ChooseProducts(ctx, userID, []ProductSelection{{ID: 1, Quantity: 2}})
		assert.ErrorIs(t, err, ErrNoDraft)

		_, err = m.Schedule(ctx, userID, "2026-09-15", "10:00", "")
		assert.ErrorIs(t, err, ErrNoDraft)

		_, err = m.Get(ctx, userID)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("FullProgression", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		draft, err := m.ChooseService(ctx, userID, serviceID, "Weed Control", 65)
		require.NoError(t, err)
		assert.Equal(t, StepServiceChosen, draft.Step)
		assert.Equal(t, "Weed Control", draft.ServiceName)
		assert.Equal(t, 65.0, draft.Price)

		draft, err = m.ChooseProducts(ctx, userID, []ProductSelection{{ID: 2, Quantity: 1}})
		require.NoError(t, err)
		assert.Equal(t, StepProductsChosen, draft.Step)
		assert.InDelta(t, 45.99, draft.ProductsTotal, 0.001)

		draft, err = m.Schedule(ctx, userID, "2026-09-15", "10:00", "Gate code 4411")
		require.NoError(t, err)
		assert.Equal(t, StepScheduled, draft.Step)
		assert.Equal(t, "2026-09-15", draft.ScheduledDate)
		assert.Equal(t, "10:00", draft.ScheduledTime)
		assert.Equal(t, "Gate code 4411", draft.SpecialInstructions)
	})

	t.Run("SubtotalRecomputedFromCatalog", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		_, err := m.ChooseService(ctx, userID, serviceID, "Lawn Mowing", 50)
		require.NoError(t, err)

		// Client-supplied prices are ignored.
		draft, err := m.ChooseProducts(ctx, userID, []ProductSelection{
			{ID: 1, Quantity: 2, Price: 0.01},
			{ID: 3, Quantity: 0, Price: 999},
		})
		require.NoError(t, err)
		assert.InDelta(t, 2*29.99+19.99, draft.ProductsTotal, 0.001)
		assert.Equal(t, 1, draft.Products[1].Quantity, "quantity defaults to 1")
		assert.InDelta(t, 29.99, draft.Products[0].Price, 0.001)
	})

	t.Run("UnknownProductRejected", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		_, err := m.ChooseService(ctx, userID, serviceID, "Aeration", 100)
		require.NoError(t, err)

		_, err = m.ChooseProducts(ctx, userID, []ProductSelection{{ID: 999}})
		assert.Error(t, err)
	})

	t.Run("StepNeverRollsBack", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		_, err := m.ChooseService(ctx, userID, serviceID, "Overseeding", 85)
		require.NoError(t, err)
		_, err = m.Schedule(ctx, userID, "2026-10-01", "14:00", "")
		require.NoError(t, err)

		// Revisiting the products screen keeps the schedule and step.
		draft, err := m.ChooseProducts(ctx, userID, []ProductSelection{{ID: 5, Quantity: 3}})
		require.NoError(t, err)
		assert.Equal(t, StepScheduled, draft.Step)
		assert.Equal(t, "2026-10-01", draft.ScheduledDate)
	})

	t.Run("RestartDiscardsDraft", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		_, err := m.ChooseService(ctx, userID, serviceID, "Lawn Mowing", 50)
		require.NoError(t, err)
		_, err = m.ChooseProducts(ctx, userID, []ProductSelection{{ID: 4}})
		require.NoError(t, err)

		otherService := uuid.New()
		draft, err := m.ChooseService(ctx, userID, otherService, "Leaf Removal", 60)
		require.NoError(t, err)
		assert.Equal(t, StepServiceChosen, draft.Step)
		assert.Empty(t, draft.Products)
		assert.Zero(t, draft.ProductsTotal)
	})

	t.Run("ClearRemovesDraft", func(t *testing.T) {
		m := NewManager(newMemoryStore())

		_, err := m.ChooseService(ctx, userID, serviceID, "Fertilization", 75)
		require.NoError(t, err)

		require.NoError(t, m.Clear(ctx, userID))
		_, err = m.Get(ctx, userID)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("DraftsAreScopedPerUser", func(t *testing.T) {
		m := NewManager(newMemoryStore())
		other := uuid.New()

		_, err := m.ChooseService(ctx, userID, serviceID, "Aeration", 100)
		require.NoError(t, err)

		_, err = m.Get(ctx, other)
		assert.ErrorIs(t, err, ErrNoDraft)
	})
}
