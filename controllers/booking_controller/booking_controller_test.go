package booking_controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dudeandirt/lawncare/models/booking_models"
	"github.com/dudeandirt/lawncare/models/draft_models"
	"github.com/dudeandirt/lawncare/models/service_models"
	"github.com/dudeandirt/lawncare/models/shared_models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory draft store so the wizard handlers can be
// exercised without Redis or Postgres.
type memoryStore struct {
	drafts map[uuid.UUID]draft_models.Draft
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: make(map[uuid.UUID]draft_models.Draft)}
}

func (s *memoryStore) Get(_ context.Context, userID uuid.UUID) (*draft_models.Draft, error) {
	draft, ok := s.drafts[userID]
	if !ok {
		return nil, draft_models.ErrNoDraft
	}
	copied := draft
	return &copied, nil
}

func (s *memoryStore) Save(_ context.Context, userID uuid.UUID, draft *draft_models.Draft) error {
	s.drafts[userID] = *draft
	return nil
}

func (s *memoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	delete(s.drafts, userID)
	return nil
}

func newWizardController(t *testing.T, userID uuid.UUID) (*gin.Engine, *BookingController) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	drafts := draft_models.NewManager(newMemoryStore())
	bc := NewBookingController(nil, drafts, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sub", userID.String())
	})
	r.POST("/booking/step2", bc.Step2)
	r.POST("/booking/step3", bc.Step3)
	r.POST("/booking/step4", bc.Step4Confirm)
	r.GET("/booking/draft", bc.GetDraft)
	return r, bc
}

func newWizardRouter(t *testing.T, userID uuid.UUID) (*gin.Engine, *draft_models.Manager) {
	t.Helper()
	r, bc := newWizardController(t, userID)
	return r, bc.Drafts
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWizardWithoutDraft(t *testing.T) {
	userID := uuid.New()
	r, _ := newWizardRouter(t, userID)

	assertNoDraft := func(t *testing.T, w *httptest.ResponseRecorder) {
		t.Helper()
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "No booking data found", resp["message"])
		assert.Equal(t, "/booking/step1", resp["redirect"])
	}

	t.Run("ProductsBeforeService", func(t *testing.T) {
		w := postJSON(r, "/booking/step2", gin.H{
			"products": []gin.H{{"id": 1, "quantity": 2}},
		})
		assertNoDraft(t, w)
	})

	t.Run("ScheduleBeforeService", func(t *testing.T) {
		w := postJSON(r, "/booking/step3", gin.H{
			"scheduled_date": "2026-09-15",
			"scheduled_time": "10:00",
		})
		assertNoDraft(t, w)
	})

	t.Run("DraftFetch", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/booking/draft", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assertNoDraft(t, w)
	})
}

func TestWizardDraftSteps(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	r, drafts := newWizardRouter(t, userID)

	serviceID := uuid.New()
	_, err := drafts.ChooseService(ctx, userID, serviceID, "Lawn Mowing", 50)
	require.NoError(t, err)

	t.Run("ProductsStep", func(t *testing.T) {
		w := postJSON(r, "/booking/step2", gin.H{
			"products":       []gin.H{{"id": 1, "quantity": 2}, {"id": 3}},
			"products_total": 0.05, // ignored
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])

		draft, err := drafts.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, draft_models.StepProductsChosen, draft.Step)
		assert.InDelta(t, 2*29.99+19.99, draft.ProductsTotal, 0.001)
	})

	t.Run("UnknownProductRejected", func(t *testing.T) {
		w := postJSON(r, "/booking/step2", gin.H{
			"products": []gin.H{{"id": 999}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ScheduleStep", func(t *testing.T) {
		w := postJSON(r, "/booking/step3", gin.H{
			"scheduled_date":       "2026-09-15",
			"scheduled_time":       "10:00",
			"special_instructions": "Gate code 4411",
		})
		require.Equal(t, http.StatusOK, w.Code)

		draft, err := drafts.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, draft_models.StepScheduled, draft.Step)
		assert.Equal(t, "2026-09-15", draft.ScheduledDate)
		assert.Equal(t, "Gate code 4411", draft.SpecialInstructions)
	})

	t.Run("ScheduleMissingFields", func(t *testing.T) {
		w := postJSON(r, "/booking/step3", gin.H{"scheduled_date": "2026-09-15"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ConfirmWithoutDraft", func(t *testing.T) {
		other := uuid.New()
		r2, _ := newWizardRouter(t, other)

		w := postJSON(r2, "/booking/step4", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "/booking/step1", resp["redirect"])
	})

	t.Run("DraftResume", func(t *testing.T) {
		req, _ := http.NewRequest("GET", "/booking/draft", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool               `json:"success"`
			Draft   draft_models.Draft `json:"draft"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, serviceID, resp.Draft.ServiceID)
		assert.Equal(t, draft_models.StepScheduled, resp.Draft.Step)
	})
}

func TestWizardConfirm(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	serviceID := uuid.New()
	service := &service_models.Service{ID: serviceID, Name: "Weed Control", Price: 65, Active: true}

	seedDraft := func(t *testing.T, drafts *draft_models.Manager) {
		t.Helper()
		_, err := drafts.ChooseService(ctx, userID, serviceID, service.Name, service.Price)
		require.NoError(t, err)
		_, err = drafts.ChooseProducts(ctx, userID, []draft_models.ProductSelection{{ID: 2, Quantity: 1}})
		require.NoError(t, err)
		_, err = drafts.Schedule(ctx, userID, "2026-09-15", "10:00", "")
		require.NoError(t, err)
	}

	t.Run("ConfirmPersistsAndClearsDraft", func(t *testing.T) {
		r, bc := newWizardController(t, userID)
		var inserted *booking_models.Booking
		bc.lookupService = func(_ context.Context, _ *pgxpool.Pool, id uuid.UUID) (*service_models.Service, error) {
			require.Equal(t, serviceID, id)
			return service, nil
		}
		bc.insertBooking = func(_ context.Context, _ *pgxpool.Pool, booking *booking_models.Booking) error {
			inserted = booking
			return nil
		}
		seedDraft(t, bc.Drafts)

		w := postJSON(r, "/booking/step4", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		assert.Equal(t, "Booking confirmed successfully!", resp["message"])

		require.NotNil(t, inserted)
		assert.InDelta(t, 110.99, inserted.TotalPrice, 0.001)
		assert.Equal(t, shared_models.BookingStatusConfirmed, inserted.Status)
		assert.Equal(t, userID, inserted.UserID)

		_, err := bc.Drafts.Get(ctx, userID)
		assert.ErrorIs(t, err, draft_models.ErrNoDraft)

		// A second confirm finds no draft and routes back to step 1.
		w = postJSON(r, "/booking/step4", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "No booking data found", resp["message"])
		assert.Equal(t, "/booking/step1", resp["redirect"])
	})

	t.Run("PersistFailureKeepsDraft", func(t *testing.T) {
		r, bc := newWizardController(t, userID)
		bc.lookupService = func(_ context.Context, _ *pgxpool.Pool, _ uuid.UUID) (*service_models.Service, error) {
			return service, nil
		}
		bc.insertBooking = func(_ context.Context, _ *pgxpool.Pool, _ *booking_models.Booking) error {
			return errors.New("connection reset")
		}
		seedDraft(t, bc.Drafts)

		w := postJSON(r, "/booking/step4", gin.H{})
		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Error confirming booking", resp["message"])

		draft, err := bc.Drafts.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, draft_models.StepScheduled, draft.Step)
	})

	t.Run("MissingServiceSurfacedDraftKept", func(t *testing.T) {
		r, bc := newWizardController(t, userID)
		bc.lookupService = func(_ context.Context, _ *pgxpool.Pool, _ uuid.UUID) (*service_models.Service, error) {
			return nil, service_models.ErrServiceNotFound
		}
		seedDraft(t, bc.Drafts)

		w := postJSON(r, "/booking/step4", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Service not found", resp["message"])

		_, err := bc.Drafts.Get(ctx, userID)
		require.NoError(t, err)
	})

	t.Run("BadScheduleSurfacedDraftKept", func(t *testing.T) {
		r, bc := newWizardController(t, userID)
		bc.lookupService = func(_ context.Context, _ *pgxpool.Pool, _ uuid.UUID) (*service_models.Service, error) {
			return service, nil
		}
		_, err := bc.Drafts.ChooseService(ctx, userID, serviceID, service.Name, service.Price)
		require.NoError(t, err)
		_, err = bc.Drafts.Schedule(ctx, userID, "09/15/2026", "10am", "")
		require.NoError(t, err)

		w := postJSON(r, "/booking/step4", gin.H{})
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, false, resp["success"])
		assert.Equal(t, "Invalid scheduled date or time", resp["message"])

		_, err = bc.Drafts.Get(ctx, userID)
		require.NoError(t, err)
	})
}
