package draft_models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dudeandirt/lawncare/logger"
	"github.com/dudeandirt/lawncare/models/product_models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoDraft is returned when a booking step is attempted without the
// prior step's draft in place. Handlers route the client back to step 1
// on this error instead of surfacing a server fault.
var ErrNoDraft = errors.New("no booking data found")

const (
	DraftKeyPrefix = "booking_draft:"
	DraftTTL       = 30 * time.Minute
)

// Draft step progression. Transitions only move forward; revisiting an
// earlier screen never rolls back recorded fields.
const (
	StepServiceChosen  = 1
	StepProductsChosen = 2
	StepScheduled      = 3
)

// ProductSelection is one product line attached to a draft.
type ProductSelection struct {
	ID       int     `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Draft is the session-scoped accumulation of booking choices prior to
// confirmation. It is write-only scratch state consumed exactly once by
// the finalizer; it is never written to durable storage.
type Draft struct {
	ServiceID           uuid.UUID          `json:"service_id"`
	ServiceName         string             `json:"service_name"`
	Price               float64            `json:"price"`
	Products            []ProductSelection `json:"products,omitempty"`
	ProductsTotal       float64            `json:"products_total"`
	ScheduledDate       string             `json:"scheduled_date,omitempty"`
	ScheduledTime       string             `json:"scheduled_time,omitempty"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	Step                int                `json:"step"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// Store persists drafts keyed by the owning user. The production store is
// Redis; the interface exists so the state machine can be exercised
// without a live Redis in tests.
type Store interface {
	Get(ctx context.Context, userID uuid.UUID) (*Draft, error)
	Save(ctx context.Context, userID uuid.UUID, draft *Draft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RedisStore stores drafts as JSON under booking_draft:<userID> with a
// sliding TTL. Each save refreshes the expiry.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisStore creates a RedisStore with the default draft TTL.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client, TTL: DraftTTL}
}

func draftKey(userID uuid.UUID) string {
	return DraftKeyPrefix + userID.String()
}

func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (*Draft, error) {
	data, err := s.Client.Get(ctx, draftKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoDraft
		}
		logger.ErrorLogger.Errorf("Redis error fetching draft for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch booking draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		logger.ErrorLogger.Errorf("Failed to parse booking draft for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to parse booking draft: %w", err)
	}
	return &draft, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uuid.UUID, draft *Draft) error {
	draft.UpdatedAt = time.Now()
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}

	if err := s.Client.Set(ctx, draftKey(userID), data, s.TTL).Err(); err != nil {
		logger.ErrorLogger.Errorf("Redis error storing draft for user %s: %v", userID, err)
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.Client.Del(ctx, draftKey(userID)).Err(); err != nil {
		logger.ErrorLogger.Errorf("Redis error deleting draft for user %s: %v", userID, err)
		return fmt.Errorf("failed to clear booking draft: %w", err)
	}
	return nil
}

// Manager applies the legal draft transitions on top of a Store. All
// mutations are scoped to the authenticated user's draft; no durable
// write happens here.
type Manager struct {
	Store Store
}

// NewManager creates a draft Manager.
func NewManager(store Store) *Manager {
	return &Manager{Store: store}
}

// ChooseService initializes (or restarts) the draft with the selected
// service. Valid from any state: starting over discards a previous draft.
func (m *Manager) ChooseService(ctx context.Context, userID uuid.UUID, serviceID uuid.UUID, serviceName string, price float64) (*Draft, error) {
	draft := &Draft{
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Price:       price,
		Step:        StepServiceChosen,
	}
	if err := m.Store.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	logger.InfoLogger.Infof("Draft initialized for user %s with service %s", userID, serviceID)
	return draft, nil
}

// ChooseProducts attaches a product selection to an existing draft. The
// subtotal is recomputed from the product catalog; client-supplied prices
// are not trusted.
func (m *Manager) ChooseProducts(ctx context.Context, userID uuid.UUID, products []ProductSelection) (*Draft, error) {
	draft, err := m.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := 0.0
	priced := make([]ProductSelection, 0, len(products))
	for _, sel := range products {
		p, err := product_models.GetByID(sel.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid product %d: %w", sel.ID, err)
		}
		qty := sel.Quantity
		if qty <= 0 {
			qty = 1
		}
		priced = append(priced, ProductSelection{ID: p.ID, Quantity: qty, Price: p.Price})
		total += p.Price * float64(qty)
	}

	draft.Products = priced
	draft.ProductsTotal = total
	if draft.Step < StepProductsChosen {
		draft.Step = StepProductsChosen
	}

	if err := m.Store.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	logger.InfoLogger.Infof("Draft for user %s updated with %d products (subtotal %.2f)", userID, len(priced), total)
	return draft, nil
}

// Schedule attaches the requested date, time and instructions to an
// existing draft.
func (m *Manager) Schedule(ctx context.Context, userID uuid.UUID, date, timeOfDay, instructions string) (*Draft, error) {
	draft, err := m.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	draft.ScheduledDate = date
	draft.ScheduledTime = timeOfDay
	draft.SpecialInstructions = instructions
	if draft.Step < StepScheduled {
		draft.Step = StepScheduled
	}

	if err := m.Store.Save(ctx, userID, draft); err != nil {
		return nil, err
	}
	logger.InfoLogger.Infof("Draft for user %s scheduled for %s %s", userID, date, timeOfDay)
	return draft, nil
}

// Get returns the user's current draft, or ErrNoDraft.
func (m *Manager) Get(ctx context.Context, userID uuid.UUID) (*Draft, error) {
	return m.Store.Get(ctx, userID)
}

// Clear removes the user's draft. Called by the finalizer after a
// successful confirmation.
func (m *Manager) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Store.Delete(ctx, userID)
}
