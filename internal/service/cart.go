package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/events"
	"github.com/dukerupert/vendas/internal/telemetry"
)

// NotifyingCartService decorates a domain.CartService. After a mutation has
// committed it records business metrics and publishes a cart event.
// Publication failures are logged and counted but never returned: the
// cart has already changed.
type NotifyingCartService struct {
	next      domain.CartService
	publisher events.Publisher
	metrics   *telemetry.BusinessMetrics
	logger    *slog.Logger
	now       func() time.Time
}

// Compile-time check that NotifyingCartService implements domain.CartService.
var _ domain.CartService = (*NotifyingCartService)(nil)

// NewNotifyingCartService wraps next. A nil publisher discards events and
// nil metrics disables recording.
func NewNotifyingCartService(next domain.CartService, publisher events.Publisher, metrics *telemetry.BusinessMetrics, logger *slog.Logger) *NotifyingCartService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NotifyingCartService{
		next:      next,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// GetCart passes through.
func (s *NotifyingCartService) GetCart(ctx context.Context, userID int64) (*domain.CartProjection, error) {
	return s.next.GetCart(ctx, userID)
}

// AddToCart delegates, then records metrics and publishes item_added.
func (s *NotifyingCartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) (*domain.CartProjection, error) {
	p, err := s.next.AddToCart(ctx, userID, productID, quantity)
	s.recordOutcome("add", err)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CartItemsAdded.Add(float64(quantity))
		s.metrics.CartValue.Observe(p.Total().InexactFloat64())
		if p.Cart != nil && p.Cart.IsNew() {
			s.metrics.CartCreated.Inc()
		}
	}

	s.publish(ctx, events.TypeItemAdded, productID, p)
	return p, nil
}

// RemoveFromCart delegates, then records metrics and publishes item_removed.
func (s *NotifyingCartService) RemoveFromCart(ctx context.Context, userID, productID int64, quantity *int) (*domain.CartProjection, error) {
	p, err := s.next.RemoveFromCart(ctx, userID, productID, quantity)
	s.recordOutcome("remove", err)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		mode := "line"
		if _, ok := p.Line(productID); ok {
			mode = "partial"
		}
		s.metrics.CartLinesRemoved.WithLabelValues(mode).Inc()
		s.metrics.CartValue.Observe(p.Total().InexactFloat64())
	}

	s.publish(ctx, events.TypeItemRemoved, productID, p)
	return p, nil
}

func (s *NotifyingCartService) recordOutcome(operation string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "client_error"
		if domain.ErrorCode(err) == domain.EINTERNAL {
			outcome = "error"
		}
	}
	s.metrics.CartMutations.WithLabelValues(operation, outcome).Inc()
}

func (s *NotifyingCartService) publish(ctx context.Context, eventType string, productID int64, p *domain.CartProjection) {
	event := events.CartEvent{
		Type:       eventType,
		UserID:     p.UserID,
		ProductID:  productID,
		Total:      p.Total(),
		OccurredAt: s.now().UTC(),
	}
	if p.Cart != nil {
		event.CartID = p.Cart.ID
	}
	if line, ok := p.Line(productID); ok {
		event.Quantity = line.Quantity
	}

	outcome := "success"
	if err := s.publisher.Publish(ctx, event); err != nil {
		outcome = "error"
		s.logger.Warn("failed to publish cart event",
			"type", eventType,
			"cart_id", event.CartID,
			"user_id", event.UserID,
			"error", err,
		)
	}
	if s.metrics != nil {
		s.metrics.EventsPublished.WithLabelValues(eventType, outcome).Inc()
	}
}
