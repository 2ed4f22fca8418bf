package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/observability"
	"github.com/boddenberg/momentum-bfa-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var sessionTracer = otel.Tracer("service/session")

// Session is one analyst's dashboard. Operations on a session are serialised
// by its mutex, so each Dashboard only ever sees one operation at a time.
type Session struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time
	dashboard *Dashboard
}

// SessionService owns the dashboard sessions.
type SessionService struct {
	catalog    *Catalog
	calculator *Calculator
	store      port.RecommendationStore
	sessions   port.Cache[*Session]
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSessionService creates the session service with all dependencies injected.
func NewSessionService(
	catalog *Catalog,
	calculator *Calculator,
	store port.RecommendationStore,
	sessions port.Cache[*Session],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		catalog:    catalog,
		calculator: calculator,
		store:      store,
		sessions:   sessions,
		metrics:    metrics,
		logger:     logger,
	}
}

// Create opens a new session. An empty portfolio defaults to Credit.
func (s *SessionService) Create(ctx context.Context, portfolio domain.PortfolioType) (*domain.DashboardState, error) {
	_, span := sessionTracer.Start(ctx, "SessionService.Create")
	defer span.End()

	dash := NewDashboard(s.catalog, s.calculator)
	if portfolio != "" {
		if err := dash.SetPortfolioType(portfolio); err != nil {
			return nil, err
		}
	}

	sess := &Session{
		id:        uuid.New().String(),
		createdAt: time.Now().UTC(),
		dashboard: dash,
	}
	s.sessions.Set(sess.id, sess)
	s.metrics.IncrSession("created")
	span.SetAttributes(attribute.String("session.id", sess.id))

	s.logger.Info("dashboard session created",
		zap.String("session_id", sess.id),
		zap.String("portfolio_type", string(dash.PortfolioType())),
	)
	return sess.state(), nil
}

// Get returns the current state of a session.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.DashboardState, error) {
	var state *domain.DashboardState
	err := s.with(ctx, "SessionService.Get", id, func(sess *Session) error {
		state = sess.state()
		return nil
	})
	return state, err
}

// Delete discards a session.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	_, span := sessionTracer.Start(ctx, "SessionService.Delete")
	defer span.End()

	if _, err := s.lookup(id); err != nil {
		return err
	}
	s.sessions.Delete(id)
	s.metrics.IncrSession("deleted")
	s.logger.Info("dashboard session deleted", zap.String("session_id", id))
	return nil
}

// Toggle flips one transaction type. Unknown tokens leave the selection as is
// and are reported with applied=false.
func (s *SessionService) Toggle(ctx context.Context, id string, token string) (*domain.ToggleResponse, error) {
	var resp *domain.ToggleResponse
	err := s.with(ctx, "SessionService.Toggle", id, func(sess *Session) error {
		applied := sess.dashboard.Toggle(domain.TransactionType(token))
		s.metrics.IncrToggle(applied)

		if !applied {
			s.logger.Warn("toggle ignored: unknown transaction type",
				zap.String("session_id", id),
				zap.String("transaction_type", token),
			)
		} else if !s.catalog.Consistent(sess.dashboard.selection) {
			s.logger.Error("selection left inconsistent after toggle",
				zap.String("session_id", id),
				zap.String("transaction_type", token),
				zap.Any("selection", sess.dashboard.selection),
			)
		}

		resp = &domain.ToggleResponse{Applied: applied, State: sess.state()}
		return nil
	})
	return resp, err
}

// SetDuration replaces the session's duration.
func (s *SessionService) SetDuration(ctx context.Context, id string, months int) (*domain.DashboardState, error) {
	var state *domain.DashboardState
	err := s.with(ctx, "SessionService.SetDuration", id, func(sess *Session) error {
		if err := sess.dashboard.SetDuration(domain.Duration(months)); err != nil {
			return err
		}
		state = sess.state()
		return nil
	})
	return state, err
}

// SetPortfolio switches the session's portfolio.
func (s *SessionService) SetPortfolio(ctx context.Context, id string, portfolio domain.PortfolioType) (*domain.DashboardState, error) {
	var state *domain.DashboardState
	err := s.with(ctx, "SessionService.SetPortfolio", id, func(sess *Session) error {
		if err := sess.dashboard.SetPortfolioType(portfolio); err != nil {
			return err
		}
		state = sess.state()
		return nil
	})
	return state, err
}

// SelectRecommendation sets the recommendation being explored. It must belong
// to the session's portfolio. An empty id clears the selection.
func (s *SessionService) SelectRecommendation(ctx context.Context, id, recommendationID string) (*domain.DashboardState, error) {
	var state *domain.DashboardState
	err := s.with(ctx, "SessionService.SelectRecommendation", id, func(sess *Session) error {
		if recommendationID == "" {
			sess.dashboard.SelectRecommendation(nil)
			state = sess.state()
			return nil
		}

		rec, err := s.store.GetRecommendation(ctx, recommendationID)
		if err != nil {
			return err
		}
		if rec.PortfolioType != sess.dashboard.PortfolioType() {
			return &domain.ErrValidation{
				Field:   "recommendationId",
				Message: "recommendation " + rec.ID + " belongs to the " + string(rec.PortfolioType) + " portfolio",
			}
		}

		sess.dashboard.SelectRecommendation(&domain.SelectedRecommendation{ID: rec.ID, Title: rec.Title})
		state = sess.state()
		return nil
	})
	return state, err
}

// Calculate publishes a new result for the session. When the guard fails
// (empty selection or zero duration) it returns ErrNotCalculable and the
// previous result is kept.
func (s *SessionService) Calculate(ctx context.Context, id string) (*domain.DashboardState, error) {
	var state *domain.DashboardState
	err := s.with(ctx, "SessionService.Calculate", id, func(sess *Session) error {
		start := time.Now()
		res, err := sess.dashboard.Calculate()
		s.metrics.RecordRequestDuration("calculate", time.Since(start))

		var notCalculable *domain.ErrNotCalculable
		switch {
		case errors.As(err, &notCalculable):
			s.metrics.IncrCalculation("dashboard", "rejected")
			return err
		case err != nil:
			s.metrics.IncrCalculation("dashboard", "error")
			s.logger.Error("dashboard calculation failed",
				zap.String("session_id", id),
				zap.Error(err),
			)
			return err
		}

		s.metrics.IncrCalculation("dashboard", "ok")
		s.logger.Debug("dashboard calculation",
			zap.String("session_id", id),
			zap.Int("selected_types", len(sess.dashboard.selection)),
			zap.Int("duration_months", int(sess.dashboard.Duration())),
			zap.Int64("value", res.Value),
		)
		state = sess.state()
		return nil
	})
	return state, err
}

func (s *SessionService) lookup(id string) (*Session, error) {
	sess, ok := s.sessions.Get(id)
	if !ok || sess == nil {
		s.metrics.IncrCacheMiss("session")
		return nil, &domain.ErrNotFound{Resource: "session", ID: id}
	}
	s.metrics.IncrCacheHit("session")
	return sess, nil
}

// with resolves a session and runs fn while holding the session lock.
func (s *SessionService) with(ctx context.Context, op, id string, fn func(*Session) error) error {
	ctx, span := sessionTracer.Start(ctx, op, trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}

	sess, err := s.lookup(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess)
}

// state must be called with the session lock held.
func (sess *Session) state() *domain.DashboardState {
	st := sess.dashboard.State()
	st.SessionID = sess.id
	created := sess.createdAt
	st.CreatedAt = &created
	return st
}
