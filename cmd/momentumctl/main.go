// Command momentumctl drives a Momentum dashboard session from the terminal.
//
//	momentumctl -portfolio Credit -types "POS,ATM" -duration 6 -compare
//
// It creates a session, toggles each type, sets the duration, calculates and
// prints the resulting state as JSON. With -compare it also prints the
// single-type calculation for every selected type.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/boddenberg/momentum-bfa-go/internal/config"
	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/client"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/observability"
	"github.com/boddenberg/momentum-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type report struct {
	State      *domain.DashboardState                              `json:"state"`
	Ignored    []string                                            `json:"ignoredTypes,omitempty"`
	Comparison map[domain.TransactionType]*domain.CalculationResult `json:"comparison,omitempty"`
}

func main() {
	_ = config.LoadDotEnv(".env")
	cfg := config.Load()

	server := flag.String("server", cfg.APIURL, "Momentum API base URL")
	portfolio := flag.String("portfolio", string(cfg.DefaultPortfolio), "portfolio type (Credit or Debit)")
	types := flag.String("types", "", "comma separated transaction types to toggle, in order")
	duration := flag.Int("duration", int(domain.DefaultDuration), "duration in months (0, 3, 6, 9, 12)")
	compare := flag.Bool("compare", false, "also run the single-type calculation for each selected type")
	recommendation := flag.String("recommendation", "", "recommendation id for -compare (defaults to the portfolio's first)")
	timeout := flag.Duration("timeout", cfg.HTTPTimeout, "overall timeout")
	flag.Parse()

	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	api, err := newAPI(cfg, *server, logger)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	out, err := run(ctx, api, options{
		portfolio:      domain.PortfolioType(*portfolio),
		types:          splitTypes(*types),
		duration:       *duration,
		compare:        *compare,
		recommendation: *recommendation,
		concurrency:    cfg.MaxConcurrency,
	}, logger)
	if err != nil {
		logger.Error("momentumctl failed", zap.Error(err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("failed to write output", zap.Error(err))
		os.Exit(1)
	}
}

// newAPI validates cfg and builds the client for server.
func newAPI(cfg *config.Config, server string, logger *zap.Logger) (*client.MomentumClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	return client.NewMomentumClient(
		&http.Client{Timeout: cfg.HTTPTimeout},
		strings.TrimRight(server, "/"),
		resilience.NewCircuitBreaker("momentum-api", logger),
		resCfg,
	), nil
}

type options struct {
	portfolio      domain.PortfolioType
	types          []string
	duration       int
	compare        bool
	recommendation string
	concurrency    int
}

func run(ctx context.Context, api *client.MomentumClient, opts options, logger *zap.Logger) (*report, error) {
	st, err := api.CreateSession(ctx, opts.portfolio)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	id := st.SessionID
	defer func() {
		if err := api.DeleteSession(context.Background(), id); err != nil {
			logger.Warn("failed to delete session", zap.String("session_id", id), zap.Error(err))
		}
	}()

	out := &report{}
	for _, t := range opts.types {
		resp, err := api.Toggle(ctx, id, t)
		if err != nil {
			return nil, fmt.Errorf("toggle %q: %w", t, err)
		}
		if !resp.Applied {
			logger.Warn("unknown transaction type ignored", zap.String("transaction_type", t))
			out.Ignored = append(out.Ignored, t)
		}
	}

	if _, err := api.SetDuration(ctx, id, opts.duration); err != nil {
		return nil, fmt.Errorf("set duration: %w", err)
	}

	st, err = api.Calculate(ctx, id)
	if err != nil {
		var apiErr *client.APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity {
			return nil, fmt.Errorf("calculate: %w", err)
		}
		logger.Warn("nothing to calculate", zap.String("reason", apiErr.Message))
		if st, err = api.GetSession(ctx, id); err != nil {
			return nil, fmt.Errorf("get session: %w", err)
		}
	}
	out.State = st

	if opts.compare && len(st.SelectedTypes) > 0 {
		cmp, err := compareSingle(ctx, api, st, opts)
		if err != nil {
			return nil, fmt.Errorf("compare: %w", err)
		}
		out.Comparison = cmp
	}
	return out, nil
}

// compareSingle fetches the single-type result of every selected type concurrently.
func compareSingle(ctx context.Context, api *client.MomentumClient, st *domain.DashboardState, opts options) (map[domain.TransactionType]*domain.CalculationResult, error) {
	recID := opts.recommendation
	if recID == "" {
		recs, err := api.ListRecommendations(ctx, st.PortfolioType)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, fmt.Errorf("portfolio %s has no recommendations", st.PortfolioType)
		}
		recID = recs[0].ID
	}

	var (
		mu      sync.Mutex
		results = make(map[domain.TransactionType]*domain.CalculationResult, len(st.SelectedTypes))
	)
	bulkhead := resilience.NewBulkhead(opts.concurrency)
	g, gCtx := errgroup.WithContext(ctx)

	for _, t := range st.SelectedTypes {
		t := t
		g.Go(func() error {
			return bulkhead.Do(gCtx, func() error {
				res, err := api.CalculateValue(gCtx, domain.CalculateRequest{
					RecommendationID: recID,
					TransactionType:  string(t),
					PortfolioType:    st.PortfolioType,
				})
				if err != nil {
					return fmt.Errorf("%s: %w", t, err)
				}
				mu.Lock()
				results[t] = res
				mu.Unlock()
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func splitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
