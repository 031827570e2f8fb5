package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/scriba/schema-api/internal/model"
)

// SchemeDriver performs a single scheme check against the portal.
type SchemeDriver interface {
	Check(ctx context.Context, schemeID string) (string, error)
}

// CheckerService answers scheme status checks, caching successful results
// and collapsing concurrent checks for the same ID into one portal visit.
type CheckerService struct {
	driver  SchemeDriver
	cache   *lru.Cache[string, string]
	group   singleflight.Group
	timeout time.Duration
}

// CheckerServiceConfig holds checker service dependencies
type CheckerServiceConfig struct {
	Driver    SchemeDriver
	CacheSize int
	Timeout   time.Duration
}

// NewCheckerService creates a new checker service
func NewCheckerService(cfg CheckerServiceConfig) (*CheckerService, error) {
	if cfg.CacheSize < 1 {
		cfg.CacheSize = 100
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	cache, err := lru.New[string, string](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}

	return &CheckerService{
		driver:  cfg.Driver,
		cache:   cache,
		timeout: cfg.Timeout,
	}, nil
}

// Check validates schemeID and returns its portal status, from cache when
// available. Only successful results are cached, so a transient browser
// failure never pins an error.
func (s *CheckerService) Check(ctx context.Context, schemeID string) (*model.CheckResult, error) {
	schemeID = strings.TrimSpace(schemeID)
	if schemeID == "" {
		return nil, ErrSchemeIDRequired
	}
	if len(schemeID) > model.MaxSchemeIDLength {
		return nil, ErrSchemeIDTooLong
	}

	if result, ok := s.cache.Get(schemeID); ok {
		slog.Debug("scheme check served from cache", slog.String("scheme_id", schemeID))
		return &model.CheckResult{Status: "success", Result: result}, nil
	}

	result, err, shared := s.group.Do(schemeID, func() (interface{}, error) {
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		text, err := s.driver.Check(checkCtx, schemeID)
		if err != nil {
			return "", err
		}
		s.cache.Add(schemeID, text)
		return text, nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrCheckerBusy, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCheckFailed, err)
	}

	if shared {
		slog.Debug("scheme check collapsed into in-flight request", slog.String("scheme_id", schemeID))
	}

	return &model.CheckResult{Status: "success", Result: result.(string)}, nil
}

// CacheLen reports how many results are cached.
func (s *CheckerService) CacheLen() int {
	return s.cache.Len()
}
