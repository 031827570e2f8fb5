package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/scriba/schema-api/internal/config"
)

// Client drives the public scheme-checker portal through a pool of headless
// Chrome instances.
type Client struct {
	cfg  config.CheckerConfig
	pool *Pool[*rod.Browser]
}

// NewClient creates a client with a lazily-filled browser pool.
func NewClient(cfg config.CheckerConfig) *Client {
	return &Client{
		cfg: cfg,
		pool: NewPool(cfg.PoolSize,
			func(context.Context) (*rod.Browser, error) { return launch(cfg) },
			func(b *rod.Browser) { _ = b.Close() },
		),
	}
}

// Pool exposes the underlying pool for maintenance (janitor, shutdown).
func (c *Client) Pool() *Pool[*rod.Browser] {
	return c.pool
}

// Close shuts down all pooled browsers.
func (c *Client) Close() {
	c.pool.Close()
}

// Check submits schemeID on the portal form and returns the result card text.
// A browser that fails mid-check is discarded rather than pooled, since the
// failure may have left it wedged.
func (c *Client) Check(ctx context.Context, schemeID string) (string, error) {
	b, err := c.pool.Get(ctx)
	if err != nil {
		return "", err
	}

	result, err := c.check(ctx, b, schemeID)
	if err != nil {
		c.pool.Discard(b)
		return "", err
	}

	c.pool.Put(b)
	return result, nil
}

func (c *Client) check(ctx context.Context, b *rod.Browser, schemeID string) (string, error) {
	page, err := b.Page(proto.TargetCreateTarget{URL: c.cfg.PortalURL})
	if err != nil {
		return "", fmt.Errorf("open portal: %w", err)
	}
	defer func() { _ = page.Close() }()

	page = page.Context(ctx).Timeout(c.cfg.Timeout)

	// Element waits for the node to appear, covering the portal's
	// client-side rendering delay.
	input, err := page.Element("#" + c.cfg.InputID)
	if err != nil {
		return "", fmt.Errorf("scheme input field: %w", err)
	}
	if err := input.SelectAllText(); err != nil {
		return "", fmt.Errorf("clear scheme input: %w", err)
	}
	if err := input.Input(schemeID); err != nil {
		return "", fmt.Errorf("type scheme id: %w", err)
	}

	submit, err := page.ElementX(c.cfg.SubmitXPath)
	if err != nil {
		return "", fmt.Errorf("submit button: %w", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return "", fmt.Errorf("submit form: %w", err)
	}

	card, err := page.Element(c.cfg.ResultSelector)
	if err != nil {
		return "", fmt.Errorf("result card: %w", err)
	}
	text, err := card.Text()
	if err != nil {
		return "", fmt.Errorf("read result card: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// launch starts a headless Chrome tuned for container use and connects to it.
func launch(cfg config.CheckerConfig) (*rod.Browser, error) {
	u, err := launcher.New().
		Headless(true).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("disable-extensions").
		Set("window-size", "1920,1080").
		Set("blink-settings", "imagesEnabled=false").
		Set("user-agent", cfg.UserAgent).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	return b, nil
}
