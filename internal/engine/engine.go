// Package engine describes the browser-automation capability the orchestrator
// drives. Implementations live in sub-packages (playwright) or in this package
// (FakeDriver, mocks) for tests.
package engine

//go:generate go tool mockgen -source engine.go -destination engine_mock.go -package engine

import (
	"context"

	"github.com/spboyer/journeys/internal/models"
)

// LaunchOptions are passed through to the driver untouched. Each driver
// documents the keys it understands.
type LaunchOptions map[string]any

// ContextOptions configure a new browsing context.
type ContextOptions struct {
	// RecordVideoDir enables video recording into this directory when set.
	RecordVideoDir string

	// Extra holds driver-specific settings (viewport, locale, ...).
	Extra map[string]any
}

// TracingOptions configure a trace capture session.
type TracingOptions struct {
	Title       string
	Screenshots bool
	Snapshots   bool
	Sources     bool
}

// Driver launches browsers.
type Driver interface {
	// Launch starts a browser for the given engine.
	Launch(ctx context.Context, key models.EngineKey, opts LaunchOptions) (Browser, error)
}

// Browser is one live browser instance.
type Browser interface {
	// NewContext opens an isolated browsing context.
	NewContext(ctx context.Context, opts ContextOptions) (BrowserContext, error)

	// Close shuts the browser down.
	Close(ctx context.Context) error
}

// BrowserContext is an isolated session (cookies, storage, video) inside a Browser.
type BrowserContext interface {
	Tracing() Tracing
	NewPage(ctx context.Context) (Page, error)
	Close(ctx context.Context) error
}

// Tracing controls trace capture for a BrowserContext.
type Tracing interface {
	Start(ctx context.Context, opts TracingOptions) error

	// Stop ends capture and writes the trace archive to path.
	Stop(ctx context.Context, path string) error
}

// Page is a single tab.
type Page interface {
	Goto(ctx context.Context, url string) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error

	// Screenshot captures the viewport. The image is also written to path
	// unless path is empty.
	Screenshot(ctx context.Context, path string) ([]byte, error)

	// Video returns nil when the page is not being recorded.
	Video() Video

	Close(ctx context.Context) error
}

// Video is the recording of a Page.
type Video interface {
	// SaveAs copies the finished recording to path. Valid after the page closed.
	SaveAs(ctx context.Context, path string) error
}
