// Package playwright adapts playwright-go to the engine interfaces.
package playwright

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	pw "github.com/playwright-community/playwright-go"
	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/models"
)

// launchSettings are the LaunchOptions keys this driver understands.
type launchSettings struct {
	Headless       *bool    `mapstructure:"headless"`
	SlowMoMs       *float64 `mapstructure:"slow_mo_ms"`
	Args           []string `mapstructure:"args"`
	Channel        string   `mapstructure:"channel"`
	ExecutablePath string   `mapstructure:"executable_path"`
	TimeoutMs      *float64 `mapstructure:"timeout_ms"`
}

// contextSettings are the ContextOptions.Extra keys this driver understands.
type contextSettings struct {
	Viewport *struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"viewport"`
	BaseURL   string `mapstructure:"base_url"`
	Locale    string `mapstructure:"locale"`
	UserAgent string `mapstructure:"user_agent"`
}

func decode(in map[string]any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return d.Decode(in)
}

func launchOptions(opts engine.LaunchOptions) (pw.BrowserTypeLaunchOptions, error) {
	var s launchSettings
	if err := decode(opts, &s); err != nil {
		return pw.BrowserTypeLaunchOptions{}, fmt.Errorf("decoding launch options: %w", err)
	}
	out := pw.BrowserTypeLaunchOptions{
		Headless: s.Headless,
		SlowMo:   s.SlowMoMs,
		Timeout:  s.TimeoutMs,
		Args:     s.Args,
	}
	if s.Channel != "" {
		out.Channel = pw.String(s.Channel)
	}
	if s.ExecutablePath != "" {
		out.ExecutablePath = pw.String(s.ExecutablePath)
	}
	return out, nil
}

func contextOptions(opts engine.ContextOptions) (pw.BrowserNewContextOptions, error) {
	var s contextSettings
	if err := decode(opts.Extra, &s); err != nil {
		return pw.BrowserNewContextOptions{}, fmt.Errorf("decoding context options: %w", err)
	}
	var out pw.BrowserNewContextOptions
	if opts.RecordVideoDir != "" {
		out.RecordVideo = &pw.RecordVideo{Dir: opts.RecordVideoDir}
	}
	if s.Viewport != nil {
		out.Viewport = &pw.Size{Width: s.Viewport.Width, Height: s.Viewport.Height}
	}
	if s.BaseURL != "" {
		out.BaseURL = pw.String(s.BaseURL)
	}
	if s.Locale != "" {
		out.Locale = pw.String(s.Locale)
	}
	if s.UserAgent != "" {
		out.UserAgent = pw.String(s.UserAgent)
	}
	return out, nil
}

// Driver launches real browsers through a Playwright server process.
type Driver struct {
	pw *pw.Playwright
}

// Install downloads the Playwright driver and the browsers for engines.
func Install(engines []models.EngineKey) error {
	browsers := make([]string, 0, len(engines))
	for _, e := range engines {
		browsers = append(browsers, string(e))
	}
	return pw.Install(&pw.RunOptions{Browsers: browsers})
}

// New starts the Playwright server. Call Stop when done.
func New() (*Driver, error) {
	p, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}
	return &Driver{pw: p}, nil
}

// Stop shuts down the Playwright server.
func (d *Driver) Stop() error {
	return d.pw.Stop()
}

// Launch implements engine.Driver.
func (d *Driver) Launch(ctx context.Context, key models.EngineKey, opts engine.LaunchOptions) (engine.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bt pw.BrowserType
	switch key {
	case models.EngineChromium:
		bt = d.pw.Chromium
	case models.EngineFirefox:
		bt = d.pw.Firefox
	case models.EngineWebKit:
		bt = d.pw.WebKit
	default:
		return nil, fmt.Errorf("playwright has no engine %q", key)
	}

	lo, err := launchOptions(opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("launching browser", "engine", key)
	b, err := bt.Launch(lo)
	if err != nil {
		return nil, err
	}
	return &browser{b: b}, nil
}

type browser struct {
	b pw.Browser
}

func (b *browser) NewContext(ctx context.Context, opts engine.ContextOptions) (engine.BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	co, err := contextOptions(opts)
	if err != nil {
		return nil, err
	}
	c, err := b.b.NewContext(co)
	if err != nil {
		return nil, err
	}
	return &browserContext{c: c, recording: opts.RecordVideoDir != ""}, nil
}

func (b *browser) Close(context.Context) error {
	return b.b.Close()
}

type browserContext struct {
	c         pw.BrowserContext
	recording bool
}

func (c *browserContext) Tracing() engine.Tracing {
	return tracing{t: c.c.Tracing()}
}

func (c *browserContext) NewPage(ctx context.Context) (engine.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := c.c.NewPage()
	if err != nil {
		return nil, err
	}
	return &page{p: p, recording: c.recording}, nil
}

func (c *browserContext) Close(context.Context) error {
	return c.c.Close()
}

type tracing struct {
	t pw.Tracing
}

func (t tracing) Start(ctx context.Context, opts engine.TracingOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	so := pw.TracingStartOptions{
		Screenshots: pw.Bool(opts.Screenshots),
		Snapshots:   pw.Bool(opts.Snapshots),
		Sources:     pw.Bool(opts.Sources),
	}
	if opts.Title != "" {
		so.Title = pw.String(opts.Title)
	}
	return t.t.Start(so)
}

func (t tracing) Stop(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.t.Stop(path)
}

type page struct {
	p         pw.Page
	recording bool
}

func (p *page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.p.Goto(url)
	return err
}

func (p *page) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.p.Locator(selector).Click()
}

func (p *page) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.p.Locator(selector).Fill(value)
}

func (p *page) Screenshot(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var so pw.PageScreenshotOptions
	if path != "" {
		so.Path = pw.String(path)
	}
	return p.p.Screenshot(so)
}

// Video returns nil unless the context was created with a video directory;
// playwright-go hands back a handle either way.
func (p *page) Video() engine.Video {
	if !p.recording {
		return nil
	}
	v := p.p.Video()
	if v == nil {
		return nil
	}
	return video{v: v}
}

func (p *page) Close(context.Context) error {
	return p.p.Close()
}

type video struct {
	v pw.Video
}

func (v video) SaveAs(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return v.v.SaveAs(path)
}

var _ engine.Driver = (*Driver)(nil)
