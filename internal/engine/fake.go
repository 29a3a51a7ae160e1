package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spboyer/journeys/internal/models"
)

// FakeDriver is an in-process Driver for tests and dry runs. It never starts
// a browser; tracing writes a small but well-formed trace archive and video
// recording writes a placeholder file.
type FakeDriver struct {
	// LaunchErr, when set for an engine, is returned by Launch.
	LaunchErr map[models.EngineKey]error
	// ContextErr is returned by every Browser.NewContext call.
	ContextErr error
	// PageErr is returned by every BrowserContext.NewPage call.
	PageErr error

	mu    sync.Mutex
	calls []string
	ids   int
}

// NewFakeDriver returns a FakeDriver that succeeds at everything.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

// Calls returns every operation performed so far, in order, formatted as
// "op:engine" or "op:engine:arg".
func (d *FakeDriver) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

// Count returns how many recorded calls equal call.
func (d *FakeDriver) Count(call string) int {
	n := 0
	for _, c := range d.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (d *FakeDriver) record(parts ...string) {
	d.mu.Lock()
	d.calls = append(d.calls, strings.Join(parts, ":"))
	d.mu.Unlock()
}

func (d *FakeDriver) nextID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ids++
	return d.ids
}

// Launch implements Driver.
func (d *FakeDriver) Launch(ctx context.Context, key models.EngineKey, _ LaunchOptions) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.record("launch", string(key))
	if err := d.LaunchErr[key]; err != nil {
		return nil, err
	}
	return &fakeBrowser{driver: d, key: key}, nil
}

type fakeBrowser struct {
	driver *FakeDriver
	key    models.EngineKey
}

func (b *fakeBrowser) NewContext(ctx context.Context, opts ContextOptions) (BrowserContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.driver.record("new-context", string(b.key))
	if b.driver.ContextErr != nil {
		return nil, b.driver.ContextErr
	}
	c := &fakeContext{browser: b, videoDir: opts.RecordVideoDir}
	c.tracing = &fakeTracing{ctx: c}
	return c, nil
}

func (b *fakeBrowser) Close(context.Context) error {
	b.driver.record("browser.close", string(b.key))
	return nil
}

type fakeContext struct {
	browser  *fakeBrowser
	videoDir string
	tracing  *fakeTracing
}

func (c *fakeContext) Tracing() Tracing {
	return c.tracing
}

func (c *fakeContext) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.record("new-page")
	if c.browser.driver.PageErr != nil {
		return nil, c.browser.driver.PageErr
	}
	id := fmt.Sprintf("page@%d", c.browser.driver.nextID())
	c.tracing.add(map[string]any{
		"type": "event", "time": nowMs(), "class": "BrowserContext", "method": "page",
		"params": map[string]any{"pageId": id},
	})
	p := &fakePage{ctx: c, id: id}
	if c.videoDir != "" {
		p.video = &fakeVideo{page: p, src: filepath.Join(c.videoDir, id+".webm")}
	}
	return p, nil
}

func (c *fakeContext) Close(context.Context) error {
	c.record("context.close")
	return nil
}

func (c *fakeContext) record(op string, args ...string) {
	c.browser.driver.record(append([]string{op, string(c.browser.key)}, args...)...)
}

type fakeTracing struct {
	ctx     *fakeContext
	mu      sync.Mutex
	active  bool
	events  []map[string]any
	network []map[string]any
	calls   int
}

func (t *fakeTracing) Start(ctx context.Context, opts TracingOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.ctx.record("tracing.start")

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		return fmt.Errorf("tracing already started")
	}
	t.active = true
	t.events = []map[string]any{{
		"version":     6,
		"type":        "context-options",
		"origin":      "library",
		"browserName": string(t.ctx.browser.key),
		"platform":    "fake",
		"wallTime":    nowMs(),
		"title":       opts.Title,
		"options": map[string]any{
			"screenshots": opts.Screenshots,
			"snapshots":   opts.Snapshots,
		},
	}}
	return nil
}

func (t *fakeTracing) add(ev map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.events = append(t.events, ev)
	}
}

func (t *fakeTracing) addNetwork(ev map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.network = append(t.network, ev)
	}
}

// action records a before/after pair around an API call.
func (t *fakeTracing) action(apiName string, params map[string]any, callErr error) {
	t.mu.Lock()
	t.calls++
	callID := fmt.Sprintf("call@%d", t.calls)
	t.mu.Unlock()

	start := nowMs()
	class, method, _ := strings.Cut(apiName, ".")
	t.add(map[string]any{
		"type": "before", "callId": callID, "startTime": start, "apiName": apiName,
		"class": class, "method": method, "params": params,
	})
	after := map[string]any{"type": "after", "callId": callID, "endTime": nowMs()}
	if callErr != nil {
		after["error"] = map[string]any{"message": callErr.Error()}
	}
	t.add(after)
}

func (t *fakeTracing) Stop(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.ctx.record("tracing.stop")

	t.mu.Lock()
	events, network := t.events, t.network
	t.active, t.events, t.network = false, nil, nil
	t.mu.Unlock()

	return WriteTraceArchive(path, map[string][]map[string]any{
		"trace.trace":   events,
		"trace.network": network,
	})
}

type fakePage struct {
	ctx    *fakeContext
	id     string
	video  *fakeVideo
	frames int
	closed bool
}

func (p *fakePage) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.ctx.record("goto", url)
	p.ctx.tracing.action("Frame.goto", map[string]any{"url": url}, nil)
	p.ctx.tracing.addNetwork(map[string]any{
		"type": "resource-snapshot",
		"snapshot": map[string]any{
			"pageref":  p.id,
			"request":  map[string]any{"method": "GET", "url": url},
			"response": map[string]any{"status": 200},
		},
	})
	return nil
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.ctx.record("click", selector)
	p.ctx.tracing.action("Frame.click", map[string]any{"selector": selector}, nil)
	return nil
}

func (p *fakePage) Fill(ctx context.Context, selector, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.ctx.record("fill", selector)
	p.ctx.tracing.action("Frame.fill", map[string]any{"selector": selector, "value": value}, nil)
	return nil
}

func (p *fakePage) Screenshot(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.ctx.record("screenshot")
	p.frames++
	p.ctx.tracing.add(map[string]any{
		"type": "screencast-frame", "pageId": p.id, "sha1": fmt.Sprintf("%s-%d.jpeg", p.id, p.frames),
		"width": 1280, "height": 720, "timestamp": nowMs(),
	})
	img := []byte("fake-png:" + p.id)
	if path != "" {
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (p *fakePage) Video() Video {
	if p.video == nil {
		return nil
	}
	return p.video
}

func (p *fakePage) Close(context.Context) error {
	p.ctx.record("page.close")
	p.closed = true
	return nil
}

type fakeVideo struct {
	page *fakePage
	src  string
}

func (v *fakeVideo) SaveAs(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v.page.ctx.record("video.save")
	if !v.page.closed {
		return fmt.Errorf("video is not finished until the page is closed")
	}
	return os.WriteFile(path, []byte("fake-webm:"+v.page.id), 0o644)
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}

// WriteTraceArchive writes entries as a zip archive where every entry is a
// newline-delimited JSON file, one record per line. Entries are written in
// name order.
func WriteTraceArchive(path string, entries map[string][]map[string]any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace archive: %w", err)
	}
	defer f.Close() //nolint:errcheck

	zw := zip.NewWriter(f)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("create entry %s: %w", name, err)
		}
		for _, rec := range entries[name] {
			line, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encode %s record: %w", name, err)
			}
			if _, err := w.Write(append(line, '\n')); err != nil {
				return fmt.Errorf("write entry %s: %w", name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish trace archive: %w", err)
	}
	return f.Close()
}
