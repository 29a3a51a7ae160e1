package engine

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spboyer/journeys/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntryTypes(t *testing.T, path, entry string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close() //nolint:errcheck

	for _, f := range zr.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close() //nolint:errcheck

		var types []string
		sc := bufio.NewScanner(rc)
		for sc.Scan() {
			var ev struct {
				Type string `json:"type"`
			}
			require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
			types = append(types, ev.Type)
		}
		require.NoError(t, sc.Err())
		return types
	}
	t.Fatalf("entry %s not found in %s", entry, path)
	return nil
}

func TestFakeDriver_FullRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	d := NewFakeDriver()

	b, err := d.Launch(ctx, models.EngineChromium, nil)
	require.NoError(t, err)
	bc, err := b.NewContext(ctx, ContextOptions{RecordVideoDir: dir})
	require.NoError(t, err)
	require.NoError(t, bc.Tracing().Start(ctx, TracingOptions{Title: "a-chromium", Screenshots: true, Snapshots: true}))

	p, err := bc.NewPage(ctx)
	require.NoError(t, err)
	require.NoError(t, p.Goto(ctx, "https://example.com"))
	require.NoError(t, p.Click(ctx, "#go"))
	_, err = p.Screenshot(ctx, "")
	require.NoError(t, err)

	tracePath := filepath.Join(dir, "trace.zip")
	require.NoError(t, bc.Tracing().Stop(ctx, tracePath))

	video := p.Video()
	require.NotNil(t, video)
	require.NoError(t, p.Close(ctx))
	videoPath := filepath.Join(dir, "recording.webm")
	require.NoError(t, video.SaveAs(ctx, videoPath))
	require.NoError(t, bc.Close(ctx))
	require.NoError(t, b.Close(ctx))

	assert.Equal(t, []string{
		"launch:chromium",
		"new-context:chromium",
		"tracing.start:chromium",
		"new-page:chromium",
		"goto:chromium:https://example.com",
		"click:chromium:#go",
		"screenshot:chromium",
		"tracing.stop:chromium",
		"page.close:chromium",
		"video.save:chromium",
		"context.close:chromium",
		"browser.close:chromium",
	}, d.Calls())

	assert.Equal(t, []string{
		"context-options", "event", "before", "after", "before", "after", "screencast-frame",
	}, readEntryTypes(t, tracePath, "trace.trace"))
	assert.Equal(t, []string{"resource-snapshot"}, readEntryTypes(t, tracePath, "trace.network"))

	data, err := os.ReadFile(videoPath)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestFakeDriver_NoVideoWithoutDir(t *testing.T) {
	ctx := context.Background()
	b, err := NewFakeDriver().Launch(ctx, "engineA", nil)
	require.NoError(t, err)
	bc, err := b.NewContext(ctx, ContextOptions{})
	require.NoError(t, err)
	p, err := bc.NewPage(ctx)
	require.NoError(t, err)
	assert.Nil(t, p.Video())
}

func TestFakeDriver_VideoRequiresClosedPage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, _ := NewFakeDriver().Launch(ctx, models.EngineFirefox, nil)
	bc, _ := b.NewContext(ctx, ContextOptions{RecordVideoDir: dir})
	p, err := bc.NewPage(ctx)
	require.NoError(t, err)

	assert.Error(t, p.Video().SaveAs(ctx, filepath.Join(dir, "v.webm")))
}

func TestFakeDriver_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	launchErr := errors.New("no such browser")
	d := &FakeDriver{LaunchErr: map[models.EngineKey]error{models.EngineWebKit: launchErr}}

	_, err := d.Launch(ctx, models.EngineWebKit, nil)
	assert.ErrorIs(t, err, launchErr)

	d.ContextErr = errors.New("context refused")
	b, err := d.Launch(ctx, models.EngineChromium, nil)
	require.NoError(t, err)
	_, err = b.NewContext(ctx, ContextOptions{})
	assert.ErrorIs(t, err, d.ContextErr)

	assert.Equal(t, 1, d.Count("launch:webkit"))
	assert.Equal(t, 1, d.Count("launch:chromium"))
}

func TestFakeDriver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFakeDriver().Launch(ctx, models.EngineChromium, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFakeTracing_DoubleStart(t *testing.T) {
	ctx := context.Background()
	b, _ := NewFakeDriver().Launch(ctx, models.EngineChromium, nil)
	bc, _ := b.NewContext(ctx, ContextOptions{})
	require.NoError(t, bc.Tracing().Start(ctx, TracingOptions{}))
	assert.Error(t, bc.Tracing().Start(ctx, TracingOptions{}))
}

func TestWriteTraceArchive_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.zip")
	require.NoError(t, WriteTraceArchive(path, map[string][]map[string]any{"trace.trace": nil}))
	assert.Empty(t, readEntryTypes(t, path, "trace.trace"))
}
