// Package transcode converts recordings with ffmpeg.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrFFmpegNotFound is returned when the ffmpeg binary cannot be located.
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// Options tune the encoder. Zero values pick the defaults.
type Options struct {
	// FFmpegPath defaults to "ffmpeg" looked up on PATH.
	FFmpegPath string
	CRF        int
	Preset     string
}

// Transcoder converts recordings to MP4.
type Transcoder struct {
	opts Options
}

// New returns a Transcoder with opts applied over the defaults.
func New(opts Options) *Transcoder {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = "ffmpeg"
	}
	if opts.CRF == 0 {
		opts.CRF = 23
	}
	if opts.Preset == "" {
		opts.Preset = "veryfast"
	}
	return &Transcoder{opts: opts}
}

// MP4Path returns src with its extension replaced by .mp4.
func MP4Path(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".mp4"
}

// Args returns the ffmpeg arguments that convert src into dst.
func (t *Transcoder) Args(src, dst string) []string {
	return ffmpeg.Input(src).
		Output(dst, ffmpeg.KwArgs{
			"c:v":      "libx264",
			"crf":      t.opts.CRF,
			"preset":   t.opts.Preset,
			"pix_fmt":  "yuv420p",
			"movflags": "+faststart",
		}).
		OverWriteOutput().
		GetArgs()
}

// ToMP4 writes an MP4 next to src and returns its path.
func (t *Transcoder) ToMP4(ctx context.Context, src string) (string, error) {
	bin, err := exec.LookPath(t.opts.FFmpegPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFFmpegNotFound, err)
	}

	dst := MP4Path(src)
	//nolint:gosec // arguments are built from artifact paths, not user input
	cmd := exec.CommandContext(ctx, bin, t.Args(src, dst)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("transcoding %s: %w: %s", src, err, lastLine(out))
	}
	return dst, nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}
