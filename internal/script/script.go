// Package script turns declarative journey steps into a journey function.
package script

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spboyer/journeys/internal/engine"
	"github.com/spboyer/journeys/internal/models"
	"github.com/spboyer/journeys/internal/orchestration"
	"github.com/spboyer/journeys/internal/template"
)

// Step actions.
const (
	ActionGoto       = "goto"
	ActionAnnotate   = "annotate"
	ActionClick      = "click"
	ActionFill       = "fill"
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
	ActionFail       = "fail"
)

// ErrFailStep is wrapped by the error of a fail step.
var ErrFailStep = errors.New("journey failed on purpose")

// Compile checks steps and returns a journey function that executes them in
// order. String fields are rendered as templates against the current input.
func Compile(steps []models.StepConfig) (orchestration.JourneyFunc, error) {
	if len(steps) == 0 {
		return nil, errors.New("at least one step is required")
	}
	for i, s := range steps {
		if err := check(s); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Action, err)
		}
	}

	compiled := make([]models.StepConfig, len(steps))
	copy(compiled, steps)

	return func(ctx context.Context, page engine.Page, input models.JourneyInput, annotate orchestration.AnnotateFunc) error {
		tctx := &template.Context{Vars: input, Timestamp: time.Now().UTC().Format(time.RFC3339)}
		if info, ok := orchestration.RunInfoFromContext(ctx); ok {
			tctx.Journey = info.Name
			tctx.RunID = info.RunID
			tctx.Engine = string(info.Engine)
			tctx.Folder = info.Folder
		}
		for i, s := range compiled {
			if err := execute(ctx, page, annotate, tctx, s); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, s.Action, err)
			}
		}
		return nil
	}, nil
}

func check(s models.StepConfig) error {
	switch s.Action {
	case ActionGoto:
		if s.URL == "" {
			return errors.New("url is required")
		}
	case ActionClick:
		if s.Selector == "" {
			return errors.New("selector is required")
		}
	case ActionFill:
		if s.Selector == "" {
			return errors.New("selector is required")
		}
	case ActionAnnotate:
		if s.Message == "" {
			return errors.New("message is required")
		}
	case ActionWait:
		if s.DurationMs <= 0 {
			return fmt.Errorf("duration_ms must be positive, got %d", s.DurationMs)
		}
	case ActionScreenshot, ActionFail:
	case "":
		return errors.New("action is required")
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	for _, field := range []string{s.URL, s.Selector, s.Value, s.Message, s.Path} {
		if err := template.Check(field); err != nil {
			return err
		}
	}
	return nil
}

func execute(ctx context.Context, page engine.Page, annotate orchestration.AnnotateFunc, tctx *template.Context, s models.StepConfig) error {
	render := func(v string) (string, error) {
		return template.Render(v, tctx)
	}

	switch s.Action {
	case ActionGoto:
		url, err := render(s.URL)
		if err != nil {
			return err
		}
		return page.Goto(ctx, url)

	case ActionClick:
		sel, err := render(s.Selector)
		if err != nil {
			return err
		}
		return page.Click(ctx, sel)

	case ActionFill:
		sel, err := render(s.Selector)
		if err != nil {
			return err
		}
		val, err := render(s.Value)
		if err != nil {
			return err
		}
		return page.Fill(ctx, sel, val)

	case ActionAnnotate:
		msg, err := render(s.Message)
		if err != nil {
			return err
		}
		annotate(msg)
		return nil

	case ActionWait:
		t := time.NewTimer(time.Duration(s.DurationMs) * time.Millisecond)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}

	case ActionScreenshot:
		p, err := render(s.Path)
		if err != nil {
			return err
		}
		if p != "" && !filepath.IsAbs(p) && tctx.Folder != "" {
			p = filepath.Join(tctx.Folder, p)
		}
		_, err = page.Screenshot(ctx, p)
		return err

	case ActionFail:
		msg, err := render(s.Message)
		if err != nil {
			return err
		}
		if msg == "" {
			return ErrFailStep
		}
		return fmt.Errorf("%w: %s", ErrFailStep, msg)
	}
	return fmt.Errorf("unknown action %q", s.Action)
}
