package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Lifecycle points.
const (
	BeforeBatch = "before_batch"
	AfterBatch  = "after_batch"
	BeforeRun   = "before_run"
	AfterRun    = "after_run"
)

// HookConfig defines a single hook command.
type HookConfig struct {
	Command          string `yaml:"command" json:"command"`
	WorkingDirectory string `yaml:"working_directory,omitempty" json:"working_directory,omitempty"`
	ExitCodes        []int  `yaml:"exit_codes,omitempty" json:"exit_codes,omitempty"`
	ErrorOnFail      bool   `yaml:"error_on_fail,omitempty" json:"error_on_fail,omitempty"`
}

// HooksConfig holds all lifecycle hooks.
type HooksConfig struct {
	BeforeBatch []HookConfig `yaml:"before_batch,omitempty" json:"before_batch,omitempty"`
	AfterBatch  []HookConfig `yaml:"after_batch,omitempty" json:"after_batch,omitempty"`
	BeforeRun   []HookConfig `yaml:"before_run,omitempty" json:"before_run,omitempty"`
	AfterRun    []HookConfig `yaml:"after_run,omitempty" json:"after_run,omitempty"`
}

// For returns the hooks registered for a lifecycle point.
func (c HooksConfig) For(name string) []HookConfig {
	switch name {
	case BeforeBatch:
		return c.BeforeBatch
	case AfterBatch:
		return c.AfterBatch
	case BeforeRun:
		return c.BeforeRun
	case AfterRun:
		return c.AfterRun
	}
	return nil
}

// Runner executes hook commands at lifecycle points.
type Runner struct {
	Verbose bool
}

// Execute runs all hooks for a given lifecycle point.
// name identifies the lifecycle point (e.g. "before_run") for logging and error context.
// env is added to the hook's environment as JOURNEYS_<KEY>=value.
func (r *Runner) Execute(ctx context.Context, name string, hooks []HookConfig, env map[string]string) error {
	for i, h := range hooks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hook %s: context canceled: %w", name, err)
		}

		if err := r.runHook(ctx, name, i, h, env); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runHook(ctx context.Context, name string, index int, h HookConfig, env map[string]string) error {
	if strings.TrimSpace(h.Command) == "" {
		return fmt.Errorf("hook %s[%d]: empty command", name, index)
	}

	parts := strings.Fields(h.Command)
	//nolint:gosec // hook commands come from the user's journey file
	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Env = append(os.Environ(), environ(env)...)

	if h.WorkingDirectory != "" {
		cmd.Dir = h.WorkingDirectory
	}

	output, err := cmd.CombinedOutput()

	if r.Verbose && len(output) > 0 {
		fmt.Printf("[hook:%s] %s\n", name, string(output))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if ok := errors.As(err, &exitErr); ok {
			exitCode := exitErr.ExitCode()

			if !isAcceptableExit(exitCode, h.ExitCodes) {
				if h.ErrorOnFail {
					return fmt.Errorf("hook %s[%d]: command exited with code %d", name, index, exitCode)
				}
				slog.Warn("hook exited with unexpected code, continuing", "hook", name, "index", index, "code", exitCode)
			}
		} else {
			// Non-exit error (e.g. command not found)
			if h.ErrorOnFail {
				return fmt.Errorf("hook %s[%d]: %w", name, index, err)
			}
			slog.Warn("hook failed, continuing", "hook", name, "index", index, "error", err)
		}
		return nil
	}

	if !isAcceptableExit(0, h.ExitCodes) {
		if h.ErrorOnFail {
			return fmt.Errorf("hook %s[%d]: command exited with code 0 but expected %v", name, index, h.ExitCodes)
		}
		slog.Warn("hook exited with code 0 but other codes were expected, continuing", "hook", name, "index", index, "expected", h.ExitCodes)
	}

	return nil
}

// environ renders env as sorted JOURNEYS_* assignments.
func environ(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, "JOURNEYS_"+strings.ToUpper(k)+"="+v)
	}
	sort.Strings(out)
	return out
}

// isAcceptableExit checks whether exitCode is in the allowed list.
// An empty allowedCodes list defaults to allowing only exit code 0.
func isAcceptableExit(exitCode int, allowedCodes []int) bool {
	if len(allowedCodes) == 0 {
		return exitCode == 0
	}
	for _, code := range allowedCodes {
		if exitCode == code {
			return true
		}
	}
	return false
}
