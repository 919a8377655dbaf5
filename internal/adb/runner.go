// Package adb runs commands against an Android device through the debug bridge.
package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/metrics"
)

// ErrCommandFailed is returned when adb exits non-zero or writes to stderr.
var ErrCommandFailed = errors.New("adb command failed")

// Runner executes one adb invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner invokes the adb binary at Path, pinned to Serial when set.
type ExecRunner struct {
	Path   string
	Serial string
	logger *zap.Logger
}

func NewExecRunner(path, serial string, logger *zap.Logger) *ExecRunner {
	return &ExecRunner{Path: path, Serial: serial, logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	full := args
	if r.Serial != "" {
		full = append([]string{"-s", r.Serial}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.DeviceCommandDurationSeconds.WithLabelValues("error").Observe(elapsed)
		r.logger.Error("Error executing command", zap.Strings("args", full), zap.String("stderr", stderr.String()), zap.Error(err))
		return "", fmt.Errorf("%w: %v: %s", ErrCommandFailed, err, strings.TrimSpace(stderr.String()))
	}
	if stderr.Len() > 0 {
		metrics.DeviceCommandDurationSeconds.WithLabelValues("stderr").Observe(elapsed)
		r.logger.Error("Command had errors", zap.Strings("args", full), zap.String("stderr", stderr.String()))
		return "", fmt.Errorf("%w: %s", ErrCommandFailed, strings.TrimSpace(stderr.String()))
	}

	metrics.DeviceCommandDurationSeconds.WithLabelValues("ok").Observe(elapsed)
	return stdout.String(), nil
}
