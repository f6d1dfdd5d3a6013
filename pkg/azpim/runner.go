package azpim

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Runner executes one Azure CLI invocation and returns its stdout. Every
// external interaction in this package goes through a Runner, so tests can
// substitute a fake without touching the filesystem or network.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// AzureCLI runs the locally installed, already-authenticated `az` binary as
// a subprocess. It performs no retries and no timeout of its own; callers
// control cancellation through the context.
type AzureCLI struct {
	// Binary is the az executable to invoke. Empty means "az" from PATH.
	Binary string
}

func (c *AzureCLI) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin := c.Binary
	if bin == "" {
		bin = "az"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.Bytes(), nil
}
