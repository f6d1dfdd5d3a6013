package azpim

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeRunner records every CLI invocation and answers via respond.
type fakeRunner struct {
	calls   [][]string
	respond func(args []string) ([]byte, error)
}

func (f *fakeRunner) Run(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.respond == nil {
		return nil, errors.New("fakeRunner: no response configured")
	}
	return f.respond(args)
}

// callKind classifies a CLI invocation so test responders can dispatch on it.
func callKind(args []string) string {
	if len(args) == 0 {
		return "unknown"
	}
	if args[0] == "account" {
		return "token"
	}
	if args[0] != "rest" || len(args) < 5 {
		return "unknown"
	}

	method, url := args[2], args[4]
	switch {
	case method == "GET" && strings.Contains(url, "roleEligibilityScheduleInstances"):
		return "eligible"
	case method == "GET" && strings.Contains(url, "roleAssignmentScheduleInstances"):
		return "active"
	case method == "PUT" && strings.Contains(url, "roleAssignmentScheduleRequests"):
		return "activate"
	}
	return "unknown"
}

// putBody extracts the --body argument of a PUT invocation.
func putBody(t *testing.T, args []string) map[string]any {
	t.Helper()
	for i, arg := range args {
		if arg == "--body" && i+1 < len(args) {
			var body map[string]any
			require.NoError(t, json.Unmarshal([]byte(args[i+1]), &body))
			return body
		}
	}
	t.Fatalf("no --body argument in %v", args)
	return nil
}

// fakeStore is an in-memory QuickRoleStore.
type fakeStore struct {
	cfg     *QuickRolesConfig
	loadErr error
	saved   []QuickRolesConfig
	saveErr error
}

func (f *fakeStore) Load() (*QuickRolesConfig, error) { return f.cfg, f.loadErr }

func (f *fakeStore) Save(cfg QuickRolesConfig) error {
	f.saved = append(f.saved, cfg)
	return f.saveErr
}

func newTestClient(r Runner) *Client {
	return &Client{
		Runner:        r,
		Matcher:       SubstringMatcher{},
		Store:         &fakeStore{},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		ManagementURL: DefaultManagementURL,
	}
}

// testToken builds an unsigned JWT carrying the given claims.
func testToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

// tokenResponse wraps a raw token the way `az account get-access-token` does.
func tokenResponse(t *testing.T, claims map[string]any) []byte {
	t.Helper()

	out, err := json.Marshal(map[string]string{"accessToken": testToken(t, claims)})
	require.NoError(t, err)
	return out
}
