package azpim

import "log/slog"

const (
	// DefaultManagementURL is the ARM endpoint used for token scoping and
	// REST calls.
	DefaultManagementURL = "https://management.azure.com"

	// apiVersion pins the PIM schedule-instance and schedule-request APIs.
	apiVersion = "2020-10-01"
)

// Client is the programmatic entry point for PIM operations. Zero fields
// are not usable; construct with NewClient and override fields as needed
// before first use.
type Client struct {
	Runner        Runner
	Matcher       Matcher
	Store         QuickRoleStore
	Logger        *slog.Logger
	ManagementURL string
}

// NewClient returns a Client wired with the real Azure CLI runner, the
// substring matcher, and the default file-backed quick-roles store.
func NewClient() *Client {
	logger := slog.Default()
	return &Client{
		Runner:        &AzureCLI{},
		Matcher:       SubstringMatcher{},
		Store:         NewFileStore(logger),
		Logger:        logger,
		ManagementURL: DefaultManagementURL,
	}
}
