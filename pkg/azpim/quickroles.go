package azpim

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ConfigFileName is the quick-roles document looked up in the working
	// directory and the home directory.
	ConfigFileName = ".azpim.json"

	// quickRolesKey is the top-level key owned by this package. Unrelated
	// keys in the same document are preserved across saves.
	quickRolesKey = "quickRoles"

	// EnvQuickRoles overrides the on-disk configuration with a JSON array
	// of role references or a full config object.
	EnvQuickRoles = "AZPIM_QUICK_ROLES"

	// EnvQuickRolesDescription overrides the loaded description.
	EnvQuickRolesDescription = "AZPIM_QUICK_ROLES_DESCRIPTION"

	// EnvDefaultJustification overrides the loaded default justification.
	EnvDefaultJustification = "AZPIM_DEFAULT_JUSTIFICATION"
)

// QuickRoleStore loads and saves the persisted quick-roles set. Load
// returns (nil, nil) when no source is populated.
type QuickRoleStore interface {
	Load() (*QuickRolesConfig, error)
	Save(QuickRolesConfig) error
}

// FileStore implements QuickRoleStore over a flat JSON document with an
// environment-variable override. Load precedence: env var, working-directory
// file, home-directory file. Saves always target the home-directory file.
//
// There is no cross-process locking around the read-modify-write save; a
// concurrent external writer can race it.
type FileStore struct {
	WorkPath string
	HomePath string

	// Lookup resolves environment variables; defaults to os.Getenv.
	Lookup func(string) string

	Logger *slog.Logger
}

// NewFileStore returns a store over ./.azpim.json and ~/.azpim.json.
func NewFileStore(logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory; Save will surface write errors.
		home = "."
	}

	return &FileStore{
		WorkPath: ConfigFileName,
		HomePath: filepath.Join(home, ConfigFileName),
		Lookup:   os.Getenv,
		Logger:   logger,
	}
}

// Load returns the first populated configuration source. Malformed JSON in
// the environment variable or a file is a warning, not a failure: the next
// source is consulted instead.
func (s *FileStore) Load() (*QuickRolesConfig, error) {
	cfg := s.fromEnv()

	if cfg == nil {
		for _, path := range []string{s.WorkPath, s.HomePath} {
			loaded, err := readConfigFile(path)
			if err != nil {
				s.Logger.Warn("skipping unreadable quick-roles file", "path", path, "error", err)
				continue
			}
			if loaded != nil {
				cfg = loaded
				break
			}
		}
	}

	if cfg == nil {
		return nil, nil
	}

	if desc := s.Lookup(EnvQuickRolesDescription); desc != "" {
		cfg.Description = desc
	}
	if just := s.Lookup(EnvDefaultJustification); just != "" {
		cfg.DefaultJustification = just
	}

	return cfg, nil
}

// fromEnv parses AZPIM_QUICK_ROLES as either a bare reference array or a
// full config object.
func (s *FileStore) fromEnv() *QuickRolesConfig {
	raw := s.Lookup(EnvQuickRoles)
	if raw == "" {
		return nil
	}

	var refs []RoleReference
	if err := json.Unmarshal([]byte(raw), &refs); err == nil && len(refs) > 0 {
		return &QuickRolesConfig{Roles: refs}
	}

	var cfg QuickRolesConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err == nil && len(cfg.Roles) > 0 {
		return &cfg
	}

	s.Logger.Warn("ignoring malformed quick-roles environment variable", "var", EnvQuickRoles)
	return nil
}

func readConfigFile(path string) (*QuickRolesConfig, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	encoded, ok := doc[quickRolesKey]
	if !ok {
		return nil, nil
	}

	var cfg QuickRolesConfig
	if err := json.Unmarshal(encoded, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s key in %s: %w", quickRolesKey, path, err)
	}
	if len(cfg.Roles) == 0 {
		return nil, nil
	}

	return &cfg, nil
}

// Save writes the configuration under the quickRoles key of the home file,
// merging into whatever other top-level keys the document already holds. A
// corrupt existing file is treated as empty rather than failing the save.
func (s *FileStore) Save(cfg QuickRolesConfig) error {
	doc := map[string]json.RawMessage{}

	raw, err := os.ReadFile(s.HomePath)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &doc); err != nil {
			s.Logger.Warn("existing quick-roles file is not valid JSON, replacing", "path", s.HomePath)
			doc = map[string]json.RawMessage{}
		}
	case os.IsNotExist(err):
		// First save.
	default:
		return fmt.Errorf("read %s: %w", s.HomePath, err)
	}

	encoded, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode quick roles: %w", err)
	}
	doc[quickRolesKey] = encoded

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config document: %w", err)
	}

	if err := os.WriteFile(s.HomePath, append(out, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.HomePath, err)
	}

	return nil
}
