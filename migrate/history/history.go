package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/zeebo/xxh3"

	"github.com/satishbabariya/schemaflow/internal/debug"
	"github.com/satishbabariya/schemaflow/migrate"
)

// ErrNoManifest is returned when a compiled migration has no manifest on disk.
var ErrNoManifest = errors.New("migration manifest not found")

// StatementRecord describes one statement of a compiled script.
type StatementRecord struct {
	Kind     string `json:"kind"`
	Table    string `json:"table"`
	Checksum string `json:"checksum"`
}

// Manifest describes a compiled migration written next to its script.
type Manifest struct {
	Name       string            `json:"name"`
	Checksum   string            `json:"checksum"`
	CompiledAt time.Time         `json:"compiledAt"`
	Statements []StatementRecord `json:"statements"`
	Schema     SchemaSnapshot    `json:"schema"`
}

// Checksum returns the xxh3 checksum of a script as 16 hex digits.
func Checksum(script string) string {
	return fmt.Sprintf("%016x", xxh3.HashString(script))
}

// NewManifest describes a compiled migration.
func NewManifest(name string, result migrate.Result, compiledAt time.Time) Manifest {
	stmts := result.Schema.Statements()
	records := make([]StatementRecord, 0, len(stmts))
	for _, s := range stmts {
		records = append(records, StatementRecord{
			Kind:     string(s.Kind),
			Table:    s.Table,
			Checksum: Checksum(s.SQL),
		})
	}

	return Manifest{
		Name:       name,
		Checksum:   Checksum(result.SQL),
		CompiledAt: compiledAt.UTC(),
		Statements: records,
		Schema:     Snapshot(result.Schema),
	}
}

// DriftError is returned by Verify when the files on disk no longer match
// a fresh compilation.
type DriftError struct {
	Name    string
	Reasons []string
}

// Error implements the error interface.
func (e *DriftError) Error() string {
	return fmt.Sprintf("migration %s has drifted: %s", e.Name, strings.Join(e.Reasons, "; "))
}

// Store reads and writes compiled migrations in a directory.
type Store struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir on fs.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir, now: time.Now}
}

// ScriptPath returns the path of the script for a migration.
func (s *Store) ScriptPath(name string) string {
	return filepath.Join(s.dir, name+".sql")
}

// ManifestPath returns the path of the manifest for a migration.
func (s *Store) ManifestPath(name string) string {
	return filepath.Join(s.dir, name+".lock.json")
}

// Write stores the script and manifest of a compiled migration.
func (s *Store) Write(name string, result migrate.Result) (Manifest, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := NewManifest(name, result, s.now())
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.ScriptPath(name), []byte(result.SQL), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("failed to write script: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.ManifestPath(name), append(data, '\n'), 0o644); err != nil {
		return Manifest{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	debug.Debug("wrote compiled migration", "name", name, "checksum", manifest.Checksum, "dir", s.dir)
	return manifest, nil
}

// Read loads the manifest and script of a migration.
func (s *Store) Read(name string) (*Manifest, string, error) {
	data, err := afero.ReadFile(s.fs, s.ManifestPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%s: %w", name, ErrNoManifest)
		}
		return nil, "", fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, "", fmt.Errorf("failed to decode manifest: %w", err)
	}

	script, err := afero.ReadFile(s.fs, s.ScriptPath(name))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read script: %w", err)
	}

	return &manifest, string(script), nil
}

// Verify compares the stored migration against a fresh compilation. It
// returns a *DriftError when they disagree.
func (s *Store) Verify(name string, result migrate.Result) error {
	manifest, script, err := s.Read(name)
	if err != nil {
		return err
	}

	var reasons []string
	want := Checksum(result.SQL)
	if got := Checksum(script); got != want {
		reasons = append(reasons, fmt.Sprintf("script checksum %s, expected %s", got, want))
	}
	if manifest.Checksum != want {
		reasons = append(reasons, fmt.Sprintf("manifest checksum %s, expected %s", manifest.Checksum, want))
	}

	fresh := NewManifest(name, result, manifest.CompiledAt)
	if len(fresh.Statements) != len(manifest.Statements) {
		reasons = append(reasons, fmt.Sprintf("manifest lists %d statements, expected %d", len(manifest.Statements), len(fresh.Statements)))
	} else {
		for i, stmt := range fresh.Statements {
			if manifest.Statements[i] != stmt {
				reasons = append(reasons, fmt.Sprintf("statement %d (%s %s) changed", i+1, stmt.Kind, stmt.Table))
			}
		}
	}

	if len(reasons) > 0 {
		return &DriftError{Name: name, Reasons: reasons}
	}
	return nil
}
