package commands

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/satishbabariya/schemaflow/cli/internal/config"
	"github.com/satishbabariya/schemaflow/dsl"
	"github.com/satishbabariya/schemaflow/migrate"
)

// compiledMigration is a migration file together with its compiled result.
type compiledMigration struct {
	Name   string
	Path   string
	Result migrate.Result
}

// migrationName derives the output name of a migration from its path:
// "db/0001_init.migration" becomes "0001_init".
func migrationName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// migrationPaths returns the paths given on the command line, or the
// configured migration path.
func migrationPaths(opts *options, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{opts.cfg.MigrationPath}
}

func readMigration(path string) (*dsl.File, error) {
	f, err := config.AppFs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration: %w", err)
	}
	defer f.Close()

	return dsl.Parse(path, f)
}

func compileFile(path string) (compiledMigration, error) {
	file, err := readMigration(path)
	if err != nil {
		return compiledMigration{}, err
	}

	result, err := migrate.Compile(file.Step())
	if err != nil {
		return compiledMigration{}, fmt.Errorf("%s: %w", path, err)
	}

	return compiledMigration{Name: migrationName(path), Path: path, Result: result}, nil
}

// compileAll compiles independent migration files concurrently. Results
// keep the order of paths.
func compileAll(paths []string) ([]compiledMigration, error) {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := migrationName(p)
		if other, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s and %s would both compile to %q", other, p, name)
		}
		seen[name] = p
	}

	out := make([]compiledMigration, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			c, err := compileFile(p)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveOutputDir(opts *options, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return opts.cfg.OutputDir
}
