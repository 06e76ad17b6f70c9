package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
	"rustcov/internal/config"
	"rustcov/internal/domain"
)

var errStopWalk = errors.New("stop walk")

// Workspace walks a directory tree looking for cargo projects
type Workspace struct {
	fs       afero.Fs
	root     string
	manifest string
	srcDir   string
	testsDir string
	skipDirs map[string]bool
}

// NewWorkspace creates a Workspace rooted at cfg.RootPath
func NewWorkspace(fsys afero.Fs, cfg *config.Config) *Workspace {
	skipMap := make(map[string]bool)
	for _, dir := range cfg.PathsToIgnore {
		skipMap[dir] = true
	}
	return &Workspace{
		fs:       fsys,
		root:     filepath.Clean(cfg.RootPath),
		manifest: cfg.ManifestName,
		srcDir:   cfg.SourceDir,
		testsDir: cfg.TestsDir,
		skipDirs: skipMap,
	}
}

// Projects lazily yields every project under the root, depth first.
// The source, tests, examples, target and version-control directories of a
// project are not walked. Projects without a source directory are skipped.
// A walk error is yielded once, after which the sequence ends.
func (w *Workspace) Projects() iter.Seq2[domain.Project, error] {
	return func(yield func(domain.Project, error) bool) {
		projects := make(map[string]bool)

		err := afero.Walk(w.fs, w.root, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return nil
			}

			if projects[filepath.Dir(path)] && w.skipDirs[info.Name()] {
				return filepath.SkipDir
			}

			manifestPath := filepath.Join(path, w.manifest)
			if !w.isFile(manifestPath) {
				return nil
			}
			projects[path] = true

			project := domain.Project{
				Dir:          path,
				ManifestPath: manifestPath,
				SourceDir:    filepath.Join(path, w.srcDir),
				TestsDir:     filepath.Join(path, w.testsDir),
			}
			if !w.isDir(project.SourceDir) {
				return nil
			}

			if !yield(project, nil) {
				return errStopWalk
			}
			return nil
		})

		if err != nil && !errors.Is(err, errStopWalk) {
			yield(domain.Project{}, fmt.Errorf("walk workspace %s: %w", w.root, err))
		}
	}
}

func (w *Workspace) isFile(path string) bool {
	info, err := w.fs.Stat(path)
	return err == nil && !info.IsDir()
}

func (w *Workspace) isDir(path string) bool {
	ok, err := afero.DirExists(w.fs, path)
	return err == nil && ok
}

// IntegrationTestNames returns one logical name per file directly inside the
// project's tests directory, extension stripped. A missing directory yields
// no names.
func IntegrationTestNames(fsys afero.Fs, project domain.Project) ([]string, error) {
	entries, err := afero.ReadDir(fsys, project.TestsDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tests dir %s: %w", project.TestsDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		names = append(names, name[:len(name)-len(filepath.Ext(name))])
	}
	return names, nil
}
