package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
	"rustcov/internal/domain"
)

// Resolver finds the most recently built test binary for a logical name
type Resolver struct {
	fs       afero.Fs
	buildDir string
}

// NewResolver creates a Resolver scanning buildDir on the given filesystem
func NewResolver(fsys afero.Fs, buildDir string) *Resolver {
	return &Resolver{fs: fsys, buildDir: buildDir}
}

// BuildDir returns the directory the resolver scans
func (r *Resolver) BuildDir() string {
	return r.buildDir
}

// ArtifactPattern matches {name}-{hex hash} and nothing else
func ArtifactPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(name) + `-[0-9a-fA-F]+$`)
}

// Latest returns the entry of the build directory named {name}-{hash} with
// the newest modification time. Equal times go to the entry listed last.
// It returns domain.ErrNotFound when the name is empty, the directory is
// missing, or nothing matches.
//
// Cargo gives no way to map a hash back to the workspace member that
// produced it, so two members with an identically named integration test
// both resolve to whichever binary was written last.
func (r *Resolver) Latest(name string) (domain.Artifact, error) {
	if name == "" {
		return domain.Artifact{}, domain.ErrNotFound
	}

	entries, err := afero.ReadDir(r.fs, r.buildDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Artifact{}, domain.ErrNotFound
		}
		return domain.Artifact{}, fmt.Errorf("read build dir %s: %w", r.buildDir, err)
	}

	pattern := ArtifactPattern(name)
	var latest fs.FileInfo
	for _, entry := range entries {
		if !pattern.MatchString(entry.Name()) {
			continue
		}
		if latest == nil || !entry.ModTime().Before(latest.ModTime()) {
			latest = entry
		}
	}

	if latest == nil {
		return domain.Artifact{}, domain.ErrNotFound
	}

	return domain.Artifact{
		Name:     name,
		Path:     filepath.Join(r.buildDir, latest.Name()),
		FileName: latest.Name(),
		ModTime:  latest.ModTime(),
	}, nil
}

// LatestOf tries each name in order and returns the first artifact found
func (r *Resolver) LatestOf(names ...string) (domain.Artifact, error) {
	for _, name := range names {
		artifact, err := r.Latest(name)
		if err == nil {
			return artifact, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Artifact{}, err
		}
	}
	return domain.Artifact{}, domain.ErrNotFound
}
