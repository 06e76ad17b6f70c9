package discovery

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"rustcov/internal/domain"
)

// cargoManifest is the subset of Cargo.toml the resolver needs
type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		Name string `toml:"name"`
	} `toml:"lib"`
}

// ReadManifest reads the package and library names of a project.
// The library name is left empty when it would equal the package name.
func ReadManifest(fsys afero.Fs, path string) (domain.Names, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return domain.Names{}, &domain.ManifestError{Path: path, Reason: "cannot read", Err: err}
	}

	var m cargoManifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return domain.Names{}, &domain.ManifestError{Path: path, Reason: "cannot parse", Err: err}
	}

	if m.Package.Name == "" {
		return domain.Names{}, &domain.ManifestError{Path: path, Reason: "missing package name"}
	}

	names := domain.Names{Package: m.Package.Name}

	// Cargo names library targets after the package with dashes replaced
	library := m.Lib.Name
	if library == "" {
		library = strings.ReplaceAll(m.Package.Name, "-", "_")
	}
	if library != names.Package {
		names.Library = library
	}

	return names, nil
}
