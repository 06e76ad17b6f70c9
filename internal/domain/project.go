package domain

// Project represents a workspace member: a directory holding a Cargo.toml
type Project struct {
	Dir          string // Directory containing the manifest
	ManifestPath string // Full path to Cargo.toml
	SourceDir    string // Dir/src, the include path handed to kcov
	TestsDir     string // Dir/tests, may not exist
}

// Names holds the logical names a manifest declares
type Names struct {
	Package string // [package].name, always set
	Library string // Library target name, empty when it equals Package
}

// UnitCandidates returns the logical names to try, in order, when resolving
// the unit-test binary of a project
func (n Names) UnitCandidates() []string {
	if n.Library == "" || n.Library == n.Package {
		return []string{n.Package}
	}
	return []string{n.Package, n.Library}
}
