package config

const (
	// DefaultRootPath is the default workspace root
	DefaultRootPath = "."
	// DefaultManifestName is the manifest that marks a project directory
	DefaultManifestName = "Cargo.toml"
	// DefaultSourceDir is the per-project directory kcov reports on
	DefaultSourceDir = "src"
	// DefaultTestsDir holds one integration test per file
	DefaultTestsDir = "tests"
	// DefaultEnvFile is loaded from the root when present
	DefaultEnvFile = ".env"
	// DefaultSummaryPath is where kcov writes the merged summary, relative to the coverage dir
	DefaultSummaryPath = "kcov-merged/coverage.json"
	// DefaultReportIndex is the HTML entry point of the merged report
	DefaultReportIndex = "index.html"
)

// DefaultPathsToIgnore are the subdirectories of a project that are never
// walked looking for nested manifests
var DefaultPathsToIgnore = []string{
	"src",
	"examples",
	"target",
	"tests",
	".git",
	".hg",
	".svn",
}
