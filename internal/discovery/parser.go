package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/spf13/afero"
)

// Matches test attributes such as:
// - #[test]
// - #[tokio::test]
// - #[tokio::test(flavor = "multi_thread")]
// followed by optional further attributes and the function signature.
var testFnPattern = regexp.MustCompile(`(?m)#\[(?:\w+::)*test(?:\([^\]]*\))?\]\s*(?:#\[[^\]]*\]\s*)*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+(\w+)`)

// Parser parses Rust source files to extract test functions
type Parser struct {
	fs afero.Fs
}

// NewParser creates a new Parser
func NewParser(fsys afero.Fs) *Parser {
	return &Parser{fs: fsys}
}

// FindTestCases finds all test functions in a source file
func (p *Parser) FindTestCases(filePath string) ([]string, error) {
	content, err := afero.ReadFile(p.fs, filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	seen := make(map[string]bool)
	for _, match := range testFnPattern.FindAllStringSubmatch(string(content), -1) {
		seen[match[1]] = true
	}

	testCases := make([]string, 0, len(seen))
	for name := range seen {
		testCases = append(testCases, name)
	}
	sort.Strings(testCases)

	return testCases, nil
}

// SourceFiles returns every .rs file under dir, in walk order
func (p *Parser) SourceFiles(dir string) ([]string, error) {
	var files []string
	err := afero.Walk(p.fs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".rs" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return files, nil
}
