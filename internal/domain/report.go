package domain

// FileCoverage is the coverage of a single source file in a merged report
type FileCoverage struct {
	File           string
	PercentCovered string
	CoveredLines   int
	TotalLines     int
}

// Report is the machine-readable summary of a merged kcov report
type Report struct {
	// PercentCovered is kept exactly as kcov wrote it so that printing it
	// does not change its formatting.
	PercentCovered string
	CoveredLines   int
	TotalLines     int
	Command        string
	Date           string
	Files          []FileCoverage
}
