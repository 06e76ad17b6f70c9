package cli

import "rustcov/internal/config"

// Flags holds command-line flags
type Flags struct {
	Root        string
	NoBrowser   bool
	PrintReport string
	EnableLog   bool
	NameFilter  string
	TestCases   bool
	Table       bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		NoBrowser:   f.NoBrowser,
		PrintReport: f.PrintReport,
		EnableLog:   f.EnableLog,
		NameFilter:  f.NameFilter,
		TestCases:   f.TestCases,
		Table:       f.Table,
	}
}
