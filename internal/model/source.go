// Package model defines the option records produced by configuration resolution.
package model

// Path represents a file system path.
type Path string

// Glob represents a file glob pattern.
type Glob string

// OptionInfo describes a registered option for listings.
type OptionInfo struct {
	Name    string
	Scope   string
	Kind    string
	Flag    string
	Default string
}

// Resolved holds the outcome of a successful resolution: one set of global
// options for the run and one set of options per project.
type Resolved struct {
	Global   GlobalOptions    `json:"global" yaml:"global"`
	Projects []ProjectOptions `json:"projects" yaml:"projects"`
}
