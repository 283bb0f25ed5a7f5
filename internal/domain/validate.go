package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	m "gooze.dev/pkg/optset/internal/model"
)

// Provenance records the source of every resolved value.
type Provenance struct {
	Global   map[string]Source
	Projects []map[string]Source
}

// Explicit reports whether name was set by the CLI or a config file, for the
// global record (project < 0) or the given project.
func (p Provenance) Explicit(name string, project int) bool {
	sources := p.Global
	if project >= 0 && project < len(p.Projects) {
		sources = p.Projects[project]
	}

	src, ok := sources[name]

	return ok && src != SourceDefault
}

// Validator checks resolved records for semantic errors.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns every violation found in res, in a stable order.
func (v *Validator) Validate(res *m.Resolved, prov Provenance) Errors {
	var errs Errors

	g := res.Global

	errs = append(errs, v.shared(g.SharedOptions)...)
	errs = append(errs, v.global(g)...)

	for i, p := range res.Projects {
		label := ProjectLabel(p.Name, i)
		errs = append(errs, v.project(p, label)...)

		if prov.Explicit("testMatch", -1) && prov.Explicit("testRegex", i) && len(p.TestRegex) > 0 {
			errs = append(errs, &ValidationError{
				Option:  "testRegex",
				Project: label,
				Message: "cannot be combined with testMatch; pick one",
			})
		}
	}

	return errs
}

func (v *Validator) shared(s m.SharedOptions) Errors {
	var errs Errors

	if s.RootDir == "" {
		errs = append(errs, required("rootDir", ""))
	}

	errs = append(errs, noEmptyEntries("coveragePathIgnorePatterns", "", s.CoveragePathIgnorePatterns)...)
	errs = append(errs, noEmptyEntries("extraGlobals", "", s.ExtraGlobals)...)

	return errs
}

func (v *Validator) global(g m.GlobalOptions) Errors {
	var errs Errors

	errs = append(errs, v.threshold(g.CollectCoverage, g.CoverageThreshold)...)

	if g.CoverageDirectory == "" {
		errs = append(errs, required("coverageDirectory", ""))
	}

	if g.TestSequencer == "" {
		errs = append(errs, required("testSequencer", ""))
	}

	errs = append(errs, noEmptyEntries("testMatch", "", g.TestMatch)...)
	errs = append(errs, noEmptyEntries("collectCoverageFrom", "", g.CollectCoverageFrom)...)
	errs = append(errs, noEmptyEntries("projects", "", g.Projects)...)

	if !slices.Contains(m.NotifyModes, g.NotifyMode) {
		errs = append(errs, notOneOf("notifyMode", "", g.NotifyMode, m.NotifyModes))
	}

	if !slices.Contains(m.SnapshotUpdateStates, g.UpdateSnapshot) {
		errs = append(errs, notOneOf("updateSnapshot", "", g.UpdateSnapshot, m.SnapshotUpdateStates))
	}

	for _, r := range g.CoverageReporters {
		if !slices.Contains(m.CoverageReporters, r) {
			errs = append(errs, &ValidationError{Option: "coverageReporters", Message: fmt.Sprintf("unknown reporter %q", r)})
		}
	}

	if g.Watch && g.WatchAll {
		errs = append(errs, &ValidationError{Option: "watchAll", Message: "cannot be combined with watch; pick one"})
	}

	if g.Bail < 0 {
		errs = append(errs, &ValidationError{Option: "bail", Message: fmt.Sprintf("must be zero or more, got %d", g.Bail)})
	}

	if g.MaxWorkers < 0 {
		errs = append(errs, &ValidationError{Option: "maxWorkers", Message: fmt.Sprintf("must be zero or more, got %d", g.MaxWorkers)})
	}

	if g.MaxConcurrency < 1 {
		errs = append(errs, &ValidationError{Option: "maxConcurrency", Message: fmt.Sprintf("must be at least 1, got %d", g.MaxConcurrency)})
	}

	for _, r := range g.Reporters {
		if r.Path == "" {
			errs = append(errs, &ValidationError{Option: "reporters", Message: "reporter path is empty"})
		}
	}

	return errs
}

// threshold requires the global entry only when coverage is collected and
// thresholds are set. Metric names are always checked.
func (v *Validator) threshold(collect bool, t m.CoverageThreshold) Errors {
	var errs Errors

	if collect && len(t) > 0 {
		if _, ok := t[m.GlobalThresholdKey]; !ok {
			errs = append(errs, &ValidationError{
				Option:  "coverageThreshold",
				Message: fmt.Sprintf("missing the %q entry", m.GlobalThresholdKey),
			})
		}
	}

	for _, path := range slices.Sorted(maps.Keys(t)) {
		for _, metric := range slices.Sorted(maps.Keys(t[path])) {
			if !slices.Contains(m.CoverageMetrics, metric) {
				errs = append(errs, &ValidationError{
					Option:  "coverageThreshold",
					Message: fmt.Sprintf("%q: unknown metric %q (want one of %s)", path, metric, strings.Join(m.CoverageMetrics, ", ")),
				})
			}
		}
	}

	return errs
}

func (v *Validator) project(p m.ProjectOptions, label string) Errors {
	var errs Errors

	if p.CacheDirectory == "" {
		errs = append(errs, required("cacheDirectory", label))
	}

	if p.TestEnvironment == "" {
		errs = append(errs, required("testEnvironment", label))
	}

	if p.TestRunner == "" {
		errs = append(errs, required("testRunner", label))
	}

	if len(p.ModuleFileExtensions) == 0 {
		errs = append(errs, required("moduleFileExtensions", label))
	}

	if len(p.Roots) == 0 {
		errs = append(errs, required("roots", label))
	}

	errs = append(errs, noEmptyEntries("moduleFileExtensions", label, p.ModuleFileExtensions)...)
	errs = append(errs, noEmptyEntries("roots", label, p.Roots)...)
	errs = append(errs, noEmptyEntries("testPathIgnorePatterns", label, p.TestPathIgnorePatterns)...)
	errs = append(errs, noEmptyEntries("testRegex", label, p.TestRegex)...)
	errs = append(errs, noEmptyEntries("transformIgnorePatterns", label, p.TransformIgnorePatterns)...)
	errs = append(errs, noEmptyEntries("modulePathIgnorePatterns", label, p.ModulePathIgnorePatterns)...)
	errs = append(errs, noEmptyEntries("watchPathIgnorePatterns", label, p.WatchPathIgnorePatterns)...)

	for _, pair := range p.ModuleNameMapper {
		if pair.Pattern == "" {
			errs = append(errs, &ValidationError{Option: "moduleNameMapper", Project: label, Message: "pattern is empty"})
		}
	}

	for _, pair := range p.Transform {
		if pair.Pattern == "" {
			errs = append(errs, &ValidationError{Option: "transform", Project: label, Message: "pattern is empty"})
		}
	}

	if !slices.Contains(m.TimerModes, p.Timers) {
		errs = append(errs, notOneOf("timers", label, p.Timers, m.TimerModes))
	}

	if p.DisplayName != nil {
		if p.DisplayName.Name == "" {
			errs = append(errs, &ValidationError{Option: "displayName", Project: label, Message: "name is empty"})
		}

		if p.DisplayName.Color != "" && !slices.Contains(m.DisplayNameColors, p.DisplayName.Color) {
			errs = append(errs, &ValidationError{
				Option:  "displayName",
				Project: label,
				Message: fmt.Sprintf("unknown color %q", p.DisplayName.Color),
			})
		}
	}

	return errs
}

func required(option, project string) *ValidationError {
	return &ValidationError{Option: option, Project: project, Message: "must not be empty"}
}

func noEmptyEntries[T ~string](option, project string, entries []T) Errors {
	var errs Errors

	for i, entry := range entries {
		if strings.TrimSpace(string(entry)) == "" {
			errs = append(errs, &ValidationError{Option: option, Project: project, Message: fmt.Sprintf("entry %d is empty", i)})
		}
	}

	return errs
}

func notOneOf[T ~string](option, project string, got T, valid []T) *ValidationError {
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}

	return &ValidationError{
		Option:  option,
		Project: project,
		Message: fmt.Sprintf("%q is not one of %s", got, strings.Join(names, ", ")),
	}
}
