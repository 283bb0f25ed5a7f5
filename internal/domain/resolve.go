package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"runtime"

	"golang.org/x/sync/errgroup"

	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

const projectsKey = "projects"

// Input is everything one resolution reads.
type Input struct {
	// Argv holds the raw command-line values.
	Argv RawInput
	// Config is the root config payload, nil when there is none. Objects in
	// its projects list are inline project configs; strings are globs.
	Config pkg.Object
}

// Resolver turns raw input and config payloads into resolved records.
type Resolver struct {
	registry   *Registry
	normalizer *Normalizer
	merger     *Merger
	validator  *Validator
}

// NewResolver returns a Resolver over reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{
		registry:   reg,
		normalizer: NewNormalizer(reg),
		merger:     NewMerger(reg),
		validator:  NewValidator(),
	}
}

// Registry returns the registry the resolver works with.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve builds the global record and one record per project. Any parse or
// validation error fails the whole resolution; the returned error is then
// an Errors listing every problem.
func (r *Resolver) Resolve(ctx context.Context, in Input) (*m.Resolved, error) {
	res, _, err := r.Explain(ctx, in)
	return res, err
}

// Explain is like Resolve but also reports where every value came from.
//
// A value that fails to parse is left out of its layer and resolution goes
// on, so parse and validation errors are reported together. Validation
// errors on an option that already failed to parse are dropped.
func (r *Resolver) Explain(ctx context.Context, in Input) (*m.Resolved, Provenance, error) {
	var errs Errors

	cli, err := r.normalizer.Normalize(in.Argv)
	errs = appendErr(errs, err)

	overrides := r.normalizer.DefaultOverrides(in.Argv)

	rootConfig, inline := splitProjects(in.Config)

	root, err := r.normalizer.NormalizeConfig(rootConfig)
	errs = appendErr(errs, err)

	shared := r.merger.Merge(ScopeShared, cli, root, overrides)
	global := r.merger.Merge(ScopeGlobal, cli, root, overrides)

	sharedOpts := m.SharedOptions{}
	for name, v := range shared {
		d, _ := r.registry.Lookup(name)
		d.setShared(&sharedOpts, v.Value)
	}

	res := &m.Resolved{Global: m.GlobalOptions{SharedOptions: sharedOpts.Clone()}}
	for name, v := range global {
		d, _ := r.registry.Lookup(name)
		d.setGlobal(&res.Global, v.Value)
	}

	prov := Provenance{Global: shared.Sources()}
	maps.Copy(prov.Global, global.Sources())

	if len(inline) == 0 {
		inline = []pkg.Object{nil}
	}

	projects, sources, err := r.resolveProjects(ctx, inline, sharedOpts, cli, root, overrides)
	if err != nil {
		var projectErrs Errors
		if !errors.As(err, &projectErrs) {
			return nil, Provenance{}, err
		}

		errs = append(errs, projectErrs...)
	}

	res.Projects = projects
	prov.Projects = sources

	failed := failedOptions(errs)

	for _, err := range r.validator.Validate(res, prov) {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) && failed.has(validationErr.Option, validationErr.Project) {
			continue
		}

		errs = append(errs, err)
	}

	if len(errs) > 0 {
		slog.Debug("resolution failed", "errors", len(errs))
		return nil, Provenance{}, errs
	}

	slog.Debug("resolved options", "projects", len(res.Projects))

	return res, prov, nil
}

// parseFailures holds the options whose value could not be parsed, at the
// root ("" project) or inside one project.
type parseFailures map[string]map[string]bool

func failedOptions(errs Errors) parseFailures {
	failed := parseFailures{}

	for _, err := range errs {
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			continue
		}

		if failed[parseErr.Project] == nil {
			failed[parseErr.Project] = map[string]bool{}
		}

		failed[parseErr.Project][parseErr.Option] = true
	}

	return failed
}

// has reports a failure for option at the root, which every project
// inherits, or in the given project.
func (f parseFailures) has(option, project string) bool {
	return f[""][option] || f[project][option]
}

// resolveProjects resolves each payload concurrently. Results and errors
// keep payload order. A project whose payload has errors is still resolved
// from its valid entries; the errors come back as an Errors.
func (r *Resolver) resolveProjects(
	ctx context.Context,
	payloads []pkg.Object,
	shared m.SharedOptions,
	cli, root, overrides Derived,
) ([]m.ProjectOptions, []map[string]Source, error) {
	projects := make([]m.ProjectOptions, len(payloads))
	sources := make([]map[string]Source, len(payloads))
	failures := make([]error, len(payloads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, payload := range payloads {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			label := payloadLabel(payload, i)

			own, err := r.normalizer.NormalizeProject(payload, label)
			failures[i] = err

			merged := r.merger.Merge(ScopeProject, cli, own, root, overrides)

			project := m.ProjectOptions{SharedOptions: shared.Clone()}
			for name, v := range merged {
				d, _ := r.registry.Lookup(name)
				d.setProject(&project, v.Value)
			}

			if project.Name == "" && label != ProjectLabel("", i) {
				project.Name = label
			}

			projects[i] = project
			sources[i] = merged.Sources()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("resolve projects: %w", err)
	}

	var errs Errors
	for _, err := range failures {
		errs = appendErr(errs, err)
	}

	return projects, sources, errs.ErrOrNil()
}

// splitProjects separates inline project objects from project globs. The
// remaining globs stay in the root payload.
func splitProjects(config pkg.Object) (pkg.Object, []pkg.Object) {
	value, ok := config.Get(projectsKey)
	if !ok {
		return config, nil
	}

	items, ok := value.([]any)
	if !ok {
		return config, nil
	}

	var (
		globs  = []any{}
		inline []pkg.Object
	)

	for _, item := range items {
		if obj, isObj := item.(pkg.Object); isObj {
			inline = append(inline, obj)
			continue
		}

		globs = append(globs, item)
	}

	return config.With(projectsKey, globs), inline
}

func payloadLabel(payload pkg.Object, i int) string {
	name, _ := payload.Get("name")
	s, _ := name.(string)

	return ProjectLabel(s, i)
}

// ProjectLabel names a project in messages: its name, or its position.
func ProjectLabel(name string, i int) string {
	if name != "" {
		return name
	}

	return fmt.Sprintf("#%d", i+1)
}
