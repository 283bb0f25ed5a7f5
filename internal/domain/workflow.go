package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gooze.dev/pkg/optset/internal/adapter"
	"gooze.dev/pkg/optset/internal/controller"
	m "gooze.dev/pkg/optset/internal/model"
	"gooze.dev/pkg/optset/pkg"
)

// ResolveArgs contains the arguments of a resolution run.
type ResolveArgs struct {
	Argv RawInput
	// ConfigPath names the config file explicitly. When empty the store
	// looks for one in Dir.
	ConfigPath m.Path
	Dir        m.Path
	Format     controller.Format
}

// InitArgs contains the arguments for writing a starter config file.
type InitArgs struct {
	Path m.Path
}

// Workflow ties config loading, resolution and output together.
type Workflow interface {
	Resolve(ctx context.Context, args ResolveArgs) error
	Validate(ctx context.Context, args ResolveArgs) error
	Options(ctx context.Context) error
	Init(ctx context.Context, args InitArgs) error
}

type workflow struct {
	adapter.ConfigStore
	controller.UI
	resolver *Resolver
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(store adapter.ConfigStore, ui controller.UI, resolver *Resolver) Workflow {
	return &workflow{
		ConfigStore: store,
		UI:          ui,
		resolver:    resolver,
	}
}

// Resolve loads the config, resolves every option and prints the records.
func (w *workflow) Resolve(ctx context.Context, args ResolveArgs) error {
	res, err := w.resolve(ctx, args)
	if err != nil {
		return err
	}

	return w.DisplayResolved(ctx, res, args.Format)
}

// Validate resolves like Resolve but only reports success or the errors.
func (w *workflow) Validate(ctx context.Context, args ResolveArgs) error {
	res, err := w.resolve(ctx, args)
	if err != nil {
		return err
	}

	w.DisplayValid(ctx, len(res.Projects))

	return nil
}

// Options lists every recognized option.
func (w *workflow) Options(ctx context.Context) error {
	return w.DisplayOptions(ctx, w.resolver.Registry().Info())
}

// Init writes a config file holding every option that has a non-null default.
func (w *workflow) Init(ctx context.Context, args InitArgs) error {
	defaults, err := DefaultsObject(w.resolver.Registry())
	if err != nil {
		return err
	}

	if err := w.WriteDefaults(ctx, args.Path, defaults); err != nil {
		return fmt.Errorf("write %s: %w", args.Path, err)
	}

	slog.Info("wrote default config", "path", args.Path, "options", len(defaults), "defaultsVersion", DefaultsVersion)

	return nil
}

func (w *workflow) resolve(ctx context.Context, args ResolveArgs) (*m.Resolved, error) {
	config, err := w.load(ctx, args)
	if err != nil {
		return nil, err
	}

	res, err := w.resolver.Resolve(ctx, Input{Argv: args.Argv, Config: config})
	if err != nil {
		var errs Errors
		if errors.As(err, &errs) {
			w.DisplayErrors(ctx, errs)
		}

		return nil, err
	}

	return res, nil
}

func (w *workflow) load(ctx context.Context, args ResolveArgs) (pkg.Object, error) {
	path := args.ConfigPath

	if path == "" {
		found, ok, err := w.Find(ctx, args.Dir)
		if err != nil {
			return nil, fmt.Errorf("find config: %w", err)
		}

		if !ok {
			slog.Debug("no config file found", "dir", args.Dir)
			return nil, nil
		}

		path = found
	}

	config, err := w.Load(ctx, path)
	if err != nil {
		slog.Error("failed to load config", "path", path, "error", err)
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	slog.Debug("loaded config", "path", path, "keys", len(config))

	return config, nil
}

// DefaultsObject renders the registry defaults as a config payload, in
// declaration order. Options whose default is null are left out.
func DefaultsObject(reg *Registry) (pkg.Object, error) {
	out := pkg.Object{}

	for _, d := range reg.Descriptors() {
		encoded, err := json.Marshal(d.Default())
		if err != nil {
			return nil, fmt.Errorf("encode default of %q: %w", d.Name, err)
		}

		value, err := pkg.DecodeJSON(string(encoded))
		if err != nil {
			return nil, fmt.Errorf("decode default of %q: %w", d.Name, err)
		}

		if value == nil {
			continue
		}

		out = append(out, pkg.Member{Key: d.Name, Value: value})
	}

	return out, nil
}
