// Package app wires the knowledge store, defaults registry, and stage chain
// into a runnable coaching service.
package app

import (
	"context"
	"fmt"

	"riftcoach/internal/agent"
	"riftcoach/internal/config"
	"riftcoach/internal/defaults"
	"riftcoach/internal/pipeline"
	"riftcoach/internal/schema"
	"riftcoach/internal/store"
)

// App holds the shared dependencies of every coaching invocation.
type App struct {
	cfg      *config.Config
	store    *store.Store
	registry *defaults.Registry
	gate     *schema.Validator
}

// New builds the application from configuration. The defaults table and the
// package schema are loaded once here; patch data is loaded per request so
// a fresh ingest is picked up without restarting.
func New(cfg *config.Config) (*App, error) {
	registry, err := defaults.Load(cfg.DefaultsPath)
	if err != nil {
		return nil, err
	}
	gate, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:      cfg,
		store:    store.New(cfg.DataDir),
		registry: registry,
		gate:     gate,
	}, nil
}

func (a *App) Store() *store.Store          { return a.store }
func (a *App) Config() *config.Config       { return a.cfg }
func (a *App) Defaults() *defaults.Registry { return a.registry }

// Patch returns the patch a request should run against: the configured pin
// when set, otherwise the store's current version.
func (a *App) Patch() (string, error) {
	if a.cfg.Patch != "" {
		return a.cfg.Patch, nil
	}
	return a.store.ResolveCurrentVersion()
}

// Coach runs one request through the full stage chain.
func (a *App) Coach(ctx context.Context, req schema.CoachRequest) (pipeline.Result, error) {
	patch, err := a.Patch()
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("resolve patch: %w", err)
	}
	champions, err := a.store.Champions(patch)
	if err != nil {
		// The slot resolver and role inference degrade without a
		// vocabulary; the knowledge fetcher will report the real error.
		champions = nil
	}

	runner := pipeline.NewRunner(
		agent.NewSlotResolver(champions),
		agent.NewContextExtractor(),
		agent.NewRoleInference(champions),
		agent.NewKnowledgeFetcher(a.store),
		agent.NewBuildPlanner(a.registry),
		agent.NewValidator(a.gate),
	)
	cc := pipeline.NewContext(req, patch)
	return runner.Run(ctx, cc), nil
}
