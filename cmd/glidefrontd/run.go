package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"glidefront/internal/config"
	"glidefront/internal/frontend"
	"glidefront/internal/jobqueue"
	"glidefront/internal/match"
	"glidefront/internal/pool"
)

func runDaemon(ctx context.Context, pollPeriod time.Duration, advertiseRate int, configPath string) error {
	cfg, _, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	constraint, err := match.CompileConstraint(cfg.Match.JobConstraint)
	if err != nil {
		return fmt.Errorf("compile job constraint: %w", err)
	}
	requirements, err := match.Compile(cfg.Match.Requirements)
	if err != nil {
		return fmt.Errorf("compile match requirements: %w", err)
	}

	sources := make([]jobqueue.Source, 0, len(cfg.Schedds))
	for _, schedd := range cfg.Schedds {
		sources = append(sources, jobqueue.Source{Name: schedd.Name, Path: schedd.Path})
	}
	queueClient, err := jobqueue.Open(sources, constraint.Filter())
	if err != nil {
		return fmt.Errorf("open queue sources: %w", err)
	}
	defer queueClient.Close()

	poolClient := pool.NewClient(cfg.Frontend.FactoryPool, cfg.Frontend.Name,
		time.Duration(cfg.Frontend.RequestTimeout)*time.Second)

	engine := frontend.NewEngine(poolClient, queueClient, match.NewCounter(requirements),
		cfg.Frontend.MaxIdle, cfg.Frontend.ReserveIdle, cfg.Frontend.GlideinParams)
	manager := frontend.NewManager(cfg, engine, poolClient, pollPeriod, advertiseRate)

	// Interrupt, terminate, and quit all funnel into the same graceful
	// shutdown transition.
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return manager.Run(signalCtx)
}
