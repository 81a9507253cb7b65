// Package stats periodically snapshots store totals into Prometheus gauges.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/metrics"
	"github.com/robfig/cron/v3"
)

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

type taskStatter interface {
	Stats(ctx context.Context) (domain.TaskStats, error)
}

type Collector struct {
	users  userCounter
	tasks  taskStatter
	spec   string
	logger *slog.Logger
}

// NewCollector rejects a spec that is neither standard cron syntax nor a
// descriptor such as "@every 1m".
func NewCollector(users userCounter, tasks taskStatter, spec string, logger *slog.Logger) (*Collector, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", spec, err)
	}
	return &Collector{
		users:  users,
		tasks:  tasks,
		spec:   spec,
		logger: logger.With("component", "stats_collector"),
	}, nil
}

// Start collects once, then on every tick of the schedule until ctx is done.
// It blocks, so run it in its own goroutine.
func (c *Collector) Start(ctx context.Context) {
	c.run(ctx)

	cr := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := cr.AddFunc(c.spec, func() { c.run(ctx) }); err != nil {
		c.logger.Error("schedule stats collection", "error", err)
		return
	}
	cr.Start()
	c.logger.Info("stats collector started", "schedule", c.spec)

	<-ctx.Done()
	<-cr.Stop().Done()
	c.logger.Info("stats collector shut down")
}

func (c *Collector) run(ctx context.Context) {
	if err := c.Collect(ctx); err != nil && ctx.Err() == nil {
		c.logger.Warn("collect stats", "error", err)
	}
}

// Collect refreshes the gauges. A failing source leaves its gauge untouched.
func (c *Collector) Collect(ctx context.Context) error {
	var errs []error

	users, err := c.users.Count(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("count users: %w", err))
	} else {
		metrics.UsersStored.Set(float64(users))
	}

	st, err := c.tasks.Stats(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("task stats: %w", err))
	} else {
		metrics.TasksStored.WithLabelValues("open").Set(float64(st.Open))
		metrics.TasksStored.WithLabelValues("completed").Set(float64(st.Completed))
	}

	return errors.Join(errs...)
}
