package simulation

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
)

const ErrInvalidDepthRange domain.Error = "simulation depths must satisfy 0 <= min <= max"

type Report struct {
	ID         string             `json:"id"`
	Rows       int                `json:"rows"`
	Columns    int                `json:"columns"`
	MinDepth   int                `json:"minDepth"`
	MaxDepth   int                `json:"maxDepth"`
	Matches    []MatchResult      `json:"matches"`
	Summary    []DepthDiffSummary `json:"summary"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt"`
}

func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Runner plays every ordered pair of depths in [MinDepth, MaxDepth] against each other.
type Runner struct {
	Geometry domain.Geometry
	MinDepth int
	MaxDepth int
	Workers  int
}

type matchTask struct {
	index       int
	firstDepth  int
	secondDepth int
}

type matchOutcome struct {
	index  int
	result MatchResult
	err    error
}

func (r Runner) pairs() []matchTask {
	var tasks []matchTask
	for first := r.MinDepth; first <= r.MaxDepth; first++ {
		for second := r.MinDepth; second <= r.MaxDepth; second++ {
			tasks = append(tasks, matchTask{index: len(tasks), firstDepth: first, secondDepth: second})
		}
	}
	return tasks
}

func (r Runner) Run(ctx context.Context) (*Report, error) {
	if r.MinDepth < 0 || r.MaxDepth < r.MinDepth {
		return nil, fmt.Errorf("%w: got %d..%d", ErrInvalidDepthRange, r.MinDepth, r.MaxDepth)
	}
	geometry := r.Geometry
	if !geometry.Valid() {
		geometry = domain.DefaultGeometry
	}
	numWorkers := r.Workers
	if numWorkers < 1 {
		numWorkers = 1
	}

	report := &Report{
		ID:        uid.GenerateReportID(),
		Rows:      geometry.Rows,
		Columns:   geometry.Columns,
		MinDepth:  r.MinDepth,
		MaxDepth:  r.MaxDepth,
		StartedAt: time.Now(),
	}

	pairs := r.pairs()
	log.Printf("[SIM] Running %d matches on %d workers (depth %d..%d)", len(pairs), numWorkers, r.MinDepth, r.MaxDepth)

	tasks := make(chan matchTask)
	results := make(chan matchOutcome, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(ctx, i, geometry, tasks, results, &wg)
	}

	go func() {
		defer close(tasks)
		for _, task := range pairs {
			select {
			case tasks <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	matches := make([]MatchResult, len(pairs))
	completed := 0
	var firstErr error
	for outcome := range results {
		if outcome.err != nil {
			if firstErr == nil {
				firstErr = outcome.err
			}
			continue
		}
		matches[outcome.index] = outcome.result
		completed++
	}

	if err := ctx.Err(); err != nil {
		log.Printf("[SIM] Cancelled after %d of %d matches", completed, len(pairs))
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	report.Matches = matches
	report.Summary = Summarize(matches)
	report.FinishedAt = time.Now()
	log.Printf("[SIM] Report %s finished in %s", report.ID, report.Duration())
	return report, nil
}

func worker(ctx context.Context, id int, g domain.Geometry, tasks <-chan matchTask, results chan<- matchOutcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range tasks {
		if ctx.Err() != nil {
			return
		}

		result, err := PlayMatch(g, task.firstDepth, task.secondDepth)
		if err != nil {
			err = fmt.Errorf("match %d vs %d: %w", task.firstDepth, task.secondDepth, err)
		}
		results <- matchOutcome{index: task.index, result: result, err: err}

		log.Printf("[SIM] Match %d (depth %d vs %d) finished on worker %d", task.index, task.firstDepth, task.secondDepth, id)
	}
}
