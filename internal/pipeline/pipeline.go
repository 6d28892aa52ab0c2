// Package pipeline runs a coaching request through a fixed chain of stages.
// Every stage returns the same result envelope; a failed stage stops the
// chain and its errors become the run's errors.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"riftcoach/internal/logger"
	"riftcoach/internal/schema"
)

// Status is the outcome class of a single stage.
type Status string

const (
	StatusOK             Status = "ok"
	StatusFailed         Status = "failed"
	StatusNotImplemented Status = "not_implemented"
)

// StageResult is the uniform envelope every stage returns.
type StageResult struct {
	Agent    string        `json:"agent"`
	Status   Status        `json:"status"`
	Errors   []string      `json:"errors,omitempty"`
	Duration time.Duration `json:"duration"`
}

// OK builds a success envelope for the named stage.
func OK(agent string) StageResult {
	return StageResult{Agent: agent, Status: StatusOK}
}

// Fail builds a failure envelope carrying the given errors.
func Fail(agent string, errs ...string) StageResult {
	return StageResult{Agent: agent, Status: StatusFailed, Errors: errs}
}

// Failf builds a single-error failure envelope.
func Failf(agent, format string, args ...any) StageResult {
	return Fail(agent, fmt.Sprintf(format, args...))
}

// NotImplemented marks a request that depends on a capability the system
// does not have. It stops the chain like a failure but is reported under
// its own status.
func NotImplemented(agent, msg string) StageResult {
	return StageResult{Agent: agent, Status: StatusNotImplemented, Errors: []string{msg}}
}

// Stage is one step of the chain. Run reads its inputs from the context,
// writes its output back, and reports through the envelope.
type Stage interface {
	Name() string
	Run(ctx context.Context, cc *CoachContext) StageResult
}

// Result is the outcome of a full run.
type Result struct {
	Success  bool                 `json:"success"`
	Package  *schema.CoachPackage `json:"package,omitempty"`
	Errors   []string             `json:"errors,omitempty"`
	FailedAt string               `json:"failed_at,omitempty"`
	TimingMS map[string]int64     `json:"timing_ms"`
	Stages   []StageResult        `json:"stages"`
}

// Runner executes stages in order with fail-fast semantics.
type Runner struct {
	stages []Stage
}

func NewRunner(stages ...Stage) *Runner {
	return &Runner{stages: stages}
}

// Run walks the chain. The first non-ok stage stops the run; its errors are
// surfaced on the result. On success the result carries the validated
// package published by the terminal stage.
func (r *Runner) Run(ctx context.Context, cc *CoachContext) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	res := Result{TimingMS: make(map[string]int64, len(r.stages))}
	for _, st := range r.stages {
		if err := ctx.Err(); err != nil {
			res.Errors = []string{err.Error()}
			res.FailedAt = st.Name()
			return res
		}
		start := time.Now()
		sr := st.Run(ctx, cc)
		sr.Agent = st.Name()
		sr.Duration = time.Since(start)
		res.TimingMS[st.Name()] = sr.Duration.Milliseconds()
		res.Stages = append(res.Stages, sr)
		logger.Debugf("[pipeline] trace=%s stage=%s status=%s took=%s",
			cc.TraceID, st.Name(), sr.Status, sr.Duration.Round(time.Microsecond))
		if sr.Status != StatusOK {
			res.Errors = sr.Errors
			res.FailedAt = st.Name()
			logger.Warnf("[pipeline] trace=%s stopped at %s: %v", cc.TraceID, st.Name(), sr.Errors)
			return res
		}
	}
	pkg, ok := cc.Package()
	if !ok {
		res.Errors = []string{"pipeline completed without publishing a package"}
		return res
	}
	res.Success = true
	res.Package = &pkg
	return res
}
