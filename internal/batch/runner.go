package batch

import (
	"fmt"

	"github.com/kordata/xlmatch/internal/match"
	"github.com/kordata/xlmatch/internal/progress"
)

// JobResult holds the outcome of one completed batch job.
type JobResult struct {
	JobID  string        `json:"jobId"`
	Result *match.Result `json:"result,omitempty"`
	Err    error         `json:"-"`
	Error  string        `json:"error,omitempty"`
}

// RunFunc executes a single match job. Tests substitute this to run
// batches without touching real workbooks.
type RunFunc func(cfg match.RunConfig) (*match.Result, error)

// Runner executes batch jobs sequentially.
type Runner struct {
	Verbose bool
	Run     RunFunc
}

// NewRunner creates a Runner backed by the real match engine.
func NewRunner(verbose bool) *Runner {
	return &Runner{Verbose: verbose, Run: match.Run}
}

// Execute runs every job in order. A failing job aborts the batch unless
// its on_failure is "skip"; results for completed jobs are returned either
// way.
func (r *Runner) Execute(f *File) ([]JobResult, error) {
	bar := progress.New(f.Name, len(f.Jobs))

	var results []JobResult
	for i, job := range f.Jobs {
		if r.Verbose {
			fmt.Printf("[%d/%d] Running job: %s (%s → %s)\n",
				i+1, len(f.Jobs), job.ID, job.SourcePath, job.TargetPath)
		}

		result, err := r.Run(job.RunConfig)
		jr := JobResult{JobID: job.ID, Result: result, Err: err}
		if err != nil {
			jr.Error = err.Error()
		}
		results = append(results, jr)
		bar.Increment(job.ID)

		if err != nil {
			if job.OnFailure == "skip" {
				if r.Verbose {
					fmt.Printf("  Job %s failed (skipping): %s\n", job.ID, err)
				}
				continue
			}
			return results, fmt.Errorf("job %q failed: %w", job.ID, err)
		}

		if r.Verbose {
			fmt.Printf("  Matched %d/%d rows into %q\n", result.Matched, result.Total, result.Column)
		}
	}

	bar.Finish(fmt.Sprintf("%s: %d job(s) complete", f.Name, len(results)))
	return results, nil
}
