package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/crowdfund-cli/internal/usecase"
)

// SpinnerProgressReporter renders submission states as a stage trail with
// a spinner while waiting on the wallet or the network
type SpinnerProgressReporter struct {
	mu           sync.Mutex
	spinner      *spinner.Spinner
	out          io.Writer
	stages       []stageInfo
	currentStage string
}

type stageInfo struct {
	Stage     string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	Message   string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo writes to out instead of stderr
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress records the stage and updates the spinner
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.Stage != r.currentStage {
		r.completeCurrentStage(event.Stage == "failed")
		r.currentStage = event.Stage
		r.stages = append(r.stages, stageInfo{
			Stage:     event.Stage,
			StartTime: time.Now(),
			Status:    "running",
			Message:   event.Message,
		})
	} else if len(r.stages) > 0 {
		r.stages[len(r.stages)-1].Message = event.Message
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.display()
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.println(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.println(color.New(color.FgRed), message)
}

// println pauses the spinner around a message
func (r *SpinnerProgressReporter) println(c *color.Color, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	r.completeCurrentStage(false)
	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// Stages returns the recorded stage names in order
func (r *SpinnerProgressReporter) Stages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.Stage
	}
	return names
}

func (r *SpinnerProgressReporter) completeCurrentStage(failed bool) {
	if len(r.stages) == 0 {
		return
	}
	idx := len(r.stages) - 1
	if r.stages[idx].Status != "running" {
		return
	}
	r.stages[idx].EndTime = time.Now()
	r.stages[idx].Status = "completed"
	if failed {
		r.stages[idx].Status = "failed"
	}
}

// display renders the stage trail
func (r *SpinnerProgressReporter) display() string {
	var display string

	for i, stage := range r.stages {
		var icon string
		var stageColor *color.Color

		switch stage.Status {
		case "completed":
			icon = "✓"
			stageColor = color.New(color.FgGreen)
		case "running":
			icon = "●"
			stageColor = color.New(color.FgYellow)
		case "failed":
			icon = "✗"
			stageColor = color.New(color.FgRed)
		default:
			icon = "○"
			stageColor = color.New(color.FgWhite)
		}

		duration := ""
		if !stage.EndTime.IsZero() {
			duration = fmt.Sprintf(" (%s)", stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond))
		}

		if i > 0 {
			display += " → "
		}
		label := stage.Message
		if label == "" {
			label = stage.Stage
		}
		display += fmt.Sprintf("%s %s%s", icon, stageColor.Sprint(label), duration)
	}

	return display
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
