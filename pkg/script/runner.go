package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/introspection"

	"github.com/aretw0/roster/internal/platform"
	"github.com/aretw0/roster/pkg/core"
	"github.com/aretw0/roster/pkg/view"
)

// Failure is an expectation that did not hold.
type Failure struct {
	Step     int     `json:"step" yaml:"step"`
	Record   core.ID `json:"record" yaml:"record"`
	Key      string  `json:"key" yaml:"key"`
	Expected string  `json:"expected" yaml:"expected"`
	Actual   string  `json:"actual" yaml:"actual"`
}

func (f Failure) String() string {
	return fmt.Sprintf("step %d: %s.%s = %q, want %q", f.Step, f.Record, f.Key, f.Actual, f.Expected)
}

// Report is the outcome of one script run.
type Report struct {
	Script   string               `json:"script" yaml:"script"`
	Steps    int                  `json:"steps" yaml:"steps"`
	Skipped  int                  `json:"skipped" yaml:"skipped"`
	Failures []Failure            `json:"failures,omitempty" yaml:"failures,omitempty"`
	Rows     []view.RowView       `json:"rows" yaml:"rows"`
	State    core.ControllerState `json:"state" yaml:"state"`

	ctrl  *core.Controller
	table *view.Table
}

// OK reports whether every expectation held.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// Components returns the session's introspectable parts, controller first.
func (r *Report) Components() []introspection.Component {
	var out []introspection.Component
	if r.ctrl != nil {
		out = append(out, r.ctrl)
	}
	if r.table != nil {
		out = append(out, r.table)
	}
	return out
}

// Render writes the final table of the run.
func (r *Report) Render(w io.Writer) error {
	if r.table == nil {
		return nil
	}
	return r.table.Render(w)
}

// Runner executes scripts. Each run gets a fresh session.
type Runner struct {
	logger *slog.Logger
	opts   []platform.Option
}

// NewRunner creates a runner. opts are applied to every session it creates.
func NewRunner(logger *slog.Logger, opts ...platform.Option) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{logger: logger, opts: opts}
}

// Run replays s. Actions that need a selection are skipped when there is none;
// malformed steps abort the run.
func (r *Runner) Run(ctx context.Context, s *Script) (*Report, error) {
	opts := append([]platform.Option{platform.WithLogger(r.logger)}, r.opts...)
	// Reports render from the headless table, so a custom presenter is not allowed here.
	opts = append(opts, platform.WithPresenter(nil))
	session := platform.NewSession(opts...)
	ctrl, table := session.Controller, session.Table

	report := &Report{Script: s.Name, ctrl: ctrl, table: table}
	log := r.logger.With("script", s.Name)

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Steps++

		err := r.apply(ctrl, table, report, i, st)
		if errors.Is(err, core.ErrNoSelection) || errors.Is(err, view.ErrNoRecordBound) {
			log.Warn("step skipped", "step", i, "action", st.Action, "reason", err)
			report.Skipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("%s: step %d (%s): %w", s.Name, i, st.Action, err)
		}
	}

	report.Rows = table.Rows()
	report.State = ctrl.State().(core.ControllerState)
	log.Info("script finished", "steps", report.Steps, "skipped", report.Skipped, "failures", len(report.Failures))
	return report, nil
}

func (r *Runner) apply(ctrl *core.Controller, table *view.Table, report *Report, i int, st Step) error {
	switch st.Action {
	case ActionAdd:
		ctrl.AddRecord()
		return nil
	case ActionSelect:
		return selectRecord(ctrl, st.Record)
	case ActionDeselect:
		ctrl.ClearSelection()
		return nil
	case ActionEdit:
		field, err := core.ParseField(st.Field)
		if err != nil {
			return err
		}
		return table.Form().Input(field, st.Value)
	case ActionSave:
		return ctrl.SaveSelected()
	case ActionReset:
		return ctrl.ResetSelected()
	case ActionRemove:
		if st.Record != "" {
			rec, err := resolve(ctrl, st.Record)
			if err != nil {
				return err
			}
			return ctrl.RemoveRecord(rec.ID())
		}
		return ctrl.RemoveSelected()
	case ActionExpect:
		return expect(ctrl, report, i, st)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
}

func selectRecord(ctrl *core.Controller, ref string) error {
	rec, err := resolve(ctrl, ref)
	if err != nil {
		return err
	}
	return ctrl.Select(rec.ID())
}

// resolve accepts an id or "#n".
func resolve(ctrl *core.Controller, ref string) (*core.Record, error) {
	if pos, ok := strings.CutPrefix(ref, "#"); ok {
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("%w: bad position %q", ErrInvalidStep, ref)
		}
		rec, ok := ctrl.Store().At(n)
		if !ok {
			return nil, fmt.Errorf("%w: %s", core.ErrRecordNotFound, ref)
		}
		return rec, nil
	}
	rec, ok := ctrl.Store().Get(core.ID(ref))
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrRecordNotFound, ref)
	}
	return rec, nil
}

func expect(ctrl *core.Controller, report *Report, i int, st Step) error {
	var rec *core.Record
	if st.Record != "" {
		var err error
		if rec, err = resolve(ctrl, st.Record); err != nil {
			return err
		}
	} else {
		var ok bool
		if rec, ok = ctrl.Selected(); !ok {
			return core.ErrNoSelection
		}
	}

	for _, key := range slices.Sorted(maps.Keys(st.Expect)) {
		want := st.Expect[key]
		var got string
		if key == "dirty" {
			got = strconv.FormatBool(rec.IsDirty())
		} else {
			field, err := core.ParseField(key)
			if err != nil {
				return err
			}
			got = rec.Display(field)
		}
		if got != want {
			report.Failures = append(report.Failures, Failure{
				Step:     i,
				Record:   rec.ID(),
				Key:      key,
				Expected: want,
				Actual:   got,
			})
		}
	}
	return nil
}
