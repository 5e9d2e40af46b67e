package pipeline

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/model"
)

// Pipeline chains windows: the output of a window is the input of the next one.
type Pipeline struct {
	windows []*Window
	opts    []model.PipelineOption
}

// New creates a pipeline running windows in order. Every window is bound to the
// pipeline and given its position.
func New(windows []*Window, opts ...model.PipelineOption) (*Pipeline, error) {
	if len(windows) == 0 {
		return nil, ErrNoWindows
	}
	for i, w := range windows {
		if w == nil {
			return nil, errors.Wrapf(ErrWindowMustBeSet, "window %d", i)
		}
	}

	p := &Pipeline{
		windows: append([]*Window(nil), windows...),
		opts:    opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	for i, w := range p.windows {
		w.SetPipeline(p)
		w.SetIndex(i)
	}

	err := p.prepareStages()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Single creates a pipeline made of one window.
func Single(w *Window, opts ...model.PipelineOption) (*Pipeline, error) {
	return New([]*Window{w}, opts...)
}

func (p *Pipeline) prepareStages() error {
	parent := model.StartStage
	for _, w := range p.windows {
		for i := 0; ; i++ {
			info, ok := w.stageInfo(i)
			if !ok {
				break
			}
			for _, opt := range p.opts {
				err := opt.PrepareStage(parent, info)
				if err != nil {
					return errors.Wrapf(err, "unable to prepare stage %s", info.Label())
				}
			}
			parent = info
		}
	}

	for _, opt := range p.opts {
		err := opt.PrepareStage(parent, model.EndStage)
		if err != nil {
			return errors.Wrap(err, "unable to prepare end stage")
		}
	}

	return nil
}

// parentStage returns the stage feeding the stage at index in the window at windowIndex.
func (p *Pipeline) parentStage(windowIndex, index int) *model.StageInfo {
	if index > 0 {
		if info, ok := p.windows[windowIndex].stageInfo(index - 1); ok {
			return info
		}
	}
	for wi := windowIndex - 1; wi >= 0; wi-- {
		w := p.windows[wi]
		if info, ok := w.stageInfo(w.stageCount() - 1); ok {
			return info
		}
	}
	return model.StartStage
}

func (p *Pipeline) stageOutput(w *Window, index int, copyDuration, computationDuration time.Duration) error {
	if len(p.opts) == 0 {
		return nil
	}
	info, ok := w.stageInfo(index)
	if !ok {
		return errors.Wrapf(ErrStageIndex, "stage %d", index)
	}
	windowIndex := w.Index()
	if windowIndex < 0 || windowIndex >= len(p.windows) {
		return errors.Wrapf(ErrWindowIndex, "window %d", windowIndex)
	}
	parent := p.parentStage(windowIndex, index)

	for _, opt := range p.opts {
		err := opt.OnStageOutput(parent, info, copyDuration, computationDuration)
		if err != nil {
			return errors.Wrapf(err, "unable to record output of stage %s", info.Label())
		}
	}

	return nil
}

func (p *Pipeline) afterRun(totalDuration time.Duration) error {
	for _, opt := range p.opts {
		err := opt.AfterRun(totalDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run pipeline option after run")
		}
	}

	return nil
}

// Len returns the number of windows.
func (p *Pipeline) Len() int { return len(p.windows) }

// Windows returns a copy of the list of windows.
func (p *Pipeline) Windows() []*Window {
	return append([]*Window(nil), p.windows...)
}

func (p *Pipeline) Window(index int) (*Window, error) {
	if index < 0 || index >= len(p.windows) {
		return nil, errors.Wrapf(ErrWindowIndex, "window %d of %d", index, len(p.windows))
	}
	return p.windows[index], nil
}

// Stage returns the stage at index in the window at windowIndex.
func (p *Pipeline) Stage(windowIndex, index int) (Stage, error) {
	w, err := p.Window(windowIndex)
	if err != nil {
		return nil, err
	}
	stages := w.Stages()
	if index < 0 || index >= len(stages) {
		return nil, errors.Wrapf(ErrStageIndex, "stage %d of %d", index, len(stages))
	}
	return stages[index], nil
}

// Errors returns the errors recorded by every stage during the last run.
func (p *Pipeline) Errors() []*StageError {
	var res []*StageError
	for _, w := range p.windows {
		res = append(res, w.StageErrors()...)
	}
	return res
}

// RunPipeline runs every window from its first stage. The first window reuses
// the input of its last draw. The caller owns the returned image.
func (p *Pipeline) RunPipeline() (*gocv.Mat, any, error) {
	first := p.windows[0]
	in := frame{img: first.LastInput(), extra: first.ExtraInput()}
	return p.run(0, 0, in)
}

// RunPipelineFrom replays the window at windowIndex from the stage at start,
// using the input that stage received during the previous run, then runs the
// following windows from their first stage. Windows placed before are not run.
// The caller owns the returned image.
func (p *Pipeline) RunPipelineFrom(windowIndex, start int) (*gocv.Mat, any, error) {
	w, err := p.Window(windowIndex)
	if err != nil {
		return nil, nil, err
	}
	if start < 0 {
		return nil, nil, errors.Wrapf(ErrNegativeIndex, "stage index %d", start)
	}

	var in frame
	if start < w.stageCount() {
		in.img, in.extra, err = w.StageInput(start)
		if err != nil {
			return nil, nil, err
		}
	} else {
		in = frame{img: w.LastInput(), extra: w.ExtraInput()}
	}

	return p.run(windowIndex, start, in)
}

// run draws the windows from windowIndex, the first one from start. It takes ownership of in.
func (p *Pipeline) run(windowIndex, start int, in frame) (*gocv.Mat, any, error) {
	runStart := time.Now()

	cur := in
	for wi := windowIndex; wi < len(p.windows); wi++ {
		from := 0
		if wi == windowIndex {
			from = start
		}
		// A suffix replay keeps the input of the window for the next full run.
		img, extra, err := p.windows[wi].draw(cur.img, cur.extra, from, from == 0)
		cur.close()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to draw window %d", wi)
		}
		cur = frame{img: img, extra: extra}
	}

	err := p.afterRun(time.Since(runStart))
	if err != nil {
		cur.close()
		return nil, nil, err
	}

	return cur.img, cur.extra, nil
}

// Close finishes the pipeline options, releases the caches of every window and
// closes the stages implementing io.Closer.
func (p *Pipeline) Close() error {
	for _, w := range p.windows {
		w.Close()
		for _, s := range w.Stages() {
			if c, ok := s.(io.Closer); ok {
				err := c.Close()
				if err != nil {
					return errors.Wrapf(err, "unable to close stage %s", StageName(s))
				}
			}
		}
	}

	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
