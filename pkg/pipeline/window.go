package pipeline

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/model"
)

// WindowOption configures a Window.
type WindowOption func(w *Window)

// WithName sets the name of the window. Without it, the window is named
// "Step N" where N comes from its sequence.
func WithName(name string) WindowOption {
	return func(w *Window) {
		w.name = name
	}
}

// WithSequence sets the sequence used to name the window. DefaultSequence is used otherwise.
func WithSequence(seq *Sequence) WindowOption {
	return func(w *Window) {
		w.seq = seq
	}
}

// WithLogger sets the logger of the window. The logrus standard logger is used otherwise.
func WithLogger(logger logrus.FieldLogger) WindowOption {
	return func(w *Window) {
		w.logger = logger
	}
}

// Window runs an ordered list of stages.
type Window struct {
	mu     sync.RWMutex
	id     string
	name   string
	seq    *Sequence
	logger logrus.FieldLogger

	stages []Stage
	index  int
	pipe   *Pipeline

	input  frame
	output frame
	// stageInputs[i] is a copy of what stage i received during the last run that reached it.
	stageInputs []frame
	listeners   []func()
}

// NewWindow creates a window running stages in order. Stages implementing
// Attacher are attached to the window.
func NewWindow(stages []Stage, opts ...WindowOption) *Window {
	w := &Window{
		id:     uuid.NewString(),
		index:  -1,
		seq:    DefaultSequence,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name == "" {
		w.name = stepName(w.seq.Next())
	}
	w.SetStages(stages)

	return w
}

func stepName(n int) string {
	return fmt.Sprintf("Step %d", n)
}

// ID uniquely identifies the window.
func (w *Window) ID() string { return w.id }

// Name returns the displayed name of the window.
func (w *Window) Name() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.name
}

// SetName renames the window.
func (w *Window) SetName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = name
}

// UpdateName puts prefix in front of the current name.
func (w *Window) UpdateName(prefix string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = prefix + " " + w.name
}

// ResetName names the window after the current value of its sequence, without moving it.
func (w *Window) ResetName() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.name = stepName(w.seq.Current())
}

// Index returns the position of the window in its pipeline, -1 if it has none.
func (w *Window) Index() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.index
}

// SetIndex sets the position of the window in its pipeline.
func (w *Window) SetIndex(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.index = index
}

func (w *Window) Pipeline() *Pipeline {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pipe
}

// SetPipeline binds the window to p. Param changes then re-run p.
func (w *Window) SetPipeline(p *Pipeline) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pipe = p
}

func (w *Window) ClearPipeline() {
	w.SetPipeline(nil)
}

// Stages returns a copy of the list of stages.
func (w *Window) Stages() []Stage {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Stage(nil), w.stages...)
}

// SetStages replaces the stages and drops the stage input copies.
func (w *Window) SetStages(stages []Stage) {
	w.mu.Lock()
	w.stages = append([]Stage(nil), stages...)
	old := w.stageInputs
	w.stageInputs = make([]frame, len(stages))
	w.mu.Unlock()

	for _, f := range old {
		f.close()
	}
	for i, s := range stages {
		if a, ok := s.(Attacher); ok {
			i := i
			a.Attach(func() error { return w.StartPipeline(i) })
		}
	}
}

func (w *Window) ResetStages() {
	w.SetStages(nil)
}

// OnUpdate registers fn, called once at the end of every Draw.
func (w *Window) OnUpdate(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// LastInput returns a copy of the image given to the last Draw, nil if there was none.
// The caller must close it.
func (w *Window) LastInput() *gocv.Mat {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return cloneMat(w.input.img)
}

// ExtraInput returns a copy of the auxiliary value given to the last Draw.
func (w *Window) ExtraInput() any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return copyExtra(w.input.extra)
}

// LastOutput returns a copy of the image produced by the last Draw, nil if there was none.
// The caller must close it.
func (w *Window) LastOutput() *gocv.Mat {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return cloneMat(w.output.img)
}

// ExtraOutput returns a copy of the auxiliary value produced by the last Draw.
func (w *Window) ExtraOutput() any {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return copyExtra(w.output.extra)
}

// StageInput returns a copy of the input received by stage index during the
// last run that reached it. The caller must close the image.
func (w *Window) StageInput(index int) (*gocv.Mat, any, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if index < 0 || index >= len(w.stageInputs) {
		return nil, nil, errors.Wrapf(ErrStageIndex, "stage %d of %d", index, len(w.stageInputs))
	}
	f := w.stageInputs[index].clone()
	return f.img, f.extra, nil
}

func (w *Window) ClearLastInput() {
	w.mu.Lock()
	defer w.mu.Unlock()
	closeMat(w.input.img)
	w.input.img = nil
}

func (w *Window) ClearExtraInput() {
	w.mu.Lock()
	defer w.mu.Unlock()
	closeExtra(w.input.extra)
	w.input.extra = nil
}

func (w *Window) ClearLastOutput() {
	w.mu.Lock()
	defer w.mu.Unlock()
	closeMat(w.output.img)
	w.output.img = nil
}

func (w *Window) ClearExtraOutput() {
	w.mu.Lock()
	defer w.mu.Unlock()
	closeExtra(w.output.extra)
	w.output.extra = nil
}

// Close releases every cached image. The window can still be drawn afterwards.
func (w *Window) Close() {
	w.mu.Lock()
	in, out, stageInputs := w.input, w.output, w.stageInputs
	w.input, w.output = frame{}, frame{}
	w.stageInputs = make([]frame, len(w.stages))
	w.mu.Unlock()

	in.close()
	out.close()
	for _, f := range stageInputs {
		f.close()
	}
}

// ClearAll detaches the window from its pipeline, releases the caches and removes the stages.
func (w *Window) ClearAll() {
	w.ClearPipeline()
	w.Close()
	w.ResetStages()
}

// ResetAll is ClearAll plus a reset of the naming sequence and of the name.
func (w *Window) ResetAll() {
	w.seq.Reset()
	w.ResetName()
	w.ClearAll()
}

// StageErrors returns the errors recorded by the stages during the last run.
func (w *Window) StageErrors() []*StageError {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var res []*StageError
	for i, s := range w.stages {
		if err := s.Err(); err != nil {
			res = append(res, &StageError{
				Window:      w.name,
				WindowIndex: w.index,
				Stage:       StageName(s),
				Index:       i,
				Err:         err,
			})
		}
	}
	return res
}

// stageInfo describes the stage at index. ok is false when there is no such stage.
func (w *Window) stageInfo(index int) (info *model.StageInfo, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if index < 0 || index >= len(w.stages) {
		return nil, false
	}
	return model.NewStageInfo(w.id, w.name, w.index, index, StageName(w.stages[index])), true
}

func (w *Window) stageCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.stages)
}

func (w *Window) fields() logrus.Fields {
	return logrus.Fields{
		"window":       w.name,
		"window_index": w.index,
	}
}

// StartPipeline runs the pipeline of the window from the stage at index start.
// Nothing runs when start is past the last stage.
func (w *Window) StartPipeline(start int) error {
	if start < 0 {
		return errors.Wrapf(ErrNegativeIndex, "stage index %d", start)
	}

	w.mu.RLock()
	pipe, index, total := w.pipe, w.index, len(w.stages)
	logger := w.logger.WithFields(w.fields()).WithField("stage_index", start)
	w.mu.RUnlock()

	logger.Debug("starting pipeline")
	if pipe == nil {
		logger.Warn("pipeline is not set, cannot start pipeline")
		return ErrPipelineNotSet
	}
	if start >= total {
		logger.Warnf("stage index %d out of range (max: %d)", start, max(total-1, 0))
		return nil
	}

	img, extra, err := pipe.RunPipelineFrom(index, start)
	if err != nil {
		return err
	}
	frame{img: img, extra: extra}.close()

	return nil
}

// Draw runs the stages from index start with img and extra as input, and
// returns the output of the last stage. The caller keeps ownership of img and
// owns the returned image.
//
// A nil or empty img means there is no frame: the stages receive nil values and
// the input caches are cleared. Errors recorded by the stages are not checked.
func (w *Window) Draw(img *gocv.Mat, extra any, start int) (*gocv.Mat, any, error) {
	return w.draw(img, extra, start, true)
}

// draw runs the stages from start. When cacheInput is false, img is the input
// of stage start and the window input caches are left as they are.
func (w *Window) draw(img *gocv.Mat, extra any, start int, cacheInput bool) (*gocv.Mat, any, error) {
	if start < 0 {
		return nil, nil, errors.Wrapf(ErrNegativeIndex, "stage index %d", start)
	}

	w.mu.RLock()
	stages := w.stages
	pipe := w.pipe
	logger := w.logger.WithFields(w.fields())
	w.mu.RUnlock()

	drawStart := time.Now()

	var in frame
	if present(img) {
		in = frame{img: img, extra: extra}.clone()
	}
	cur := in.clone()

	inputs := make(map[int]frame, len(stages))
	for i := start; i < len(stages); i++ {
		copyStart := time.Now()
		inputs[i] = cur.clone()
		copyDuration := time.Since(copyStart)

		computeStart := time.Now()
		out, outExtra := stages[i].Process(cur.img, cur.extra)
		computeDuration := time.Since(computeStart)

		if out != cur.img {
			closeMat(cur.img)
		}
		if prev, ok := cur.extra.(*gocv.Mat); ok {
			if next, ok := outExtra.(*gocv.Mat); !ok || next != prev {
				closeMat(prev)
			}
		}
		cur = frame{img: out, extra: outExtra}

		if pipe != nil {
			err := pipe.stageOutput(w, i, copyDuration, computeDuration)
			if err != nil {
				logger.WithError(err).WithField("stage_index", i).Warn("pipeline option failed")
			}
		}
	}
	output := cur.clone()

	w.mu.Lock()
	oldIn, oldOut := w.input, w.output
	w.output = output
	if cacheInput {
		w.input = in
	} else {
		oldIn = in
	}
	var replaced []frame
	for i, f := range inputs {
		if i >= len(w.stageInputs) {
			// The stages changed during the run.
			replaced = append(replaced, f)
			continue
		}
		replaced = append(replaced, w.stageInputs[i])
		w.stageInputs[i] = f
	}
	listeners := append([]func(){}, w.listeners...)
	w.mu.Unlock()

	oldIn.close()
	oldOut.close()
	for _, f := range replaced {
		f.close()
	}

	logger.WithFields(logrus.Fields{
		"stage_index": start,
		"duration":    time.Since(drawStart),
	}).Debug("window drawn")

	for _, fn := range listeners {
		fn()
	}

	return cur.img, cur.extra, nil
}
