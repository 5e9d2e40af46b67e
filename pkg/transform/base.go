package transform

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline"
	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// Option configures a stage.
type Option func(b *Base)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(b *Base) {
		b.logger = logger
	}
}

// Disabled creates the stage disabled.
func Disabled() Option {
	return func(b *Base) {
		b.disabled = true
	}
}

// Base holds what every stage shares.
type Base struct {
	name     string
	params   *param.Set
	logger   logrus.FieldLogger
	disabled bool
	err      error
	trigger  func() error
}

func newBase(name string, params *param.Set, opts []Option) Base {
	b := Base{
		name:   name,
		params: params,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *Base) Name() string { return b.name }

// Params returns the params of the stage, in display order.
func (b *Base) Params() *param.Set { return b.params }

// Err returns the error recorded by the last run, nil if it succeeded.
func (b *Base) Err() error { return b.err }

func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled enables or disables the stage, then re-runs its window when attached.
// A disabled stage passes its input through.
func (b *Base) SetEnabled(enabled bool) error {
	b.disabled = !enabled
	return b.onChange()
}

// Attach makes every param change re-run the window through trigger.
// The params are bound on the first call only. Later calls replace trigger.
func (b *Base) Attach(trigger func() error) {
	first := b.trigger == nil
	b.trigger = trigger
	if !first || b.params == nil {
		return
	}
	err := b.params.Bind(b.onChange)
	if err != nil {
		b.logger.WithError(err).WithField("stage", b.name).Error("unable to bind params")
	}
}

func (b *Base) onChange() error {
	if b.trigger == nil {
		return nil
	}
	return b.trigger()
}

type drawFunc func(img *gocv.Mat, extra any) (*gocv.Mat, any, error)

// run calls draw unless the stage is disabled. When draw fails or panics, the
// error is recorded and the input is returned.
func (b *Base) run(img *gocv.Mat, extra any, draw drawFunc) (out *gocv.Mat, outExtra any) {
	b.err = nil
	if b.disabled {
		return img, extra
	}

	defer func() {
		if r := recover(); r != nil {
			b.fail(errors.Errorf("panic: %v", r))
			out, outExtra = img, extra
		}
	}()

	out, outExtra, err := draw(img, extra)
	if err != nil {
		b.fail(err)
		return img, extra
	}

	return out, outExtra
}

func (b *Base) fail(err error) {
	b.err = errors.Wrapf(err, "%s failed", b.name)
	b.logger.WithError(err).WithField("stage", b.name).Error("stage failed")
}

// requireImage fails when img holds no frame.
func requireImage(img *gocv.Mat) error {
	if img == nil || img.Empty() {
		return ErrNoImage
	}
	return nil
}

// gray returns a single channel copy of img. The caller closes it.
func gray(img *gocv.Mat) (gocv.Mat, error) {
	switch img.Channels() {
	case 1:
		return img.Clone(), nil
	case 3:
		dst := gocv.NewMat()
		err := gocv.CvtColor(*img, &dst, gocv.ColorBGRToGray)
		if err != nil {
			_ = dst.Close()
			return gocv.Mat{}, errors.Wrap(err, "unable to convert to gray")
		}
		return dst, nil
	default:
		return gocv.Mat{}, errors.Wrapf(ErrChannels, "got %d", img.Channels())
	}
}

// bgr returns a 3 channel copy of img. The caller closes it.
func bgr(img *gocv.Mat) (gocv.Mat, error) {
	switch img.Channels() {
	case 3:
		return img.Clone(), nil
	case 1:
		dst := gocv.NewMat()
		err := gocv.CvtColor(*img, &dst, gocv.ColorGrayToBGR)
		if err != nil {
			_ = dst.Close()
			return gocv.Mat{}, errors.Wrap(err, "unable to convert to BGR")
		}
		return dst, nil
	default:
		return gocv.Mat{}, errors.Wrapf(ErrChannels, "got %d", img.Channels())
	}
}

// oddKernel returns k, or k+1 when k is even.
func oddKernel(k int) int {
	if k%2 == 0 {
		return k + 1
	}
	return k
}

// builder adds params to a set and keeps the first construction error.
type builder struct {
	set *param.Set
	err error
}

func newBuilder() *builder {
	return &builder{set: param.NewSet()}
}

// add appends p to the set. err is the error returned by the constructor of p.
func (b *builder) add(name string, p param.Param, err error) {
	if b.err != nil {
		return
	}
	if err != nil {
		b.err = errors.Wrapf(err, "param %q", name)
		return
	}
	b.err = b.set.Add(name, p)
}

func (b *builder) result(stage string) (*param.Set, error) {
	if b.err != nil {
		return nil, errors.Wrapf(b.err, "unable to create %s", stage)
	}
	return b.set, nil
}

var _ pipeline.Attacher = (*Base)(nil)
