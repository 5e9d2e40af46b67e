package transform

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/askiada/go-cvpg/pkg/pipeline"
	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// Factory builds the stages shown after the source of a default window.
type Factory func(opts ...Option) ([]pipeline.Stage, error)

// Parametrized is implemented by stages exposing their params.
type Parametrized interface {
	Params() *param.Set
}

// Registry lists the transforms that can be picked by name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a transform. Names are unique.
func (r *Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return errors.New("name and factory must be set")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return errors.Errorf("transform %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

func (r *Registry) MustRegister(name string, f Factory) {
	err := r.Register(name, f)
	if err != nil {
		panic(err)
	}
}

// Names returns the registered transforms, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.factories))
	for name := range r.factories {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// New builds the stages of the transform called name.
func (r *Registry) New(name string, opts ...Option) ([]pipeline.Stage, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTransform, "%q", name)
	}
	stages, err := f(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create %s", name)
	}
	return stages, nil
}

// Window builds the default window of the transform called name: the image at
// imagePath loaded by a LoadImage stage, followed by the stages of the transform.
func (r *Registry) Window(name, imagePath string, stageOpts []Option, windowOpts ...pipeline.WindowOption) (*pipeline.Window, error) {
	stages, err := r.New(name, stageOpts...)
	if err != nil {
		return nil, err
	}
	return NewWindow(imagePath, stages, stageOpts, windowOpts...)
}

// NewWindow creates a window running a LoadImage of imagePath followed by stages.
func NewWindow(imagePath string, stages []pipeline.Stage, stageOpts []Option, windowOpts ...pipeline.WindowOption) (*pipeline.Window, error) {
	src, err := NewLoadImage(imagePath, stageOpts...)
	if err != nil {
		return nil, err
	}
	return pipeline.NewWindow(append([]pipeline.Stage{src}, stages...), windowOpts...), nil
}

// SetParam parses value into the param designated by key. key is either
// "Stage.param" or "param", in which case the first stage having that param is used.
func SetParam(stages []pipeline.Stage, key, value string) error {
	stageName, name, qualified := strings.Cut(key, ".")
	if !qualified {
		name, stageName = stageName, ""
	}
	for _, s := range stages {
		p, ok := s.(Parametrized)
		if !ok || p.Params() == nil {
			continue
		}
		if stageName != "" && pipeline.StageName(s) != stageName {
			continue
		}
		if _, ok := p.Params().Get(name); !ok {
			continue
		}
		return p.Params().SetText(name, value)
	}
	return errors.Wrapf(param.ErrUnknownParam, "%q", key)
}

// Default lists the built-in transforms.
var Default = NewRegistry()

func single[S pipeline.Stage](fn func(opts ...Option) (S, error)) Factory {
	return func(opts ...Option) ([]pipeline.Stage, error) {
		s, err := fn(opts...)
		if err != nil {
			return nil, err
		}
		return []pipeline.Stage{s}, nil
	}
}

func goodFeaturesToTrack(opts ...Option) ([]pipeline.Stage, error) {
	find, err := NewGoodFeaturesToTrack(opts...)
	if err != nil {
		return nil, err
	}
	draw, err := NewDrawCirclesFromPoints(opts...)
	if err != nil {
		return nil, err
	}
	return []pipeline.Stage{find, draw}, nil
}

func houghLinesP(opts ...Option) ([]pipeline.Stage, error) {
	edges, err := NewCanny(opts...)
	if err != nil {
		return nil, err
	}
	find, err := NewHoughLinesP(opts...)
	if err != nil {
		return nil, err
	}
	draw, err := NewDrawLinesByEndpoints(opts...)
	if err != nil {
		return nil, err
	}
	return []pipeline.Stage{edges, find, draw}, nil
}

func init() {
	Default.MustRegister("BlankCanvas", single(NewBlankCanvas))
	Default.MustRegister("CvtColor", single(NewCvtColor))

	// Filters
	Default.MustRegister("GaussianBlur", single(NewGaussianBlur))
	Default.MustRegister("MedianBlur", single(NewMedianBlur))
	Default.MustRegister("Filter2D", single(NewFilter2D))

	// Segmentation
	Default.MustRegister("Canny", single(NewCanny))
	Default.MustRegister("Threshold", single(NewThreshold))
	Default.MustRegister("InRange", single(NewInRange))

	Default.MustRegister("CopyMakeBorder", single(NewCopyMakeBorder))
	Default.MustRegister("Resize", single(NewResize))

	// Features
	Default.MustRegister("GoodFeaturesToTrack", goodFeaturesToTrack)
	Default.MustRegister("HoughLinesP", houghLinesP)
}
