package pipeline

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Stage transforms an image and an auxiliary value.
//
// Process returns a Mat owned by the caller. It may return img itself. A nil
// image means that no frame is available yet. Process must not panic on
// failure: the stage keeps the error, available through Err until the next
// call, and returns a fallback pair, usually its input.
type Stage interface {
	Process(img *gocv.Mat, extra any) (*gocv.Mat, any)
	Err() error
}

// Named is implemented by stages with a display name.
type Named interface {
	Name() string
}

// Attacher is implemented by stages that re-run their window when one of their
// params changes. A window calls Attach every time the stage is placed in it.
type Attacher interface {
	Attach(trigger func() error)
}

// StageName returns the name of s, or its type when it has none.
func StageName(s Stage) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
