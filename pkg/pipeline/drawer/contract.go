package drawer

import (
	"time"

	"github.com/askiada/go-cvpg/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage to the pipeline drawer. Adding a known key is a no-op.
	AddStage(key, label string) error
	// AddLink adds a link between parent and child stages.
	AddLink(parentKey, childKey string) error
	// Draw creates a file with the pipeline graph.
	Draw() error
	// SetTotalTime sets the total time for the stage.
	SetTotalTime(key string, totalTime time.Duration) error
	// AddMeasure adds a measure to the pipeline drawer.
	AddMeasure(measure measure.Measure) error
}
