package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-cvpg/pkg/pipeline/measure"
	"github.com/askiada/go-cvpg/pkg/pipeline/model"
)

type pipelineDrawer struct {
	Drawer
	m measure.Measure
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStage(model.StartStage.Key, model.StartStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start stage to drawer")
	}
	err = pd.AddStage(model.EndStage.Key, model.EndStage.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end stage to drawer")
	}

	return nil
}

func (pd *pipelineDrawer) PrepareStage(parentStage, stage *model.StageInfo) error {
	err := pd.AddStage(stage.Key, stage.Label())
	if err != nil {
		return err
	}

	return pd.AddLink(parentStage.Key, stage.Key)
}

func (pd *pipelineDrawer) OnStageOutput(parentStage, stage *model.StageInfo, copyDuration, computationDuration time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) AfterRun(totalDuration time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) Finish() error {
	if pd.m != nil {
		if end := pd.m.GetMetric(model.EndStage.Key); end != nil {
			err := pd.SetTotalTime(model.EndStage.Key, end.GetTotalDuration())
			if err != nil {
				return errors.Wrap(err, "unable to set total time")
			}
		}
		err := pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer draws the pipeline when it is closed. When msr is not nil,
// its timings are added to the graph; msr must also be registered on the pipeline.
func PipelineDrawer(drawer Drawer, msr measure.Measure) model.PipelineOption {
	return &pipelineDrawer{drawer, msr}
}
