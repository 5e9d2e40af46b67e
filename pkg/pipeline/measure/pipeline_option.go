package measure

import (
	"time"

	"github.com/askiada/go-cvpg/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStage.Key, model.StartStage.Name)
	pm.AddMetric(model.EndStage.Key, model.EndStage.Name)
	return nil
}

func (pm *pipelineMeasure) PrepareStage(parentStage, stage *model.StageInfo) error {
	pm.AddMetric(stage.Key, stage.Label())
	return nil
}

func (pm *pipelineMeasure) OnStageOutput(parentStage, stage *model.StageInfo, copyDuration, computationDuration time.Duration) error {
	mt := pm.GetMetric(stage.Key)
	if mt == nil {
		mt = pm.AddMetric(stage.Key, stage.Label())
	}
	mt.AddDuration(computationDuration)
	mt.AddTransportDuration(parentStage.Key, copyDuration)

	return nil
}

func (pm *pipelineMeasure) AfterRun(totalDuration time.Duration) error {
	pm.GetMetric(model.EndStage.Key).SetTotalDuration(totalDuration)
	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure wraps measure so that it records every stage run by a pipeline.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
