package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineStageOption

	// AfterRun runs everytime a run of the pipeline is complete.
	AfterRun(totalDuration time.Duration) error
	// Finish runs when the pipeline is closed.
	Finish() error
}

// pipelineStageOption defines the interface for stage options at the pipeline level.
type pipelineStageOption interface {
	// PrepareStage runs once for every stage when the pipeline is built.
	// parentStage is the stage feeding stage, or StartStage for the first one.
	PrepareStage(parentStage, stage *StageInfo) error
	// OnStageOutput runs everytime a stage returns.
	// copyDuration is the time spent snapshotting the stage input, computationDuration the time spent in the stage.
	OnStageOutput(parentStage, stage *StageInfo, copyDuration, computationDuration time.Duration) error
}
