// Package transform provides the stages run by a pipeline.Window, built on gocv.
//
// Every stage embeds Base, which gives it a name, a param.Set, an enabled flag
// and an error slot. A stage never stops a run: on failure it records the error
// and returns its input unchanged.
//
// Stages are listed in a Registry. The default registry is filled at init and
// builds the default window of each stage: a LoadImage source followed by the
// stage and, for stages producing points or lines, the stage drawing them.
package transform
