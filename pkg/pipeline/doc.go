// Package pipeline runs image transforms.
//
// A Window holds an ordered list of stages. Drawing a window runs its stages one
// after the other, starting at any index, and caches copies of the input and of
// the output so that they can be inspected later without being altered by the
// next run. The input of every stage is also kept, which allows a window to
// replay only the stages placed after a changed parameter.
//
// A Pipeline chains windows: the output of a window is the input of the next one.
// A parameter change on a stage restarts its window from that stage, then the
// windows placed after it from their first stage. Windows placed before are left
// untouched.
//
// Runs are synchronous. Stages record their own errors, they never stop a run;
// callers inspect them afterwards with Window.StageErrors or Pipeline.Errors.
//
// Pipeline options, such as a measure or a drawer, observe the stages when the
// pipeline is built and every time a stage returns.
package pipeline
