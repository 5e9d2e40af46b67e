// Package model provides the data structures shared by the pipeline package and its options.
// It describes the stages of a pipeline as seen from the outside, and the hooks
// a pipeline option can implement to observe how the stages are prepared and executed.
package model
