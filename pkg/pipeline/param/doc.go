// Package param provides the typed values a pipeline stage exposes to the user.
//
// A Param holds one value, validated against its domain when it is created: a
// slider default must lie within its bounds, a colour must have three components
// in [0, 255], and so on. Invalid defaults fail construction with ErrInvalidDefault,
// they are never clamped.
//
// Every setter funnels into the same operation: store the value, then call the
// callback registered with Bind, if any. The owning stage binds its params when
// it is attached to a window, so that a change re-runs the pipeline from that
// stage. Params that are not bound never trigger anything, which allows stages
// to assign values while they are being built.
//
// Stages declare their params explicitly in a Set, in display order.
package param
