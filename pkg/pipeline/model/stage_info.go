package model

import "fmt"

// StageInfo describes one stage of a window.
type StageInfo struct {
	// Key is unique for the lifetime of the pipeline. It is built from the window ID and the stage index.
	Key         string
	Name        string
	Window      string
	WindowIndex int
	Index       int
}

// NewStageInfo creates the description of the stage at position index in the window windowID.
func NewStageInfo(windowID, windowName string, windowIndex, index int, name string) *StageInfo {
	return &StageInfo{
		Key:         fmt.Sprintf("%s/%d", windowID, index),
		Name:        name,
		Window:      windowName,
		WindowIndex: windowIndex,
		Index:       index,
	}
}

// Label is the text displayed for the stage.
func (si *StageInfo) Label() string {
	return fmt.Sprintf("%s #%d %s", si.Window, si.Index, si.Name)
}

var (
	StartStage = &StageInfo{Key: "start", Name: "start", WindowIndex: -1, Index: -1}
	EndStage   = &StageInfo{Key: "end", Name: "end", WindowIndex: -1, Index: -1}
)
