package transform

import "github.com/pkg/errors"

var (
	ErrEmptyPath        = errors.New("image path cannot be empty")
	ErrFileNotFound     = errors.New("file not found")
	ErrUnreadableImage  = errors.New("unable to read image")
	ErrNoImage          = errors.New("no input image")
	ErrChannels         = errors.New("unexpected number of channels")
	ErrUnknownTransform = errors.New("unknown transform")
	ErrExtraType        = errors.New("unexpected extra value")
)
