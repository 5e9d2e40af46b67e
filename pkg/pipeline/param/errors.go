package param

import "github.com/pkg/errors"

var (
	ErrInvalidDefault = errors.New("invalid default value")
	ErrInvalidRange   = errors.New("min must not be greater than max")
	ErrOutOfRange     = errors.New("value out of range")
	ErrFixedRange     = errors.New("range is not editable")
	ErrUnknownOption  = errors.New("unknown option")
	ErrReadOnly       = errors.New("param is read only")
	ErrAlreadyBound   = errors.New("param is already bound")
	ErrCallbackNotSet = errors.New("callback must be set")
	ErrAnchorDisabled = errors.New("anchor is disabled")
	ErrDuplicateParam = errors.New("duplicate param name")
	ErrUnknownParam   = errors.New("unknown param")
	ErrInvalidText    = errors.New("unable to parse value")
)
