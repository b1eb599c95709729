package errors

import "errors"

var (
	ErrRootExists       = errors.New("tree already has a root")
	ErrParentNotFound   = errors.New("parent was not found")
	ErrSlotOccupied     = errors.New("child slot is already occupied")
	ErrEmptyCommand     = errors.New("empty command")
	ErrMalformedCommand = errors.New("malformed command")
	ErrUnknownCommand   = errors.New("unknown command")
)
