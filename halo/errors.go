package halo

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-halo/internal/chunks"
	"github.com/robert-malhotra/go-halo/internal/ndarray"
)

// Common errors
var (
	ErrInvalidLayout = chunks.ErrInvalid
	ErrDepth         = errors.New("invalid depth")
	ErrBoundary      = errors.New("invalid boundary")
	ErrShape         = errors.New("shape mismatch")
	ErrNoBlock       = errors.New("block index out of range")
	ErrAxis          = ndarray.ErrAxis
)

// BlockError attributes a failure to the block that produced it.
type BlockError struct {
	Index BlockIndex
	Key   string
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %s (%s): %v", e.Index, e.Key, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}
