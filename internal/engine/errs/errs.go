// Package errs defines the error categories reported by the rendering engine.
//
// Call sites wrap one of these sentinels with context, so callers can match
// the category with errors.Is regardless of the message.
package errs

import "errors"

var (
	// ErrInvalidParameter reports a configuration value the engine cannot use,
	// such as an intrinsic matrix with axis skew or a short buffer.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrOutOfRange reports an index outside of a mesh or texture list.
	ErrOutOfRange = errors.New("index out of range")

	// ErrResourceCreation reports a GPU object that could not be created,
	// compiled or linked.
	ErrResourceCreation = errors.New("gpu resource creation failed")

	// ErrIncompleteFramebuffer reports a framebuffer that failed its
	// completeness check when the check was asked to fail.
	ErrIncompleteFramebuffer = errors.New("framebuffer incomplete")

	// ErrAssetImport reports a model or texture file that could not be read.
	ErrAssetImport = errors.New("asset import failed")
)
