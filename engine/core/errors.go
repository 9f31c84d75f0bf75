package core

import (
	"errors"
)

var (
	// Asset errors. Recovered locally by the compositor, never fatal to a job.
	ErrAssetNotFound = errors.New("asset not found")
	ErrAssetDecode   = errors.New("asset could not be decoded")
	ErrEmptyMesh     = errors.New("mesh contains no faces")

	ErrEncode = errors.New("image encoding failed")

	// Submission errors.
	ErrEmptyThumbnail = errors.New("thumbnail job requires at least one item")
	ErrUnknownJobKind = errors.New("unknown job kind")
	ErrRenderTimeout  = errors.New("render timed out")
	ErrRenderFailed   = errors.New("render failed")
	ErrEngineStopped  = errors.New("render engine is not running")
)
