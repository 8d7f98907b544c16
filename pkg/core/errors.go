package core

import (
	errorsmod "cosmossdk.io/errors"
)

// RenderCodespace groups the configuration errors reported by this module
const RenderCodespace = "render"

// Registered configuration errors. Wrap them with errorsmod.Wrapf to add
// detail; errors.Is still matches the registered value.
var (
	ErrInvalidDimensions = errorsmod.Register(RenderCodespace, 2, "invalid image dimensions")
	ErrInvalidSamples    = errorsmod.Register(RenderCodespace, 3, "invalid samples per pixel")
	ErrInvalidDepth      = errorsmod.Register(RenderCodespace, 4, "invalid max depth")
	ErrInvalidThreads    = errorsmod.Register(RenderCodespace, 5, "invalid thread count")
	ErrInvalidTileSize   = errorsmod.Register(RenderCodespace, 6, "invalid tile size")
	ErrUnknownScene      = errorsmod.Register(RenderCodespace, 7, "unknown scene")
	ErrInvalidScene      = errorsmod.Register(RenderCodespace, 8, "invalid scene description")
	ErrInvalidCamera     = errorsmod.Register(RenderCodespace, 9, "invalid camera")
)
