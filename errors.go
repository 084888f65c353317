package sheaf

import "errors"

// Atlas errors.
var (
	// ErrAtlasFull is returned by Pack when no free rectangle of the requested
	// size remains. Callers can recover by starting another atlas (see PageSet).
	ErrAtlasFull = errors.New("sheaf: texture atlas is full")

	// ErrInvalidDimensions is returned for zero or negative sizes and for pixel
	// buffers whose length does not match the stated size.
	ErrInvalidDimensions = errors.New("sheaf: invalid dimensions")

	// ErrUnknownRegion is returned when a RegionID was never packed, belongs to
	// another atlas, or predates an Atlas.Reset.
	ErrUnknownRegion = errors.New("sheaf: unknown region")

	// ErrDuplicateRegion is returned when a region name is packed twice.
	ErrDuplicateRegion = errors.New("sheaf: duplicate region name")

	// ErrAtlasFinalized is returned when packing into a finalized atlas.
	ErrAtlasFinalized = errors.New("sheaf: atlas is finalized")

	// ErrNilTexture is reported for image or vertex draws without a texture.
	ErrNilTexture = errors.New("sheaf: nil texture")

	// ErrInvalidVertices is reported for vertex groups whose indices do not
	// form whole triangles or point past the vertex slice.
	ErrInvalidVertices = errors.New("sheaf: invalid vertex group")
)

// Batch protocol errors. These indicate a caller bug and are not meant to be
// retried.
var (
	// ErrBatchNotActive is returned by Submit, Flush and End outside a
	// Begin/End scope.
	ErrBatchNotActive = errors.New("sheaf: sprite batch is not active")

	// ErrBatchActive is returned by Begin when the batch is already
	// accumulating (nested or overlapping batch scopes).
	ErrBatchActive = errors.New("sheaf: sprite batch already active")

	// ErrRendererClosed is returned by Renderer.Frame after Close.
	ErrRendererClosed = errors.New("sheaf: renderer is closed")
)

// ErrInvalidConfig is returned by ParseConfig and Config.Validate.
var ErrInvalidConfig = errors.New("sheaf: invalid config")
