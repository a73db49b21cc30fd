package metadata

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Linear (i.e. bilinear) filtering.*/
	TextureFilterModeLinear TextureFilter = iota
	/** @brief Nearest-neighbor filtering. */
	TextureFilterModeNearest
)

type TextureRepeat int

const (
	TextureRepeatRepeat TextureRepeat = iota
	TextureRepeatMirroredRepeat
	TextureRepeatClampToEdge
	TextureRepeatClampToBorder
)

/** @brief How the renderer samples the texture. */
type TextureViewDimension int

const (
	/** @brief A standard two-dimensional texture. */
	TextureViewDimension2d TextureViewDimension = iota
	/** @brief A stack of same sized 2D layers addressed by index. */
	TextureViewDimension2dArray
	/** @brief Six layers sampled by direction, used for environment maps. */
	TextureViewDimensionCube
)

func (d TextureViewDimension) String() string {
	switch d {
	case TextureViewDimension2d:
		return "2d"
	case TextureViewDimension2dArray:
		return "2d_array"
	case TextureViewDimensionCube:
		return "cube"
	default:
		return "unknown"
	}
}

/** @brief The number of faces of a cube texture. */
const CubeFaceCount uint32 = 6

/**
 * @brief Describes how the pixel buffer of an image is laid out and sampled.
 * Width and Height are the extent of a single layer.
 */
type TextureDescriptor struct {
	Width           uint32
	Height          uint32
	ArrayLayerCount uint32
	/** @brief The number of channels per pixel. */
	ChannelCount uint8
	/** @brief Texture filtering mode for minification. */
	FilterMinify TextureFilter
	/** @brief Texture filtering mode for magnification. */
	FilterMagnify TextureFilter
	/** @brief The repeat mode on the U axis (or X, or S) */
	RepeatU TextureRepeat
	/** @brief The repeat mode on the V axis (or Y, or T) */
	RepeatV TextureRepeat
	/** @brief The repeat mode on the W axis (or Z, or U) */
	RepeatW       TextureRepeat
	ViewDimension TextureViewDimension
}

// LayerSize returns the size in bytes of a single layer.
func (td TextureDescriptor) LayerSize() int {
	return int(td.Width) * int(td.Height) * int(td.ChannelCount)
}
