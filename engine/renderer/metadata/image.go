package metadata

import (
	"fmt"

	"github.com/spaghettifunk/skyview/engine/core"
)

/**
 * @brief A structure to hold image resource data.
 */
type ImageResourceData struct {
	/** @brief The number of channels. */
	ChannelCount uint8
	/** @brief The width of the image. */
	Width uint32
	/** @brief The height of the image. */
	Height uint32
	/** @brief The pixel data of the image. */
	Pixels []uint8
}

// Image is a decoded image asset: the pixel buffer plus the mutable
// descriptor telling the renderer how to interpret it.
type Image struct {
	Pixels     []uint8
	Descriptor TextureDescriptor
}

// NewImage wraps decoded pixels as a single layer 2D texture with linear filtering.
func NewImage(data *ImageResourceData) *Image {
	return &Image{
		Pixels: data.Pixels,
		Descriptor: TextureDescriptor{
			Width:           data.Width,
			Height:          data.Height,
			ArrayLayerCount: 1,
			ChannelCount:    data.ChannelCount,
			FilterMinify:    TextureFilterModeLinear,
			FilterMagnify:   TextureFilterModeLinear,
			RepeatU:         TextureRepeatRepeat,
			RepeatV:         TextureRepeatRepeat,
			RepeatW:         TextureRepeatRepeat,
			ViewDimension:   TextureViewDimension2d,
		},
	}
}

// ReinterpretStackedAsCube turns a sheet of square faces stacked vertically
// into a cube texture. Only the descriptor changes; pixels stay where they
// are. On error the descriptor is left untouched.
func (img *Image) ReinterpretStackedAsCube() (uint32, error) {
	d := img.Descriptor
	if d.ArrayLayerCount != 1 {
		return 0, fmt.Errorf("image has %d layers: %w", d.ArrayLayerCount, core.ErrAlreadyLayered)
	}
	if d.Width == 0 || d.Height%d.Width != 0 {
		return 0, fmt.Errorf("sheet is %dx%d: %w", d.Width, d.Height, core.ErrInvalidAspectRatio)
	}
	layers := d.Height / d.Width

	d.Height = d.Width
	d.ArrayLayerCount = layers
	// hand authored faces stay crisp
	d.FilterMinify = TextureFilterModeNearest
	d.FilterMagnify = TextureFilterModeNearest
	d.ViewDimension = TextureViewDimensionCube

	img.Descriptor = d
	return layers, nil
}

// Layer returns the pixels of one array layer, sharing the underlying buffer.
func (img *Image) Layer(index uint32) ([]uint8, error) {
	if index >= img.Descriptor.ArrayLayerCount {
		return nil, fmt.Errorf("layer %d out of range (count=%d)", index, img.Descriptor.ArrayLayerCount)
	}
	size := img.Descriptor.LayerSize()
	start := int(index) * size
	if start+size > len(img.Pixels) {
		return nil, fmt.Errorf("layer %d exceeds pixel buffer of %d bytes", index, len(img.Pixels))
	}
	return img.Pixels[start : start+size], nil
}
