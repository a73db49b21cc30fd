package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/spaghettifunk/skyview/engine/renderer/metadata"
)

type ImageLoader struct{}

// ImageResourceParams tweaks how an image is decoded.
type ImageResourceParams struct {
	FlipY bool
}

func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if p, ok := params.(*ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	src, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	rgba := toRGBA(src, flip)
	bounds := rgba.Bounds()

	return &metadata.Resource{
		Name:     path,
		FullPath: path,
		DataSize: uint64(len(rgba.Pix)),
		Data: &metadata.ImageResourceData{
			ChannelCount: 4,
			Width:        uint32(bounds.Dx()),
			Height:       uint32(bounds.Dy()),
			Pixels:       rgba.Pix,
		},
	}, nil
}

func (il *ImageLoader) Unload(*metadata.Resource) error {
	return nil
}

// toRGBA converts any decoded image into a tightly packed RGBA8 buffer
// with its origin at (0,0).
func toRGBA(src image.Image, flip bool) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	if !flip {
		return dst
	}
	stride := dst.Stride
	row := make([]uint8, stride)
	for y := 0; y < b.Dy()/2; y++ {
		top := dst.Pix[y*stride : (y+1)*stride]
		bottom := dst.Pix[(b.Dy()-1-y)*stride : (b.Dy()-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return dst
}
