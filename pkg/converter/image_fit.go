package converter

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ketvision/telegram-bot/pkg/domain"
)

// ModelCanvasSize is the square edge the vision model expects.
const ModelCanvasSize = 512

// ImageFit scales and center-crops images to a fixed square canvas,
// discarding the aspect-ratio remainder instead of padding.
type ImageFit struct {
	Size int
}

func NewImageFit() *ImageFit {
	return &ImageFit{Size: ModelCanvasSize}
}

func (f *ImageFit) Resize(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", domain.ErrImageDecode, path, err)
	}

	return imaging.Fill(img, f.Size, f.Size, imaging.Center, imaging.Lanczos), nil
}
