package domain

import "errors"

var (
	// ErrImageDownload means the platform produced no usable file for a photo.
	ErrImageDownload = errors.New("downloading image")

	// ErrImageDecode means the downloaded bytes are not a valid image.
	ErrImageDecode = errors.New("decoding image")

	// ErrInference means the model call failed; a run makes a single attempt.
	ErrInference = errors.New("recognizing image")
)

// UserMessage converts a pipeline error into the single reply shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrImageDownload):
		return "Failed to download the image."
	case errors.Is(err, ErrImageDecode):
		return "That file does not look like a valid image."
	case errors.Is(err, ErrInference):
		return "Failed to describe the image. Please try again."
	default:
		return "An unexpected error occurred."
	}
}
