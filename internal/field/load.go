package field

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
)

// Load decodes a PNG, JPEG, GIF or BMP image from path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode table image %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("table image %s (%s) has no pixels", path, format)
	}
	return img, nil
}
