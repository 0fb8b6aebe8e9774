package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixel-tools-mcp/internal/pixel"
)

// ToBuffer converts any image into a pixel buffer of non-premultiplied RGBA,
// the same layout a browser canvas hands out from getImageData. The result
// always starts at (0,0) regardless of img.Bounds().Min.
func ToBuffer(img image.Image) *pixel.Buffer {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()

	data := nrgba.Pix
	if nrgba.Stride != w*pixel.Channels {
		data = make([]byte, 0, w*h*pixel.Channels)
		for y := 0; y < h; y++ {
			off := y * nrgba.Stride
			data = append(data, nrgba.Pix[off:off+w*pixel.Channels]...)
		}
	}

	buf, err := pixel.New(w, h, data)
	if err != nil {
		// Clone always yields a tightly sized NRGBA.
		panic(err)
	}
	return buf
}

// ToImage converts a pixel buffer into an *image.NRGBA anchored at (0,0).
func ToImage(buf *pixel.Buffer) *image.NRGBA {
	return &image.NRGBA{
		Pix:    buf.Bytes(),
		Stride: buf.Width() * pixel.Channels,
		Rect:   image.Rect(0, 0, buf.Width(), buf.Height()),
	}
}
