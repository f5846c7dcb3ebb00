package codec

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ChannelOrder is the byte order of the three colour channels of a pixel.
type ChannelOrder int

const (
	// RGB is the canonical order produced by DecodeCapture.
	RGB ChannelOrder = iota
	// BGR is the order expected by OpenCV/dlib style models.
	BGR
)

func (o ChannelOrder) String() string {
	switch o {
	case RGB:
		return "RGB"
	case BGR:
		return "BGR"
	default:
		return "unknown"
	}
}

// Image is a packed 8-bit, 3-channel pixel buffer.
// Pix holds Width*Height*3 bytes, row-major, in the channel order given by Order.
type Image struct {
	Width  int
	Height int
	Order  ChannelOrder
	Pix    []byte
}

// FromImage converts any decoded image into a canonical RGB buffer.
// Alpha is dropped after un-premultiplying.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*3)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			i += 3
		}
	}

	return &Image{Width: w, Height: h, Order: RGB, Pix: pix}
}

// Convert returns a copy of the image in the requested channel order.
// The receiver is never modified.
func (img *Image) Convert(order ChannelOrder) *Image {
	out := &Image{
		Width:  img.Width,
		Height: img.Height,
		Order:  order,
		Pix:    make([]byte, len(img.Pix)),
	}
	copy(out.Pix, img.Pix)

	if img.Order == order {
		return out
	}

	// RGB <-> BGR is the same swap in both directions.
	for i := 0; i+2 < len(out.Pix); i += 3 {
		out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
	}
	return out
}

// RGBA renders the buffer back into a standard library image, honouring Order.
func (img *Image) RGBA() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))

	for p, i := 0, 0; p+2 < len(img.Pix); p, i = p+3, i+4 {
		r, g, b := img.Pix[p], img.Pix[p+1], img.Pix[p+2]
		if img.Order == BGR {
			r, b = b, r
		}
		dst.Pix[i] = r
		dst.Pix[i+1] = g
		dst.Pix[i+2] = b
		dst.Pix[i+3] = 0xff
	}

	return dst
}

// Downscale shrinks the image so that neither side exceeds maxDim, keeping
// the aspect ratio. Images already within bounds, or maxDim <= 0, are
// returned unchanged.
func Downscale(img *Image, maxDim int) *Image {
	if maxDim <= 0 || (img.Width <= maxDim && img.Height <= maxDim) {
		return img
	}

	var newWidth, newHeight int
	if img.Width > img.Height {
		newWidth = maxDim
		newHeight = int(float64(img.Height) * float64(maxDim) / float64(img.Width))
	} else {
		newHeight = maxDim
		newWidth = int(float64(img.Width) * float64(maxDim) / float64(img.Height))
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	src := img.RGBA()
	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), src, src.Bounds(), draw.Over, nil)

	out := FromImage(resized)
	if img.Order != RGB {
		out = out.Convert(img.Order)
	}
	return out
}
