// Package preprocess turns uploaded image bytes into the input tensor the
// classifier expects.
package preprocess

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultSize is the square edge length of the model input.
const DefaultSize = 224

// Channels is the number of color channels in the tensor (RGB).
const Channels = 3

// DefaultInterpolation matches the resampling the model was trained with.
const DefaultInterpolation = "bicubic"

var (
	ErrDecode = errors.New("decode image")
	ErrEmpty  = errors.New("image has no pixels")
)

// Tensor is a dense float32 tensor in NHWC layout.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// Interpolations maps config names to nfnt/resize kernels.
var Interpolations = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

type Preprocessor struct {
	size   int
	interp resize.InterpolationFunction
}

// New returns a Preprocessor producing size×size tensors. An unknown
// interpolation name falls back to DefaultInterpolation.
func New(size int, interpolation string) *Preprocessor {
	if size <= 0 {
		size = DefaultSize
	}
	interp, ok := Interpolations[interpolation]
	if !ok {
		interp = Interpolations[DefaultInterpolation]
	}
	return &Preprocessor{size: size, interp: interp}
}

// Size is the edge length of produced tensors.
func (p *Preprocessor) Size() int { return p.size }

// Shape is the tensor shape produced by Tensor: [1, size, size, 3].
func (p *Preprocessor) Shape() []int64 {
	return []int64{1, int64(p.size), int64(p.size), Channels}
}

// Tensor decodes r and returns a [1,size,size,3] tensor with channels scaled
// to [0,1]. Images that already match the target size are not resampled.
func (p *Preprocessor) Tensor(r io.Reader) (*Tensor, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return p.FromImage(img)
}

// FromImage resizes and normalizes an already decoded image.
func (p *Preprocessor) FromImage(img image.Image) (*Tensor, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmpty
	}

	if b.Dx() != p.size || b.Dy() != p.size {
		img = resize.Resize(uint(p.size), uint(p.size), img, p.interp)
		b = img.Bounds()
		if b.Dx() != p.size || b.Dy() != p.size {
			return nil, fmt.Errorf("resize produced %dx%d, want %dx%d", b.Dx(), b.Dy(), p.size, p.size)
		}
	}

	data := make([]float32, p.size*p.size*Channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// Non-premultiplied so that dropping alpha keeps the stored color.
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			data[i] = float32(c.R) / 255.0
			data[i+1] = float32(c.G) / 255.0
			data[i+2] = float32(c.B) / 255.0
			i += Channels
		}
	}

	return &Tensor{Shape: p.Shape(), Data: data}, nil
}
