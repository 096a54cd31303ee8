package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"github.com/nfnt/resize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomRGB(w, h int, seed int64) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestTensorRoundTripAtTargetSize(t *testing.T) {
	src := randomRGB(DefaultSize, DefaultSize, 1)
	p := New(DefaultSize, "bilinear")

	tensor, err := p.Tensor(bytes.NewReader(encodePNG(t, src)))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 224, 224, 3}, tensor.Shape)
	require.Len(t, tensor.Data, 224*224*3)

	for y := 0; y < DefaultSize; y++ {
		for x := 0; x < DefaultSize; x++ {
			c := src.NRGBAAt(x, y)
			i := (y*DefaultSize + x) * Channels
			if tensor.Data[i] != float32(c.R)/255.0 ||
				tensor.Data[i+1] != float32(c.G)/255.0 ||
				tensor.Data[i+2] != float32(c.B)/255.0 {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, tensor.Data[i:i+3], c)
			}
		}
	}
}

func TestTensorResizesAnyAspectRatio(t *testing.T) {
	p := New(DefaultSize, "lanczos3")
	for _, dims := range [][2]int{{640, 480}, {50, 300}, {1, 1}, {225, 224}} {
		tensor, err := p.FromImage(randomRGB(dims[0], dims[1], 2))
		require.NoError(t, err, "%v", dims)
		assert.Equal(t, []int64{1, 224, 224, 3}, tensor.Shape)
		require.Len(t, tensor.Data, 224*224*3)
		for _, v := range tensor.Data {
			if v < 0 || v > 1 {
				t.Fatalf("%v: value %v out of [0,1]", dims, v)
			}
		}
	}
}

func TestTensorExpandsGrayscaleToRGB(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = 51
	}
	tensor, err := New(4, "nearest").FromImage(gray)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 4, 3}, tensor.Shape)
	for _, v := range tensor.Data {
		assert.Equal(t, float32(51)/255.0, v)
	}
}

func TestTensorDropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 128, B: 0, A: 10})
		}
	}
	tensor, err := New(2, "bilinear").FromImage(img)
	require.NoError(t, err)
	assert.Equal(t, float32(1), tensor.Data[0])
	assert.Equal(t, float32(128)/255.0, tensor.Data[1])
	assert.Equal(t, float32(0), tensor.Data[2])
}

func TestTensorDecodesJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, randomRGB(300, 200, 3), nil))

	tensor, err := New(DefaultSize, "bilinear").Tensor(&buf)
	require.NoError(t, err)
	assert.Len(t, tensor.Data, 224*224*3)
}

func TestTensorRejectsGarbage(t *testing.T) {
	p := New(DefaultSize, "bilinear")

	_, err := p.Tensor(bytes.NewReader([]byte("\x89PNG\r\n\x1a\nnot really a png")))
	assert.ErrorIs(t, err, ErrDecode)

	_, err = p.Tensor(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrDecode)
}

func TestFromImageRejectsEmpty(t *testing.T) {
	_, err := New(DefaultSize, "bilinear").FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewDefaults(t *testing.T) {
	p := New(0, "no-such-kernel")
	assert.Equal(t, DefaultSize, p.Size())
	assert.Equal(t, []int64{1, 224, 224, 3}, p.Shape())
	assert.Equal(t, resize.Bicubic, p.interp)

	assert.Equal(t, resize.Lanczos3, New(DefaultSize, "lanczos3").interp)
}
