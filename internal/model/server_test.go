package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/leafscan/internal/preprocess"
)

func TestOptionsMetadataDefaults(t *testing.T) {
	md := Options{ImageSize: 224, NumClasses: 38}.metadata()
	assert.Equal(t, "input", md.InputName)
	assert.Equal(t, "output", md.OutputName)
	assert.Equal(t, []int64{1, 224, 224, 3}, md.InputShape)
	assert.Equal(t, []int64{1, 38}, md.OutputShape)

	md = Options{InputName: "x", OutputName: "probs", ImageSize: 96, NumClasses: 5}.metadata()
	assert.Equal(t, "x", md.InputName)
	assert.Equal(t, "probs", md.OutputName)
	assert.Equal(t, []int64{1, 96, 96, 3}, md.InputShape)
}

func TestSameShape(t *testing.T) {
	assert.True(t, sameShape([]int64{1, 2, 3}, []int64{1, 2, 3}))
	assert.False(t, sameShape([]int64{1, 2, 3}, []int64{1, 3, 2}))
	assert.False(t, sameShape([]int64{1, 2}, []int64{1, 2, 3}))
	assert.True(t, sameShape(nil, []int64{}))
}

func TestNewServerMissingModel(t *testing.T) {
	_, err := NewServer(Options{
		ModelPath:  filepath.Join(t.TempDir(), "model.onnx"),
		ImageSize:  224,
		NumClasses: 38,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewServerRejectsZeroClasses(t *testing.T) {
	_, err := NewServer(Options{ModelPath: "whatever.onnx", ImageSize: 224})
	assert.Error(t, err)
}

func TestPredictRejectsWrongShape(t *testing.T) {
	s := &Server{Metadata: Options{ImageSize: 224, NumClasses: 38}.metadata()}

	// NCHW instead of NHWC.
	_, err := s.Predict(context.Background(), &preprocess.Tensor{
		Shape: []int64{1, 3, 224, 224},
		Data:  make([]float32, 3*224*224),
	})
	assert.ErrorIs(t, err, ErrShape)

	_, err = s.Predict(context.Background(), &preprocess.Tensor{Shape: []int64{224, 224, 3}})
	assert.ErrorIs(t, err, ErrShape)
}

func TestPredictAfterClose(t *testing.T) {
	s := &Server{Metadata: Options{ImageSize: 224, NumClasses: 38}.metadata(), closed: true}

	_, err := s.Predict(context.Background(), &preprocess.Tensor{
		Shape: []int64{1, 224, 224, 3},
		Data:  make([]float32, 224*224*3),
	})
	assert.ErrorIs(t, err, ErrClosed)
}
