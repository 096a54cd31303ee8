package model

import "errors"

var (
	// ErrShape is returned when an input tensor does not match the session input.
	ErrShape = errors.New("tensor shape mismatch")
	// ErrClosed is returned by Predict after Close.
	ErrClosed = errors.New("model server closed")
)

// Metadata describes the ONNX graph the server binds to.
type Metadata struct {
	InputName   string  `json:"input_name"`
	OutputName  string  `json:"output_name"`
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
}

// Options configures NewServer.
type Options struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
	ImageSize   int
	NumClasses  int
}

func (o Options) metadata() Metadata {
	in, out := o.InputName, o.OutputName
	if in == "" {
		in = "input"
	}
	if out == "" {
		out = "output"
	}
	size := int64(o.ImageSize)
	return Metadata{
		InputName:   in,
		OutputName:  out,
		InputShape:  []int64{1, size, size, 3},
		OutputShape: []int64{1, int64(o.NumClasses)},
	}
}

func sameShape(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
