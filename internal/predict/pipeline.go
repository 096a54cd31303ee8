// Package predict validates an uploaded leaf image, runs it through the
// classifier and ranks the result.
package predict

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Brownie44l1/leafscan/internal/labels"
	"github.com/Brownie44l1/leafscan/internal/preprocess"
	"github.com/Brownie44l1/leafscan/internal/storage"
)

// AllowedExtensions are matched case-insensitively against the file suffix.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// AllowedFile reports whether name ends in an allowed extension.
func AllowedFile(name string) bool {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(name[dot+1:])]
}

// Oracle maps an input tensor to one score per class.
type Oracle interface {
	Predict(ctx context.Context, t *preprocess.Tensor) ([]float32, error)
}

// Upload is the file part of a prediction request.
type Upload struct {
	Filename string
	Body     io.Reader
}

type Pipeline struct {
	oracle  Oracle
	pre     *preprocess.Preprocessor
	store   *storage.Store
	classes []labels.Label
	logger  *zap.Logger
}

// NewPipeline wires the stages together. A nil oracle puts the pipeline in
// degraded mode: every run is rejected with ModelUnavailable.
func NewPipeline(oracle Oracle, pre *preprocess.Preprocessor, store *storage.Store, classes []labels.Label, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		oracle:  oracle,
		pre:     pre,
		store:   store,
		classes: classes,
		logger:  logger,
	}
}

func (p *Pipeline) ModelLoaded() bool { return p.oracle != nil }

func (p *Pipeline) Classes() []labels.Label { return p.classes }

// Validate applies the request guards in order. u is nil when the request
// carried no file part.
func (p *Pipeline) Validate(u *Upload) error {
	if p.oracle == nil {
		return reject(ModelUnavailable, MsgModelUnavailable, nil)
	}
	if u == nil {
		return reject(MissingUpload, MsgNoFilePart, nil)
	}
	if u.Filename == "" {
		return reject(MissingUpload, MsgNoFileSelected, nil)
	}
	if !AllowedFile(u.Filename) {
		return reject(InvalidFileType, MsgInvalidFileType, nil)
	}
	return nil
}

// Run executes validate → persist → preprocess → infer → rank. Every
// failure is returned as an *Error; an upload rejected after it was written
// is removed again.
func (p *Pipeline) Run(ctx context.Context, u *Upload) (*Result, error) {
	if err := p.Validate(u); err != nil {
		return nil, err
	}

	saved, err := p.store.Save(u.Filename, u.Body)
	if err != nil {
		return nil, reject(UploadFailed, MsgUploadFailed, err)
	}

	res, err := p.classify(ctx, saved)
	if err != nil {
		if rmErr := p.store.Remove(saved); rmErr != nil {
			p.logger.Warn("failed to remove rejected upload", zap.String("path", saved.Path), zap.Error(rmErr))
		}
		return nil, err
	}

	res.ImagePath = saved.URL
	return res, nil
}

func (p *Pipeline) classify(ctx context.Context, saved *storage.Saved) (*Result, error) {
	tensor, err := p.preprocess(saved)
	if err != nil {
		return nil, err
	}

	scores, err := p.infer(ctx, tensor)
	if err != nil {
		return nil, err
	}

	res, err := Rank(scores, p.classes)
	if err != nil {
		return nil, reject(InferenceFailed, MsgInferenceFailed, err)
	}
	return res, nil
}

func (p *Pipeline) preprocess(saved *storage.Saved) (*preprocess.Tensor, error) {
	f, err := p.store.Open(saved)
	if err != nil {
		return nil, reject(PreprocessingFailed, MsgCannotProcess, err)
	}
	defer f.Close()

	tensor, err := p.pre.Tensor(f)
	if err != nil {
		return nil, reject(PreprocessingFailed, MsgCannotProcess, err)
	}
	return tensor, nil
}

func (p *Pipeline) infer(ctx context.Context, tensor *preprocess.Tensor) (scores []float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			scores = nil
			err = reject(InferenceFailed, MsgInferenceFailed, fmt.Errorf("oracle panic: %v", r))
		}
	}()

	scores, err = p.oracle.Predict(ctx, tensor)
	if err != nil {
		return nil, reject(InferenceFailed, MsgInferenceFailed, err)
	}
	return scores, nil
}
