package predict

import (
	"errors"
	"net/http"
)

// Kind names a rejection reason of the prediction pipeline.
type Kind int

const (
	MissingUpload Kind = iota + 1
	InvalidFileType
	OversizedUpload
	ModelUnavailable
	PreprocessingFailed
	InferenceFailed
	UploadFailed
)

// User-facing messages.
const (
	MsgNoFilePart       = "No file part in the request."
	MsgNoFileSelected   = "No file selected. Please choose an image to upload."
	MsgInvalidFileType  = "Invalid file type. Please upload a PNG, JPG, or JPEG file."
	MsgTooLarge         = "The uploaded file is too large. Please upload an image smaller than 16MB."
	MsgModelUnavailable = "Model is not loaded. Please check the server logs."
	MsgCannotProcess    = "Could not process the image. Please try another one."
	MsgInferenceFailed  = "An error occurred during prediction. Please try again."
	MsgUploadFailed     = "Could not save the uploaded file. Please try again."
)

var kindNames = map[Kind]string{
	MissingUpload:       "missing_upload",
	InvalidFileType:     "invalid_file_type",
	OversizedUpload:     "oversized_upload",
	ModelUnavailable:    "model_unavailable",
	PreprocessingFailed: "preprocessing_failed",
	InferenceFailed:     "inference_failed",
	UploadFailed:        "upload_failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// HTTPStatus is the status code used when the rejection is reported as JSON.
func (k Kind) HTTPStatus() int {
	switch k {
	case MissingUpload, InvalidFileType, PreprocessingFailed:
		return http.StatusBadRequest
	case OversizedUpload:
		return http.StatusRequestEntityTooLarge
	case ModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a pipeline rejection. Message is safe to show to the user; Err
// carries the internal cause, if any, for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func reject(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// Oversized is the rejection raised by the request body limit.
func Oversized(cause error) *Error {
	return reject(OversizedUpload, MsgTooLarge, cause)
}

// AsError extracts a pipeline rejection from err.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
