package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brownie44l1/leafscan/internal/predict"
)

const (
	formField = "file"
	flashKey  = "error"
)

type Handler struct {
	pipeline *predict.Pipeline
	logger   *zap.Logger
}

func NewHandler(pipeline *predict.Pipeline, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   logger,
	}
}

func (h *Handler) Health(c *gin.Context) {
	status := "healthy"
	if !h.pipeline.ModelLoaded() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"model_loaded": h.pipeline.ModelLoaded(),
		"classes":      len(h.pipeline.Classes()),
	})
}

// Index renders the upload form along with any pending flash messages.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Messages": h.popFlashes(c),
	})
}

// Clear drops the current result by sending the user back to the form.
func (h *Handler) Clear(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// Predict handles the HTML form post. Rejections are flashed and redirect
// back to the form.
func (h *Handler) Predict(c *gin.Context) {
	res, err := h.run(c)
	if err != nil {
		h.flashAndRedirect(c, h.userMessage(c, err))
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Result": res,
	})
}

// PredictJSON is the API variant of Predict.
func (h *Handler) PredictJSON(c *gin.Context) {
	res, err := h.run(c)
	if err != nil {
		msg := h.userMessage(c, err)
		kind := predict.InferenceFailed
		if pe, ok := predict.AsError(err); ok {
			kind = pe.Kind
		}
		c.JSON(kind.HTTPStatus(), gin.H{
			"error": msg,
			"kind":  kind.String(),
		})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) run(c *gin.Context) (*predict.Result, error) {
	// An unloaded model outranks every upload problem, oversize included.
	if !h.pipeline.ModelLoaded() {
		return h.pipeline.Run(c.Request.Context(), nil)
	}

	upload, closeFn, err := readUpload(c)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	if upload != nil {
		h.logger.Debug("received file", zap.String("filename", upload.Filename))
	}

	return h.pipeline.Run(c.Request.Context(), upload)
}

// userMessage logs the internal cause of a rejection and returns the text
// shown to the user.
func (h *Handler) userMessage(c *gin.Context, err error) string {
	pe, ok := predict.AsError(err)
	if !ok {
		h.logger.Error("unexpected prediction error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		return predict.MsgInferenceFailed
	}

	fields := []zap.Field{zap.String("kind", pe.Kind.String()), zap.String("path", c.Request.URL.Path)}
	switch {
	case pe.Err != nil && pe.Kind.HTTPStatus() >= http.StatusInternalServerError:
		h.logger.Error("prediction rejected", append(fields, zap.Error(pe.Err))...)
	case pe.Err != nil:
		h.logger.Warn("prediction rejected", append(fields, zap.Error(pe.Err))...)
	default:
		h.logger.Info("prediction rejected", fields...)
	}
	return pe.Message
}

func (h *Handler) flashAndRedirect(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, flashKey)
	if err := session.Save(); err != nil {
		h.logger.Error("failed to save flash message", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) popFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	flashes := session.Flashes(flashKey)
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		h.logger.Error("failed to clear flash messages", zap.Error(err))
	}

	msgs := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}
	return msgs
}

// readUpload extracts the "file" part. It returns a nil upload when the
// request has no such part, and an Oversized rejection when the body limit
// was hit.
func readUpload(c *gin.Context) (*predict.Upload, func(), error) {
	noop := func() {}

	if c.GetBool(bodyTooLargeKey) {
		return nil, noop, predict.Oversized(nil)
	}

	header, err := c.FormFile(formField)
	if err != nil {
		if isBodyTooLarge(err) {
			return nil, noop, predict.Oversized(err)
		}
		// A file input submitted without a selection arrives as a plain
		// value with an empty filename.
		if form := c.Request.MultipartForm; form != nil {
			if _, ok := form.Value[formField]; ok {
				return &predict.Upload{Filename: ""}, noop, nil
			}
		}
		return nil, noop, nil
	}

	filename := header.Filename
	if filename == "." {
		filename = ""
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, &predict.Error{Kind: predict.UploadFailed, Message: predict.MsgUploadFailed, Err: err}
	}
	return &predict.Upload{Filename: filename, Body: f}, func() { f.Close() }, nil
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return true
	}
	// Some multipart paths flatten the cause into the message.
	return strings.Contains(err.Error(), "http: request body too large")
}
