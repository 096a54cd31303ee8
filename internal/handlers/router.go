package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Brownie44l1/leafscan/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// RouterOptions carries the HTTP-level settings for NewRouter.
type RouterOptions struct {
	SecretKey      string
	SecureCookies  bool
	MaxUploadBytes int64
	UploadsDir     string
	UploadsURL     string
}

// NewRouter wires the handler routes and the middleware stack.
func NewRouter(h *Handler, opts RouterOptions, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.Use(logger.Gin(log))
	r.Use(logger.Recovery(log))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(opts.SecretKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
	})
	r.Use(sessions.Sessions("leafscan", store))

	if opts.UploadsDir != "" {
		r.Use(static.Serve(opts.UploadsURL, static.LocalFile(opts.UploadsDir, false)))
	}

	r.GET("/", h.Index)
	r.GET("/clear", h.Clear)
	r.GET("/health", h.Health)

	limit := LimitBody(opts.MaxUploadBytes)
	r.POST("/predict", limit, h.Predict)

	api := r.Group("/api/v1")
	{
		api.POST("/predict", limit, h.PredictJSON)
	}

	return r
}
