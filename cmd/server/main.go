package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Brownie44l1/leafscan/internal/config"
	"github.com/Brownie44l1/leafscan/internal/handlers"
	"github.com/Brownie44l1/leafscan/internal/labels"
	"github.com/Brownie44l1/leafscan/internal/logger"
	"github.com/Brownie44l1/leafscan/internal/model"
	"github.com/Brownie44l1/leafscan/internal/predict"
	"github.com/Brownie44l1/leafscan/internal/preprocess"
	"github.com/Brownie44l1/leafscan/internal/storage"
)

var configPath = flag.String("config", os.Getenv("LEAFSCAN_CONFIG"), "path to a YAML config file")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	oracle, closeModel := loadModel(cfg, zlog)
	defer closeModel()

	store, err := storage.NewStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		zlog.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	pipeline := predict.NewPipeline(
		oracle,
		preprocess.New(cfg.Preprocess.ImageSize, cfg.Preprocess.Interpolation),
		store,
		labels.Classes,
		zlog,
	)
	handler := handlers.NewHandler(pipeline, zlog)
	router := handlers.NewRouter(handler, handlers.RouterOptions{
		SecretKey:      cfg.App.SecretKey,
		SecureCookies:  cfg.IsProduction(),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		UploadsDir:     store.Dir(),
		UploadsURL:     cfg.Uploads.URLPrefix,
	}, zlog)

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	zlog.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.Bool("model_loaded", pipeline.ModelLoaded()),
		zap.Int("classes", len(labels.Classes)),
		zap.String("uploads", store.Dir()),
	)
	zlog.Info("endpoints",
		zap.Strings("routes", []string{
			"GET  / - Upload form",
			"POST /predict - Predict from form upload",
			"POST /api/v1/predict - Predict from upload, JSON result",
			"GET  /health - Health check",
		}),
		zap.String("try", fmt.Sprintf(`curl -F "file=@leaf.jpg" http://localhost:%s/api/v1/predict`, cfg.Server.Port)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		zlog.Fatal("failed to listen", zap.String("addr", srv.Addr), zap.Error(err))
	}
	if err := serve(ctx, srv, ln, zlog); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		return
	}
	zlog.Info("server stopped")
}

const shutdownTimeout = 10 * time.Second

// serve runs srv on ln until ctx is cancelled, then drains in-flight
// requests. It returns only once every handler has finished or the drain
// timed out, so the model can be closed safely afterwards.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, zlog *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	zlog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// loadModel opens the ONNX session. Failure is not fatal: the server keeps
// running and every prediction is rejected until restart.
func loadModel(cfg *config.Config, zlog *zap.Logger) (predict.Oracle, func()) {
	zlog.Info("loading model", zap.String("path", cfg.Model.Path))

	srv, err := model.NewServer(model.Options{
		ModelPath:   cfg.Model.Path,
		LibraryPath: cfg.Model.LibraryPath,
		InputName:   cfg.Model.InputName,
		OutputName:  cfg.Model.OutputName,
		ImageSize:   cfg.Preprocess.ImageSize,
		NumClasses:  len(labels.Classes),
	})
	if err != nil {
		zlog.Error("model not loaded, predictions are disabled",
			zap.String("path", cfg.Model.Path),
			zap.Error(err),
		)
		return nil, func() {}
	}

	zlog.Info("model loaded",
		zap.Int64s("input_shape", srv.Metadata.InputShape),
		zap.Int64s("output_shape", srv.Metadata.OutputShape),
	)
	return srv, srv.Close
}
