package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shieldmail/internal/config"
	"shieldmail/internal/explain"
	"shieldmail/internal/handler"
	"shieldmail/internal/seeder"
	"shieldmail/internal/service"
	"shieldmail/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	cfg    *config.Config
	logger *zap.Logger
}

func NewServer(cfg *config.Config, model service.ModelService, predStore store.PredictionStore, provider explain.ExplanationProvider, logger *zap.Logger) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	s := &Server{
		router: router,
		cfg:    cfg,
		logger: logger,
	}
	s.setupRoutes(model, predStore, provider)
	return s
}

func (s *Server) setupRoutes(model service.ModelService, predStore store.PredictionStore, provider explain.ExplanationProvider) {
	healthHandler := handler.NewHealthHandler(model)
	predictionHandler := handler.NewPredictionHandler(model, predStore, s.logger)
	explainHandler := handler.NewExplainHandler(provider, s.logger)
	sampleDataHandler := handler.NewSampleDataHandler(seeder.New(model, predStore, s.logger), s.logger)

	s.router.GET("/", healthHandler.Root)

	api := s.router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/model/info", healthHandler.ModelInfo)

		api.POST("/predict", predictionHandler.Predict)
		api.POST("/batch-predict", predictionHandler.BatchPredict)
		api.GET("/predictions", predictionHandler.ListPredictions)
		api.GET("/predictions/:id", predictionHandler.GetPredictionByID)
		api.PUT("/predictions/:id", predictionHandler.UpdatePrediction)
		api.DELETE("/predictions/:id", predictionHandler.DeletePrediction)
		api.GET("/stats", predictionHandler.GetStats)
		api.POST("/generate-sample-data", sampleDataHandler.GenerateSampleData)

		api.POST("/explain/impacts", explainHandler.TokenImpacts)
		api.POST("/explain/heatmap", explainHandler.WordHeatmap)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
