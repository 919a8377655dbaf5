package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/handler"
	"github.com/RanaNomiRana/backend-afa/internal/middleware"
	"github.com/RanaNomiRana/backend-afa/internal/service"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Ingest      service.IngestService
	Analysis    service.AnalysisService
	Reports     service.ReportService
	Connections service.ConnectionService
	Auth        service.AuthService
}

// Options controls optional router behavior.
type Options struct {
	// AuthEnabled puts every device route behind JWT authentication.
	AuthEnabled bool
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

func NewServer(addr string, services Services, stores handler.StoreOpener, opts Options, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		router: router,
		http: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
	s.setupRoutes(services, stores, opts)
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes(services Services, stores handler.StoreOpener, opts Options) {
	deviceHandler := handler.NewDeviceHandler(services.Ingest, services.Analysis, stores, s.logger)
	analysisHandler := handler.NewAnalysisHandler(services.Ingest, services.Analysis, stores, s.logger)
	reportHandler := handler.NewReportHandler(services.Ingest, services.Reports, stores, s.logger)
	connectionHandler := handler.NewConnectionHandler(services.Ingest, services.Connections, s.logger)
	authHandler := handler.NewAuthHandler(services.Auth, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/auth/login", authHandler.Login)

	api := s.router.Group("/")
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	register := []gin.HandlerFunc{authHandler.Register}
	if opts.AuthEnabled {
		api.Use(middleware.AuthMiddleware(services.Auth, s.logger))
		register = []gin.HandlerFunc{middleware.RequireRole(service.RoleAdmin), authHandler.Register}
	}
	{
		api.POST("/auth/register", register...)

		api.GET("/device-name", deviceHandler.GetDeviceName)
		api.GET("/sms", deviceHandler.GetSMS)
		api.GET("/call-log", deviceHandler.GetCallLog)
		api.GET("/contacts", deviceHandler.GetContacts)
		api.GET("/sms-stats", deviceHandler.GetSMSStats)
		api.GET("/search", deviceHandler.Search)

		api.GET("/timeline-analysis", analysisHandler.GetTimeline)
		api.GET("/url-analysis", analysisHandler.GetURLAnalysis)
		api.GET("/data-correlation", analysisHandler.GetDataCorrelation)

		api.GET("/comprehensive-report", reportHandler.GetComprehensiveReport)
		api.GET("/comprehensive-report/export", reportHandler.ExportComprehensiveReport)
		api.GET("/short-report", reportHandler.GetShortReport)
		api.POST("/short-report", reportHandler.SubmitShortReport)
		api.GET("/reports", reportHandler.ListReports)

		api.GET("/connection-details", connectionHandler.ListConnectionDetails)
		api.POST("/connection-details", connectionHandler.RecordConnectionDetails)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
