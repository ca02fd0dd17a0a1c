package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-gradebook-api/api/swagger"
	"github.com/noah-isme/sma-gradebook-api/internal/handler"
	"github.com/noah-isme/sma-gradebook-api/internal/middleware"
	"github.com/noah-isme/sma-gradebook-api/internal/models"
	"github.com/noah-isme/sma-gradebook-api/internal/repository"
	"github.com/noah-isme/sma-gradebook-api/internal/service"
	"github.com/noah-isme/sma-gradebook-api/pkg/cache"
	"github.com/noah-isme/sma-gradebook-api/pkg/config"
	"github.com/noah-isme/sma-gradebook-api/pkg/database"
	"github.com/noah-isme/sma-gradebook-api/pkg/export"
	"github.com/noah-isme/sma-gradebook-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-gradebook-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-gradebook-api/pkg/middleware/requestid"
)

// @title SMA Gradebook API
// @version 1.0.0
// @description Teacher gradebook: assignments, grading, attendance and analytics.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	router := newRouter(cfg, db, redisClient, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func newRouter(cfg *config.Config, db *sqlx.DB, redisClient *redis.Client, logr *zap.Logger) *gin.Engine {
	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Gradebook.CacheTTL, logr, cfg.Cache.Enabled && cacheRepo != nil)

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	linkRepo := repository.NewTeacherAssignmentRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	recordRepo := repository.NewAcademicRecordRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	teacherSvc := service.NewTeacherService(teacherRepo, logr)
	studentSvc := service.NewStudentService(studentRepo, linkRepo, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, linkRepo, recordRepo, cacheSvc, validate, logr)
	gradeSvc := service.NewGradeService(recordRepo, assignmentRepo, cacheSvc, metricsSvc, validate, logr)
	gradebookSvc := service.NewGradebookService(linkRepo, assignmentRepo, recordRepo, studentRepo, cacheSvc, metricsSvc, service.GradebookConfig{
		CacheTTL:          cfg.Gradebook.CacheTTL,
		RecentAssignments: cfg.Gradebook.RecentAssignments,
	}, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, linkRepo, cacheSvc, metricsSvc, validate, logr)
	analyticsSvc := service.NewAttendanceAnalyticsService(attendanceRepo, cacheSvc, metricsSvc, cfg.Attendance.CacheTTL, logr)
	exportSvc := service.NewExportService(recordRepo, assignmentRepo, cfg.Exports.Enabled, validate, logr, export.NewCSVExporter(), export.NewPDFExporter())

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, checks)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	gradeHandler := handler.NewGradeHandler(gradeSvc, gradebookSvc, exportSvc)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, analyticsSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	teacher := api.Group("")
	teacher.Use(middleware.JWT(authSvc), middleware.RequireRoles(models.RoleTeacher), middleware.TeacherContext(teacherSvc))

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(userRepo, logr, action, resource)
	}

	assignments := teacher.Group("/assignments")
	assignments.GET("", assignmentHandler.List)
	assignments.GET("/:id", assignmentHandler.Get)
	assignments.POST("", audit(models.AuditActionAssignmentCreate, "assignment"), assignmentHandler.Create)
	assignments.PUT("/:id", audit(models.AuditActionAssignmentUpdate, "assignment"), assignmentHandler.Update)
	assignments.DELETE("/:id", audit(models.AuditActionAssignmentDelete, "assignment"), assignmentHandler.Delete)

	grades := teacher.Group("/grades")
	grades.GET("", gradeHandler.List)
	grades.GET("/overview", gradeHandler.Overview)
	grades.GET("/export", gradeHandler.Export)
	grades.POST("", audit(models.AuditActionGradeSubmit, "grade"), gradeHandler.Submit)
	grades.PUT("/:id", audit(models.AuditActionGradeUpdate, "grade"), gradeHandler.Update)
	grades.POST("/publish", audit(models.AuditActionGradePublish, "grade"), gradeHandler.Publish)
	grades.POST("/unpublish", audit(models.AuditActionGradePublish, "grade"), gradeHandler.Unpublish)

	attendance := teacher.Group("/attendance")
	attendance.GET("/records", attendanceHandler.List)
	attendance.POST("/records", audit(models.AuditActionAttendanceWrite, "attendance"), attendanceHandler.Create)
	attendance.POST("/records/bulk", audit(models.AuditActionAttendanceWrite, "attendance"), attendanceHandler.BulkCreate)
	attendance.PUT("/records/:id", audit(models.AuditActionAttendanceWrite, "attendance"), attendanceHandler.Update)
	attendance.DELETE("/records/:id", audit(models.AuditActionAttendanceDelete, "attendance"), attendanceHandler.Delete)
	attendance.GET("/patterns", attendanceHandler.Patterns)
	attendance.GET("/analytics", attendanceHandler.Analytics)

	teacher.GET("/students/:classId", studentHandler.Roster)

	return r
}
