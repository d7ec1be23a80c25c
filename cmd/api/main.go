package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kite-portal/mentor-api/api/swagger"
	"github.com/kite-portal/mentor-api/internal/handler"
	"github.com/kite-portal/mentor-api/internal/middleware"
	"github.com/kite-portal/mentor-api/internal/repository"
	"github.com/kite-portal/mentor-api/internal/service"
	"github.com/kite-portal/mentor-api/pkg/cache"
	"github.com/kite-portal/mentor-api/pkg/config"
	"github.com/kite-portal/mentor-api/pkg/database"
	"github.com/kite-portal/mentor-api/pkg/logger"
	corsmiddleware "github.com/kite-portal/mentor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kite-portal/mentor-api/pkg/middleware/requestid"
)

// @title Mentor Portal API
// @version 1.0.0
// @description Staff portal for project mentoring
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	staffRepo := repository.NewStaffRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	worklogRepo := repository.NewWorkLogRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	sessionStore := repository.NewSessionStore(redisClient)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(staffRepo, sessionStore, validate, logr, service.AuthConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: "mentor-api",
	})
	teamSvc := service.NewTeamService(teamRepo, staffRepo, studentRepo, reviewRepo, scheduleRepo, validate, logr, cfg.Mentors.MaxTeams)
	projectSvc := service.NewProjectService(projectRepo, teamRepo, staffRepo, studentRepo, reviewRepo, logr)
	reviewSvc := service.NewReviewService(reviewRepo, teamRepo, studentRepo, templateRepo, validate, logr)
	exportSvc := service.NewExportService(reviewRepo, teamRepo, nil, nil, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, teamRepo, reviewRepo, validate, logr)
	worklogSvc := service.NewWorkLogService(worklogRepo, teamRepo, studentRepo, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, teamRepo, validate, logr, cfg.Mentors.MaxTeams)
	diarySvc := service.NewDiaryService(teamRepo, studentRepo, staffRepo, worklogRepo, reviewRepo, projectRepo,
		&http.Client{Timeout: cfg.Diary.FetchTimeout}, logr, service.DiaryConfig{
			HeaderImageURL: cfg.Diary.HeaderImageURL,
			Institution:    cfg.Diary.Institution,
			DocRef:         cfg.Diary.DocRef,
		})

	authHandler := handler.NewAuthHandler(authSvc, cfg.Session)
	teamHandler := handler.NewTeamHandler(teamSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc, exportSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	worklogHandler := handler.NewWorkLogHandler(worklogSvc)
	staffHandler := handler.NewStaffHandler(staffSvc)
	diaryHandler := handler.NewDiaryHandler(diarySvc, metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	session := middleware.Session(authSvc, cfg.Session.CookieName)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", session, authHandler.Session)
	}

	teams := api.Group("/teams", session)
	{
		teams.GET("", teamHandler.List)
		teams.GET("/details", teamHandler.Details)
		teams.PATCH("/update-approval", teamHandler.UpdateApproval)
		teams.PATCH("/assign-mentor", teamHandler.AssignMentor)
	}

	projects := api.Group("/projects", session)
	{
		projects.GET("", projectHandler.List)
		projects.GET("/details", projectHandler.Details)
		projects.POST("/approve-mentors", projectHandler.MentorApprove)
		projects.PATCH("/approve-hod", projectHandler.HODApprove)
	}

	reviews := api.Group("/reviews", session)
	{
		reviews.GET("", reviewHandler.List)
		reviews.GET("/export", reviewHandler.Export)
		reviews.PATCH("/update", reviewHandler.Update)
		reviews.GET("/templates", reviewHandler.ListTemplates)
		reviews.POST("/templates", reviewHandler.CreateTemplate)
	}

	schedules := api.Group("/schedules", session)
	{
		schedules.GET("", scheduleHandler.List)
		schedules.POST("/create", scheduleHandler.Create)
	}

	logs := api.Group("/logs", session)
	{
		logs.GET("/pending", worklogHandler.Pending)
		logs.GET("/student", worklogHandler.ByStudent)
		logs.GET("/students", worklogHandler.Students)
		logs.PATCH("/approve", worklogHandler.Approve)
	}

	staff := api.Group("/staff", session)
	{
		staff.POST("/create", staffHandler.Create)
		staff.GET("/available", staffHandler.Available)
	}

	diaryGroup := api.Group("/diary", session)
	{
		diaryGroup.POST("/generate", diaryHandler.Generate)
		diaryGroup.POST("/pdf", diaryHandler.PDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
