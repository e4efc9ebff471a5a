package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"anoa.com/edapp/internal/config"
	"anoa.com/edapp/internal/entity"
	"anoa.com/edapp/internal/jobs"
	"anoa.com/edapp/internal/middleware"
	"anoa.com/edapp/pkg/logger"
	"anoa.com/edapp/pkg/ratelimit"
	"anoa.com/edapp/pkg/storage"

	authHttp "anoa.com/edapp/internal/modules/auth/delivery/http"
	authRepo "anoa.com/edapp/internal/modules/auth/repository"
	authService "anoa.com/edapp/internal/modules/auth/service"

	courseHttp "anoa.com/edapp/internal/modules/course/delivery/http"
	courseRepo "anoa.com/edapp/internal/modules/course/repository"
	courseService "anoa.com/edapp/internal/modules/course/service"

	mediaHttp "anoa.com/edapp/internal/modules/media/delivery/http"
	mediaService "anoa.com/edapp/internal/modules/media/service"

	mentorHttp "anoa.com/edapp/internal/modules/mentor/delivery/http"
	mentorRepo "anoa.com/edapp/internal/modules/mentor/repository"
	mentorService "anoa.com/edapp/internal/modules/mentor/service"

	resetHttp "anoa.com/edapp/internal/modules/passwordreset/delivery/http"
	resetRepo "anoa.com/edapp/internal/modules/passwordreset/repository"
	resetService "anoa.com/edapp/internal/modules/passwordreset/service"

	schoolHttp "anoa.com/edapp/internal/modules/school/delivery/http"
	schoolRepo "anoa.com/edapp/internal/modules/school/repository"
	schoolService "anoa.com/edapp/internal/modules/school/service"

	searchHttp "anoa.com/edapp/internal/modules/search/delivery/http"
	searchService "anoa.com/edapp/internal/modules/search/service"

	studentHttp "anoa.com/edapp/internal/modules/student/delivery/http"
	studentRepo "anoa.com/edapp/internal/modules/student/repository"
	studentService "anoa.com/edapp/internal/modules/student/service"

	teacherHttp "anoa.com/edapp/internal/modules/teacher/delivery/http"
	teacherRepo "anoa.com/edapp/internal/modules/teacher/repository"
	teacherService "anoa.com/edapp/internal/modules/teacher/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the external resources the server is built on. Redis and
// Search may be nil; the features backed by them then degrade to no-ops.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Storage  storage.ObjectStorage
	Notifier resetService.Notifier
	Search   meilisearch.ServiceManager
}

type Server struct {
	engine    *gin.Engine
	db        *gorm.DB
	scheduler *jobs.Scheduler
	http      *http.Server
}

func NewServer(cfg *config.Config, deps Dependencies) (*Server, error) {
	db := deps.DB

	tokens := authService.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := authService.NewAuthService(authRepo.NewCredentialRepository(db), tokens)
	authHandler := authHttp.NewAuthHandler(authSvc)

	resetSvc := resetService.NewPasswordResetService(resetRepo.NewResetRepository(db), deps.Notifier, ratelimit.New(deps.Redis), cfg.OTPTTL, cfg.RateLimitOTP)
	resetHandler := resetHttp.NewPasswordResetHandler(resetSvc)

	memberSearch := searchService.NewMemberSearchService(deps.Search)
	searchHandler := searchHttp.NewSearchHandler(memberSearch)

	schoolSvc := schoolService.NewSchoolService(schoolRepo.NewSchoolRepository(db))
	schoolHandler := schoolHttp.NewSchoolHandler(schoolSvc)

	teacherSvc := teacherService.NewTeacherService(teacherRepo.NewTeacherRepository(db), memberSearch)
	teacherHandler := teacherHttp.NewTeacherHandler(teacherSvc)

	studentSvc := studentService.NewStudentService(studentRepo.NewStudentRepository(db), memberSearch)
	studentHandler := studentHttp.NewStudentHandler(studentSvc)

	mentorSvc := mentorService.NewMentorService(mentorRepo.NewMentorRepository(db))
	mentorHandler := mentorHttp.NewMentorHandler(mentorSvc)

	courseSvc := courseService.NewCourseService(courseRepo.NewCourseRepository(db))
	courseHandler := courseHttp.NewCourseHandler(courseSvc)

	mediaSvc := mediaService.NewMediaService(deps.Storage, cfg.PresignTTL)
	mediaHandler := mediaHttp.NewMediaHandler(mediaSvc)

	scheduler := jobs.NewScheduler()
	if err := scheduler.Register(jobs.NewOTPPurgeJob(resetSvc, cfg.OTPCleanupInterval)); err != nil {
		return nil, err
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.POST("/login", authHandler.UserLogin)
	}

	reset := api.Group("/password-reset")
	{
		reset.POST("/check-email", resetHandler.CheckEmail)
		reset.POST("/send-otp", resetHandler.SendOTP)
		reset.POST("/verify-otp", resetHandler.VerifyOTP)
		reset.POST("/reset-password", resetHandler.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/auth/me", authHandler.Me)

		adminGroup := protected.Group("")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.GET("/schools", schoolHandler.List)
			adminGroup.POST("/schools", schoolHandler.Create)
			adminGroup.GET("/schools/:school_id", schoolHandler.Get)
			adminGroup.PUT("/schools/:school_id", schoolHandler.Update)
			adminGroup.DELETE("/schools/:school_id", schoolHandler.Delete)
			adminGroup.GET("/schools/:school_id/user-counts", schoolHandler.UserCounts)

			adminGroup.GET("/schools/:school_id/teachers", teacherHandler.ListForSchool)
			adminGroup.POST("/schools/:school_id/teachers", teacherHandler.Create)
			adminGroup.GET("/schools/:school_id/teachers/:user_id", teacherHandler.Get)
			adminGroup.PUT("/schools/:school_id/teachers/:user_id", teacherHandler.Update)
			adminGroup.DELETE("/schools/:school_id/teachers/:user_id", teacherHandler.Delete)

			adminGroup.GET("/schools/:school_id/students", studentHandler.ListForSchool)
			adminGroup.POST("/schools/:school_id/students", studentHandler.Create)
			adminGroup.GET("/schools/:school_id/students/:user_id", studentHandler.Get)
			adminGroup.PUT("/schools/:school_id/students/:user_id", studentHandler.Update)
			adminGroup.DELETE("/schools/:school_id/students/:user_id", studentHandler.Delete)

			adminGroup.GET("/mentors", mentorHandler.ListAll)
			adminGroup.POST("/mentors", mentorHandler.Create)
			adminGroup.GET("/mentors/:mentor_id", mentorHandler.Get)
			adminGroup.PUT("/mentors/:mentor_id", mentorHandler.Update)
			adminGroup.DELETE("/mentors/:mentor_id", mentorHandler.Delete)

			adminGroup.POST("/orgs/:org_id/icon", mediaHandler.PutOrgIcon)
		}

		staff := protected.Group("")
		staff.Use(authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleTeacher))
		{
			staff.GET("/mentor-names", mentorHandler.ListNames)
		}

		// courses belong to login users; admins have none
		members := protected.Group("")
		members.Use(authMiddleware.RequireRole(entity.RoleTeacher, entity.RoleStudent))
		{
			members.GET("/courses/me", courseHandler.UserCourses)
		}

		teachers := protected.Group("")
		teachers.Use(authMiddleware.RequireRole(entity.RoleTeacher))
		{
			teachers.POST("/courses", courseHandler.CreateCourse)
		}

		protected.GET("/schools/:school_id/members/search", searchHandler.SearchMembers)

		protected.GET("/subjects", courseHandler.ListSubjects)
		protected.GET("/classes", courseHandler.ListClasses)

		protected.POST("/users/:user_id/image", mediaHandler.PutProfileImage)
		protected.PUT("/users/:user_id/image", mediaHandler.PutProfileImage)
		protected.GET("/users/:user_id/image", mediaHandler.RetrieveProfileImage)
		protected.DELETE("/users/:user_id/image", mediaHandler.DeleteProfileImage)
		protected.GET("/orgs/:org_id/icon", mediaHandler.RetrieveOrgIcon)
	}

	return &Server{
		engine:    router,
		db:        db,
		scheduler: scheduler,
	}, nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.scheduler.Start()
	defer s.scheduler.Stop()

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("http server listening", zap.String("addr", addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
