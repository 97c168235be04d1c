package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"infuct.com/seguimiento/internal/config"
	"infuct.com/seguimiento/internal/entity"
	"infuct.com/seguimiento/internal/middleware"
	"infuct.com/seguimiento/pkg/logger"
	"infuct.com/seguimiento/pkg/metrics"
	"infuct.com/seguimiento/pkg/ratelimit"
	"infuct.com/seguimiento/pkg/response"
	"infuct.com/seguimiento/pkg/storage"
	"infuct.com/seguimiento/pkg/token"
	"infuct.com/seguimiento/pkg/validator"

	authHttp "infuct.com/seguimiento/internal/modules/auth/delivery/http"
	authRepo "infuct.com/seguimiento/internal/modules/auth/repository"
	authService "infuct.com/seguimiento/internal/modules/auth/service"

	documentHttp "infuct.com/seguimiento/internal/modules/document/delivery/http"
	documentService "infuct.com/seguimiento/internal/modules/document/service"

	internshipHttp "infuct.com/seguimiento/internal/modules/internship/delivery/http"
	internshipRepo "infuct.com/seguimiento/internal/modules/internship/repository"
	internshipService "infuct.com/seguimiento/internal/modules/internship/service"

	professorHttp "infuct.com/seguimiento/internal/modules/professor/delivery/http"
	professorRepo "infuct.com/seguimiento/internal/modules/professor/repository"
	professorService "infuct.com/seguimiento/internal/modules/professor/service"

	projectHttp "infuct.com/seguimiento/internal/modules/project/delivery/http"
	projectRepo "infuct.com/seguimiento/internal/modules/project/repository"
	projectService "infuct.com/seguimiento/internal/modules/project/service"

	searchService "infuct.com/seguimiento/internal/modules/search/service"

	studentHttp "infuct.com/seguimiento/internal/modules/student/delivery/http"
	studentRepo "infuct.com/seguimiento/internal/modules/student/repository"
	studentService "infuct.com/seguimiento/internal/modules/student/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

// NewServer wires every module. redisClient may be nil, in which case login
// attempts are not throttled.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	validator.Register()

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.UploadDir, entity.DocumentSubDirs()...)
	if err != nil {
		return nil, err
	}

	var meiliSvc searchService.MeiliSearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = searchService.NewMeiliSearchService(meiliClient)
	} else {
		logger.Warn().Msg("MEILISEARCH_HOST not set, project search disabled")
	}

	loginLimiter := ratelimit.NewLimiter(redisClient, cfg.LoginMaxAttempts, cfg.LoginWindow)

	secretaries := authRepo.NewSecretaryRepository(db)
	authSvc := authService.NewAuthService(secretaries, tokens, loginLimiter)
	authHandler := authHttp.NewAuthHandler(authSvc)

	students := studentRepo.NewStudentRepository(db)
	studentSvc := studentService.NewStudentService(students)
	studentHandler := studentHttp.NewStudentHandler(studentSvc)

	professors := professorRepo.NewProfessorRepository(db)
	professorSvc := professorService.NewProfessorService(professors)
	professorHandler := professorHttp.NewProfessorHandler(professorSvc)

	projects := projectRepo.NewProjectRepository(db)
	projectSvc := projectService.NewProjectService(projects, meiliSvc)
	projectHandler := projectHttp.NewProjectHandler(projectSvc)

	internships := internshipRepo.NewInternshipRepository(db)
	internshipSvc := internshipService.NewInternshipService(internships, students, fileStorage)
	internshipHandler := internshipHttp.NewInternshipHandler(internshipSvc)

	documentSvc := documentService.NewDocumentService(internships, fileStorage)
	documentHandler := documentHttp.NewDocumentHandler(documentSvc)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadSize

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger("/healthz", "/metrics"))

	s := &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}

	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	authMiddleware := middleware.NewAuthMiddleware(tokens)
	requireAuth := authMiddleware.RequireAuth()

	api := router.Group("/api")

	// Public routes (no auth required)
	api.POST("/registro/secretaria", authHandler.Register)
	api.POST("/login/secretaria", authHandler.Login)

	api.GET("/estudiantes", studentHandler.List)

	api.GET("/profesores/:id", professorHandler.Get)
	api.GET("/profesores/:id/detalle", professorHandler.Detail)

	api.GET("/proyectos", projectHandler.ListPending)
	api.GET("/proyectos/finalizados", projectHandler.ListFinalized)
	api.GET("/proyectos/buscar", projectHandler.Search)
	api.GET("/proyectos/:id", projectHandler.Get)

	api.GET("/practicas/inicial", internshipHandler.List(entity.InternshipInitial))
	api.GET("/practicas/profesional", internshipHandler.List(entity.InternshipProfessional))

	// Protected routes
	protected := api.Group("")
	protected.Use(requireAuth)
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/me", authHandler.Me)

		protected.GET("/profesores", professorHandler.List)
		protected.POST("/profesores", professorHandler.Create)
		protected.PUT("/profesores/:id", professorHandler.Update)
		protected.DELETE("/profesores/:id", professorHandler.Delete)

		protected.POST("/proyectos", projectHandler.Create)
		protected.PUT("/proyectos/:id", projectHandler.Update)
		protected.PUT("/proyectos/:id/finalizar", projectHandler.Finalize)
		protected.DELETE("/proyectos/:id", projectHandler.Delete)

		protected.POST("/practicas/inicial", internshipHandler.Create(entity.InternshipInitial))
		protected.POST("/practicas/profesional", internshipHandler.Create(entity.InternshipProfessional))
		protected.PUT("/practicas/:id", internshipHandler.Update)
		protected.DELETE("/practicas/:id", internshipHandler.Delete)

		protected.POST("/documentos/subir/:tipo/:practica_id", middleware.LimitBody(cfg.MaxUploadSize), documentHandler.Upload)
		protected.GET("/documentos/descargar/:tipo/:practica_id", documentHandler.Download)
		protected.DELETE("/documentos/:tipo/:practica_id", documentHandler.Delete)
	}

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		start := time.Now()
		err = sqlDB.PingContext(ctx)
		metrics.ObserveDBPing(time.Since(start))
	}
	if err != nil {
		logger.Error().Err(err).Msg("database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": response.StatusError, "database": "down"})
		return
	}

	body := gin.H{"database": "up"}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(ctx).Err(); err != nil {
			body["redis"] = "down"
		} else {
			body["redis"] = "up"
		}
	}
	response.Success(c, http.StatusOK, body)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Type", "Authorization", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}))
}
