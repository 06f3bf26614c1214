package v1

import (
	"log"

	"talent-screen/internal/analysis"
	"talent-screen/internal/config"
	"talent-screen/internal/database"
	"talent-screen/internal/delivery/http/handler"
	"talent-screen/internal/delivery/http/middleware"
	"talent-screen/internal/domain/user"
	"talent-screen/internal/infrastructure/cache"
	"talent-screen/internal/pkg/jwt"
	"talent-screen/internal/repository"
	"talent-screen/internal/usecase"
	"talent-screen/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Provider analysis.Provider
	Hub      *ws.Hub
	Logger   *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	profileRepo := repository.NewPostgresCandidateRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	appRepo := repository.NewPostgresApplicationRepository(deps.DB)
	resumeRepo := repository.NewPostgresResumeRepository(deps.DB)

	notifier := ws.NewNotifier(deps.Hub)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo)
	jobUC := usecase.NewJobUsecase(jobRepo)
	appUC := usecase.NewApplicationUsecase(appRepo, jobRepo, resumeRepo)
	resumeUC := usecase.NewResumeUsecase(resumeRepo)
	screeningUC := usecase.NewScreeningUsecase(
		jobRepo, appRepo, profileRepo, resumeRepo,
		deps.Provider, deps.Cache, notifier,
		deps.Config.Screening, deps.Logger,
	)
	talentUC := usecase.NewTalentPoolUsecase(profileRepo, jobRepo, deps.Cache, deps.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	profileHandler := handler.NewProfileHandler(profileUC)
	jobHandler := handler.NewJobHandler(jobUC)
	appHandler := handler.NewApplicationHandler(appUC)
	resumeHandler := handler.NewResumeHandler(resumeUC)
	screeningHandler := handler.NewScreeningHandler(screeningUC)
	talentHandler := handler.NewTalentPoolHandler(talentUC)
	wsHandler := ws.NewHandler(deps.Hub, deps.Logger)

	authHandler.RegisterRoutes(r.Group("/auth"))

	protected := r.Group("", authMw.Middleware())

	userHandler.RegisterRoutes(protected.Group("/users"))
	jobHandler.RegisterPublicRoutes(protected.Group("/jobs"))

	seekerOnly := middleware.RequireRoles(user.RoleJobSeeker)
	profileHandler.RegisterRoutes(protected.Group("/profiles", seekerOnly))
	resumeHandler.RegisterRoutes(protected.Group("/resumes", seekerOnly))
	appHandler.RegisterSeekerRoutes(protected.Group("/jobs", seekerOnly))

	recruiterOnly := middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin)
	recruiterJobs := protected.Group("/jobs", recruiterOnly)
	recruiterApps := protected.Group("/applications", recruiterOnly)
	jobHandler.RegisterRecruiterRoutes(recruiterJobs)
	appHandler.RegisterRecruiterRoutes(recruiterJobs, recruiterApps)
	screeningHandler.RegisterRoutes(recruiterJobs, recruiterApps)
	talentHandler.RegisterRoutes(protected.Group("/talent-pool", recruiterOnly))

	protected.Get("/ws/notifications", wsHandler.HandleNotifications, recruiterOnly)
}
