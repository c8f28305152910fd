package router

import (
	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/internal/container"
	pginfra "github.com/bilguun-dev/courseware-api/internal/infrastructure/postgres"
	handlers "github.com/bilguun-dev/courseware-api/internal/interface/http"
	"github.com/bilguun-dev/courseware-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them. Called once during startup, after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	courses := pginfra.NewCourseRepository(pool)
	episodes := pginfra.NewEpisodeRepository(pool)
	enrollments := pginfra.NewEnrollmentRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), container.GetRedis(), container.GetRabbitPub(), cfg, logger)
	catalogSvc := application.NewCatalogService(courses, episodes, enrollments, container.GetES(), cfg.ESCoursesIndex)
	enrollSvc := application.NewEnrollmentService(courses, enrollments, application.SimulatedPayment{}, logger)
	courseSvc := application.NewCourseService(courses, episodes, container.GetGCS(), cfg.GCSBucket, container.GetES(), cfg.ESCoursesIndex, logger)

	authH := handlers.NewAuthHandler(authSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	catalogH := handlers.NewCatalogHandler(catalogSvc, logger)
	enrollH := handlers.NewEnrollmentHandler(enrollSvc, logger)
	adminCourseH := handlers.NewAdminCourseHandler(courseSvc, logger)
	adminEpisodeH := handlers.NewAdminEpisodeHandler(courseSvc, logger)
	adminUserH := handlers.NewAdminUserHandler(authSvc, logger)
	uploadH := handlers.NewUploadHandler(courseSvc, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(authH, jwt))
	r.Add(modules.NewCatalogModule(catalogH, jwt))
	r.Add(modules.NewEnrollmentModule(enrollH, jwt))
	r.Add(modules.NewAdminModule(adminCourseH, adminEpisodeH, adminUserH, uploadH, jwt))
}
