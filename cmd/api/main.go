package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"meetingroom/internal/config"
	"meetingroom/internal/database"
	catalogrepo "meetingroom/internal/domain/catalog"
	reservationrepo "meetingroom/internal/domain/reservation"
	"meetingroom/internal/middleware"
	"meetingroom/internal/modules/auth"
	"meetingroom/internal/modules/catalog"
	"meetingroom/internal/modules/reservation"
	jwtsvc "meetingroom/internal/pkg/jwt"
	"meetingroom/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := catalogrepo.NewRoomRepository(db)
	reservationRepo := reservationrepo.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(roomRepo, nil)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(roomRepo, reservationRepo, nil)
	reservationHandler := reservation.NewHandler(reservationService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			catalogHandler.RegisterRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
		}

		// administrative proxy flow
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			reservationHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
