package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dzoc98/barbersite/internal/config"
	"github.com/Dzoc98/barbersite/internal/handlers"
	"github.com/Dzoc98/barbersite/internal/middleware"
	"github.com/Dzoc98/barbersite/internal/repository"
	"github.com/Dzoc98/barbersite/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	clientDetailRepo := repository.NewClientDetailRepository(db)

	bookingService := services.NewBookingService(db, appointmentRepo, serviceRepo, userRepo)

	authHandler := handlers.NewAuthHandler(db, userRepo, cfg.JWTSecret)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(bookingService)
	appointmentHandler := handlers.NewAppointmentHandler(bookingService)
	userHandler := handlers.NewUserHandler(userRepo)
	clientDetailHandler := handlers.NewClientDetailHandler(clientDetailRepo, userRepo)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	api.Get("/services", serviceHandler.ListServices)
	api.Get("/services/:id", serviceHandler.GetService)
	api.Get("/available-slots", availabilityHandler.GetAvailableSlots)

	authRequired := middleware.AuthRequired(cfg.JWTSecret)
	adminRequired := middleware.AdminRequired()

	appointments := api.Group("/appointments", authRequired)
	appointments.Get("", appointmentHandler.List)
	appointments.Post("", appointmentHandler.Book)
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Put("/:id", adminRequired, appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Delete)

	users := api.Group("/users", authRequired, adminRequired)
	users.Get("", userHandler.ListUsers)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

	clientDetails := api.Group("/client-details", authRequired, adminRequired)
	clientDetails.Get("/:userId", clientDetailHandler.GetClientDetail)
	clientDetails.Put("/:userId", clientDetailHandler.UpdateClientDetail)
}
