package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/controllers"
	"github.com/adityanashtech/eventxbackendlatest/internal/delivery/http/middleware"
	"github.com/adityanashtech/eventxbackendlatest/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	userController *controllers.UserController,
	userEventController *controllers.UserEventController,
	adminController *controllers.AdminController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := middleware.RequireAdmin()

	// Events
	mux.HandleFunc("POST /events/create_event", auth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/search", auth(eventController.SearchEvents))
	mux.HandleFunc("GET /events/find", auth(eventController.FindEvents))
	mux.HandleFunc("GET /events/status", auth(eventController.GetEventsByStatus))
	mux.HandleFunc("GET /events/userEventList/{userId}", auth(eventController.GetUserEvents))
	mux.HandleFunc("GET /events/types/genre", auth(eventController.GetEventTypes))
	mux.HandleFunc("GET /events/creator/{userId}", auth(eventController.GetEventsByCreator))
	mux.HandleFunc("GET /events/{id}", auth(eventController.GetEventByID))
	mux.HandleFunc("GET /events", auth(eventController.ListEvents))
	mux.HandleFunc("PATCH /events/{id}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{id}", auth(eventController.DeleteEventByID))

	// Users
	mux.HandleFunc("POST /user/signup", userController.Signup)
	mux.HandleFunc("POST /user/login", userController.Login)
	mux.HandleFunc("POST /user/forgot-password", userController.ForgotPassword)
	mux.HandleFunc("POST /user/reset-password", userController.ResetPassword)
	mux.HandleFunc("GET /user", auth(userController.GetAllUsers))
	mux.HandleFunc("GET /user/{id}", auth(userController.GetUserByID))
	mux.HandleFunc("PATCH /user/{id}", auth(userController.UpdateUserProfile))
	mux.HandleFunc("DELETE /user/{id}", auth(userController.DeleteUser))

	// Registrations
	mux.HandleFunc("POST /user-event/register", auth(userEventController.RegisterUserToEvent))
	mux.HandleFunc("GET /user-event/{eventId}/users", auth(userEventController.GetEventUsers))
	mux.HandleFunc("GET /user-event/user/{userId}", auth(userEventController.GetUserRegisteredEvents))

	// Admin
	mux.HandleFunc("GET /admin/events", auth(admin(adminController.GetEventsByType)))
	mux.HandleFunc("POST /admin/update-status", auth(admin(adminController.UpdateStatusEvent)))
	mux.HandleFunc("PATCH /admin/{id}/approval", auth(admin(adminController.UpdateApproval)))
	mux.HandleFunc("GET /admin/stats/users", auth(admin(adminController.GetUserCreationStats)))
	mux.HandleFunc("GET /admin/stats/event-types", auth(admin(adminController.GetEventTypeDistribution)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
