package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/SafwanAmin-BracU/dhaka-drive/internal/api"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/auth"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/repository"
	"github.com/SafwanAmin-BracU/dhaka-drive/internal/service"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	parkingRepo := repository.NewParkingRepository(db)
	requestRepo := repository.NewServiceRequestRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	trafficRepo := repository.NewTrafficRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	jobRepo := repository.NewJobRepository(db)

	notifier := service.NewNotifyService()
	authSvc := service.NewAuthService(userRepo)
	bookingSvc := service.NewBookingService(parkingRepo)
	requestSvc := service.NewRequestService(requestRepo, notifier)
	providerSvc := service.NewProviderService(providerRepo)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, providerRepo)
	trafficSvc := service.NewTrafficService(trafficRepo)
	feedbackSvc := service.NewFeedbackService(feedbackRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	parkingHandler := api.NewParkingHandler(bookingSvc)
	servicesHandler := api.NewServicesHandler(providerSvc, requestSvc, appointmentSvc)
	trafficHandler := api.NewTrafficHandler(trafficSvc, feedbackSvc)
	adminHandler := api.NewAdminHandler(requestSvc, trafficSvc, feedbackSvc, bookingSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/parking/spots", parkingHandler.ListSpots).Methods("GET")
	r.HandleFunc("/api/providers", servicesHandler.ListProviders).Methods("GET")
	r.HandleFunc("/api/providers/emergency", servicesHandler.EmergencyContacts).Methods("GET")
	r.HandleFunc("/api/traffic/reports", trafficHandler.ListReports).Methods("GET")
	r.HandleFunc("/api/traffic/summary", trafficHandler.Summary).Methods("GET")
	r.HandleFunc("/api/traffic/news", trafficHandler.News).Methods("GET")
	r.HandleFunc("/api/feedback", trafficHandler.SubmitFeedback).Methods("POST")

	// User endpoints (session required)
	user := r.PathPrefix("/api").Subrouter()
	user.Use(auth.SessionMiddleware)
	user.HandleFunc("/parking/spots", parkingHandler.AddSpot).Methods("POST")
	user.HandleFunc("/parking/book/{spotId}", parkingHandler.Book).Methods("POST")
	user.HandleFunc("/parking/history", parkingHandler.History).Methods("GET")
	user.HandleFunc("/parking/bookings/{id}/cancel", parkingHandler.CancelBooking).Methods("POST")
	user.HandleFunc("/services/request", servicesHandler.CreateRequest).Methods("POST")
	user.HandleFunc("/services/requests", servicesHandler.RequestHistory).Methods("GET")
	user.HandleFunc("/services/book/{providerId}", servicesHandler.BookAppointment).Methods("POST")
	user.HandleFunc("/services/history", servicesHandler.AppointmentHistory).Methods("GET")
	user.HandleFunc("/services/appointments/{id}/cancel", servicesHandler.CancelAppointment).Methods("POST")
	user.HandleFunc("/services/save", servicesHandler.SaveToggle).Methods("POST")
	user.HandleFunc("/services/save/{providerId}", servicesHandler.SaveStatus).Methods("GET")
	user.HandleFunc("/services/saved", servicesHandler.ListSaved).Methods("GET")
	user.HandleFunc("/traffic/reports", trafficHandler.SubmitReport).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminMiddleware)
	admin.HandleFunc("/requests", adminHandler.ListPendingRequests).Methods("GET")
	admin.HandleFunc("/requests/{id}", adminHandler.GetRequest).Methods("GET")
	admin.HandleFunc("/requests/{id}/approve", adminHandler.ApproveRequest).Methods("POST")
	admin.HandleFunc("/requests/{id}/reject", adminHandler.RejectRequest).Methods("POST")
	admin.HandleFunc("/requests/{id}/notes", adminHandler.UpdateRequestNotes).Methods("PUT")
	admin.HandleFunc("/parking", adminHandler.ListParkingSpots).Methods("GET")
	admin.HandleFunc("/parking/{id}", adminHandler.UpdateParkingSpot).Methods("PUT")
	admin.HandleFunc("/parking/{id}", adminHandler.DeleteParkingSpot).Methods("DELETE")
	admin.HandleFunc("/news", adminHandler.CreateNews).Methods("POST")
	admin.HandleFunc("/traffic", adminHandler.ListPendingTrafficReports).Methods("GET")
	admin.HandleFunc("/traffic/{id}/verify", adminHandler.VerifyTrafficReport).Methods("POST")
	admin.HandleFunc("/traffic/{id}", adminHandler.RejectTrafficReport).Methods("DELETE")
	admin.HandleFunc("/analytics", adminHandler.Analytics).Methods("GET")
	admin.HandleFunc("/feedback", adminHandler.ListFeedback).Methods("GET")
	admin.HandleFunc("/feedback/{id}/read", adminHandler.MarkFeedbackRead).Methods("POST")

	c := cron.New()
	c.AddFunc("@every 10m", func() {
		if err := jobSvc.CompleteExpiredBookings(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
		if err := jobSvc.CompleteExpiredAppointments(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
