package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/notification"
	"github.com/BruksfildServices01/barbershop-booking/internal/security"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barbershop-booking/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barbershop-booking/internal/usecase/barber"
	ucCatalog "github.com/BruksfildServices01/barbershop-booking/internal/usecase/catalog"
	ucClient "github.com/BruksfildServices01/barbershop-booking/internal/usecase/client"
	ucInbox "github.com/BruksfildServices01/barbershop-booking/internal/usecase/inbox"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type MessageStore interface {
	ucInbox.Repository
	notification.MessageWriter
}

type AuditStore interface {
	audit.Writer
	audit.Reader
}

// Stores groups the persistence backends. With the memory driver every
// field is the same memstore.Store.
type Stores struct {
	Appointments domain.Repository
	Barbers      ucBarber.Repository
	Clients      ucClient.Repository
	Services     ucCatalog.Repository
	Messages     MessageStore
	Audit        AuditStore
}

type Deps struct {
	Config *config.Config
	Log    *logrus.Logger
	Stores Stores

	Audit   *audit.Dispatcher
	Hasher  security.Hasher
	Catalog ucCatalog.Cache
	Photos  ucBarber.PhotoStorage // nil disables uploads
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	notifier := notification.NewNotifier(d.Stores.Messages, d.Log, loc)
	emails := validators.EmailChecker{CheckDomain: cfg.CheckEmailDomain}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	apRepo := d.Stores.Appointments

	createAppointmentUC := ucAppointment.NewCreateAppointment(apRepo, notifier, d.Audit, d.Log)
	respondAppointmentUC := ucAppointment.NewRespondToAppointment(apRepo, d.Audit, d.Log)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(apRepo, notifier, d.Audit, d.Log)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(apRepo, d.Audit, d.Log)
	calculateTotalUC := ucAppointment.NewRecalculateTotal(apRepo)
	availabilityUC := ucAppointment.NewGetAvailability(apRepo)
	listByWeekUC := ucAppointment.NewListAppointmentsByWeek(apRepo, loc)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(apRepo, loc)
	appointmentQueries := ucAppointment.NewQueries(apRepo)

	barberService := ucBarber.NewService(d.Stores.Barbers, d.Hasher, tokens, d.Photos, d.Audit, d.Log)
	clientService := ucClient.NewService(d.Stores.Clients, emails, d.Log)
	catalogService := ucCatalog.NewService(d.Stores.Services, d.Catalog, d.Log)
	inbox := ucInbox.New(d.Stores.Messages)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(cfg.AppEnv)
	authHandler := handlers.NewAuthHandler(barberService)
	meHandler := handlers.NewMeHandler(barberService)
	barberHandler := handlers.NewBarberHandler(barberService, availabilityUC, loc)
	serviceHandler := handlers.NewServiceHandler(catalogService)
	clientHandler := handlers.NewClientHandler(clientService)
	messageHandler := handlers.NewMessageHandler(inbox)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Stores.Audit, loc)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		respondAppointmentUC,
		cancelAppointmentUC,
		updateAppointmentUC,
		calculateTotalUC,
		listByWeekUC,
		listByMonthUC,
		appointmentQueries,
		loc,
	)

	r.GET("/health", healthHandler.Health)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/status", healthHandler.Status)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)

		api.GET("/barbers", barberHandler.ListActive)
		api.GET("/barbers/:id", barberHandler.Get)
		api.GET("/barbers/:id/availability", barberHandler.Availability)

		api.POST("/appointments", appointmentHandler.Create)
		api.POST("/appointments/calculate", appointmentHandler.Calculate)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.GET("/appointments/client/:email", appointmentHandler.ListByClientEmail)
		api.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)

		api.POST("/clients", clientHandler.Create)
		api.GET("/clients/exists/:email", clientHandler.Exists)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.PUT("/me/photo", meHandler.UploadPhoto)

			// APPOINTMENTS
			secured.GET("/me/appointments/pending", appointmentHandler.ListPending)
			secured.GET("/me/appointments/week", appointmentHandler.ListByWeek)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/respond", appointmentHandler.Respond)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.CancelMine)
			secured.PATCH("/me/appointments/:id", appointmentHandler.UpdateMine)

			secured.GET("/appointments", appointmentHandler.ListAll)
			secured.GET("/appointments/status/:status", appointmentHandler.ListByStatus)
			secured.GET("/appointments/:id/messages", messageHandler.ListForAppointment)

			// MESSAGES
			secured.GET("/me/messages", messageHandler.List)
			secured.GET("/me/messages/unread-count", messageHandler.UnreadCount)
			secured.PATCH("/me/messages/read-all", messageHandler.MarkAllRead)
			secured.PATCH("/me/messages/:id/read", messageHandler.MarkRead)

			// CATALOG
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			// CLIENTS
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/email/:email", clientHandler.GetByEmail)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.PATCH("/barbers/:id/active", barberHandler.SetActive)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
