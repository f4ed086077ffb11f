package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/medisync-dev/hospital-manager/backend/internal/config"
	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	"github.com/medisync-dev/hospital-manager/backend/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff})).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/branches", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateBranch)
			r.Get("/", h.GetAllBranches)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.branchInfo)
				r.Get("/", h.GetBranch)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateBranch)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteBranch)
			})
		})

		r.Route("/patients", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff})).Post("/", h.CreatePatientProfile)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff})).Get("/", h.GetAllPatientProfiles)
			r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RolePatient})).Get("/me", h.GetMyPatientProfile)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.patientProfile)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff, domain.RoleDoctor})).Get("/", h.GetPatientProfile)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff})).Patch("/", h.UpdatePatientProfile)
			})
		})

		r.Route("/doctors", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateDoctorProfile)
			r.Get("/", h.GetAllDoctorProfiles)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.doctorProfile)
				r.Get("/", h.GetDoctorProfile)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateDoctorProfile)
				r.Get("/weekly-schedule", h.GetDoctorWeeklySchedule)
				r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleDoctor})).Put("/weekly-schedule", h.ReplaceDoctorWeeklySchedule)
				r.Get("/available-slots", h.GetDoctorAvailableSlots)
			})
		})

		r.Route("/overrides", func(r chi.Router) {
			r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RoleDoctor})).Post("/", h.CreateOverride)
			r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RoleDoctor})).Get("/mine", h.GetMyOverrides)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/", h.GetOverridesByStatus)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.overrideInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/status", h.UpdateOverrideStatus)
			})
		})

		r.Route("/appointments", func(r chi.Router) {
			r.With(h.myInfo).With(h.RequiredRole([]domain.Role{domain.RolePatient})).Post("/", h.CreateAppointment)
			r.With(h.myInfo).Get("/", h.GetAppointments)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Get("/export", h.ExportAppointments)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.appointmentInfo)
				r.With(h.myInfo).Get("/", h.GetAppointment)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleStaff})).Patch("/status", h.UpdateAppointmentStatus)
			})
		})
	})
}
