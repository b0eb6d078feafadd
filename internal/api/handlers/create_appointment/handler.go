package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	input, err := handlers.DecodeAppointment(r)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid request: %v", err)
		handlers.RespondRequestError(w, err)
		return
	}

	appointment, err := h.service.Create(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Rejected by store: customer_id=%s, error=%v", input.CustomerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%s, error=%v", input.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, customer_id=%s",
		appointment.ID, appointment.CustomerID)
	handlers.RespondJSON(w, http.StatusCreated, appointment)
}
