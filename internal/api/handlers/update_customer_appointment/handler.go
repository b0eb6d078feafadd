package update_customer_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись клиента не найдена"
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

// Handle PUT /api/appointments/customer/{customerId}/appointment/{appointmentId}
// customerId из тела запроса игнорируется, запись остаётся у клиента из пути.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := handlers.PathString(r, "customerId")

	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointments/customer/{customerId}/appointment/{appointmentId} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	input, err := handlers.DecodeAppointment(r)
	if err != nil {
		h.logger.Warn("PUT /appointments/customer/{customerId}/appointment/{appointmentId} - Invalid request: customer_id=%s, appointment_id=%d, error=%v",
			customerID, id, err)
		handlers.RespondRequestError(w, err)
		return
	}

	appointment, err := h.service.UpdateForCustomer(r.Context(), customerID, id, input)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/customer/{customerId}/appointment/{appointmentId} - Appointment not found: customer_id=%s, appointment_id=%d",
				customerID, id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PUT /appointments/customer/{customerId}/appointment/{appointmentId} - Rejected by store: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /appointments/customer/{customerId}/appointment/{appointmentId} - Failed to update appointment: customer_id=%s, appointment_id=%d, error=%v",
				customerID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/customer/{customerId}/appointment/{appointmentId} - Appointment updated successfully: customer_id=%s, appointment_id=%d",
		customerID, id)
	handlers.RespondJSON(w, http.StatusOK, appointment)
}
