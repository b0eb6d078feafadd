package delete_customer_appointment

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

// Handle DELETE /api/appointments/customer/{customerId}/appointment/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := handlers.PathString(r, "customerId")

	id, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("DELETE /appointments/customer/{customerId}/appointment/{appointmentId} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.DeleteForCustomer(r.Context(), customerID, id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/customer/{customerId}/appointment/{appointmentId} - Appointment not found: customer_id=%s, appointment_id=%d",
				customerID, id)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /appointments/customer/{customerId}/appointment/{appointmentId} - Failed to delete appointment: customer_id=%s, appointment_id=%d, error=%v",
				customerID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/customer/{customerId}/appointment/{appointmentId} - Appointment deleted successfully: customer_id=%s, appointment_id=%d",
		customerID, id)
	handlers.RespondNoContent(w)
}
