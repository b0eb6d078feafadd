package delete_customer_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
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

// Handle DELETE /api/appointments/customer/{customerId}
// Отвечает 204 и тогда, когда у клиента не было записей.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := handlers.PathString(r, "customerId")

	if err := h.service.DeleteAllForCustomer(r.Context(), customerID); err != nil {
		h.logger.Error("DELETE /appointments/customer/{customerId} - Failed to delete appointments: customer_id=%s, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /appointments/customer/{customerId} - Appointments deleted: customer_id=%s", customerID)
	handlers.RespondNoContent(w)
}
