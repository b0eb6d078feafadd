package get_customer_appointments

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

// Handle GET /api/appointments/customer/{customerId}
// Неизвестный клиент получает пустой список.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID := handlers.PathString(r, "customerId")

	list, err := h.service.GetByCustomerID(r.Context(), customerID)
	if err != nil {
		h.logger.Error("GET /appointments/customer/{customerId} - Failed to list appointments: customer_id=%s, error=%v",
			customerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments/customer/{customerId} - Appointments retrieved successfully: customer_id=%s, count=%d",
		customerID, len(list))
	handlers.RespondJSON(w, http.StatusOK, list)
}
