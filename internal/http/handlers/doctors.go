package handlers

import (
	"net/http"

	"github.com/clinicavoz/voice-scheduler/internal/schedule"
	"github.com/clinicavoz/voice-scheduler/pkg/logging"
)

// DoctorsHandler serves the clinic roster.
type DoctorsHandler struct {
	store  *schedule.Store
	logger *logging.Logger
}

// NewDoctorsHandler creates a new roster handler.
func NewDoctorsHandler(store *schedule.Store, logger *logging.Logger) *DoctorsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DoctorsHandler{store: store, logger: logger}
}

// DoctorResponse describes one doctor on the roster.
type DoctorResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Days      []string `json:"days"`
	OpenHour  int      `json:"open_hour"`
	CloseHour int      `json:"close_hour"`
}

// ListDoctors returns the roster in display order.
// GET /v1/doctors
func (h *DoctorsHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.store.ListDoctors()
	out := make([]DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		days := make([]string, 0, len(d.Days))
		for _, day := range d.Days {
			days = append(days, day.String())
		}
		out = append(out, DoctorResponse{
			ID:        d.ID,
			Name:      d.DisplayName,
			Specialty: d.Specialty,
			Days:      days,
			OpenHour:  d.OpenHour,
			CloseHour: d.CloseHour,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"doctors": out})
}
