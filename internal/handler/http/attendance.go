package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peoplehub/hrops-backend-go/internal/domain/attendance"
	"github.com/peoplehub/hrops-backend-go/internal/handler/http/response"
	"github.com/peoplehub/hrops-backend-go/internal/pkg/jwt"
)

type AttendanceHandler interface {
	MarkEntry(w http.ResponseWriter, r *http.Request)
	MarkExit(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	ListCorrections(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// MarkEntry implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkEntry(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode mark entry request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry marked", result)
}

// MarkExit implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkExit(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkExitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode mark exit request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkExit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exit marked", result)
}

// GetRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	date := chi.URLParam(r, "date")

	result, err := h.attendanceService.GetRecord(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter := attendance.RecordFilter{
		EmployeeID: chi.URLParam(r, "employeeID"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}

	result, err := h.attendanceService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Correct implements AttendanceHandler.
func (h *attendanceHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode correction request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Corrections attribute the change to the authenticated actor.
	actorID, err := jwt.ActorID(r.Context())
	if err != nil {
		response.Unauthorized(w, "missing actor identity")
		return
	}
	req.CorrectedBy = actorID

	result, err := h.attendanceService.Correct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Correction applied", result)
}

// ListCorrections implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListCorrections(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")

	result, err := h.attendanceService.ListCorrections(r.Context(), recordID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
