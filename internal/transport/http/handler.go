package httptransport

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"async-job-service/internal/entity"
	"async-job-service/internal/queue"
	"async-job-service/internal/service"
	"async-job-service/internal/store"
)

type Handler struct {
	jobSvc *service.JobService
}

func NewHandler(jobSvc *service.JobService) *Handler {
	return &Handler{jobSvc: jobSvc}
}

type jobResp struct {
	ID        string          `json:"id"`
	State     entity.JobState `json:"state"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func toJobResp(j *entity.Job) jobResp {
	return jobResp{
		ID:        j.ID.String(),
		State:     j.State,
		CreatedAt: j.CreatedAt.Format(time.RFC3339),
		UpdatedAt: j.UpdatedAt.Format(time.RFC3339),
	}
}

// SubmitJob godoc
// @Summary Submit a new job
// @Description Creates a pending job record, enqueues it for background execution and returns immediately.
// @Tags jobs
// @Produce json
// @Success 201 {object} jobResp
// @Failure 503 {object} apiError
// @Router /jobs [post]
func (h *Handler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	j, err := h.jobSvc.Submit(r.Context())
	if err != nil {
		if errors.Is(err, queue.ErrUnavailable) {
			writeErr(w, http.StatusServiceUnavailable, "queue unavailable")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toJobResp(j))
}

// GetJob godoc
// @Summary Get job state by id
// @Description Poll this endpoint until the state is terminal ("complete" or "failed").
// @Tags jobs
// @Produce json
// @Param id path string true "job id (uuid)"
// @Success 200 {object} jobResp
// @Failure 400 {object} apiError
// @Failure 404 {object} apiError
// @Router /jobs/{id} [get]
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}

	j, err := h.jobSvc.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "job not found")
			return
		}
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toJobResp(j))
}
