package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the self-service booking endpoints. The group
// is expected to carry the auth middleware that sets user_id and role.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.PUT("/reservations/:id", h.Update)
	rg.DELETE("/reservations/:id", h.Cancel)
	rg.GET("/reservations", h.ListMine)
	rg.GET("/rooms/:id/reservations/day", h.DayView)
	rg.GET("/rooms/:id/reservations/month", h.MonthCounts)
}

// RegisterAdminRoutes mounts the proxy-booking flow: same engine, no
// ownership checks, requester taken from the request body.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.AdminCreate)
	rg.PUT("/reservations/:id", h.AdminUpdate)
	rg.DELETE("/reservations/:id", h.AdminCancel)
	rg.GET("/rooms/:id/reservations", h.AdminListRoom)
}

func (h *Handler) Create(c *gin.Context) {
	h.create(c, c.GetInt64("user_id"))
}

// AdminCreate books on behalf of the user named in the body.
func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if req.UserID == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required for proxy booking")
		return
	}
	h.createFor(c, req, req.UserID)
}

func (h *Handler) create(c *gin.Context, requesterID int64) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.createFor(c, req, requesterID)
}

func (h *Handler) createFor(c *gin.Context, req CreateReservationRequest, requesterID int64) {
	start, err := req.start()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.Create(c.Request.Context(), CreateParams{
		RoomID:          req.RoomID,
		RequesterID:     requesterID,
		Title:           req.Title,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": res})
}

func (h *Handler) Update(c *gin.Context) {
	requesterID := c.GetInt64("user_id")
	h.update(c, &requesterID)
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	h.update(c, nil)
}

func (h *Handler) update(c *gin.Context, requesterID *int64) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	start, err := req.start()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	res, err := h.service.Update(c.Request.Context(), UpdateParams{
		ReservationID:   id,
		RoomID:          req.RoomID,
		RequesterID:     requesterID,
		Title:           req.Title,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	requesterID := c.GetInt64("user_id")
	if err := h.service.Cancel(c.Request.Context(), id, &requesterID); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"canceled": true})
}

func (h *Handler) AdminCancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), id, nil); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"canceled": true})
}

func (h *Handler) ListMine(c *gin.Context) {
	userID := c.GetInt64("user_id")
	page, size := pageParams(c)

	items, meta, err := h.service.ListMine(c.Request.Context(), userID, c.Query("q"), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "page": meta})
}

func (h *Handler) AdminListRoom(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}
	page, size := pageParams(c)

	items, meta, err := h.service.ListForRoom(c.Request.Context(), roomID, c.Query("q"), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items, "page": meta})
}

func (h *Handler) DayView(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD")
		return
	}

	view, err := h.service.DayView(c.Request.Context(), roomID, date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) MonthCounts(c *gin.Context) {
	roomID, ok := pathID(c)
	if !ok {
		return
	}
	month, err := time.Parse("2006-01", c.Query("month"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "month must be YYYY-MM")
		return
	}

	counts, err := h.service.MonthCounts(c.Request.Context(), roomID, month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

// respondError maps engine errors onto the JSON envelope. Conflicts are
// a routine outcome and are returned without feeding the error logger.
func (h *Handler) respondError(c *gin.Context, err error) {
	var rej *reservation.RejectedError
	if errors.As(err, &rej) {
		response.Error(c, http.StatusBadRequest, string(rej.Reason), rej.Message)
		return
	}

	var conflict *reservation.ConflictError
	if errors.As(err, &conflict) {
		details := gin.H{
			"reservation_id": conflict.ReservationID,
			"start_time":     conflict.Start,
			"end_time":       conflict.End,
		}
		response.ErrorWithDetails(c, http.StatusConflict, "RESERVATION_CONFLICT", conflict.Error(), details)
		return
	}

	switch {
	case errors.Is(err, reservation.ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, reservation.ErrReservationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	return page, size
}
