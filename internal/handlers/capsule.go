package handlers

import (
	"errors"
	"net/http"
	"time"

	"Capsule/internal/auth"
	dom "Capsule/internal/domain"
	"Capsule/internal/dto"
	"Capsule/internal/service"
	"Capsule/internal/timeutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CapsuleHandler struct {
	svc *service.CapsuleService
}

func NewCapsuleHandler(svc *service.CapsuleService) *CapsuleHandler {
	return &CapsuleHandler{svc: svc}
}

// Create godoc
// @Summary      Create a capsule
// @Tags         capsules
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateCapsuleRequest  true  "Capsule body"
// @Success      201   {object}  dto.CapsuleResponse
// @Failure      400   {object}  map[string]string
// @Router       /capsules [post]
func (h *CapsuleHandler) Create(c *gin.Context) {
	var req dto.CreateCapsuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	in := service.CreateCapsuleInput{
		Title:       req.Title,
		Description: req.Description,
		UnlockDate:  req.UnlockDate.Ptr(),
		IsPublic:    isPublic,
	}
	for _, g := range req.Goals {
		in.Goals = append(in.Goals, service.GoalInput{Text: g.Text, ExpectedDate: g.ExpectedDate, Status: g.Status})
	}
	if req.Reminder != nil {
		in.Reminder = &service.ReminderInput{
			Type:       req.Reminder.Type,
			CustomDays: req.Reminder.CustomDays,
			Enabled:    req.Reminder.Enabled,
		}
	}

	userID := auth.UserIDFromContext(c)
	capsule, err := h.svc.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, capsuleToResponse(capsule, time.Now().UTC(), userID))
}

// ListPublic godoc
// @Summary      List public capsules
// @Tags         capsules
// @Produce      json
// @Param        sort  query     string  false  "latest (default) or trending"
// @Success      200   {object}  dto.ListCapsulesResponse
// @Failure      500   {object}  map[string]string
// @Router       /capsules [get]
func (h *CapsuleHandler) ListPublic(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.ListPublic(c.Request.Context(), c.DefaultQuery("sort", service.SortLatest), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListCapsulesResponse{Items: capsulesToResponses(list, userID)})
}

// ListMine godoc
// @Summary      List own capsules
// @Tags         capsules
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListCapsulesResponse
// @Failure      500  {object}  map[string]string
// @Router       /capsules/mine [get]
func (h *CapsuleHandler) ListMine(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListCapsulesResponse{Items: capsulesToResponses(list, userID)})
}

// GetByID godoc
// @Summary      Get a capsule by ID
// @Tags         capsules
// @Produce      json
// @Param        id   path      string  true  "Capsule ID"
// @Success      200  {object}  dto.CapsuleResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /capsules/{id} [get]
func (h *CapsuleHandler) GetByID(c *gin.Context) {
	id, ok := parseCapsuleID(c)
	if !ok {
		return
	}
	userID := auth.UserIDFromContext(c)
	capsule, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, capsuleToResponse(capsule, time.Now().UTC(), userID))
}

// Update godoc
// @Summary      Update a capsule (owner only)
// @Tags         capsules
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Capsule ID"
// @Param        body  body      dto.UpdateCapsuleRequest  true  "Partial update"
// @Success      200   {object}  dto.CapsuleResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /capsules/{id} [patch]
func (h *CapsuleHandler) Update(c *gin.Context) {
	id, ok := parseCapsuleID(c)
	if !ok {
		return
	}
	var req dto.UpdateCapsuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.UpdateCapsuleInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.UnlockDate != nil {
		in.UnlockDate = req.UnlockDate.Ptr()
	}
	userID := auth.UserIDFromContext(c)
	capsule, err := h.svc.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, capsuleToResponse(capsule, time.Now().UTC(), userID))
}

// Delete godoc
// @Summary      Delete a capsule (owner only)
// @Tags         capsules
// @Security     CookieAuth
// @Param        id   path  string  true  "Capsule ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /capsules/{id} [delete]
func (h *CapsuleHandler) Delete(c *gin.Context) {
	id, ok := parseCapsuleID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleLike godoc
// @Summary      Like or unlike a capsule
// @Tags         capsules
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Capsule ID"
// @Success      200  {object}  dto.LikeResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /capsules/{id}/like [post]
func (h *CapsuleHandler) ToggleLike(c *gin.Context) {
	id, ok := parseCapsuleID(c)
	if !ok {
		return
	}
	liked, count, err := h.svc.ToggleLike(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked, LikeCount: count})
}

// LikeStatus godoc
// @Summary      Get like state and count for a capsule
// @Tags         capsules
// @Produce      json
// @Param        id   path      string  true  "Capsule ID"
// @Success      200  {object}  dto.LikeResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /capsules/{id}/like [get]
func (h *CapsuleHandler) LikeStatus(c *gin.Context) {
	id, ok := parseCapsuleID(c)
	if !ok {
		return
	}
	liked, count, err := h.svc.LikeStatus(c.Request.Context(), auth.UserIDFromContext(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked, LikeCount: count})
}

func parseCapsuleID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func capsuleToResponse(capsule dom.Capsule, now time.Time, requesterID int64) dto.CapsuleResponse {
	resp := dto.CapsuleResponse{
		ID:          capsule.ID.String(),
		Title:       capsule.Title,
		Description: capsule.Description,
		UnlockDate:  capsule.UnlockDate,
		UnlockDay:   timeutil.FormatDate(capsule.UnlockDate),
		Countdown:   timeutil.Countdown(capsule.UnlockDate, now),
		Visibility:  capsule.Visibility(),
		Status:      capsule.Status,
		OwnerID:     capsule.UserID,
		OwnerName:   capsule.OwnerName,
		LikeCount:   capsule.LikeCount,
		Liked:       capsule.Liked,
		CreatedAt:   capsule.CreatedAt,
	}
	// Sealed content stays sealed: non-owners see only metadata and the
	// countdown until the unlock date passes.
	if capsule.Status == dom.StatusLocked && requesterID != capsule.UserID {
		resp.Description = ""
		return resp
	}
	for _, g := range capsule.Goals {
		resp.Goals = append(resp.Goals, dto.GoalResponse{
			ID:           g.ID.String(),
			Text:         g.Text,
			ExpectedDate: g.ExpectedDate,
			Status:       g.Status,
		})
	}
	if capsule.Reminder != nil {
		resp.Reminder = &dto.ReminderResponse{
			Type:       capsule.Reminder.Type,
			CustomDays: capsule.Reminder.CustomDays,
			Enabled:    capsule.Reminder.Enabled,
			NextSend:   capsule.Reminder.NextSend,
			LastSent:   capsule.Reminder.LastSent,
		}
	}
	return resp
}

func capsulesToResponses(list []dom.Capsule, requesterID int64) []dto.CapsuleResponse {
	now := time.Now().UTC()
	out := make([]dto.CapsuleResponse, len(list))
	for i := range list {
		out[i] = capsuleToResponse(list[i], now, requesterID)
	}
	return out
}
