package counselling

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"CareerGo/internal/api"
	"CareerGo/internal/apperr"
	"CareerGo/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func sessionIDParam(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func parseDate(value string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

func (h *Handler) Book(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}
	institutionID, err := primitive.ObjectIDFromHex(req.InstitutionID)
	if err != nil {
		return api.BadRequest(c, "Invalid institution id")
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return api.BadRequest(c, "Invalid date")
	}

	session, err := h.service.Book(c.Request().Context(), callerID, institutionID, date, req.TimeOfDay, req.Purpose)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Counselling session booked successfully", session)
}

func (h *Handler) Decide(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid session id")
	}

	var req DecisionRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	session, err := h.service.Decide(c.Request().Context(), callerID, sessionID, *req.Approval, req.DisapprovalReason)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Counselling session updated successfully", session)
}

func (h *Handler) GetAll(c echo.Context) error {
	if _, err := auth.CallerID(c); err != nil {
		return api.Fail(c, err)
	}

	var userID, institutionID *primitive.ObjectID
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return api.BadRequest(c, "Invalid user id")
		}
		userID = &id
	}
	if raw := c.QueryParam("institutionId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return api.BadRequest(c, "Invalid institution id")
		}
		institutionID = &id
	}

	sessions, err := h.service.GetAll(c.Request().Context(), userID, institutionID, c.QueryParam("status"))
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"sessions": sessions})
}

func (h *Handler) Cancel(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid session id")
	}

	if err := h.service.Cancel(c.Request().Context(), callerID, sessionID); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Counselling session cancelled successfully", nil)
}

func (h *Handler) Reschedule(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid session id")
	}

	var req RescheduleRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}
	date, ok := parseDate(req.Date)
	if !ok {
		return api.BadRequest(c, "Invalid date")
	}

	session, err := h.service.Reschedule(c.Request().Context(), callerID, sessionID, date, req.TimeOfDay)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Counselling session rescheduled successfully", session)
}

func (h *Handler) Complete(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return api.Fail(c, apperr.Unauthorized())
	}
	institutionID, err := primitive.ObjectIDFromHex(claims.InstitutionID)
	if err != nil {
		return api.Fail(c, apperr.Unauthorized())
	}
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid session id")
	}

	session, err := h.service.Complete(c.Request().Context(), institutionID, sessionID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Counselling session completed successfully", session)
}

func (h *Handler) GetBookedDates(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	dates, err := h.service.GetBookedDates(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}

	formatted := make([]string, 0, len(dates))
	for _, date := range dates {
		formatted = append(formatted, date.Format("2006-01-02"))
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"bookedDates": formatted})
}

func (h *Handler) GetDashboardSummary(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	summary, err := h.service.GetDashboardSummary(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", summary)
}
