package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"CareerGo/internal/api"
	"CareerGo/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func recordIDParam(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("recordId"))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) GetOverview(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	overview, err := h.service.GetOverview(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", overview)
}

func (h *Handler) UpdateBasicInfo(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	var req UpdateBasicInfoRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	info, err := h.service.UpdateBasicInfo(c.Request().Context(), callerID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Profile updated successfully", info)
}

func (h *Handler) UpdateProfileImage(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return api.BadRequest(c, "Image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return api.BadRequest(c, "Image file is required")
	}
	defer file.Close()

	url, err := h.service.UpdateProfileImage(c.Request().Context(), callerID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Profile image updated successfully", map[string]string{"profileImage": url})
}

func (h *Handler) AddEducation(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	var req EducationRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	record, err := h.service.AddEducation(c.Request().Context(), callerID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Education added successfully", record)
}

func (h *Handler) GetEducation(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	records, err := h.service.GetEducation(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"education": records})
}

func (h *Handler) UpdateEducation(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid record id")
	}

	var req EducationRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	record, err := h.service.UpdateEducation(c.Request().Context(), callerID, recordID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Education updated successfully", record)
}

func (h *Handler) DeleteEducation(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid record id")
	}

	if err := h.service.DeleteEducation(c.Request().Context(), callerID, recordID); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Education deleted successfully", nil)
}

func (h *Handler) AddAchievement(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	var req AchievementRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	record, err := h.service.AddAchievement(c.Request().Context(), callerID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Achievement added successfully", record)
}

func (h *Handler) GetAchievements(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	records, err := h.service.GetAchievements(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"achievements": records})
}

func (h *Handler) UpdateAchievement(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid record id")
	}

	var req AchievementRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	record, err := h.service.UpdateAchievement(c.Request().Context(), callerID, recordID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Achievement updated successfully", record)
}

func (h *Handler) DeleteAchievement(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid record id")
	}

	if err := h.service.DeleteAchievement(c.Request().Context(), callerID, recordID); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Achievement deleted successfully", nil)
}

func (h *Handler) AddCertification(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	var req CertificationRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	record, err := h.service.AddCertification(c.Request().Context(), callerID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Certification added successfully", record)
}

func (h *Handler) GetCertifications(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	records, err := h.service.GetCertifications(c.Request().Context(), callerID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"certifications": records})
}

func (h *Handler) UpdateCertification(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid record id")
	}

	var req CertificationRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	record, err := h.service.UpdateCertification(c.Request().Context(), callerID, recordID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Certification updated successfully", record)
}

func (h *Handler) DeleteCertification(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	recordID, ok := recordIDParam(c)
	if !ok {
		return api.BadRequest(c, "Invalid record id")
	}

	if err := h.service.DeleteCertification(c.Request().Context(), callerID, recordID); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Certification deleted successfully", nil)
}
