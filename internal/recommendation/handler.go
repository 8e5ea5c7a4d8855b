package recommendation

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"CareerGo/internal/api"
	"CareerGo/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Recommend(c echo.Context) error {
	if _, err := auth.CallerID(c); err != nil {
		return api.Fail(c, err)
	}

	var req PreferenceRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	recommendations, err := h.service.Recommend(c.Request().Context(), req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"recommendations": recommendations})
}

func (h *Handler) GetAllCourseCategories(c echo.Context) error {
	categories, err := h.service.GetAllCourseCategories(c.Request().Context())
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"courseCategories": categories})
}
