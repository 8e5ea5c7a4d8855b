package institution

import (
	"net/http"
	"strconv"

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

func objectIDParam(c echo.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterInstitutionRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	result, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Institution registered successfully", result)
}

func (h *Handler) GetAll(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}

	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	search := c.QueryParam("search")

	result, err := h.service.GetAll(c.Request().Context(), callerID, page, limit, search)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", result)
}

func (h *Handler) GetDetails(c echo.Context) error {
	callerID, err := auth.CallerID(c)
	if err != nil {
		return api.Fail(c, err)
	}
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	details, err := h.service.GetDetails(c.Request().Context(), callerID, institutionID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", details)
}

func (h *Handler) UpdateDetails(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	var req UpdateDetailsRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}

	inst, err := h.service.UpdateDetails(c.Request().Context(), institutionID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Institution updated successfully", inst)
}

func (h *Handler) UpdateLogo(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return api.BadRequest(c, "Logo file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return api.BadRequest(c, "Logo file is required")
	}
	defer file.Close()

	inst, err := h.service.UpdateLogo(c.Request().Context(), institutionID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Logo updated successfully", inst)
}

func (h *Handler) GetList(c echo.Context) error {
	items, err := h.service.GetList(c.Request().Context())
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"institutions": items})
}

func (h *Handler) AddCourseCategory(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	var req CourseCategoryRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	cats, err := h.service.AddCourseCategory(c.Request().Context(), institutionID, req.CourseCategory)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Course category added successfully", cats)
}

func (h *Handler) GetCourseCategories(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	cats, err := h.service.GetCourseCategories(c.Request().Context(), institutionID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", cats)
}

func (h *Handler) RemoveCourseCategory(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}
	category := c.QueryParam("courseCategory")
	if category == "" {
		return api.BadRequest(c, "Course category is required")
	}

	cats, err := h.service.RemoveCourseCategory(c.Request().Context(), institutionID, category)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Course category removed successfully", cats)
}

func (h *Handler) CreateCourse(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	course, err := h.service.CreateCourse(c.Request().Context(), institutionID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusCreated, "Course created successfully", course)
}

func (h *Handler) GetCourses(c echo.Context) error {
	institutionID, ok := objectIDParam(c, "institutionId")
	if !ok {
		return api.BadRequest(c, "Invalid institution id")
	}

	courses, err := h.service.GetCourses(c.Request().Context(), institutionID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", map[string]interface{}{"courses": courses})
}

func (h *Handler) GetCourseDetail(c echo.Context) error {
	courseID, ok := objectIDParam(c, "courseId")
	if !ok {
		return api.BadRequest(c, "Invalid course id")
	}

	course, err := h.service.GetCourseDetail(c.Request().Context(), courseID)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "The operation has been successful", course)
}

func (h *Handler) UpdateCourse(c echo.Context) error {
	courseID, ok := objectIDParam(c, "courseId")
	if !ok {
		return api.BadRequest(c, "Invalid course id")
	}

	var req CourseRequest
	if err := c.Bind(&req); err != nil {
		return api.BadRequest(c, "Invalid request")
	}
	if msg, ok := api.Validate(req); !ok {
		return api.BadRequest(c, msg)
	}

	course, err := h.service.UpdateCourse(c.Request().Context(), courseID, req)
	if err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Course updated successfully", course)
}

func (h *Handler) DeleteCourse(c echo.Context) error {
	courseID, ok := objectIDParam(c, "courseId")
	if !ok {
		return api.BadRequest(c, "Invalid course id")
	}

	if err := h.service.DeleteCourse(c.Request().Context(), courseID); err != nil {
		return api.Fail(c, err)
	}
	return api.OK(c, http.StatusOK, "Course deleted successfully", nil)
}
