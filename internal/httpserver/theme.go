package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lms-theme-renderer/internal/domain"
	"lms-theme-renderer/internal/service/theme"
)

type themeHandler struct {
	svc    ThemeService
	logger logrus.FieldLogger
}

type settingRequest struct {
	Value *string `json:"value" binding:"required"`
}

func (h *themeHandler) headerCategories(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	frag, err := h.svc.HeaderCategories(c.Request.Context(), t)
	h.writeFragment(c, frag, err)
}

func (h *themeHandler) footer(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	frag, err := h.svc.Footer(c.Request.Context(), t, c.Query("lang"))
	h.writeFragment(c, frag, err)
}

func (h *themeHandler) blockRegions(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	frag, err := h.svc.BlockRegions(c.Request.Context(), t, queryBool(c, "editing"))
	h.writeFragment(c, frag, err)
}

func (h *themeHandler) assets(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	assets, err := h.svc.Assets(c.Request.Context(), t)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

func (h *themeHandler) loginPage(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	page, err := h.svc.LoginPage(c.Request.Context(), t)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *themeHandler) courseHeader(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseID")
	if !ok {
		return
	}
	header, err := h.svc.Header(c.Request.Context(), t, pageFromQuery(c), courseID, queryBool(c, "canedit"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, header)
}

func (h *themeHandler) activityNavigation(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseID")
	if !ok {
		return
	}
	cmID, ok := pathID(c, "cmID")
	if !ok {
		return
	}
	frag, err := h.svc.ActivityNavigation(c.Request.Context(), t, pageFromQuery(c), courseID, cmID)
	h.writeFragment(c, frag, err)
}

func (h *themeHandler) completionFooter(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	courseID, ok := pathID(c, "courseID")
	if !ok {
		return
	}
	cmID, ok := pathID(c, "cmID")
	if !ok {
		return
	}
	frag, err := h.svc.CompletionFooter(c.Request.Context(), t, pageFromQuery(c), courseID, cmID)
	h.writeFragment(c, frag, err)
}

func (h *themeHandler) updateSetting(c *gin.Context) {
	t, ok := h.theme(c)
	if !ok {
		return
	}
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("request body must be {\"value\": string}"))
		return
	}
	if err := h.svc.UpdateSetting(c.Request.Context(), t, c.Param("name"), *req.Value); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *themeHandler) theme(c *gin.Context) (*domain.Theme, bool) {
	t, ok := themeFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusInternalServerError, errorBody("theme missing from request context"))
		return nil, false
	}
	return t, true
}

// writeFragment answers with the rendered HTML, or with the fragment as JSON
// when the caller asks for ?format=json.
func (h *themeHandler) writeFragment(c *gin.Context, frag theme.Fragment, err error) {
	if err != nil {
		h.writeError(c, err)
		return
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, frag)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(frag.HTML))
}

func (h *themeHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, domain.ErrInvalidSetting):
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("theme request failed")
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody(name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

func queryBool(c *gin.Context, name string) bool {
	v, err := strconv.ParseBool(c.Query(name))
	return err == nil && v
}

func pageFromQuery(c *gin.Context) domain.Page {
	return domain.Page{
		Layout:   c.Query("layout"),
		PageType: c.Query("pagetype"),
		BodyID:   c.Query("bodyid"),
	}
}
