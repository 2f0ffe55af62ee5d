package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/response"
)

type BlogHandler struct {
	blogService *app.BlogService
}

func NewBlogHandler(blogService *app.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) List(c *gin.Context) {
	items, err := h.blogService.ListAll()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(c, "Blogs retrieved", items)
}

func (h *BlogHandler) ListMine(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	items, err := h.blogService.ListByUser(userID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	response.OK(c, "", items)
}

func (h *BlogHandler) Create(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	item, err := h.blogService.Create(app.CreateBlogInput{
		UserID:      userID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Cover:       coverFile(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			response.Error(c, http.StatusUnprocessableEntity, "Validation error")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.Created(c, "Blog created", item)
}

func (h *BlogHandler) Update(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	blogID, ok := blogIDParam(c)
	if !ok {
		return
	}

	err := h.blogService.Update(app.UpdateBlogInput{
		UserID:      userID,
		BlogID:      blogID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Cover:       coverFile(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrBlogNotFound):
			response.Error(c, http.StatusNotFound, "Blog not found")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.OK(c, "Blog updated", nil)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	blogID, ok := blogIDParam(c)
	if !ok {
		return
	}

	if err := h.blogService.Delete(userID, blogID); err != nil {
		switch {
		case errors.Is(err, app.ErrBlogNotFound):
			response.Error(c, http.StatusNotFound, "Blog not found")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.OK(c, "Blog deleted", nil)
}

func blogIDParam(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		response.Error(c, http.StatusNotFound, "Blog not found")
		return 0, false
	}
	return uint(id64), true
}

// coverFile returns the uploaded cover image, or nil when the request
// carries none. Multipart parsing errors surface later as a nil file.
func coverFile(c *gin.Context) *multipart.FileHeader {
	file, err := c.FormFile("cover_image")
	if err != nil {
		return nil
	}
	return file
}
