package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/apierr"
	"github.com/inoxmetalart/backend/internal/jsoncol"
	"github.com/inoxmetalart/backend/internal/repos"
)

var errNotConfigured = errors.New("notifications are not configured")

// errRequired names the form fields a request must carry.
func errRequired(fields ...string) error {
	return apierr.Validation("missing required fields: %s", strings.Join(fields, ", "))
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apierr.Validation("invalid id %q", raw)
	}
	return uint(id), nil
}

// listFilter reads the shared pagination and filter query parameters. The
// default window matches the public API contract: skip 0, limit 100.
func listFilter(c *gin.Context) repos.ListFilter {
	filter := repos.ListFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Skip:     0,
		Limit:    100,
	}
	if v, err := strconv.Atoi(c.Query("skip")); err == nil && v >= 0 {
		filter.Skip = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 1 && v <= 1000 {
		filter.Limit = v
	}
	if raw := c.Query("featured"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &v
		}
	}
	return filter
}

// pageOf reports the 1-based page number for a skip/limit window.
func pageOf(filter repos.ListFilter) int {
	return filter.Skip/filter.Limit + 1
}

// parseListField decodes a form value that clients may send either as a
// JSON array or as a single plain string.
func parseListField(raw string) jsoncol.List {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw), &out); err == nil {
			return jsoncol.List(out)
		}
	}
	return jsoncol.List{raw}
}

// formFiles returns every uploaded file posted under key, or nil when the
// request carries no multipart form.
func formFiles(c *gin.Context, key string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[key]
}

// setForm copies a posted form value into a partial-update fields map,
// leaving absent keys untouched.
func setForm(c *gin.Context, fields map[string]interface{}, key string) {
	if v, ok := c.GetPostForm(key); ok {
		fields[key] = v
	}
}

func setFormInt(c *gin.Context, fields map[string]interface{}, key string) {
	if v, ok := c.GetPostForm(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			fields[key] = n
		}
	}
}

func setFormBool(c *gin.Context, fields map[string]interface{}, key string) {
	if v, ok := c.GetPostForm(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			fields[key] = b
		}
	}
}

func setFormList(c *gin.Context, fields map[string]interface{}, key string) {
	if v, ok := c.GetPostForm(key); ok {
		fields[key] = parseListField(v)
	}
}
