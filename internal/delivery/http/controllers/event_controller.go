package controllers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"eventcatalog/internal/delivery/http/helpers"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/query"
	"eventcatalog/internal/slug"
	"eventcatalog/internal/validation"
)

// maxMultipartMemory bounds the in-memory part of a multipart event upload; larger parts spill to disk.
const maxMultipartMemory = 8 << 20

// pendingImage stands in for the image URL while a multipart payload is validated before upload.
const pendingImage = "pending-upload"

// EventSuccessResponse is the success response envelope for a single event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events.
type EventListSuccessResponse struct {
	Data  *domain.EventList `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventsSuccessResponse is the success response envelope for a plain list of events.
type EventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Images  domain.ImageStore
}

// NewEventController returns an EventController. images may be nil, in which case
// multipart uploads must carry an image URL instead of a file.
func NewEventController(logger *slog.Logger, svc domain.EventService, images domain.ImageStore) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Images:  images,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Filtered, paginated list ordered by date ascending then newest first. Unknown modes are ignored; tags match any of a comma-separated list.
// @Tags events
// @Produce json
// @Param search query string false "Case-insensitive substring of title, description, location or organizer"
// @Param mode query string false "online, offline or hybrid"
// @Param tags query string false "Comma-separated tags"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 503 {object} helpers.APIResponse "error.code: store_unavailable"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters := query.ParseFilters(r.URL.Query())
	page, limit := helpers.ParsePagination(r)
	list, err := c.Service.ListEvents(r.Context(), filters.Filter(), page, limit)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// GetEvent godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventSlug, ok := slugParam(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEventBySlug(r.Context(), eventSlug)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// SimilarEvents godoc
// @Summary List events similar to an event
// @Description Events sharing at least one tag with the given event, excluding it. An unknown slug yields an empty list.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Param limit query int false "Maximum results (default 6)"
// @Success 200 {object} controllers.EventsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/similar [get]
func (c *EventController) SimilarEvents(w http.ResponseWriter, r *http.Request) {
	eventSlug, ok := slugParam(w, r)
	if !ok {
		return
	}
	limit := helpers.ParseLimit(r, 0)
	if limit > query.MaxLimit {
		limit = query.MaxLimit
	}
	events, err := c.Service.SimilarEvents(r.Context(), eventSlug, limit)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Accepts JSON or multipart/form-data. Multipart requests may carry an "image" file, which is uploaded and its URL stored; agenda and tags may be repeated fields or comma-separated. The slug is derived from the title.
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param event body domain.EventInput true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: slug_conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var ok bool
		if in, ok = c.readMultipartEvent(w, r); !ok {
			return
		}
	} else if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// readMultipartEvent parses a multipart event form and uploads its image file, if any.
// The payload is validated before the upload so that a rejected event stores nothing.
func (c *EventController) readMultipartEvent(w http.ResponseWriter, r *http.Request) (domain.EventInput, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return domain.EventInput{}, false
	}
	form := r.MultipartForm
	in := domain.EventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Image:       r.FormValue("image"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Agenda:      listField(form, "agenda"),
		Tags:        listField(form, "tags"),
	}

	files := form.File["image"]
	if len(files) == 0 {
		return in, true
	}
	if c.Images == nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "image uploads are not enabled; send an image URL")
		return domain.EventInput{}, false
	}

	probe := in
	probe.Image = pendingImage
	if _, err := validation.ValidateEvent(probe); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return domain.EventInput{}, false
	}

	url, err := c.upload(r, files[0])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return domain.EventInput{}, false
		}
		c.Logger.ErrorContext(r.Context(), "image upload failed", "path", r.URL.Path, "err", err)
		helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeInternalError, "image upload failed")
		return domain.EventInput{}, false
	}
	in.Image = url
	return in, true
}

func (c *EventController) upload(r *http.Request, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return c.Images.Upload(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
}

// listField collects a form list given as repeated fields, comma-separated values, or both.
func listField(form *multipart.Form, name string) []string {
	var out []string
	for _, v := range form.Value[name] {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update. Omitted fields are unchanged; the slug is re-derived only when the title changes.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Event slug"
// @Param event body domain.EventPatch true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: slug_conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventSlug, ok := slugParam(w, r)
	if !ok {
		return
	}
	var patch domain.EventPatch
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventSlug, patch)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// slugParam reads the {slug} path value and rejects malformed slugs with 400.
func slugParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	s := r.PathValue("slug")
	if !slug.Valid(s) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slug format")
		return "", false
	}
	return s, true
}
