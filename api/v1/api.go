package v1

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/imrenagi/go-video-catalog/catalog"
)

var meter = otel.Meter("github.com/imrenagi/go-video-catalog/api/v1")

// Storage is the catalog contract the controller needs.
type Storage interface {
	Add(title, description, uploader string, tags []string) (catalog.Video, error)
	List() []catalog.Video
	Get(id int) (catalog.Video, bool)
	Delete(id int) (bool, error)
	Search(query string) []catalog.Video
}

const defaultUploader = "anonymous"

func NewController(s Storage) Controller {
	added, err := meter.Int64Counter("catalog.videos.added")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create counter")
	}
	deleted, err := meter.Int64Counter("catalog.videos.deleted")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create counter")
	}
	return Controller{
		store:   s,
		added:   added,
		deleted: deleted,
	}
}

type Controller struct {
	store   Storage
	added   metric.Int64Counter
	deleted metric.Int64Counter
}

type createVideoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Uploader    string   `json:"uploader"`
	Tags        []string `json:"tags"`
}

// ListVideos returns the whole catalog, or the matching subset when the
// q query parameter is present.
func (c Controller) ListVideos() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var videos []catalog.Video
		if r.URL.Query().Has("q") {
			videos = c.store.Search(r.URL.Query().Get("q"))
		} else {
			videos = c.store.List()
		}
		if videos == nil {
			videos = []catalog.Video{}
		}
		writeJSON(w, http.StatusOK, videos)
	}
}

// CreateVideo registers new video metadata. Title validation lives here:
// the store itself accepts whatever it is given.
func (c Controller) CreateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req createVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Debug().Err(err).Msg("invalid create request body")
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		if req.Uploader == "" {
			req.Uploader = defaultUploader
		}

		v, err := c.store.Add(req.Title, req.Description, req.Uploader, req.Tags)
		if err != nil {
			log.Error().Err(err).Msg("failed to persist video")
			writeError(w, http.StatusInternalServerError, "failed to persist video")
			return
		}
		c.added.Add(r.Context(), 1)

		log.Info().Int("video_id", v.ID).Str("title", v.Title).Msg("video uploaded")
		writeJSON(w, http.StatusCreated, v)
	}
}

// GetVideo returns a single video by id.
func (c Controller) GetVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := videoID(w, r)
		if !ok {
			return
		}
		v, found := c.store.Get(id)
		if !found {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// DeleteVideo removes a video by id.
func (c Controller) DeleteVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := videoID(w, r)
		if !ok {
			return
		}
		deleted, err := c.store.Delete(id)
		if err != nil {
			log.Error().Err(err).Int("video_id", id).Msg("failed to delete video")
			writeError(w, http.StatusInternalServerError, "failed to delete video")
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		c.deleted.Add(r.Context(), 1)

		log.Info().Int("video_id", id).Msg("video deleted")
		w.WriteHeader(http.StatusNoContent)
	}
}

func videoID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["video_id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return 0, false
	}
	return id, true
}

type apiError struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	b, _ := json.Marshal(apiError{Message: msg})
	w.Write(b)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
