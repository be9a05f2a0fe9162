package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"strings"

	"github.com/bnema/vcomp/internal/adapter/http/validation"
	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
	"github.com/bnema/vcomp/internal/service"
)

type JobService interface {
	SubmitCompression(ctx context.Context, req service.CompressionRequest) (*domain.Job, error)
	GetJobByID(ctx context.Context, id string) (*domain.Job, error)
	ListActive() []domain.JobView
}

type StatisticsService interface {
	Report(ctx context.Context) (domain.StatisticsReport, error)
}

type MediaService interface {
	Save(mediaType string, r io.Reader) (name, path string, err error)
	Resolve(name string) (string, error)
}

type Handlers struct {
	jobs      JobService
	stats     StatisticsService
	media     MediaService
	maxSizeMB int
}

func NewHandlers(jobs JobService, stats StatisticsService, media MediaService, maxSizeMB int) *Handlers {
	return &Handlers{
		jobs:      jobs,
		stats:     stats,
		media:     media,
		maxSizeMB: maxSizeMB,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handlers) Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handlers) Statistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := h.stats.Report(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to compute statistics")
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

type uploadResponse struct {
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

func (h *Handlers) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := int64(h.maxSizeMB) * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer r.MultipartForm.RemoveAll() //nolint:errcheck

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file part")
			return
		}
		defer file.Close() //nolint:errcheck

		declared, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
		if !domain.IsMediaTypeAllowed(declared) {
			writeError(w, http.StatusBadRequest, "Unexpected media type received")
			return
		}

		detected, allowed, err := validation.ValidateMagicBytes(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to read upload")
			return
		}
		if !allowed || detected != declared {
			logger.Warn.Printf("upload %s rejected: declared %s, detected %s",
				logger.SanitizeForLog(header.Filename), logger.SanitizeForLog(declared), detected)
			writeError(w, http.StatusBadRequest, "Unexpected media type received")
			return
		}

		name, path, err := h.media.Save(declared, file)
		if err != nil {
			logger.Error.Printf("upload error for %s: %v", logger.SanitizeForLog(header.Filename), err)
			msg := "Upload failed"
			if strings.Contains(err.Error(), "no space left") {
				msg = "Upload failed: disk full"
			}
			writeError(w, http.StatusInternalServerError, msg)
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{
			Message:  "File uploaded successfully",
			FilePath: path,
			FileName: name,
		})
	}
}

type compressionJobRequest struct {
	Filename  string          `json:"filename"`
	Quality   string          `json:"quality"`
	FrameRate json.RawMessage `json:"framerate"`
	Factor    json.RawMessage `json:"factor"`
}

func (h *Handlers) CreateCompressionJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body compressionJobRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if err := validation.ValidateFilename(body.Filename); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid filename")
			return
		}
		if domain.ExtractExtension(body.Filename) != "mp4" {
			writeError(w, http.StatusBadRequest, "File format should be mp4")
			return
		}

		source, err := h.media.Resolve(body.Filename)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidParams) {
				writeError(w, http.StatusBadRequest, "File not found")
				return
			}
			logger.Error.Printf("resolve %s: %v", logger.SanitizeForLog(body.Filename), err)
			writeError(w, http.StatusInternalServerError, "Failed to schedule job")
			return
		}

		if body.Quality == "" || len(body.FrameRate) == 0 || len(body.Factor) == 0 {
			writeError(w, http.StatusBadRequest, "Missing required parameters")
			return
		}

		quality, err := domain.ParseQuality(body.Quality)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid quality. Must be 720p or 1080p")
			return
		}

		frameRate, ok := parseIntParam(body.FrameRate)
		if !ok || frameRate < domain.MinFrameRate || frameRate > domain.MaxFrameRate {
			writeError(w, http.StatusBadRequest, "Invalid framerate. Must be between 1 and 60")
			return
		}

		factor, ok := parseIntParam(body.Factor)
		if !ok || factor < domain.MinQualityFactor || factor > domain.MaxQualityFactor {
			writeError(w, http.StatusBadRequest, "Invalid factor. Must be between 10 and 50")
			return
		}

		job, err := h.jobs.SubmitCompression(r.Context(), service.CompressionRequest{
			SourcePath:    source,
			Quality:       quality,
			QualityFactor: factor,
			FrameRate:     frameRate,
		})
		if err != nil {
			if errors.Is(err, domain.ErrInvalidParams) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logger.Error.Printf("schedule compression of %s: %v", logger.SanitizeForLog(body.Filename), err)
			writeError(w, http.StatusInternalServerError, "Failed to schedule job")
			return
		}

		if client, ok := ClientFromContext(r.Context()); ok {
			logger.Info.Printf("client %s scheduled job %s", client.ID, job.ID)
		}
		writeJSON(w, http.StatusOK, job.View())
	}
}

// parseIntParam accepts a JSON number or a numeric string.
func parseIntParam(raw json.RawMessage) (int, bool) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &n); err != nil {
		return 0, false
	}
	return n, true
}

func (h *Handlers) GetJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Missing job ID")
			return
		}

		job, err := h.jobs.GetJobByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			logger.Error.Printf("get job %s: %v", logger.SanitizeForLog(id), err)
			writeError(w, http.StatusInternalServerError, "Failed to load job")
			return
		}

		writeJSON(w, http.StatusOK, job.View())
	}
}

func (h *Handlers) ActiveJobs() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.jobs.ListActive())
	}
}

// Download serves an artifact as an attachment.
func (h *Handlers) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if err := validation.ValidateFilename(name); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid filename")
			return
		}

		path, err := h.media.Resolve(name)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidParams) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			logger.Error.Printf("resolve %s: %v", logger.SanitizeForLog(name), err)
			writeError(w, http.StatusInternalServerError, "Failed to open file")
			return
		}

		f, err := os.Open(path)
		if err != nil {
			// removed by the reaper between Resolve and Open
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		defer f.Close() //nolint:errcheck

		info, err := f.Stat()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to open file")
			return
		}

		w.Header().Set("Content-Type", domain.MediaTypeMP4)
		w.Header().Set("Content-Disposition", validation.ContentDisposition(name, false))
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}
