package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/pkg/output"
	"github.com/ccollicutt/chatlens/pkg/parser"
	"github.com/ccollicutt/chatlens/pkg/records"
	"github.com/ccollicutt/chatlens/pkg/stats"
)

// UploadResponse describes a parsed upload.
type UploadResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	DateOrder    string `json:"date_order"`
	Records      int    `json:"records"`
	Participants int    `json:"participants"`
	Unresolved   int    `json:"unresolved"`
}

// RecordsResponse lists records of an upload.
type RecordsResponse struct {
	Count   int              `json:"count"`
	Records []records.Record `json:"records"`
}

// GroupsResponse lists group sizes of an upload.
type GroupsResponse struct {
	GroupBy records.Field       `json:"group_by"`
	Groups  []output.GroupCount `json:"groups"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"uploads": s.registry.Len(),
	})
}

// createUpload accepts a multipart form with a "file" field, or the export
// as the raw request body.
func (s *Server) createUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	data, name, err := s.readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", s.maxUploadBytes))
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	parsed, err := s.pipeline.ParseBytes(data, r.URL.Query().Get("date_order"))
	if err != nil {
		if errors.Is(err, parser.ErrInvalidUTF8) {
			writeError(w, http.StatusBadRequest, "chat export is not valid UTF-8")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	upload, evicted := s.registry.Add(name, parsed.Order, parsed.Store)
	if evicted != nil {
		s.logger.Info("evicted upload", zap.String("id", evicted.ID))
	}

	writeJSON(w, http.StatusCreated, uploadResponse(upload))
}

func (s *Server) readUpload(r *http.Request) (data []byte, name string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err = io.ReadAll(r.Body)
		return data, r.URL.Query().Get("name"), err
	}

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		return nil, "", err
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("reading form field %q: %w", "file", err)
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	return data, hdr.Filename, err
}

func (s *Server) getUpload(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse(upload))
}

func (s *Server) deleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.lookup(w, r)
	if !ok {
		return
	}

	start := time.Now()
	res, err := s.pipeline.Analyze(r.Context(), upload.Store, r.URL.Query().Get("user"))
	if err != nil {
		if errors.Is(err, stats.ErrUnknownUser) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cfg := s.pipeline.Config()
	report := output.NewReport(upload.Store, res, output.Metadata{
		Source:     upload.Name,
		DateOrder:  string(upload.Order),
		Timezone:   cfg.Timezone,
		AnalyzedAt: time.Now().UTC(),
		Duration:   time.Since(start),
	})
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) getRecords(w http.ResponseWriter, r *http.Request) {
	upload, ok := s.lookup(w, r)
	if !ok {
		return
	}

	store := upload.Store
	if author := r.URL.Query().Get("author"); author != "" {
		if !store.HasAuthor(author) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("%v: %q", stats.ErrUnknownUser, author))
			return
		}
		store = store.ByAuthor(author)
	}

	if groupBy := r.URL.Query().Get("group_by"); groupBy != "" {
		field, err := records.ParseField(groupBy)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, GroupsResponse{
			GroupBy: field,
			Groups:  output.SummarizeGroups(store.GroupBy(field)),
		})
		return
	}

	writeJSON(w, http.StatusOK, RecordsResponse{
		Count:   store.Len(),
		Records: store.All(),
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*Upload, bool) {
	upload, err := s.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return upload, true
}

func uploadResponse(u *Upload) UploadResponse {
	return UploadResponse{
		ID:           u.ID,
		Name:         u.Name,
		DateOrder:    string(u.Order),
		Records:      u.Store.Len(),
		Participants: len(u.Store.Participants()),
		Unresolved:   u.Store.Unresolved(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
