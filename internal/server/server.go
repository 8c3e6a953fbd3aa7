package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	stego "github.com/yyyoichi/stride_stego"
	"github.com/yyyoichi/stride_stego/carrier"
	"github.com/yyyoichi/stride_stego/internal/config"
	"github.com/yyyoichi/stride_stego/mark"
	"github.com/yyyoichi/stride_stego/store"
)

// ObjectStore persists processed carriers.
type ObjectStore interface {
	Put(ctx context.Context, ext string, data []byte) (store.Object, error)
	Get(ctx context.Context, name string) (store.Object, error)
	List(ctx context.Context, limit int) ([]store.Object, error)
}

var _ ObjectStore = (*store.Store)(nil)

type requestError struct {
	status int
	msg    string
	err    error
}

func (e *requestError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}

func badRequest(msg string, err error) error {
	return &requestError{status: http.StatusBadRequest, msg: msg, err: err}
}

type Server struct {
	cfg   *config.Config
	store ObjectStore
	auth  Authenticator
	log   *zap.Logger
	mux   *http.ServeMux
}

func New(cfg *config.Config, st ObjectStore, auth Authenticator, log *zap.Logger) *Server {
	if auth == nil {
		auth = TokenAuth("")
	}
	s := &Server{
		cfg:   cfg,
		store: st,
		auth:  auth,
		log:   log,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/upload", s.handleUpload)
	s.mux.HandleFunc("GET /api/gallery", s.handleGallery)
	s.mux.HandleFunc("GET /objects/{name}", s.handleObject)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := s.auth.Authenticate(r); err != nil {
		s.log.Info("upload rejected", zap.String("remote", r.RemoteAddr), zap.Error(err))
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resp, action, err := s.upload(w, r)
	if err != nil {
		status, msg := classify(err)
		fields := []zap.Field{zap.String("action", action), zap.Int("status", status), zap.Error(err)}
		if status >= http.StatusInternalServerError {
			s.log.Error("upload failed", fields...)
		} else {
			s.log.Info("upload rejected", fields...)
		}
		writeError(w, status, msg)
		return
	}
	s.log.Info("upload processed",
		zap.String("action", action),
		zap.String("url", resp.URL),
		zap.Duration("took", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) (*uploadResponse, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxCarrierSize+s.cfg.MaxMessageSize+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, "", badRequest("Invalid form data", err)
	}
	action := r.FormValue("action")

	data, name, err := readFormFile(r, "file", s.cfg.MaxCarrierSize)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, action, badRequest("No carrier file uploaded", err)
	}
	if err != nil {
		return nil, action, fmt.Errorf("carrier: %w", err)
	}
	// Embedding may overwrite the magic bytes, so carriers sent back for
	// extraction only need an accepted extension and size.
	check := carrier.Accept
	if action == "hide" {
		check = carrier.Validate
	}
	kind, err := check(name, data, s.cfg.MaxCarrierSize)
	if err != nil {
		return nil, action, err
	}

	opts, err := codecOptions(r)
	if err != nil {
		return nil, action, err
	}
	framing, err := framingOption(r.FormValue("framing"))
	if err != nil {
		return nil, action, err
	}

	switch action {
	case "hide":
		msg, _, err := readFormFile(r, "messageFile", s.cfg.MaxMessageSize)
		if errors.Is(err, http.ErrMissingFile) {
			return nil, action, badRequest("No message file provided", err)
		}
		if err != nil {
			return nil, action, fmt.Errorf("message: %w", err)
		}
		// Normalization rewrites the carrier bytes, so it runs before the payload goes in.
		prepared, ext, err := carrier.ForKind(kind, s.cfg.MaxWidth, s.cfg.MaxHeight).Prepare(data, carrier.Ext(name))
		if err != nil {
			return nil, action, badRequest("Invalid carrier file", err)
		}
		if err := stego.Embed(prepared, mark.NewBytes(msg, framing), opts...); err != nil {
			return nil, action, err
		}
		obj, err := s.store.Put(r.Context(), ext, prepared)
		if err != nil {
			return nil, action, err
		}
		return &uploadResponse{Success: true, URL: "/objects/" + obj.Name}, action, nil

	case "extract":
		dec, err := stego.Extract(data, mark.NewExtract(framing), opts...)
		if err != nil {
			return nil, action, err
		}
		return &uploadResponse{
			Success: true,
			Message: base64.StdEncoding.EncodeToString(dec.DecodeToBytes()),
		}, action, nil
	}
	return nil, action, badRequest("Invalid action", nil)
}

// readFormFile reads a multipart file. Files above limit are reported with
// carrier.ErrTooLarge without reading them.
func readFormFile(r *http.Request, key string, limit int64) ([]byte, string, error) {
	f, fh, err := r.FormFile(key)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	if fh.Size > limit {
		return nil, "", fmt.Errorf("%w: %s is %d bytes", carrier.ErrTooLarge, key, fh.Size)
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("%w: %s", carrier.ErrTooLarge, key)
	}
	return data, fh.Filename, nil
}

// codecOptions reads startBit, length and mode. Missing values keep the
// codec defaults.
func codecOptions(r *http.Request) ([]stego.Option, error) {
	var opts []stego.Option
	if v := r.FormValue("startBit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, badRequest("Invalid startBit", err)
		}
		opts = append(opts, stego.WithStartBit(n))
	}
	if v := r.FormValue("length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, badRequest("Invalid length", err)
		}
		opts = append(opts, stego.WithStride(n))
	}
	mode, err := stego.ParseMode(r.FormValue("mode"))
	if err != nil {
		return nil, err
	}
	return append(opts, stego.WithMode(mode)), nil
}

func framingOption(v string) (mark.Option, error) {
	switch v {
	case "", "raw":
		return mark.WithoutEscape(), nil
	case "escaped":
		return mark.WithEscape(), nil
	}
	return nil, badRequest("Invalid framing", fmt.Errorf("unknown framing %q", v))
}

func classify(err error) (int, string) {
	var reqErr *requestError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, carrier.ErrTooLarge):
		return http.StatusRequestEntityTooLarge, "File size exceeds the maximum limit"
	case errors.As(err, &reqErr):
		return reqErr.status, reqErr.msg
	case errors.Is(err, carrier.ErrUnsupportedFormat):
		return http.StatusBadRequest, "Unsupported file format"
	case errors.Is(err, carrier.ErrInvalidSignature):
		return http.StatusBadRequest, "Invalid file signature"
	case errors.Is(err, stego.ErrInvalidParameters):
		return http.StatusBadRequest, "Invalid codec parameters"
	case errors.Is(err, stego.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity, "Message does not fit in the carrier"
	case errors.Is(err, stego.ErrSentinelNotFound), errors.Is(err, mark.ErrMalformedEscape):
		return http.StatusUnprocessableEntity, "No hidden message found"
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

type galleryItem struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	objects, err := s.store.List(r.Context(), s.cfg.GalleryLimit)
	if err != nil {
		s.log.Error("gallery failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	items := make([]galleryItem, 0, len(objects))
	for _, obj := range objects {
		items = append(items, galleryItem{
			Name:      obj.Name,
			URL:       "/objects/" + obj.Name,
			Size:      obj.Size,
			CreatedAt: obj.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"objects": items})
}

func (s *Server) handleObject(w http.ResponseWriter, r *http.Request) {
	obj, err := s.store.Get(r.Context(), r.PathValue("name"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		s.log.Error("object failed", zap.String("name", r.PathValue("name")), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	contentType := mime.TypeByExtension("." + obj.Ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(obj.Size))
	_, _ = w.Write(obj.Data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
