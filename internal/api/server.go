// Package api exposes a local monitoring endpoint for one SPE file while an
// acquisition is running. It is read-only glue over the spe package; the
// core itself has no network surface.
package api

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/tsphot/internal/logger"
	"github.com/samcharles93/tsphot/internal/spe"
)

// Server serves status, header and latest-frame metadata for one open SPE
// session. The session is not safe for concurrent reads, so every handler
// takes the mutex.
type Server struct {
	mu   sync.Mutex
	file *spe.File
	log  logger.Logger
}

func NewServer(file *spe.File, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{file: file, log: log}
}

// Register wires the monitoring routes.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/status", s.handleStatus)
	e.GET("/v1/header", s.handleHeader)
	e.GET("/v1/frames/latest", s.handleLatestFrame)
}

type geometryJSON struct {
	XDim           int    `json:"xdim"`
	YDim           int    `json:"ydim"`
	PixelsPerFrame int    `json:"pixels_per_frame"`
	ElemType       string `json:"elem_type"`
	BytesPerFrame  int64  `json:"bytes_per_frame"`
	BytesPerStride int64  `json:"bytes_per_stride"`
	StartOffset    int64  `json:"start_offset"`
}

type statusJSON struct {
	Path            string       `json:"path"`
	FramesAvailable int          `json:"frames_available"`
	LastReadIndex   int          `json:"last_read_index"`
	FooterPresent   bool         `json:"footer_present"`
	Geometry        geometryJSON `json:"geometry"`
}

type headerFieldJSON struct {
	Offset int64    `json:"offset"`
	Binary string   `json:"binary"`
	Name   string   `json:"name"`
	Value  *float64 `json:"value"` // null when the field carries no value
}

type frameMetaJSON struct {
	Index          int       `json:"index"`
	XDim           int       `json:"xdim"`
	YDim           int       `json:"ydim"`
	ExposureStart  time.Time `json:"exposure_start"`
	ExposureEnd    time.Time `json:"exposure_end"`
	TrackingNumber int64     `json:"tracking_number"`
}

func (s *Server) handleStatus(c *echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.file.NumFrames()
	if err != nil {
		return writeServerError(c, err.Error())
	}
	g := s.file.Geometry()
	_, footer := s.file.Footer()
	return c.JSON(http.StatusOK, statusJSON{
		Path:            s.file.Path(),
		FramesAvailable: n,
		LastReadIndex:   s.file.LastReadIndex(),
		FooterPresent:   footer,
		Geometry: geometryJSON{
			XDim:           g.XDim,
			YDim:           g.YDim,
			PixelsPerFrame: g.PixelsPerFrame,
			ElemType:       g.Elem.String(),
			BytesPerFrame:  g.BytesPerFrame,
			BytesPerStride: g.BytesPerStride,
			StartOffset:    g.StartOffset,
		},
	})
}

func (s *Server) handleHeader(c *echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := s.file.Header().Fields
	out := make([]headerFieldJSON, 0, len(fields))
	for _, f := range fields {
		j := headerFieldJSON{
			Offset: f.Offset,
			Binary: f.Binary,
			Name:   f.Name,
		}
		if f.Set() {
			v := f.Value
			j.Value = &v
		}
		out = append(out, j)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleLatestFrame(c *echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fr, err := s.file.Frame(-1)
	if err != nil {
		if errors.Is(err, spe.ErrNoFrames) {
			return writeNotFound(c, "no complete frames in the file yet")
		}
		return writeServerError(c, err.Error())
	}
	return c.JSON(http.StatusOK, frameMetaJSON{
		Index:          fr.Index,
		XDim:           fr.XDim,
		YDim:           fr.YDim,
		ExposureStart:  fr.Meta.ExposureStart,
		ExposureEnd:    fr.Meta.ExposureEnd,
		TrackingNumber: fr.Meta.TrackingNumber,
	})
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeServerError(c *echo.Context, msg string) error {
	return writeError(c, http.StatusInternalServerError, "server_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": map[string]string{
			"type":    errType,
			"message": msg,
		},
	})
}
