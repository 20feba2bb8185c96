// Package api exposes a read-only HTTP surface over an arraymap container:
// the decoded header metadata and the raw bytes of each array's data region.
package api

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/samcharles93/arraymap/internal/logger"
	"github.com/samcharles93/arraymap/pkg/arraymap"
)

type Server struct {
	path string
	log  logger.Logger
}

func NewServer(path string, log logger.Logger) *Server {
	if log == nil {
		log = logger.Default()
	}
	return &Server{path: path, log: log}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(requestID)
	e.GET("/v1/arrays", s.handleListArrays)
	e.GET("/v1/arrays/:index", s.handleGetArray)
	e.GET("/v1/arrays/:index/data", s.handleGetArrayData)
}

func requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		c.Response().Header().Set("X-Request-ID", "req_"+uuid.NewString())
		return next(c)
	}
}

type ArrayInfo struct {
	Index  int    `json:"index"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
}

type ListArraysResponse struct {
	Path   string      `json:"path"`
	Count  int         `json:"count"`
	Arrays []ArrayInfo `json:"arrays"`
}

// Describe decodes the header of the container at path into the metadata
// shape served by the HTTP API (and printed by `arraymap inspect`).
func Describe(path string) (*ListArraysResponse, error) {
	dtypes, shapes, err := arraymap.ReadHeader(path)
	if err != nil {
		return nil, err
	}
	offsets, err := arraymap.Offsets(dtypes, shapes)
	if err != nil {
		return nil, err
	}
	arrays := make([]ArrayInfo, len(dtypes))
	for i := range dtypes {
		arrays[i] = ArrayInfo{
			Index:  i,
			DType:  dtypes[i].String(),
			Shape:  shapes[i],
			Offset: offsets[i],
			Size:   offsets[i+1] - offsets[i],
		}
	}
	return &ListArraysResponse{Path: path, Count: len(arrays), Arrays: arrays}, nil
}

func (s *Server) handleListArrays(c *echo.Context) error {
	resp, err := Describe(s.path)
	if err != nil {
		return s.writeContainerError(c, err)
	}
	return writeJSON(c, http.StatusOK, resp)
}

func (s *Server) handleGetArray(c *echo.Context) error {
	resp, err := Describe(s.path)
	if err != nil {
		return s.writeContainerError(c, err)
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid array index")
	}
	if index < 0 || index >= len(resp.Arrays) {
		return writeError(c, http.StatusNotFound, "array index out of range")
	}
	return writeJSON(c, http.StatusOK, resp.Arrays[index])
}

func (s *Server) handleGetArrayData(c *echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid array index")
	}

	views, err := arraymap.Open(s.path, arraymap.ReadOnly)
	if err != nil {
		return s.writeContainerError(c, err)
	}
	defer func() {
		for _, v := range views {
			_ = v.Close()
		}
	}()

	if index < 0 || index >= len(views) {
		return writeError(c, http.StatusNotFound, "array index out of range")
	}
	return c.Blob(http.StatusOK, "application/octet-stream", views[index].Bytes())
}

func (s *Server) writeContainerError(c *echo.Context, err error) error {
	switch {
	case errors.Is(err, arraymap.ErrNotFound):
		return writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, arraymap.ErrCorruptHeader):
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Error("container access failed", "path", s.path, "error", err)
		return writeError(c, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Blob(status, echo.MIMEApplicationJSON, b)
}

func writeError(c *echo.Context, status int, msg string) error {
	return writeJSON(c, status, map[string]any{
		"error": map[string]any{"message": msg},
	})
}
