// Package api provides the REST API server for musiconv
package api

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/james-see/musiconv/pkg/converter"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Musiconv API
// @version 1.0
// @description API for converting between musical pitch representations
// @host localhost:8080
// @BasePath /api/v1

// Server wraps one shared pitch converter behind the REST surface. All
// handlers serialize on the mutex, so concurrent requests see a consistent
// state.
type Server struct {
	mu   sync.Mutex
	conv *converter.Converter
}

// NewServer creates a server with a freshly initialized converter.
func NewServer() *Server {
	return &Server{conv: converter.New()}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(corsMiddleware())

	r.GET("/health", healthCheck)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/convert", s.handleConvert)
		v1.GET("/state", s.handleState)
		v1.GET("/keys", listKeys)
		v1.GET("/clefs", listClefs)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	return NewServer().Router().Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// convertRequest carries one line of the textual mini-language.
type convertRequest struct {
	Input string `json:"input" binding:"required" example:"A4 +30"`
}

// stateResponse mirrors the converter's full state after a successful update.
type stateResponse struct {
	NoteValue float64              `json:"note_value"`
	NoteName  string               `json:"note_name"`
	KeyName   string               `json:"key_name"`
	Frequency float64              `json:"frequency"`
	BaseFreq  float64              `json:"base_freq"`
	Amplitude float64              `json:"amplitude"`
	Gain      float64              `json:"gain"`
	Key       string               `json:"key"`
	Clef      string               `json:"clef"`
	Octave    int                  `json:"octave"`
	Notation  []converter.Notation `json:"notation"`
}

func snapshot(c *converter.Converter) stateResponse {
	return stateResponse{
		NoteValue: c.NoteValue(),
		NoteName:  c.NoteName(),
		KeyName:   c.KeyName(),
		Frequency: c.Frequency(),
		BaseFreq:  c.BaseFreq(),
		Amplitude: c.Amplitude(),
		Gain:      c.Gain(),
		Key:       c.Key(),
		Clef:      c.Clef(),
		Octave:    c.Octave(),
		Notation:  c.Notation(),
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "musiconv",
	})
}

// listKeys godoc
// @Summary List supported key signatures
// @Description Returns the key signature names in circle-of-fifths order
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/keys [get]
func listKeys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": converter.KeyNames()})
}

// listClefs godoc
// @Summary List supported clefs
// @Description Returns the clef names
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/clefs [get]
func listClefs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clefs": converter.ClefNames()})
}

// handleState godoc
// @Summary Current converter state
// @Description Returns all representations of the current pitch, loudness, key and clef
// @Tags convert
// @Produce json
// @Success 200 {object} stateResponse
// @Router /api/v1/state [get]
func (s *Server) handleState(c *gin.Context) {
	s.mu.Lock()
	resp := snapshot(s.conv)
	s.mu.Unlock()
	c.JSON(http.StatusOK, resp)
}

// handleConvert godoc
// @Summary Apply one textual input
// @Description Parses the input ("A4", "440Hz", "-10dB", "F/d", "sc 5:#", ...) and updates the shared converter
// @Tags convert
// @Accept json
// @Produce json
// @Param request body convertRequest true "Input line"
// @Success 200 {object} stateResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /api/v1/convert [post]
func (s *Server) handleConvert(c *gin.Context) {
	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	err := s.conv.Set(req.Input)
	var resp stateResponse
	if err == nil {
		resp = snapshot(s.conv)
	}
	s.mu.Unlock()

	if err != nil {
		// syntax errors are 400, well-formed but out-of-range values 422
		var perr *converter.ParseError
		if errors.As(err, &perr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
