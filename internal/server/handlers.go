package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/realitycheck/internal/client"
	"github.com/ppiankov/realitycheck/internal/factcheck"
	"github.com/ppiankov/realitycheck/internal/render"
)

const (
	msgTextRequired    = "Text is required"
	msgRateLimited     = "Rate limit exceeded. Please try again later."
	msgPaymentRequired = "Payment required. Please add credits to your Lovable workspace."
)

var errNullBody = errors.New("request body is null")

// decodeText decodes the whole body and returns its text field. Valid JSON
// that is not an object, or lacks a string text, yields ok == false.
func decodeText(r io.Reader) (text string, ok bool, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("read body: %w", err)
	}

	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return "", false, err
	}
	if body == nil {
		return "", false, errNullBody
	}

	obj, isObject := body.(map[string]any)
	if !isObject {
		return "", false, nil
	}
	text, ok = obj["text"].(string)
	return text, ok && text != "", nil
}

func (s *Server) limitBody(c *gin.Context) {
	if s.cfg.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	}
}

func (s *Server) handleFactCheck(c *gin.Context) {
	s.limitBody(c)

	text, ok, err := decodeText(c.Request.Body)
	if err != nil {
		s.logger.Error("decode request failed", "id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTextRequired})
		return
	}

	outcome, err := s.checker.Check(c.Request.Context(), text)
	if err != nil {
		status, msg := ErrorStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	body, err := outcome.Body()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if outcome.Fallback {
		c.Header(client.FallbackHeader, "true")
	}
	c.Data(http.StatusOK, "application/json", body)
}

// ErrorStatus maps a checker error to the endpoint status and message
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, factcheck.ErrTextRequired):
		return http.StatusBadRequest, msgTextRequired
	case errors.Is(err, factcheck.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, factcheck.ErrPaymentRequired):
		return http.StatusPaymentRequired, msgPaymentRequired
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleUpstreamHealth(c *gin.Context) {
	provider := s.checker.ProviderName()
	if !s.checker.Ping(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "provider": provider})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "provider": provider})
}

func (s *Server) handlePage(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageName, render.PageData{MinLength: s.minLength})
}

func (s *Server) handlePageSubmit(c *gin.Context) {
	s.limitBody(c)

	data := render.PageData{
		Text:      c.PostForm("text"),
		MinLength: s.minLength,
	}

	text, err := client.ValidateInput(data.Text, s.minLength)
	if err != nil {
		data.Error = err.Error()
		c.HTML(http.StatusOK, render.PageName, data)
		return
	}

	outcome, err := s.checker.Check(c.Request.Context(), text)
	if err != nil {
		status, msg := ErrorStatus(err)
		data.Error = msg
		c.HTML(status, render.PageName, data)
		return
	}

	if outcome.Fallback {
		c.Header(client.FallbackHeader, "true")
	}
	data.Result = outcome.Result
	data.Fallback = outcome.Fallback
	data.Notice = "Analysis complete!"
	c.HTML(http.StatusOK, render.PageName, data)
}
