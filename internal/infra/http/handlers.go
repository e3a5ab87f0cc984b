package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/JDVlist/iot-sensors-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type MeasurementStore interface {
	Create(ctx context.Context, m domain.Measurement) (domain.Measurement, error)
	List(ctx context.Context, limit int) ([]domain.Measurement, error)
}

type HeroStore interface {
	Create(ctx context.Context, h domain.Hero) (domain.Hero, error)
	List(ctx context.Context, limit int) ([]domain.Hero, error)
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type measurementRequest struct {
	DeviceID  string     `json:"device_id" binding:"required"`
	Sensor    string     `json:"sensor" binding:"required"`
	Value     *float64   `json:"value" binding:"required"`
	Timestamp *time.Time `json:"ts"`
}

type heroRequest struct {
	Name       string `json:"name" binding:"required"`
	SecretName string `json:"secret_name" binding:"required"`
	Age        *int   `json:"age"`
}

func (s *Server) handleGreeting(c *gin.Context) {
	c.String(http.StatusOK, "Hello, Docker-iot-World!")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateMeasurement(c *gin.Context) {
	var req measurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	record := domain.NewMeasurement(domain.MeasurementInput{
		DeviceID:  req.DeviceID,
		Sensor:    req.Sensor,
		Value:     *req.Value,
		Timestamp: req.Timestamp,
	}, time.Now())

	created, err := s.measurements.Create(c.Request.Context(), record)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) handleListMeasurements(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	records, err := s.measurements.List(c.Request.Context(), limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleCreateHero(c *gin.Context) {
	var req heroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	record := domain.NewHero(domain.HeroInput{
		Name:       req.Name,
		SecretName: req.SecretName,
		Age:        req.Age,
	})

	created, err := s.heroes.Create(c.Request.Context(), record)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) handleListHeroes(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	records, err := s.heroes.List(c.Request.Context(), limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// parseLimit resolves the list bound, writing a validation error and
// returning false when the value is not an integer in [1,1000]. Nothing is
// queried on the failure path.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("limit", strconv.Itoa(domain.DefaultListLimit))
	limit, err := strconv.Atoi(raw)
	if err != nil || domain.ValidateListLimit(limit) != nil {
		writeErrorCode(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid limit", map[string]string{
			"limit": fmt.Sprintf("must be an integer between %d and %d", domain.MinListLimit, domain.MaxListLimit),
		})
		return 0, false
	}
	return limit, true
}

func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = validationMessage(fe)
		}
		writeErrorCode(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid payload", details)
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		writeErrorCode(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid payload", map[string]string{
			typeErr.Field: "invalid type",
		})
		return
	}
	writeErrorCode(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid json", nil)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	default:
		return "invalid value"
	}
}

// writeStoreError surfaces store failures as a generic server error. The
// underlying error is logged but never leaks connection details to the
// caller.
func writeStoreError(c *gin.Context, err error) {
	log.WithFields(log.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).WithError(err).Error("store operation failed")
	writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}

func writeErrorCode(c *gin.Context, status int, code, message string, details map[string]string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
		Details: details,
	})
}
