package http

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/JDVlist/iot-sensors-backend/internal/config"
	"github.com/JDVlist/iot-sensors-backend/internal/infra/db"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	cfg config.Config
	r   *gin.Engine

	measurements MeasurementStore
	heroes       HeroStore
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	return NewServerWithDeps(cfg, ServerDeps{
		Measurements: db.NewMeasurementRepository(store.DB),
		Heroes:       db.NewHeroRepository(store.DB),
	})
}

// ServerDeps lets tests swap in their own stores.
type ServerDeps struct {
	Measurements MeasurementStore
	Heroes       HeroStore
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	registerTagNames()
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	s := &Server{
		cfg:          cfg,
		r:            r,
		measurements: deps.Measurements,
		heroes:       deps.Heroes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.r.GET("/", s.handleGreeting)
	s.r.GET("/healthz", s.handleHealth)

	s.r.POST("/measurements/", s.handleCreateMeasurement)
	s.r.GET("/measurements/", s.handleListMeasurements)
	s.r.POST("/heroes/", s.handleCreateHero)
	s.r.GET("/heroes/", s.handleListHeroes)
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start),
		}).Info("request handled")
	}
}

var tagNamesOnce sync.Once

// registerTagNames makes the binding validator report json field names in
// its errors instead of Go struct field names.
func registerTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
