package http

import (
	"fmt"
	"net"
	"sync"

	"github.com/Meesho/BharatMLStack/irisserve/internal/config"
	"github.com/Meesho/BharatMLStack/irisserve/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/irisserve/internal/health"
	"github.com/Meesho/BharatMLStack/irisserve/pkg/metric"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	server *Server
	once   sync.Once
)

// Server binds the gin engine to the service's injected state: the
// prediction engine, the health tracker, and the metrics recorder.
type Server struct {
	router  *gin.Engine
	engine  *predict.Handler
	tracker *health.Tracker
	metrics *metric.Recorder
}

func Init(cfg config.Configs, engine *predict.Handler, tracker *health.Tracker, metrics *metric.Recorder) {
	once.Do(func() {
		server = newServer(cfg, engine, tracker, metrics)
	})
}

func Instance() *Server {
	if server == nil {
		log.Fatal().Msg("HTTP server not initialized")
	}
	return server
}

func newServer(cfg config.Configs, engine *predict.Handler, tracker *health.Tracker, metrics *metric.Recorder) *Server {
	env := cfg.AppEnv
	if env == "prod" || env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	s := &Server{
		router:  router,
		engine:  engine,
		tracker: tracker,
		metrics: metrics,
	}

	router.Use(RequestMiddleware(metrics))
	router.Use(gin.CustomRecovery(recoveryHandler))

	RegisterRoutes(router, s)
	return s
}

// Run binds the listener, marks the process alive, and serves until the
// listener closes.
func (s *Server) Run(port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return err
	}
	s.tracker.MarkAlive()
	return s.router.RunListener(listener)
}
