package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/converter"
	"github.com/charlie0129/unitconv/pkg/events"
	"github.com/charlie0129/unitconv/pkg/history"
)

// Server holds the state shared by the HTTP handlers.
type Server struct {
	conf       config.Config
	dispatcher *converter.Dispatcher
	history    *history.Recorder
	hub        *events.EventHub
	pruner     *Scheduler
}

// NewServer returns a Server using conf for its settings.
func NewServer(conf config.Config) *Server {
	s := &Server{
		conf:       conf,
		dispatcher: converter.New(nil),
		history:    history.NewRecorder(conf.HistorySize()),
		hub:        events.NewEventHub(),
	}
	s.pruner = NewScheduler(s.pruneHistory, func(data any) {
		logrus.Errorf("history pruning: %v", data)
	})
	return s
}

// pruneHistory drops records older than the configured max age.
func (s *Server) pruneHistory() error {
	maxAge := s.conf.HistoryMaxAge()
	if maxAge <= 0 {
		return nil
	}
	n := s.history.PruneBefore(time.Now().Add(-maxAge))
	if n > 0 {
		logrus.WithField("maxAge", maxAge.String()).Debugf("pruned %d history records", n)
		s.hub.Publish(events.HistoryPruned, n)
	}
	return nil
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/categories", s.getCategories)
	router.GET("/categories/:name", s.getCategory)
	router.POST("/convert", s.convert)
	router.GET("/history", s.getHistory)
	router.DELETE("/history", s.clearHistory)
	router.GET("/config", s.getConfig)
	router.PUT("/precision", s.setPrecision)
	router.GET("/events", s.streamEvents)
	router.GET("/version", getVersion)

	return router
}

// Handler returns the HTTP handler serving the daemon API.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// reload re-reads the config and applies the settings that can change at
// runtime.
func (s *Server) reload() error {
	if err := s.conf.Load(); err != nil {
		return err
	}
	s.history.Resize(s.conf.HistorySize())
	if err := s.pruner.Schedule(s.conf.PruneSchedule()); err != nil {
		return err
	}
	if err := s.pruneHistory(); err != nil {
		return err
	}
	s.hub.Publish(events.ConfigChanged, s.conf.Precision())
	return nil
}

func Run(configPath string, unixSocketPath string, httpAddr string, allowNonRoot bool) error {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	s := NewServer(conf)
	router := s.setupRoutes()

	if err := s.pruner.Schedule(conf.PruneSchedule()); err != nil {
		return err
	}
	s.pruner.Start()
	defer s.pruner.Stop()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := s.reload()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
		}
	}()

	if httpAddr == "" {
		httpAddr = conf.HTTPAddr()
	}

	listeners, err := listen(unixSocketPath, httpAddr, conf.AllowNonRootAccess() || allowNonRoot)
	if err != nil {
		return err
	}

	// Cancelled on shutdown so that open event streams return.
	baseCtx, cancelBase := context.WithCancel(context.Background())
	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	serveErr := make(chan error, len(listeners))
	for _, l := range listeners {
		go func(l net.Listener) {
			logrus.Infof("http server listening on %s", l.Addr().String())
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}(l)
	}

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case runErr = <-serveErr:
		logrus.Errorf("http server failed: %v", runErr)
	}

	logrus.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(ctx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	cancel()

	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("failed to remove socket %s: %v", unixSocketPath, err)
	}

	logrus.Info("exiting")
	return runErr
}

func listen(unixSocketPath string, httpAddr string, allowNonRoot bool) ([]net.Listener, error) {
	var listeners []net.Listener

	// A socket left behind by a crashed daemon would make Listen fail.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return nil, pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}
	listeners = append(listeners, l)

	if allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			_ = l.Close()
			return nil, pkgerrors.Wrapf(err, "failed to chmod %s", unixSocketPath)
		}
	}

	if httpAddr != "" {
		tl, err := net.Listen("tcp", httpAddr)
		if err != nil {
			_ = l.Close()
			return nil, pkgerrors.Wrapf(err, "failed to listen on %s", httpAddr)
		}
		listeners = append(listeners, tl)
	}

	return listeners, nil
}
