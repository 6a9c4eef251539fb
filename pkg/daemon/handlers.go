package daemon

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/converter"
	"github.com/charlie0129/unitconv/pkg/events"
	"github.com/charlie0129/unitconv/pkg/types"
	"github.com/charlie0129/unitconv/pkg/version"
)

func (s *Server) getCategories(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, catalog.Names())
}

func (s *Server) getCategory(c *gin.Context) {
	name := c.Param("name")
	category, ok := catalog.Get(name)
	if !ok {
		err := fmt.Errorf("category %q not found", name)
		c.IndentedJSON(http.StatusNotFound, err.Error())
		_ = c.AbortWithError(http.StatusNotFound, err)
		return
	}

	c.IndentedJSON(http.StatusOK, category)
}

// maxRequestBody caps conversion requests; real ones are a few hundred bytes.
const maxRequestBody = 64 << 10

func (s *Server) convert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)

	var req converter.Request
	if err := c.BindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	resolved, res, msg, err := s.dispatcher.Do(req, s.conf.Precision())
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	rec := s.history.Add(resolved, res)
	s.hub.Publish(events.ConversionCompleted, events.ConversionEvent{
		ID:        rec.ID,
		Value:     rec.Value,
		From:      rec.From,
		To:        rec.To,
		Kind:      res.Kind.String(),
		Magnitude: res.Magnitude,
		Message:   res.Message,
		Ts:        rec.Time.Unix(),
	})

	logrus.WithFields(logrus.Fields{
		"id":   rec.ID,
		"from": resolved.From,
		"to":   resolved.To,
		"kind": res.Kind.String(),
	}).Debug("conversion completed")

	c.IndentedJSON(http.StatusOK, types.ConvertResponse{
		Record:  rec,
		Message: msg,
	})
}

func (s *Server) getHistory(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, s.history.List())
}

func (s *Server) clearHistory(c *gin.Context) {
	s.history.Clear()
	s.hub.Publish(events.HistoryCleared, struct{}{})
	logrus.Infof("history cleared")

	c.IndentedJSON(http.StatusOK, "ok")
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func (s *Server) setPrecision(c *gin.Context) {
	var p int
	if err := c.BindJSON(&p); err != nil {
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	if p < 0 || p > config.MaxPrecision {
		err := fmt.Errorf("precision must be between 0 and %d, got %d", config.MaxPrecision, p)
		c.IndentedJSON(http.StatusBadRequest, err.Error())
		_ = c.AbortWithError(http.StatusBadRequest, err)
		return
	}

	s.conf.SetPrecision(p)
	if err := s.conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		c.IndentedJSON(http.StatusInternalServerError, err.Error())
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	s.hub.Publish(events.ConfigChanged, p)
	logrus.Infof("set precision to %d", p)

	c.IndentedJSON(http.StatusCreated, fmt.Sprintf("results will be shown with %d decimal places", p))
}

// streamEvents sends hub events to the client as server-sent events until
// the client goes away. Repeated "name" query parameters select events.
func (s *Server) streamEvents(c *gin.Context) {
	ch := s.hub.Subscribe(c.QueryArray("name")...)
	defer s.hub.Unsubscribe(ch)

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	// Send headers now so subscribers know the stream is open.
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.Render(-1, sse.Event{
				Id:    strconv.FormatUint(ev.ID, 10),
				Event: ev.Name,
				Data:  string(ev.Data),
			})
			return true
		case <-keepalive.C:
			_, err := io.WriteString(w, ": keepalive\n\n")
			return err == nil
		}
	})
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
