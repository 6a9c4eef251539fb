package daemon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/converter"
	"github.com/charlie0129/unitconv/pkg/events"
	"github.com/charlie0129/unitconv/pkg/history"
	"github.com/charlie0129/unitconv/pkg/types"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine, string) {
	t.Helper()

	p := filepath.Join(t.TempDir(), "unitconv.json")
	conf, err := config.NewFile(p)
	require.NoError(t, err)

	s := NewServer(conf)
	return s, s.setupRoutes(), p
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetCategories(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := do(router, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var names []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Equal(t, catalog.Names(), names)
}

func TestGetCategory(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := do(router, http.MethodGet, "/categories/speed", "")
	require.Equal(t, http.StatusOK, w.Code)

	var c catalog.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, "Speed", c.Name)
	assert.Len(t, c.Units, 3)

	w = do(router, http.MethodGet, "/categories/energy", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantKind    converter.Kind
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"value": 5, "from": "mile", "to": "kilometer"}`,
			wantCode:    http.StatusOK,
			wantKind:    converter.KindSuccess,
			wantMessage: "5 Mile (mi) = 8.05 Kilometer (km)",
		},
		{
			name:        "labels within category",
			body:        `{"value": 100, "from": "Celsius (°C)", "to": "Fahrenheit (°F)", "category": "Temperature"}`,
			wantCode:    http.StatusOK,
			wantKind:    converter.KindSuccess,
			wantMessage: "100 Celsius (°C) = 212.00 Fahrenheit (°F)",
		},
		{
			name:        "incompatible",
			body:        `{"value": 1, "from": "meter", "to": "kilogram"}`,
			wantCode:    http.StatusOK,
			wantKind:    converter.KindIncompatible,
			wantMessage: "Cannot convert Meter (m) to Kilogram (kg) because they are different types of units.",
		},
		{
			name:     "failure",
			body:     `{"value": 1, "from": "unknown_unit", "to": "meter"}`,
			wantCode: http.StatusOK,
			wantKind: converter.KindFailure,
		},
		{name: "negative value", body: `{"value": -1, "from": "meter", "to": "foot"}`, wantCode: http.StatusBadRequest},
		{name: "missing unit", body: `{"value": 1, "from": "meter"}`, wantCode: http.StatusBadRequest},
		{name: "unit outside category", body: `{"value": 1, "from": "meter", "to": "gram", "category": "Length"}`, wantCode: http.StatusBadRequest},
		{name: "malformed body", body: `{"value": `, wantCode: http.StatusBadRequest},
		{
			name:     "overflow",
			body:     `{"value": 1e308, "from": "kilometer", "to": "millimeter"}`,
			wantCode: http.StatusOK,
			wantKind: converter.KindFailure,
		},
		{
			name:     "deep nesting",
			body:     `{"value": 1, "from": "` + strings.Repeat("(", 1000) + "meter" + strings.Repeat(")", 1000) + `", "to": "meter"}`,
			wantCode: http.StatusOK,
			wantKind: converter.KindFailure,
		},
		{
			name:     "oversized body",
			body:     `{"value": 1, "from": "` + strings.Repeat("(", maxRequestBody) + `meter", "to": "meter"}`,
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, router, _ := newTestServer(t)

			w := do(router, http.MethodPost, "/convert", tt.body)
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp types.ConvertResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.ID)
			assert.Equal(t, tt.wantKind, resp.Result.Kind)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Message)
			} else {
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestHistory(t *testing.T) {
	_, router, _ := newTestServer(t)

	for _, body := range []string{
		`{"value": 1, "from": "foot", "to": "inch"}`,
		`{"value": 2, "from": "pound", "to": "ounce"}`,
	} {
		w := do(router, http.MethodPost, "/convert", body)
		require.Equal(t, http.StatusOK, w.Code)
	}
	// Rejected requests are not recorded.
	do(router, http.MethodPost, "/convert", `{"value": -2, "from": "pound", "to": "ounce"}`)

	w := do(router, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var records []history.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "foot", records[0].From)
	assert.InDelta(t, 32, records[1].Result.Magnitude, 1e-9)

	w = do(router, http.MethodDelete, "/history", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/history", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Empty(t, records)
}

func TestHistoryAfterOverflow(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := do(router, http.MethodPost, "/convert", `{"value": 1e308, "from": "kilometer", "to": "millimeter"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Body.String())

	w = do(router, http.MethodPost, "/convert", `{"value": 1, "from": "meter", "to": "foot"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var records []history.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, converter.KindFailure, records[0].Result.Kind)
	assert.Equal(t, "result out of range", records[0].Result.Message)
	assert.Equal(t, converter.KindSuccess, records[1].Result.Kind)
}

func TestSetPrecision(t *testing.T) {
	s, router, p := newTestServer(t)

	w := do(router, http.MethodPut, "/precision", "4")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 4, s.conf.Precision())

	saved, err := config.NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, 4, saved.Precision())

	w = do(router, http.MethodPost, "/convert", `{"value": 5, "from": "mile", "to": "kilometer"}`)
	var resp types.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "5 Mile (mi) = 8.0467 Kilometer (km)", resp.Message)

	w = do(router, http.MethodPut, "/precision", "13")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(router, http.MethodPut, "/precision", `"two"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetConfig(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := do(router, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, w.Code)

	var raw config.RawFileConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.NotNil(t, raw.Precision)
	assert.Equal(t, 2, *raw.Precision)
}

func TestGetVersion(t *testing.T) {
	_, router, _ := newTestServer(t)

	w := do(router, http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, w.Code)

	var v string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.NotEmpty(t, v)
}

func TestReload(t *testing.T) {
	s, router, p := newTestServer(t)

	for i := 0; i < 5; i++ {
		do(router, http.MethodPost, "/convert", `{"value": 1, "from": "day", "to": "hour"}`)
	}
	require.Equal(t, 5, s.history.Len())

	conf := config.NewFileFromConfig(nil, p)
	conf.SetHistorySize(2)
	require.NoError(t, conf.Save())

	require.NoError(t, s.reload())
	assert.Equal(t, 2, s.history.Len())
}

func TestPruneHistory(t *testing.T) {
	s, router, _ := newTestServer(t)

	do(router, http.MethodPost, "/convert", `{"value": 1, "from": "day", "to": "hour"}`)
	require.NoError(t, s.pruneHistory())
	assert.Equal(t, 1, s.history.Len())

	sub := s.hub.Subscribe()
	defer s.hub.Unsubscribe(sub)

	s.conf.SetHistoryMaxAge(time.Nanosecond)
	time.Sleep(time.Millisecond)
	require.NoError(t, s.pruneHistory())
	assert.Equal(t, 0, s.history.Len())

	select {
	case ev := <-sub:
		assert.Equal(t, events.HistoryPruned, ev.Name)
	case <-time.After(time.Second):
		t.Fatal("expected a history.pruned event")
	}
}
