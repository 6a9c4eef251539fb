package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/unitconv/pkg/config"
	"github.com/charlie0129/unitconv/pkg/daemon"
	"github.com/charlie0129/unitconv/pkg/events"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseFloatArg(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"5", 5, false},
		{"0", 0, false},
		{"2.5e3", 2500, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFloatArg(tt.in, "value")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertLocal(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "unitconv.json")

	out, err := run(t, "convert", "5", "mile", "kilometer", "--local", "--config", confPath)
	require.NoError(t, err)
	assert.Equal(t, "5 Mile (mi) = 8.05 Kilometer (km)\n", out)

	out, err = run(t, "convert", "100", "degC", "degF", "--local", "-p", "1", "--config", confPath)
	require.NoError(t, err)
	assert.Equal(t, "100 Celsius (°C) = 212.0 Fahrenheit (°F)\n", out)

	out, err = run(t, "convert", "1", "meter", "second", "--local", "--config", confPath)
	assert.Error(t, err)
	assert.Contains(t, out, "different types of units")

	_, err = run(t, "convert", "--local", "--config", confPath, "--", "-3", "meter", "foot")
	assert.Error(t, err)
}

func TestCommandsAgainstDaemon(t *testing.T) {
	conf, err := config.NewFile(filepath.Join(t.TempDir(), "unitconv.json"))
	require.NoError(t, err)
	ts := httptest.NewServer(daemon.NewServer(conf).Handler())
	defer ts.Close()

	out, err := run(t, "convert", "1", "Hour (h)", "Minute (min)", "-c", "Time", "--daemon-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "1 Hour (h) = 60.00 Minute (min)\n", out)

	_, err = run(t, "convert", "1", "hour", "minute", "-p", "13", "--daemon-url", ts.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precision must be between 0 and")

	out, err = run(t, "categories", "--daemon-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "Length\nMass\nTemperature\nVolume\nTime\nArea\nSpeed\n", out)

	out, err = run(t, "units", "speed", "--daemon-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Speed:")
	assert.Contains(t, out, "mile/hour")

	_, err = run(t, "precision", "4", "--daemon-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, 4, conf.Precision())

	out, err = run(t, "history", "--daemon-url", ts.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "hour -> minute = 60")

	_, err = run(t, "history", "--clear", "--daemon-url", ts.URL)
	require.NoError(t, err)
	out, err = run(t, "history", "--daemon-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "No conversions yet.\n", out)
}

func TestUnitsLocal(t *testing.T) {
	out, err := run(t, "units", "Temperature", "--local")
	require.NoError(t, err)
	assert.Contains(t, out, "Celsius (°C)")
	assert.Contains(t, out, "degF")

	_, err = run(t, "units", "Energy", "--local")
	assert.Error(t, err)
}

func TestPrintEvents(t *testing.T) {
	evCh := make(chan events.Event, 4)
	evCh <- events.Event{Name: events.ConversionCompleted, Data: json.RawMessage(`{"value":1,"from":"meter","to":"kilogram","kind":"incompatible"}`)}
	evCh <- events.Event{Name: events.HistoryPruned, Data: json.RawMessage(`3`)}
	evCh <- events.Event{Name: events.ConfigChanged, Data: json.RawMessage(`5`)}
	evCh <- events.Event{Name: events.HistoryCleared, Data: json.RawMessage(`{}`)}
	close(evCh)

	var out bytes.Buffer
	printEvents(&out, evCh)

	got := out.String()
	assert.Contains(t, got, "1 meter -> kilogram incompatible")
	assert.Contains(t, got, "pruned 3 history records")
	assert.Contains(t, got, "precision is 5")
	assert.Contains(t, got, "history cleared")
}
