package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/unitconv/pkg/utils/ptr"
)

const (
	// MaxPrecision is the largest number of decimal places results are shown with.
	MaxPrecision = 12
	// MaxHistorySize bounds how many conversions the daemon remembers.
	MaxHistorySize = 10000
)

var (
	defaultFileConfig = &RawFileConfig{
		Precision:          ptr.To(2),
		HistorySize:        ptr.To(100),
		AllowNonRootAccess: ptr.To(false),
		HTTPAddr:           ptr.To(""),
		HistoryMaxAge:      ptr.To(""),
		PruneSchedule:      ptr.To("@every 10m"),
	}
)

// ScheduleParser parses cron expressions with an optional seconds field and
// descriptors such as "@hourly" or "@every 10m".
var ScheduleParser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// RawFileConfig is the on-disk form of the config. HistoryMaxAge is a
// duration such as "24h"; empty keeps records until historySize pushes them
// out.
type RawFileConfig struct {
	Precision          *int    `json:"precision,omitempty"`
	HistorySize        *int    `json:"historySize,omitempty"`
	AllowNonRootAccess *bool   `json:"allowNonRootAccess,omitempty"`
	HTTPAddr           *string `json:"httpAddr,omitempty"`
	HistoryMaxAge      *string `json:"historyMaxAge,omitempty"`
	PruneSchedule      *string `json:"pruneSchedule,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		Precision:          ptr.To(c.Precision()),
		HistorySize:        ptr.To(c.HistorySize()),
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
		HTTPAddr:           ptr.To(c.HTTPAddr()),
		HistoryMaxAge:      ptr.To(""),
		PruneSchedule:      ptr.To(c.PruneSchedule()),
	}
	if d := c.HistoryMaxAge(); d > 0 {
		rawConfig.HistoryMaxAge = ptr.To(d.String())
	}

	return rawConfig, nil
}

func (f *File) Precision() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Precision != nil {
		return *f.c.Precision
	}
	return *defaultFileConfig.Precision
}

func (f *File) HistorySize() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.HistorySize != nil {
		return *f.c.HistorySize
	}
	return *defaultFileConfig.HistorySize
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.AllowNonRootAccess != nil {
		return *f.c.AllowNonRootAccess
	}
	return *defaultFileConfig.AllowNonRootAccess
}

func (f *File) HTTPAddr() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.HTTPAddr != nil {
		return *f.c.HTTPAddr
	}
	return *defaultFileConfig.HTTPAddr
}

func (f *File) HistoryMaxAge() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	s := *defaultFileConfig.HistoryMaxAge
	if f.c.HistoryMaxAge != nil {
		s = *f.c.HistoryMaxAge
	}
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logrus.Warnf("invalid historyMaxAge %q, keeping records forever", s)
		return 0
	}
	return d
}

func (f *File) PruneSchedule() string {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.PruneSchedule != nil {
		return *f.c.PruneSchedule
	}
	return *defaultFileConfig.PruneSchedule
}

func (f *File) SetPrecision(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < 0 || i > MaxPrecision {
		panic("precision must be between 0 and 12")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Precision = &i
}

func (f *File) SetHistorySize(i int) {
	if f.c == nil {
		panic("config is nil")
	}

	if i < 0 || i > MaxHistorySize {
		panic("history size must be between 0 and 10000")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HistorySize = &i
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

func (f *File) SetHTTPAddr(addr string) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HTTPAddr = &addr
}

func (f *File) SetHistoryMaxAge(d time.Duration) {
	if f.c == nil {
		panic("config is nil")
	}

	if d < 0 {
		panic("history max age must not be negative")
	}

	s := ""
	if d > 0 {
		s = d.String()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HistoryMaxAge = &s
}

func (f *File) SetPruneSchedule(expr string) {
	if f.c == nil {
		panic("config is nil")
	}

	if _, err := ScheduleParser.Parse(expr); err != nil {
		panic("invalid prune schedule: " + err.Error())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.PruneSchedule = &expr
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file means defaults. Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	if err := conf.validate(); err != nil {
		return pkgerrors.Wrapf(err, "invalid config in file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (c *RawFileConfig) validate() error {
	if c.Precision != nil && (*c.Precision < 0 || *c.Precision > MaxPrecision) {
		return pkgerrors.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, *c.Precision)
	}
	if c.HistorySize != nil && (*c.HistorySize < 0 || *c.HistorySize > MaxHistorySize) {
		return pkgerrors.Errorf("historySize must be between 0 and %d, got %d", MaxHistorySize, *c.HistorySize)
	}
	if c.HistoryMaxAge != nil && *c.HistoryMaxAge != "" {
		d, err := time.ParseDuration(*c.HistoryMaxAge)
		if err != nil {
			return pkgerrors.Wrapf(err, "invalid historyMaxAge")
		}
		if d < 0 {
			return pkgerrors.Errorf("historyMaxAge must not be negative, got %s", d)
		}
	}
	if c.PruneSchedule != nil {
		if _, err := ScheduleParser.Parse(*c.PruneSchedule); err != nil {
			return pkgerrors.Wrapf(err, "invalid pruneSchedule")
		}
	}
	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"precision":          f.Precision(),
		"historySize":        f.HistorySize(),
		"allowNonRootAccess": f.AllowNonRootAccess(),
		"httpAddr":           f.HTTPAddr(),
		"historyMaxAge":      f.HistoryMaxAge().String(),
		"pruneSchedule":      f.PruneSchedule(),
	}
}
