package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved viewer configuration.
type Config interface {
	// MarkersPath is the directory holding one position marker per series.
	MarkersPath() string
	// PagesPath is the directory holding one page directory per series.
	PagesPath() string
	Series() string
	Radius() int
	MaxChunkHeight() int
	Filter() string
	ScrollStep() float64
	PanStep() float64
	ZoomStep() float64
	WindowSize() (width, height int)
}

// ConfigFile is the base name viper searches for; the extension is implicit.
const ConfigFile = ".viewer"

// ConfigPathEnv overrides the directory searched for the config file first.
const ConfigPathEnv = "VIEWER_CONFIG_PATH"

// LoadConfig reads .viewer from $VIEWER_CONFIG_PATH, the working directory or
// $HOME, layered over VIEWER_* environment variables and defaults. A missing
// file is fine; a malformed one is an error.
func LoadConfig() (Config, error) {
	v := viper.New()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("store: working directory: %w", err)
	}

	v.SetDefault("markers", "/home/.p")
	v.SetDefault("pages", "/home/.m")
	v.SetDefault("series", filepath.Base(cwd))
	v.SetDefault("radius", 2)
	v.SetDefault("max_chunk_height", 16384)
	v.SetDefault("filter", "nearest")
	v.SetDefault("scroll_step", 120)
	v.SetDefault("pan_step", 80)
	v.SetDefault("zoom_step", 1.25)
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 960)

	v.SetConfigName(ConfigFile) // .yaml is implicit
	v.SetEnvPrefix("VIEWER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: reading config file: %w", err)
		}
	}

	markers, err := homedir.Expand(v.GetString("markers"))
	if err != nil {
		return nil, fmt.Errorf("store: markers path: %w", err)
	}
	pages, err := homedir.Expand(v.GetString("pages"))
	if err != nil {
		return nil, fmt.Errorf("store: pages path: %w", err)
	}

	return &Settings{
		Markers:   markers,
		Pages:     pages,
		Name:      v.GetString("series"),
		Window:    v.GetInt("radius"),
		MaxChunk:  v.GetInt("max_chunk_height"),
		Filtering: v.GetString("filter"),
		Scroll:    v.GetFloat64("scroll_step"),
		PanBy:     v.GetFloat64("pan_step"),
		ZoomBy:    v.GetFloat64("zoom_step"),
		Width:     v.GetInt("window.width"),
		Height:    v.GetInt("window.height"),
		File:      v.ConfigFileUsed(),
	}, nil
}

// Settings is a literal Config.
type Settings struct {
	Markers   string  `json:"markers"`
	Pages     string  `json:"pages"`
	Name      string  `json:"series"`
	Window    int     `json:"radius"`
	MaxChunk  int     `json:"max_chunk_height"`
	Filtering string  `json:"filter"`
	Scroll    float64 `json:"scroll_step"`
	PanBy     float64 `json:"pan_step"`
	ZoomBy    float64 `json:"zoom_step"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`

	// File is the config file that was read, if any.
	File string `json:"file,omitempty"`
}

func (s *Settings) MarkersPath() string { return s.Markers }
func (s *Settings) PagesPath() string   { return s.Pages }
func (s *Settings) Series() string      { return s.Name }
func (s *Settings) Radius() int         { return max(s.Window, 0) }
func (s *Settings) Filter() string      { return s.Filtering }
func (s *Settings) ScrollStep() float64 { return s.Scroll }
func (s *Settings) PanStep() float64    { return s.PanBy }
func (s *Settings) ZoomStep() float64   { return s.ZoomBy }

func (s *Settings) WindowSize() (width, height int) { return s.Width, s.Height }

func (s *Settings) MaxChunkHeight() int {
	if s.MaxChunk <= 0 {
		return 16384
	}
	return s.MaxChunk
}
