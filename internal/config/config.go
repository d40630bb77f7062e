// Package config loads lessonplan settings with viper.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	KeyChatProvider     = "chat.provider"
	KeyChatModel        = "chat.model"
	KeyChatBaseURL      = "chat.base-url"
	KeyChatAPIKey       = "chat.api-key"
	KeyChatSystemPrompt = "chat.system-prompt"

	KeySaveDelay    = "save.delay"
	KeyDebug        = "debug"
	KeyOutputFormat = "output.format"
)

const (
	DefaultProvider     = "openai"
	DefaultModel        = "gpt-4o-mini"
	DefaultSaveDelay    = 2 * time.Second
	DefaultOutputFormat = "dark"

	// DefaultSystemPrompt frames the assistant for lesson planning.
	DefaultSystemPrompt = "You are a teaching assistant helping a teacher plan lessons. " +
		"Suggest lesson titles, objectives, activities, and tags. Keep answers short and practical."

	envPrefix = "LP"
	dirName   = ".lessonplan"
	fileName  = "config.yaml"
)

// sources are the config files merged over the defaults, lowest precedence
// first. Either may be empty or missing.
type sources struct {
	user    string
	project string
}

func (s sources) paths() []string {
	return []string{s.user, s.project}
}

var (
	once    sync.Once
	mu      sync.RWMutex
	v       *viper.Viper
	files   []string
	loadErr error
)

// Initialize loads configuration once, using the precedence:
// defaults < ~/.lessonplan/config.yaml < nearest .lessonplan/config.yaml
// above the working directory < LP_* environment variables < overrides.
func Initialize() error {
	once.Do(func() {
		src, err := defaultSources()
		if err != nil {
			loadErr = err
			return
		}
		loadErr = load(src)
	})
	return loadErr
}

// initializeAt is Initialize with the working directory and user file
// supplied, for tests.
func initializeAt(workingDir, userFile string) error {
	once.Do(func() {
		project, err := findProjectConfig(workingDir)
		if err != nil {
			loadErr = err
			return
		}
		loadErr = load(sources{user: userFile, project: project})
	})
	return loadErr
}

// ApplyOverrides sets values that win over every other source, typically
// from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	for k, val := range overrides {
		v.Set(k, val)
	}
	return nil
}

// GetString returns a string setting, or "" if config failed to load.
func GetString(key string) string {
	if cfg := instance(); cfg != nil {
		return cfg.GetString(key)
	}
	return ""
}

// GetBool returns a bool setting, or false if config failed to load.
func GetBool(key string) bool {
	if cfg := instance(); cfg != nil {
		return cfg.GetBool(key)
	}
	return false
}

// GetDuration returns a duration setting, or 0 if config failed to load.
func GetDuration(key string) time.Duration {
	if cfg := instance(); cfg != nil {
		return cfg.GetDuration(key)
	}
	return 0
}

// ConfigFiles returns the config files that were found and merged.
func ConfigFiles() []string {
	mu.RLock()
	defer mu.RUnlock()
	return append([]string(nil), files...)
}

func instance() *viper.Viper {
	if err := Initialize(); err != nil {
		return nil
	}
	mu.RLock()
	defer mu.RUnlock()
	return v
}

func defaultSources() (sources, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return sources{}, fmt.Errorf("determine user home: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return sources{}, fmt.Errorf("determine working directory: %w", err)
	}
	project, err := findProjectConfig(wd)
	if err != nil {
		return sources{}, err
	}
	return sources{user: filepath.Join(home, dirName, fileName), project: project}, nil
}

func load(src sources) error {
	cfg := viper.New()
	cfg.SetConfigType("yaml")
	setDefaults(cfg)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	var merged []string
	for _, path := range src.paths() {
		ok, err := mergeFile(cfg, path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if ok {
			merged = append(merged, path)
		}
	}

	mu.Lock()
	defer mu.Unlock()
	v = cfg
	files = merged
	return nil
}

// mergeFile merges path into cfg. Missing and empty files are skipped.
func mergeFile(cfg *viper.Viper, path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil && isDir(path):
		return false, fmt.Errorf("config path %s is a directory", path)
	case err != nil:
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if err := cfg.MergeConfig(bytes.NewReader(data)); err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// findProjectConfig walks up from dir looking for .lessonplan/config.yaml.
func findProjectConfig(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	for {
		candidate := filepath.Join(dir, dirName, fileName)
		if _, err := os.Stat(candidate); err == nil {
			if isDir(candidate) {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(cfg *viper.Viper) {
	cfg.SetDefault(KeyChatProvider, DefaultProvider)
	cfg.SetDefault(KeyChatModel, DefaultModel)
	cfg.SetDefault(KeyChatBaseURL, "")
	cfg.SetDefault(KeyChatAPIKey, "")
	cfg.SetDefault(KeyChatSystemPrompt, DefaultSystemPrompt)
	cfg.SetDefault(KeySaveDelay, DefaultSaveDelay)
	cfg.SetDefault(KeyDebug, false)
	cfg.SetDefault(KeyOutputFormat, DefaultOutputFormat)
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	v = nil
	files = nil
	loadErr = nil
	once = sync.Once{}
}

// ResetForTesting reloads config from an empty temp directory so tests in
// other packages do not see the user's files. Returns a cleanup function.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = initializeAt(tmp, filepath.Join(tmp, "user.yaml"))
	return reset
}
