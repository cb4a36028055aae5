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

	appErrors "issuedeck/internal/errors"

	"github.com/spf13/viper"
)

const (
	KeyGitHubToken    = "github.token"
	KeyGitHubEndpoint = "github.endpoint"

	KeyRepositoryPath     = "repository.path"
	KeyIssuesPageSize     = "issues.page-size"
	KeyReactionsPageSize  = "reactions.page-size"
	KeyReactionContent    = "reaction.content"
	KeyRequestTimeoutSecs = "request-timeout-seconds"

	KeyOutputFormat = "output.format"
	KeyTheme        = "theme"

	KeyHistoryPath  = "history.path"
	KeyHistoryLimit = "history.limit"

	KeyDebugLogPath = "debug.log-path"
)

const (
	// DefaultRepositoryPath is the repository shown when nothing else is configured.
	DefaultRepositoryPath = "the-road-to-learn-react/the-road-to-learn-react"
	// DefaultRequestTimeoutSeconds bounds each GraphQL round trip.
	DefaultRequestTimeoutSeconds = 10

	envPrefix = "ISSUEDECK"
	dirName   = ".issuedeck"

	// fallbackTokenEnv is consulted when no issuedeck-specific token is set.
	fallbackTokenEnv = "GITHUB_TOKEN"
)

// Settings is a typed view of the merged configuration.
type Settings struct {
	GitHub struct {
		Token    string `mapstructure:"token"`
		Endpoint string `mapstructure:"endpoint"`
	} `mapstructure:"github"`
	Repository struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"repository"`
	Issues struct {
		PageSize int `mapstructure:"page-size"`
	} `mapstructure:"issues"`
	Reactions struct {
		PageSize int `mapstructure:"page-size"`
	} `mapstructure:"reactions"`
	Reaction struct {
		Content string `mapstructure:"content"`
	} `mapstructure:"reaction"`

	RequestTimeoutSeconds int `mapstructure:"request-timeout-seconds"`

	Output struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`

	Theme string `mapstructure:"theme"`

	History struct {
		Path  string `mapstructure:"path"`
		Limit int    `mapstructure:"limit"`
	} `mapstructure:"history"`
}

// RequestTimeout converts the configured seconds to a duration.
func (s Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return DefaultRequestTimeoutSeconds * time.Second
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option configures Initialize behaviour. Useful for tests to override paths.
type Option func(*initSettings)

// WithWorkingDir overrides the directory used for project config discovery.
func WithWorkingDir(dir string) Option {
	return func(cfg *initSettings) {
		cfg.workingDir = dir
	}
}

// WithProjectConfig explicitly sets the project config path instead of discovery.
func WithProjectConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.projectConfigPath = path
	}
}

// WithUserConfig overrides the default user config path.
func WithUserConfig(path string) Option {
	return func(cfg *initSettings) {
		cfg.userConfigPath = path
	}
}

var (
	configOnce sync.Once
	configMu   sync.RWMutex
	configInst *viper.Viper
	initErr    error

	// userConfigPathOverride is used by tests to redirect SaveTheme.
	userConfigPathOverride string
)

// Initialize loads configuration using the precedence:
// defaults < user config < project config < environment variables < overrides.
func Initialize(opts ...Option) error {
	configOnce.Do(func() {
		settings := initSettings{}
		for _, opt := range opts {
			opt(&settings)
		}
		initErr = configure(&settings)
	})
	return initErr
}

// ApplyOverrides injects values typically coming from CLI flags.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	if err := Initialize(); err != nil {
		return err
	}
	configMu.Lock()
	defer configMu.Unlock()
	if configInst == nil {
		return fmt.Errorf("configuration not initialized")
	}
	for k, v := range overrides {
		configInst.Set(k, v)
	}
	return nil
}

// Load returns the merged configuration as Settings.
func Load() (Settings, error) {
	v, err := getViper()
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, appErrors.New(appErrors.CodeConfigurationError, "decode configuration", err)
	}
	if strings.TrimSpace(s.GitHub.Token) == "" {
		s.GitHub.Token = strings.TrimSpace(os.Getenv(fallbackTokenEnv))
	}
	return s, nil
}

// GetString fetches a string configuration value, initializing on demand.
func GetString(key string) string {
	v, err := getViper()
	if err != nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt fetches an integer configuration value, initializing on demand.
func GetInt(key string) int {
	v, err := getViper()
	if err != nil {
		return 0
	}
	return v.GetInt(key)
}

func configure(settings *initSettings) error {
	workingDir := strings.TrimSpace(settings.workingDir)
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		workingDir = wd
	}

	userConfigPath := strings.TrimSpace(settings.userConfigPath)
	if userConfigPath == "" {
		path, err := defaultUserConfigPath()
		if err != nil {
			return err
		}
		userConfigPath = path
	}

	projectConfigPath := strings.TrimSpace(settings.projectConfigPath)
	if projectConfigPath == "" {
		path, err := findProjectConfig(workingDir)
		if err != nil {
			return err
		}
		projectConfigPath = path
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, userConfigPath); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "load user config", err)
	}
	if err := mergeConfigFile(v, projectConfigPath); err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "load project config", err)
	}

	configMu.Lock()
	defer configMu.Unlock()
	configInst = v
	return nil
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: Config loader intentionally reads user and project config files
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Dir returns ~/.issuedeck, where user config, history and logs live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine user home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

func defaultUserConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func findProjectConfig(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", nil
	}
	dir := startDir
	for {
		candidate := filepath.Join(dir, dirName, "config.yaml")
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %s is a directory", candidate)
			}
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyGitHubToken, "")
	v.SetDefault(KeyGitHubEndpoint, "https://api.github.com/graphql")
	v.SetDefault(KeyRepositoryPath, DefaultRepositoryPath)
	v.SetDefault(KeyIssuesPageSize, 5)
	v.SetDefault(KeyReactionsPageSize, 3)
	v.SetDefault(KeyReactionContent, "HOORAY")
	v.SetDefault(KeyRequestTimeoutSecs, DefaultRequestTimeoutSeconds)
	v.SetDefault(KeyOutputFormat, "rich")
	v.SetDefault(KeyTheme, "tokyonight")
	v.SetDefault(KeyHistoryPath, "")
	v.SetDefault(KeyHistoryLimit, 10)
	v.SetDefault(KeyDebugLogPath, "")
}

func getViper() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	configMu.RLock()
	defer configMu.RUnlock()
	if configInst == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return configInst, nil
}

// reset clears package state for tests.
func reset() {
	configMu.Lock()
	defer configMu.Unlock()
	configInst = nil
	initErr = nil
	configOnce = sync.Once{}
	userConfigPathOverride = ""
}

// ResetForTesting clears package state for tests in other packages.
// Returns a cleanup function that should be deferred.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	return reset
}

// SaveTheme persists the theme name to the nearest project config, or to
// the user config when no project config exists. The user config directory
// is created if needed; project config directories never are.
func SaveTheme(themeName string) error {
	targetPath, err := findWritableConfigPath()
	if err != nil {
		return fmt.Errorf("find config path: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(targetPath)
	_ = v.ReadInConfig() // missing file is fine

	v.Set(KeyTheme, themeName)

	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := v.WriteConfigAs(targetPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return Set(KeyTheme, themeName)
}

// Set updates a configuration key at runtime, initializing on demand.
func Set(key string, value any) error {
	return ApplyOverrides(map[string]any{key: value})
}

func findWritableConfigPath() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		if projectPath, err := findProjectConfig(wd); err == nil && projectPath != "" {
			return projectPath, nil
		}
	}
	if userConfigPathOverride != "" {
		return userConfigPathOverride, nil
	}
	return defaultUserConfigPath()
}
