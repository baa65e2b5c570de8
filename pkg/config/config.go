// Package config loads the toolkit settings from the environment.
//
// Settings are resolved once at process start and passed by value into
// every component constructor. No component reads the environment after
// Load returns, so a test run sees one consistent configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissing indicates a required environment value is absent.
// Use errors.Is to detect it; the wrapped message names the variable.
var ErrMissing = errors.New("missing configuration")

// Default durations applied when the corresponding variables are unset.
const (
	DefaultTimeout = 30 * time.Second
	DefaultSettle  = 500 * time.Millisecond
)

// Settings holds everything the toolkit needs to drive a CRM instance.
type Settings struct {
	// AppURL is the root URL of the model-driven app.
	AppURL string

	// APIURL is the Web API endpoint root. Defaults to
	// <AppURL>/api/data/v9.2 when CRM_API_URL is unset.
	APIURL string

	// Username and Password authenticate the interactive browser session.
	Username string
	Password string

	// APIToken is the bearer token used for direct Web API calls.
	APIToken string

	// Headless controls whether the browser runs without a window.
	Headless bool

	// DefaultTimeout bounds individual automation steps and the
	// readiness poll for the host client object.
	DefaultTimeout time.Duration

	// SettleTime is the default pause after a form field write, giving
	// the app's change handlers time to run.
	SettleTime time.Duration
}

// Load reads settings from envFile (ignored when absent) and the process
// environment. Required values are validated eagerly so a misconfigured
// run fails before any browser session is opened.
func Load(envFile string) (Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Settings{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	s := Settings{
		AppURL:         strings.TrimRight(os.Getenv("CRM_APP_URL"), "/"),
		APIURL:         strings.TrimRight(os.Getenv("CRM_API_URL"), "/"),
		Username:       os.Getenv("CRM_USERNAME"),
		Password:       os.Getenv("CRM_PASSWORD"),
		APIToken:       os.Getenv("CRM_API_TOKEN"),
		Headless:       true,
		DefaultTimeout: DefaultTimeout,
		SettleTime:     DefaultSettle,
	}

	var missing []string
	if s.AppURL == "" {
		missing = append(missing, "CRM_APP_URL")
	}
	if s.Username == "" {
		missing = append(missing, "CRM_USERNAME")
	}
	if s.Password == "" {
		missing = append(missing, "CRM_PASSWORD")
	}
	if len(missing) > 0 {
		return Settings{}, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	if s.APIURL == "" {
		s.APIURL = s.AppURL + "/api/data/v9.2"
	}

	if v := os.Getenv("CRM_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return Settings{}, fmt.Errorf("CRM_HEADLESS: %w", err)
		}
		s.Headless = headless
	}

	var err error
	if s.DefaultTimeout, err = durationFromEnv("CRM_TIMEOUT_MS", DefaultTimeout); err != nil {
		return Settings{}, err
	}
	if s.SettleTime, err = durationFromEnv("CRM_SETTLE_MS", DefaultSettle); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// RequireAPIToken validates that the settings can authenticate direct
// Web API calls. Split out from Load because UI-only suites run without
// a token.
func (s Settings) RequireAPIToken() error {
	if s.APIToken == "" {
		return fmt.Errorf("%w: CRM_API_TOKEN", ErrMissing)
	}
	return nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if ms < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
