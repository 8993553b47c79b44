package bricklink

import (
	"errors"
	"time"
)

// Config holds credentials and transport settings for the BrickLink store API.
type Config struct {
	// OAuth1 consumer credentials issued for the store
	ConsumerKey    string
	ConsumerSecret string
	// OAuth1 access token bound to the registered IP
	TokenValue  string
	TokenSecret string
	// UseHTTPS selects the https scheme for the default base URL
	UseHTTPS bool
	// BaseURL overrides the derived API endpoint when set
	BaseURL        string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	// HTTPErrors treats non-2xx transport statuses as transport failures
	HTTPErrors bool
	// Debug appends a request/response logging step to the envelope pipeline
	Debug bool
}

const (
	// APIPathPrefix is the path every store API resource lives under.
	APIPathPrefix = "/api/store/v1/"
	apiHost       = "api.bricklink.com"

	defaultTimeout        = 15 * time.Second
	defaultConnectTimeout = 5 * time.Second
)

var (
	ErrConfigMissingConsumerKey    = errors.New("bricklink: consumer key is required")
	ErrConfigMissingConsumerSecret = errors.New("bricklink: consumer secret is required")
	ErrConfigMissingToken          = errors.New("bricklink: token value and secret are required")
)

// NewConfig creates a configuration with defaults for the given credentials.
func NewConfig(consumerKey, consumerSecret, tokenValue, tokenSecret string) *Config {
	return &Config{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		TokenValue:     tokenValue,
		TokenSecret:    tokenSecret,
		UseHTTPS:       true,
		Timeout:        defaultTimeout,
		ConnectTimeout: defaultConnectTimeout,
		HTTPErrors:     true,
	}
}

// Validate checks credentials and fills in defaults for unset transport fields.
func (c *Config) Validate() error {
	if c.ConsumerKey == "" {
		return ErrConfigMissingConsumerKey
	}
	if c.ConsumerSecret == "" {
		return ErrConfigMissingConsumerSecret
	}
	if c.TokenValue == "" || c.TokenSecret == "" {
		return ErrConfigMissingToken
	}
	if c.BaseURL == "" {
		c.BaseURL = c.defaultBaseURL()
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = defaultConnectTimeout
	}
	return nil
}

func (c *Config) defaultBaseURL() string {
	scheme := "https"
	if !c.UseHTTPS {
		scheme = "http"
	}
	return scheme + "://" + apiHost + APIPathPrefix
}
