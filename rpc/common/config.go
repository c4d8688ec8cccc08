package common

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
)

// --------------------------------------------------------------------------
// Server configuration struct
// --------------------------------------------------------------------------

var (
	ErrEmptyEndpoint   = errors.New("config: endpoint must not be empty")
	ErrInvalidStorage  = errors.New("config: invalid storage (must be \"memory\", \"file\", or \"bolt\")")
	ErrEmptyDataPath   = errors.New("config: data path must not be empty for persistent storage")
	ErrInvalidKeyLen   = errors.New("config: key length must be positive")
	ErrInvalidMaxLen   = errors.New("config: max length must not be negative")
	ErrInvalidAttempts = errors.New("config: max attempts must be positive")
	ErrInvalidKeyGen   = errors.New("config: invalid key generator (must be \"random\" or \"phonetic\")")
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")
)

// ServerConfig holds all configuration parameters of a paste server.
// It is built once at startup and handed to the server, nothing reads it from global state.
type ServerConfig struct {
	// HTTP api settings
	Endpoint      string
	TimeoutSecond int64

	// Storage settings
	Storage  store.Type
	DataPath string

	// Document settings
	MaxLength    int // 0 = unlimited
	KeyLength    int
	KeyPrefix    string
	KeyGenerator keygen.Kind
	MaxAttempts  int

	// Preloaded documents (key -> file path)
	Documents      map[string]string
	WatchDocuments bool

	// Logging configuration
	LogLevel string
}

// Validate checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func (c *ServerConfig) Validate() error {
	if c.Endpoint == "" {
		return ErrEmptyEndpoint
	}
	switch c.Storage {
	case store.TypeMemory:
	case store.TypeFile, store.TypeBolt:
		if c.DataPath == "" {
			return ErrEmptyDataPath
		}
	default:
		return ErrInvalidStorage
	}
	if c.KeyLength <= 0 {
		return ErrInvalidKeyLen
	}
	if c.MaxLength < 0 {
		return ErrInvalidMaxLen
	}
	if c.MaxAttempts <= 0 {
		return ErrInvalidAttempts
	}
	if _, err := keygen.New(c.KeyGenerator, c.KeyPrefix); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidKeyGen, err)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return ErrInvalidLogLevel
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// HTTP settings
	addSection("HTTP Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Storage
	addSection("Storage")
	addField("Type", string(c.Storage))
	if c.Storage != store.TypeMemory {
		addField("Data Path", c.DataPath)
	}

	// Documents
	addSection("Documents")
	if c.MaxLength > 0 {
		addField("Max Length", fmt.Sprintf("%d bytes", c.MaxLength))
	} else {
		addField("Max Length", "unlimited")
	}
	addField("Key Generator", string(c.KeyGenerator))
	addField("Key Prefix", strconv.Quote(c.KeyPrefix))
	addField("Key Length", strconv.Itoa(c.KeyLength))
	addField("Max Attempts", strconv.Itoa(c.MaxAttempts))

	if len(c.Documents) > 0 {
		addSection("Preloaded Documents")
		addField("Watch", strconv.FormatBool(c.WatchDocuments))

		// Sort keys for consistent output
		keys := make([]string, 0, len(c.Documents))
		for k := range c.Documents {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			addField(k, c.Documents[k])
		}
	}
	return sb.String()
}

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints              []string
	TimeoutSecond          int
	RetryCount             int
	ConnectionsPerEndpoint int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.ConnectionsPerEndpoint)))))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
