package util

import (
	"strings"

	"github.com/ValentinKolb/dPaste/rpc/client"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/transport/http"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables (DPASTE_<FLAG>)
	EnvPrefix = "dpaste"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// InitConfig loads .env files and makes viper read DPASTE_ environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	ConfigureEnv(viper.GetViper())
}

// ConfigureEnv sets the environment prefix and key replacer on v
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match
}

// SetupClientFlags adds the connection flags of client commands
func SetupClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of the client"))

	key = "endpoints"
	cmd.PersistentFlags().String(key, "http://localhost:7777", WrapString("The address of the dPaste server. Multiple endpoints can be specified as a comma-separated list, requests are balanced round-robin"))

	key = "conn-per-endpoint"
	cmd.PersistentFlags().Int(key, 10, WrapString("Idle connections kept open per endpoint"))

	key = "retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to try a request that got no response"))
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	return &common.ClientConfig{
		TimeoutSecond:          viper.GetInt("timeout"),
		RetryCount:             viper.GetInt("retries"),
		Endpoints:              strings.Split(viper.GetString("endpoints"), ","),
		ConnectionsPerEndpoint: viper.GetInt("conn-per-endpoint"),
	}
}

// NewClient creates a paste client from the viper configuration
func NewClient() (*client.PasteClient, error) {
	return client.NewPasteClient(
		*GetClientConfig(),
		http.NewHttpClientTransport(),
		serializer.NewJSONSerializer(),
	)
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
