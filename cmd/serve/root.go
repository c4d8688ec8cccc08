package serve

import (
	"fmt"

	cmdUtil "github.com/ValentinKolb/dPaste/cmd/util"
	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/server"
	"github.com/ValentinKolb/dPaste/rpc/transport/http"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the dPaste server",
		Long:    `Start the dPaste server with the specified configuration. The configuration can be set via command line flags, environment variables or a config file. The format of the environment variables is DPASTE_<flag> (e.g. DPASTE_MAX_LENGTH=1000)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:7777", cmdUtil.WrapString("The address on which the API will listen (e.g. localhost:7777)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 10, cmdUtil.WrapString("Read and write timeout of HTTP requests in seconds"))

	key = "storage"
	ServeCmd.PersistentFlags().String(key, string(store.TypeFile), cmdUtil.WrapString("Storage backend for documents (memory, file, bolt)"))

	key = "data-path"
	ServeCmd.PersistentFlags().String(key, "data", cmdUtil.WrapString("Directory holding the documents of the file and bolt storage"))

	key = "max-length"
	ServeCmd.PersistentFlags().Int(key, 400000, cmdUtil.WrapString("Maximum document size in bytes (0 = unlimited)"))

	key = "key-length"
	ServeCmd.PersistentFlags().Int(key, 10, cmdUtil.WrapString("Number of generated characters per key, clients may ask for 1 to 64"))

	key = "key-prefix"
	ServeCmd.PersistentFlags().String(key, keygen.DefaultPrefix, cmdUtil.WrapString("Fixed tag every generated key starts with"))

	key = "key-generator"
	ServeCmd.PersistentFlags().String(key, string(keygen.KindRandom), cmdUtil.WrapString("Key generation strategy (random, phonetic)"))

	key = "max-attempts"
	ServeCmd.PersistentFlags().Int(key, 16, cmdUtil.WrapString("Maximum number of keys tried per document before the write fails"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	key = "config"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional config file (json, yaml or toml). Its 'documents' map (name -> file) lists documents stored at startup"))

	key = "watch-documents"
	ServeCmd.PersistentFlags().Bool(key, false, cmdUtil.WrapString("Reload preloaded documents when their files change"))
}

// processConfig reads the configuration from the command line flags, environment variables
// and config file and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	config, err := readServerConfig(viper.GetViper())
	if err != nil {
		return err
	}
	*serveCmdConfig = *config
	return nil
}

// readServerConfig builds and validates the server configuration from v
func readServerConfig(v *viper.Viper) (*common.ServerConfig, error) {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	config := &common.ServerConfig{
		Endpoint:       v.GetString("endpoint"),
		TimeoutSecond:  v.GetInt64("timeout"),
		Storage:        store.Type(v.GetString("storage")),
		DataPath:       v.GetString("data-path"),
		MaxLength:      v.GetInt("max-length"),
		KeyLength:      v.GetInt("key-length"),
		KeyPrefix:      v.GetString("key-prefix"),
		KeyGenerator:   keygen.Kind(v.GetString("key-generator")),
		MaxAttempts:    v.GetInt("max-attempts"),
		Documents:      v.GetStringMapString("documents"),
		WatchDocuments: v.GetBool("watch-documents"),
		LogLevel:       v.GetString("log-level"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// run starts the dPaste server
func run(_ *cobra.Command, _ []string) error {
	serv := server.NewRPCServer(
		*serveCmdConfig,
		http.NewHttpServerTransport(),
		serializer.NewJSONSerializer(),
	)

	return serv.Serve()
}
