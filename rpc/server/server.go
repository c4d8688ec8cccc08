package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ValentinKolb/dPaste/lib/document"
	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/ValentinKolb/dPaste/lib/store/bstore"
	"github.com/ValentinKolb/dPaste/lib/store/fstore"
	"github.com/ValentinKolb/dPaste/lib/store/mstore"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/ValentinKolb/dPaste/rpc/serializer"
	"github.com/ValentinKolb/dPaste/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("rpc")

// NewRPCServer creates a new paste server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	 }
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IServerTransport,
	serializer serializer.IRPCSerializer,
) *rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	return &rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IServerTransport
	serializer serializer.IRPCSerializer
	store      store.IStore
	handler    *document.Handler
}

// newStore opens the storage backend selected by the config
func newStore(config common.ServerConfig) (store.IStore, error) {
	switch config.Storage {
	case store.TypeMemory:
		return mstore.NewMemoryStore(), nil
	case store.TypeFile:
		return fstore.NewFileStore(config.DataPath)
	case store.TypeBolt:
		return bstore.NewBoltStore(config.DataPath)
	default:
		return nil, fmt.Errorf("invalid storage type: %q", config.Storage)
	}
}

func (s *rpcServer) init() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	// Init logger
	common.InitLoggers(s.config)

	Logger.Infof("Created paste server")
	Logger.Infof("%s", s.config.String())

	generator, err := keygen.New(s.config.KeyGenerator, s.config.KeyPrefix)
	if err != nil {
		return err
	}

	st, err := newStore(s.config)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", s.config.Storage, err)
	}
	s.store = st
	Logger.Infof("opened %s store", s.config.Storage)

	s.handler = document.NewHandler(st, document.Config{
		MaxLength:   s.config.MaxLength,
		KeyLength:   s.config.KeyLength,
		MaxAttempts: s.config.MaxAttempts,
		CreateKey:   generator.CreateKey,
	})

	// Preloaded documents are stored before the first request is served
	if len(s.config.Documents) > 0 {
		n := document.Preload(st, s.config.Documents)
		Logger.Infof("preloaded %d of %d documents", n, len(s.config.Documents))
	}

	// Configure the transport layer
	NewDocumentServerAdapter(s.handler, s.serializer, s.config.MaxLength).Register(s.transport)
	NewStatusServerAdapter(st, s.serializer).Register(s.transport)

	Logger.Infof("dPaste setup completed successfully")
	return nil
}

// Serve starts the server and blocks until SIGINT or SIGTERM is received
func (s *rpcServer) Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.ServeContext(ctx)
}

// ServeContext initializes the server, then serves requests until ctx is done.
// The store is closed after the transport has stopped.
func (s *rpcServer) ServeContext(ctx context.Context) (err error) {
	if err := s.init(); err != nil {
		if s.store != nil {
			_ = s.store.Close()
		}
		return err
	}
	defer func() {
		if cerr := s.store.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close store: %w", cerr))
		}
		common.Sync()
	}()

	if s.config.WatchDocuments && len(s.config.Documents) > 0 {
		go func() {
			if err := document.WatchPreloads(ctx, s.store, s.config.Documents); err != nil {
				Logger.Errorf("document watcher stopped: %v", err)
			}
		}()
	}

	return s.transport.Listen(ctx, s.config)
}

// Handler initializes the server and returns its routed handler without listening.
// The caller owns the store and must call Close.
func (s *rpcServer) Handler() (http.Handler, error) {
	if err := s.init(); err != nil {
		return nil, err
	}
	return s.transport.Handler(s.config), nil
}

// Close closes the store of a server initialized with Handler
func (s *rpcServer) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
