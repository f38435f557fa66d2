package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/internal/config"
	"github.com/Faultbox/scene3d/internal/fetch"
	"github.com/Faultbox/scene3d/internal/logger"
	"github.com/Faultbox/scene3d/internal/scene"
	"github.com/Faultbox/scene3d/internal/store"
)

var errNoRedis = errors.New("no redis address configured (set source.redis_addr or --redis)")

const redisPingTimeout = 2 * time.Second

// app holds what every command needs once flags and config are loaded.
type app struct {
	flags *config.Flags
	cfg   *config.Config
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scenetool",
		Short: "Lattice floor plan to box geometry",
		Long: `scenetool turns scene.3d.v1 floor-plan documents into merged floor slabs and
wall boxes positioned in meters. Sources may be file paths, http(s):// URLs or
redis://name references into the document store.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	a.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newBuildCmd(a),
		newPreviewCmd(a),
		newServeCmd(a),
		newPutCmd(a),
		newListCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.log = logger.Named("scenetool")
	return nil
}

// options resolves the pipeline section of the config.
func (a *app) options() scene.Options {
	return scene.Resolve(a.cfg.Pipeline.Settings(), logger.Named("pipeline"))
}

// repository connects to the configured document store and checks that it
// answers.
func (a *app) repository(ctx context.Context) (store.Repository, func(), error) {
	addr := a.cfg.Source.RedisAddr
	if addr == "" {
		return nil, nil, errNoRedis
	}
	client := store.NewClient(addr)
	repo, err := store.NewRedisRepository(&store.Config{
		Client: client,
		Prefix: a.cfg.Source.RedisPrefix,
	})
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return repo, func() { client.Close() }, nil
}

// loader wires every configured source behind one fetcher. File sources are
// confined to root unless it is empty. The cleanup function must be called
// when done.
func (a *app) loader(ctx context.Context, root string) (*scene.Loader, func()) {
	mux := &fetch.Mux{
		File: fetch.File{Root: root},
		HTTP: fetch.NewHTTP(a.cfg.Source.HTTPTimeout),
	}
	cleanup := func() {}
	repo, closeFn, err := a.repository(ctx)
	switch {
	case err == nil:
		mux.Redis = &fetch.Redis{Store: repo}
		cleanup = closeFn
	case !errors.Is(err, errNoRedis):
		a.log.Warn("Redis source unavailable",
			zap.String("addr", a.cfg.Source.RedisAddr),
			zap.Error(err))
	}
	return scene.NewLoader(mux), cleanup
}
