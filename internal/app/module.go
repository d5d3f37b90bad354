package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"

	"github.com/Skotchmaster/medstore/internal/analytics"
	"github.com/Skotchmaster/medstore/internal/cache"
	"github.com/Skotchmaster/medstore/internal/config"
	"github.com/Skotchmaster/medstore/internal/events"
	"github.com/Skotchmaster/medstore/internal/httpserver"
	"github.com/Skotchmaster/medstore/internal/repo"
	"github.com/Skotchmaster/medstore/internal/search"
	"github.com/Skotchmaster/medstore/pkg/db"
	"github.com/Skotchmaster/medstore/pkg/logging"
)

// New builds the serve application. Every pool is opened once and closed by
// its OnStop hook.
func New(cfg *config.Config) *fx.App {
	return fx.New(
		fx.Supply(cfg),
		fx.StopTimeout(cfg.HTTP.ShutdownTimeout+5*time.Second),
		fx.WithLogger(func(l *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: l.With("component", "fx")}
		}),
		fx.Provide(
			NewLogger,
			newDatabase,
			repo.New,
			newPublisher,
			newCache,
			newSearcher,
			newAnalytics,
			newServices,
			newDeps,
			newEcho,
			newHTTPServer,
		),
		fx.Invoke(func(*http.Server) {}),
	)
}

func NewLogger(cfg *config.Config) *slog.Logger {
	l := logging.NewWithWriter(os.Stdout, cfg.Log.Level, cfg.Log.Pretty).With("service", cfg.ServiceName)
	slog.SetDefault(l)
	return l
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, l *slog.Logger) (*gorm.DB, error) {
	gdb, err := OpenDatabase(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	l.Info("db_connected", "replicas", len(cfg.Database.Replicas))
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return db.Close(gdb)
	}})
	return gdb, nil
}

// OpenDatabase connects the primary pool described by cfg.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	return db.Open(ctx, db.Options{
		DSN:             cfg.Database.URL,
		Replicas:        cfg.Database.Replicas,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogSQL:          cfg.Database.LogSQL,
	})
}

func newPublisher(lc fx.Lifecycle, cfg *config.Config, l *slog.Logger) events.Publisher {
	if !cfg.Kafka.Enabled {
		l.Info("kafka_disabled")
		return events.Noop{}
	}
	p := events.NewKafkaPublisher(cfg.Kafka.Brokers)
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return p.Close()
	}})
	return p
}

func newCache(lc fx.Lifecycle, cfg *config.Config, l *slog.Logger) cache.Cache {
	if !cfg.Redis.Enabled {
		return cache.Noop{}
	}
	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				l.Warn("redis_unreachable", "addr", cfg.Redis.Addr, "err", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			if err := rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
				return err
			}
			return nil
		},
	})
	return cache.NewRedis(rdb)
}

func newSearcher(lc fx.Lifecycle, cfg *config.Config, l *slog.Logger) (search.ProductSearcher, error) {
	if !cfg.Elasticsearch.Enabled {
		return nil, nil
	}
	client, err := search.NewClient(search.Options{
		Addresses: cfg.Elasticsearch.Addresses,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
		Index:     cfg.Elasticsearch.Index,
	})
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
		if err := search.Ping(ctx, client); err != nil {
			l.Warn("elasticsearch_unreachable", "err", err)
		}
		return nil
	}})
	return search.NewElastic(client, cfg.Elasticsearch.Index), nil
}

func newAnalytics(lc fx.Lifecycle, cfg *config.Config) (*analytics.Store, error) {
	sdb, err := analytics.Open(context.Background(), cfg.Database.URL, 4)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return sdb.Close()
	}})
	return analytics.NewStore(sdb), nil
}

type infraParams struct {
	fx.In

	Config    *config.Config
	Repo      *repo.GormRepo
	Cache     cache.Cache
	Searcher  search.ProductSearcher
	Events    events.Publisher
	Analytics *analytics.Store
}

func newServices(p infraParams) httpserver.Services {
	return NewServices(p.Config, p.Repo, Infra{
		Cache:     p.Cache,
		Searcher:  p.Searcher,
		Events:    p.Events,
		Analytics: p.Analytics,
	})
}

func newDeps(cfg *config.Config, svcs httpserver.Services, gdb *gorm.DB) *httpserver.Deps {
	return &httpserver.Deps{
		Services:      svcs,
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		SecureCookies: cfg.Auth.SecureCookies,
		Ready: func(ctx context.Context) error {
			return db.Ping(ctx, gdb)
		},
	}
}

func newEcho(cfg *config.Config, d *httpserver.Deps, l *slog.Logger) *echo.Echo {
	return httpserver.New(d, httpserver.Options{
		Logger:      l,
		BodyLimit:   cfg.HTTP.BodyLimit,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		CSRF:        cfg.CSRF.Enabled,

		CSRFCrossOrigin: cfg.CSRF.AllowCrossOrigin,
	})
}

func newHTTPServer(lc fx.Lifecycle, sd fx.Shutdowner, cfg *config.Config, e *echo.Echo, l *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       60 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return errors.Wrapf(err, "listen %s", srv.Addr)
			}
			l.Info("http_listening", "addr", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Error("http_serve_failed", "err", err)
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			l.Info("http_shutting_down")
			return errors.WithStack(srv.Shutdown(ctx))
		},
	})
	return srv
}
