package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Options struct {
	DSN             string
	Replicas        []string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	LogSQL          bool
}

func (o Options) withDefaults() Options {
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 20
	}
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 10
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = 30 * time.Minute
	}
	if o.ConnMaxIdleTime <= 0 {
		o.ConnMaxIdleTime = 5 * time.Minute
	}
	return o
}

func configurePool(sqlDB *sql.DB, o Options) {
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(o.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(o.ConnMaxIdleTime)
}

// Open connects the primary pool, registers read replicas when given and pings.
func Open(ctx context.Context, o Options) (*gorm.DB, error) {
	if o.DSN == "" {
		return nil, errors.New("database url is empty")
	}
	o = o.withDefaults()

	cfg := &gorm.Config{
		PrepareStmt: true,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      logger.Default.LogMode(logger.Silent),
	}
	if o.LogSQL {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(o.DSN), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}

	if len(o.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(o.Replicas))
		for _, dsn := range o.Replicas {
			replicas = append(replicas, postgres.Open(dsn))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(o.MaxOpenConns).
			SetMaxIdleConns(o.MaxIdleConns).
			SetConnMaxLifetime(o.ConnMaxLifetime).
			SetConnMaxIdleTime(o.ConnMaxIdleTime)
		if err := db.Use(resolver); err != nil {
			return nil, errors.Wrap(err, "register read replicas")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	configurePool(sqlDB, o)

	if err := Ping(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return errors.Wrap(err, "ping database")
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
