// Package database 提供了 GORM 连接的统一初始化.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wyfcoding/genkit/config"
	"github.com/wyfcoding/genkit/logging"
	"github.com/wyfcoding/genkit/xerrors"
)

const (
	defaultSlowThreshold = 200 * time.Millisecond
	errBadRequest        = 400
)

// NewDB 按配置初始化数据库连接.
// 返回 *gorm.DB、清理函数，以及连接失败时的错误.
func NewDB(cfg config.DatabaseConfig, logger *logging.Logger) (*gorm.DB, func(), error) {
	var dialer gorm.Dialector

	switch cfg.Driver {
	case "mysql":
		dialer = mysql.Open(cfg.DSN)
	case "postgres":
		dialer = postgres.Open(cfg.DSN)
	default:
		return nil, nil, xerrors.New(xerrors.ErrInvalidArg, errBadRequest, "unsupported database driver", cfg.Driver, nil)
	}

	gormDB, err := gorm.Open(dialer, &gorm.Config{
		Logger:      logging.NewGormLogger(logger, defaultSlowThreshold),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("obtain sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	logger.Info("database connected", "driver", cfg.Driver)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}

	return gormDB, cleanup, nil
}
