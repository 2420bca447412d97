package bootstrap

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/codeMaverick7770/mental-health-platform-sub000/internal/models"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/config"
	"github.com/codeMaverick7770/mental-health-platform-sub000/pkg/logger"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options controls database initialization behavior
type Options struct {
	// AutoMigrate whether to execute entity migration (default true)
	AutoMigrate bool
}

// SetupDatabase unified entry: connect database -> migrate entities
func SetupDatabase(logWriter io.Writer, opts *Options) (*gorm.DB, error) {
	if opts == nil {
		opts = &Options{AutoMigrate: true}
	}

	db, err := initDBConn(logWriter)
	if err != nil {
		logger.Error("init database failed", zap.Error(err))
		return nil, err
	}

	if opts.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			logger.Error("migration failed", zap.Error(err))
			return nil, err
		}
		logger.Info("migration success",
			zap.String("database", config.GlobalConfig.DBDriver),
			zap.String("dsn", config.GlobalConfig.DSN),
		)
	}

	logger.Info("system bootstrap - database initialization complete")
	return db, nil
}

// initDBConn creates *gorm.DB based on global configuration
func initDBConn(logWriter io.Writer) (*gorm.DB, error) {
	dbDriver := config.GlobalConfig.DBDriver
	dsn := config.GlobalConfig.DSN

	var dialector gorm.Dialector
	switch dbDriver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, errors.New("unsupported database driver: " + dbDriver)
	}

	gormLog := gormlogger.New(
		log.New(logWriter, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
	return gorm.Open(dialector, &gorm.Config{Logger: gormLog})
}
