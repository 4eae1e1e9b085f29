package timescaledb

import (
	"fmt"
	"time"

	"github.com/chrissnell/wxgatherer/internal/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client wraps a gorm connection to TimescaleDB, pool-tuned for a batch
// collector that opens, does a burst of writes, and exits rather than
// serving a long-lived request load.
type Client struct {
	DB *gorm.DB
}

// Connect opens a pooled connection to connectionString. Pool limits are
// intentionally small: this is a CLI job, not a server, and ten
// connections is more than a handful of worker goroutines ever need at
// once.
func Connect(connectionString string) (*Client, error) {
	gormLogger := gormlogger.New(
		newZapWriter(),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connecting to timescaledb: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging timescaledb: %w", err)
	}

	log.Info("connected to timescaledb")
	return &Client{DB: db}, nil
}

// zapWriter adapts gorm's logger.Writer interface onto the package's
// structured logger, the same shim the teacher uses to keep gorm's SQL
// logging in the same stream as everything else.
type zapWriter struct{}

func newZapWriter() gormlogger.Writer {
	return zapWriter{}
}

func (zapWriter) Printf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}
