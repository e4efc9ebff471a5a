package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options describes the relational store the service talks to.
type Options struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Debug    bool
}

var dialectors = map[string]func(dsn string) gorm.Dialector{
	"postgres": postgres.Open,
	"mysql":    mysql.Open,
}

// DSN renders the connection string for the configured driver.
func (o Options) DSN() string {
	if o.Driver == "mysql" {
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			o.User, o.Password, o.Host, o.Port, o.Name,
		)
	}

	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		o.Host, o.User, o.Password, o.Name, o.Port,
	)
}

// Connect opens a pooled *gorm.DB. Connections are handed out per statement
// or per transaction by database/sql and returned when the call finishes.
func Connect(opts Options) (*gorm.DB, error) {
	open, ok := dialectors[opts.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	logLevel := gormlogger.Warn
	if opts.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(open(opts.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
