package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Connect opens the SQLite database at dsn, migrates the schema
// and configures the connection pool.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: newLogger(log.Logger),
	}

	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN. Tables are copied to a temporary table, then the table
	// is dropped and recreated.
	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	db, err = gorm.Open(sqlite.Open(withForeignKeys(dsn)), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// This is done to prevent SQLITE_BUSY errors.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(User{}, Envelope{}, Expense{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "?") {
		return fmt.Sprintf("%s&_pragma=foreign_keys(1)", dsn)
	}
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "envelopes:after_query", queryCallback},
		{db.Callback().Query().After("*"), "envelopes:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "envelopes:after_create", createUpdateCallback},
		{db.Callback().Update().After("*"), "envelopes:after_update", createUpdateCallback},
		{db.Callback().Delete().After("*"), "envelopes:after_delete_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("could not register callback %s: %w", c.name, err)
		}
	}

	return nil
}

// queryCallback replaces the generic "record not found" error with
// one naming the resource, e.g. "Envelope not found"
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%s %w", resourceName(db.Statement.Table), ErrResourceNotFound)
	}
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones.
//
// Constraint violations are SQLite errors, too, so they are translated here
// before generalCallback replaces everything else.
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	switch {
	// Emails identify users and must be unique
	case strings.Contains(db.Error.Error(), "UNIQUE constraint failed: users.email"):
		db.Error = ErrEmailInUse

	// Expenses reference an envelope, envelopes reference their owner
	case strings.Contains(db.Error.Error(), "FOREIGN KEY constraint failed"):
		if db.Statement.Table == "expenses" {
			db.Error = ErrEnvelopeReference
		} else {
			db.Error = fmt.Errorf("User %w", ErrResourceNotFound)
		}

	default:
		generalCallback(db)
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	// "sql: database is closed" is hard-coded in the sql module
	var sqliteErr *go_sqlite.Error
	if db.Error.Error() == "sql: database is closed" || errors.As(db.Error, &sqliteErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// resourceName converts a table name into the singular, capitalized
// name of the resource, e.g. "envelopes" becomes "Envelope"
func resourceName(table string) string {
	name := strings.TrimSuffix(strings.ReplaceAll(table, "_", " "), "s")
	if name == "" {
		return "Resource"
	}

	return strings.ToUpper(name[:1]) + name[1:]
}
