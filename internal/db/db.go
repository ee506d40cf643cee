package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/QuincyForbes/thread-chat-backend/internal/chat"
)

// Connect opens the Postgres database and runs schema migrations.
// TranslateError is enabled so constraint violations surface as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func Connect(dsn string) *gorm.DB {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := gdb.AutoMigrate(&chat.User{}, &chat.Thread{}, &chat.Message{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	return gdb
}
