package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// one connection keeps the in-memory DB alive and the pragma effective
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Thread{}, &Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestGetOrCreateUser_Idempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	first, err := repo.GetOrCreateUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := repo.GetOrCreateUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same user id, got %d and %d", first.ID, second.ID)
	}

	var cnt int64
	if err := db.Model(&User{}).Where("name = ?", "alice").Count(&cnt).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected exactly 1 row, got %d", cnt)
	}
}

func TestGetOrCreateUser_Concurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	const callers = 8
	ids := make([]uint64, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			u, err := repo.GetOrCreateUser(context.Background(), "bob")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = u.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("caller %d saw id %d, caller 0 saw %d", i, ids[i], ids[0])
		}
	}

	var cnt int64
	if err := db.Model(&User{}).Where("name = ?", "bob").Count(&cnt).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected exactly 1 row, got %d", cnt)
	}
}

func TestCreateThread(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	u, err := repo.GetOrCreateUser(context.Background(), "carol")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	th, err := repo.CreateThread(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}
	if th.ID == 0 || th.UserID != u.ID {
		t.Fatalf("unexpected thread: %+v", th)
	}
}

func TestCreateThread_MissingUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	_, err := repo.CreateThread(context.Background(), 12345)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	var cnt int64
	if err := db.Model(&Thread{}).Count(&cnt).Error; err != nil {
		t.Fatalf("count threads: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected no thread rows, got %d", cnt)
	}
}

func TestCreateMessagePair_NewThread(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	u, err := repo.GetOrCreateUser(context.Background(), "dave")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	userMsg, sysMsg, err := repo.CreateMessagePair(context.Background(), nil, u.ID, "hi", "42")
	if err != nil {
		t.Fatalf("create pair: %v", err)
	}
	if userMsg.ThreadID == 0 || userMsg.ThreadID != sysMsg.ThreadID {
		t.Fatalf("messages in different threads: %d vs %d", userMsg.ThreadID, sysMsg.ThreadID)
	}

	var th Thread
	if err := db.First(&th, userMsg.ThreadID).Error; err != nil {
		t.Fatalf("thread not created: %v", err)
	}
	if th.UserID != u.ID {
		t.Fatalf("thread owned by %d, want %d", th.UserID, u.ID)
	}

	msgs, err := repo.ListMessages(context.Background(), userMsg.ThreadID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].SenderType != SenderUser || msgs[0].Content != "hi" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].SenderType != SenderSystem || msgs[1].Content != "42" {
		t.Fatalf("unexpected second message: %+v", msgs[1])
	}
}

func TestCreateMessagePair_MissingThread(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	u, err := repo.GetOrCreateUser(context.Background(), "erin")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	missing := uint64(999)
	_, _, err = repo.CreateMessagePair(context.Background(), &missing, u.ID, "hi", "42")
	if !errors.Is(err, ErrThreadNotFound) {
		t.Fatalf("expected ErrThreadNotFound, got %v", err)
	}

	var cnt int64
	if err := db.Model(&Message{}).Count(&cnt).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected zero message rows after rollback, got %d", cnt)
	}
}

func TestCreateMessagePair_MissingUserImplicitThread(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	_, _, err := repo.CreateMessagePair(context.Background(), nil, 777, "hi", "42")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	var threads, msgs int64
	if err := db.Model(&Thread{}).Count(&threads).Error; err != nil {
		t.Fatalf("count threads: %v", err)
	}
	if err := db.Model(&Message{}).Count(&msgs).Error; err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if threads != 0 || msgs != 0 {
		t.Fatalf("expected full rollback, got %d threads and %d messages", threads, msgs)
	}
}

func TestListMessages_EmptyThreadIsNotAnError(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	u, err := repo.GetOrCreateUser(context.Background(), "frank")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	th, err := repo.CreateThread(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	msgs, err := repo.ListMessages(context.Background(), th.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty slice, got %d messages", len(msgs))
	}
}

func TestListThreads(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepo(db)

	u, err := repo.GetOrCreateUser(context.Background(), "grace")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := repo.CreateThread(context.Background(), u.ID); err != nil {
			t.Fatalf("create thread %d: %v", i, err)
		}
	}

	threads, err := repo.ListThreads(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if len(threads) != 3 {
		t.Fatalf("expected 3 threads, got %d", len(threads))
	}

	none, err := repo.ListThreads(context.Background(), u.ID+1)
	if err != nil {
		t.Fatalf("list threads for unknown user: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected empty slice, got %d threads", len(none))
	}
}
