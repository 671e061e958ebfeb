package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// StoreTestSuite runs the same contract against every backend.
type StoreTestSuite struct {
	suite.Suite
	newStore func(t *testing.T) Store
	store    Store
	ctx      context.Context
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore(s.T())
}

func (s *StoreTestSuite) TestLoadMissing() {
	value, ok, err := s.store.Load(s.ctx, "tasks")
	s.Require().NoError(err)
	s.False(ok)
	s.Empty(value)
}

func (s *StoreTestSuite) TestSaveThenLoad() {
	s.Require().NoError(s.store.Save(s.ctx, "tasks", `[{"id":1,"name":"a","completed":false}]`))

	value, ok, err := s.store.Load(s.ctx, "tasks")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal(`[{"id":1,"name":"a","completed":false}]`, value)
}

func (s *StoreTestSuite) TestSaveOverwrites() {
	s.Require().NoError(s.store.Save(s.ctx, "token", "first"))
	s.Require().NoError(s.store.Save(s.ctx, "token", "second"))

	value, ok, err := s.store.Load(s.ctx, "token")
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("second", value)
}

func (s *StoreTestSuite) TestEmptyValueIsPresent() {
	s.Require().NoError(s.store.Save(s.ctx, "currentTaskToAdd", ""))

	_, ok, err := s.store.Load(s.ctx, "currentTaskToAdd")
	s.Require().NoError(err)
	s.True(ok)
}

func (s *StoreTestSuite) TestDelete() {
	s.Require().NoError(s.store.Save(s.ctx, "token", "abc"))
	s.Require().NoError(s.store.Save(s.ctx, "tasks", "[]"))

	s.Require().NoError(s.store.Delete(s.ctx, "token"))

	_, ok, err := s.store.Load(s.ctx, "token")
	s.Require().NoError(err)
	s.False(ok)

	_, ok, err = s.store.Load(s.ctx, "tasks")
	s.Require().NoError(err)
	s.True(ok, "deleting one key must leave others intact")
}

func (s *StoreTestSuite) TestDeleteMissing() {
	s.NoError(s.store.Delete(s.ctx, "nothing-here"))
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func(*testing.T) Store {
		return NewMemoryStore()
	}})
}

func TestFileStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func(t *testing.T) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "nested", "store.json"))
	}})
}

func TestGormStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func(t *testing.T) Store {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { sqlDB.Close() })

		store, err := NewGormStore(db)
		require.NoError(t, err)
		return store
	}})
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, &StoreTestSuite{newStore: func(t *testing.T) Store {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { rdb.Close() })

		return NewRedisStore(rdb, "listify-test:")
	}})
}

func TestRedisStore_Prefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	require.NoError(t, NewRedisStore(rdb, "alice:").Save(ctx, "token", "abc"))

	value, err := mr.Get("alice:token")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)
	assert.False(t, mr.Exists("token"))

	_, ok, err := NewRedisStore(rdb, "bob:").Load(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok, "prefixes must isolate stores")
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	require.NoError(t, NewFileStore(path).Save(ctx, "token", "abc"))

	value, ok, err := NewFileStore(path).Load(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, _, err := NewFileStore(path).Load(context.Background(), "tasks")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     Config
		want    any
		wantErr error
	}{
		{"default is file", Config{Path: filepath.Join(dir, "a.json")}, &FileStore{}, nil},
		{"file", Config{Backend: BackendFile, Path: filepath.Join(dir, "b.json")}, &FileStore{}, nil},
		{"sqlite", Config{Backend: BackendSQLite, Path: filepath.Join(dir, "c.db")}, &GormStore{}, nil},
		{"sqlite in fresh dir", Config{Backend: BackendSQLite, Path: filepath.Join(dir, "fresh", "nested", "listify.db")}, &GormStore{}, nil},
		{"redis", Config{Backend: BackendRedis, RedisAddr: miniredis.RunT(t).Addr(), RedisPrefix: "listify:"}, &RedisStore{}, nil},
		{"memory", Config{Backend: BackendMemory}, &MemoryStore{}, nil},
		{"unknown", Config{Backend: "etcd"}, nil, ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, closeFn, err := Open(ctx, tt.cfg)
			require.NotNil(t, closeFn)
			defer closeFn()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, store)

			require.NoError(t, store.Save(ctx, "k", "v"))
			value, ok, err := store.Load(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", value)
		})
	}
}

func TestOpen_RedisUnreachable(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Config{Backend: BackendRedis, RedisAddr: "127.0.0.1:1"})
	require.NotNil(t, closeFn)
	assert.Error(t, err)
}
