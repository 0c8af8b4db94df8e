package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swbase/swb/internal/config"
	"github.com/swbase/swb/internal/model"
)

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		Host: "db", Port: "5433", Username: "u", Password: "p", Database: "swb",
	})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=swb sslmode=disable", dsn)

	dsn = PostgresDSN(config.PostgresConfig{Host: "db", SSLMode: "require"})
	assert.Contains(t, dsn, "sslmode=require")
}

func TestOpenSQLite_MigrateAndDump(t *testing.T) {
	m := NewManager(zerolog.Nop())
	db, err := m.OpenSQLite(filepath.Join(t.TempDir(), "live.db"))
	require.NoError(t, err)
	require.NoError(t, m.Migrate(db))

	require.NoError(t, db.Create(&model.Session{Name: "range"}).Error)

	var count int64
	require.NoError(t, db.Model(&model.Session{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	dump := filepath.Join(t.TempDir(), "dumps", "swb.db")
	require.NoError(t, m.DumpMemoryDBToDisk(db, dump))
	_, err = os.Stat(dump)
	require.NoError(t, err)

	// A second dump replaces the first.
	require.NoError(t, m.DumpMemoryDBToDisk(db, dump))

	paths, err := BackupPaths(filepath.Dir(dump))
	require.NoError(t, err)
	assert.Equal(t, []string{dump}, paths)
}

func TestDumpMemoryDBToDisk_BadPath(t *testing.T) {
	m := NewManager(zerolog.Nop())
	assert.Error(t, m.DumpMemoryDBToDisk(nil, ""))
	assert.Error(t, m.DumpMemoryDBToDisk(nil, "/tmp/it's.db"))
}
