package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-status-backend/config"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"sqlite:vehicled.db", "sqlite"},
		{"file::memory:?cache=shared", "sqlite"},
		{"host=localhost user=vehicled dbname=vehicled sslmode=disable", "postgres"},
		{"postgres://vehicled@localhost/vehicled", "postgres"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, Dialector(tt.dsn).Name())
		})
	}
}

func TestInit_SQLite(t *testing.T) {
	db, err := Init(&config.DatabaseConfig{DSN: "file:dbinit?mode=memory&cache=shared", MaxOpenConns: 1, MaxIdleConns: 1}, nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	for _, table := range []string{"command_records", "push_subscriptions", "subscribed_vehicles", "subscription_vehicle_mapping"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
