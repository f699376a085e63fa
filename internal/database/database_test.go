package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/sqlutil"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.DatabaseConfig
		expected string
	}{
		{
			name: "basic DSN",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "reader",
				Password: "secret",
				Database: "hr",
				TLS:      "preferred",
			},
			expected: "reader:secret@tcp(localhost:3306)/hr?parseTime=true&tls=preferred",
		},
		{
			name: "DSN without database",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "reader",
				Password: "secret",
			},
			expected: "reader:secret@tcp(localhost:3306)/?parseTime=true&tls=preferred",
		},
		{
			name: "TLS disabled",
			cfg: &config.DatabaseConfig{
				Host:     "db.internal",
				Port:     3307,
				User:     "reader",
				Password: "p@ss!w0rd#123",
				Database: "hr",
				TLS:      "disable",
			},
			expected: "reader:p@ss!w0rd#123@tcp(db.internal:3307)/hr?parseTime=true&tls=false",
		},
		{
			name: "TLS required",
			cfg: &config.DatabaseConfig{
				Host:     "db.internal",
				Port:     3306,
				User:     "reader",
				Database: "hr",
				TLS:      "required",
			},
			expected: "reader:@tcp(db.internal:3306)/hr?parseTime=true&tls=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildDSN(tt.cfg))
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "localhost", Port: 3306}

	manager := NewManager(cfg)
	require.NotNil(t, manager)
	assert.Same(t, cfg, manager.config)
	assert.Nil(t, manager.DB, "DB should be nil before Connect()")

	// Closing an unconnected manager is a no-op
	assert.NoError(t, manager.Close())
	assert.Error(t, manager.Ping(context.Background()))
}

func TestConnect_NilConfig(t *testing.T) {
	err := NewManager(nil).Connect(context.Background())
	assert.Error(t, err)
}

func TestConnect_CanceledContext(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Host: "127.0.0.1", Port: 1, User: "x"})
	manager.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.Connect(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, manager.DB)
}

func newMockManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewManagerWithDB(db), mock
}

func TestFetchDocuments(t *testing.T) {
	manager, mock := newMockManager(t)

	mock.ExpectQuery("SELECT `id`, `document` FROM `persons` ORDER BY `id` LIMIT 2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "document"}).
			AddRow(int64(1), []byte(`{"Name":"Ada"}`)).
			AddRow(int64(2), nil))

	docs, err := manager.FetchDocuments(context.Background(), sqlutil.DocumentQuery{
		Table:  "persons",
		Column: "document",
		Key:    "id",
		Limit:  2,
	})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "1", docs[0].Key)
	assert.Equal(t, `{"Name":"Ada"}`, string(docs[0].Body))
	assert.Equal(t, "2", docs[1].Key)
	assert.Nil(t, docs[1].Body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchDocuments_QueryError(t *testing.T) {
	manager, mock := newMockManager(t)

	mock.ExpectQuery("SELECT NULL, `document` FROM `persons`").
		WillReturnError(errors.New("table is locked"))

	_, err := manager.FetchDocuments(context.Background(), sqlutil.DocumentQuery{Table: "persons", Column: "document"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "table is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchDocuments_InvalidQuery(t *testing.T) {
	manager, _ := newMockManager(t)

	_, err := manager.FetchDocuments(context.Background(), sqlutil.DocumentQuery{Table: "persons; --", Column: "document"})

	var invalid *sqlutil.InvalidIdentifierError
	assert.ErrorAs(t, err, &invalid)
}

func TestFetchDocuments_NotConnected(t *testing.T) {
	_, err := NewManager(&config.DatabaseConfig{}).FetchDocuments(context.Background(), sqlutil.DocumentQuery{})
	assert.Error(t, err)
}
