package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/medstore/internal/testutil"
	"github.com/Skotchmaster/medstore/pkg/db"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := db.Open(context.Background(), db.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url is empty")
}

func TestPingAndClose(t *testing.T) {
	gdb := testutil.NewDB(t)
	require.NoError(t, db.Ping(context.Background(), gdb))

	require.NoError(t, db.Close(gdb))
	assert.Error(t, db.Ping(context.Background(), gdb))
}
