package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKVSql(t *testing.T) {
	database := initDB(t)

	t.Run("Loads kv functions into an empty database", func(t *testing.T) {
		err := LoadKVSql(database.Instance, false)
		require.NoError(t, err, "expected kv functions to load")

		exist, err := checkFunctions(database.Instance, KVFunctions)
		require.NoError(t, err)
		assert.True(t, exist, "expected all kv functions to exist after loading")
	})

	t.Run("Second load without force is a no-op", func(t *testing.T) {
		err := LoadKVSql(database.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Force reload succeeds", func(t *testing.T) {
		err := LoadKVSql(database.Instance, true)
		assert.NoError(t, err)
	})

	t.Run("Round trips a value through the kv functions", func(t *testing.T) {
		require.NoError(t, LoadKVSql(database.Instance, false))

		_, err := database.Instance.Exec(`SELECT init_kv();`)
		require.NoError(t, err)

		_, err = database.Instance.Exec(`SELECT kv_set($1, $2);`, "kv_load_test", "v1")
		require.NoError(t, err)
		_, err = database.Instance.Exec(`SELECT kv_set($1, $2);`, "kv_load_test", "v2")
		require.NoError(t, err, "expected upsert on existing key")

		var value string
		err = database.Instance.QueryRow(`SELECT * FROM kv_get($1);`, "kv_load_test").Scan(&value)
		require.NoError(t, err)
		assert.Equal(t, "v2", value)

		_, err = database.Instance.Exec(`SELECT kv_delete($1);`, "kv_load_test")
		require.NoError(t, err)

		err = database.Instance.QueryRow(`SELECT * FROM kv_get($1);`, "kv_load_test").Scan(&value)
		assert.Error(t, err, "expected no row after delete")
	})
}
