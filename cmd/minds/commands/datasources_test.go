package commands

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/minds/internal/constants"
	"github.com/fivetwenty-io/minds/pkg/minds"
)

func salesDatasource() map[string]interface{} {
	return map[string]interface{}{
		"name":            "sales",
		"engine":          "postgres",
		"description":     "sales warehouse",
		"connection_data": map[string]interface{}{"host": "db.example.com", "password": "hunter2"},
		"tables":          []string{"orders", "customers"},
	}
}

func TestDatasourcesList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /datasources", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data": []interface{}{
				salesDatasource(),
				map[string]interface{}{"name": "files", "engine": nil},
			},
		})
	})
	useAPI(t, mux)

	t.Run("table", func(t *testing.T) {
		out, err := executeCommand(NewDatasourcesCommand(), "list")
		require.NoError(t, err)
		assert.Contains(t, out, "sales")
		assert.Contains(t, out, "postgres")
		assert.Contains(t, out, "orders, customers")
		assert.NotContains(t, out, "files")
	})

	t.Run("json", func(t *testing.T) {
		viper.Set(keyOutput, constants.FormatJSON)
		t.Cleanup(func() { viper.Set(keyOutput, constants.FormatTable) })

		out, err := executeCommand(NewDatasourcesCommand(), "list")
		require.NoError(t, err)

		var datasources []minds.Datasource
		require.NoError(t, json.Unmarshal([]byte(out), &datasources))
		require.Len(t, datasources, 1)
		assert.Equal(t, "sales", datasources[0].Name)
		assert.Equal(t, "hunter2", datasources[0].ConnectionData["password"])
	})
}

func TestDatasourcesListEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /datasources", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []interface{}{}})
	})
	useAPI(t, mux)

	out, err := executeCommand(NewDatasourcesCommand(), "list")
	require.NoError(t, err)
	assert.Equal(t, "No datasources found\n", out)
}

func TestDatasourcesGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /datasources/sales", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, salesDatasource())
	})
	mux.HandleFunc("GET /datasources/missing", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "datasource missing not found"})
	})
	useAPI(t, mux)

	t.Run("masks secrets in the table", func(t *testing.T) {
		out, err := executeCommand(NewDatasourcesCommand(), "get", "sales")
		require.NoError(t, err)
		assert.Contains(t, out, "host=db.example.com")
		assert.Contains(t, out, "password=********")
		assert.NotContains(t, out, "hunter2")
	})

	t.Run("not found keeps the error kind", func(t *testing.T) {
		_, err := executeCommand(NewDatasourcesCommand(), "get", "missing")
		require.Error(t, err)
		assert.True(t, minds.IsNotFound(err))
		assert.Equal(t, "Error (not_found): failed to get datasource: datasource missing not found", FormatError(err))
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := executeCommand(NewDatasourcesCommand(), "get")
		require.Error(t, err)
	})
}

func TestDatasourcesCreate(t *testing.T) {
	var (
		mu     sync.Mutex
		posted map[string]interface{}
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /datasources", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		posted = nil
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /datasources/{name}", func(w http.ResponseWriter, r *http.Request) {
		ds := salesDatasource()
		ds["name"] = r.PathValue("name")
		writeJSON(w, http.StatusOK, ds)
	})
	useAPI(t, mux)

	lastPosted := func() map[string]interface{} {
		mu.Lock()
		defer mu.Unlock()

		return posted
	}

	t.Run("from flags", func(t *testing.T) {
		out, err := executeCommand(NewDatasourcesCommand(), "create",
			"--name", "sales",
			"--engine", "postgres",
			"--connection-data", `{"host":"db.example.com","port":5432}`,
			"--tables", "orders,customers",
		)
		require.NoError(t, err)
		assert.Contains(t, out, "sales")

		body := lastPosted()
		assert.Equal(t, "sales", body["name"])
		assert.Equal(t, "postgres", body["engine"])
		assert.Equal(t, map[string]interface{}{"host": "db.example.com", "port": float64(5432)}, body["connection_data"])
		assert.Equal(t, []interface{}{"orders", "customers"}, body["tables"])
	})

	t.Run("flags override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sales.yml")
		require.NoError(t, os.WriteFile(path, []byte(`name: sales
engine: mysql
connection_data:
  host: file.example.com
`), 0o600))

		_, err := executeCommand(NewDatasourcesCommand(), "create", "--file", path, "--name", "sales_copy")
		require.NoError(t, err)

		body := lastPosted()
		assert.Equal(t, "sales_copy", body["name"])
		assert.Equal(t, "mysql", body["engine"])
		assert.Equal(t, map[string]interface{}{"host": "file.example.com"}, body["connection_data"])
	})

	t.Run("invalid connection data", func(t *testing.T) {
		_, err := executeCommand(NewDatasourcesCommand(), "create",
			"--name", "sales", "--engine", "postgres", "--connection-data", "[1,2]")
		require.ErrorIs(t, err, constants.ErrInvalidConnectionData)
	})

	t.Run("missing connection data fails validation", func(t *testing.T) {
		_, err := executeCommand(NewDatasourcesCommand(), "create", "--name", "sales", "--engine", "postgres")
		require.ErrorIs(t, err, minds.ErrValidation)
	})
}

func TestDatasourcesDrop(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /datasources/{name}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sales", r.PathValue("name"))
		w.WriteHeader(http.StatusOK)
	})
	useAPI(t, mux)

	out, err := executeCommand(NewDatasourcesCommand(), "drop", "sales")
	require.NoError(t, err)
	assert.Equal(t, "Datasource 'sales' dropped\n", out)
}

func TestDatasourcesWithoutAPIKey(t *testing.T) {
	resetViper(t)

	_, err := executeCommand(NewDatasourcesCommand(), "list")
	require.ErrorIs(t, err, constants.ErrNoAPIKeyConfigured)
}

func TestLoadDatasourceFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		return path
	}

	t.Run("json", func(t *testing.T) {
		path := write("sales.json", `{"name":"sales","engine":"postgres","connection_data":{"host":"h"},"tables":["orders"]}`)

		config, err := loadDatasourceFile(path)
		require.NoError(t, err)
		assert.Equal(t, "sales", config.Name)
		assert.Equal(t, "postgres", config.Engine)
		assert.Equal(t, map[string]any{"host": "h"}, config.ConnectionData)
		assert.Equal(t, []string{"orders"}, config.Tables)
	})

	t.Run("yaml", func(t *testing.T) {
		path := write("sales.YAML", "name: sales\nengine: postgres\ndescription: warehouse\nconnection_data: {}\n")

		config, err := loadDatasourceFile(path)
		require.NoError(t, err)
		assert.Equal(t, "warehouse", config.Description)
		assert.NotNil(t, config.ConnectionData)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := write("sales.txt", "name: sales")

		_, err := loadDatasourceFile(path)
		require.ErrorIs(t, err, constants.ErrUnsupportedFileFormat)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := loadDatasourceFile(dir)
		require.ErrorIs(t, err, constants.ErrNotRegularFile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadDatasourceFile(filepath.Join(dir, "missing.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid content", func(t *testing.T) {
		path := write("broken.json", "{")

		_, err := loadDatasourceFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

func TestParseJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    map[string]interface{}
		wantErr bool
	}{
		{name: "object", value: `{"a":1}`, want: map[string]interface{}{"a": float64(1)}},
		{name: "empty object", value: `{}`, want: map[string]interface{}{}},
		{name: "array", value: `[1]`, wantErr: true},
		{name: "null", value: `null`, wantErr: true},
		{name: "not json", value: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJSONObject(tt.value, constants.ErrInvalidParameters)
			if tt.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidParameters)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
