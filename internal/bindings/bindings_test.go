package bindings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "vars.json", `{
		"headers": {"ip": "10.0.1.2", "path": "/admin/edit"},
		"limit": 5
	}`)
	input, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, input.Variables, 2)
	headers, ok := input.Variables["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10.0.1.2", headers["ip"])
	assert.Empty(t, input.UnknownPatterns)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "vars.yaml", `
headers:
  ip: 10.0.1.2
  token: admin
limit: 5
`)
	input, err := Load(path)
	require.NoError(t, err)
	headers, ok := input.Variables["headers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "admin", headers["token"])
}

func TestLoadUnknownPatterns(t *testing.T) {
	path := writeFile(t, "vars.json", `{
		"request": {"path": "/x"},
		"__unknown__": ["headers.auth.*", "claims"]
	}`)
	input, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"headers.auth.*", "claims"}, input.UnknownPatterns)
	_, reserved := input.Variables[UnknownsKey]
	assert.False(t, reserved, "reserved key must not leak into bindings")
	assert.Len(t, input.Variables, 1)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", `{not json`)
	_, err = Load(bad)
	assert.Error(t, err)

	badExt := writeFile(t, "vars.toml", `x = 1`)
	_, err = Load(badExt)
	assert.Error(t, err)

	list := writeFile(t, "list.json", `[1, 2, 3]`)
	_, err = Load(list)
	assert.Error(t, err, "top-level arrays are not bindings")

	badUnknowns := writeFile(t, "u.json", `{"__unknown__": "nope"}`)
	_, err = Load(badUnknowns)
	assert.Error(t, err)
}
