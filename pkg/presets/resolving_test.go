package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersioningPresets(t *testing.T) {
	assert := assert.New(t)

	versioningPresets := map[string]string{
		"a": "foo",
	}

	resolved, err := ResolveVersioning("preset:a", versioningPresets)
	assert.NoError(err)
	assert.Equal("foo", resolved)

	resolved, err = ResolveVersioning("preset: a ", versioningPresets)
	assert.NoError(err)
	assert.Equal("foo", resolved)

	_, err = ResolveVersioning("preset:b", versioningPresets)
	assert.Error(err)

	resolved, err = ResolveVersioning("c", versioningPresets)
	assert.NoError(err)
	assert.Equal("c", resolved)
}

func TestEmbeddedPresets(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"defaults.yaml", "panos.yaml", "xlsx.yaml"} {
		content, err := Presets.ReadFile(ConfigsDir + "/" + name)
		assert.NoError(err, name)
		assert.NotEmpty(content, name)
	}
}
