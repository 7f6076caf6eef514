package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range Names() {
		t.Run(schemaFile, func(t *testing.T) {
			content, err := Load(schemaFile)
			require.NoError(t, err, "should be able to read embedded schema")

			var v map[string]interface{}
			err = json.Unmarshal([]byte(content), &v)
			require.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
			assert.Equal(t, "object", v["type"])
			assert.Contains(t, v, "properties")
		})
	}
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("missing.schema.json")
	assert.Error(t, err)
}
