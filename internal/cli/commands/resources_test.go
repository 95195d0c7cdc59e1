package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourcesCommand(t *testing.T) {
	t.Run("has correct usage", func(t *testing.T) {
		cmd := NewResourcesCommand()
		assert.Equal(t, "resources", cmd.Use)
		assert.NotEmpty(t, cmd.Short)
		assert.NotEmpty(t, cmd.Long)
		assert.NotEmpty(t, cmd.Example)
	})

	t.Run("lists all records", func(t *testing.T) {
		output, err := executeCommand(t, "resources")
		require.NoError(t, err)

		assert.Contains(t, output, "RECORDS (9 total)")
		for _, name := range []string{
			"Endpoint", "Function", "Gateway", "Instance", "LoadBalancer",
			"Network", "Role", "SecurityGroup", "Subnet",
		} {
			assert.Contains(t, output, name)
		}
	})

	t.Run("verbose lists reference fields", func(t *testing.T) {
		output, err := executeCommand(t, "resources", "--verbose")
		require.NoError(t, err)

		assert.Contains(t, output, "Instance:")
		assert.Contains(t, output, `Region -> context "region"`)
		assert.Contains(t, output, "(no references)")
	})

	t.Run("outputs JSON", func(t *testing.T) {
		output, err := executeCommand(t, "resources", "--format", "json")
		require.NoError(t, err)

		var out struct {
			TotalCount int `json:"total_count"`
			Records    []struct {
				Name           string   `json:"name"`
				RefCount       int      `json:"ref_count"`
				DependentCount int      `json:"dependent_count"`
				HasContext     bool     `json:"has_context"`
				Refs           []string `json:"refs"`
			} `json:"records"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &out))

		assert.Equal(t, 9, out.TotalCount)
		require.Len(t, out.Records, 9)

		byName := make(map[string]int, len(out.Records))
		for i, rec := range out.Records {
			byName[rec.Name] = i
		}

		instance := out.Records[byName["Instance"]]
		assert.Equal(t, 3, instance.RefCount)
		assert.Equal(t, 1, instance.DependentCount)
		assert.True(t, instance.HasContext)
		assert.Len(t, instance.Refs, 3)

		network := out.Records[byName["Network"]]
		assert.Equal(t, 0, network.RefCount)
		assert.Equal(t, 4, network.DependentCount)
		assert.False(t, network.HasContext)
	})
}
