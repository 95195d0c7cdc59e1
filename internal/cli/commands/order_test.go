package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCommand(t *testing.T) {
	t.Run("has correct usage", func(t *testing.T) {
		cmd := NewOrderCommand()
		assert.Equal(t, "order", cmd.Use)
		assert.NotEmpty(t, cmd.Short)
		assert.NotEmpty(t, cmd.Long)
		assert.NotEmpty(t, cmd.Example)
	})

	t.Run("orders dependencies first", func(t *testing.T) {
		output, err := executeCommand(t, "order")
		require.NoError(t, err)

		assert.Contains(t, output, "CREATION ORDER (9 records)")
		assert.Contains(t, output, "1. Network")
		assert.Contains(t, output, "5. Subnet (after Gateway, Network)")
		assert.Contains(t, output, "9. Endpoint (after LoadBalancer, Network)")
	})

	t.Run("verbose prints the full analysis report", func(t *testing.T) {
		output, err := executeCommand(t, "order", "--verbose")
		require.NoError(t, err)

		assert.Contains(t, output, "Reference Analysis Report")
		assert.Contains(t, output, "Total Records: 9")
		assert.Contains(t, output, "(depends on: LoadBalancer, Network)")
	})

	t.Run("outputs JSON", func(t *testing.T) {
		output, err := executeCommand(t, "order", "--format", "json")
		require.NoError(t, err)

		var out struct {
			TotalCount int `json:"total_count"`
			Order      []struct {
				Position     int      `json:"position"`
				Record       string   `json:"record"`
				Dependencies []string `json:"dependencies"`
			} `json:"order"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &out))

		assert.Equal(t, 9, out.TotalCount)
		require.Len(t, out.Order, 9)

		assert.Equal(t, 1, out.Order[0].Position)
		assert.Equal(t, "Network", out.Order[0].Record)
		assert.Empty(t, out.Order[0].Dependencies)

		assert.Equal(t, 9, out.Order[8].Position)
		assert.Equal(t, "Endpoint", out.Order[8].Record)
		assert.Equal(t, []string{"LoadBalancer", "Network"}, out.Order[8].Dependencies)
	})

	t.Run("every record follows its dependencies", func(t *testing.T) {
		output, err := executeCommand(t, "order", "--format", "json")
		require.NoError(t, err)

		var out struct {
			Order []struct {
				Record       string   `json:"record"`
				Dependencies []string `json:"dependencies"`
			} `json:"order"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &out))

		position := make(map[string]int, len(out.Order))
		for i, entry := range out.Order {
			position[entry.Record] = i
		}
		for _, entry := range out.Order {
			for _, dep := range entry.Dependencies {
				assert.Less(t, position[dep], position[entry.Record],
					"%s must come after %s", entry.Record, dep)
			}
		}
	})
}
