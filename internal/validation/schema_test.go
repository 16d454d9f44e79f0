package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validConfigYAML = `game:
  total_numbers: 49
  numbers_per_combo: 4
weights:
  frequency: 45
  match_complete: 33
  match_partial: 12
  distribution: 10
output:
  count: 100
  format: markdown
engine:
  workers: 4
upload:
  account_url: https://example.blob.core.windows.net
  container: results
  formats: [json, html]
`

const invalidConfigYAML = `game:
  total_numbers: 5
  numbers_per_combo: 4
weights:
  frequency: 145
output:
  format: pdf
colour: blue
`

// Structurally valid, but the weights add up to 90.
const badSumConfigYAML = `weights:
  frequency: 40
  match_complete: 30
  match_partial: 10
  distribution: 10
`

func TestValidateConfigBytes_Valid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(validConfigYAML))
	require.Empty(t, errs, "valid config should have no errors")
}

func TestValidateConfigBytes_Empty(t *testing.T) {
	require.Empty(t, ValidateConfigBytes(nil))
	require.Empty(t, ValidateConfigBytes([]byte("# only a comment\n")))
}

func TestValidateConfigBytes_Invalid(t *testing.T) {
	errs := ValidateConfigBytes([]byte(invalidConfigYAML))
	require.NotEmpty(t, errs, "invalid config should have errors")

	joined := strings.Join(errs, "\n")
	require.Contains(t, joined, "total_numbers")
	require.Contains(t, joined, "frequency")
	require.Contains(t, joined, "format")
	require.Contains(t, joined, "colour")
}

func TestValidateConfigBytes_YAMLError(t *testing.T) {
	errs := ValidateConfigBytes([]byte("{{{not yaml"))
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateConfigFile_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".comborank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)
}

func TestValidateConfigFile_SchemaErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".comborank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(invalidConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, errs)
}

func TestValidateConfigFile_WeightSum(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".comborank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(badSumConfigYAML), 0644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0], "weights must sum to 100%, got 90%")
}

func TestValidateConfigFile_NotFound(t *testing.T) {
	_, err := ValidateConfigFile("/nonexistent/.comborank.yaml")
	require.Error(t, err)
}
