// Package schemas embeds the JSON schemas shipped with comborank.
package schemas

import _ "embed"

// ConfigSchemaJSON is the JSON schema for .comborank.yaml files.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
