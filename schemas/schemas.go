// Package schemas embeds the JSON Schemas for journeys files.
package schemas

import _ "embed"

// JourneySchemaJSON is the JSON Schema for journey YAML files.
//
//go:embed journey.schema.json
var JourneySchemaJSON string
