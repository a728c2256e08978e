// Package schema generates JSON schemas for the greeter configuration file.
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/yeisme/greeter/pkg/configs"
)

// Reflect returns the JSON schema of configs.Config keyed by mapstructure names.
func Reflect() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
	return reflector.Reflect(configs.Config{})
}

// GenConfigSchema writes the indented config schema to out.
func GenConfigSchema(out io.Writer) error {
	schemaJSON, err := json.MarshalIndent(Reflect(), "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(schemaJSON))
	return err
}
