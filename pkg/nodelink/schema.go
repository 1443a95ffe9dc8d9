package nodelink

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the node-link document accepted by Unmarshal.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	s := reflector.Reflect(&Document{})
	s.Title = "BEL node-link graph"
	return s
}
