// Package specgen implements the spec-generator external collaborator
// (§6.3): it decodes a restricted YAML subset into a typed SpecDoc and
// emits Pact source text, validating the result by round-tripping it
// through the compiler's own lexer, parser, and lowering stages.
package specgen

// SpecDoc is the root of the YAML subset this generator accepts. Field
// names mirror the generator's YAML keys (`spec`, `domain`, `endpoints`,
// ...), modeled on original_source's SpecDoc/DomainType/Endpoint shapes.
type SpecDoc struct {
	Spec          string                    `yaml:"spec"`
	Title         string                    `yaml:"title"`
	Owner         string                    `yaml:"owner"`
	Domain        map[string][]FieldSpec    `yaml:"domain"`
	Endpoints     map[string]EndpointSpec   `yaml:"endpoints"`
	Quality       []string                  `yaml:"quality"`
	Traceability  TraceabilitySpec          `yaml:"traceability"`
}

type FieldSpec struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Required     bool   `yaml:"required"`
	MinLen       *int64 `yaml:"min_len"`
	MaxLen       *int64 `yaml:"max_len"`
	Format       string `yaml:"format"`
	Unique       bool   `yaml:"unique"`
	Generated    bool   `yaml:"generated"`
	Immutable    bool   `yaml:"immutable"`
}

type EndpointSpec struct {
	Description string           `yaml:"description"`
	Input       InputSpec        `yaml:"input"`
	Outputs     []OutputSpec     `yaml:"outputs"`
	Constraints []string         `yaml:"constraints"`
}

type InputSpec struct {
	Description string      `yaml:"description"`
	Source      string      `yaml:"source"` // "url" | "body"
	Fields      []FieldSpec `yaml:"fields"`
}

type OutputSpec struct {
	Label      string `yaml:"label"`
	Type       string `yaml:"type"`
	HTTPStatus int    `yaml:"http_status"`
	IsSuccess  bool   `yaml:"is_success"`
}

type TraceabilitySpec struct {
	KnownDependencies []string `yaml:"known_dependencies"`
}
