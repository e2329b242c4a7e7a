package specgen

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/akitaonrails/pact-lang/compiler"
)

// Parse decodes a YAML document into a SpecDoc.
func Parse(yamlBytes []byte) (*SpecDoc, error) {
	var doc SpecDoc
	if err := yaml.Unmarshal(yamlBytes, &doc); err != nil {
		return nil, fmt.Errorf("specgen: invalid YAML: %w", err)
	}
	if doc.Spec == "" {
		return nil, fmt.Errorf("specgen: missing required \"spec\" field")
	}
	return &doc, nil
}

// Emit renders doc as Pact source text: a module provenance block built
// from the spec id and owner, one (type ...) per domain type, a synthesized
// (effect-set ...) per distinct input source, and one (fn ...) per endpoint
// whose :called-by list comes from Traceability's known dependencies.
func Emit(doc *SpecDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "(module %s\n", identifier(doc.Spec))
	fmt.Fprintf(&b, "  :provenance {:req %q :author %q}\n", doc.Spec, doc.Owner)

	for _, name := range sortedKeys(doc.Domain) {
		emitType(&b, name, doc.Domain[name])
	}

	for _, source := range distinctSources(doc.Endpoints) {
		emitEffectSet(&b, source)
	}

	for _, name := range sortedEndpointKeys(doc.Endpoints) {
		emitEndpoint(&b, name, doc.Endpoints[name], doc.Traceability)
	}

	b.WriteString(")\n")
	return b.String()
}

// Generate decodes and emits in one call, then validates the result by
// round-tripping it through the compiler's lexer, parser, and lowering
// stages (not full semantic analysis — generator diagnostics are out of
// scope per §6.3). It returns an error if that round trip produced any
// diagnostic.
func Generate(yamlBytes []byte) (string, error) {
	doc, err := Parse(yamlBytes)
	if err != nil {
		return "", err
	}
	src := Emit(doc)
	d := compiler.NewDriver(nil)
	mod, coll := d.LowerOnly("<generated>", src)
	if mod == nil || coll.HasErrors() {
		return "", fmt.Errorf("specgen: generated source failed validation:\n%s", coll.Err())
	}
	return src, nil
}

func identifier(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '-'
	}, s)
	return s
}

func sortedKeys(m map[string][]FieldSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedEndpointKeys(m map[string]EndpointSpec) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func distinctSources(endpoints map[string]EndpointSpec) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range sortedEndpointKeys(endpoints) {
		src := endpoints[name].Input.Source
		if src == "" {
			src = "unknown"
		}
		if !seen[src] {
			seen[src] = true
			out = append(out, src)
		}
	}
	return out
}

func emitType(b *strings.Builder, name string, fields []FieldSpec) {
	fmt.Fprintf(b, "  (type %s\n", identifier(name))
	for _, f := range fields {
		fmt.Fprintf(b, "    (field %s %s", identifier(f.Name), fieldType(f.Type))
		if f.Immutable {
			b.WriteString(" :immutable")
		}
		if f.Generated {
			b.WriteString(" :generated")
		}
		if f.MinLen != nil {
			fmt.Fprintf(b, " :min-len %d", *f.MinLen)
		}
		if f.MaxLen != nil {
			fmt.Fprintf(b, " :max-len %d", *f.MaxLen)
		}
		if f.Format != "" {
			fmt.Fprintf(b, " :format :%s", f.Format)
		}
		if f.Unique {
			fmt.Fprintf(b, " :unique-within %s", identifier(name))
		}
		b.WriteString(")\n")
	}
	b.WriteString("  )\n")
}

func fieldType(t string) string {
	switch strings.ToLower(t) {
	case "uuid":
		return "UUID"
	case "int", "integer":
		return "Int"
	case "bool", "boolean":
		return "Bool"
	default:
		return "String"
	}
}

// effectSetName derives the name of the effect set this generator
// synthesizes for a given input source: url-sourced endpoints read, body-
// sourced endpoints write, matching the generator's read/write convention.
func effectSetName(source string) string {
	switch source {
	case "url":
		return "read-access"
	case "body":
		return "write-access"
	default:
		return "unknown-access"
	}
}

func emitEffectSet(b *strings.Builder, source string) {
	kind := "reads"
	resource := "store"
	switch source {
	case "url":
		kind, resource = "reads", "store"
	case "body":
		kind, resource = "writes", "store"
	}
	fmt.Fprintf(b, "  (effect-set %s [:%s %s])\n", effectSetName(source), kind, resource)
}

func emitEndpoint(b *strings.Builder, name string, ep EndpointSpec, trace TraceabilitySpec) {
	fmt.Fprintf(b, "  (fn %s\n", identifier(name))
	fmt.Fprintf(b, "    :effects [%s]\n", effectSetName(ep.Input.Source))
	if len(trace.KnownDependencies) > 0 {
		fmt.Fprintf(b, "    :called-by [%s]\n", strings.Join(identifierAll(trace.KnownDependencies), " "))
	}
	for _, p := range ep.Input.Fields {
		fmt.Fprintf(b, "    (param %s %s)\n", identifier(p.Name), fieldType(p.Type))
	}
	b.WriteString("    (returns (union\n")
	for _, o := range ep.Outputs {
		status := o.HTTPStatus
		if status == 0 {
			if o.IsSuccess {
				status = 200
			} else {
				status = 500
			}
		}
		if o.IsSuccess {
			fmt.Fprintf(b, "      (ok %s :http %d)\n", fieldType(o.Type), status)
		} else {
			fmt.Fprintf(b, "      (err :%s {} :http %d)\n", identifier(o.Label), status)
		}
	}
	b.WriteString("    ))\n")
	b.WriteString("    (ok 0)\n")
	b.WriteString("  )\n")
}

func identifierAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = identifier(s)
	}
	return out
}
