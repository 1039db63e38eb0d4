package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"log/slog"
	"text/template"

	"tagmapper/internal/common"
	"tagmapper/internal/plan"
	"tagmapper/tags"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// DebugDir receives the raw template output of files that fail
	// formatting. Empty disables the sidecar.
	DebugDir string
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "instance_tags_gen.go").
	Filename string
	// TypeName is the struct the file was generated for.
	TypeName string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per planned struct, in plan order.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	if err := p.Diagnostics.Error(); err != nil {
		return nil, fmt.Errorf("plan has errors: %w", err)
	}

	files := make([]GeneratedFile, 0, len(p.Types))
	owners := make(map[string]string, len(p.Types))

	for i := range p.Types {
		tp := &p.Types[i]

		filename := common.GeneratedFilename(tp.Name)
		if other, dup := owners[filename]; dup {
			return nil, fmt.Errorf("types %s and %s both generate %s", other, tp.Name, filename)
		}

		owners[filename] = tp.Name

		file, err := g.generateType(p, tp, filename)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", tp.Name, err)
		}

		g.logger.Debug("generated file",
			slog.String("type", tp.Name),
			slog.String("file", filename),
			slog.Int("fields", len(tp.Fields)))

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateType(p *plan.Plan, tp *plan.TypePlan, filename string) (*GeneratedFile, error) {
	if named, ok := tp.Type.GoType.(*types.Named); ok && named.TypeParams().Len() > 0 {
		return nil, fmt.Errorf("generic struct %s is not supported", tp.Name)
	}

	data, err := buildFileData(p, tp)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugDir != "" {
			_ = writeDebugUnformatted(g.config.DebugDir, filename, buf.Bytes())
		}

		return &GeneratedFile{
			Filename: filename,
			TypeName: tp.Name,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: filename,
		TypeName: tp.Name,
		Content:  formatted,
	}, nil
}

// fileData holds all data needed for the file template.
type fileData struct {
	Header      string
	PackageName string
	Imports     []importSpec
	// Tags qualifies identifiers of package tags.
	Tags   string
	Type   string
	Fields []fieldData
}

// fieldData is one field of the generated decode and encode bodies.
type fieldData struct {
	Name     string
	Key      string
	Codec    string
	Optional bool
}

func buildFileData(p *plan.Plan, tp *plan.TypePlan) (*fileData, error) {
	imports := newImportSet(p.TypesPkg)

	data := &fileData{
		Header:      common.GeneratedHeader,
		PackageName: p.PkgName,
		Tags:        imports.add(TagsImportPath, "tags"),
		Type:        tp.Name,
	}

	for _, fp := range tp.Fields {
		if fp.Elem == nil || fp.Elem.GoType == nil {
			return nil, fmt.Errorf("field %s has no type information", fp.Name)
		}

		codec, err := codecExpr(data.Tags, fp.Strategy, imports.typeString(fp.Elem.GoType))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fp.Name, err)
		}

		data.Fields = append(data.Fields, fieldData{
			Name:     fp.Name,
			Key:      fp.Key,
			Codec:    codec,
			Optional: fp.Optional,
		})
	}

	data.Imports = imports.specs()

	return data, nil
}

// codecExpr returns the expression constructing the codec of a field.
func codecExpr(pkg string, strategy tags.Strategy, typ string) (string, error) {
	var ctor string

	switch strategy {
	case tags.StrategyString:
		ctor = "String"
	case tags.StrategyBool:
		ctor = "Bool"
	case tags.StrategyManual:
		ctor = "Manual"
	case tags.StrategyJSON:
		ctor = "JSON"
	case tags.StrategyCBOR:
		ctor = "CBOR"
	default:
		return "", fmt.Errorf("no codec for strategy %s", strategy)
	}

	return fmt.Sprintf("%s.%s[%s]()", pkg, ctor, typ), nil
}

var fileTemplate = template.Must(template.New("tags").Parse(`{{.Header}}

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

// {{.Type}}FromTags decodes {{.Type}} from list. Every field is attempted
// and all failures are returned together.
func {{.Type}}FromTags(list {{.Tags}}.TagList) ({{.Type}}, error) {
	var v {{.Type}}

	d := {{.Tags}}.NewDecoder("{{.Type}}", list)
{{range .Fields}}	{{$.Tags}}.Decode{{if .Optional}}Optional{{else}}Required{{end}}(d, "{{.Name}}", {{printf "%q" .Key}}, {{.Codec}}, &v.{{.Name}})
{{end}}
	if err := d.Err(); err != nil {
		return {{.Type}}{}, err
	}

	return v, nil
}

// IntoTags encodes v in field declaration order.
func (v {{.Type}}) IntoTags() {{.Tags}}.TagList {
	e := {{.Tags}}.NewEncoder({{len .Fields}})
{{range .Fields}}	{{$.Tags}}.Encode{{if .Optional}}Optional{{else}}Required{{end}}(e, {{printf "%q" .Key}}, {{.Codec}}, v.{{.Name}})
{{end}}
	return e.TagList()
}

// UnmarshalTags decodes list into v. v is left unchanged on error.
func (v *{{.Type}}) UnmarshalTags(list {{.Tags}}.TagList) error {
	out, err := {{.Type}}FromTags(list)
	if err != nil {
		return err
	}

	*v = out

	return nil
}
`))
