package graphql

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/ispcore/ipam/internal/adapter"
	apierrors "github.com/ispcore/ipam/internal/api/shared/errors"
)

//go:embed schema.graphqls
var schemaSDL string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: schemaSDL})

// executableSchema resolves Query root fields and projects each result over its selection set.
// Results are the REST bodies, so object fields are looked up by their JSON names.
type executableSchema struct {
	resolvers map[string]fieldResolver
	json      adapter.JSON
}

// NewExecutableSchema creates the read-only schema served at /graphql
func NewExecutableSchema(resolver *Resolver, codec adapter.JSON) graphql.ExecutableSchema {
	return &executableSchema{resolvers: resolver.fields(), json: codec}
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

// Complexity is unbounded; list sizes are already capped by the page limits
func (e *executableSchema) Complexity(ctx context.Context, typeName, fieldName string, childComplexity int, rawArgs map[string]interface{}) (int, bool) {
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	if opCtx.Operation.Operation != ast.Query {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "only queries are supported"))
	}

	var done bool
	return func(ctx context.Context) *graphql.Response {
		if done {
			return nil
		}
		done = true
		return e.query(ctx, opCtx)
	}
}

func (e *executableSchema) query(ctx context.Context, opCtx *graphql.OperationContext) *graphql.Response {
	root := parsedSchema.Query
	fields := graphql.CollectFields(opCtx, opCtx.Operation.SelectionSet, []string{root.Name})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(field.Alias))
		buf.WriteByte(':')

		out, err := e.rootField(ctx, opCtx, field)
		if err != nil {
			graphql.AddError(ctx, gqlerror.WrapPath(ast.Path{ast.PathName(field.Alias)}, err))
			buf.WriteString("null")
			continue
		}
		buf.Write(out)
	}
	buf.WriteByte('}')

	return &graphql.Response{Data: buf.Bytes()}
}

func (e *executableSchema) rootField(ctx context.Context, opCtx *graphql.OperationContext, field graphql.CollectedField) ([]byte, error) {
	if field.Name == "__typename" {
		return []byte(strconv.Quote(parsedSchema.Query.Name)), nil
	}

	resolve, ok := e.resolvers[field.Name]
	if !ok {
		// __schema and __type land here: introspection is off, the SDL is served at /graphql/schema
		return nil, apierrors.NewBadRequestError("Field not available", field.Name)
	}

	value, err := resolve(ctx, args(field.ArgumentMap(opCtx.Variables)))
	if err != nil {
		return nil, err
	}

	generic, err := e.normalize(value)
	if err != nil {
		return nil, err
	}

	p := projector{opCtx: opCtx}
	var buf bytes.Buffer
	if err := p.value(&buf, field.Definition.Type, field.Selections, generic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalize turns a result struct into maps, slices and json.Number keyed by JSON field names
func (e *executableSchema) normalize(value interface{}) (interface{}, error) {
	raw, err := e.json.Marshal(value)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return generic, nil
}

type projector struct {
	opCtx *graphql.OperationContext
}

func (p projector) value(buf *bytes.Buffer, typ *ast.Type, sel ast.SelectionSet, v interface{}) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}

	if typ.Elem != nil {
		items, ok := v.([]interface{})
		if !ok {
			return fmt.Errorf("expected a list for %s, got %T", typ.String(), v)
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := p.value(buf, typ.Elem, sel, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	def := parsedSchema.Types[typ.NamedType]
	if def == nil {
		return fmt.Errorf("unknown type %s", typ.NamedType)
	}
	if def.Kind != ast.Object {
		out, err := writeScalar(def.Name, v)
		if err != nil {
			return err
		}
		buf.Write(out)
		return nil
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return fmt.Errorf("expected an object for %s, got %T", def.Name, v)
	}
	return p.object(buf, def, sel, obj)
}

func (p projector) object(buf *bytes.Buffer, def *ast.Definition, sel ast.SelectionSet, obj map[string]interface{}) error {
	fields := graphql.CollectFields(p.opCtx, sel, []string{def.Name})

	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(field.Alias))
		buf.WriteByte(':')

		if field.Name == "__typename" {
			buf.WriteString(strconv.Quote(def.Name))
			continue
		}

		fieldDef := def.Fields.ForName(field.Name)
		if fieldDef == nil {
			return fmt.Errorf("unknown field %s.%s", def.Name, field.Name)
		}
		if err := p.value(buf, fieldDef.Type, field.Selections, obj[field.Name]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
