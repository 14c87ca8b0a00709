package terrain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/graphql-go/graphql"
)

// Parameters is the set of tunables that shape the visualization. The driver
// reads them every tick, so mutations through the GraphQL surface take
// effect on the next frame.
type Parameters struct {
	// ScrollStep is subtracted from the offset after every tick.
	ScrollStep float64 `json:"scrollStep"`
	// Gain scales decoded audio amplitude.
	Gain float64 `json:"gain"`
	// Zoom divides lattice coordinates before sampling the noise field.
	Zoom float64 `json:"zoom"`
	// FrameTime is the tick period in milliseconds.
	FrameTime int `json:"frameTime"`
}

// DefaultParameters is a set of defaults matching the reference
// visualization.
func DefaultParameters() *Parameters {
	return &Parameters{
		ScrollStep: 0.059,
		Gain:       0.02,
		Zoom:       5,
		FrameTime:  120,
	}
}

// validate rejects values that would poison the pipeline: a non-positive
// frame time cannot arm a ticker, and a zero zoom divides lattice
// coordinates into infinities before they reach the noise field.
func (p *Parameters) validate() error {
	if p.FrameTime <= 0 {
		return fmt.Errorf("frameTime must be positive, got %d", p.FrameTime)
	}
	if p.Zoom == 0 {
		return fmt.Errorf("zoom must be nonzero")
	}
	return nil
}

func jsonTagFieldMap(typ reflect.Type) map[string]int {
	m := make(map[string]int)
	for i := 0; i < typ.NumField(); i++ {
		tag := strings.Split(typ.Field(i).Tag.Get("json"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		m[tag] = i
	}
	return m
}

// newParamsType builds a graphql object type plus a mutation field for params
// by reflecting over its json tags.
func newParamsType(name string, params *Parameters) (*graphql.Object, *graphql.Field) {
	fields := graphql.Fields{}
	mutArgs := graphql.FieldConfigArgument{}

	ref := reflect.TypeOf(*params)
	tagMap := jsonTagFieldMap(ref)

	resolver := func(index int) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			if ps, ok := p.Source.(*Parameters); ok {
				return reflect.ValueOf(ps).Elem().Field(index).Interface(), nil
			}
			return nil, fmt.Errorf("unexpected source: %#v", p.Source)
		}
	}

	for tag, i := range tagMap {
		var typ graphql.Type
		switch ref.Field(i).Type.Kind() {
		case reflect.Bool:
			typ = graphql.Boolean
		case reflect.Float32, reflect.Float64:
			typ = graphql.Float
		case reflect.String:
			typ = graphql.String
		case reflect.Int, reflect.Int32, reflect.Int64:
			typ = graphql.Int
		default:
			panic(fmt.Sprint("unsupported parameter type ", ref.Field(i).Type))
		}
		fields[tag] = &graphql.Field{Type: typ, Resolve: resolver(i)}
		mutArgs[tag] = &graphql.ArgumentConfig{Type: typ}
	}

	paramType := graphql.NewObject(
		graphql.ObjectConfig{
			Name:   name,
			Fields: fields,
		})
	paramMut := &graphql.Field{
		Type: paramType,
		Args: mutArgs,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			// mutate a copy so a rejected request leaves params untouched
			next := *params
			elem := reflect.ValueOf(&next).Elem()
			for tag, val := range p.Args {
				field := elem.Field(tagMap[tag])
				switch field.Kind() {
				case reflect.Bool:
					field.SetBool(val.(bool))
				case reflect.Float64:
					field.SetFloat(val.(float64))
				case reflect.String:
					field.SetString(val.(string))
				case reflect.Int:
					field.SetInt(int64(val.(int)))
				}
			}
			if err := next.validate(); err != nil {
				return nil, err
			}
			*params = next
			return params, nil
		},
	}

	return paramType, paramMut
}

func (d *Driver) initGraphql() error {
	paramType, paramMut := newParamsType("Params", d.params)

	rootQuery := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootQuery",
			Fields: graphql.Fields{
				"params": &graphql.Field{
					Type: paramType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return d.params, nil
					},
				},
				"offset": &graphql.Field{
					Type: graphql.Float,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return d.offset, nil
					},
				},
			},
		},
	)
	rootMut := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "RootMut",
			Fields: graphql.Fields{
				"params": paramMut,
			},
		},
	)
	schema, err := graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    rootQuery,
			Mutation: rootMut,
		},
	)
	if err != nil {
		return err
	}
	d.schema = schema
	return nil
}

// Query runs a GraphQL query against the driver's parameter schema.
func (d *Driver) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         d.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}
