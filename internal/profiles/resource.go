package profiles

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tailscale/hujson"
)

const (
	expertiseKey = "expertise_data"
	resourcesKey = "resources"
)

// resourcesPath is the member path reported in structural errors
var resourcesPath = expertiseKey + "." + resourcesKey

// Resource is either a LegacyResource or a MigratedResource.
type Resource interface {
	resource()
}

// LegacyResource is a bare scalar naming a resource.
type LegacyResource struct {
	// Name is the original JSON literal (string, number or boolean).
	Name hujson.Literal
}

// MigratedResource is an object that is kept as is.
type MigratedResource struct {
	Value hujson.Value
}

func (LegacyResource) resource()   {}
func (MigratedResource) resource() {}

// Migrate returns the object form {"name": <scalar>, "weight": weight}.
func (r LegacyResource) Migrate(weight int) hujson.Value {
	return hujson.Value{Value: &hujson.Object{
		Members: []hujson.ObjectMember{
			{
				Name:  hujson.Value{Value: hujson.Literal(`"name"`)},
				Value: hujson.Value{Value: append(hujson.Literal(nil), r.Name...)},
			},
			{
				Name:  hujson.Value{Value: hujson.Literal(`"weight"`)},
				Value: hujson.Value{Value: hujson.Literal(strconv.Itoa(weight))},
			},
		},
	}}
}

// ClassifyResource maps an element of a resources list to its variant.
// null and nested arrays are rejected.
func ClassifyResource(v hujson.Value) (Resource, error) {
	switch val := v.Value.(type) {
	case *hujson.Object:
		return MigratedResource{Value: v}, nil
	case hujson.Literal:
		switch val.Kind() {
		case '"', '0', 't', 'f':
			return LegacyResource{Name: val}, nil
		default:
			return nil, fmt.Errorf("unsupported resource of kind %s", kindName(val.Kind()))
		}
	default:
		return nil, fmt.Errorf("unsupported resource of kind %s", kindName(v.Value.Kind()))
	}
}

// Profile is one record of a Document.
type Profile struct {
	index int
	obj   *hujson.Object
}

// Index returns the position of the profile in the document
func (p Profile) Index() int {
	return p.index
}

// Resources returns the expertise_data.resources array, or nil when the
// profile has no expertise_data or no resources member.
func (p Profile) Resources() (*hujson.Array, error) {
	expertise, ok := member(p.obj, expertiseKey)
	if !ok {
		return nil, nil
	}
	expObj, ok := expertise.Value.(*hujson.Object)
	if !ok {
		return nil, &StructuralError{
			Profile:  p.index,
			Resource: -1,
			Path:     expertiseKey,
			Message:  fmt.Sprintf("expected object, got %s", kindName(expertise.Value.Kind())),
		}
	}

	resources, ok := member(expObj, resourcesKey)
	if !ok {
		return nil, nil
	}
	arr, ok := resources.Value.(*hujson.Array)
	if !ok {
		return nil, &StructuralError{
			Profile:  p.index,
			Resource: -1,
			Path:     resourcesPath,
			Message:  fmt.Sprintf("expected array, got %s", kindName(resources.Value.Kind())),
		}
	}
	return arr, nil
}

// member returns the value of the last member called name, matching what a
// standard decoder keeps for duplicate keys.
func member(obj *hujson.Object, name string) (*hujson.Value, bool) {
	for i := len(obj.Members) - 1; i >= 0; i-- {
		lit, ok := obj.Members[i].Name.Value.(hujson.Literal)
		if !ok {
			continue
		}
		var key string
		if err := json.Unmarshal(lit, &key); err != nil {
			continue
		}
		if key == name {
			return &obj.Members[i].Value, true
		}
	}
	return nil, false
}

func kindName(k hujson.Kind) string {
	switch k {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '0':
		return "number"
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "unknown"
	}
}
