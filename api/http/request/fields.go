package request

import "github.com/flashdeck/backend/pkg/apperr"

// Kind is the JSON type a field must carry.
type Kind int

const (
	KindString Kind = iota
	KindBool
)

// Field declares one content field: its wire name, its JSON type, an
// optional normalizer applied before validation, and an optional format
// validator. Validators are pure predicates; a field with a nil validator
// only has to be of the right type.
type Field struct {
	Name      string
	Kind      Kind
	Normalize func(string) string
	Validate  func(string) bool
}

// Manifest enumerates the fields one operation accepts. Required fields
// must all be present; optional ones are validated when present. Any
// content key outside the manifest rejects the whole request, so a caller
// cannot smuggle fields that belong to a different operation.
type Manifest struct {
	Required []Field
	Optional []Field
}

// Values is the validated output of a manifest. Every accessor returns
// data that already passed its field's validator.
type Values struct {
	strings map[string]string
	bools   map[string]bool
}

// Build checks content against the manifest, fail-fast: the first unknown
// key, first missing required field or first failed validator stops
// validation with InvalidData.
func (m Manifest) Build(content map[string]any) (Values, error) {
	allowed := make(map[string]Field, len(m.Required)+len(m.Optional))
	for _, f := range m.Required {
		allowed[f.Name] = f
	}
	for _, f := range m.Optional {
		allowed[f.Name] = f
	}
	for name := range content {
		if _, ok := allowed[name]; !ok {
			return Values{}, apperr.ErrInvalidData
		}
	}

	v := Values{strings: map[string]string{}, bools: map[string]bool{}}
	for _, f := range m.Required {
		raw, ok := content[f.Name]
		if !ok {
			return Values{}, apperr.ErrInvalidData
		}
		if err := v.accept(f, raw); err != nil {
			return Values{}, err
		}
	}
	for _, f := range m.Optional {
		raw, ok := content[f.Name]
		if !ok {
			continue
		}
		if err := v.accept(f, raw); err != nil {
			return Values{}, err
		}
	}
	return v, nil
}

func (v Values) accept(f Field, raw any) error {
	switch f.Kind {
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			return apperr.ErrInvalidData
		}
		v.bools[f.Name] = b
	default:
		s, ok := raw.(string)
		if !ok {
			return apperr.ErrInvalidData
		}
		if f.Normalize != nil {
			s = f.Normalize(s)
		}
		if f.Validate != nil && !f.Validate(s) {
			return apperr.ErrInvalidData
		}
		v.strings[f.Name] = s
	}
	return nil
}

// String returns a validated required string field.
func (v Values) String(name string) string { return v.strings[name] }

// Bool returns a validated required bool field.
func (v Values) Bool(name string) bool { return v.bools[name] }

// StringOpt returns a validated optional string field, nil when absent.
func (v Values) StringOpt(name string) *string {
	if s, ok := v.strings[name]; ok {
		return &s
	}
	return nil
}

// BoolOpt returns a validated optional bool field, nil when absent.
func (v Values) BoolOpt(name string) *bool {
	if b, ok := v.bools[name]; ok {
		return &b
	}
	return nil
}
