package value

import "gopkg.in/yaml.v3"

// shapeYAML is the human-editable mirror of a Shape's scalar facets, used
// by ToYAML/FromYAML as an alternate import/export form alongside the
// shape-driven JSON wire codec. Properties and custom constraints aren't
// representable here: a round trip through YAML is lossy for those and is
// meant for authoring simple leaf shapes, not full shape graphs.
type shapeYAML struct {
	Virtual    bool     `yaml:"virtual,omitempty"`
	ID         string   `yaml:"id,omitempty"`
	Type       string   `yaml:"type,omitempty"`
	Class      string   `yaml:"class,omitempty"`
	MinLength  *int     `yaml:"minLength,omitempty"`
	MaxLength  *int     `yaml:"maxLength,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty"`
	LanguageIn []string `yaml:"languageIn,omitempty"`
	UniqueLang bool     `yaml:"uniqueLang,omitempty"`
	MinCount   *int     `yaml:"minCount,omitempty"`
	MaxCount   *int     `yaml:"maxCount,omitempty"`
}

// ToYAML renders s's scalar facets as YAML.
func (s *Shape) ToYAML() ([]byte, error) {
	y := shapeYAML{
		Virtual:    s.Virtual(),
		MinLength:  s.minLength,
		MaxLength:  s.maxLength,
		LanguageIn: s.languageIn,
		UniqueLang: s.uniqueLang,
		MinCount:   s.minCount,
		MaxCount:   s.maxCount,
	}
	if s.pattern != nil {
		y.Pattern = s.patternSrc
	}
	if id, ok := s.IDField(); ok {
		y.ID = id
	}
	if t, ok := s.TypeField(); ok {
		y.Type = t
	}
	if explicit, ok := s.ExplicitClass(); ok {
		y.Class = explicit.Name
	}
	return yaml.Marshal(y)
}

// FromYAML builds a Shape from the scalar facets encoded by ToYAML.
func FromYAML(data []byte) (*Shape, error) {
	var y shapeYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, newShapeError("invalid shape YAML: %v", err)
	}
	s := NewShape().WithVirtual(y.Virtual)
	if y.ID != "" {
		s = s.WithID(y.ID)
	}
	if y.Type != "" {
		s = s.WithTypeField(y.Type)
	}
	if y.Class != "" {
		s = s.WithClass(NewType(y.Class))
	}
	if y.MinLength != nil {
		s = s.WithMinLength(*y.MinLength)
	}
	if y.MaxLength != nil {
		s = s.WithMaxLength(*y.MaxLength)
	}
	if y.Pattern != "" {
		var err error
		s, err = s.WithPattern(y.Pattern)
		if err != nil {
			return nil, err
		}
	}
	if len(y.LanguageIn) > 0 {
		s = s.WithLanguageIn(y.LanguageIn...)
	}
	if y.UniqueLang {
		s = s.WithUniqueLang(true)
	}
	if y.MinCount != nil {
		s = s.WithMinCount(*y.MinCount)
	}
	if y.MaxCount != nil {
		s = s.WithMaxCount(*y.MaxCount)
	}
	return s, nil
}
