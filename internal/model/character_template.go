package model

// CharacterTemplate describes the AI character a spawner creates.
type CharacterTemplate struct {
	templateID int32
	name       string
}

// NewCharacterTemplate creates a new character template
func NewCharacterTemplate(templateID int32, name string) *CharacterTemplate {
	return &CharacterTemplate{
		templateID: templateID,
		name:       name,
	}
}

// TemplateID returns template ID
func (t *CharacterTemplate) TemplateID() int32 {
	return t.templateID
}

// Name returns character name
func (t *CharacterTemplate) Name() string {
	return t.name
}
