package model

import "time"

// Character is an AI-controlled character placed into the world by a spawner.
type Character struct {
	*WorldObject

	template  *CharacterTemplate
	spawnedAt time.Time
}

// NewCharacter creates character from template at given location.
func NewCharacter(objectID uint32, template *CharacterTemplate, loc Location) *Character {
	return &Character{
		WorldObject: NewWorldObject(objectID, template.Name(), loc),
		template:    template,
		spawnedAt:   time.Now(),
	}
}

// Template returns character template
func (c *Character) Template() *CharacterTemplate {
	return c.template
}

// SpawnedAt returns the time character entered the world
func (c *Character) SpawnedAt() time.Time {
	return c.spawnedAt
}
