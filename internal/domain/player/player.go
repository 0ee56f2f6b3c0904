package player

import "github.com/andrescamacho/cozyhearth-go/internal/domain/crafting"

// DefaultName is the innkeeper's name in a new game
const DefaultName = "Innkeeper"

// Player represents the innkeeper whose skills gate crafting
type Player struct {
	Name      string         `json:"name"`
	Skills    map[string]int `json:"skills"`
	Inventory []string       `json:"inventory"`
}

// DefaultSkills are the skill levels every new innkeeper starts with
func DefaultSkills() map[string]int {
	return map[string]int{
		"cooking":   1,
		"gardening": 1,
		"crafting":  1,
		"diplomacy": 1,
	}
}

// NewPlayer creates a new player with the default skill set
func NewPlayer(name string) *Player {
	if name == "" {
		name = DefaultName
	}
	return &Player{
		Name:      name,
		Skills:    DefaultSkills(),
		Inventory: []string{},
	}
}

// CraftingSkills returns a copy of the player's skills for recipe checks
func (p *Player) CraftingSkills() crafting.Skills {
	skills := make(crafting.Skills, len(p.Skills))
	for name, level := range p.Skills {
		skills[name] = level
	}
	return skills
}

// SetSkill sets a skill level, ignoring levels below 1
func (p *Player) SetSkill(name string, level int) {
	if level < 1 {
		return
	}
	if p.Skills == nil {
		p.Skills = make(map[string]int)
	}
	p.Skills[name] = level
}

// Normalize fills in fields missing from older saves
func (p *Player) Normalize() {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Skills == nil {
		p.Skills = DefaultSkills()
	}
	if p.Inventory == nil {
		p.Inventory = []string{}
	}
}
