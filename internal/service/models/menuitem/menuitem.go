package menuitem

import (
	"errors"
	"maps"
	"time"
)

// DefaultLanguage is used when an item has no name in the requested language.
const DefaultLanguage = "nl"

var (
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrDuplicateMenuItem = errors.New("menu item already exists")
)

// MenuItem represents a dish on the restaurant menu.
type MenuItem struct {
	ID           string            `json:"id"`
	Category     string            `json:"category"`
	PriceCents   int64             `json:"priceCents"`
	Names        map[string]string `json:"names"`
	Descriptions map[string]string `json:"descriptions"`
	Image        string            `json:"image"`
	IsAvailable  bool              `json:"isAvailable"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// Name resolves the localized name, falling back to Dutch and then to the id.
func (m MenuItem) Name(language string) string {
	if n := m.Names[language]; n != "" {
		return n
	}
	if n := m.Names[DefaultLanguage]; n != "" {
		return n
	}

	return m.ID
}

// Patch holds the editable fields of a menu item. Nil fields are left untouched.
type Patch struct {
	Category     *string
	PriceCents   *int64
	Names        map[string]string
	Descriptions map[string]string
	Image        *string
	IsAvailable  *bool
}

// Apply merges the patch into the item.
func (p Patch) Apply(m *MenuItem) {
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.PriceCents != nil {
		m.PriceCents = *p.PriceCents
	}
	if p.Names != nil {
		m.Names = p.Names
	}
	if p.Descriptions != nil {
		m.Descriptions = p.Descriptions
	}
	if p.Image != nil {
		m.Image = *p.Image
	}
	if p.IsAvailable != nil {
		m.IsAvailable = *p.IsAvailable
	}
}

// Clone returns a copy that shares no maps with the receiver.
func (m MenuItem) Clone() MenuItem {
	m.Names = maps.Clone(m.Names)
	m.Descriptions = maps.Clone(m.Descriptions)

	return m
}
