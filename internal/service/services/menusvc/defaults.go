package menusvc

import (
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/menuitem"
)

type seed struct {
	id, category string
	priceCents   int64
	image        string
	nl, pl, en   string
}

var defaultMenu = []seed{
	{"m1", "mains", 2600, "/Lamskoteletten.png", "Lamskoteletten", "Kotlety jagnięce", "Lamb chops"},
	{"m2", "mains", 2400, "/mix.png", "Mix Grill", "Mix Grill", "Mixed grill"},
	{"m3", "mains", 900, "/Pita Gyros.png", "Pita Gyros", "Pita Gyros", "Pita gyros"},
	{"m4", "mains", 2000, "/Souvlaki Schotel.png", "Souvlaki Schotel", "Souvlaki Dish", "Souvlaki plate"},
	{"m5", "mains", 1800, "/Mussakka.png", "Moussaka", "Moussaka", "Moussaka"},
	{"sc1", "starters_cold", 600, "/Tzatziki.png", "Tzatziki", "Tzatziki", "Tzatziki"},
	{"sc3", "starters_cold", 500, "/Tzatziki.png", "Feta", "Feta", "Feta"},
	{"sc4", "starters_cold", 400, "/Griekse Salad.png", "Olijven", "Oliwki", "Olives"},
	{"sw2", "starters_warm", 1800, "/Calamares.png", "Calamari", "Kalmary", "Calamari"},
	{"sw7", "starters_warm", 500, "/Skordopsomo.png", "Knoflookbrood", "Skordopsomo", "Garlic bread"},
	{"sl1", "salads", 1400, "/Griekse Salad.png", "Griekse Salade", "Sałatka grecka", "Greek salad"},
	{"d1", "desserts", 700, "/Sokolatopita.png", "Chocoladetaart", "Sokolatopita", "Chocolate cake"},
}

// DefaultMenu returns the catalog a fresh installation starts with.
func DefaultMenu(now time.Time) []menuitem.MenuItem {
	items := make([]menuitem.MenuItem, 0, len(defaultMenu))
	for _, s := range defaultMenu {
		items = append(items, menuitem.MenuItem{
			ID:           s.id,
			Category:     s.category,
			PriceCents:   s.priceCents,
			Names:        map[string]string{"nl": s.nl, "pl": s.pl, "en": s.en},
			Descriptions: map[string]string{},
			Image:        s.image,
			IsAvailable:  true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return items
}
