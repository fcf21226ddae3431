package domain

import "time"

// DefaultPreparationTime is the fallback prep time in minutes for menu items
// that never had one set.
const DefaultPreparationTime = 10

type MenuCategory struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	Items     []MenuItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID              uint      `json:"id"`
	CategoryID      uint      `json:"category_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Price           float64   `json:"price"`
	IsAvailable     bool      `json:"is_available"`
	PreparationTime int       `json:"preparation_time"` // minutes, 0 means unset
	ImageKey        string    `json:"-"`
	ImageURL        string    `json:"image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EffectivePreparationTime returns the item's prep time, defaulting unset
// values to DefaultPreparationTime.
func (i MenuItem) EffectivePreparationTime() int {
	if i.PreparationTime <= 0 {
		return DefaultPreparationTime
	}

	return i.PreparationTime
}

// MaxPreparationTime is the kitchen readiness time for a set of items: the
// slowest item wins, quantities do not add up. A cart of quick items reports
// its own max, not the unset-item default.
func MaxPreparationTime(items []MenuItem) int {
	if len(items) == 0 {
		return DefaultPreparationTime
	}

	maxTime := 0
	for _, item := range items {
		if t := item.EffectivePreparationTime(); t > maxTime {
			maxTime = t
		}
	}

	return maxTime
}

// MenuView is what a diner sees after scanning a table code.
type MenuView struct {
	TableNumber int            `json:"table_number"`
	Categories  []MenuCategory `json:"categories"`
}
