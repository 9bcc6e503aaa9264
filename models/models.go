package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lib/pq"
)

type Variant struct {
	ID         uint64  `gorm:"primaryKey" json:"-"`
	MenuItemID uint64  `json:"-"`
	Size       string  `json:"size"`
	Price      float64 `json:"price"`
}

func (v *Variant) TableName() string {
	return "menu_item_variants"
}

type Addon struct {
	ID         uint64  `gorm:"primaryKey" json:"-"`
	MenuItemID uint64  `json:"-"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

func (a *Addon) TableName() string {
	return "menu_item_addons"
}

type MenuItem struct {
	ID          uint64         `gorm:"primaryKey" json:"-"`
	CategoryID  uint64         `json:"-"`
	Position    int            `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	BasePrice   *float64       `json:"base_price,omitempty"`
	Variants    []Variant      `gorm:"foreignKey:MenuItemID" json:"variants,omitempty"`
	Flavours    pq.StringArray `gorm:"type:text[]" json:"flavours,omitempty"`
	Addons      []Addon        `gorm:"foreignKey:MenuItemID" json:"addons,omitempty"`
}

func (m *MenuItem) TableName() string {
	return "menu_items"
}

// Prices returns the variant prices, or the base price when the item has no
// priced variants.
func (m *MenuItem) Prices() []float64 {
	prices := make([]float64, 0, len(m.Variants))
	for _, v := range m.Variants {
		prices = append(prices, v.Price)
	}
	if len(prices) == 0 && m.BasePrice != nil {
		prices = append(prices, *m.BasePrice)
	}

	return prices
}

type Category struct {
	ID       uint64     `gorm:"primaryKey" json:"-"`
	Position int        `json:"-"`
	Name     string     `gorm:"uniqueIndex" json:"name"`
	Items    []MenuItem `gorm:"foreignKey:CategoryID" json:"items"`
}

func (c *Category) TableName() string {
	return "categories"
}

// DisplayName turns a data key such as "deals_and_combos" into "Deals And Combos".
func (c *Category) DisplayName() string {
	words := strings.Fields(strings.ReplaceAll(c.Name, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}

	return strings.Join(words, " ")
}

// Catalog keeps categories in their declared order.
type Catalog struct {
	Categories []Category `json:"categories"`
}

func (c *Catalog) Empty() bool {
	for _, cat := range c.Categories {
		if len(cat.Items) > 0 {
			return false
		}
	}

	return true
}

func (c *Catalog) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, cat.Name)
	}

	return names
}

func (c *Catalog) FindCategory(name string) (*Category, bool) {
	for i := range c.Categories {
		if strings.EqualFold(c.Categories[i].Name, name) {
			return &c.Categories[i], true
		}
	}

	return nil, false
}

func (c *Catalog) FindItem(name string) (*MenuItem, bool) {
	for i := range c.Categories {
		for j := range c.Categories[i].Items {
			if strings.EqualFold(c.Categories[i].Items[j].Name, name) {
				return &c.Categories[i].Items[j], true
			}
		}
	}

	return nil, false
}

type Branch struct {
	ID      uint64 `gorm:"primaryKey" json:"-"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func (b *Branch) TableName() string {
	return "branches"
}

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type WeekHours struct {
	Monday    string `json:"monday,omitempty"`
	Tuesday   string `json:"tuesday,omitempty"`
	Wednesday string `json:"wednesday,omitempty"`
	Thursday  string `json:"thursday,omitempty"`
	Friday    string `json:"friday,omitempty"`
	Saturday  string `json:"saturday,omitempty"`
	Sunday    string `json:"sunday,omitempty"`
}

func (w WeekHours) Day(day string) string {
	switch strings.ToLower(day) {
	case "monday":
		return w.Monday
	case "tuesday":
		return w.Tuesday
	case "wednesday":
		return w.Wednesday
	case "thursday":
		return w.Thursday
	case "friday":
		return w.Friday
	case "saturday":
		return w.Saturday
	case "sunday":
		return w.Sunday
	}

	return ""
}

func (w *WeekHours) Set(day, text string) bool {
	switch strings.ToLower(day) {
	case "monday":
		w.Monday = text
	case "tuesday":
		w.Tuesday = text
	case "wednesday":
		w.Wednesday = text
	case "thursday":
		w.Thursday = text
	case "friday":
		w.Friday = text
	case "saturday":
		w.Saturday = text
	case "sunday":
		w.Sunday = text
	default:
		return false
	}

	return true
}

type HoursEntry struct {
	ID           uint64    `gorm:"primaryKey" json:"-"`
	BranchName   string    `json:"branch_name"`
	Regular      WeekHours `gorm:"embedded" json:"regular"`
	SpecialNotes string    `json:"special_notes,omitempty"`
}

func (h *HoursEntry) TableName() string {
	return "hours"
}

type FAQ struct {
	ID       uint64 `gorm:"primaryKey" json:"-"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f *FAQ) TableName() string {
	return "faqs"
}

type About struct {
	ID          uint64 `gorm:"primaryKey" json:"-"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Mission     string `json:"mission,omitempty"`
	Currency    string `json:"currency,omitempty"`
}

func (a *About) TableName() string {
	return "about"
}

// Dataset is everything the responder reads. It is built once at startup and
// never mutated afterwards.
type Dataset struct {
	RestaurantName string       `json:"restaurant"`
	Currency       string       `json:"currency"`
	Catalog        Catalog      `json:"catalog"`
	Branches       []Branch     `json:"branches"`
	Hours          []HoursEntry `json:"hours"`
	FAQs           []FAQ        `json:"faqs"`
	About          *About       `json:"about,omitempty"`
}
