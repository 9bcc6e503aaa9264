package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/imkonsowa/restaurant-chatbot/models"
)

const (
	DefaultRestaurantName = "Speedy Bites"
	DefaultCurrency       = "PKR"

	MenuFile     = "menu.json"
	FAQFile      = "faq.json"
	AboutFile    = "about.json"
	BranchesFile = "branches.json"
	HoursFile    = "hours.json"
)

// LoadDir reads the five JSON documents under dir. Only a missing directory is an
// error; an absent or malformed document leaves that part of the dataset empty and
// malformed records inside a document are skipped.
func LoadDir(dir string) (*models.Dataset, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}

	ds := &models.Dataset{}

	if raw, ok := readDocument(dir, MenuFile); ok {
		menu, err := decodeMenu(raw)
		if err != nil {
			slog.Warn("ignoring malformed menu", "file", MenuFile, "error", err)
		} else {
			ds.RestaurantName = menu.restaurant
			ds.Currency = menu.currency
			ds.Catalog = menu.catalog
		}
	}

	if raw, ok := readDocument(dir, FAQFile); ok {
		ds.FAQs = decodeFAQs(raw)
	}

	if raw, ok := readDocument(dir, AboutFile); ok {
		ds.About = decodeAbout(raw)
	}

	if raw, ok := readDocument(dir, BranchesFile); ok {
		ds.Branches = decodeBranches(raw)
	}

	if raw, ok := readDocument(dir, HoursFile); ok {
		ds.Hours = decodeHours(raw)
	}

	ApplyDefaults(ds)

	slog.Info("dataset loaded",
		"dir", dir,
		"categories", ds.Catalog.CategoryNames(),
		"branches", len(ds.Branches),
		"hours", len(ds.Hours),
		"faqs", len(ds.FAQs),
	)

	return ds, nil
}

// ApplyDefaults fills the restaurant name and currency when no source declared them.
func ApplyDefaults(ds *models.Dataset) {
	if ds.RestaurantName == "" && ds.About != nil {
		ds.RestaurantName = ds.About.Name
	}
	if ds.RestaurantName == "" {
		ds.RestaurantName = DefaultRestaurantName
	}
	if ds.Currency == "" && ds.About != nil {
		ds.Currency = ds.About.Currency
	}
	if ds.Currency == "" {
		ds.Currency = DefaultCurrency
	}
}

func readDocument(dir, name string) ([]byte, bool) {
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("dataset file missing", "file", name)
		} else {
			slog.Warn("failed to read dataset file", "file", name, "error", err)
		}
		return nil, false
	}

	return raw, true
}

type menuDocument struct {
	restaurant string
	currency   string
	catalog    models.Catalog
}

func decodeMenu(raw []byte) (*menuDocument, error) {
	keys, fields, err := orderedObject(raw)
	if err != nil {
		return nil, err
	}

	doc := &menuDocument{}
	_ = json.Unmarshal(fields["restaurant"], &doc.restaurant)
	_ = json.Unmarshal(fields["currency"], &doc.currency)

	menuKeys, menuFields := keys, fields
	if nested, ok := fields["menu"]; ok {
		menuKeys, menuFields, err = orderedObject(nested)
		if err != nil {
			return nil, fmt.Errorf("menu: %w", err)
		}
	}

	for i, name := range menuKeys {
		var rawItems []json.RawMessage
		if err := json.Unmarshal(menuFields[name], &rawItems); err != nil {
			continue
		}

		category := models.Category{Name: name, Position: i}
		for _, rawItem := range rawItems {
			item, ok := decodeItem(rawItem)
			if !ok {
				continue
			}
			item.Position = len(category.Items)
			category.Items = append(category.Items, item)
		}

		doc.catalog.Categories = append(doc.catalog.Categories, category)
	}

	return doc, nil
}

// orderedObject decodes a JSON object keeping the declaration order of its keys.
func orderedObject(raw []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}

	var keys []string
	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		if _, seen := fields[key]; !seen {
			keys = append(keys, key)
		}
		fields[key] = value
	}

	return keys, fields, nil
}

type rawItem struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	BasePrice   *float64          `json:"base_price"`
	Variants    []json.RawMessage `json:"variants"`
	Flavours    []json.RawMessage `json:"flavours"`
	Flavors     []json.RawMessage `json:"flavors"`
	Addons      []json.RawMessage `json:"addons"`
}

func decodeItem(raw json.RawMessage) (models.MenuItem, bool) {
	var in rawItem
	if err := json.Unmarshal(raw, &in); err != nil {
		return models.MenuItem{}, false
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.MenuItem{}, false
	}

	item := models.MenuItem{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}
	if in.BasePrice != nil && *in.BasePrice >= 0 {
		item.BasePrice = in.BasePrice
	}

	for _, rv := range in.Variants {
		var v struct {
			Size  *string  `json:"size"`
			Price *float64 `json:"price"`
		}
		if err := json.Unmarshal(rv, &v); err != nil || v.Size == nil || v.Price == nil || *v.Price < 0 {
			continue
		}
		item.Variants = append(item.Variants, models.Variant{Size: strings.TrimSpace(*v.Size), Price: *v.Price})
	}

	for _, rf := range append(in.Flavours, in.Flavors...) {
		if flavour := decodeFlavour(rf); flavour != "" {
			item.Flavours = append(item.Flavours, flavour)
		}
	}

	for _, ra := range in.Addons {
		var a struct {
			Name  string   `json:"name"`
			Price *float64 `json:"price"`
		}
		if err := json.Unmarshal(ra, &a); err != nil || strings.TrimSpace(a.Name) == "" || a.Price == nil || *a.Price < 0 {
			continue
		}
		item.Addons = append(item.Addons, models.Addon{Name: strings.TrimSpace(a.Name), Price: *a.Price})
	}

	return item, true
}

// decodeFlavour accepts either "Spicy" or {"name": "Spicy"}.
func decodeFlavour(raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return strings.TrimSpace(name)
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Name)
	}

	return ""
}

// listField returns the array under key, or the document itself when it is
// already an array.
func listField(raw []byte, key string) []json.RawMessage {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		slog.Warn("ignoring malformed dataset document", "key", key, "error", err)
		return nil
	}
	if err := json.Unmarshal(obj[key], &list); err != nil {
		return nil
	}

	return list
}

func decodeFAQs(raw []byte) []models.FAQ {
	var faqs []models.FAQ
	for _, rf := range listField(raw, "faqs") {
		var f models.FAQ
		if err := json.Unmarshal(rf, &f); err != nil || strings.TrimSpace(f.Question) == "" {
			continue
		}
		faqs = append(faqs, models.FAQ{Question: strings.TrimSpace(f.Question), Answer: strings.TrimSpace(f.Answer)})
	}

	return faqs
}

func decodeAbout(raw []byte) *models.About {
	var about models.About
	if err := json.Unmarshal(raw, &about); err != nil {
		slog.Warn("ignoring malformed about document", "error", err)
		return nil
	}
	if about.Name == "" && about.Description == "" && about.Mission == "" {
		return nil
	}

	return &about
}

func decodeBranches(raw []byte) []models.Branch {
	var branches []models.Branch
	for _, rb := range listField(raw, "branches") {
		var b models.Branch
		if err := json.Unmarshal(rb, &b); err != nil || strings.TrimSpace(b.Name) == "" {
			continue
		}
		branches = append(branches, b)
	}

	return branches
}

func decodeHours(raw []byte) []models.HoursEntry {
	var hours []models.HoursEntry
	for _, rh := range listField(raw, "hours") {
		var in struct {
			BranchName   string                     `json:"branch_name"`
			Regular      map[string]json.RawMessage `json:"regular"`
			SpecialNotes string                     `json:"special_notes"`
		}
		if err := json.Unmarshal(rh, &in); err != nil {
			continue
		}

		entry := models.HoursEntry{
			BranchName:   strings.TrimSpace(in.BranchName),
			SpecialNotes: strings.TrimSpace(in.SpecialNotes),
		}
		for day, rawText := range in.Regular {
			var text string
			if err := json.Unmarshal(rawText, &text); err != nil {
				continue
			}
			entry.Regular.Set(day, strings.TrimSpace(text))
		}

		hours = append(hours, entry)
	}

	return hours
}
