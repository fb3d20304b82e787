package snapshot

import (
	"strings"
)

// Item group keys.
const (
	GroupSecurityPPE = "secPpe"
	GroupCleaningPPE = "clnPpe"
	GroupEquipment   = "equip"
	GroupConsumables = "clnCons"
)

// ItemDef is one fixed catalog line with its default quantity and unit price.
type ItemDef struct {
	Name     string
	Label    string
	Quantity float64
	Price    float64
}

// GroupDef is a fixed list of catalog lines. SubtotalKey names the derived
// field reporting the group subtotal; consumables have none.
type GroupDef struct {
	Key         string
	Label       string
	SubtotalKey string
	Capex       bool
	Items       []ItemDef
}

// QuantityKey returns the field key holding the item's quantity.
func (g GroupDef) QuantityKey(item ItemDef) string {
	return g.Key + titleCase(item.Name) + "Qty"
}

// PriceKey returns the field key holding the item's unit price.
func (g GroupDef) PriceKey(item ItemDef) string {
	return g.Key + titleCase(item.Name) + "Price"
}

func (g GroupDef) fields() []Field {
	out := make([]Field, 0, 2*len(g.Items))
	for _, item := range g.Items {
		out = append(out, num(g.QuantityKey(item), item.Quantity), num(g.PriceKey(item), item.Price))
	}
	return out
}

var catalog = []GroupDef{
	{
		Key:         GroupSecurityPPE,
		Label:       "Security PPE",
		SubtotalKey: KeySecPpeCapex,
		Capex:       true,
		Items: []ItemDef{
			{Name: "shoes", Label: "Safety shoes", Quantity: 3, Price: 550},
			{Name: "vest", Label: "High-visibility vest", Quantity: 3, Price: 80},
			{Name: "parka", Label: "Winter parka", Quantity: 3, Price: 420},
			{Name: "rain", Label: "Rain gear", Quantity: 3, Price: 180},
			{Name: "light", Label: "Flashlight", Quantity: 3, Price: 150},
			{Name: "radio", Label: "Two-way radio", Quantity: 2, Price: 850},
			{Name: "aid", Label: "First-aid kit", Quantity: 1, Price: 250},
		},
	},
	{
		Key:         GroupCleaningPPE,
		Label:       "Cleaning PPE",
		SubtotalKey: KeyClnPpeCapex,
		Capex:       true,
		Items: []ItemDef{
			{Name: "shoes", Label: "Non-slip shoes", Quantity: 6, Price: 300},
			{Name: "gloves", Label: "Gloves", Quantity: 6, Price: 50},
			{Name: "uniform", Label: "Uniform", Quantity: 6, Price: 200},
			{Name: "mask", Label: "Masks", Quantity: 6, Price: 50},
		},
	},
	{
		Key:         GroupEquipment,
		Label:       "Cleaning Equipment",
		SubtotalKey: KeyEquipCapex,
		Capex:       true,
		Items: []ItemDef{
			{Name: "scrubber", Label: "Floor scrubber", Quantity: 1, Price: 18000},
			{Name: "vacuum", Label: "Vacuum cleaner", Quantity: 2, Price: 3500},
			{Name: "trolley", Label: "Cleaning trolley", Quantity: 2, Price: 1200},
			{Name: "signs", Label: "Wet floor signs", Quantity: 4, Price: 150},
			{Name: "mopKit", Label: "Mop kit", Quantity: 4, Price: 250},
		},
	},
	{
		Key:   GroupConsumables,
		Label: "Cleaning consumables",
		Items: []ItemDef{
			{Name: "detergent", Label: "Detergent", Quantity: 20, Price: 45},
			{Name: "disinfectant", Label: "Disinfectant", Quantity: 15, Price: 60},
			{Name: "trashBags", Label: "Trash bags", Quantity: 20, Price: 35},
			{Name: "paper", Label: "Paper products", Quantity: 12, Price: 45},
		},
	},
}

// Catalog returns every item group in display order.
func Catalog() []GroupDef {
	out := make([]GroupDef, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogGroup returns the group with the given key.
func CatalogGroup(key string) (GroupDef, bool) {
	for _, g := range catalog {
		if g.Key == key {
			return g, true
		}
	}
	return GroupDef{}, false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
