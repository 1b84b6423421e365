package order

import (
	"fmt"
	"sort"

	"restaurant/internal/pkg/errs"
)

const (
	// maxExtrasPerItem bounds the open extras mapping on a single item.
	maxExtrasPerItem = 8

	// maxExtraKeyLength bounds a single extras key.
	maxExtraKeyLength = 40
)

// ExtraKind enumerates the closed set of value kinds an item extra may hold.
type ExtraKind int

const (
	// ExtraKindBool marks a boolean extra, e.g. "decaf": true.
	ExtraKindBool ExtraKind = iota + 1

	// ExtraKindNumber marks a numeric extra, e.g. "sugar_spoons": 2.
	ExtraKindNumber

	// ExtraKindString marks a textual extra, e.g. "milk": "oat".
	ExtraKindString
)

// ExtraValue is one validated extras entry. It is constructed once when the
// order is created and treated as opaque afterwards.
type ExtraValue struct {
	kind ExtraKind
	b    bool
	n    float64
	s    string
}

// BoolExtra creates a boolean extras value.
func BoolExtra(v bool) ExtraValue {
	return ExtraValue{kind: ExtraKindBool, b: v}
}

// NumberExtra creates a numeric extras value.
func NumberExtra(v float64) ExtraValue {
	return ExtraValue{kind: ExtraKindNumber, n: v}
}

// StringExtra creates a textual extras value.
func StringExtra(v string) ExtraValue {
	return ExtraValue{kind: ExtraKindString, s: v}
}

// Kind returns the value kind of the extra.
func (v ExtraValue) Kind() ExtraKind {
	return v.kind
}

// Bool returns the boolean payload; meaningful only for ExtraKindBool.
func (v ExtraValue) Bool() bool {
	return v.b
}

// Number returns the numeric payload; meaningful only for ExtraKindNumber.
func (v ExtraValue) Number() float64 {
	return v.n
}

// Text returns the string payload; meaningful only for ExtraKindString.
func (v ExtraValue) Text() string {
	return v.s
}

// Raw returns the dynamically-typed payload, used for serialization.
func (v ExtraValue) Raw() any {
	switch v.kind {
	case ExtraKindBool:
		return v.b
	case ExtraKindNumber:
		return v.n
	case ExtraKindString:
		return v.s
	default:
		return nil
	}
}

// Extras is the bounded open mapping of customization names to values carried
// by an order item. Validated at order creation, opaque afterwards.
type Extras map[string]ExtraValue

// NewExtras validates a dynamically-typed extras mapping into Extras.
// Allowed value kinds are bool, numeric (int/int64/float64), and string.
// The mapping is bounded to maxExtrasPerItem entries with keys no longer
// than maxExtraKeyLength.
func NewExtras(raw map[string]any) (Extras, error) {
	if len(raw) == 0 {
		return Extras{}, nil
	}
	if len(raw) > maxExtrasPerItem {
		return nil, errs.NewValueIsOutOfRangeError("extras", len(raw), 0, maxExtrasPerItem)
	}

	extras := make(Extras, len(raw))
	for key, value := range raw {
		if key == "" || len(key) > maxExtraKeyLength {
			return nil, errs.NewValueIsInvalidErrorWithCause("extras",
				fmt.Errorf("key %q must be 1..%d characters", key, maxExtraKeyLength))
		}

		switch v := value.(type) {
		case bool:
			extras[key] = BoolExtra(v)
		case int:
			extras[key] = NumberExtra(float64(v))
		case int64:
			extras[key] = NumberExtra(float64(v))
		case float64:
			extras[key] = NumberExtra(v)
		case string:
			extras[key] = StringExtra(v)
		default:
			return nil, errs.NewValueIsInvalidErrorWithCause("extras",
				fmt.Errorf("key %q holds unsupported kind %T", key, value))
		}
	}

	return extras, nil
}

// Copy returns an independent copy of the mapping.
func (e Extras) Copy() Extras {
	if e == nil {
		return nil
	}
	cp := make(Extras, len(e))
	for k, v := range e {
		cp[k] = v
	}
	return cp
}

// Keys returns the extras names in deterministic order.
func (e Extras) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Item is a single order line: a product reference, a quantity, the unit
// price captured at order-creation time, and the validated extras mapping.
//
// The unit price is a snapshot in cents. It is never recomputed from a later
// catalog price; the order totals stay stable even when the menu changes.
type Item struct {
	productID int64
	quantity  int
	unitPrice int64
	extras    Extras
}

// NewItem creates an order line. Quantity must be positive, the product
// reference and unit price non-negative identifiers supplied by the catalog
// lookup performed at creation time.
func NewItem(productID int64, quantity int, unitPriceCents int64, extras Extras) (Item, error) {
	if productID <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("productID",
			fmt.Errorf("%d is not a valid product reference", productID))
	}
	if quantity <= 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if unitPriceCents < 0 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%d cents is negative", unitPriceCents))
	}

	return Item{
		productID: productID,
		quantity:  quantity,
		unitPrice: unitPriceCents,
		extras:    extras.Copy(),
	}, nil
}

// ProductID returns the catalog reference of the line.
func (i Item) ProductID() int64 {
	return i.productID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPriceCents returns the price snapshot captured at creation.
func (i Item) UnitPriceCents() int64 {
	return i.unitPrice
}

// Extras returns a copy of the item's extras mapping.
func (i Item) Extras() Extras {
	return i.extras.Copy()
}

// SubtotalCents returns quantity times the captured unit price.
func (i Item) SubtotalCents() int64 {
	return i.unitPrice * int64(i.quantity)
}

// Validate reports whether the item was built through NewItem.
func (i Item) Validate() error {
	if i.productID <= 0 || i.quantity <= 0 {
		return errs.NewValueIsRequiredError("item must be created via NewItem")
	}
	return nil
}

// copyItems deep-copies an item slice; extras maps are duplicated so
// snapshots stay immutable when the live order changes.
func copyItems(items []Item) []Item {
	cp := make([]Item, len(items))
	for idx, it := range items {
		cp[idx] = Item{
			productID: it.productID,
			quantity:  it.quantity,
			unitPrice: it.unitPrice,
			extras:    it.extras.Copy(),
		}
	}
	return cp
}
