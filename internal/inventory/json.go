package inventory

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/roach88/stockroom/internal/canonical"
)

type jsonDocument struct {
	Items []jsonItem `json:"items"`
}

type jsonItem struct {
	SKU       string      `json:"sku"`
	Quantity  json.Number `json:"quantity"`
	UnitPrice json.Number `json:"unit_price"`
}

// decodeJSON accepts two shapes:
//
//	{"items":[{"sku":"A","quantity":1,"unit_price":"2.5"}]}
//	{"A": 1, "B": "2"}
//
// The second is the legacy name→quantity mapping; its items get price 0.
// Quantities given as strings must be plain integers.
func decodeJSON(data []byte) ([]Item, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, persistenceError("load", err, "malformed JSON: expected an object")
	}
	if top == nil {
		// "null" decodes without error into a nil map.
		return nil, persistenceError("load", nil, "malformed JSON: expected an object")
	}

	if raw, ok := top["items"]; ok && len(top) == 1 && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return decodeJSONDocument(data)
	}
	return decodeLegacyJSON(top)
}

func decodeJSONDocument(data []byte) ([]Item, error) {
	var doc jsonDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, persistenceError("load", err, "malformed JSON catalog")
	}

	items := make([]Item, 0, len(doc.Items))
	for i, ji := range doc.Items {
		if ji.Quantity == "" {
			return nil, persistenceError("load", nil, "items[%d]: quantity is required", i)
		}
		qty, err := ParseQuantity(ji.Quantity.String())
		if err != nil {
			return nil, persistenceError("load", err, "items[%d]: bad quantity", i)
		}
		var price float64
		if ji.UnitPrice != "" {
			price, err = ParsePrice(ji.UnitPrice.String())
			if err != nil {
				return nil, persistenceError("load", err, "items[%d]: bad unit price", i)
			}
		}
		items = append(items, Item{SKU: ji.SKU, Quantity: qty, UnitPrice: price})
	}
	return items, nil
}

func decodeLegacyJSON(top map[string]json.RawMessage) ([]Item, error) {
	items := make([]Item, 0, len(top))
	for _, name := range canonical.SortedKeys(top) {
		var v any
		dec := json.NewDecoder(bytes.NewReader(top[name]))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, persistenceError("load", err, "item %q: malformed value", name)
		}

		var text string
		switch q := v.(type) {
		case json.Number:
			text = q.String()
		case string:
			text = strings.TrimSpace(q)
		default:
			return nil, persistenceError("load", nil, "item %q: quantity must be an integer", name)
		}
		qty, err := ParseQuantity(text)
		if err != nil {
			return nil, persistenceError("load", err, "item %q: bad quantity", name)
		}
		items = append(items, Item{SKU: name, Quantity: qty})
	}
	return items, nil
}

func encodeJSON(w io.Writer, items []Item) error {
	list := make([]any, 0, len(items))
	for _, it := range items {
		list = append(list, map[string]any{
			"sku":        it.SKU,
			"quantity":   it.Quantity,
			"unit_price": FormatPrice(it.UnitPrice),
		})
	}
	data, err := canonical.Marshal(map[string]any{"items": list})
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
