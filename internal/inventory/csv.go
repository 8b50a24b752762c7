package inventory

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
)

var csvHeader = []string{"sku", "quantity", "unit_price"}

// decodeCSV parses "sku,quantity,unit_price" records. A header row matching
// csvHeader is skipped when it is the first record. There is no comment
// syntax: encodeCSV writes a SKU like "#42" unquoted and it must read back.
func decodeCSV(data []byte) ([]Item, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	var items []Item
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, persistenceError("load", err, "malformed CSV")
		}
		line, _ := r.FieldPos(0)
		if first && isCSVHeader(rec) {
			first = false
			continue
		}
		first = false

		qty, err := ParseQuantity(rec[1])
		if err != nil {
			return nil, persistenceError("load", err, "line %d: bad quantity", line)
		}
		price, err := ParsePrice(rec[2])
		if err != nil {
			return nil, persistenceError("load", err, "line %d: bad unit price", line)
		}
		items = append(items, Item{SKU: rec[0], Quantity: qty, UnitPrice: price})
	}
	return items, nil
}

func isCSVHeader(rec []string) bool {
	for i, h := range csvHeader {
		if rec[i] != h {
			return false
		}
	}
	return true
}

func encodeCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		rec := []string{it.SKU, strconv.Itoa(it.Quantity), FormatPrice(it.UnitPrice)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
