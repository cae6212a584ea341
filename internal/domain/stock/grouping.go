// Package stock contiene los servicios de dominio puros sobre vínculos de stock:
// agrupación por producto para la vista de inventario y formato de estanterías.
package stock

import (
	"strings"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/pkg/textsearch"
)

const (
	// ShelfSeparator separa los nombres de estantería en la cadena agrupada.
	ShelfSeparator = ", "
	// MaxDisplayedShelves cantidad de estanterías mostradas antes de truncar.
	MaxDisplayedShelves = 3
	// Ellipsis marca de truncado.
	Ellipsis = "..."
)

// GroupedRow fila derivada (solo lectura) con todos los vínculos de un producto.
type GroupedRow struct {
	ProductID     string
	Name          string
	SKU           string
	Barcode       string
	TotalQuantity int
	Shelves       string
}

// GroupByProduct agrupa los vínculos por ProductID respetando el orden de primera aparición.
// Los nombres de estantería se concatenan en orden de entrada con ShelfSeparator, sin
// deduplicar; un vínculo sin estanterías no agrega segmentos vacíos. No modifica la entrada.
func GroupByProduct(details []*entity.StockLinkDetail) []GroupedRow {
	rows := make([]GroupedRow, 0)
	names := make([][]string, 0)
	index := make(map[string]int)

	for _, d := range details {
		if d == nil {
			continue
		}
		i, ok := index[d.ProductID]
		if !ok {
			i = len(rows)
			index[d.ProductID] = i
			rows = append(rows, GroupedRow{
				ProductID:     d.ProductID,
				Name:          d.Product.Name,
				SKU:           d.Product.SKU,
				Barcode:       d.Product.Barcode,
				TotalQuantity: d.Product.TotalQuantity,
			})
			names = append(names, nil)
		}
		for _, n := range d.ShelfNames {
			if n != "" {
				names[i] = append(names[i], n)
			}
		}
	}

	for i := range rows {
		rows[i].Shelves = strings.Join(names[i], ShelfSeparator)
	}
	return rows
}

// FormatShelfNames trunca la cadena para mostrar: con más de MaxDisplayedShelves nombres
// devuelve los primeros seguidos de Ellipsis; si no, la cadena sin cambios.
func FormatShelfNames(shelves string) string {
	parts := strings.Split(shelves, ShelfSeparator)
	if len(parts) > MaxDisplayedShelves {
		return strings.Join(parts[:MaxDisplayedShelves], ShelfSeparator) + Ellipsis
	}
	return shelves
}

// FilterRows conserva las filas cuyo campo elegido contiene term (sin distinguir mayúsculas ni acentos).
func FilterRows(rows []GroupedRow, field entity.SearchField, term string) []GroupedRow {
	if term == "" {
		return rows
	}
	out := make([]GroupedRow, 0, len(rows))
	for _, r := range rows {
		snap := entity.ProductSnapshot{Name: r.Name, SKU: r.SKU, Barcode: r.Barcode}
		if textsearch.Contains(field.Value(snap), term) {
			out = append(out, r)
		}
	}
	return out
}

// ShelfItem producto guardado en una estantería con su cantidad.
type ShelfItem struct {
	ProductID   string
	ProductName string
	Quantity    int
}

// GroupByShelf indexa los vínculos por ShelfID conservando el orden de entrada.
func GroupByShelf(details []*entity.StockLinkDetail) map[string][]ShelfItem {
	out := make(map[string][]ShelfItem)
	for _, d := range details {
		if d == nil {
			continue
		}
		out[d.ShelfID] = append(out[d.ShelfID], ShelfItem{
			ProductID:   d.ProductID,
			ProductName: d.Product.Name,
			Quantity:    d.Quantity,
		})
	}
	return out
}
