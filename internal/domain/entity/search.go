package entity

import "fmt"

// SearchField campo de producto sobre el que se aplica una búsqueda por texto.
type SearchField string

const (
	SearchByName    SearchField = "name"
	SearchBySKU     SearchField = "sku"
	SearchByBarcode SearchField = "barcode"
)

// DefaultSearchField es el campo preseleccionado en las pantallas de búsqueda.
const DefaultSearchField = SearchByBarcode

// ParseSearchField valida el campo recibido; vacío equivale a DefaultSearchField.
func ParseSearchField(s string) (SearchField, error) {
	switch SearchField(s) {
	case "":
		return DefaultSearchField, nil
	case SearchByName, SearchBySKU, SearchByBarcode:
		return SearchField(s), nil
	}
	return "", fmt.Errorf("campo de búsqueda desconocido: %q", s)
}

// Value devuelve el valor del campo para un snapshot de producto.
func (f SearchField) Value(p ProductSnapshot) string {
	switch f {
	case SearchByName:
		return p.Name
	case SearchBySKU:
		return p.SKU
	default:
		return p.Barcode
	}
}
