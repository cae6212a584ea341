package entity

import "time"

// Shelf representa una estantería (ubicación física) donde se guarda stock. No tiene capacidad propia.
type Shelf struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
