package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeAssign   = "ASSIGN"   // entrada a una estantería
	MovementTypeWithdraw = "WITHDRAW" // salida de una estantería
)

// StockMovement registro inmutable de una asignación o retirada confirmada.
// Quantity es siempre positiva; el sentido lo da Type.
type StockMovement struct {
	ID           string
	ProductID    string
	ShelfID      string
	LinkID       string
	Type         string
	Quantity     int
	LinkBalance  int // cantidad del vínculo después del movimiento (0 si se eliminó)
	ProductTotal int // total del producto después del movimiento
	CreatedBy    string
	CreatedAt    time.Time
}
