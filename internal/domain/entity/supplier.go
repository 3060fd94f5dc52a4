package entity

// Supplier representa un proveedor (o campaña, en degustaciones).
// NameKey es la forma normalizada de Name y es única; ver schedule.SupplierKey.
type Supplier struct {
	ID      int64
	Name    string
	NameKey string
}
