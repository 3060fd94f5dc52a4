package entity

// Store representa una tienda de la cadena. Se siembra una vez y no cambia.
type Store struct {
	ID   int64
	Name string
}
