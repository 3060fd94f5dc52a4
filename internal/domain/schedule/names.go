package schedule

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// CleanName recorta y colapsa los espacios internos de un nombre, conservando su capitalización.
func CleanName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// SupplierKey devuelve la clave única de un proveedor: nombre limpio y sin distinción de mayúsculas.
// "Acme", " acme " y "ACME" comparten clave.
func SupplierKey(name string) string {
	// Un Caser no es seguro entre goroutines; se crea uno por llamada.
	return cases.Fold().String(CleanName(name))
}
