package entity

// Roles válidos para User.
const (
	RoleComercial = "comercial"
	RoleLoja      = "loja"
)

// User representa un usuario del sistema. Un usuario de rol loja siempre tiene StoreID.
type User struct {
	ID           int64
	Email        string
	Name         string
	Role         string
	PasswordHash string // bcrypt
	StoreID      *int64
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	return role == RoleComercial || role == RoleLoja
}

// Actor es la identidad de quien invoca una operación. La capa de presentación la
// construye a partir de la sesión y la pasa explícitamente; el núcleo nunca la deriva.
type Actor struct {
	UserID  int64
	Role    string
	StoreID *int64
}

// IsComercial indica si el actor tiene alcance sobre todas las tiendas.
func (a Actor) IsComercial() bool { return a.Role == RoleComercial }

// CanAccessStore indica si el actor puede ver o cerrar visitas de storeID.
func (a Actor) CanAccessStore(storeID int64) bool {
	if a.IsComercial() {
		return true
	}
	return a.Role == RoleLoja && a.StoreID != nil && *a.StoreID == storeID
}
