package entity

// Role rol de un usuario del sistema posjarabe.
type Role string

// Roles disponibles. OWNER y PARTNER operan sobre todas las franquicias;
// FRANCHISE_OWNER y SELLER están atados a una franquicia fija.
const (
	RoleOwner          Role = "OWNER"
	RolePartner        Role = "PARTNER"
	RoleFranchiseOwner Role = "FRANCHISE_OWNER"
	RoleSeller         Role = "SELLER"
)

// IsGlobal indica si el rol opera sobre todas las franquicias.
func (r Role) IsGlobal() bool {
	return r == RoleOwner || r == RolePartner
}

// Valid indica si el rol es uno de los cuatro conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RolePartner, RoleFranchiseOwner, RoleSeller:
		return true
	}
	return false
}

// SessionUser identidad del usuario logueado. FranchiseID queda vacío para
// roles globales (OWNER/PARTNER).
type SessionUser struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	FranchiseID string `json:"franchiseId"`
}

// TokenPair par de credenciales bearer opacas. AccessToken viaja en cada
// request autenticado; RefreshToken solo se usa en el flujo de refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
