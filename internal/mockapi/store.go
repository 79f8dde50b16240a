package mockapi

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
)

// account usuario del mock con su hash de password.
type account struct {
	entity.User
	PasswordHash []byte
}

// memStore estado en memoria del backend fake. Sin base de datos a propósito:
// el mock existe para desarrollo local y tests, y arranca siempre desde el
// mismo seed.
type memStore struct {
	mu            sync.Mutex
	franchises    map[string]*entity.Franchise
	accounts      map[string]*account // por id
	products      map[string]*entity.Product
	sales         map[string]*entity.Sale
	refreshTokens map[string]string // refresh token → user id
	audit         []entity.AuditEntry
}

func newMemStore() *memStore {
	return &memStore{
		franchises:    make(map[string]*entity.Franchise),
		accounts:      make(map[string]*account),
		products:      make(map[string]*entity.Product),
		sales:         make(map[string]*entity.Sale),
		refreshTokens: make(map[string]string),
	}
}

// seed carga franquicias, usuarios (password "posjarabe123" para todos) y
// productos de demostración.
func (s *memStore) seed() {
	now := time.Now()
	hash, _ := bcrypt.GenerateFromPassword([]byte("posjarabe123"), bcrypt.DefaultCost)

	for _, f := range []entity.Franchise{
		{ID: "f-centro", Name: "Franquicia Centro", IsActive: true, CreatedAt: now},
		{ID: "f-norte", Name: "Franquicia Norte", IsActive: true, CreatedAt: now},
	} {
		franchise := f
		s.franchises[franchise.ID] = &franchise
	}

	for _, u := range []entity.User{
		{ID: "u-owner", Email: "owner@posjarabe.co", Name: "Dueño Global", Role: entity.RoleOwner, IsActive: true, CreatedAt: now},
		{ID: "u-partner", Email: "socia@posjarabe.co", Name: "Socia", Role: entity.RolePartner, IsActive: true, CreatedAt: now},
		{ID: "u-franq", Email: "franquiciado@posjarabe.co", Name: "Franquiciado Centro", Role: entity.RoleFranchiseOwner, FranchiseID: "f-centro", IsActive: true, CreatedAt: now},
		{ID: "u-vendedor", Email: "vendedor@posjarabe.co", Name: "Vendedor Centro", Role: entity.RoleSeller, FranchiseID: "f-centro", IsActive: true, CreatedAt: now},
	} {
		s.accounts[u.ID] = &account{User: u, PasswordHash: hash}
	}

	for _, p := range []entity.Product{
		{ID: "p-mora", FranchiseID: "f-centro", Name: "Jarabe de mora 500ml", SKU: "JAR-MORA-500", Price: 1250000, Stock: 40, IsActive: true, CreatedAt: now},
		{ID: "p-maracuya", FranchiseID: "f-centro", Name: "Jarabe de maracuyá 500ml", SKU: "JAR-MCYA-500", Price: 1380000, Stock: 25, IsActive: true, CreatedAt: now},
		{ID: "p-lulo", FranchiseID: "f-norte", Name: "Jarabe de lulo 500ml", SKU: "JAR-LULO-500", Price: 1320000, Stock: 30, IsActive: true, CreatedAt: now},
	} {
		product := p
		s.products[product.ID] = &product
	}
}

func (s *memStore) accountByEmail(email string) *account {
	for _, a := range s.accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

// issueRefresh emite un refresh token opaco para el usuario.
// Requiere s.mu tomado.
func (s *memStore) issueRefresh(userID string) string {
	token := uuid.NewString()
	s.refreshTokens[token] = userID
	return token
}

// rotateRefresh consume el token viejo y emite uno nuevo (rotación en cada
// refresh). Devuelve el usuario dueño o nil si el token no existe.
// Requiere s.mu tomado.
func (s *memStore) rotateRefresh(oldToken string) (*account, string) {
	userID, ok := s.refreshTokens[oldToken]
	if !ok {
		return nil, ""
	}
	delete(s.refreshTokens, oldToken)
	acc, ok := s.accounts[userID]
	if !ok || !acc.IsActive {
		return nil, ""
	}
	return acc, s.issueRefresh(userID)
}

// recordAudit agrega una entrada de auditoría. Requiere s.mu tomado.
func (s *memStore) recordAudit(actorID, action, entityType, entityID, franchiseID, detail string) {
	s.audit = append(s.audit, entity.AuditEntry{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		FranchiseID: franchiseID,
		Detail:      detail,
		CreatedAt:   time.Now(),
	})
}

// salesSorted copia de las ventas ordenadas por fecha descendente.
// Requiere s.mu tomado.
func (s *memStore) salesSorted() []entity.Sale {
	out := make([]entity.Sale, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, *sale)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
