// Package session mantiene el estado de la sesión del administrador: la
// identidad logueada, su par de tokens y la franquicia activa. El estado vive
// en memoria y se persiste de forma síncrona a un almacenamiento clave→valor
// después de cada mutación, de modo que un reinicio del proceso rehidrata la
// sesión sin pedir login de nuevo.
package session

import (
	"encoding/json"
	"sync"

	"github.com/jhoicas/posjarabe-admin/internal/application/ports"
	"github.com/jhoicas/posjarabe-admin/internal/domain/entity"
	"github.com/jhoicas/posjarabe-admin/pkg/logger"
)

// Claves de storage. Se conservan los nombres históricos del front.
const (
	keyUser            = "posjarabe.session.user"
	keyTokens          = "posjarabe.session.tokens"
	keyActiveFranchise = "posjarabe.session.activeFranchiseId"
)

// Store estado de sesión del proceso. Los lectores reciben snapshots por
// valor; los suscriptores son notificados después de cada mutación.
type Store struct {
	mu                sync.RWMutex
	user              *entity.SessionUser
	tokens            *entity.TokenPair
	activeFranchiseID string

	storage ports.Storage
	log     *logger.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New construye el store e hidrata desde storage. Un registro persistido
// corrupto o incompleto se descarta en silencio (storage limpiado) en lugar
// de tumbar el arranque.
func New(storage ports.Storage, log *logger.Logger) *Store {
	s := &Store{
		storage: storage,
		log:     log,
		subs:    make(map[int]func()),
	}
	s.hydrate()
	return s
}

// User devuelve la identidad actual, si hay sesión.
func (s *Store) User() (entity.SessionUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return entity.SessionUser{}, false
	}
	return *s.user, true
}

// Tokens devuelve el par de tokens actual, si existe.
func (s *Store) Tokens() (entity.TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return entity.TokenPair{}, false
	}
	return *s.tokens, true
}

// AccessToken accessor normalizado del access token ("" si no hay sesión).
// Es el ÚNICO punto de lectura del token: nada de fallbacks dispersos.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken
}

// RefreshToken accessor normalizado del refresh token ("" si no hay sesión).
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.RefreshToken
}

// IsLoggedIn hay usuario Y access token.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.tokens != nil && s.tokens.AccessToken != ""
}

// CurrentRole devuelve el rol actual (para el evaluador de permisos).
func (s *Store) CurrentRole() (entity.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return "", false
	}
	return s.user.Role, true
}

// ActiveFranchiseID selección de franquicia activa ("" si no hay).
func (s *Store) ActiveFranchiseID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeFranchiseID
}

// EffectiveFranchiseID resuelve la franquicia efectiva de los requests.
// Es la ÚNICA función de resolución: roles globales usan la selección
// activa; roles de franquicia usan siempre su franquicia fija, sin importar
// cualquier intento de override.
func (s *Store) EffectiveFranchiseID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	if s.user.Role.IsGlobal() {
		return s.activeFranchiseID
	}
	return s.user.FranchiseID
}

// SetSession reemplaza identidad y tokens de forma atómica. Para
// FRANCHISE_OWNER/SELLER fuerza la franquicia activa a la fija del usuario;
// para OWNER/PARTNER conserva la selección previa.
func (s *Store) SetSession(user entity.SessionUser, tokens entity.TokenPair) {
	s.mu.Lock()
	s.user = &user
	s.tokens = &tokens
	if !user.Role.IsGlobal() {
		s.activeFranchiseID = user.FranchiseID
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// PatchTokens reemplaza solo los tokens; la identidad no cambia.
// Se usa tras un refresh exitoso.
func (s *Store) PatchTokens(tokens entity.TokenPair) {
	s.mu.Lock()
	s.tokens = &tokens
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// SetActiveFranchiseID cambia la selección de franquicia activa. Solo tiene
// sentido para OWNER/PARTNER; para roles de franquicia la resolución efectiva
// la ignora de todos modos.
func (s *Store) SetActiveFranchiseID(id string) {
	s.mu.Lock()
	s.activeFranchiseID = id
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Clear borra usuario, tokens y franquicia activa juntos. Se usa en logout y
// ante fallas de precondición del refresh.
func (s *Store) Clear() {
	s.mu.Lock()
	s.user = nil
	s.tokens = nil
	s.activeFranchiseID = ""
	s.clearStorageLocked()
	s.mu.Unlock()
	s.notify()
}

// Subscribe registra un listener notificado tras cada mutación. Devuelve la
// función para desuscribirse. Reemplaza a los signals del front.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ─── Storage ─────────────────────────────────────────────────────────────────

func (s *Store) hydrate() {
	rawUser, okUser := s.storage.Get(keyUser)
	rawTokens, okTokens := s.storage.Get(keyTokens)

	if okUser && okTokens {
		var user entity.SessionUser
		var tokens entity.TokenPair
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			s.log.Warn().Err(err).Msg("sesión persistida corrupta, descartando")
			s.clearStorageLocked()
			return
		}
		if err := json.Unmarshal([]byte(rawTokens), &tokens); err != nil {
			s.log.Warn().Err(err).Msg("tokens persistidos corruptos, descartando")
			s.clearStorageLocked()
			return
		}
		// Validación de forma: sin userId o sin alguno de los dos tokens, el
		// registro no es confiable y se descarta completo.
		if user.UserID == "" || tokens.AccessToken == "" || tokens.RefreshToken == "" {
			s.log.Warn().Msg("sesión persistida incompleta, descartando")
			s.clearStorageLocked()
			return
		}
		s.user = &user
		s.tokens = &tokens
	}

	if raw, ok := s.storage.Get(keyActiveFranchise); ok && raw != "" {
		s.activeFranchiseID = raw
	} else if s.user != nil && !s.user.Role.IsGlobal() {
		s.activeFranchiseID = s.user.FranchiseID
	}
}

// persistLocked escribe el estado actual. Requiere s.mu tomado.
// Los errores de storage se registran pero no interrumpen la operación,
// igual que el front toleraba un localStorage caído.
func (s *Store) persistLocked() {
	if s.user != nil && s.tokens != nil {
		if rawUser, err := json.Marshal(s.user); err == nil {
			if err := s.storage.Set(keyUser, string(rawUser)); err != nil {
				s.log.Warn().Err(err).Msg("no se pudo persistir el usuario de sesión")
			}
		}
		if rawTokens, err := json.Marshal(s.tokens); err == nil {
			if err := s.storage.Set(keyTokens, string(rawTokens)); err != nil {
				s.log.Warn().Err(err).Msg("no se pudieron persistir los tokens")
			}
		}
	}
	if s.activeFranchiseID != "" {
		if err := s.storage.Set(keyActiveFranchise, s.activeFranchiseID); err != nil {
			s.log.Warn().Err(err).Msg("no se pudo persistir la franquicia activa")
		}
	} else {
		_ = s.storage.Delete(keyActiveFranchise)
	}
}

func (s *Store) clearStorageLocked() {
	_ = s.storage.Delete(keyUser)
	_ = s.storage.Delete(keyTokens)
	_ = s.storage.Delete(keyActiveFranchise)
}
