// Package storage implementa el puerto ports.Storage: un clave→valor durable
// equivalente al localStorage del front, respaldado por un archivo JSON.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileStorage clave→valor persistido en un único archivo JSON. Cada Set y
// Delete reescribe el archivo completo (los registros de sesión son pocos y
// chicos, no amerita nada más elaborado).
type FileStorage struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileStorage abre (o inicializa) el archivo en path. Un archivo ilegible
// o con JSON inválido se trata como vacío: la sesión simplemente se pierde y
// el usuario vuelve a loguearse.
func NewFileStorage(path string) (*FileStorage, error) {
	fs := &FileStorage{path: path, data: make(map[string]string)}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		fs.data = make(map[string]string)
	}
	return fs, nil
}

// Get devuelve el valor de key y si existe.
func (f *FileStorage) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// Set guarda key=value y persiste de inmediato.
func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flushLocked()
}

// Delete elimina key y persiste de inmediato.
func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flushLocked()
}

// flushLocked escribe a un temporal y renombra, para no dejar el archivo a
// medias si el proceso muere durante la escritura. Requiere f.mu tomado.
func (f *FileStorage) flushLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
