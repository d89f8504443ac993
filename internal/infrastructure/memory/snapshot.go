package memory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// loadSnapshot lee el estado desde path; (nil, nil) si el archivo no existe.
func loadSnapshot(path string) (*state, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	st := &state{}
	if err := msgpack.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("decodificar snapshot: %w", err)
	}
	st.fill()
	return st, nil
}

// writeSnapshot escribe a un archivo temporal en el mismo directorio y lo renombra sobre path.
func writeSnapshot(path string, st *state) error {
	data, err := msgpack.Marshal(st)
	if err != nil {
		return fmt.Errorf("codificar snapshot: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("crear snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("escribir snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("reemplazar snapshot: %w", err)
	}
	return nil
}
