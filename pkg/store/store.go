package store

import (
	"errors"

	"github.com/backsoul/guesshuman/pkg/models"
)

// Errores de almacenamiento de sesiones
var (
	// ErrSessionNotFound la sesión no existe (o ya fue eliminada al terminar)
	ErrSessionNotFound = errors.New("sesión no encontrada")
	// ErrSessionExists ya existe una sesión con ese ID
	ErrSessionExists = errors.New("la sesión ya existe")
)

// SessionStore es la única autoridad sobre la existencia de sesiones.
// El GameService serializa por ID todas las secuencias leer-modificar-guardar,
// así que las implementaciones solo necesitan ser seguras para acceso
// concurrente entre IDs distintos.
type SessionStore interface {
	// Create inserta una sesión nueva; falla con ErrSessionExists si el ID ya está en uso
	Create(session *models.GameSession) error
	// Get devuelve la sesión o ErrSessionNotFound
	Get(id string) (*models.GameSession, error)
	// Put reemplaza la sesión almacenada (usado tras cada transición no terminal)
	Put(session *models.GameSession) error
	// Evict elimina la sesión; no es un error que no exista
	Evict(id string) error
}
