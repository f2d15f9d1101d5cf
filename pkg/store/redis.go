package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/backsoul/guesshuman/pkg/models"
	"github.com/backsoul/guesshuman/pkg/redis"
)

const sessionKeyPrefix = "guesshuman:session:"

// RedisStore guarda cada sesión como un blob JSON en Redis con TTL.
// Permite correr varias instancias del servidor contra el mismo Redis,
// aunque el candado por sesión sigue siendo por proceso.
type RedisStore struct {
	client *redis.RedisClient
	ttl    time.Duration
}

// NewRedisStore crea un almacén de sesiones respaldado por Redis
func NewRedisStore(client *redis.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// Create inserta una sesión nueva usando SETNX para rechazar IDs duplicados
func (s *RedisStore) Create(session *models.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error serializando sesión: %w", err)
	}

	ok, err := s.client.SetNX(sessionKey(session.ID), string(data), s.ttl)
	if err != nil {
		return fmt.Errorf("error creando sesión: %w", err)
	}
	if !ok {
		return ErrSessionExists
	}
	return nil
}

// Get obtiene una sesión por ID
func (s *RedisStore) Get(id string) (*models.GameSession, error) {
	data, err := s.client.Get(sessionKey(id))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error obteniendo sesión: %w", err)
	}

	var session models.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("error parsing sesión: %w", err)
	}
	return &session, nil
}

// Put reemplaza la sesión almacenada y renueva su TTL
func (s *RedisStore) Put(session *models.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error serializando sesión: %w", err)
	}
	return s.client.Set(sessionKey(session.ID), string(data), s.ttl)
}

// Evict elimina la sesión
func (s *RedisStore) Evict(id string) error {
	return s.client.Del(sessionKey(id))
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}
