package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNil se devuelve cuando la clave no existe en Redis
var ErrNil = errors.New("redis: clave no encontrada")

// RedisClient estructura para manejar conexiones con Redis
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient crea una nueva instancia del cliente Redis
func NewRedisClient(addr, password string, db int) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Verificar conexión
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("❌ Error conectando a Redis: %v", err)
	}

	log.Println("✅ Conexión exitosa a Redis")

	return &RedisClient{
		client: rdb,
		ctx:    ctx,
	}
}

// Get obtiene el valor de una clave
func (r *RedisClient) Get(key string) (string, error) {
	value, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrNil
		}
		return "", fmt.Errorf("error obteniendo clave %s: %w", key, err)
	}
	return value, nil
}

// Set guarda un valor con TTL opcional (0 = sin expiración)
func (r *RedisClient) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// SetNX guarda un valor solo si la clave no existe; devuelve false si ya existía
func (r *RedisClient) SetNX(key, value string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(r.ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("error guardando clave %s: %w", key, err)
	}
	return ok, nil
}

// Del elimina una clave; no es un error que no exista
func (r *RedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

// Close cierra la conexión con Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// HealthCheck verifica que Redis esté funcionando
func (r *RedisClient) HealthCheck() error {
	_, err := r.client.Ping(r.ctx).Result()
	if err != nil {
		return fmt.Errorf("redis health check failed: %v", err)
	}
	return nil
}
