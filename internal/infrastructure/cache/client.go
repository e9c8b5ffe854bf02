package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client operaciones mínimas de caché clave/valor que usan los adaptadores.
//
// SetIfNewer guarda value solo si la entrada actual no tiene una versión mayor. value debe ser
// un objeto JSON con la versión en el campo numérico "v"; devuelve false si no se escribió.
type Client interface {
	Get(ctx context.Context, key string) (string, error)
	SetIfNewer(ctx context.Context, key string, version int, value string, expiration time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// ErrKeyNotFound la clave no existe en la caché.
var ErrKeyNotFound = redis.Nil

// RedisClient implementación de Client sobre Redis.
type RedisClient struct {
	rdb *redis.Client
}

// RedisOptions conexión a Redis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient conecta y hace PING; si Redis no responde devuelve error para que el llamador decida.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return &RedisClient{rdb: rdb}, nil
}

// Get valor de la clave; ErrKeyNotFound si no existe.
func (c *RedisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// setIfNewerScript compara el campo "v" de la entrada guardada con ARGV[2] y escribe en el
// mismo paso; una entrada que no es JSON se reemplaza.
var setIfNewerScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur then
	local ok, doc = pcall(cjson.decode, cur)
	if ok and type(doc) == 'table' and tonumber(doc['v']) and tonumber(doc['v']) > tonumber(ARGV[2]) then
		return 0
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// SetIfNewer escritura condicionada a la versión, atómica en Redis.
func (c *RedisClient) SetIfNewer(ctx context.Context, key string, version int, value string, expiration time.Duration) (bool, error) {
	written, err := setIfNewerScript.Run(ctx, c.rdb, []string{key}, value, version, expiration.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return written == 1, nil
}

// Delete borra la clave (no falla si no existe).
func (c *RedisClient) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close cierra la conexión.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
