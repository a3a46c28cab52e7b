package matchmaker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// Key layout:
//
//	set: mm:pool:{pool}          -> waiting player ids
//	kv : mm:player:{id}          -> pool name, with TTL against stale entries
//	kv : mm:room:{roomID}        -> room JSON
//	kv : mm:playerRoom:{id}      -> roomID, blocks double matching
func poolKey(pool string) string     { return "mm:pool:" + pool }
func playerKey(id string) string     { return "mm:player:" + id }
func roomKey(roomID string) string   { return "mm:room:" + roomID }
func playerRoomKey(id string) string { return "mm:playerRoom:" + id }

func (r *redisRepo) Enqueue(ctx context.Context, pool, playerID string, ttlSeconds int) error {
	p := r.rdb.Pipeline()
	p.SAdd(ctx, poolKey(pool), playerID)
	p.Set(ctx, playerKey(playerID), pool, time.Duration(ttlSeconds)*time.Second)
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) PopNRandom(ctx context.Context, pool string, n int) ([]string, error) {
	// SPOP COUNT removes n random members atomically.
	ids, err := r.rdb.SPopN(ctx, poolKey(pool), int64(n)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		p := r.rdb.Pipeline()
		for _, id := range ids {
			p.Del(ctx, playerKey(id))
		}
		_, _ = p.Exec(ctx)
	}
	return ids, nil
}

func (r *redisRepo) Remove(ctx context.Context, playerID string) error {
	pool, err := r.rdb.Get(ctx, playerKey(playerID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	// Drop the player key and the set member together; delete the set when
	// it empties so idle pools do not accumulate.
	script := `
        redis.call("DEL", KEYS[1])
        redis.call("SREM", KEYS[2], ARGV[1])
        if redis.call("SCARD", KEYS[2]) == 0 then
            redis.call("DEL", KEYS[2])
        end
        return 1
    `
	err = r.rdb.Eval(ctx, script, []string{playerKey(playerID), poolKey(pool)}, playerID).Err()
	if err != nil {
		// Fall back to a non-atomic pipeline when EVAL is unavailable.
		p := r.rdb.Pipeline()
		p.SRem(ctx, poolKey(pool), playerID)
		p.Del(ctx, playerKey(playerID))
		if _, execErr := p.Exec(ctx); execErr != nil {
			return execErr
		}
		if n, _ := r.rdb.SCard(ctx, poolKey(pool)).Result(); n == 0 {
			_ = r.rdb.Del(ctx, poolKey(pool)).Err()
		}
	}
	return nil
}

func (r *redisRepo) Count(ctx context.Context, pool string) (int64, error) {
	return r.rdb.SCard(ctx, poolKey(pool)).Result()
}

func (r *redisRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	p := r.rdb.Pipeline()
	p.Set(ctx, roomKey(room.ID), data, ttl)
	for _, id := range room.Players {
		p.Set(ctx, playerRoomKey(id), room.ID, ttl)
	}
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) GetPlayerRoom(ctx context.Context, playerID string) (string, error) {
	val, err := r.rdb.Get(ctx, playerRoomKey(playerID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisRepo) ClearPlayerRoom(ctx context.Context, playerID string) error {
	return r.rdb.Del(ctx, playerRoomKey(playerID)).Err()
}
