package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis holds short-lived per-seat locks in front of the reservation
// transaction. The lock is advisory: the database constraints stay the
// authority, the lock just fails obvious same-seat losers fast and expires
// on its own if a holder dies mid-reservation.
type Redis struct {
	Client  *redis.Client
	LockTTL time.Duration
}

func NewRedis(client *redis.Client, lockTTL time.Duration) *Redis {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &Redis{Client: client, LockTTL: lockTTL}
}

func seatKey(scheduleID int64, seatNumber string) string {
	return fmt.Sprintf("seat_lock:%d:%s", scheduleID, seatNumber)
}

// LockSeat acquires the seat for one reservation attempt. Returns false
// when another attempt holds it.
func (r *Redis) LockSeat(scheduleID int64, seatNumber, token string) (bool, error) {
	key := seatKey(scheduleID, seatNumber)
	ok, err := r.Client.SetNX(context.Background(), key, token, r.LockTTL).Result()
	return ok, err
}

// UnlockSeat releases the lock only if the caller still owns it.
func (r *Redis) UnlockSeat(scheduleID int64, seatNumber, token string) error {
	ctx := context.Background()
	key := seatKey(scheduleID, seatNumber)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already expired
	}
	if err != nil {
		return err
	}
	if val == token {
		_, err := r.Client.Del(ctx, key).Result()
		return err
	}
	return nil
}
