package utils

import (
	"context"
	"time"
)

func registrationDayKey(ip string) string {
	return "reg:succday:" + ip + ":" + time.Now().Format("20060102")
}

// RegistrationDailyLimitCheck allows up to limit successful registrations per day per IP.
// It fails open when redis is missing or erroring; limit <= 0 disables the check.
func RegistrationDailyLimitCheck(ip string, limit int) bool {
	if limit <= 0 {
		return true
	}
	cli := GetRedis()
	if cli == nil {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	n, err := cli.Get(ctx, registrationDayKey(ip)).Int()
	if err != nil {
		// redis.Nil: nothing recorded today
		return true
	}
	return n < limit
}

// RegistrationDailyRecord counts a successful registration for ip.
func RegistrationDailyRecord(ip string) {
	cli := GetRedis()
	if cli == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	key := registrationDayKey(ip)
	pipe := cli.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 24*time.Hour)
	_, _ = pipe.Exec(ctx)
}
