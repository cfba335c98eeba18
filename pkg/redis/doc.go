// Package redis wires github.com/redis/go-redis/v9 into the mailer.
//
// Connect retries until the server answers, Healthcheck plugs the client
// into the readiness probe, and Locker provides the SET NX locks the dispatch
// service holds around a (user, email type) pair while a send is in flight:
//
//	locker := redis.NewLocker(client, cfg.LockPrefix, cfg.LockTTL)
//	release, ok, err := locker.TryLock(ctx, "welcome:"+userID)
//	if err != nil || !ok {
//		// someone else is sending
//	}
//	defer release(ctx)
//
// Redis is optional; Config.Enabled reports whether REDIS_URL is set.
package redis
