// Package redis provides a Redis-backed implementation of the durable
// client storage interface, for deployments where several dashboard
// displays share one account and the session token must be shared too.
//
// Connect establishes a verified client from a redis:// or rediss:// URL
// with exponential-backoff retries; NewStore wraps it as a
// localstore.Store with a key prefix:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//	})
//	if err != nil {
//		return err
//	}
//	storage := redis.NewStore(client, "poolkit:")
//
// Healthcheck returns a ping probe suitable for readiness endpoints.
package redis
