// Package redis connects to Redis and provides a rate limit bucket store,
// so several instances of the site share one limit per visitor.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	limiter, err := ratelimit.NewTokenBucket(redis.NewBucketStore(client), 5, time.Minute)
//
// Healthcheck plugs the connection into httpserver.HealthCheckHandler.
package redis
