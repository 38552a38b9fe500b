// Package httpapi exposes the AppController over HTTP using echo, with a
// websocket stream for match updates and a token-bucket rate limiter.
package httpapi
