package cache

import "fmt"

// RateLimitKey builds the counter key for a single client. Requests are
// keyed by client IP, so every caller shares one counter per window.
func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:%s", clientIP)
}
