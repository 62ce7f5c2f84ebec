// Package cache provides a bounded, TTL-aware response cache for outbound
// verification calls, with LRU eviction, lazy expiry on read, and
// deterministic request keying.
package cache
