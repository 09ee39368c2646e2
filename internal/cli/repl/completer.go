package repl

import "strings"

// Completer provides command completion for the REPL.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer seeded with common server commands
// and the REPL built-ins.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"APPEND", "AUTH", "BGSAVE", "CONFIG GET", "CONFIG SET",
			"DBSIZE", "DECR", "DECRBY", "DEL", "ECHO", "EXISTS",
			"EXPIRE", "FLUSHALL", "FLUSHDB", "GET", "GETSET",
			"HDEL", "HGET", "HGETALL", "HSET", "INCR", "INCRBY",
			"INFO", "KEYS", "LINDEX", "LLEN", "LPOP", "LPUSH",
			"LRANGE", "MGET", "MSET", "PERSIST", "PING", "RANDOMKEY",
			"RENAME", "RPOP", "RPUSH", "SADD", "SCARD", "SELECT",
			"SET", "SETEX", "SETNX", "SMEMBERS", "SREM", "TTL", "TYPE",
			"ZADD", "ZCARD", "ZRANGE", "ZREM", "ZSCORE",
			"output", "help", "exit", "quit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
// Matching is case-insensitive; suggestions keep their canonical case.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	up := strings.ToUpper(prefix)
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToUpper(cmd), up) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
