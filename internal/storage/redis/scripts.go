package redisstore

import "github.com/redis/go-redis/v9"

// The reserve scripts are the atomic mutation primitive for this backend:
// Redis executes a script as a single isolated unit, so the scan and the
// bit writes can never interleave with another caller on the same key.

// reserveFirstFreeScript scans start offsets in ascending order for a
// count-bit window of zeros, sets the window, and returns the start offset.
// Returns -1 when no window fits. The scan jumps past the blocking bit
// instead of advancing one offset at a time.
var reserveFirstFreeScript = redis.NewScript(`
local size = tonumber(ARGV[1])
local count = tonumber(ARGV[2])
local start = 0
while start <= size - count do
  local blocked = -1
  for i = start, start + count - 1 do
    if redis.call('GETBIT', KEYS[1], i) == 1 then
      blocked = i
      break
    end
  end
  if blocked == -1 then
    for i = start, start + count - 1 do
      redis.call('SETBIT', KEYS[1], i, 1)
    end
    return start
  end
  start = blocked + 1
end
return -1
`)

// reserveRangeScript sets bits [start, start+count) if all are free and
// returns start; returns -1 without writing anything when any bit is taken.
var reserveRangeScript = redis.NewScript(`
local start = tonumber(ARGV[1])
local count = tonumber(ARGV[2])
for i = start, start + count - 1 do
  if redis.call('GETBIT', KEYS[1], i) == 1 then
    return -1
  end
end
for i = start, start + count - 1 do
  redis.call('SETBIT', KEYS[1], i, 1)
end
return start
`)

// ensureRowScript sizes an absent row to exactly size bits without touching
// rows that already exist, so re-running initialization never clears a
// reserved seat. Writing bit size-1 as 0 zero-fills the value.
var ensureRowScript = redis.NewScript(`
local size = tonumber(ARGV[1])
if redis.call('EXISTS', KEYS[1]) == 0 then
  redis.call('SETBIT', KEYS[1], size - 1, 0)
end
return redis.call('STRLEN', KEYS[1])
`)
