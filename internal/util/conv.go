package util

import (
	"strconv"
)

// ParseID parses a path id; zero is rejected because the store never assigns it.
func ParseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
