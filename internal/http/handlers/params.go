package handlers

import (
	"errors"
	"strconv"
)

var errBadID = errors.New("invalid id")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)

	if err != nil || id <= 0 {
		return 0, errBadID
	}

	return id, nil
}
