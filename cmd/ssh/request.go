package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errBadRequest = errors.New("bad run request")

// maxRunTicks bounds a single session: 10 minutes of game time.
const maxRunTicks = 120_000

// runRequest is parsed from the SSH command line:
//
//	run seed=7 ticks=4000 pilot=random
type runRequest struct {
	Seed  int64
	Ticks int
	Pilot string
}

func defaultRunRequest() runRequest {
	return runRequest{Ticks: 20_000, Pilot: "random"}
}

func parseRunRequest(args []string) (runRequest, error) {
	req := defaultRunRequest()
	if len(args) == 0 {
		return req, nil
	}
	if args[0] != "run" {
		return req, fmt.Errorf("%w: unknown command %q", errBadRequest, args[0])
	}

	for _, arg := range args[1:] {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return req, fmt.Errorf("%w: expected key=value, got %q", errBadRequest, arg)
		}
		switch key {
		case "seed":
			seed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return req, fmt.Errorf("%w: seed: %v", errBadRequest, err)
			}
			req.Seed = seed
		case "ticks":
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 || n > maxRunTicks {
				return req, fmt.Errorf("%w: ticks must be in 1..%d", errBadRequest, maxRunTicks)
			}
			req.Ticks = n
		case "pilot":
			req.Pilot = value
		default:
			return req, fmt.Errorf("%w: unknown key %q", errBadRequest, key)
		}
	}
	return req, nil
}
