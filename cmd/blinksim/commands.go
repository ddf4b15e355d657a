//go:build !tinygo

package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"blinky-go/errcode"
)

type op uint8

const (
	opPush op = iota
	opRelease
	opClick
	opWait
	opQuit
)

// clickHold is how long a click keeps the button down.
const clickHold = 50 * time.Millisecond

type command struct {
	op   op
	wait time.Duration
}

func parseCommand(line string) (command, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return command{}, errcode.Wrap(errcode.InvalidParams, "command", line, err)
	}
	if len(words) == 0 {
		return command{op: opClick}, nil
	}
	bad := func(msg string) (command, error) {
		return command{}, errcode.Wrap(errcode.InvalidParams, "command", msg, nil)
	}
	switch strings.ToLower(words[0]) {
	case "p", "push":
		return command{op: opPush}, nil
	case "r", "release":
		return command{op: opRelease}, nil
	case "c", "click":
		return command{op: opClick}, nil
	case "q", "quit":
		return command{op: opQuit}, nil
	case "w", "wait":
		if len(words) != 2 {
			return bad("wait needs a duration in ms")
		}
		ms, err := strconv.ParseUint(words[1], 10, 32)
		if err != nil {
			return bad("wait: " + strconv.Quote(words[1]))
		}
		return command{op: opWait, wait: time.Duration(ms) * time.Millisecond}, nil
	}
	return bad("unknown " + strconv.Quote(words[0]))
}

// parseScript splits a ';' separated script. Empty entries are skipped.
func parseScript(script string) ([]command, error) {
	var out []command
	for _, part := range strings.Split(script, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := parseCommand(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
