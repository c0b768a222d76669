// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bureau-foundation/smack/lib/hit"
)

// tierExcess is the excess acceleration a keypress or tier name
// stands for, placed inside each tier's band.
var tierExcess = map[string]float64{
	hit.Light:  0.5,
	hit.Medium: 1.5,
	hit.Hard:   2.5,
}

// keyTiers maps raw-mode keys to tiers.
var keyTiers = map[byte]string{
	'1': hit.Light,
	'2': hit.Medium,
	'3': hit.Hard,
}

// parseLine turns one stdin line into an event. A line is a tier name
// or an excess acceleration in g. Blank lines and excess values below
// the light threshold produce no event.
func parseLine(line string) (hit.Event, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return hit.Event{}, false, nil
	}
	if excess, ok := tierExcess[strings.ToLower(line)]; ok {
		event, _ := hit.New(excess)
		return event, true, nil
	}
	excess, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return hit.Event{}, false, fmt.Errorf("%q is neither a tier (light, medium, hard) nor a number", line)
	}
	event, ok := hit.New(excess)
	return event, ok, nil
}

// readLines emits an event for each parseable line until r ends or
// ctx is done. Unparseable lines are reported through onError.
func readLines(ctx context.Context, r io.Reader, emit func(hit.Event), onError func(error)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		event, ok, err := parseLine(scanner.Text())
		if err != nil {
			onError(err)
			continue
		}
		if ok {
			emit(event)
		}
	}
	return scanner.Err()
}

// readKeys emits an event per 1/2/3 keypress. q, ctrl+c, or ctrl+d
// ends input.
func readKeys(ctx context.Context, r io.Reader, emit func(hit.Event)) error {
	buffer := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := r.Read(buffer)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if n == 0 {
			continue
		}
		switch key := buffer[0]; key {
		case 'q', 0x03, 0x04:
			return nil
		default:
			if tier, ok := keyTiers[key]; ok {
				event, _ := hit.New(tierExcess[tier])
				emit(event)
			}
		}
	}
	return nil
}
