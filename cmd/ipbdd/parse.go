// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ipbdd/ipbdd"
	"go.uber.org/zap"
)

// loadText reads a line-oriented address list into s: blank lines and lines
// starting with '#' are ignored, a line starting with '!' removes the
// network that follows instead of adding it. haltOnError stops at the first
// malformed line instead of logging a warning and continuing.
func loadText(log *zap.SugaredLogger, s *ipbdd.Set, r io.Reader, haltOnError bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		remove := false
		if strings.HasPrefix(line, "!") {
			remove = true
			line = strings.TrimSpace(line[1:])
		}
		prefix, err := ipbdd.ParseNetwork(line)
		if err != nil {
			if haltOnError {
				return fmt.Errorf("line %d: %w", lineno, err)
			}
			log.Warnf("line %d: skipping %q: %v", lineno, line, err)
			continue
		}
		if remove {
			if err := s.RemoveNetwork(prefix); err != nil {
				if haltOnError {
					return fmt.Errorf("line %d: %w", lineno, err)
				}
				log.Warnf("line %d: %v", lineno, err)
			}
			continue
		}
		if err := s.AddNetwork(prefix); err != nil {
			if haltOnError {
				return fmt.Errorf("line %d: %w", lineno, err)
			}
			log.Warnf("line %d: %v", lineno, err)
		}
	}
	return scanner.Err()
}
