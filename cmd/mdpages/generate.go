package main

import (
	"context"
	"fmt"
)

// runGenerate builds every selected pipeline once.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := newSession(&f.common, &f.source, &f.render, env)
	if err != nil {
		return err
	}
	defer s.Close()

	reports, err := s.runAll(ctx)
	failed := s.reportFailures(env.Stderr, reports, f.common.quiet)
	if err != nil {
		return err
	}

	if f.strict && failed > 0 {
		return fmt.Errorf("%w: %d page error(s)", ErrPagesFailed, failed)
	}
	return nil
}
