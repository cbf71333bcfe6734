package main

import (
	"context"
	"fmt"

	mdpages "github.com/alnah/go-mdpages"
)

// runWatch builds the selected pipelines, then rebuilds them whenever one
// of their sources changes, until ctx is cancelled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	f, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := newSession(&f.common, &f.source, &f.render, env)
	if err != nil {
		return err
	}
	defer s.Close()

	reports, err := s.runAll(ctx)
	s.reportFailures(env.Stderr, reports, f.common.quiet)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	fmt.Fprintln(s.stdout)
	w := mdpages.NewWatcher(s.gen, s.pipelines, f.debounce)
	return w.Watch(ctx)
}
