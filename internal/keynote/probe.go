package keynote

import (
	"context"
	"strings"

	"keynote-mcp/internal/script"
)

// Status is what Probe learned about the local Keynote installation
type Status struct {
	Running bool
	Version string
}

// Probe reports whether Keynote is running and, if so, its version. It
// never launches Keynote.
func (s *Service) Probe(ctx context.Context) (*Status, error) {
	out, err := s.execute(ctx, script.KeynoteRunning())
	if err != nil {
		return nil, err
	}
	st := &Status{Running: strings.EqualFold(strings.TrimSpace(out), "true")}
	if !st.Running {
		return st, nil
	}
	if st.Version, err = s.execute(ctx, script.KeynoteVersion()); err != nil {
		return st, err
	}
	return st, nil
}

// Launch starts Keynote, or brings it to the front when it is running
func (s *Service) Launch(ctx context.Context) error {
	_, err := s.execute(ctx, script.LaunchKeynote())
	return err
}

// EnsureRunning launches Keynote if Probe finds it stopped and reports the
// status afterwards
func (s *Service) EnsureRunning(ctx context.Context) (*Status, error) {
	st, err := s.Probe(ctx)
	if err != nil || st.Running {
		return st, err
	}
	s.logger.Info("Keynote is not running, launching it")
	if err := s.Launch(ctx); err != nil {
		return st, err
	}
	return s.Probe(ctx)
}
