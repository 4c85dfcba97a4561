package service

import "github.com/rs/zerolog"

// sagaStep is one step of a multi-store operation. undo may be nil when the
// step has no compensation.
type sagaStep struct {
	name string
	run  func() error
	undo func() error
}

// runSaga runs steps in order. When a step fails, the completed steps are
// compensated in reverse order and the failing step's error is returned.
func runSaga(steps []sagaStep, log zerolog.Logger) error {
	for i, step := range steps {
		err := step.run()
		if err == nil {
			continue
		}
		log.Error().Err(err).Str("step", step.name).Msg("saga step failed, compensating")
		for j := i - 1; j >= 0; j-- {
			if steps[j].undo == nil {
				continue
			}
			if uerr := steps[j].undo(); uerr != nil {
				log.Error().Err(uerr).Str("step", steps[j].name).Msg("compensation failed")
			}
		}
		return err
	}
	return nil
}
