package commands

import (
	"context"
	"fmt"
)

// sagaStep is one remote mutation of a multi-step transition, paired with the
// inverse remote call that undoes it. A step is considered committed once run
// returns nil; compensate is nil for steps that need no undo.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// runSaga executes the steps in order. The remote side offers only
// single-resource mutations, so atomicity is manual: when a step fails, the
// already-committed steps are compensated in reverse order and the step's own
// failure is surfaced as a classified WorkflowError. The transition then
// appears either fully applied or not applied at all.
//
// Two situations break that guarantee and surface PartialFailure instead,
// carrying the applied/failed step names:
//   - the context is cancelled between steps: committed steps are not
//     compensated further
//   - a compensation call itself fails: the remote state is now inconsistent
//     and the caller must reconcile by re-fetching the order
func runSaga(ctx context.Context, steps []sagaStep) error {
	for i, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if i == 0 {
				return NewWorkflowError(KindRemoteUnavailable, "transition attempt cancelled", ctxErr)
			}
			return NewPartialFailureError(stepNames(steps[:i]), stepNames(steps[i:]), ctxErr)
		}

		err := step.run(ctx)
		if err == nil {
			continue
		}

		if compErr := compensateSteps(ctx, steps[:i]); compErr != nil {
			return NewPartialFailureError(stepNames(steps[:i]), stepNames(steps[i:]), compErr)
		}

		return NewWorkflowError(classify(err), fmt.Sprintf("step %s failed", step.name), err)
	}

	return nil
}

// compensateSteps undoes committed steps in reverse order. The first
// compensation failure aborts the rollback: once one inverse call fails
// there is no consistent state left to restore.
func compensateSteps(ctx context.Context, committed []sagaStep) error {
	for i := len(committed) - 1; i >= 0; i-- {
		step := committed[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			return fmt.Errorf("compensation of step %s failed: %w", step.name, err)
		}
	}
	return nil
}

// runBestEffort attempts every step regardless of prior failures and reports
// the applied/failed step names. Used by Cancel, whose rollback is not
// semantically defined: local state reconciles to whatever subset actually
// succeeded remotely.
func runBestEffort(ctx context.Context, steps []sagaStep) (applied []string, failed []string, firstErr error) {
	for i, step := range steps {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failed = append(failed, stepNames(steps[i:])...)
			if firstErr == nil {
				firstErr = ctxErr
			}
			break
		}

		if err := step.run(ctx); err != nil {
			failed = append(failed, step.name)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		applied = append(applied, step.name)
	}
	return applied, failed, firstErr
}

func stepNames(steps []sagaStep) []string {
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.name)
	}
	return names
}
