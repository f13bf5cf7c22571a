package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := Do(context.Background(), operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := Do(context.Background(), operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestDo_AttemptBudgetExhausted(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	err := Do(context.Background(), operation,
		WithMaxAttempts(4),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error after exhausting attempts, got nil")
	}
	if attempts != 4 {
		t.Errorf("Expected 4 attempts, got: %d", attempts)
	}
}

func TestDo_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("permission denied"))
	}

	err := Do(context.Background(), operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected fatal error, got nil")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for fatal error, got: %d", attempts)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestDo_FixedInterval(t *testing.T) {
	t.Parallel()
	attempts := 0
	start := time.Now()
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	}

	err := Do(context.Background(), operation,
		WithFixedInterval(20*time.Millisecond),
		WithMaxAttempts(10))

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	// Two waits at a fixed 20ms interval; exponential growth would be ~60ms.
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("Fixed interval poll took too long: %v", elapsed)
	}
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	if IsFatal(errors.New("plain")) {
		t.Error("plain error should not be fatal")
	}
	if !IsFatal(Fatal(errors.New("wrapped"))) {
		t.Error("wrapped error should be fatal")
	}
	if Fatal(nil) != nil {
		t.Error("Fatal(nil) should be nil")
	}
}
