package services

import (
	"context"
	"testing"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "abc")
	id, ok := RunIDFromContext(ctx)
	if !ok || id != "abc" {
		t.Fatalf("expected run id abc, got %q (ok=%v)", id, ok)
	}
	if _, ok := RunIDFromContext(WithRunID(context.Background(), "")); ok {
		t.Fatal("expected empty run id to be ignored")
	}
}

func TestOperationRoundTrip(t *testing.T) {
	ctx := WithOperation(context.Background(), "analysis")
	op, ok := OperationFromContext(ctx)
	if !ok || op != "analysis" {
		t.Fatalf("expected operation analysis, got %q (ok=%v)", op, ok)
	}
	if _, ok := OperationFromContext(context.Background()); ok {
		t.Fatal("expected missing operation")
	}
}
