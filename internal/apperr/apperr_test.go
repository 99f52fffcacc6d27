package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(Validation("bad input")) != KindValidation {
		t.Fatal("expected KindValidation")
	}
	if KindOf(Auth("nope")) != KindAuth {
		t.Fatal("expected KindAuth")
	}
	if KindOf(Store("io", errors.New("down"))) != KindStore {
		t.Fatal("expected KindStore")
	}
	if KindOf(NotFound("missing")) != KindNotFound {
		t.Fatal("expected KindNotFound")
	}
}

func TestKindOfUntaggedDefaultsToStore(t *testing.T) {
	// 分類不明の障害を認証失敗として扱ってはならない
	if KindOf(errors.New("mystery")) != KindStore {
		t.Fatal("untagged errors must be treated as store failures")
	}
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("while signing in: %w", Auth("nope"))
	if !Is(wrapped, KindAuth) {
		t.Fatal("wrapped auth error must keep its kind")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store("session store failed", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause must be reachable via errors.Is")
	}
}
