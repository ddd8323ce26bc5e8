package enrichment

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestErrorMatchesOnlyItsKind(t *testing.T) {
	sentinels := map[Kind]error{
		KindTimeout:           ErrTimeout,
		KindDependencyFailure: ErrDependencyFailure,
		KindMissingReference:  ErrMissingReference,
	}
	for kind := range sentinels {
		err := error(&Error{Kind: kind, Op: opVideo, ArticleID: "a1"})
		for other, sentinel := range sentinels {
			if got := errors.Is(err, sentinel); got != (other == kind) {
				t.Fatalf("errors.Is(%v, %v) = %v", kind, other, got)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	cause := errors.New("503 from asset service")

	if k := classify(opImage, "a1", "u", cause).Kind; k != KindDependencyFailure {
		t.Fatalf("plain error classified as %v", k)
	}
	if k := classify(opImage, "a1", "u", context.DeadlineExceeded).Kind; k != KindTimeout {
		t.Fatalf("deadline classified as %v", k)
	}
	if err := classify(opImage, "a1", "u", cause); !errors.Is(err, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindMissingReference, Op: opArticle, ArticleID: "a1"}, `article "a1": reference not found`},
		{&Error{Kind: KindTimeout, Op: opVideo, ArticleID: "a1", URL: "v1"}, `video lookup "v1" timed out`},
		{&Error{Kind: KindDependencyFailure, Op: opArticle, ArticleID: "a1", Err: errors.New("refused")}, `article lookup "a1" failed: refused`},
	}
	for _, c := range cases {
		if got := c.err.Error(); !strings.Contains(got, c.want) {
			t.Fatalf("Error() = %q; want it to contain %q", got, c.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindTimeout.String() != "timeout" || KindMissingReference.String() != "missing_reference" {
		t.Fatal("unexpected kind names")
	}
	if Kind(0).String() != "unknown" {
		t.Fatal("zero kind should be unknown")
	}
	if KindOf(errors.New("x")) != 0 {
		t.Fatal("KindOf of a foreign error should be 0")
	}
}
