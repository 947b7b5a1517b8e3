package git

import (
	"errors"
	"testing"
)

func TestService_CreateTag(t *testing.T) {
	h := newHarness(t)
	first := h.commitFile("a.txt", "a", "first")
	second := h.commitFile("a.txt", "a2", "second")

	light, err := h.svc.CreateTag(h.ctx(), h.target, TagCreateRequest{Name: "v1.0.0", TargetRef: first})
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if light.Annotated || light.ID != first {
		t.Errorf("Expected lightweight tag at %s, got %+v", first, light)
	}

	annotated, err := h.svc.CreateTag(h.ctx(), h.target, TagCreateRequest{Name: "v2.0.0", Message: "Release 2"})
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if !annotated.Annotated || annotated.ID != second {
		t.Errorf("Expected annotated tag at HEAD %s, got %+v", second, annotated)
	}

	tags, err := h.svc.ListTags(h.ctx(), h.target)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}

	if tags[0].Name != "v1.0.0" || tags[0].ID != first || tags[0].Annotated {
		t.Errorf("Unexpected first tag %+v", tags[0])
	}
	if tags[1].Name != "v2.0.0" || tags[1].ID != second || !tags[1].Annotated || tags[1].Message != "Release 2" {
		t.Errorf("Unexpected second tag %+v", tags[1])
	}
}

func TestService_CreateTag_Errors(t *testing.T) {
	h := newHarness(t)
	h.commitFile("a.txt", "a", "initial commit")

	if _, err := h.svc.CreateTag(h.ctx(), h.target, TagCreateRequest{Name: "v1"}); err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}

	tests := []struct {
		name string
		req  TagCreateRequest
		want error
	}{
		{name: "existing", req: TagCreateRequest{Name: "v1"}, want: ErrValidation},
		{name: "invalid name", req: TagCreateRequest{Name: "a b"}, want: ErrValidation},
		{name: "unknown target", req: TagCreateRequest{Name: "v2", TargetRef: "nope"}, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.CreateTag(h.ctx(), h.target, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
