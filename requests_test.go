package figref

import "testing"

func TestCaptionRequestValidate(t *testing.T) {
	valid := CaptionRequest{Label: "x", Text: "hello"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	blank := CaptionRequest{Label: "   ", Text: "hello"}
	if err := blank.Validate(); err == nil {
		t.Fatal("Validate() expected error for blank label")
	}

	missing := CaptionRequest{Text: "hello"}
	if err := missing.Validate(); err == nil {
		t.Fatal("Validate() expected error for missing label")
	}
}

func TestReferenceRequestValidate(t *testing.T) {
	valid := ReferenceRequest{Label: "x", Check: true}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	if err := (ReferenceRequest{}).Validate(); err == nil {
		t.Fatal("Validate() expected error for missing label")
	}
}
