package quiz

import "testing"

func TestPartitionQuestionInputs(t *testing.T) {
	in := []QuestionInput{
		{Slug: "", Text: "new one", Type: TypeMCQ, Answer: "a"},
		{Slug: "11111111-1111-4111-8111-111111111111", Text: "existing", Type: TypeMCQ, Answer: "b"},
		{Slug: "", Text: "another new", Type: TypeOpenText, Answer: "c"},
	}

	toCreate, toUpdate := partitionQuestionInputs(in)

	if len(toCreate) != 2 {
		t.Fatalf("toCreate = %d, want 2", len(toCreate))
	}
	if len(toUpdate) != 1 {
		t.Fatalf("toUpdate = %d, want 1", len(toUpdate))
	}
	if toUpdate[0].Slug != "11111111-1111-4111-8111-111111111111" {
		t.Errorf("toUpdate slug = %q", toUpdate[0].Slug)
	}
	if toCreate[0].Text != "new one" || toCreate[1].Text != "another new" {
		t.Errorf("toCreate order not preserved: %+v", toCreate)
	}
}

func TestPartitionQuestionInputsEmpty(t *testing.T) {
	toCreate, toUpdate := partitionQuestionInputs(nil)
	if len(toCreate) != 0 || len(toUpdate) != 0 {
		t.Fatalf("expected empty partitions, got %d/%d", len(toCreate), len(toUpdate))
	}
}
