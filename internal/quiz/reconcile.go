package quiz

// partitionQuestionInputs splits an incoming question list by slug
// presence: payloads without a slug become new rows, payloads with a slug
// target an existing row.
//
// Reconciliation is additive-only: persisted questions omitted from the
// incoming list are left untouched, never deleted. Removing a question is a
// separate, explicit operation on the question resource.
func partitionQuestionInputs(in []QuestionInput) (toCreate, toUpdate []QuestionInput) {
	for _, q := range in {
		if q.Slug == "" {
			toCreate = append(toCreate, q)
		} else {
			toUpdate = append(toUpdate, q)
		}
	}
	return toCreate, toUpdate
}
