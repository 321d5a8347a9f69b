package quiz

import (
	"context"
	"sort"
	"sync"
)

// memoryStore backs the engine in tests and single-process dev runs. It
// honors the same contracts as SQLStore, including the atomic
// one-attempt-per-(quiz,user) guarantee.
type memoryStore struct {
	mu        sync.RWMutex
	quizzes   map[string]Quiz               // slug -> quiz (without questions)
	questions map[string]Question           // slug -> question
	attempts  map[string]TakenQuiz          // quizSlug+"\x00"+userID -> attempt
	solutions map[string][]QuestionSolution // attemptID -> solutions
}

func NewInMemoryStore() Store {
	return &memoryStore{
		quizzes:   map[string]Quiz{},
		questions: map[string]Question{},
		attempts:  map[string]TakenQuiz{},
		solutions: map[string][]QuestionSolution{},
	}
}

func attemptKey(quizSlug, userID string) string { return quizSlug + "\x00" + userID }

func (m *memoryStore) CreateQuiz(_ context.Context, q Quiz, questions []Question) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.quizzes {
		if ex.Name == q.Name {
			return Quiz{}, Validation("name", "a quiz with this name already exists")
		}
	}
	stored := q
	stored.Questions = nil
	m.quizzes[q.Slug] = stored
	for _, qn := range questions {
		m.questions[qn.Slug] = qn
	}
	q.Questions = questions
	return q, nil
}

func (m *memoryStore) GetQuiz(_ context.Context, slug string) (Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.quizzes[slug]
	if !ok {
		return Quiz{}, NotFound("quiz")
	}
	q.Questions = m.questionsOf(slug)
	return q, nil
}

func (m *memoryStore) ListQuizzes(_ context.Context, opts ListOpts) ([]Quiz, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]Quiz, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		q.Questions = m.questionsOf(q.Slug)
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].Slug < all[j].Slug
	})

	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []Quiz{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memoryStore) UpdateQuiz(_ context.Context, q Quiz, toCreate, toUpdate []Question) (Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[q.Slug]; !ok {
		return Quiz{}, NotFound("quiz")
	}
	for _, ex := range m.quizzes {
		if ex.Slug != q.Slug && ex.Name == q.Name {
			return Quiz{}, Validation("name", "a quiz with this name already exists")
		}
	}
	for _, qn := range toUpdate {
		if _, ok := m.questions[qn.Slug]; !ok {
			return Quiz{}, NotFound("question " + qn.Slug)
		}
	}
	stored := q
	stored.Questions = nil
	m.quizzes[q.Slug] = stored
	for _, qn := range toCreate {
		m.questions[qn.Slug] = qn
	}
	for _, qn := range toUpdate {
		m.questions[qn.Slug] = qn
	}
	q.Questions = m.questionsOf(q.Slug)
	return q, nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[slug]; !ok {
		return NotFound("quiz")
	}
	delete(m.quizzes, slug)
	for s, qn := range m.questions {
		if qn.QuizSlug == slug {
			delete(m.questions, s)
		}
	}
	for k, a := range m.attempts {
		if a.QuizSlug == slug {
			delete(m.solutions, a.ID)
			delete(m.attempts, k)
		}
	}
	return nil
}

func (m *memoryStore) QuizNameTaken(_ context.Context, name, excludeSlug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, q := range m.quizzes {
		if q.Name == name && q.Slug != excludeSlug {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) CreateQuestion(_ context.Context, q Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[q.QuizSlug]; !ok {
		return Question{}, NotFound("quiz")
	}
	m.questions[q.Slug] = q
	return q, nil
}

func (m *memoryStore) GetQuestion(_ context.Context, slug string) (Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[slug]
	if !ok {
		return Question{}, NotFound("question")
	}
	return q, nil
}

func (m *memoryStore) UpdateQuestion(_ context.Context, q Question) (Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[q.Slug]; !ok {
		return Question{}, NotFound("question")
	}
	m.questions[q.Slug] = q
	return q, nil
}

func (m *memoryStore) DeleteQuestion(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[slug]; !ok {
		return NotFound("question")
	}
	delete(m.questions, slug)
	return nil
}

func (m *memoryStore) HasAttempt(_ context.Context, quizSlug, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.attempts[attemptKey(quizSlug, userID)]
	return ok, nil
}

func (m *memoryStore) CreateAttempt(_ context.Context, t TakenQuiz, sols []QuestionSolution) (TakenQuiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := attemptKey(t.QuizSlug, t.UserID)
	if _, exists := m.attempts[key]; exists {
		return TakenQuiz{}, ErrAlreadyTaken
	}
	score := 0
	for _, sol := range sols {
		if sol.IsCorrect {
			score++
		}
	}
	t.Score = score
	m.attempts[key] = t
	m.solutions[t.ID] = append([]QuestionSolution(nil), sols...)
	return t, nil
}

func (m *memoryStore) GetAttempt(_ context.Context, quizSlug, userID string) (TakenQuiz, []QuestionSolution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.attempts[attemptKey(quizSlug, userID)]
	if !ok {
		return TakenQuiz{}, nil, ErrNotTaken
	}
	return t, append([]QuestionSolution(nil), m.solutions[t.ID]...), nil
}

// questionsOf returns the quiz's questions ordered by creation time;
// callers must hold at least a read lock.
func (m *memoryStore) questionsOf(quizSlug string) []Question {
	out := []Question{}
	for _, q := range m.questions {
		if q.QuizSlug == quizSlug {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Slug < out[j].Slug
	})
	return out
}
