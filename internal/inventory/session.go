package inventory

import (
	"invtrack/internal/domain"
)

// Session is the client-side state of one inventory screen.
// It is not safe for concurrent use; the TUI owns it from its update loop
// and Client guards it with a mutex.
type Session struct {
	// Collection is the last fetched snapshot, in store order
	Collection []domain.Product
	SearchTerm string
	// View is Collection filtered by SearchTerm
	View    []domain.Product
	Draft   domain.ProductDraft
	Loading bool
	// Err is the last store failure, cleared by the next successful operation
	Err error

	reloadQueued bool
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{
		Collection: []domain.Product{},
		View:       []domain.Product{},
	}
}

// StartLoad marks a list fetch as outstanding. It returns false when one is
// already in flight; the request is then folded into a single follow-up fetch.
func (s *Session) StartLoad() bool {
	if s.Loading {
		s.reloadQueued = true
		return false
	}
	s.Loading = true
	return true
}

// FinishLoad applies the result of a list fetch. A failed fetch keeps the
// previous collection. It returns true when a follow-up fetch is due, in
// which case Loading stays set.
func (s *Session) FinishLoad(products []domain.Product, err error) (again bool) {
	if err != nil {
		s.Err = err
	} else {
		if products == nil {
			products = []domain.Product{}
		}
		s.Collection = products
		s.Err = nil
		s.refresh()
	}

	if s.reloadQueued {
		s.reloadQueued = false
		return true
	}
	s.Loading = false
	return false
}

// SetSearchTerm changes the filter and recomputes the view
func (s *Session) SetSearchTerm(term string) {
	s.SearchTerm = term
	s.refresh()
}

// SetDraft replaces the pending form fields
func (s *Session) SetDraft(d domain.ProductDraft) {
	s.Draft = d
}

// PrepareCreate validates the draft and returns the payload to send
func (s *Session) PrepareCreate(strict bool) (domain.NewProduct, error) {
	return ParseDraft(s.Draft, strict)
}

// FinishCreate records the outcome of a create. On success the draft is
// cleared and true is returned: the collection must be reloaded.
func (s *Session) FinishCreate(err error) (resync bool) {
	if err != nil {
		s.Err = err
		return false
	}
	s.Draft = domain.ProductDraft{}
	s.Err = nil
	return true
}

// FinishDelete records the outcome of a delete and reports whether to reload
func (s *Session) FinishDelete(err error) (resync bool) {
	if err != nil {
		s.Err = err
		return false
	}
	s.Err = nil
	return true
}

// Lookup finds a product of the collection by id
func (s *Session) Lookup(id domain.ProductID) (domain.Product, bool) {
	for _, p := range s.Collection {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// DeletePrompt is the confirmation question asked before deleting id
func (s *Session) DeletePrompt(id domain.ProductID) string {
	if p, ok := s.Lookup(id); ok {
		return "Delete \"" + p.Name + "\"?"
	}
	return "Delete this product?"
}

func (s *Session) refresh() {
	s.View = DeriveView(s.Collection, s.SearchTerm)
}

// clone copies the session so the caller can read it without a lock
func (s *Session) clone() Session {
	c := *s
	c.Collection = make([]domain.Product, len(s.Collection))
	copy(c.Collection, s.Collection)
	c.View = make([]domain.Product, len(s.View))
	copy(c.View, s.View)
	return c
}
