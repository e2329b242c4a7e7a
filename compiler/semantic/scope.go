package semantic

// Scope is a chained lexical scope used by name resolution: function
// parameters and nested let/match-arm bindings each push one. Lookups walk
// outward to the function's parameter scope; module-level declarations are
// kept in ModuleTable, not in a Scope.
type Scope struct {
	parent  *Scope
	entries map[string]bool
}

func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, entries: make(map[string]bool)}
}

// Declare adds name to this scope, reporting whether it was already present
// in this exact scope (not an ancestor) so callers can raise
// DuplicateDeclaration only for true redeclarations at the same level.
func (s *Scope) Declare(name string) (alreadyPresent bool) {
	if s.entries[name] {
		return true
	}
	s.entries[name] = true
	return false
}

// Lookup reports whether name is visible from this scope, searching
// outward through parents.
func (s *Scope) Lookup(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if sc.entries[name] {
			return true
		}
	}
	return false
}
