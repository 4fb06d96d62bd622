// Package filter implements the cascading filter controller shared by the
// console list pages: a schema says which key discriminates the page, which
// secondary keys a branch needs, and which keys die when the discriminator
// moves. Evaluate turns a partial State into a fetch decision.
package filter

import (
	"net/url"
	"slices"
	"sort"
)

// Filter keys understood by the built-in schemas
const (
	KeyParticipationCategory = "participationCategory"
	KeyCategory              = "categoryId"
	KeyDepartment            = "department"
	KeyStatus                = "status"
	KeySegment               = "segment"
	KeyIsCompleted           = "isCompleted"
	KeyIsKietian             = "isKeitian"
	KeyQualifiedStatus       = "qulifiedStatus"
	KeyTeamCode              = "teamCode"
	KeyUserID                = "userId"
	KeyType                  = "type"
	KeyPage                  = "page"
	KeyLimit                 = "limit"
)

// State maps a filter key to its committed value. Unset keys are absent.
type State map[string]string

// Clone returns an independent copy
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Stage is the controller state for one page instance
type Stage string

const (
	StageNoDiscriminator Stage = "idle_no_discriminator"
	StageMissingKey      Stage = "idle_missing_secondary"
	StageLoading         Stage = "loading"
	StageLoaded          Stage = "loaded"
	StageError           Stage = "error"
)

// Branch lists the keys that must be set before fetching when the
// discriminator equals When. An empty When matches every value.
type Branch struct {
	When     string
	Requires []string
	Prompt   string
}

// Schema describes the cascading filter of one page
type Schema struct {
	Name                string
	Discriminator       string
	DiscriminatorPrompt string
	Branches            []Branch
	// Dependents are reset whenever the discriminator changes.
	Dependents []string
	// Scoped keys are only meaningful for the listed discriminator values.
	Scoped   map[string][]string
	Defaults map[string]string
	// Paged schemas reset the page number whenever another key changes.
	Paged bool
}

// Decision is the pure outcome of evaluating a state against a schema
type Decision struct {
	Fetch  bool
	Query  url.Values
	Prompt string
	Stage  Stage
}

// Evaluate decides whether the state is complete enough to fetch.
// It never mutates st.
func Evaluate(s Schema, st State) Decision {
	disc := ""
	if s.Discriminator != "" {
		disc = st[s.Discriminator]
		if disc == "" {
			return Decision{Prompt: s.DiscriminatorPrompt, Stage: StageNoDiscriminator}
		}
	}

	for _, b := range s.Branches {
		if b.When != "" && b.When != disc {
			continue
		}
		for _, key := range b.Requires {
			if st[key] == "" {
				return Decision{Prompt: b.Prompt, Stage: StageMissingKey}
			}
		}
	}

	q := url.Values{}
	for k, v := range s.Defaults {
		q.Set(k, v)
	}
	for k, v := range st {
		if v == "" || !s.inScope(k, disc) {
			continue
		}
		q.Set(k, v)
	}
	return Decision{Fetch: true, Query: q, Stage: StageLoading}
}

// Apply commits value under key and returns the resulting state. changed is
// false when the value equals the current one, in which case nothing may be
// fetched. An empty value unsets the key, and a scoped key outside the
// current discriminator's scope is never stored.
func Apply(s Schema, st State, key, value string) (next State, changed bool) {
	if value != "" && key != s.Discriminator && s.Discriminator != "" && !s.inScope(key, st[s.Discriminator]) {
		value = ""
	}
	if st[key] == value {
		return st, false
	}

	next = st.Clone()
	if value == "" {
		delete(next, key)
	} else {
		next[key] = value
	}

	if key == s.Discriminator && s.Discriminator != "" {
		for _, dep := range s.Dependents {
			delete(next, dep)
		}
		for k := range next {
			if !s.inScope(k, value) {
				delete(next, k)
			}
		}
	}

	if s.Paged && key != KeyPage {
		delete(next, KeyPage)
	}
	return next, true
}

// Identity is the canonical form of the query a state would issue.
// Two states with the same identity fetch the same data.
func Identity(q url.Values) string {
	if q == nil {
		return ""
	}
	return q.Encode()
}

// Keys lists every key the schema knows about, sorted
func (s Schema) Keys() []string {
	set := map[string]struct{}{}
	if s.Discriminator != "" {
		set[s.Discriminator] = struct{}{}
	}
	for _, b := range s.Branches {
		for _, k := range b.Requires {
			set[k] = struct{}{}
		}
	}
	for _, k := range s.Dependents {
		set[k] = struct{}{}
	}
	for k := range s.Scoped {
		set[k] = struct{}{}
	}
	for k := range s.Defaults {
		set[k] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s Schema) inScope(key, disc string) bool {
	allowed, ok := s.Scoped[key]
	if !ok {
		return true
	}
	return slices.Contains(allowed, disc)
}
