package topics

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed default_topics.yaml
var defaultCatalogYAML []byte

// Catalog is the read-only set of topic keywords that decides whether a
// question belongs to the data structures and algorithms domain.
//
// A Catalog is built once at startup and shared by every request. It is
// never mutated after construction, so it is safe for concurrent use.
type Catalog struct {
	keywords   []string
	categories []string
}

// New creates a Catalog from the given keywords and categories.
// Keywords are lower-cased and trimmed; blank and duplicate keywords are
// dropped because a blank keyword would match every question.
func New(keywords, categories []string) *Catalog {
	seen := make(map[string]bool, len(keywords))
	kw := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		kw = append(kw, k)
	}

	cats := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cats = append(cats, c)
		}
	}

	return &Catalog{keywords: kw, categories: cats}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic("topics: invalid built-in catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// IsInDomain reports whether any keyword occurs in the question as a
// case-insensitive substring. There is no tokenization or word-boundary
// check: "array" matches "subarray".
func (c *Catalog) IsInDomain(question string) bool {
	_, ok := c.Match(question)
	return ok
}

// Match returns the first keyword found in the question.
func (c *Catalog) Match(question string) (string, bool) {
	if question == "" {
		return "", false
	}
	q := strings.ToLower(question)
	for _, k := range c.keywords {
		if strings.Contains(q, k) {
			return k, true
		}
	}
	return "", false
}

// Keywords returns a copy of the catalog keywords.
func (c *Catalog) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Categories returns a copy of the accepted topic categories shown to users
// whose question was rejected.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Len returns the number of keywords.
func (c *Catalog) Len() int {
	return len(c.keywords)
}
