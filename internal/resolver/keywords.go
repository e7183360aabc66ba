package resolver

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"component-resolver/internal/catalog"
	"component-resolver/internal/match"
)

// minKeywordLen excludes short tokens such as "s3" or "db" from keyword sets.
const minKeywordLen = 3

var stopWords = sets.New(
	"the", "and", "for", "with", "from", "into", "over", "that", "this", "are",
	"its", "your", "you", "can", "which", "between", "without", "within",
	"based", "using", "via", "per", "all", "any", "other",
	"service", "services", "managed", "fully",
	"amazon", "aws", "azure", "microsoft", "google", "gcp", "cloud",
)

// entryKeywords derives the keyword set of a catalog entry from its
// description, node_id tokens and class name tokens.
func entryKeywords(e catalog.Entry) sets.Set[string] {
	kw := textKeywords(e.Description)
	addKeywords(kw, match.TokenizeIdent(e.NodeID))
	addKeywords(kw, match.TokenizeIdent(e.ClassName))

	return kw
}

// textKeywords derives a keyword set from free text.
func textKeywords(s string) sets.Set[string] {
	kw := sets.New[string]()
	addKeywords(kw, match.Words(s))

	return kw
}

func addKeywords(kw sets.Set[string], words []string) {
	for _, w := range words {
		if len(w) < minKeywordLen || stopWords.Has(w) {
			continue
		}

		kw.Insert(w)
	}
}
