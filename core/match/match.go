package match

import (
	"github.com/novetech/deskeval/core/kpi"
	"github.com/novetech/deskeval/schema"
)

// SimilarityThreshold is the minimum fuzzy similarity accepted when neither a
// manual alias nor an exact key resolves an account. Tuned so that everyday
// name variants match while distinct technicians stay apart.
const SimilarityThreshold = 0.82

// MatchMethod says how an account was resolved to a responsible label.
type MatchMethod string

// All match methods, in precedence order.
const (
	ManualMatch MatchMethod = "manual"
	ExactMatch  MatchMethod = "exact"
	FuzzyMatch  MatchMethod = "fuzzy"
	NoMatch     MatchMethod = "none"
)

// Resolution is the outcome of resolving one account against a dataset.
type Resolution struct {
	Bucket     schema.ResponsibleBucket
	Key        string
	Method     MatchMethod
	Similarity float64
}

// accountKeys lists the normalized keys an account is known by: full name,
// login, and the login's email local part when the login is an address.
func accountKeys(acct schema.TechnicianAccount) []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(key string) {
		if key != "" && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	add(schema.NormalizeKey(acct.Name))
	add(schema.NormalizeKey(acct.Login))
	if local, ok := schema.EmailLocalKey(acct.Login); ok {
		add(local)
	}
	return keys
}

// Resolve maps an account to its responsible bucket. Precedence is fixed:
// a manual alias wins over an exact key lookup, which wins over a fuzzy
// match at SimilarityThreshold. Aliases map a normalized account key to a
// responsible label; an alias pointing at a label absent from this dataset
// is ignored rather than blocking the later stages.
func Resolve(acct schema.TechnicianAccount, ix *kpi.BucketIndex, aliases map[string]string) Resolution {
	keys := accountKeys(acct)

	for _, key := range keys {
		label, ok := aliases[key]
		if !ok {
			continue
		}
		if bucket, found := ix.Lookup(schema.NormalizeKey(label)); found {
			return Resolution{Bucket: bucket, Key: key, Method: ManualMatch, Similarity: 1}
		}
	}

	for _, key := range keys {
		if bucket, found := ix.Lookup(key); found {
			return Resolution{Bucket: bucket, Key: key, Method: ExactMatch, Similarity: 1}
		}
	}

	indexKeys := ix.Keys()
	for _, key := range keys {
		cands := ClosestMatches(key, indexKeys, 1, SimilarityThreshold)
		if len(cands) == 0 {
			continue
		}
		bucket, _ := ix.Lookup(cands[0].Key)
		return Resolution{
			Bucket:     bucket,
			Key:        cands[0].Key,
			Method:     FuzzyMatch,
			Similarity: cands[0].Similarity,
		}
	}

	return Resolution{Method: NoMatch}
}

// Suggestions returns the strongest fuzzy candidates for an account even
// below the acceptance threshold, for interactive alias linking.
func Suggestions(acct schema.TechnicianAccount, ix *kpi.BucketIndex, n int) []Candidate {
	keys := accountKeys(acct)
	if len(keys) == 0 {
		return nil
	}
	return ClosestMatches(keys[0], ix.Keys(), n, 0.5)
}
