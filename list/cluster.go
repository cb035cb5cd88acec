package list

import (
	"sort"
	"strings"

	"github.com/fwojciec/autoextract"
	"github.com/fwojciec/autoextract/html"
	om "github.com/wk8/go-ordered-map/v2"
)

// mergeThreshold is the minimum selector similarity for two candidate
// groups to be treated as fragments of one list. Parallel rows differ
// only in their positional suffix, which scores just below identical.
const mergeThreshold = 0.95

// Cluster is a group of structurally similar elements believed to form
// the rows of one list. Selector is the grouping key of the first
// fragment merged into the cluster.
type Cluster struct {
	ID       int
	Selector string
	Elements []*html.Element
}

// BuildClusters walks every descendant of the document body, filters
// list-row candidates, groups them by parent selector, prunes
// container-level groups that merely aggregate deeper ones, and merges
// near-identical groups. Clusters come back in first-seen document
// order; a document without qualifying candidates yields none.
func (e *Extractor) BuildClusters(doc *html.Document) []Cluster {
	groups := om.New[string, []*html.Element]()
	for _, d := range doc.BodyDescendants() {
		if d.NumberOfSiblings()+1 < e.minNumber {
			continue
		}
		if d.LinkedGroupMinTextLength() > float64(e.maxLength) {
			continue
		}
		if d.LinkedGroupMaxTextLength() < float64(e.minLength) {
			continue
		}
		if d.SimilarityWithSiblings(e.sim) < e.similarityThreshold {
			continue
		}
		cur, _ := groups.Get(d.ParentSelector())
		groups.Set(d.ParentSelector(), append(cur, d))
	}
	if groups.Len() == 0 {
		return nil
	}

	keys := make([]string, 0, groups.Len())
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	kept := make(map[string]struct{})
	for _, k := range PruneAncestors(keys) {
		kept[k] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := kept[k]; !ok {
			groups.Delete(k)
		}
	}

	return e.mergeRelated(groups)
}

// PruneAncestors removes every selector that is a strict prefix of
// another selector in the set, keeping only the deepest grouping level
// per branch. Since an ancestor's selector chain is a prefix of its
// descendants', a surviving prefix would mean the same rows counted at
// two levels. Input order is preserved in the result, and the result is
// a fixed point: pruning it again changes nothing.
func PruneAncestors(selectors []string) []string {
	sorted := make([]string, len(selectors))
	copy(sorted, selectors)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	// In descending order the selector just before a prefix is always
	// one of its extensions, so checking adjacent pairs finds every
	// ancestor.
	removed := make(map[string]struct{})
	last := ""
	for _, sel := range sorted {
		if last != "" && sel != "" && sel != last && strings.HasPrefix(last, sel) {
			removed[sel] = struct{}{}
		}
		last = sel
	}

	kept := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		if _, ok := removed[sel]; !ok {
			kept = append(kept, sel)
		}
	}
	return kept
}

// mergeRelated folds selector groups into clusters: a group joins the
// first cluster whose founding selector it nearly matches, otherwise it
// founds a new cluster. Rows of one list split across per-row parent
// selectors reunite here.
func (e *Extractor) mergeRelated(groups *om.OrderedMap[string, []*html.Element]) []Cluster {
	var clusters []Cluster
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		placed := false
		for i := range clusters {
			if e.sim.Compare(pair.Key, clusters[i].Selector) >= mergeThreshold {
				clusters[i].Elements = append(clusters[i].Elements, pair.Value...)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, Cluster{
				ID:       len(clusters),
				Selector: pair.Key,
				Elements: append([]*html.Element(nil), pair.Value...),
			})
		}
	}
	return clusters
}

// BestCluster returns the cluster whose members are on average most
// similar to their siblings. Ties keep the earliest cluster. Returns
// ENOCANDIDATES when there are no clusters to choose from.
func (e *Extractor) BestCluster(clusters []Cluster) (Cluster, error) {
	if len(clusters) == 0 {
		return Cluster{}, autoextract.Errorf(autoextract.ENOCANDIDATES, "no repeated list structure found")
	}

	best := 0
	bestScore := -1.0
	for i, c := range clusters {
		if len(c.Elements) == 0 {
			continue
		}
		var total float64
		for _, el := range c.Elements {
			total += el.SimilarityWithSiblings(e.sim)
		}
		if score := total / float64(len(c.Elements)); score > bestScore {
			bestScore = score
			best = i
		}
	}
	return clusters[best], nil
}
