package list

import (
	"math"

	"github.com/fwojciec/autoextract"
	om "github.com/wk8/go-ordered-map/v2"
)

// titleSigma is the spread of the title-length probability model.
const titleSigma = 6.0

// TitleProbability scores how likely a text of the given rune length is
// a list-item title: a Gaussian density centred on the midpoint of the
// configured length bounds.
func (e *Extractor) TitleProbability(length int) float64 {
	d := float64(length) - e.avgLength
	return math.Exp(-d*d/(2*titleSigma*titleSigma)) / (math.Sqrt(2*math.Pi) * titleSigma)
}

// ExtractFromCluster picks the anchor tag path whose text lengths best
// fit the title model, then emits an item for every cluster anchor on
// that path, in document order. Anchors with an empty href or empty
// text are skipped. Returns ENOLINKEDTITLE when the cluster has no
// anchors at all.
func (e *Extractor) ExtractFromCluster(cluster Cluster) ([]autoextract.Item, error) {
	probs := om.New[string, []float64]()
	for _, el := range cluster.Elements {
		for _, d := range el.LinkedDescendants() {
			cur, _ := probs.Get(d.TagPath())
			probs.Set(d.TagPath(), append(cur, e.TitleProbability(d.TextLength())))
		}
	}
	if probs.Len() == 0 {
		return nil, autoextract.Errorf(autoextract.ENOLINKEDTITLE, "winning cluster carries no links")
	}

	bestPath := ""
	bestAvg := math.Inf(-1)
	for pair := probs.Oldest(); pair != nil; pair = pair.Next() {
		var total float64
		for _, p := range pair.Value {
			total += p
		}
		if avg := total / float64(len(pair.Value)); avg > bestAvg {
			bestAvg = avg
			bestPath = pair.Key
		}
	}

	var items []autoextract.Item
	for _, el := range cluster.Elements {
		for _, d := range el.LinkedDescendants() {
			if d.TagPath() != bestPath {
				continue
			}
			item := autoextract.Item{Title: d.Text(), Href: d.Attr("href")}
			if item.Href == "" || item.Title == "" {
				continue
			}
			items = append(items, item)
		}
	}
	return items, nil
}
