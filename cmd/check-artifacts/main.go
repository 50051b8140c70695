// check-artifacts loads an artifact directory the way the API server does
// and prints a short summary, so a broken training export is caught before
// a deploy rather than at boot.
package main

import (
	"flag"
	"log"

	"mercaml/pkg/artifacts"
)

func main() {
	dir := flag.String("dir", "modelo", "artifact directory to validate")
	flag.Parse()

	set, err := artifacts.Load(*dir)
	if err != nil {
		log.Fatalf("artifact check failed: %v", err)
	}

	first, last := set.History[0].DS, set.History[0].DS
	for _, rec := range set.History[1:] {
		if rec.DS.Before(first) {
			first = rec.DS
		}
		if rec.DS.After(last) {
			last = rec.DS
		}
	}

	n, _ := set.Similarity.Dims()

	log.Printf("demand model: %d features", len(set.Demand.Features))
	log.Printf("encoders: %d stores, %d departments", set.StoreEncoder.Len(), set.DeptEncoder.Len())
	log.Printf("history: %d records, %s .. %s", len(set.History),
		first.Format("2006-01-02"), last.Format("2006-01-02"))
	log.Printf("vectorizer: %d terms", len(set.Vectorizer.Vocabulary))
	log.Printf("catalog: %d products, similarity order %d", len(set.Catalog), n)
	log.Printf("✅ artifact set %s is complete", *dir)
}
