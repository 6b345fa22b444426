// Command genpage generates a synthetic region listing page for test
// fixtures and local demos. It uses the same markup structure the extractor
// expects, so the output always round-trips through the real pipeline.
//
// Usage:
//
//	go run ./cmd/genpage -out testdata/region.html -species 12 -start 2000 -end 2010
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// speciesPool supplies deterministic names and codes for generated rows.
var speciesPool = []struct {
	code string
	name string
}{
	{"amerob", "American Robin"},
	{"carwre", "Carolina Wren"},
	{"norcar", "Northern Cardinal"},
	{"blujay", "Blue Jay"},
	{"bkcchi", "Black-capped Chickadee"},
	{"tuftit", "Tufted Titmouse"},
	{"dowwoo", "Downy Woodpecker"},
	{"whbnut", "White-breasted Nuthatch"},
	{"easblu", "Eastern Bluebird"},
	{"sonspa", "Song Sparrow"},
	{"houfin", "House Finch"},
	{"amegfi", "American Goldfinch"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated HTML page")
	species := flag.Int("species", 8, "number of distinct species to include")
	startYear := flag.Int("start", 2000, "first observation year")
	endYear := flag.Int("end", 2010, "last observation year")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	presenceRate := flag.Float64("presence-rate", 0.2, "fraction of rows reported as presence-only")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *species < 1 || *species > len(speciesPool) {
		return fmt.Errorf("-species must be between 1 and %d", len(speciesPool))
	}
	if *startYear > *endYear {
		return fmt.Errorf("-start must not exceed -end")
	}

	rng := rand.New(rand.NewSource(*seed))
	page := generatePage(rng, *species, *startYear, *endYear, *presenceRate)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(*out, []byte(page), 0o600); err != nil {
		return err
	}

	log.Printf("wrote %s: %d species, years %d-%d", *out, *species, *startYear, *endYear)
	return nil
}

// generatePage builds a listing page with one detail row per species per
// year, dated at a random day within that year.
func generatePage(rng *rand.Rand, species, startYear, endYear int, presenceRate float64) string {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString("<table class=\"sightings-list\">\n")
	b.WriteString("<tr><th>Species</th><th>Count</th><th>Date</th></tr>\n")

	for i := 0; i < species; i++ {
		sp := speciesPool[i]
		for year := startYear; year <= endYear; year++ {
			day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).
				AddDate(0, 0, rng.Intn(365))

			count := "X"
			if rng.Float64() >= presenceRate {
				count = fmt.Sprintf("%d", 1+rng.Intn(40))
			}

			fmt.Fprintf(&b,
				"<tr class=\"has-det\">"+
					"<td class=\"species-name\"><a data-species-code=\"%s\">%s</a></td>"+
					"<td class=\"how-many\">%s</td>"+
					"<td class=\"obs-date\">%s</td>"+
					"</tr>\n",
				sp.code, sp.name, count, day.Format("2-Jan-2006"))
		}
	}

	b.WriteString("</table>\n</body></html>\n")
	return b.String()
}
