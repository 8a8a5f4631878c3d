// Package generator produces synthetic log batches in the
// "<date> <time>, <level> <component> <message>" format for demos,
// benchmarks and tests.
package generator

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

const timeLayout = "2006-01-02 15:04:05"

// DefaultMalformedRate is the default share of generated lines that are
// not records.
const DefaultMalformedRate = 0.05

type template struct {
	level   string
	service string
	weight  int
	message func(f *gofakeit.Faker) string
}

var templates = []template{
	{"Info", "CBS", 6, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("Failed to get next element [HRESULT = 0x%08x - E_FAIL]", f.Uint32())
	}},
	{"Info", "CBS", 4, func(f *gofakeit.Faker) string {
		return fmt.Sprintf(`Loaded Servicing Stack v6.1.7601.%d with Core: C:\Windows\winsxs\amd64_microsoft-windows-servicingstack_%s\cbscore.dll`,
			f.Number(20000, 29999), f.UUID()[:8])
	}},
	{"Info", "CBS", 3, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("Session: %d_%d initialized by client WindowsUpdateAgent.", f.Number(30000000, 39999999), f.Number(1000000000, 1999999999))
	}},
	{"Info", "CBS", 2, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("Reboot mark refs: %d", f.Number(0, 9))
	}},
	{"Info", "CSI", 4, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("%08d@%d Warning: Unrecognized packageExtended attribute.", f.Number(1, 99999), f.Number(1000000000, 1999999999))
	}},
	{"Info", "CSI", 2, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("%08d@%d Performing %d operations; %d are not lock/unlock and follow:", f.Number(1, 99999), f.Number(1000000000, 1999999999), f.Number(1, 40), f.Number(1, 40))
	}},
	{"Error", "auth-service", 3, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("Invalid credentials for user %s from %s", f.RandomString(users), f.IPv4Address())
	}},
	{"Warning", "auth-service", 2, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("Token refresh timeout after %dms, retry %d of 3", f.Number(100, 5000), f.Number(1, 3))
	}},
	{"Error", "auth-service", 1, func(f *gofakeit.Faker) string {
		return fmt.Sprintf("Session cache corrupt for tenant %s", f.RandomString(tenants))
	}},
}

var (
	users   = []string{"alice", "bob", "carol", "mallory"}
	tenants = []string{"acme", "globex", "initech"}
)

// Option configures a Generator.
type Option func(*Generator)

// WithMalformedRate sets the share of lines, in [0, 1], that the
// extractor will reject.
func WithMalformedRate(rate float64) Option {
	return func(g *Generator) {
		g.malformedRate = min(max(rate, 0), 1)
	}
}

// Generator produces reproducible batches for a given seed.
type Generator struct {
	faker         *gofakeit.Faker
	totalWeight   int
	malformedRate float64
}

// New creates a Generator. A seed of 0 draws a random seed.
func New(seed int64, opts ...Option) *Generator {
	total := 0
	for _, t := range templates {
		total += t.weight
	}
	g := &Generator{
		faker:         gofakeit.New(seed),
		totalWeight:   total,
		malformedRate: DefaultMalformedRate,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Lines returns n lines with non-decreasing timestamps starting at start.
func (g *Generator) Lines(n int, start time.Time) []string {
	lines := make([]string, 0, max(n, 0))
	ts := start
	for i := 0; i < n; i++ {
		ts = ts.Add(time.Duration(g.faker.Number(0, 20)) * time.Second)
		if g.faker.Float64Range(0, 1) < g.malformedRate {
			lines = append(lines, g.malformed(ts))
			continue
		}
		t := g.pick()
		lines = append(lines, fmt.Sprintf("%s, %s %s %s",
			ts.Format(timeLayout), t.level, t.service, t.message(g.faker)))
	}
	return lines
}

func (g *Generator) pick() template {
	n := g.faker.Number(0, g.totalWeight-1)
	for _, t := range templates {
		if n < t.weight {
			return t
		}
		n -= t.weight
	}
	return templates[len(templates)-1]
}

// malformed returns a line the extractor rejects.
func (g *Generator) malformed(ts time.Time) string {
	switch g.faker.Number(0, 2) {
	case 0:
		return g.faker.HackerPhrase()
	case 1:
		// impossible month
		return fmt.Sprintf("%d-13-%02d %s, Info CBS %s", ts.Year(), ts.Day(), ts.Format("15:04:05"), g.faker.HackerPhrase())
	default:
		return ""
	}
}
