package source

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/strata/pkg/domain"
	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultGaussPoints is the quadrature order used when none is given.
const DefaultGaussPoints = 8

// Rule is a Gauss-Legendre rule mapped onto the unit interval [0, 1].
type Rule struct {
	Points  []float64
	Weights []float64
}

type lazyRule struct {
	once sync.Once
	rule Rule
}

// rules holds the supported orders. Each rule is computed on first use.
var rules = map[int]*lazyRule{
	2: {}, 3: {}, 4: {}, 5: {}, 6: {}, 8: {}, 10: {},
}

// SupportedOrders lists the accepted numbers of Gauss points, ascending.
func SupportedOrders() []int {
	orders := make([]int, 0, len(rules))
	for n := range rules {
		orders = append(orders, n)
	}
	sort.Ints(orders)
	return orders
}

// GaussRule returns the n-point rule on [0, 1].
func GaussRule(n int) (Rule, error) {
	lr, ok := rules[n]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %d (supported: %v)", domain.ErrUnsupportedQuadrature, n, SupportedOrders())
	}
	lr.once.Do(func() {
		x := make([]float64, n)
		w := make([]float64, n)
		// Nodes and weights on [-1, 1], then xi' = (xi+1)/2 and w' = w/2.
		quad.Legendre{}.FixedLocations(x, w, -1, 1)
		for i := range x {
			x[i] = 0.5 * (x[i] + 1)
			w[i] = 0.5 * w[i]
		}
		// Ascending nodes, carrying their weights along.
		sort.Sort(byNode{x, w})
		lr.rule = Rule{Points: x, Weights: w}
	})
	return lr.rule, nil
}

type byNode struct{ x, w []float64 }

func (b byNode) Len() int           { return len(b.x) }
func (b byNode) Less(i, j int) bool { return b.x[i] < b.x[j] }
func (b byNode) Swap(i, j int) {
	b.x[i], b.x[j] = b.x[j], b.x[i]
	b.w[i], b.w[j] = b.w[j], b.w[i]
}
