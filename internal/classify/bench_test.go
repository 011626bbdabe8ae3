package classify

import (
	"fmt"
	"testing"

	"github.com/unbound-force/dermis/internal/taxonomy"
)

func BenchmarkClassify(b *testing.B) {
	ings := make([]taxonomy.Ingredient, 40)
	for i := range ings {
		ings[i] = taxonomy.Ingredient{
			Name:       fmt.Sprintf("Ingredient %d", i),
			Beneficial: i%3 != 0,
		}
		if i%5 == 0 {
			ings[i].Concern = "Potential irritant"
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Classify(ings)
	}
}
