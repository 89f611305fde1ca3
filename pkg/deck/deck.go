package deck

import (
	"fmt"

	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/shuffle"
)

// Build returns a shuffled deck of totalCards tokens in which every selected
// token appears exactly twice. Tokens are drawn from a shuffled copy of pool
// and reused round-robin when the pool has fewer tokens than pairs needed.
// The caller's pool is left untouched.
func Build(pool []types.Token, totalCards int, rng shuffle.Source) ([]types.Token, error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty token pool", types.ErrInvalidConfiguration)
	}
	if totalCards <= 0 || totalCards%2 != 0 {
		return nil, fmt.Errorf("%w: total cards must be even and positive, got %d", types.ErrInvalidConfiguration, totalCards)
	}

	shuffled := make([]types.Token, len(pool))
	copy(shuffled, pool)
	shuffle.Shuffle(shuffled, rng)

	pairs := totalCards / 2
	deck := make([]types.Token, 0, totalCards)
	for i := 0; i < pairs; i++ {
		token := shuffled[i%len(shuffled)]
		deck = append(deck, token, token)
	}

	shuffle.Shuffle(deck, rng)

	return deck, nil
}
