package random_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/cluedo-engine/internal/pkg/random"
)

type RandomTestSuite struct {
	suite.Suite
}

func TestRandomSuite(t *testing.T) {
	suite.Run(t, new(RandomTestSuite))
}

func (s *RandomTestSuite) TestSameSeedSameSequence() {
	a := random.NewSeededRoller(42)
	b := random.NewSeededRoller(42)

	rollsA, err := a.RollN(50, 6)
	s.Require().NoError(err)
	rollsB, err := b.RollN(50, 6)
	s.Require().NoError(err)

	s.Equal(rollsA, rollsB)
	for _, v := range rollsA {
		s.GreaterOrEqual(v, 1)
		s.LessOrEqual(v, 6)
	}
}

func (s *RandomTestSuite) TestRollRejectsBadSize() {
	_, err := random.NewSeededRoller(1).Roll(0)
	s.Error(err)
}

func (s *RandomTestSuite) TestShuffleIsPermutation() {
	roller := random.NewSeededRoller(7)
	items := []string{"a", "b", "c", "d", "e", "f", "g"}
	shuffled := slices.Clone(items)

	s.Require().NoError(random.Shuffle(roller, shuffled))

	sorted := slices.Clone(shuffled)
	slices.Sort(sorted)
	s.Equal(items, sorted)
}

func (s *RandomTestSuite) TestPick() {
	roller := random.NewSeededRoller(3)

	only, err := random.Pick(roller, []int{9})
	s.Require().NoError(err)
	s.Equal(9, only)

	_, err = random.Pick(roller, []int{})
	s.Error(err)

	for i := 0; i < 20; i++ {
		v, err := random.Pick(roller, []int{1, 2, 3})
		s.Require().NoError(err)
		s.Contains([]int{1, 2, 3}, v)
	}
}

func (s *RandomTestSuite) TestNewSeed() {
	seed, err := random.NewSeed()
	s.Require().NoError(err)
	s.GreaterOrEqual(seed, int64(0))
}
