package population_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/genet/matrix"
	"github.com/katalvlaran/genet/population"
	"github.com/katalvlaran/genet/scenario"
)

// EngineSuite exercises the engine life cycle on the five-object instance.
type EngineSuite struct {
	suite.Suite
	s   scenario.Scenario
	cfg population.Config
}

func (es *EngineSuite) SetupTest() {
	es.s = smallScenario(es.T())
	es.cfg = smallConfig()
}

// TestEvolve_NeverReportsInfeasible runs 50 generations and checks every
// reported best against the known optimum and the evaluated individual.
func (es *EngineSuite) TestEvolve_NeverReportsInfeasible() {
	pop, err := population.New(es.s, es.cfg, population.WithSeed(seedDet))
	es.Require().NoError(err)

	for g := 0; g < 50; g++ {
		best := pop.Evolve()
		es.Require().GreaterOrEqual(best, int64(0))
		es.Require().LessOrEqual(best, knownOptimum, "generation %d", g)

		genes, fit, ok := pop.Best()
		es.Require().True(ok)
		es.Require().Equal(best, fit)
		if best > 0 {
			es.Require().True(es.s.Feasible(genes), "generation %d best %v", g, genes)
			es.Require().Equal(best, bruteForceFitness(es.s, genes))
		}
	}
	es.Equal(50, pop.Generation())
}

func (es *EngineSuite) TestAccessorsBeforeEvaluation() {
	pop, err := population.New(es.s, es.cfg)
	es.Require().NoError(err)

	es.Nil(pop.Fitness())
	_, _, ok := pop.Best()
	es.False(ok)
	es.Equal(0, pop.Generation())
	es.Equal(es.cfg, pop.Config())
	es.Equal(es.s, pop.Scenario())
	es.Equal(es.cfg.PopulationSize, pop.Current().Rows())
	es.Equal(es.s.NumberOfObjects, pop.Current().Cols())
}

func (es *EngineSuite) TestEvaluateDoesNotAdvance() {
	pop, err := population.New(es.s, es.cfg, population.WithSeed(seedDet))
	es.Require().NoError(err)
	before := pop.Current().Clone()

	best := pop.Evaluate()
	es.Equal(0, pop.Generation())
	es.True(before.Equal(pop.Current()))

	fit := pop.Fitness()
	es.Require().Len(fit, es.cfg.PopulationSize)
	for i, f := range fit {
		es.Equal(bruteForceFitness(es.s, pop.Current().RowView(i)), f, "row %d", i)
		es.LessOrEqual(f, best)
	}
}

func (es *EngineSuite) TestBuffersAreSwapped() {
	pop, err := population.New(es.s, es.cfg, population.WithSeed(seedDet))
	es.Require().NoError(err)

	first := pop.Current()
	pop.Evolve()
	second := pop.Current()
	es.NotSame(first, second)
	pop.Evolve()
	es.Same(first, pop.Current())
}

// TestElitistCollapse: with K = M and no variation operators every child is a
// copy of the global best, so one generation makes the population uniform.
func (es *EngineSuite) TestElitistCollapse() {
	initial := mustFromRows(es.T(), [][]uint8{
		{1, 1, 0, 0, 1},
		{1, 1, 1, 1, 1},
		{0, 1, 0, 1, 0},
		{1, 0, 1, 0, 1},
	})
	cfg := population.Config{PopulationSize: 4, TournamentSize: 4}
	pop, err := population.New(es.s, cfg, population.WithInitialPopulation(initial))
	es.Require().NoError(err)

	es.Equal(knownOptimum, pop.Evolve())
	for i := 0; i < cfg.PopulationSize; i++ {
		es.Equal([]uint8{0, 1, 0, 1, 0}, pop.Current().RowView(i))
	}
	es.Equal(knownOptimum, pop.Evolve())
}

func (es *EngineSuite) TestInitialPopulationIsCopied() {
	initial := mustFromRows(es.T(), [][]uint8{{1, 0, 0, 0, 0}, {0, 0, 0, 0, 1}})
	pop, err := population.New(es.s, population.Config{PopulationSize: 2, TournamentSize: 1},
		population.WithInitialPopulation(initial))
	es.Require().NoError(err)
	es.True(initial.Equal(pop.Current()))
	es.NotSame(initial, pop.Current())
}

func (es *EngineSuite) TestNewErrors() {
	bad := es.cfg
	bad.TournamentSize = bad.PopulationSize + 1
	_, err := population.New(es.s, bad)
	es.ErrorIs(err, population.ErrConfigInvalid)

	_, err = population.New(scenario.Scenario{}, es.cfg)
	es.ErrorIs(err, population.ErrScenarioShape)

	wrong := mustFromRows(es.T(), [][]uint8{{1, 0, 1}})
	_, err = population.New(es.s, es.cfg, population.WithInitialPopulation(wrong))
	es.ErrorIs(err, matrix.ErrDimensionMismatch)
}

func (es *EngineSuite) TestWorkersCappedAtPopulation() {
	pop, err := population.New(es.s, population.Config{PopulationSize: 3, TournamentSize: 1},
		population.WithWorkers(16))
	es.Require().NoError(err)
	es.Equal(3, pop.Workers())

	es.Panics(func() { population.WithWorkers(0) })
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// TestEvolve_DeterministicAcrossWorkerCounts locks the stream layout: the
// same seed yields identical generations whatever the goroutine bound.
func TestEvolve_DeterministicAcrossWorkerCounts(t *testing.T) {
	t.Parallel()

	s, err := scenario.Generate(population.NewRand(seedDet), scenario.GenerateParams{
		NumberOfObjects: 60, MaxWeight: 90, MaxSize: 90,
	})
	require.NoError(t, err)
	cfg := population.Config{PopulationSize: 150, TournamentSize: 4, CrossoverProbability: 0.8, MutationProbability: 0.02}

	engines := make([]*population.Population, 0, 3)
	for _, w := range []int{1, 3, 8} {
		p, err := population.New(s, cfg, population.WithSeed(seedDet), population.WithWorkers(w))
		require.NoError(t, err)
		engines = append(engines, p)
	}
	for g := 0; g < 30; g++ {
		want := engines[0].Evolve()
		for _, p := range engines[1:] {
			require.Equal(t, want, p.Evolve(), "generation %d", g)
			require.True(t, engines[0].Current().Equal(p.Current()), "generation %d", g)
		}
	}
}

func TestNew_ZeroSeedIsDefaultSeed(t *testing.T) {
	t.Parallel()

	s := smallScenario(t)
	a, err := population.New(s, smallConfig())
	require.NoError(t, err)
	b, err := population.New(s, smallConfig(), population.WithSeed(0))
	require.NoError(t, err)
	require.True(t, a.Current().Equal(b.Current()))
}

func TestNew_RandomInitIsBalanced(t *testing.T) {
	t.Parallel()

	s, err := scenario.Generate(population.NewRand(seedDet), scenario.GenerateParams{
		NumberOfObjects: 100, MaxWeight: 100, MaxSize: 100,
	})
	require.NoError(t, err)
	p, err := population.New(s, population.Config{PopulationSize: 200, TournamentSize: 2}, population.WithSeed(9))
	require.NoError(t, err)

	cur := p.Current()
	var set int
	for i := 0; i < cur.Rows(); i++ {
		set += cur.Ones(i)
	}
	require.InDelta(t, 0.5, float64(set)/float64(cur.Rows()*cur.Cols()), 0.02)
}

// TestEvolve_ImprovesOnGeneratedInstance is a smoke test: selection pressure
// must not make the best value worse than the initial random generation's.
func TestEvolve_ImprovesOnGeneratedInstance(t *testing.T) {
	t.Parallel()

	s, err := scenario.Generate(population.NewRand(3), scenario.GenerateParams{
		NumberOfObjects: 30, MaxWeight: 60, MaxSize: 60,
	})
	require.NoError(t, err)
	cfg := population.Config{PopulationSize: 100, TournamentSize: 5, CrossoverProbability: 0.7, MutationProbability: 0.01}
	p, err := population.New(s, cfg, population.WithSeed(seedDet))
	require.NoError(t, err)

	first := p.Evolve()
	var bestEver int64
	for g := 0; g < 60; g++ {
		bestEver = max(bestEver, p.Evolve())
	}
	require.GreaterOrEqual(t, bestEver, first)
	require.LessOrEqual(t, bestEver, s.TotalCost())
}
