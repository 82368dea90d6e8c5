package effect

import (
	"time"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/vmath"
)

const (
	BurstSamples = 64
	MaxSparks    = 128

	sparkMinLife = 30 * time.Millisecond
	sparkMaxLife = 120 * time.Millisecond
)

// brightnessKeys maps normalized age to a brightness multiplier
var brightnessKeys = [...]struct{ at, value float64 }{
	{0.0, 6.0},
	{0.2, 4.0},
	{0.5, 2.0},
	{0.8, 0.5},
	{1.0, 0.0},
}

// Spark is one short-lived particle seeded on the bolt path
type Spark struct {
	Position vmath.Vec3F
	Energy   float64
	Age      time.Duration
	Lifetime time.Duration
}

// Brightness is energy scaled by the age gradient; zero once the spark has died
func (s Spark) Brightness() float64 {
	if s.Lifetime <= 0 || s.Age >= s.Lifetime {
		return 0
	}
	t := float64(s.Age) / float64(s.Lifetime)
	for i := 1; i < len(brightnessKeys); i++ {
		lo, hi := brightnessKeys[i-1], brightnessKeys[i]
		if t <= hi.at {
			return s.Energy * vmath.Lerp(lo.value, hi.value, (t-lo.at)/(hi.at-lo.at))
		}
	}
	return 0
}

// Burst is the set of sparks released when a bolt strikes
type Burst struct {
	sparks []Spark
}

// NewBurst samples the tree and gives each spark a lifetime drawn from seed
func NewBurst(tree *lightning.Tree, seed uint64) *Burst {
	particles := tree.ParticleData(BurstSamples)
	if len(particles) > MaxSparks {
		particles = particles[:MaxSparks]
	}

	rng := vmath.NewFastRand(seed)
	sparks := make([]Spark, len(particles))
	for i, p := range particles {
		life := rng.Range(float64(sparkMinLife), float64(sparkMaxLife))
		sparks[i] = Spark{
			Position: p.Position,
			Energy:   p.Energy,
			Lifetime: time.Duration(life),
		}
	}
	return &Burst{sparks: sparks}
}

// Update ages all sparks and drops the dead ones in place
func (b *Burst) Update(dt time.Duration) {
	alive := b.sparks[:0]
	for _, s := range b.sparks {
		s.Age += dt
		if s.Age < s.Lifetime {
			alive = append(alive, s)
		}
	}
	b.sparks = alive
}

func (b *Burst) Sparks() []Spark { return b.sparks }
func (b *Burst) Len() int        { return len(b.sparks) }
func (b *Burst) Done() bool      { return len(b.sparks) == 0 }
