package neon

import (
	"math/rand"

	"github.com/gekko3d/neon/neonrt/rt/core"
)

// ParticleFieldModule seeds the particle cloud and drifts it every tick.
type ParticleFieldModule struct {
	Rand *rand.Rand
}

// FieldStats counts recycled particles since mount.
type FieldStats struct {
	Wrapped uint64
	Ticks   uint64
}

func (mod ParticleFieldModule) Install(app *App, cmd *Commands) {
	particles := core.NewParticleSet(mod.Rand)
	scene := core.NewNeonScene(particles)

	cmd.AddResources(particles, scene, &FieldStats{})
	cmd.OnTeardown("particle geometry", func() {
		particles.Positions = nil
		particles.Dirty = false
	})
	cmd.OnTeardown("points material", func() {
		scene.Particles = nil
		scene.Lights = nil
	})

	cmd.UseSystem(
		System(particleDriftSystem).
			InStage(Update),
	)
}

func particleDriftSystem(particles *core.ParticleSet, t *Time, stats *FieldStats) {
	stats.Wrapped += uint64(particles.Drift(t.Now))
	stats.Ticks++
}
