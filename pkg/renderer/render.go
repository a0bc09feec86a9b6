package renderer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/df07/go-octree-raytracer/pkg/core"
	"github.com/df07/go-octree-raytracer/pkg/integrator"
	"github.com/df07/go-octree-raytracer/pkg/log"
	"github.com/df07/go-octree-raytracer/pkg/scene"
	"github.com/df07/go-octree-raytracer/pkg/sysinfo"
)

var logger = log.New("renderer")

// rowResult is one finished scanline sent from a worker to the caller
type rowResult struct {
	y      int
	colors []core.Vec3
	worker int
}

// workerPanic carries a recovered worker panic back to the caller
type workerPanic struct {
	worker int
	value  interface{}
}

// Render shades every pixel of the image SamplesPerPixel times and returns the
// averaged result. Each pass spreads rows over NumWorkers goroutines. Every
// worker owns its RNG and reseeds it from the pass seed and row index before
// each row, so the image depends only on random and not on scheduling or the
// worker count. A panic in any worker is re-raised here once all workers have
// stopped.
//
// The configuration must be valid; see Config.Validate.
func Render(sc scene.Scene, camera Camera, config Config, random *rand.Rand) (*ImageBuffer, RenderStats) {
	if err := config.Validate(); err != nil {
		panic(err)
	}

	numWorkers := config.NumWorkers
	if numWorkers == 0 {
		numWorkers = sysinfo.DefaultWorkers()
	}
	shader := config.Integrator
	if shader == nil {
		shader = integrator.NewWhittedIntegrator()
	}

	camera.SetResolution(config.Width, config.Height)
	camera.Update()

	buffer := NewImageBuffer(config.Width, config.Height)
	stats := RenderStats{
		Width:   config.Width,
		Height:  config.Height,
		Passes:  config.SamplesPerPixel,
		Workers: make([]WorkerStats, numWorkers),
	}
	for i := range stats.Workers {
		stats.Workers[i].Worker = i
	}

	passSeeds := make([]int64, config.SamplesPerPixel)
	for pass := range passSeeds {
		passSeeds[pass] = random.Int63()
	}

	weight := 1.0 / float64(config.SamplesPerPixel)
	jitter := config.SamplesPerPixel > 1
	start := time.Now()

	for pass := 0; pass < config.SamplesPerPixel; pass++ {
		passStart := time.Now()
		owners := renderPass(sc, camera, shader, config, numWorkers, passSeeds[pass], jitter, weight, buffer, &stats)
		stats.RowOwners = append(stats.RowOwners, owners)
		logger.Infof("pass %d/%d finished in %s", pass+1, config.SamplesPerPixel, time.Since(passStart))
	}

	stats.Duration = time.Since(start)
	return buffer, stats
}

// renderPass runs one sample per pixel across the worker pool and
// accumulates it into buffer. It returns the worker that claimed each row.
func renderPass(sc scene.Scene, camera Camera, shader integrator.Integrator, config Config, numWorkers int, passSeed int64, jitter bool, weight float64, buffer *ImageBuffer, stats *RenderStats) []int {
	producer := NewScanlineProducer(config.Height)
	results := make(chan rowResult)
	durations := make([]time.Duration, numWorkers)
	panics := make([]*workerPanic, numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(worker int, cam Camera) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics[worker] = &workerPanic{worker: worker, value: r}
				}
			}()

			started := time.Now()
			defer func() { durations[worker] = time.Since(started) }()

			random := rand.New(rand.NewSource(passSeed))
			sampler := core.NewRandomSampler(random)
			for {
				y, ok := producer.Next()
				if !ok {
					return
				}
				random.Seed(rowSeed(passSeed, y))

				colors := make([]core.Vec3, config.Width)
				for x := range colors {
					var ray core.Ray
					if jitter {
						offset := sampler.Get2D()
						ray = cam.CastRayOffset(x, y, offset.X, offset.Y)
					} else {
						ray = cam.CastRay(x, y)
					}
					colors[x] = shader.RayColor(ray, sc, sampler, config.MaxDepth)
				}
				results <- rowResult{y: y, colors: colors, worker: worker}
			}
		}(w, camera)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	owners := make([]int, producer.Total())
	for i := range owners {
		owners[i] = -1
	}
	for row := range results {
		if owners[row.y] != -1 {
			panic(fmt.Sprintf("renderer: row %d written twice (workers %d and %d)", row.y, owners[row.y], row.worker))
		}
		owners[row.y] = row.worker
		buffer.AddRow(row.y, row.colors, weight)
		stats.Workers[row.worker].Rows++
	}

	// The channel only closes after every worker returned, so panics and
	// durations are safe to read
	for w, d := range durations {
		stats.Workers[w].Duration += d
	}
	for _, p := range panics {
		if p != nil {
			panic(fmt.Sprintf("renderer: worker %d panicked: %v", p.worker, p.value))
		}
	}
	for y, owner := range owners {
		if owner == -1 {
			panic(fmt.Sprintf("renderer: row %d was never rendered", y))
		}
	}

	return owners
}

// rowSeed mixes the row index into the pass seed
func rowSeed(passSeed int64, y int) int64 {
	return passSeed ^ (int64(y)+1)*-7046029254386353131
}
