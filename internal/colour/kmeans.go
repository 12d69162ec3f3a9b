package colour

import (
	"fmt"
	"math"
	"math/rand"
)

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

// distanceSquared returns the squared Euclidean distance between two points.
// Comparing squared distances orders points the same way as distances.
func (p point3D) distanceSquared(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return dr*dr + dg*dg + db*db
}

// KMeans clusters points by Lloyd's algorithm with k-means++ seeding.
// The whole procedure is repeated Restarts times and the clustering with the
// lowest inertia is kept.
type KMeans struct {
	K             int
	Restarts      int
	MaxIterations int
}

// clustering is the result of one k-means run.
type clustering struct {
	centroids   []point3D
	assignments []int
	inertia     float64
	iterations  int
	converged   bool
}

// counts returns the number of points assigned to each cluster.
func (c *clustering) counts() []int {
	out := make([]int, len(c.centroids))
	for _, a := range c.assignments {
		out[a]++
	}
	return out
}

// Fit clusters points using rng for every random choice, so a fixed seed gives a fixed result.
func (km KMeans) Fit(points []point3D, rng *rand.Rand) (*clustering, error) {
	if km.K < 1 {
		return nil, &InvalidConfigError{Field: "clusters", Value: km.K, Reason: "must be at least 1"}
	}
	if km.K > len(points) {
		return nil, &InvalidConfigError{
			Field:  "clusters",
			Value:  km.K,
			Reason: fmt.Sprintf("exceeds the number of sampled points (%d)", len(points)),
		}
	}
	restarts := max(km.Restarts, 1)
	maxIterations := max(km.MaxIterations, 1)

	var best *clustering
	for range restarts {
		c := km.run(points, rng, maxIterations)
		// Strictly lower keeps the earliest run on ties.
		if best == nil || c.inertia < best.inertia {
			best = c
		}
	}
	return best, nil
}

// run performs one initialisation and convergence pass.
func (km KMeans) run(points []point3D, rng *rand.Rand, maxIterations int) *clustering {
	centroids := initializeCentroidsKMeansPlusPlus(points, km.K, rng)

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	result := &clustering{}
	for iter := 0; iter < maxIterations; iter++ {
		result.iterations = iter + 1

		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		if changed == 0 {
			result.converged = true
			break
		}

		centroids = recalculateCentroids(points, assignments, centroids)
	}

	// The last update moved the centroids; reassign so labels match them.
	if !result.converged {
		for i, point := range points {
			assignments[i] = findNearestCentroid(point, centroids)
		}
	}

	for i, point := range points {
		result.inertia += point.distanceSquared(centroids[assignments[i]])
	}
	result.centroids = centroids
	result.assignments = assignments
	return result
}

// initializeCentroidsKMeansPlusPlus picks k starting centroids: the first
// uniformly, each following one with probability proportional to its squared
// distance from the nearest centroid already chosen. When every point already
// coincides with a centroid, the remaining centroids duplicate the first one
// and end up as empty clusters.
func initializeCentroidsKMeansPlusPlus(points []point3D, k int, rng *rand.Rand) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	// Squared distance from each point to its nearest chosen centroid.
	distances := make([]float64, len(points))
	for i, point := range points {
		distances[i] = point.distanceSquared(centroids[0])
	}

	for len(centroids) < k {
		totalDistance := 0.0
		for _, d := range distances {
			totalDistance += d
		}

		if totalDistance == 0 {
			centroids = append(centroids, centroids[0])
			continue
		}

		target := rng.Float64() * totalDistance
		chosen := -1
		cumulative := 0.0
		for i, d := range distances {
			if d == 0 {
				continue
			}
			chosen = i
			cumulative += d
			if cumulative > target {
				break
			}
		}

		next := points[chosen]
		centroids = append(centroids, next)
		for i, point := range points {
			if d := point.distanceSquared(next); d < distances[i] {
				distances[i] = d
			}
		}
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
// Equal distances resolve to the lowest index.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		dist := point.distanceSquared(centroid)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids moves each centroid to the mean of its assigned points.
// A cluster with no points keeps its previous centroid.
func recalculateCentroids(points []point3D, assignments []int, previous []point3D) []point3D {
	k := len(previous)
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{
			R: sums[i].R / n,
			G: sums[i].G / n,
			B: sums[i].B / n,
		}
	}

	return centroids
}
