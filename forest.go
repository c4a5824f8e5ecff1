package graphseg

import "math"

// Forest is a disjoint-set forest over vertices 0..n-1 with path compression
// and union by size. Each root additionally carries the merge threshold of
// its component. All bookkeeping is index-addressed.
type Forest struct {
	parent []int
	size   []int
	// threshold is only meaningful at indices that are currently roots.
	threshold []float64
	sets      int
}

// NewForest creates a forest of n singleton components, each with threshold
// InitialThreshold(c).
func NewForest(n int, c float64) (*Forest, error) {
	if n <= 0 {
		return nil, invalidArgument("forest size must be positive, got %d", n)
	}
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return nil, invalidArgument("c must be finite and >= 0, got %v", c)
	}
	f := &Forest{
		parent:    make([]int, n),
		size:      make([]int, n),
		threshold: make([]float64, n),
		sets:      n,
	}
	t := InitialThreshold(c)
	for i := range f.parent {
		f.parent[i] = i
		f.size[i] = 1
		f.threshold[i] = t
	}
	return f, nil
}

// Len returns the number of vertices in the forest.
func (f *Forest) Len() int { return len(f.parent) }

// NumSets returns the current number of components.
func (f *Forest) NumSets() int { return f.sets }

// Find returns the root of the component containing v.
func (f *Forest) Find(v int) (int, error) {
	if err := f.checkVertex(v); err != nil {
		return 0, err
	}
	return f.find(v), nil
}

// Union merges the components rooted at a and b and returns the surviving
// root. Both arguments must be distinct roots.
func (f *Forest) Union(a, b int) (int, error) {
	if err := f.checkRoot(a); err != nil {
		return 0, err
	}
	if err := f.checkRoot(b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, invalidArgument("union of root %d with itself", a)
	}
	return f.union(a, b), nil
}

// Size returns the member count of the component rooted at root.
func (f *Forest) Size(root int) (int, error) {
	if err := f.checkRoot(root); err != nil {
		return 0, err
	}
	return f.size[root], nil
}

// Threshold returns the merge threshold stored at root.
func (f *Forest) Threshold(root int) (float64, error) {
	if err := f.checkRoot(root); err != nil {
		return 0, err
	}
	return f.threshold[root], nil
}

func (f *Forest) checkVertex(v int) error {
	if v < 0 || v >= len(f.parent) {
		return outOfRange("vertex %d not in [0, %d)", v, len(f.parent))
	}
	return nil
}

func (f *Forest) checkRoot(v int) error {
	if err := f.checkVertex(v); err != nil {
		return err
	}
	if f.parent[v] != v {
		return invalidArgument("vertex %d is not a root", v)
	}
	return nil
}

// find is Find without bounds checking.
func (f *Forest) find(x int) int {
	// Walk to the root.
	root := x
	for f.parent[root] != root {
		root = f.parent[root]
	}
	// Path compression: point all nodes along the path directly to root.
	for f.parent[x] != root {
		x, f.parent[x] = f.parent[x], root
	}
	return root
}

// union attaches the smaller tree under the larger. On equal sizes a
// survives. a and b must be distinct roots.
func (f *Forest) union(a, b int) int {
	if f.size[a] < f.size[b] {
		a, b = b, a
	}
	f.parent[b] = a
	f.size[a] += f.size[b]
	f.sets--
	return a
}
