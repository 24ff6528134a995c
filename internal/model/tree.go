package model

import (
	"fmt"
	"sort"
)

// treeNode is a node of a binary regression tree. Internal nodes route on
// x[Feature] <= Threshold; every node carries the mean target of its samples.
type treeNode struct {
	Feature   int       `json:"f,omitempty"`
	Threshold float64   `json:"t,omitempty"`
	Value     float64   `json:"v"`
	Left      *treeNode `json:"l,omitempty"`
	Right     *treeNode `json:"r,omitempty"`
}

func (n *treeNode) leaf() bool { return n.Left == nil && n.Right == nil }

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf() {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// validate checks the structure of a decoded tree.
func (n *treeNode) validate(nFeatures int) error {
	if n == nil {
		return fmt.Errorf("nil tree node")
	}
	if n.leaf() {
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return fmt.Errorf("internal node with a single child")
	}
	if n.Feature < 0 || n.Feature >= nFeatures {
		return fmt.Errorf("feature index %d out of range", n.Feature)
	}
	if err := n.Left.validate(nFeatures); err != nil {
		return err
	}
	return n.Right.validate(nFeatures)
}

type treeParams struct {
	maxDepth int
	minLeaf  int
}

// fitTree grows a least-squares regression tree over the rows in idx.
func fitTree(X [][]float64, target []float64, idx []int, p treeParams, depth int) *treeNode {
	node := &treeNode{Value: meanAt(target, idx)}
	if depth >= p.maxDepth || len(idx) < 2*p.minLeaf {
		return node
	}
	f, thr, ok := bestSplit(X, target, idx, p.minLeaf)
	if !ok {
		return node
	}
	left := make([]int, 0, len(idx)/2)
	right := make([]int, 0, len(idx)/2)
	for _, i := range idx {
		if X[i][f] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return node
	}
	node.Feature = f
	node.Threshold = thr
	node.Left = fitTree(X, target, left, p, depth+1)
	node.Right = fitTree(X, target, right, p, depth+1)
	return node
}

// bestSplit scans every feature for the threshold with the largest reduction
// in squared error. Thresholds sit halfway between distinct sorted values.
func bestSplit(X [][]float64, target []float64, idx []int, minLeaf int) (feature int, threshold float64, ok bool) {
	n := len(idx)
	var total, totalSq float64
	for _, i := range idx {
		total += target[i]
		totalSq += target[i] * target[i]
	}
	parentSSE := totalSq - total*total/float64(n)
	if parentSSE <= 0 {
		return 0, 0, false
	}
	bestGain := 1e-12 * parentSSE
	sorted := make([]int, n)
	nFeatures := len(X[idx[0]])
	for f := 0; f < nFeatures; f++ {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })
		var ls, lsq float64
		for k := 0; k < n-1; k++ {
			i := sorted[k]
			ls += target[i]
			lsq += target[i] * target[i]
			nl := float64(k + 1)
			nr := float64(n - k - 1)
			if k+1 < minLeaf {
				continue
			}
			if n-k-1 < minLeaf {
				break
			}
			xv, xnext := X[i][f], X[sorted[k+1]][f]
			if xv == xnext {
				continue
			}
			rs := total - ls
			rsq := totalSq - lsq
			sse := (lsq - ls*ls/nl) + (rsq - rs*rs/nr)
			if gain := parentSSE - sse; gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (xv + xnext) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func meanAt(v []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var s float64
	for _, i := range idx {
		s += v[i]
	}
	return s / float64(len(idx))
}
