package model

import (
	"encoding/json"
	"os"
	"time"
)

const (
	// FeatureCount is the input arity every artifact must declare:
	// sepal length, sepal width, petal length, petal width.
	FeatureCount = 4
)

// ClassLabels is the fixed label set served by this service.
var ClassLabels = []int{0, 1, 2}

// TreeNode is one node of a decision tree stored as a flat array.
// Internal nodes route on features[FeatureIdx] <= Threshold; leaves
// carry the voted class label.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type artifact struct {
	Version     string       `json:"version"`
	NumFeatures int          `json:"n_features"`
	Classes     []int        `json:"classes"`
	Trees       [][]TreeNode `json:"trees"`
}

// Handle is the loaded, immutable in-memory classifier. It is built
// exactly once at startup and shared read-only by all requests, so
// Predict needs no locking.
type Handle struct {
	trees    [][]TreeNode
	version  string
	loadedAt time.Time
}

// Load reads and validates a serialized forest artifact. Any missing,
// corrupt, or schema-incompatible artifact yields a *LoadError.
func Load(path string) (*Handle, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "artifact not readable", Err: err}
	}

	var art artifact
	if err := json.Unmarshal(payload, &art); err != nil {
		return nil, &LoadError{Path: path, Reason: "artifact corrupt", Err: err}
	}

	if err := validateArtifact(path, &art); err != nil {
		return nil, err
	}

	return &Handle{
		trees:    art.Trees,
		version:  art.Version,
		loadedAt: time.Now(),
	}, nil
}

func validateArtifact(path string, art *artifact) error {
	if art.Version == "" {
		return &LoadError{Path: path, Reason: "artifact has no version"}
	}
	if art.NumFeatures != FeatureCount {
		return &LoadError{Path: path, Reason: "unexpected input arity"}
	}
	if !sameLabelSet(art.Classes, ClassLabels) {
		return &LoadError{Path: path, Reason: "unknown label set"}
	}
	if len(art.Trees) == 0 {
		return &LoadError{Path: path, Reason: "artifact has no trees"}
	}
	for _, tree := range art.Trees {
		if err := validateTree(path, tree); err != nil {
			return err
		}
	}
	return nil
}

func validateTree(path string, tree []TreeNode) error {
	if len(tree) == 0 {
		return &LoadError{Path: path, Reason: "empty tree"}
	}
	for i, node := range tree {
		if node.IsLeaf {
			if !containsLabel(ClassLabels, node.ClassLabel) {
				return &LoadError{Path: path, Reason: "leaf label outside label set"}
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= FeatureCount {
			return &LoadError{Path: path, Reason: "split feature index out of range"}
		}
		// children live after their parent in the flat array, which also
		// guarantees traversal terminates
		if node.LeftChild <= i || node.LeftChild >= len(tree) ||
			node.RightChild <= i || node.RightChild >= len(tree) {
			return &LoadError{Path: path, Reason: "tree child index out of range"}
		}
	}
	return nil
}

// Predict runs the feature vector through every tree and returns the
// majority class plus the fraction of trees that voted for it. It is a
// pure read over immutable state and safe for concurrent use.
func (h *Handle) Predict(features []float64) (int, float64) {
	votes := make(map[int]int, len(ClassLabels))
	for _, tree := range h.trees {
		votes[evalTree(tree, features)]++
	}

	// ties resolve to the lowest class id so repeated calls stay deterministic
	best := -1
	bestVotes := 0
	for _, class := range ClassLabels {
		if votes[class] > bestVotes {
			best = class
			bestVotes = votes[class]
		}
	}

	confidence := float64(bestVotes) / float64(len(h.trees))
	return best, confidence
}

func evalTree(tree []TreeNode, features []float64) int {
	idx := 0
	for {
		node := tree[idx]
		if node.IsLeaf {
			return node.ClassLabel
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (h *Handle) Version() string {
	return h.version
}

func (h *Handle) LoadedAt() time.Time {
	return h.loadedAt
}

func (h *Handle) FeatureCount() int {
	return FeatureCount
}

func sameLabelSet(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for _, label := range want {
		if !containsLabel(got, label) {
			return false
		}
	}
	return true
}

func containsLabel(labels []int, label int) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
