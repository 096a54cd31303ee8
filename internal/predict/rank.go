package predict

import (
	"fmt"
	"sort"

	"github.com/Brownie44l1/leafscan/internal/labels"
)

// TopK is the number of ranked entries in a Result.
const TopK = 3

// Ranked is one entry of the top-k list.
type Ranked struct {
	Label         labels.Label `json:"label"`
	Class         string       `json:"class"`
	Confidence    string       `json:"confidence"`
	ConfidenceRaw float32      `json:"confidence_value"`
}

// Result is the ranked outcome of one prediction.
type Result struct {
	Label         labels.Label          `json:"top_label"`
	Prediction    string                `json:"prediction"`
	Confidence    string                `json:"confidence"`
	ConfidenceRaw float32               `json:"confidence_value"`
	Top3          []Ranked              `json:"top_3"`
	Healthy       bool                  `json:"is_healthy"`
	Info          *labels.InfoRecord    `json:"disease_info"`
	HealthyInfo   *labels.HealthyRecord `json:"healthy_info"`
	ImagePath     string                `json:"image_path,omitempty"`
}

// FormatConfidence renders a 0–1 score as a percentage with two decimals.
func FormatConfidence(v float32) string {
	return fmt.Sprintf("%.2f%%", float64(v)*100)
}

// Argmax returns the index of the largest score; ties go to the lowest index.
// It returns -1 for an empty slice.
func Argmax(scores []float32) int {
	if len(scores) == 0 {
		return -1
	}
	best := 0
	for i, v := range scores {
		if v > scores[best] {
			best = i
		}
	}
	return best
}

// TopIndices returns the k highest-scoring indices in descending score order,
// ties broken by lower index. Fewer than k are returned when len(scores) < k.
func TopIndices(scores []float32, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if k < len(idx) {
		idx = idx[:k]
	}
	return idx
}

// Rank turns a score vector index-aligned with classes into a Result.
func Rank(scores []float32, classes []labels.Label) (*Result, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("empty score vector")
	}
	if len(scores) != len(classes) {
		return nil, fmt.Errorf("score vector has %d entries, expected %d classes", len(scores), len(classes))
	}

	top := Argmax(scores)
	label := classes[top]

	res := &Result{
		Label:         label,
		Prediction:    label.DisplayName(),
		Confidence:    FormatConfidence(scores[top]),
		ConfidenceRaw: scores[top],
		Healthy:       label.IsHealthy(),
	}

	for _, i := range TopIndices(scores, TopK) {
		res.Top3 = append(res.Top3, Ranked{
			Label:         classes[i],
			Class:         classes[i].DisplayName(),
			Confidence:    FormatConfidence(scores[i]),
			ConfidenceRaw: scores[i],
		})
	}

	if res.Healthy {
		healthy := labels.HealthyInfo
		res.HealthyInfo = &healthy
	} else {
		info := labels.Info(label)
		res.Info = &info
	}

	return res, nil
}
