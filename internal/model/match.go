// Package model loads the optional scholarship match classifier and exposes
// it behind the recommend.MatchPredictor capability. The model is trained
// offline; this package only runs inference.
package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// featureCount is the width of the engineered feature vector:
// [degree_path_match, field_match_score, country_match, cgpa_gap].
const featureCount = 4

// MatchModel wraps an ONNX session for the binary match classifier. The
// session's tensors are reused between calls, so Predict serializes access;
// the model itself is read-only after load and safe to share.
type MatchModel struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]

	mu sync.Mutex
}

// Load initializes the ONNX runtime and opens the classifier bundle at
// modelDir. The bundle holds scholar_match.onnx; the runtime shared library
// is resolved from ONNXRUNTIME_SHARED_LIBRARY_PATH or common locations.
func Load(modelDir string) (*MatchModel, error) {
	if modelDir == "" {
		return nil, errors.New("modelDir is empty")
	}

	libPath := resolveSharedLibraryPath(modelDir)
	if libPath == "" {
		return nil, fmt.Errorf("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	modelPath := filepath.Join(modelDir, "scholar_match.onnx")
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, featureCount))
	if err != nil {
		return nil, fmt.Errorf("allocate input tensor: %w", err)
	}
	// Binary classifier: [p_no_match, p_match].
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"features"},
		[]string{"probabilities"},
		[]ort.Value{input},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &MatchModel{session: session, input: input, output: output}, nil
}

// Predict returns the probability of a good match for the feature vector.
// It implements recommend.MatchPredictor.
func (m *MatchModel) Predict(features []float32) (float64, error) {
	if m == nil || m.session == nil {
		return 0, errors.New("match model not initialized")
	}
	if len(features) != featureCount {
		return 0, fmt.Errorf("expected %d features, got %d", featureCount, len(features))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.input.GetData(), features)

	if err := m.session.Run(); err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}

	probs := m.output.GetData()
	if len(probs) < 2 {
		return 0, fmt.Errorf("unexpected output width %d", len(probs))
	}
	return float64(probs[1]), nil
}

// Close releases the session and its tensors.
func (m *MatchModel) Close() {
	if m == nil {
		return
	}
	if m.session != nil {
		m.session.Destroy()
	}
	if m.input != nil {
		m.input.Destroy()
	}
	if m.output != nil {
		m.output.Destroy()
	}
}

// resolveSharedLibraryPath locates a platform-specific onnxruntime shared
// library. The env var wins; otherwise common names and locations are probed.
func resolveSharedLibraryPath(modelDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"libonnxruntime.so",
		"onnxruntime.so",
		"onnxruntime.dll",
	}
	dirs := []string{
		modelDir,
		filepath.Join(modelDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
