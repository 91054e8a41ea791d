// Package model runs a BERT-family encoder through ONNX Runtime for the
// conversion smoke test. It owns no tokenization; callers hand it an already
// encoded input.
package model

import (
	"fmt"
	"os"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"
)

type Encoder struct {
	session *ort.DynamicAdvancedSession
}

// Hidden is the per-token hidden-state output of a forward pass, shaped
// [batch, sequence, hidden].
type Hidden struct {
	Data  []float32
	Shape []int64
}

// Preview returns the first n values, for printing.
func (h *Hidden) Preview(n int) []float32 {
	if n > len(h.Data) {
		n = len(h.Data)
	}
	return h.Data[:n]
}

func getOnnxRuntimeLibPath() string {
	envPath := os.Getenv("ONNXRUNTIME_LIB_PATH")
	if envPath != "" {
		return envPath
	}

	switch runtime.GOOS {
	case "linux":
		paths := []string{
			"/usr/lib/libonnxruntime.so",
			"/usr/local/lib/libonnxruntime.so",
			"./libonnxruntime.so",
			"./lib/libonnxruntime.so",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "libonnxruntime.so"
	case "windows":
		paths := []string{
			"onnxruntime.dll",
			"./onnxruntime.dll",
			"./lib/onnxruntime.dll",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "onnxruntime.dll"
	case "darwin":
		paths := []string{
			"/usr/local/lib/libonnxruntime.dylib",
			"/opt/homebrew/lib/libonnxruntime.dylib",
			"./libonnxruntime.dylib",
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

// NewEncoder opens an ONNX session for a BERT-style encoder export with the
// standard input_ids / attention_mask / token_type_ids inputs and a
// last_hidden_state output.
func NewEncoder(modelPath string) (*Encoder, error) {
	libPath := getOnnxRuntimeLibPath()
	ort.SetSharedLibraryPath(libPath)

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
	}

	inputNames := []string{"input_ids", "attention_mask", "token_type_ids"}
	outputNames := []string{"last_hidden_state"}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		inputNames,
		outputNames,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Encoder{session: session}, nil
}

// Forward runs one encode over a single sequence and returns the last hidden
// state. All three slices must have the same length.
func (e *Encoder) Forward(inputIDs, attentionMask, typeIDs []int64) (*Hidden, error) {
	if len(inputIDs) == 0 {
		return nil, fmt.Errorf("empty input sequence")
	}
	if len(attentionMask) != len(inputIDs) || len(typeIDs) != len(inputIDs) {
		return nil, fmt.Errorf("input length mismatch: ids=%d mask=%d types=%d",
			len(inputIDs), len(attentionMask), len(typeIDs))
	}

	seqLen := int64(len(inputIDs))

	idsTensor, err := ort.NewTensor(ort.NewShape(1, seqLen), inputIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(ort.NewShape(1, seqLen), attentionMask)
	if err != nil {
		return nil, fmt.Errorf("failed to create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typesTensor, err := ort.NewTensor(ort.NewShape(1, seqLen), typeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to create token_type_ids tensor: %w", err)
	}
	defer typesTensor.Destroy()

	inputs := []ort.Value{idsTensor, maskTensor, typesTensor}
	outputs := make([]ort.Value, 1)

	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("failed to run inference: %w", err)
	}

	if outputs[0] == nil {
		return nil, fmt.Errorf("no output from model")
	}
	defer outputs[0].Destroy()

	outputTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}

	shape := outputTensor.GetShape()
	data := outputTensor.GetData()
	out := &Hidden{
		Data:  make([]float32, len(data)),
		Shape: append([]int64(nil), shape...),
	}
	copy(out.Data, data)

	return out, nil
}

func (e *Encoder) Close() error {
	if e.session != nil {
		if err := e.session.Destroy(); err != nil {
			return err
		}
	}
	if err := ort.DestroyEnvironment(); err != nil {
		return err
	}
	return nil
}
