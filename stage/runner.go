package stage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dop251/goja"

	"makupct/danmaku"
)

// ErrNoStageFunc is returned when a script does not define a stage function.
var ErrNoStageFunc = errors.New("script must define a 'stage' function")

// encodeSource serializes a script value to JSON, keeping infinities that
// JSON.stringify would otherwise turn into null.
const encodeSource = `(function (v) {
	return JSON.stringify(v, function (key, value) {
		if (value === Infinity) return "Infinity";
		if (value === -Infinity) return "-Infinity";
		return value;
	});
})`

// Canvas is the value handed to a script's stage function.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Runner evaluates stage scripts with goja. A script defines
//
//	function stage(canvas) { return [ {spokeCount: 12, ...}, ... ] }
//
// and every returned object becomes one pattern's Params, with missing
// fields taken from danmaku.DefaultParams. Positions are in editor
// coordinates: origin at the canvas center, y up.
type Runner struct {
	mu sync.Mutex
}

// NewRunner creates a script runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Load runs code and returns the pattern parameters it describes. The
// script is interrupted when ctx is done.
func (r *Runner) Load(ctx context.Context, code string, canvas Canvas) ([]danmaku.Params, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Fresh runtime per load so scripts cannot leak state into each other
	vm := goja.New()
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	if _, err := vm.RunString(code); err != nil {
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	stageFunc, ok := goja.AssertFunction(vm.Get("stage"))
	if !ok {
		return nil, ErrNoStageFunc
	}

	result, err := stageFunc(goja.Undefined(), vm.ToValue(map[string]any{
		"width":  canvas.Width,
		"height": canvas.Height,
	}))
	if err != nil {
		return nil, fmt.Errorf("stage function failed: %w", err)
	}

	encoded, err := encode(vm, result)
	if err != nil {
		return nil, err
	}
	return decode(encoded)
}

// LoadFile reads a script from disk and runs it.
func (r *Runner) LoadFile(ctx context.Context, path string, canvas Canvas) ([]danmaku.Params, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage script: %w", err)
	}
	params, err := r.Load(ctx, string(code), canvas)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return params, nil
}

// Validate checks that code parses and defines a stage function without
// calling it.
func (r *Runner) Validate(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	vm := goja.New()
	if _, err := vm.RunString(code); err != nil {
		return fmt.Errorf("script parse error: %w", err)
	}
	if _, ok := goja.AssertFunction(vm.Get("stage")); !ok {
		return ErrNoStageFunc
	}
	return nil
}

func encode(vm *goja.Runtime, v goja.Value) ([]byte, error) {
	encoder, err := vm.RunString(encodeSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile encoder: %w", err)
	}
	encodeFunc, _ := goja.AssertFunction(encoder)
	out, err := encodeFunc(goja.Undefined(), v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize result: %w", err)
	}
	if goja.IsUndefined(out) {
		return nil, fmt.Errorf("stage function returned nothing")
	}
	return []byte(out.String()), nil
}

// decode turns a serialized stage result, either one pattern object or an
// array of them, into Params.
func decode(data []byte) ([]danmaku.Params, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		data = append(append([]byte{'['}, data...), ']')
	}

	var args []patternArgs
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("failed to parse script result: %w (result: %s)", err, data)
	}

	params := make([]danmaku.Params, 0, len(args))
	for i, a := range args {
		p, err := a.params()
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		params = append(params, p)
	}
	return params, nil
}
