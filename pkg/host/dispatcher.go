package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/gestor/pkg/core"
)

// Protocol error kinds, reported next to the core.ErrorKind values.
const (
	KindParse          core.ErrorKind = "parse"
	KindMethodNotFound core.ErrorKind = "method_not_found"
	KindInvalidParams  core.ErrorKind = "invalid_params"
)

// Request is a single host call.
type Request struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Args   []string        `json:"args,omitempty"`
}

// Response answers a Request. Result is null whenever Error is set.
// It is never omitted: an empty document is a valid read result.
type Response struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Result any             `json:"result"`
	Error  *Error          `json:"error,omitempty"`
}

// Error describes a call that could not produce a result.
type Error struct {
	Kind    core.ErrorKind `json:"kind"`
	Message string         `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FileHandle tells the UI whether the document is set up.
type FileHandle struct {
	Configured bool   `json:"configured"`
	Name       string `json:"name"`
}

// Bridge is the subset of *core.Bridge the dispatcher calls.
type Bridge interface {
	Info(ctx context.Context) core.Info
	EnsureExists(ctx context.Context) (core.Info, error)
	Read(ctx context.Context) string
	Write(ctx context.Context, data string) error
	Reset(ctx context.Context) error
	Cached(ctx context.Context) string
	CreateEmpty(ctx context.Context) error
}

type handler func(ctx context.Context, args []string) (any, error)

// Dispatcher routes method names to bridge operations.
type Dispatcher struct {
	bridge  Bridge
	methods map[string]handler
}

// aliases maps legacy method names to their canonical names.
var aliases = map[string]string{
	"get_data_file_info": "get_info",
	"ensure_data_file":   "ensure_exists",
	"read_data_file":     "read",
	"write_data_file":    "write",
	"reset_data_file":    "reset",
	"get_initial_data":   "get_cached",
}

// NewDispatcher creates a Dispatcher for b.
func NewDispatcher(b Bridge) *Dispatcher {
	d := &Dispatcher{bridge: b}
	d.methods = map[string]handler{
		"get_info":      d.getInfo,
		"ensure_exists": d.ensureExists,
		"read":          d.read,
		"write":         d.write,
		"reset":         d.reset,
		"get_cached":    d.getCached,

		// File-handle flavored surface of the second launcher.
		"get_saved_file_handle":      d.getFileHandle,
		"save_file_handle":           d.saveFileHandle,
		"clear_saved_file_handle":    d.reset,
		"request_existing_data_file": d.requestExisting,
		"request_new_data_file":      d.requestNew,
	}
	return d
}

// Methods returns every accepted method name, aliases included, sorted.
func (d *Dispatcher) Methods() []string {
	names := make([]string, 0, len(d.methods)+len(aliases))
	for name := range d.methods {
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes a method by name. The returned error is always an *Error.
func (d *Dispatcher) Call(ctx context.Context, method string, args []string) (any, error) {
	if canonical, ok := aliases[method]; ok {
		method = canonical
	}
	h, ok := d.methods[method]
	if !ok {
		return nil, &Error{Kind: KindMethodNotFound, Message: fmt.Sprintf("unknown method %q", method)}
	}
	return h(ctx, args)
}

// Handle answers a decoded request.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	result, err := d.Call(ctx, req.Method, req.Args)
	if err != nil {
		var hostErr *Error
		if !errors.As(err, &hostErr) {
			hostErr = &Error{Kind: core.KindOf(err), Message: err.Error()}
		}
		return Response{ID: req.ID, Error: hostErr}
	}
	return Response{ID: req.ID, Result: result}
}

func (d *Dispatcher) getInfo(ctx context.Context, args []string) (any, error) {
	return d.bridge.Info(ctx), nil
}

func (d *Dispatcher) ensureExists(ctx context.Context, args []string) (any, error) {
	info, err := d.bridge.EnsureExists(ctx)
	if err != nil {
		return nil, &Error{Kind: core.KindOf(err), Message: err.Error()}
	}
	return info, nil
}

func (d *Dispatcher) read(ctx context.Context, args []string) (any, error) {
	return d.bridge.Read(ctx), nil
}

// write and reset report failures inside the result so the UI always gets
// a success flag and a description.
func (d *Dispatcher) write(ctx context.Context, args []string) (any, error) {
	if len(args) != 1 {
		return nil, &Error{Kind: KindInvalidParams, Message: fmt.Sprintf("write takes 1 argument, got %d", len(args))}
	}
	err := d.bridge.Write(ctx, args[0])
	return core.ResultOf(d.bridge.Info(ctx).Name, err), nil
}

func (d *Dispatcher) reset(ctx context.Context, args []string) (any, error) {
	err := d.bridge.Reset(ctx)
	return core.ResultOf(d.bridge.Info(ctx).Name, err), nil
}

func (d *Dispatcher) getCached(ctx context.Context, args []string) (any, error) {
	return d.bridge.Cached(ctx), nil
}

func (d *Dispatcher) getFileHandle(ctx context.Context, args []string) (any, error) {
	info := d.bridge.Info(ctx)
	return FileHandle{Configured: info.Exists, Name: info.Name}, nil
}

func (d *Dispatcher) saveFileHandle(ctx context.Context, args []string) (any, error) {
	info, err := d.bridge.EnsureExists(ctx)
	return core.ResultOf(info.Name, err), nil
}

func (d *Dispatcher) requestExisting(ctx context.Context, args []string) (any, error) {
	info := d.bridge.Info(ctx)
	if !info.Exists {
		return core.ResultOf(info.Name, core.ErrNotFound), nil
	}
	return core.ResultOf(info.Name, nil), nil
}

func (d *Dispatcher) requestNew(ctx context.Context, args []string) (any, error) {
	err := d.bridge.CreateEmpty(ctx)
	return core.ResultOf(d.bridge.Info(ctx).Name, err), nil
}
