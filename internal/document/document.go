package document

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/webshell/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webshell/internal/shared/id"
)

// ErrClosed is returned by operations on a closed document.
var ErrClosed = errors.New("document closed")

// Config controls a headless document
type Config struct {
	// Timeout bounds a single Run, including the pump that follows it.
	Timeout time.Duration
	// MaxCallStackSize limits JS recursion depth.
	MaxCallStackSize int
	// MaxPumped bounds how many queued scripts one Pump may evaluate.
	MaxPumped int
}

// DefaultConfig returns the headless defaults
func DefaultConfig() Config {
	return Config{
		Timeout:          30 * time.Second,
		MaxCallStackSize: 1024,
		MaxPumped:        10000,
	}
}

// ConsoleEntry is one call to the document's native console
type ConsoleEntry struct {
	Level   string
	Message string
	Time    time.Time
}

// Document is a headless stand-in for a renderer window
type Document struct {
	id     id.DocumentID
	vm     *goja.Runtime
	config Config
	logger *logging.Logger
	mu     sync.Mutex

	post func(message string)

	queue   []string
	queueMu sync.Mutex

	console   []ConsoleEntry
	consoleMu sync.Mutex

	timers int64
	closed bool
}

// New creates a document with its globals installed
func New(config Config, logger *logging.Logger) (*Document, error) {
	if config.MaxPumped <= 0 {
		config.MaxPumped = DefaultConfig().MaxPumped
	}

	docID := id.NewDocumentID()
	d := &Document{
		id:     docID,
		vm:     goja.New(),
		config: config,
		logger: logger.Named("headless").With(zap.String("document_id", string(docID))),
	}

	if config.MaxCallStackSize > 0 {
		d.vm.SetMaxCallStackSize(config.MaxCallStackSize)
	}

	if err := d.setupGlobals(); err != nil {
		return nil, err
	}
	return d, nil
}

// ID returns the document identifier
func (d *Document) ID() id.DocumentID {
	return d.id
}

// OnMessage sets the receiver of window.ipc.postMessage. It is called on the
// goroutine running the script that posted.
func (d *Document) OnMessage(post func(message string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.post = post
}

// Init evaluates bootstrap scripts in order, before any page script
func (d *Document) Init(scripts ...string) error {
	for i, script := range scripts {
		if _, err := d.Run(context.Background(), script); err != nil {
			return fmt.Errorf("init script %d: %w", i, err)
		}
	}
	return nil
}

// Eval queues script for evaluation after the current script returns.
func (d *Document) Eval(script string) error {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()

	if d.closed {
		return ErrClosed
	}
	d.queue = append(d.queue, script)
	return nil
}

// Run evaluates script, then pumps the queue until it is empty. The value of
// script is returned exported to Go.
func (d *Document) Run(ctx context.Context, script string) (interface{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isClosed() {
		return nil, ErrClosed
	}

	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}
	stop := d.watch(ctx)
	defer stop()

	val, err := d.vm.RunString(script)
	if err != nil {
		return nil, err
	}
	result := exportValue(val)

	if err := d.pump(); err != nil {
		return result, err
	}
	return result, nil
}

// Pump evaluates queued scripts until none are left
func (d *Document) Pump(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isClosed() {
		return ErrClosed
	}

	stop := d.watch(ctx)
	defer stop()
	return d.pump()
}

func (d *Document) pump() error {
	for n := 0; ; n++ {
		script, ok := d.next()
		if !ok {
			return nil
		}
		if n >= d.config.MaxPumped {
			return fmt.Errorf("pump limit of %d scripts reached", d.config.MaxPumped)
		}

		d.logger.Trace("pump", zap.Int("index", n))
		if _, err := d.vm.RunString(script); err != nil {
			return fmt.Errorf("queued script: %w", err)
		}
	}
}

func (d *Document) next() (string, bool) {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()

	if len(d.queue) == 0 {
		return "", false
	}
	script := d.queue[0]
	d.queue = d.queue[1:]
	return script, true
}

// Pending returns the number of queued scripts
func (d *Document) Pending() int {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	return len(d.queue)
}

// watch interrupts the VM when ctx ends. The returned func must be called
// once the evaluation is over.
func (d *Document) watch(ctx context.Context) func() {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-ctx.Done():
			d.vm.Interrupt(ctx.Err().Error())
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-exited
		d.vm.ClearInterrupt()
	}
}

// Get returns the exported value of a global
func (d *Document) Get(name string) interface{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vm == nil {
		return nil
	}
	return exportValue(d.vm.Get(name))
}

// Console returns the native console calls made so far
func (d *Document) Console() []ConsoleEntry {
	d.consoleMu.Lock()
	defer d.consoleMu.Unlock()
	return append([]ConsoleEntry{}, d.console...)
}

// Close releases the runtime; queued scripts are discarded
func (d *Document) Close() error {
	d.queueMu.Lock()
	d.closed = true
	d.queue = nil
	d.queueMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.vm = nil
	return nil
}

func (d *Document) isClosed() bool {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	return d.closed
}

// setupGlobals installs window, console, timers and the ipc channel
func (d *Document) setupGlobals() error {
	vm := d.vm
	global := vm.GlobalObject()

	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return err
		}
	}

	if err := vm.Set("window", global); err != nil {
		return err
	}

	console := vm.NewObject()
	for _, level := range []string{"log", "error", "warn", "info", "debug", "trace"} {
		if err := console.Set(level, d.makeConsoleFunc(level)); err != nil {
			return err
		}
	}
	if err := vm.Set("console", console); err != nil {
		return err
	}

	timer := func(call goja.FunctionCall) goja.Value {
		d.timers++
		return vm.ToValue(d.timers)
	}
	noop := func(call goja.FunctionCall) goja.Value { return goja.Undefined() }
	for name, fn := range map[string]func(goja.FunctionCall) goja.Value{
		"setTimeout":    timer,
		"setInterval":   timer,
		"clearTimeout":  noop,
		"clearInterval": noop,
	} {
		if err := vm.Set(name, fn); err != nil {
			return err
		}
	}

	ipc := vm.NewObject()
	if err := ipc.Set("postMessage", d.postMessage); err != nil {
		return err
	}
	return vm.Set("ipc", ipc)
}

func (d *Document) postMessage(call goja.FunctionCall) goja.Value {
	message := call.Argument(0).String()
	d.logger.Trace("postMessage", zap.String("message", message))

	if d.post == nil {
		d.logger.Warn("message posted with no receiver")
		return goja.Undefined()
	}
	d.post(message)
	return goja.Undefined()
}

func (d *Document) makeConsoleFunc(level string) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}

		d.consoleMu.Lock()
		d.console = append(d.console, ConsoleEntry{
			Level:   level,
			Message: strings.Join(parts, " "),
			Time:    time.Now(),
		})
		d.consoleMu.Unlock()

		return goja.Undefined()
	}
}

func exportValue(val goja.Value) interface{} {
	if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
		return nil
	}
	return val.Export()
}
