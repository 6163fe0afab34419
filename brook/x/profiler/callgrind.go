// Copyright © 2024 The Brook authors

package profiler

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/brooklang/brook/brook"
)

// errWriter wraps an io.Writer and captures the first write error,
// short-circuiting subsequent writes after a failure.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// callgrindFile is the file name reported for every brook function.  Functions
// carry no source location of their own.
const callgrindFile = "brook"

// callgrindProfiler builds Callgrind files which can be opened in
// KCacheGrind or QCacheGrind.
type callgrindProfiler struct {
	profiler
	sync.Mutex
	writer     io.WriteCloser
	writeErr   error
	startTime  time.Time
	refs       map[string]int
	refCounter int
	current    *callRef
}

var _ brook.Profiler = &callgrindProfiler{}

// NewCallgrindProfiler returns a profiler writing Callgrind output.  An output
// must be set with SetFile or SetWriter before the profiler is enabled.
func NewCallgrindProfiler(runtime *brook.Runtime, opts ...Option) *callgrindProfiler {
	p := new(callgrindProfiler)
	p.runtime = runtime
	runtime.Profiler = p
	p.applyConfigs(opts...)
	return p
}

// callRef represents something that got called
type callRef struct {
	start       time.Time
	prev        *callRef
	name        string
	children    []*callRef
	duration    time.Duration
	startMemory uint64
}

func (p *callgrindProfiler) Enable() error {
	p.Lock()
	if p.writer == nil {
		p.Unlock()
		return errors.New("no output set in profiler")
	}
	w := &errWriter{w: p.writer}
	w.printf("version: 1\ncreator: brook %s (Go %s)\n", brook.BrookVersion, runtime.Version())
	w.print("cmd: Eval\npart: 1\npositions: line\n\n")
	w.print("events: Time_(ns) Memory_(bytes)\n\n")
	if w.err != nil {
		p.Unlock()
		return w.err
	}
	p.startTime = time.Now()
	p.refs = make(map[string]int)
	p.refCounter = 0
	p.current = nil
	p.Unlock()
	p.pushCallRef("ENTRYPOINT")
	return p.profiler.Enable()
}

// SetFile creates filename on the runtime filesystem and directs output to
// it.
func (p *callgrindProfiler) SetFile(filename string) error {
	f, err := p.runtime.FS.Create(filename)
	if err != nil {
		return err
	}
	err = p.SetWriter(f)
	if err != nil {
		f.Close() //nolint:errcheck
	}
	return err
}

// SetWriter directs output to w, which is closed when the profile is
// complete.
func (p *callgrindProfiler) SetWriter(w io.WriteCloser) error {
	p.Lock()
	defer p.Unlock()
	if p.enabled {
		return errors.New("profiler already enabled")
	}
	p.writer = w
	return nil
}

func (p *callgrindProfiler) Complete() error {
	p.Lock()
	defer p.Unlock()
	if !p.enabled {
		return errors.New("profiler not enabled")
	}
	p.enabled = false
	ref := p.popCallRef()
	if p.writeErr != nil {
		return p.writeErr
	}
	ref.duration = time.Since(ref.start)
	w := &errWriter{w: p.writer}
	w.printf("fl=%s\n", p.getRef(callgrindFile))
	w.printf("fn=%s\n", p.getRef(ref.name))
	w.printf("%d %d %d\n", 0, ref.duration, 0)
	p.writeChildren(w, ref, 0)
	w.print("\n")
	duration := time.Since(p.startTime)
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	w.printf("summary: %d %d\n\n", duration.Nanoseconds(), ms.TotalAlloc)
	if w.err != nil {
		return w.err
	}
	return p.writer.Close()
}

func (p *callgrindProfiler) getRef(name string) string {
	if ref, ok := p.refs[name]; ok {
		return fmt.Sprintf("(%d)", ref)
	}
	p.refCounter++
	p.refs[name] = p.refCounter
	return fmt.Sprintf("(%d) %s", p.refCounter, name)
}

func (p *callgrindProfiler) Start(fn *brook.Function) func() {
	if p.skipTrace(fn) {
		return func() {}
	}
	prettyLabel, _ := p.prettyFunName(fn)
	p.pushCallRef(prettyLabel)
	return func() {
		p.end(prettyLabel)
	}
}

func (p *callgrindProfiler) pushCallRef(name string) *callRef {
	p.Lock()
	defer p.Unlock()
	ref := &callRef{name: name}
	if p.current != nil {
		ref.prev = p.current
		p.current.children = append(p.current.children, ref)
	}
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	ref.startMemory = ms.TotalAlloc
	ref.start = time.Now()
	p.current = ref
	return ref
}

func (p *callgrindProfiler) popCallRef() *callRef {
	ref := p.current
	if ref == nil {
		panic("profiler: call stack underflow")
	}
	p.current = ref.prev
	return ref
}

func (p *callgrindProfiler) end(name string) {
	p.Lock()
	defer p.Unlock()
	if !p.enabled || p.writeErr != nil {
		return
	}
	ref := p.popCallRef()
	ref.duration = time.Since(ref.start)
	if ref.duration == 0 {
		ref.duration = 1
	}
	ms := &runtime.MemStats{}
	runtime.ReadMemStats(ms)
	memory := ms.TotalAlloc - ref.startMemory
	w := &errWriter{w: p.writer}
	w.printf("fl=%s\n", p.getRef(callgrindFile))
	w.printf("fn=%s\n", p.getRef(name))
	w.printf("%d %d %d\n", 0, ref.duration, memory)
	p.writeChildren(w, ref, memory)
	w.print("\n")
	if w.err != nil {
		p.writeErr = w.err
	}
}

func (p *callgrindProfiler) writeChildren(w *errWriter, ref *callRef, memory uint64) {
	for _, entry := range ref.children {
		w.printf("cfl=%s\n", p.getRef(callgrindFile))
		w.printf("cfn=%s\n", p.getRef(entry.name))
		w.print("calls=1 0\n")
		w.printf("%d %d %d\n", 0, entry.duration, memory)
	}
}
