package rivet_test

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rivetdi/rivet"
)

type Counter struct {
	mu sync.Mutex
	n  int
}

func (c *Counter) Inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type Widget struct {
	Cfg     *Config   `rivet:""`
	Service *ServiceB `rivet:""`

	counter *Counter
	calls   int
}

func (w *Widget) InjectCounter(c *Counter) {
	w.counter = c
	w.calls++
}

type Base struct {
	BaseCfg *Config `rivet:""`
}

type Derived struct {
	Base
	Own *ServiceB `rivet:""`
}

type OptionalHolder struct {
	Clock Clock   `rivet:",optional"`
	Cfg   *Config `rivet:""`
}

type FailingMethod struct{}

func (f *FailingMethod) InjectThing(cfg *Config) error {
	return errors.New("refused")
}

func newWidgetInjector(t *testing.T) *rivet.Injector {
	t.Helper()

	in := rivet.New()
	rivet.MustBind(in, &Config{Port: 8080})
	rivet.MustProvide[*ServiceB](in, NewServiceB)
	rivet.MustBind(in, &Counter{})
	return in
}

func TestInjectMembersFields(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	w := &Widget{}
	if err := in.InjectMembers(w); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	if w.Cfg == nil || w.Cfg.Port != 8080 {
		t.Error("expected the bound Config in the tagged field")
	}
	if w.Service == nil || w.Service.Cfg != w.Cfg {
		t.Error("expected a constructed ServiceB sharing the bound Config")
	}
	if w.counter == nil {
		t.Error("expected InjectCounter to have run")
	}
}

func TestInjectMembersIdempotent(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	w := &Widget{}
	if err := in.InjectMembers(w); err != nil {
		t.Fatalf("first InjectMembers failed: %v", err)
	}
	if err := in.InjectMembers(w); err != nil {
		t.Fatalf("second InjectMembers failed: %v", err)
	}

	if w.calls != 1 {
		t.Errorf("expected InjectCounter to run exactly once, ran %d times", w.calls)
	}
}

func TestInjectMembersPreSetFieldUntouched(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	mine := &Config{Port: 999}
	w := &Widget{Cfg: mine}

	if err := in.InjectMembers(w); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	if w.Cfg != mine {
		t.Error("expected the pre-set field to survive injection")
	}
	if w.Service == nil {
		t.Error("expected the unset field to still be injected")
	}
}

func TestInjectMembersIdentityNotEquality(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	first := &Widget{}
	second := &Widget{}

	if err := in.InjectMembers(first); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	// Structurally both widgets now differ, but even two equal objects are
	// tracked by identity: the second is not considered injected.
	if err := in.InjectMembers(second); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	if second.calls != 1 {
		t.Error("expected the second object to be injected independently")
	}

	stats := in.Stats()
	if stats.Injected != 2 {
		t.Errorf("expected 2 injected objects, got %d", stats.Injected)
	}
}

func TestInjectMembersEmbeddedFirst(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	d := &Derived{}
	if err := in.InjectMembers(d); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	if d.BaseCfg == nil {
		t.Error("expected the embedded struct's field to be injected")
	}
	if d.Own == nil {
		t.Error("expected the outer struct's field to be injected")
	}
}

func TestInjectMembersOptionalSkipped(t *testing.T) {
	t.Parallel()

	in := rivet.New()
	rivet.MustBind(in, &Config{Port: 1})

	h := &OptionalHolder{}
	if err := in.InjectMembers(h); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	if h.Clock != nil {
		t.Error("expected the unresolvable optional field to stay nil")
	}
	if h.Cfg == nil {
		t.Error("expected the required field to be injected")
	}
}

func TestInjectMembersMethodError(t *testing.T) {
	t.Parallel()

	in := rivet.New()
	rivet.MustBind(in, &Config{})

	f := &FailingMethod{}
	err := in.InjectMembers(f)
	if !rivet.IsMemberInjectionFailed(err) {
		t.Fatalf("expected MEMBER_INJECTION_FAILED, got %v", err)
	}
	if !strings.Contains(err.Error(), "InjectThing") {
		t.Errorf("expected the failing method name in the error, got %v", err)
	}

	// The object stays unmarked, so a later call retries.
	if err := in.InjectMembers(f); err == nil {
		t.Error("expected the retry to fail again, not short-circuit")
	}
}

func TestInjectMembersNilTarget(t *testing.T) {
	t.Parallel()

	in := rivet.New()

	if err := in.InjectMembers(nil); !rivet.IsNilTarget(err) {
		t.Fatalf("expected NIL_TARGET, got %v", err)
	}

	var w *Widget
	if err := in.InjectMembers(w); !rivet.IsNilTarget(err) {
		t.Fatalf("expected NIL_TARGET for a typed nil pointer, got %v", err)
	}
}

func TestInjectMembersNonPointerTarget(t *testing.T) {
	t.Parallel()

	in := rivet.New()

	err := in.InjectMembers(Widget{})
	if !rivet.IsMemberInjectionFailed(err) {
		t.Fatalf("expected MEMBER_INJECTION_FAILED for a non-pointer target, got %v", err)
	}
}

func TestInjectMembersConcurrentSameObject(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	w := &Widget{}

	var wg sync.WaitGroup
	errs := make(chan error, 16)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := in.InjectMembers(w); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent injection failed: %v", err)
	}

	if w.calls != 1 {
		t.Errorf("expected exactly one method invocation across racing callers, got %d", w.calls)
	}
}

func TestResetClearsInjectedMarkers(t *testing.T) {
	t.Parallel()

	in := newWidgetInjector(t)

	w := &Widget{}
	if err := in.InjectMembers(w); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	in.Reset()
	rivet.MustBind(in, &Config{Port: 8080})
	rivet.MustBind(in, &Counter{})

	if err := in.InjectMembers(w); err != nil {
		t.Fatalf("InjectMembers after Reset failed: %v", err)
	}

	if w.calls != 2 {
		t.Errorf("expected injection to run again after Reset, got %d calls", w.calls)
	}
}

func TestInjectObserver(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	count := 0

	in := rivet.New(rivet.WithInjectObserver(func(key string, _ time.Duration, err error) {
		mu.Lock()
		count++
		mu.Unlock()
	}))
	rivet.MustBind(in, &Config{})

	h := &OptionalHolder{}
	if err := in.InjectMembers(h); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}
	if err := in.InjectMembers(h); err != nil {
		t.Fatalf("InjectMembers failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if count != 2 {
		t.Errorf("expected the observer to see both calls, got %d", count)
	}
}
