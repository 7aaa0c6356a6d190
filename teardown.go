package neon

// Teardown is a LIFO stack of named releases. Every acquisition registers its
// release right after it succeeds, so running the stack undoes exactly what
// was acquired, however far initialization got.
type Teardown struct {
	log   Logger
	steps []teardownStep
	done  bool
}

type teardownStep struct {
	name    string
	release func()
}

func NewTeardown(log Logger) *Teardown {
	if log == nil {
		log = NewNopLogger()
	}
	return &Teardown{log: log}
}

// Defer registers release. After Run it is executed immediately instead, so a
// late acquisition cannot leak.
func (t *Teardown) Defer(name string, release func()) {
	if release == nil {
		return
	}
	if t.done {
		t.run(teardownStep{name: name, release: release})
		return
	}
	t.steps = append(t.steps, teardownStep{name: name, release: release})
}

// Run executes all registered releases once, newest first. A panicking
// release is logged and the remaining ones still run.
func (t *Teardown) Run() {
	if t.done {
		return
	}
	t.done = true
	for i := len(t.steps) - 1; i >= 0; i-- {
		t.run(t.steps[i])
	}
	t.steps = nil
}

func (t *Teardown) run(step teardownStep) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Errorf("teardown %s panicked: %v", step.name, r)
		}
	}()
	t.log.Debugf("release %s", step.name)
	step.release()
}

func (t *Teardown) Done() bool {
	return t.done
}

// Len reports the releases still pending.
func (t *Teardown) Len() int {
	return len(t.steps)
}
