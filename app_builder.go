package neon

type Module interface {
	Install(app *App, cmd *Commands)
}

type AppBuilder struct {
	teardown *Teardown
	modules  []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{}
}

// WithTeardown routes releases registered by modules to td instead of a
// private stack.
func (b *AppBuilder) WithTeardown(td *Teardown) *AppBuilder {
	b.teardown = td
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)

	return b
}

// Build installs the modules in order.
func (b *AppBuilder) Build() *App {
	td := b.teardown
	if td == nil {
		td = NewTeardown(nil)
	}
	app := newApp(td)
	commands := app.Commands()

	for _, module := range b.modules {
		module.Install(app, commands)
	}

	return app
}
