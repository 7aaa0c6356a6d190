package neon

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// OnTeardown registers a release to run when the surface unmounts.
func (cmd *Commands) OnTeardown(name string, release func()) *Commands {
	cmd.app.teardown.Defer(name, release)
	return cmd
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
