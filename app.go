package neon

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// App is one mounted instance of the neon field: typed resources plus
// systems grouped into ordered stages. A Tick runs every stage once.
type App struct {
	stages    []Stage
	systems   map[string][]systemFn
	resources map[reflect.Type]any
	order     []reflect.Type
	teardown  *Teardown
}

func newApp(teardown *Teardown) *App {
	app := &App{
		systems:   make(map[string][]systemFn),
		resources: make(map[reflect.Type]any),
		teardown:  teardown,
	}
	for _, stage := range defaultStages {
		app.stages = append(app.stages, stage)
		app.systems[stage.Name] = make([]systemFn, 0)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// Tick runs every system of every stage in stage order.
func (app *App) Tick() {
	for _, stage := range app.stages {
		app.callSystems(stage)
	}
}

func (app *App) callSystems(stage Stage) {
	for _, system := range app.systems[stage.Name] {
		app.callSystem(system)
	}
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType == nil || resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %T must be a pointer", resource))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
		app.order = append(app.order, resourceType.Elem())
	}
	return app
}

// Resource returns the registered *T, if any.
func Resource[T any](app *App) (*T, bool) {
	if app == nil {
		return nil, false
	}
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		arg, ok := app.resolveArg(argType)
		if !ok {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
		args[i] = arg
	}
	systemValue.Call(args)
}

// resolveArg maps a system parameter to a value: *Commands, a pointer to a
// registered resource, or an interface satisfied by exactly one registered
// resource. More than one match panics.
func (app *App) resolveArg(argType reflect.Type) (reflect.Value, bool) {
	switch argType.Kind() {
	case reflect.Pointer:
		if argType.Elem() == typeOfCommands {
			return reflect.ValueOf(&Commands{app: app}), true
		}
		if resource, ok := app.resources[argType.Elem()]; ok {
			return reflect.ValueOf(resource), true
		}
	case reflect.Interface:
		matches := app.implementers(argType)
		if len(matches) > 1 {
			panic(fmt.Sprintf("%d resources implement %s", len(matches), argType))
		}
		if len(matches) == 1 {
			return reflect.ValueOf(matches[0]), true
		}
	}
	return reflect.Value{}, false
}

// implementers lists the resources implementing iface in registration order.
func (app *App) implementers(iface reflect.Type) []any {
	var out []any
	for _, t := range app.order {
		resource := app.resources[t]
		if reflect.TypeOf(resource).Implements(iface) {
			out = append(out, resource)
		}
	}
	return out
}
