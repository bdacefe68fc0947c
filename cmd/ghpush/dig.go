package main

import (
	"github.com/rios0rios0/ghpush/internal"
	"github.com/rios0rios0/ghpush/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectPushController() *controllers.PushController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var pushController *controllers.PushController
	if err := container.Invoke(func(pc *controllers.PushController) {
		pushController = pc
	}); err != nil {
		panic(err)
	}

	return pushController
}
